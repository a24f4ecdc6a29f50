package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-report-api/internal/model"
	reportService "github.com/jwalitptl/clinic-report-api/internal/service/report"
	apperrors "github.com/jwalitptl/clinic-report-api/pkg/errors"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ParseDateRange(start, end string) (reportService.DateRange, error) {
	return reportService.NewDateRange(start, end, time.UTC)
}

func (m *mockService) GenerateRevenueReport(ctx context.Context, period reportService.DateRange, filters reportService.Filters) (*model.RevenueReport, error) {
	args := m.Called(ctx, period, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RevenueReport), args.Error(1)
}

type body struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   *string         `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func setup() (*gin.Engine, *mockService) {
	gin.SetMode(gin.TestMode)
	svc := new(mockService)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api"))
	return r, svc
}

func get(t *testing.T, r *gin.Engine, target string) (*httptest.ResponseRecorder, body) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	var b body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &b), w.Body.String())
	return w, b
}

func TestGetRevenueDetailMissingDates(t *testing.T) {
	targets := []string{
		"/api/reports/revenue-detail",
		"/api/reports/revenue-detail?startDate=2024-03-01",
		"/api/reports/revenue-detail?endDate=2024-03-31",
		"/api/reports/revenue-detail?endDate=2024-03-31&doctor_id=nope",
	}
	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			r, svc := setup()

			w, b := get(t, r, target)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, b.Success)
			assert.Equal(t, reportService.MissingDatesMessage, b.Message)
			assert.Nil(t, b.Error)
			svc.AssertNotCalled(t, "GenerateRevenueReport", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGetRevenueDetailBadInput(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		message string
	}{
		{"bad date", "startDate=March&endDate=2024-03-31", `invalid startDate "March"`},
		{"reversed", "startDate=2024-04-01&endDate=2024-03-31", "startDate must not be after endDate"},
		{"bad doctor", "startDate=2024-03-01&endDate=2024-03-31&doctor_id=42", `invalid doctor_id "42"`},
		{"bad patient", "startDate=2024-03-01&endDate=2024-03-31&patient_id=abc", `invalid patient_id "abc"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, svc := setup()

			w, b := get(t, r, "/api/reports/revenue-detail?"+tt.query)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.False(t, b.Success)
			assert.Equal(t, tt.message, b.Message)
			svc.AssertNotCalled(t, "GenerateRevenueReport", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGetRevenueDetailSuccess(t *testing.T) {
	r, svc := setup()
	doctorID := uuid.New()

	apt := &model.Appointment{
		Base:           model.Base{ID: uuid.New()},
		Status:         model.AppointmentStatusCompleted,
		ExaminationFee: decimal.NewFromInt(100000),
	}
	report := &model.RevenueReport{
		Appointments: []model.ReportLine{{
			Appointment:                apt,
			MedicineCost:               decimal.NewFromInt(10000),
			MedicineCount:              2,
			ExaminationFeeContribution: decimal.NewFromInt(100000),
			TotalCost:                  decimal.NewFromInt(110000),
		}},
		Summary: model.ReportSummary{
			TotalAppointments:   1,
			TotalExaminationFee: decimal.NewFromInt(100000),
			TotalMedicineFee:    decimal.NewFromInt(10000),
			TotalRevenue:        decimal.NewFromInt(110000),
		},
	}

	svc.On("GenerateRevenueReport", mock.Anything,
		mock.MatchedBy(func(p reportService.DateRange) bool {
			return p.Start.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) &&
				p.End.Equal(time.Date(2024, 3, 31, 23, 59, 59, 999_000_000, time.UTC))
		}),
		reportService.Filters{DoctorID: doctorID, Status: model.AppointmentStatusCompleted},
	).Return(report, nil)

	w, b := get(t, r, "/api/reports/revenue-detail?startDate=2024-03-01&endDate=2024-03-31&status=completed&doctor_id="+doctorID.String())

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, b.Success)
	assert.Equal(t, SuccessMessage, b.Message)

	var data struct {
		Appointments []map[string]interface{} `json:"appointments"`
		Summary      map[string]interface{}   `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(b.Data, &data))
	require.Len(t, data.Appointments, 1)

	line := data.Appointments[0]
	assert.Equal(t, apt.ID.String(), line["id"])
	assert.Equal(t, "completed", line["status"])
	assert.Equal(t, 10000.0, line["medicineCost"])
	assert.Equal(t, 2.0, line["medicineCount"])
	assert.Equal(t, 110000.0, line["totalCost"])
	assert.Contains(t, line, "medical_record_id")
	assert.Nil(t, line["medical_record_id"])

	assert.Equal(t, 1.0, data.Summary["totalAppointments"])
	assert.Equal(t, 100000.0, data.Summary["totalExaminationFee"])
	assert.Equal(t, 10000.0, data.Summary["totalMedicineFee"])
	assert.Equal(t, 110000.0, data.Summary["totalRevenue"])
	svc.AssertExpectations(t)
}

func TestGetRevenueDetailLookupFailure(t *testing.T) {
	r, svc := setup()
	svc.On("GenerateRevenueReport", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.Lookup("medicine", errors.New("connection reset by peer")))

	w, b := get(t, r, "/api/reports/revenue-detail?startDate=2024-03-01&endDate=2024-03-31")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, b.Success)
	assert.Equal(t, FailureMessage, b.Message)
	require.NotNil(t, b.Error)
	assert.Equal(t, "connection reset by peer", *b.Error)
	assert.Empty(t, b.Data)
}

func TestGetRevenueDetailUnexpectedError(t *testing.T) {
	r, svc := setup()
	svc.On("GenerateRevenueReport", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("boom"))

	w, b := get(t, r, "/api/reports/revenue-detail?startDate=2024-03-01&endDate=2024-03-01")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, b.Error)
	assert.Equal(t, "boom", *b.Error)
}
