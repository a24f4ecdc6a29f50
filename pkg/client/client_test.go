package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method string
	path   string
	query  url.Values
	auth   string
	body   map[string]interface{}
}

func server(t *testing.T, status int, response string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.query = r.URL.Query()
		got.auth = r.Header.Get("Authorization")
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &got.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func token(tok string) Option {
	return WithTokenSource(func() string { return tok })
}

func TestLoginSuccess(t *testing.T) {
	srv, got := server(t, http.StatusOK, `{"success":true,"message":"ok","data":{"token":"abc"}}`)

	res := New(srv.URL).Login(context.Background(), Credentials{Username: "alice", Password: "pw"})

	assert.True(t, res.Success)
	assert.Equal(t, "ok", res.Message)
	assert.JSONEq(t, `{"token":"abc"}`, string(res.Data))
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/auth/login", got.path)
	assert.Equal(t, "alice", got.body["username"])
	assert.Empty(t, got.auth)
}

func TestHTTPErrorUsesBodyMessage(t *testing.T) {
	srv, _ := server(t, http.StatusUnauthorized, `{"success":false,"message":"Invalid credentials"}`)

	res := New(srv.URL).Login(context.Background(), Credentials{})

	assert.False(t, res.Success)
	assert.Equal(t, "Invalid credentials", res.Error)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestHTTPErrorWithoutMessage(t *testing.T) {
	for _, body := range []string{`{}`, `<html>bad gateway</html>`} {
		srv, _ := server(t, http.StatusBadGateway, body)

		res := New(srv.URL).CurrentUser(context.Background())

		assert.False(t, res.Success)
		assert.Equal(t, "HTTP error! status: 502", res.Error)
	}
}

func TestNetworkFailure(t *testing.T) {
	srv, _ := server(t, http.StatusOK, `{}`)
	srv.Close()

	c := New(srv.URL)

	res := c.ListDoctors(context.Background(), nil)
	assert.False(t, res.Success)
	assert.Equal(t, ErrNetworkMessage, res.Error)
	assert.Zero(t, res.StatusCode)

	health := c.Health(context.Background())
	assert.False(t, health.Success)
	assert.Equal(t, ErrNetworkMessage, health.Error)
}

func TestRequestShapes(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		call   func(c *Client) *Result
		method string
		path   string
		query  url.Values
	}{
		{"logout", func(c *Client) *Result { return c.Logout(ctx) }, http.MethodPost, "/auth/logout", url.Values{}},
		{"create appointment", func(c *Client) *Result { return c.CreateAppointment(ctx, map[string]string{"doctor_id": "d"}) }, http.MethodPost, "/appointments", url.Values{}},
		{"list appointments", func(c *Client) *Result { return c.ListAppointments(ctx, url.Values{"status": {"completed"}}) }, http.MethodGet, "/appointments", url.Values{"status": {"completed"}}},
		{"get appointment", func(c *Client) *Result { return c.GetAppointment(ctx, "a1") }, http.MethodGet, "/appointments/a1", url.Values{}},
		{"update appointment", func(c *Client) *Result { return c.UpdateAppointment(ctx, "a1", map[string]string{"notes": "x"}) }, http.MethodPut, "/appointments/a1", url.Values{}},
		{"cancel appointment", func(c *Client) *Result { return c.CancelAppointment(ctx, "a1") }, http.MethodPut, "/appointments/a1/cancel", url.Values{}},
		{"doctors by specialty", func(c *Client) *Result { return c.ListDoctorsBySpecialty(ctx, "cardiology") }, http.MethodGet, "/doctors", url.Values{"specialty": {"cardiology"}, "is_active": {"true"}}},
		{"list patients", func(c *Client) *Result { return c.ListPatients(ctx, url.Values{"q": {"an"}}) }, http.MethodGet, "/patients", url.Values{"q": {"an"}}},
		{"patient by user", func(c *Client) *Result { return c.GetPatientByUserID(ctx, "u1") }, http.MethodGet, "/patients/user/u1", url.Values{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, got := server(t, http.StatusOK, `{"success":true}`)

			res := tt.call(New(srv.URL, token("tok")))

			assert.True(t, res.Success)
			assert.Equal(t, tt.method, got.method)
			assert.Equal(t, tt.path, got.path)
			assert.Equal(t, tt.query, got.query)
			assert.Equal(t, "Bearer tok", got.auth)
		})
	}
}

func TestRegisterUserSelectsEndpointByRole(t *testing.T) {
	tests := []struct {
		role string
		path string
		auth string
	}{
		{"", "/users/register", ""},
		{"patient", "/users/register", ""},
		{"Patient", "/users/register", ""},
		{"doctor", "/users", "Bearer tok"},
		{"admin", "/users", "Bearer tok"},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			srv, got := server(t, http.StatusCreated, `{"success":true}`)

			res := New(srv.URL, token("tok")).RegisterUser(context.Background(), UserRegistration{
				Username: "bob",
				Password: "pw",
				Role:     tt.role,
				Extra:    map[string]interface{}{"specialty_id": "s1"},
			})

			assert.True(t, res.Success)
			assert.Equal(t, tt.path, got.path)
			assert.Equal(t, tt.auth, got.auth)
			assert.Equal(t, "bob", got.body["username"])
			assert.Equal(t, "s1", got.body["specialty_id"])
		})
	}
}

func TestRegisterStaffWithoutToken(t *testing.T) {
	srv, got := server(t, http.StatusCreated, `{"success":true}`)

	New(srv.URL).RegisterUser(context.Background(), UserRegistration{Username: "bob", Role: "staff"})

	assert.Equal(t, "/users", got.path)
	assert.Empty(t, got.auth)
}

func TestUsernameExists(t *testing.T) {
	srv, got := server(t, http.StatusOK, `{"success":true,"exists":true}`)
	assert.True(t, New(srv.URL).UsernameExists(context.Background(), "alice"))
	assert.Equal(t, "/users/check-username/alice", got.path)

	srv, _ = server(t, http.StatusOK, `{"success":true,"exists":false}`)
	assert.False(t, New(srv.URL).UsernameExists(context.Background(), "alice"))

	srv, _ = server(t, http.StatusInternalServerError, `{"success":false}`)
	assert.False(t, New(srv.URL).UsernameExists(context.Background(), "alice"))
}

func TestHealth(t *testing.T) {
	srv, got := server(t, http.StatusOK, `not json`)
	res := New(srv.URL).Health(context.Background())
	assert.True(t, res.Success)
	assert.Equal(t, "/health", got.path)

	srv, _ = server(t, http.StatusServiceUnavailable, `{}`)
	res = New(srv.URL).Health(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, "HTTP 503", res.Error)
}

func TestErrorFieldForms(t *testing.T) {
	srv, _ := server(t, http.StatusOK, `{"success":false,"error":{"message":"nested"}}`)
	res := New(srv.URL).CurrentUser(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, "nested", res.Error)
}

func TestRevenueReport(t *testing.T) {
	doctorID := uuid.New()
	srv, got := server(t, http.StatusOK, `{
		"success": true,
		"message": "ok",
		"data": {
			"appointments": [{
				"id": "`+uuid.NewString()+`",
				"status": "completed",
				"examination_fee": 100000,
				"medical_record_id": null,
				"medicineCost": 10000,
				"medicineCount": 2,
				"examinationFeeContribution": 100000,
				"totalCost": 110000
			}],
			"summary": {"totalAppointments": 1, "totalExaminationFee": 100000, "totalMedicineFee": 10000, "totalRevenue": 110000}
		}
	}`)

	report, res := New(srv.URL, token("tok")).RevenueReport(context.Background(), ReportQuery{
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		DoctorID:  doctorID,
	})

	require.True(t, res.Success, res.Error)
	require.NotNil(t, report)
	assert.Equal(t, "/reports/revenue-detail", got.path)
	assert.Equal(t, "2024-03-01", got.query.Get("startDate"))
	assert.Equal(t, "2024-03-31", got.query.Get("endDate"))
	assert.Equal(t, doctorID.String(), got.query.Get("doctor_id"))
	assert.False(t, got.query.Has("patient_id"))

	require.Len(t, report.Appointments, 1)
	assert.Equal(t, "110000", report.Appointments[0].TotalCost.String())
	assert.Equal(t, 2, report.Appointments[0].MedicineCount)
	assert.Equal(t, "110000", report.Summary.TotalRevenue.String())
}

func TestRevenueReportValidationError(t *testing.T) {
	srv, _ := server(t, http.StatusBadRequest, `{"success":false,"message":"Missing required parameters: startDate and endDate"}`)

	report, res := New(srv.URL).RevenueReport(context.Background(), ReportQuery{})

	assert.Nil(t, report)
	assert.False(t, res.Success)
	assert.Equal(t, "Missing required parameters: startDate and endDate", res.Error)
}
