package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-report-api/internal/model"
)

const reportDateLayout = "2006-01-02"

// ReportQuery selects the revenue report range and filters. Zero filters
// are omitted.
type ReportQuery struct {
	StartDate time.Time
	EndDate   time.Time
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Status    string
}

func (q ReportQuery) values() url.Values {
	v := url.Values{}
	if !q.StartDate.IsZero() {
		v.Set("startDate", q.StartDate.Format(reportDateLayout))
	}
	if !q.EndDate.IsZero() {
		v.Set("endDate", q.EndDate.Format(reportDateLayout))
	}
	if q.DoctorID != uuid.Nil {
		v.Set("doctor_id", q.DoctorID.String())
	}
	if q.PatientID != uuid.Nil {
		v.Set("patient_id", q.PatientID.String())
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	return v
}

// RevenueReport fetches the revenue detail report. The report is nil
// unless the result succeeded.
func (c *Client) RevenueReport(ctx context.Context, q ReportQuery) (*model.RevenueReport, *Result) {
	res := c.do(ctx, request{
		method: http.MethodGet,
		path:   "/reports/revenue-detail",
		query:  q.values(),
		bearer: true,
	})
	if !res.Success {
		return nil, res
	}

	var report model.RevenueReport
	if err := res.DecodeData(&report); err != nil {
		res.Success = false
		res.Error = "invalid report payload: " + err.Error()
		return nil, res
	}
	return &report, res
}
