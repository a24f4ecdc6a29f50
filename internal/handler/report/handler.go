package report

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-report-api/internal/model"
	reportService "github.com/jwalitptl/clinic-report-api/internal/service/report"
	"github.com/jwalitptl/clinic-report-api/pkg/httputil"
)

const (
	SuccessMessage = "Revenue detail report retrieved successfully"
	FailureMessage = "Server error while retrieving revenue detail report"
)

// Service is the part of the report service the handler drives.
type Service interface {
	ParseDateRange(start, end string) (reportService.DateRange, error)
	GenerateRevenueReport(ctx context.Context, period reportService.DateRange, filters reportService.Filters) (*model.RevenueReport, error)
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/reports")
	{
		reports.GET("/revenue-detail", h.GetRevenueDetail)
	}
}

type revenueDetailQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	DoctorID  string `form:"doctor_id" binding:"omitempty,uuid"`
	PatientID string `form:"patient_id" binding:"omitempty,uuid"`
	Status    string `form:"status" binding:"omitempty,max=32"`
}

func (h *Handler) GetRevenueDetail(c *gin.Context) {
	var query revenueDetailQuery
	bindErr := c.ShouldBindQuery(&query)

	// Missing or malformed dates take precedence over filter errors.
	period, err := h.service.ParseDateRange(query.StartDate, query.EndDate)
	if err != nil {
		httputil.RespondWithError(c, err, FailureMessage)
		return
	}
	if bindErr != nil {
		httputil.RespondWithMessage(c, http.StatusBadRequest, bindingMessage(bindErr))
		return
	}

	filters := reportService.Filters{Status: model.AppointmentStatus(query.Status)}
	if filters.DoctorID, err = parseOptionalID(query.DoctorID); err != nil {
		httputil.RespondWithMessage(c, http.StatusBadRequest, fmt.Sprintf("invalid doctor_id %q", query.DoctorID))
		return
	}
	if filters.PatientID, err = parseOptionalID(query.PatientID); err != nil {
		httputil.RespondWithMessage(c, http.StatusBadRequest, fmt.Sprintf("invalid patient_id %q", query.PatientID))
		return
	}

	report, err := h.service.GenerateRevenueReport(c.Request.Context(), period, filters)
	if err != nil {
		httputil.RespondWithError(c, err, FailureMessage)
		return
	}

	httputil.RespondWithSuccess(c, SuccessMessage, report)
}

func parseOptionalID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(raw)
}

func bindingMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "invalid query parameters"
	}

	fe := verrs[0]
	name := map[string]string{
		"DoctorID":  "doctor_id",
		"PatientID": "patient_id",
		"Status":    "status",
	}[fe.Field()]
	if name == "" {
		name = fe.Field()
	}

	switch fe.Tag() {
	case "uuid":
		return fmt.Sprintf("invalid %s %q", name, fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	default:
		return fmt.Sprintf("invalid %s", name)
	}
}
