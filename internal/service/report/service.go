package report

import (
	"context"
	goerrors "errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jwalitptl/clinic-report-api/internal/model"
	"github.com/jwalitptl/clinic-report-api/internal/repository"
	"github.com/jwalitptl/clinic-report-api/pkg/errors"
	"github.com/jwalitptl/clinic-report-api/pkg/logger"
	"github.com/jwalitptl/clinic-report-api/pkg/metrics"
)

const defaultMaxConcurrency = 8

// Filters narrows a report. Zero values impose no constraint.
type Filters struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Status    model.AppointmentStatus
}

type Options struct {
	// Location sets the calendar used for day boundaries.
	Location *time.Location
	// MaxConcurrency bounds how many appointments resolve at once.
	MaxConcurrency int
}

type Service struct {
	appointments   repository.AppointmentRepository
	medicines      repository.MedicineRepository
	resolver       *RecordResolver
	location       *time.Location
	maxConcurrency int
	metrics        *metrics.Metrics
	logger         *logger.Logger
}

func NewService(
	appointments repository.AppointmentRepository,
	records repository.MedicalRecordRepository,
	medicines repository.MedicineRepository,
	m *metrics.Metrics,
	log *logger.Logger,
	opts Options,
) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.MaxConcurrency < 1 {
		opts.MaxConcurrency = defaultMaxConcurrency
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		appointments:   appointments,
		medicines:      medicines,
		resolver:       NewRecordResolver(records),
		location:       opts.Location,
		maxConcurrency: opts.MaxConcurrency,
		metrics:        m,
		logger:         log,
	}
}

// ParseDateRange builds a DateRange in the service's calendar.
func (s *Service) ParseDateRange(start, end string) (DateRange, error) {
	return NewDateRange(start, end, s.location)
}

// GenerateRevenueReport lists every appointment in the range matching the
// filters, newest first, and computes its costs and the report totals. Any
// store failure aborts the whole report.
func (s *Service) GenerateRevenueReport(ctx context.Context, period DateRange, filters Filters) (*model.RevenueReport, error) {
	start := time.Now()

	report, err := s.generate(ctx, period, filters)

	outcome := metrics.OutcomeSuccess
	switch {
	case errors.IsValidation(err):
		outcome = metrics.OutcomeValidation
	case err != nil:
		outcome = metrics.OutcomeFailure
	}
	if s.metrics != nil {
		s.metrics.ReportsGenerated.WithLabelValues(outcome).Inc()
		s.metrics.ReportLatency.Observe(time.Since(start).Seconds())
		if report != nil {
			s.metrics.ReportAppointments.Observe(float64(len(report.Appointments)))
		}
	}

	return report, err
}

func (s *Service) generate(ctx context.Context, period DateRange, filters Filters) (*model.RevenueReport, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	appointments, err := s.appointments.ListForReport(ctx, &model.AppointmentFilters{
		DoctorID:  filters.DoctorID,
		PatientID: filters.PatientID,
		Status:    filters.Status,
		StartTime: period.Start,
		EndTime:   period.End,
	})
	if err != nil {
		s.countLookup("appointment", err)
		return nil, errors.Lookup("appointments", err)
	}

	lines := make([]model.ReportLine, len(appointments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)
	for i, apt := range appointments {
		i, apt := i, apt
		g.Go(func() error {
			line, err := s.buildLine(gctx, apt)
			if err != nil {
				return err
			}
			lines[i] = line
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error(err, "revenue report aborted",
			"start", period.Start, "end", period.End, "appointments", len(appointments))
		return nil, err
	}

	report := &model.RevenueReport{
		Appointments: lines,
		Summary:      Summarize(lines),
	}

	s.logger.Info("revenue report generated",
		"start", period.Start,
		"end", period.End,
		"appointments", report.Summary.TotalAppointments,
		"revenue", report.Summary.TotalRevenue.String(),
	)
	return report, nil
}

func (s *Service) buildLine(ctx context.Context, apt *model.Appointment) (model.ReportLine, error) {
	record, err := s.resolver.Resolve(ctx, apt)
	if record == nil && err == nil {
		s.countLookup("medical_record", repository.ErrNotFound)
	} else {
		s.countLookup("medical_record", err)
	}
	if err != nil {
		return model.ReportLine{}, errors.Lookup("medical record", err)
	}

	var priced []PricedMedicine
	if record != nil && record.IsDispensed() && len(record.Medications) > 0 {
		priced, err = s.priceMedicines(ctx, record)
		if err != nil {
			return model.ReportLine{}, err
		}
	}

	return BuildLine(apt, record, priced), nil
}

// priceMedicines looks every prescribed medicine up in prescription order.
// A medicine that no longer exists contributes nothing.
func (s *Service) priceMedicines(ctx context.Context, record *model.MedicalRecord) ([]PricedMedicine, error) {
	priced := make([]PricedMedicine, 0, len(record.Medications))
	for _, prescribed := range record.Medications {
		if prescribed.MedicineID == nil {
			continue
		}

		medicine, err := s.medicines.Get(ctx, *prescribed.MedicineID)
		s.countLookup("medicine", err)
		if goerrors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("prescribed medicine not found, counted as zero",
				"medical_record_id", record.ID.String(),
				"medicine_id", prescribed.MedicineID.String())
			continue
		}
		if err != nil {
			return nil, errors.Lookup("medicine", err)
		}

		priced = append(priced, PricedMedicine{
			Price:    medicine.Price,
			Quantity: prescribed.Quantity,
		})
	}
	return priced, nil
}

func (s *Service) countLookup(entity string, err error) {
	if s.metrics == nil {
		return
	}
	result := "found"
	switch {
	case goerrors.Is(err, repository.ErrNotFound):
		result = "missing"
	case err != nil:
		result = "error"
	}
	s.metrics.StoreLookups.WithLabelValues(entity, result).Inc()
}
