package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-report-api/internal/model"
)

// ErrNotFound is returned by lookups that match no row.
var ErrNotFound = errors.New("not found")

// All repository interfaces in one file
type (
	// AppointmentRepository reads appointments for reporting
	AppointmentRepository interface {
		// ListForReport returns appointments inside the filter window,
		// newest first.
		ListForReport(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	}

	MedicalRecordRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error)
		GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.MedicalRecord, error)
	}

	MedicineRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Medicine, error)
	}
)
