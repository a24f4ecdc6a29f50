package report

import (
	"context"
	goerrors "errors"

	"github.com/jwalitptl/clinic-report-api/internal/model"
	"github.com/jwalitptl/clinic-report-api/internal/repository"
)

// recordLookup is one step of medical record resolution. A step that cannot
// find a record returns repository.ErrNotFound.
type recordLookup func(ctx context.Context, apt *model.Appointment) (*model.MedicalRecord, error)

// RecordResolver finds the medical record of an appointment, trying the
// appointment's direct reference first and the reverse lookup by appointment
// id second.
type RecordResolver struct {
	records repository.MedicalRecordRepository
	steps   []recordLookup
}

func NewRecordResolver(records repository.MedicalRecordRepository) *RecordResolver {
	r := &RecordResolver{records: records}
	r.steps = []recordLookup{r.byReference, r.byAppointment}
	return r
}

// Resolve returns nil without error when no step finds a record.
func (r *RecordResolver) Resolve(ctx context.Context, apt *model.Appointment) (*model.MedicalRecord, error) {
	for _, step := range r.steps {
		record, err := step(ctx, apt)
		switch {
		case err == nil && record != nil:
			return record, nil
		case err == nil, goerrors.Is(err, repository.ErrNotFound):
			continue
		default:
			return nil, err
		}
	}
	return nil, nil
}

func (r *RecordResolver) byReference(ctx context.Context, apt *model.Appointment) (*model.MedicalRecord, error) {
	if apt.MedicalRecordID == nil {
		return nil, repository.ErrNotFound
	}
	return r.records.Get(ctx, *apt.MedicalRecordID)
}

func (r *RecordResolver) byAppointment(ctx context.Context, apt *model.Appointment) (*model.MedicalRecord, error) {
	return r.records.GetByAppointment(ctx, apt.ID)
}
