package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-report-api/internal/model"
)

const medicalRecordColumns = `
	id, appointment_id, patient_id, doctor_id, status, diagnosis,
	COALESCE(medications_prescribed, '[]'::jsonb) AS medications_prescribed,
	created_at, updated_at`

type medicalRecordRow struct {
	model.MedicalRecord
	MedicationsJSON []byte `db:"medications_prescribed"`
}

func (r *medicalRecordRepository) Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error) {
	query := `SELECT` + medicalRecordColumns + `
		FROM medical_records
		WHERE id = $1`

	var row medicalRecordRow
	if err := r.getOne(ctx, "failed to get medical record", &row, query, id); err != nil {
		return nil, err
	}
	return r.unmarshalRecordFields(&row)
}

// GetByAppointment returns the most recent record written for the
// appointment.
func (r *medicalRecordRepository) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.MedicalRecord, error) {
	query := `SELECT` + medicalRecordColumns + `
		FROM medical_records
		WHERE appointment_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	var row medicalRecordRow
	if err := r.getOne(ctx, "failed to get medical record by appointment", &row, query, appointmentID); err != nil {
		return nil, err
	}
	return r.unmarshalRecordFields(&row)
}

func (r *medicalRecordRepository) unmarshalRecordFields(row *medicalRecordRow) (*model.MedicalRecord, error) {
	record := row.MedicalRecord
	if len(row.MedicationsJSON) > 0 {
		if err := json.Unmarshal(row.MedicationsJSON, &record.Medications); err != nil {
			return nil, fmt.Errorf("failed to unmarshal medications of record %s: %w", record.ID, err)
		}
	}
	if record.Medications == nil {
		record.Medications = []model.PrescribedMedicine{}
	}
	return &record, nil
}
