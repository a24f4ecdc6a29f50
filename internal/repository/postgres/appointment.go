package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-report-api/internal/model"
)

// appointmentRow carries the joined display columns next to the appointment.
type appointmentRow struct {
	model.Appointment
	PatientName     *string `db:"patient_name"`
	PatientPhone    *string `db:"patient_phone"`
	PatientEmail    *string `db:"patient_email"`
	DoctorName      *string `db:"doctor_name"`
	SpecialtyName   *string `db:"specialty_name"`
	ExaminationType *string `db:"examination_type"`
}

func (row *appointmentRow) toModel() *model.Appointment {
	apt := row.Appointment
	if row.PatientName != nil {
		apt.Patient = &model.PatientSummary{
			FullName: *row.PatientName,
			Phone:    row.PatientPhone,
			Email:    row.PatientEmail,
		}
	}
	if row.DoctorName != nil {
		apt.Doctor = &model.DoctorSummary{
			FullName:  *row.DoctorName,
			Specialty: row.SpecialtyName,
		}
	}
	apt.ExaminationType = row.ExaminationType
	return &apt
}

func (r *appointmentRepository) reportQuery(filters *model.AppointmentFilters) (string, []interface{}, error) {
	ds := r.dialect.From(goqu.T("appointments").As("a")).
		Select(
			goqu.I("a.id"),
			goqu.I("a.patient_id"),
			goqu.I("a.doctor_id"),
			goqu.I("a.examination_fee_id"),
			goqu.I("a.medical_record_id"),
			goqu.I("a.appointment_time"),
			goqu.I("a.status"),
			goqu.L("COALESCE(a.examination_fee, 0)").As("examination_fee"),
			goqu.I("a.notes"),
			goqu.I("a.created_at"),
			goqu.I("a.updated_at"),
			goqu.I("pu.full_name").As("patient_name"),
			goqu.I("pu.phone").As("patient_phone"),
			goqu.I("pu.email").As("patient_email"),
			goqu.I("du.full_name").As("doctor_name"),
			goqu.I("s.name").As("specialty_name"),
			goqu.I("ef.examination_type").As("examination_type"),
		).
		LeftJoin(goqu.T("patients").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("a.patient_id")))).
		LeftJoin(goqu.T("users").As("pu"), goqu.On(goqu.I("pu.id").Eq(goqu.I("p.user_id")))).
		LeftJoin(goqu.T("doctors").As("d"), goqu.On(goqu.I("d.id").Eq(goqu.I("a.doctor_id")))).
		LeftJoin(goqu.T("users").As("du"), goqu.On(goqu.I("du.id").Eq(goqu.I("d.user_id")))).
		LeftJoin(goqu.T("specialties").As("s"), goqu.On(goqu.I("s.id").Eq(goqu.I("d.specialty_id")))).
		LeftJoin(goqu.T("examination_fees").As("ef"), goqu.On(goqu.I("ef.id").Eq(goqu.I("a.examination_fee_id")))).
		Where(
			goqu.I("a.appointment_time").Gte(filters.StartTime),
			goqu.I("a.appointment_time").Lte(filters.EndTime),
		)

	if filters.DoctorID != uuid.Nil {
		ds = ds.Where(goqu.I("a.doctor_id").Eq(filters.DoctorID.String()))
	}
	if filters.PatientID != uuid.Nil {
		ds = ds.Where(goqu.I("a.patient_id").Eq(filters.PatientID.String()))
	}
	if filters.Status != "" {
		ds = ds.Where(goqu.I("a.status").Eq(string(filters.Status)))
	}

	return ds.Order(goqu.I("a.appointment_time").Desc()).Prepared(true).ToSQL()
}

func (r *appointmentRepository) ListForReport(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query, args, err := r.reportQuery(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to build appointment query: %w", err)
	}

	var rows []*appointmentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	appointments := make([]*model.Appointment, 0, len(rows))
	for _, row := range rows {
		appointments = append(appointments, row.toModel())
	}
	return appointments, nil
}
