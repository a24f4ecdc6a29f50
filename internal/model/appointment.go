package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
)

type Appointment struct {
	Base
	PatientID        uuid.UUID         `db:"patient_id" json:"patient_id"`
	DoctorID         uuid.UUID         `db:"doctor_id" json:"doctor_id"`
	ExaminationFeeID *uuid.UUID        `db:"examination_fee_id" json:"examination_fee_id,omitempty"`
	MedicalRecordID  *uuid.UUID        `db:"medical_record_id" json:"-"`
	AppointmentTime  time.Time         `db:"appointment_time" json:"appointment_time"`
	Status           AppointmentStatus `db:"status" json:"status"`
	ExaminationFee   decimal.Decimal   `db:"examination_fee" json:"examination_fee"`
	Notes            *string           `db:"notes" json:"notes,omitempty"`

	Patient         *PatientSummary `db:"-" json:"patient,omitempty"`
	Doctor          *DoctorSummary  `db:"-" json:"doctor,omitempty"`
	ExaminationType *string         `db:"-" json:"examination_type,omitempty"`
}

// PatientSummary is the patient contact data joined onto report rows.
type PatientSummary struct {
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// DoctorSummary is the doctor display data joined onto report rows.
type DoctorSummary struct {
	FullName  string  `json:"full_name"`
	Specialty *string `json:"specialty,omitempty"`
}

// IsCompleted reports whether the visit took place.
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}

// AppointmentFilters narrows the report query. Zero values impose no constraint.
type AppointmentFilters struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Status    AppointmentStatus
	StartTime time.Time
	EndTime   time.Time
}
