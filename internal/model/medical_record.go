package model

import (
	"github.com/google/uuid"
)

type MedicalRecordStatus string

const (
	MedicalRecordStatusPending    MedicalRecordStatus = "pending"
	MedicalRecordStatusPrescribed MedicalRecordStatus = "prescribed"
	MedicalRecordStatusDispensed  MedicalRecordStatus = "dispensed"
)

type MedicalRecord struct {
	Base
	AppointmentID *uuid.UUID           `db:"appointment_id" json:"appointment_id,omitempty"`
	PatientID     uuid.UUID            `db:"patient_id" json:"patient_id"`
	DoctorID      uuid.UUID            `db:"doctor_id" json:"doctor_id"`
	Status        MedicalRecordStatus  `db:"status" json:"status"`
	Diagnosis     *string              `db:"diagnosis" json:"diagnosis,omitempty"`
	Medications   []PrescribedMedicine `db:"-" json:"medications_prescribed"`
}

// PrescribedMedicine is one entry of a record's prescription list.
type PrescribedMedicine struct {
	MedicineID   *uuid.UUID `json:"medicine_id,omitempty"`
	Quantity     int        `json:"quantity"`
	Dosage       string     `json:"dosage,omitempty"`
	Instructions string     `json:"instructions,omitempty"`
}

// IsDispensed reports whether the prescribed medicines have been issued.
func (r *MedicalRecord) IsDispensed() bool {
	return r.Status == MedicalRecordStatusDispensed
}
