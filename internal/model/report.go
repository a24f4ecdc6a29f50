package model

import (
	"github.com/shopspring/decimal"
)

// ReportLine is one appointment of a revenue report together with its
// computed costs. It is never persisted.
//
// The resolved record is serialised under medical_record_id, replacing the
// bare reference, which is the shape existing report consumers read.
type ReportLine struct {
	*Appointment
	MedicalRecord              *MedicalRecord  `json:"medical_record_id"`
	MedicineCost               decimal.Decimal `json:"medicineCost"`
	MedicineCount              int             `json:"medicineCount"`
	ExaminationFeeContribution decimal.Decimal `json:"examinationFeeContribution"`
	TotalCost                  decimal.Decimal `json:"totalCost"`
}

// ReportSummary aggregates every line of a report.
type ReportSummary struct {
	TotalAppointments   int             `json:"totalAppointments"`
	TotalExaminationFee decimal.Decimal `json:"totalExaminationFee"`
	TotalMedicineFee    decimal.Decimal `json:"totalMedicineFee"`
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
}

type RevenueReport struct {
	Appointments []ReportLine  `json:"appointments"`
	Summary      ReportSummary `json:"summary"`
}
