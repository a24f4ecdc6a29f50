package report

import (
	"github.com/shopspring/decimal"

	"github.com/jwalitptl/clinic-report-api/internal/model"
)

// PricedMedicine is a dispensed prescription entry with its resolved unit price.
type PricedMedicine struct {
	Price    decimal.Decimal
	Quantity int
}

// BuildLine computes the costs of one appointment. Medicine cost counts only
// for a dispensed record and the examination fee only for a completed
// appointment.
func BuildLine(apt *model.Appointment, record *model.MedicalRecord, medicines []PricedMedicine) model.ReportLine {
	line := model.ReportLine{
		Appointment:                apt,
		MedicalRecord:              record,
		MedicineCost:               decimal.Zero,
		ExaminationFeeContribution: decimal.Zero,
	}

	if record != nil && record.IsDispensed() {
		for _, m := range medicines {
			line.MedicineCost = line.MedicineCost.Add(m.Price.Mul(decimal.NewFromInt(int64(m.Quantity))))
			line.MedicineCount += m.Quantity
		}
	}

	if apt.IsCompleted() {
		line.ExaminationFeeContribution = apt.ExaminationFee
	}

	line.TotalCost = line.ExaminationFeeContribution.Add(line.MedicineCost)
	return line
}

// Summarize totals a set of lines. Every line counts as an appointment
// whatever its status.
func Summarize(lines []model.ReportLine) model.ReportSummary {
	summary := model.ReportSummary{
		TotalAppointments:   len(lines),
		TotalExaminationFee: decimal.Zero,
		TotalMedicineFee:    decimal.Zero,
	}
	for _, line := range lines {
		summary.TotalExaminationFee = summary.TotalExaminationFee.Add(line.ExaminationFeeContribution)
		summary.TotalMedicineFee = summary.TotalMedicineFee.Add(line.MedicineCost)
	}
	summary.TotalRevenue = summary.TotalExaminationFee.Add(summary.TotalMedicineFee)
	return summary
}
