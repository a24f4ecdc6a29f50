package postgres

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-report-api/internal/repository"
)

type appointmentRepository struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
}

type medicalRecordRepository struct {
	BaseRepository
}

type medicineRepository struct {
	BaseRepository
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db, dialect: goqu.Dialect("postgres")}
}

func NewMedicalRecordRepository(db *sqlx.DB) repository.MedicalRecordRepository {
	return &medicalRecordRepository{NewBaseRepository(db)}
}

func NewMedicineRepository(db *sqlx.DB) repository.MedicineRepository {
	return &medicineRepository{NewBaseRepository(db)}
}
