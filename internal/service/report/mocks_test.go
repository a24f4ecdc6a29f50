package report

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/clinic-report-api/internal/model"
)

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) ListForReport(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Appointment), args.Error(1)
}

type mockRecordRepo struct {
	mock.Mock
}

func (m *mockRecordRepo) Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MedicalRecord), args.Error(1)
}

func (m *mockRecordRepo) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*model.MedicalRecord, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MedicalRecord), args.Error(1)
}

type mockMedicineRepo struct {
	mock.Mock
}

func (m *mockMedicineRepo) Get(ctx context.Context, id uuid.UUID) (*model.Medicine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Medicine), args.Error(1)
}
