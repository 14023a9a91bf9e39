package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
)

// MockCashflowRepo is a mock implementation of port.CashflowRepository.
type MockCashflowRepo struct {
	mock.Mock
}

func (m *MockCashflowRepo) Summary(ctx context.Context, today string) (*domain.CashflowSummary, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashflowSummary), args.Error(1)
}

func (m *MockCashflowRepo) WeekBuckets(ctx context.Context) ([]domain.WeekBucket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WeekBucket), args.Error(1)
}
