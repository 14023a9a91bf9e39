package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
)

// MockCashflowNarrator is a mock implementation of port.CashflowNarrator.
type MockCashflowNarrator struct {
	mock.Mock
}

func (m *MockCashflowNarrator) Narrate(ctx context.Context, summary domain.CashflowSummary) (string, error) {
	args := m.Called(ctx, summary)
	return args.String(0), args.Error(1)
}
