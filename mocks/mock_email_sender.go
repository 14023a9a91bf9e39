package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendDueReminder(ctx context.Context, toEmail string, invoices []domain.Invoice) error {
	args := m.Called(ctx, toEmail, invoices)
	return args.Error(0)
}
