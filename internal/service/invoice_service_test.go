package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/domain"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/port"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/internal/service"
	"github.com/zaxkaylantv-cmd/kalyanai-doc-cashflow-backend/mocks"
)

func TestInvoiceCreate_DefaultsApplied(t *testing.T) {
	repo := &mocks.MockInvoiceRepo{}
	var saved *domain.Invoice
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*domain.Invoice)
	}).Return(nil)

	svc := service.NewInvoiceService(repo)
	inv, err := svc.Create(context.Background(), service.CreateInvoiceInput{
		Supplier:      "Acme Corp",
		InvoiceNumber: "INV-7",
		Amount:        120,
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Upcoming", inv.Status)
	assert.Equal(t, "Uncategorised", inv.Category)
	assert.Equal(t, "Manual", inv.Source)
	assert.NotEmpty(t, inv.IssueDate)
	assert.NotEmpty(t, inv.DueDate)
	assert.Equal(t, "Week of "+inv.DueDate, inv.WeekLabel)
	assert.False(t, inv.Archived)
}

func TestInvoiceCreate_ExplicitDatesKept(t *testing.T) {
	repo := &mocks.MockInvoiceRepo{}
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := service.NewInvoiceService(repo)
	inv, err := svc.Create(context.Background(), service.CreateInvoiceInput{
		Supplier:      "Acme Corp",
		InvoiceNumber: "INV-8",
		IssueDate:     "2024-10-01",
		DueDate:       "2024-10-20",
		Category:      "Utilities",
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-10-01", inv.IssueDate)
	assert.Equal(t, "2024-10-20", inv.DueDate)
	assert.Equal(t, "Week of 2024-10-20", inv.WeekLabel)
	assert.Equal(t, "Utilities", inv.Category)
}

func TestInvoiceCreate_RejectsBadInput(t *testing.T) {
	cases := map[string]service.CreateInvoiceInput{
		"malformed issue date": {Supplier: "Acme", InvoiceNumber: "INV-9", IssueDate: "01/10/2024"},
		"malformed due date":   {Supplier: "Acme", InvoiceNumber: "INV-9", DueDate: "next friday"},
		"negative amount":      {Supplier: "Acme", InvoiceNumber: "INV-9", Amount: -5},
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &mocks.MockInvoiceRepo{}
			svc := service.NewInvoiceService(repo)

			_, err := svc.Create(context.Background(), input)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestMarkPaid(t *testing.T) {
	repo := &mocks.MockInvoiceRepo{}
	id := uuid.New()
	repo.On("UpdateStatus", mock.Anything, id, domain.StatusPaid).Return(nil)
	repo.On("GetByID", mock.Anything, id).Return(&domain.Invoice{ID: id, Status: domain.StatusPaid}, nil)

	svc := service.NewInvoiceService(repo)
	inv, err := svc.MarkPaid(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, inv.Status)
	repo.AssertExpectations(t)
}

func TestMarkPaid_NotFound(t *testing.T) {
	repo := &mocks.MockInvoiceRepo{}
	id := uuid.New()
	repo.On("UpdateStatus", mock.Anything, id, domain.StatusPaid).Return(domain.ErrNotFound)

	svc := service.NewInvoiceService(repo)
	_, err := svc.MarkPaid(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArchiveUnarchive(t *testing.T) {
	repo := &mocks.MockInvoiceRepo{}
	id := uuid.New()
	repo.On("SetArchived", mock.Anything, id, true).Return(nil).Once()
	repo.On("GetByID", mock.Anything, id).Return(&domain.Invoice{ID: id, Archived: true}, nil).Once()
	repo.On("SetArchived", mock.Anything, id, false).Return(nil).Once()
	repo.On("GetByID", mock.Anything, id).Return(&domain.Invoice{ID: id, Archived: false}, nil).Once()

	svc := service.NewInvoiceService(repo)

	inv, err := svc.Archive(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, inv.Archived)

	inv, err = svc.Unarchive(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, inv.Archived)
	repo.AssertExpectations(t)
}

func TestList_DefaultLimit(t *testing.T) {
	repo := &mocks.MockInvoiceRepo{}
	repo.On("List", mock.Anything, mock.MatchedBy(func(f port.InvoiceFilter) bool {
		return f.Limit == 50
	})).Return([]domain.Invoice{}, 0, nil)

	svc := service.NewInvoiceService(repo)
	_, _, err := svc.List(context.Background(), port.InvoiceFilter{})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
