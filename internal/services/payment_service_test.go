package services

import (
	"context"
	"testing"
	"time"

	"github.com/sgavril/condoflow-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestPaymentService_ApplyPayment(t *testing.T) {
	paymentRepo := &mockPaymentRepo{}
	apartmentRepo := &mockApartmentRepo{}
	ledgerRepo := &mockLedgerRepo{}
	service := NewPaymentService(paymentRepo, apartmentRepo, ledgerRepo)

	apartmentRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Apartment, error) {
		return &models.Apartment{ID: id, BuildingID: 3, CurrentBalance: -200.00}, nil
	}

	var gotPayment *models.Payment
	var gotEntry *models.Transaction
	ledgerRepo.mockAppendPayment = func(ctx context.Context, payment *models.Payment, entry *models.Transaction) error {
		gotPayment = payment
		gotEntry = entry
		return nil
	}

	payment, err := service.ApplyPayment(context.Background(), 7, ApplyPaymentRequest{
		Amount: 150.00,
		Date:   time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		Method: models.PaymentMethodBankTransfer,
	})
	assert.NoError(t, err)
	assert.Equal(t, gotPayment, payment)
	assert.Equal(t, 150.00, payment.Amount)
	assert.Equal(t, models.PaymentMethodBankTransfer, payment.Method)
	assert.NotEmpty(t, payment.ReceiptNumber)

	assert.Equal(t, models.EntryPaymentReceived, gotEntry.Type)
	assert.Equal(t, 150.00, gotEntry.Amount)
	assert.Equal(t, uint(3), gotEntry.BuildingID)
	assert.Equal(t, uint(7), gotEntry.ApartmentID)
}

func TestPaymentService_ApplyPayment_DefaultsMethodAndDate(t *testing.T) {
	apartmentRepo := &mockApartmentRepo{}
	ledgerRepo := &mockLedgerRepo{}
	service := NewPaymentService(&mockPaymentRepo{}, apartmentRepo, ledgerRepo)

	apartmentRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Apartment, error) {
		return &models.Apartment{ID: id, BuildingID: 1}, nil
	}
	ledgerRepo.mockAppendPayment = func(ctx context.Context, payment *models.Payment, entry *models.Transaction) error {
		return nil
	}

	payment, err := service.ApplyPayment(context.Background(), 1, ApplyPaymentRequest{Amount: 10.00})
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentMethodCash, payment.Method)
	assert.False(t, payment.PaymentDate.IsZero())
}

func TestPaymentService_ApplyPayment_RejectsNonPositiveAmount(t *testing.T) {
	service := NewPaymentService(&mockPaymentRepo{}, &mockApartmentRepo{}, &mockLedgerRepo{})

	_, err := service.ApplyPayment(context.Background(), 1, ApplyPaymentRequest{Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = service.ApplyPayment(context.Background(), 1, ApplyPaymentRequest{Amount: -5})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestPaymentService_ApplyPayment_UnknownMethod(t *testing.T) {
	service := NewPaymentService(&mockPaymentRepo{}, &mockApartmentRepo{}, &mockLedgerRepo{})

	_, err := service.ApplyPayment(context.Background(), 1, ApplyPaymentRequest{
		Amount: 10.00,
		Method: "barter",
	})
	assert.Error(t, err)
}

func TestPaymentService_ApplyPayment_UnknownApartment(t *testing.T) {
	apartmentRepo := &mockApartmentRepo{}
	apartmentRepo.mockFindByID = func(ctx context.Context, id uint) (*models.Apartment, error) {
		return nil, ErrNotFound
	}
	service := NewPaymentService(&mockPaymentRepo{}, apartmentRepo, &mockLedgerRepo{})

	_, err := service.ApplyPayment(context.Background(), 99, ApplyPaymentRequest{Amount: 10.00})
	assert.ErrorIs(t, err, ErrNotFound)
}
