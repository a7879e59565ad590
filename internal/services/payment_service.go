package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sgavril/condoflow-api/internal/models"
	"github.com/sgavril/condoflow-api/internal/repository"
)

// PaymentService applies incoming payments against an apartment's
// balance. The payment record, the ledger entry and the cached balance
// move together in one storage transaction; a partial write cannot
// survive a failure.
type PaymentService struct {
	paymentRepo   repository.PaymentRepository
	apartmentRepo repository.ApartmentRepository
	ledgerRepo    repository.LedgerRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	apartmentRepo repository.ApartmentRepository,
	ledgerRepo repository.LedgerRepository,
) *PaymentService {
	return &PaymentService{
		paymentRepo:   paymentRepo,
		apartmentRepo: apartmentRepo,
		ledgerRepo:    ledgerRepo,
	}
}

// ApplyPaymentRequest records one incoming payment.
type ApplyPaymentRequest struct {
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
	Method string    `json:"method"`
}

// ApplyPayment validates and records a payment. The balance always
// increases by the full amount; the previous-obligations split on the
// payment record is informational only.
func (s *PaymentService) ApplyPayment(ctx context.Context, apartmentID uint, req ApplyPaymentRequest) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if req.Method == "" {
		req.Method = models.PaymentMethodCash
	}
	if !models.ValidPaymentMethod(req.Method) {
		return nil, fmt.Errorf("unknown payment method %q", req.Method)
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	apartment, err := s.apartmentRepo.FindByID(ctx, apartmentID)
	if err != nil {
		return nil, ErrNotFound
	}

	amount := models.RoundCents(req.Amount)
	payment := &models.Payment{
		BuildingID:    apartment.BuildingID,
		ApartmentID:   apartment.ID,
		Amount:        amount,
		PaymentDate:   req.Date,
		Method:        req.Method,
		ReceiptNumber: uuid.NewString(),
	}
	entry := &models.Transaction{
		BuildingID:      apartment.BuildingID,
		ApartmentID:     apartment.ID,
		Amount:          amount,
		Type:            models.EntryPaymentReceived,
		Description:     fmt.Sprintf("Payment (%s)", req.Method),
		Reference:       uuid.NewString(),
		TransactionDate: req.Date,
	}

	if err := s.ledgerRepo.AppendPayment(ctx, payment, entry); err != nil {
		return nil, fmt.Errorf("failed to apply payment: %w", err)
	}

	return payment, nil
}

// History returns an apartment's payments in date order.
func (s *PaymentService) History(ctx context.Context, apartmentID uint) ([]models.Payment, error) {
	if _, err := s.apartmentRepo.FindByID(ctx, apartmentID); err != nil {
		return nil, ErrNotFound
	}
	return s.paymentRepo.FindByApartment(ctx, apartmentID)
}
