package repository

import "errors"

// Errors surfaced from transactional guards inside repositories. The
// service layer maps these onto its own sentinels.
var (
	ErrZeroAmountEntry      = errors.New("ledger entry amount is zero")
	ErrExpenseAlreadyIssued = errors.New("expense already issued")
	ErrMonthClosed          = errors.New("monthly balance already closed")
	ErrCarryForwardConflict = errors.New("carry-forward conflicts with existing previous obligations")
)
