package services

import "errors"

// Common service errors
var (
	ErrNotFound                = errors.New("record not found")
	ErrInvalidAmount           = errors.New("amount must be positive")
	ErrZeroAmount              = errors.New("ledger entries must not have a zero amount")
	ErrUnknownDistributionType = errors.New("unknown distribution type")
	ErrUnknownEntryType        = errors.New("unknown ledger entry type")
	ErrMillsInvariant          = errors.New("building mills do not sum to 1000")
	ErrAlreadyDistributed      = errors.New("expense has already been distributed")
	ErrMonthAlreadyClosed      = errors.New("monthly balance is already closed")
	ErrCarryForwardConflict    = errors.New("carry-forward conflicts with the target month's previous obligations")
	ErrBalanceDrift            = errors.New("cached balance diverges from ledger replay")
	ErrOutsideCollectionWindow = errors.New("period is outside the reserve fund collection window")
	ErrCollectionBlocked       = errors.New("reserve collection blocked by outstanding obligations")
)
