package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidExecContext = errors.New("invalid execution context")
	ErrOperationFailed    = errors.New("operation failed")
	ErrReadDatabaseRow    = errors.New("failed to read database row")

	// Business-rule rejections (HTTP 400, no retry)
	ErrFreeActivity         = errors.New("activity is free of charge; no payment is required")
	ErrDiscountNotAvailable = errors.New("discount not available for this activity")
	ErrDiscountExpired      = errors.New("early bird discount deadline has passed")
	ErrInvalidDiscount      = errors.New("invalid discount selection")

	// Reconciliation integrity gates. These indicate a tampered or replayed
	// confirmation attempt and are logged separately from ordinary validation.
	ErrPaymentNotCompleted = errors.New("payment has not been completed")
	ErrInvalidCurrency     = errors.New("payment currency does not match the expected currency")
	ErrActivityMismatch    = errors.New("payment intent belongs to a different activity")
	ErrAmountInconsistency = errors.New("payment amount does not match the recorded final price")

	// A registration already exists for the payment intent; exactly one
	// confirmation wins (HTTP 409 for the loser).
	ErrDuplicateRegistration = errors.New("a registration already exists for this payment intent")

	ErrLockNotAcquired = errors.New("could not acquire lock")
)
