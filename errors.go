package finance

import "errors"

var (
	// ErrInvalidAmount is returned when an amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidDuration is returned when an investment duration is not at least one year.
	ErrInvalidDuration = errors.New("duration must be a positive number of years")

	// ErrMalformed is returned when persisted data cannot be decoded.
	ErrMalformed = errors.New("malformed ledger data")

	// ErrUnknownCategory is returned when a category name cannot be parsed.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrMinimumBalance is returned when an operation would take the balance under the minimum.
	ErrMinimumBalance = errors.New("balance cannot go below the minimum")
)
