package promptpay

import "errors"

var (
	// ErrInvalidConfig is returned when the builder configuration is incomplete
	ErrInvalidConfig = errors.New("invalid promptpay configuration")

	// ErrInvalidMerchant is returned when the merchant phone number is missing
	// or cannot be normalized to the national account format
	ErrInvalidMerchant = errors.New("invalid promptpay merchant id")

	// ErrInvalidAmount is returned when the payable amount is zero or negative
	ErrInvalidAmount = errors.New("invalid payment amount")
)
