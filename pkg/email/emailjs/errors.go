package emailjs

import "errors"

var (
	// ErrNotConfigured is returned when the service, template or public key
	// is missing or still a placeholder. This is a local configuration
	// error: no network call is attempted.
	ErrNotConfigured = errors.New("emailjs not configured")

	// ErrInvalidSender is returned when EmailJS rejects the configured
	// sender identity ("The user is invalid")
	ErrInvalidSender = errors.New("emailjs sender configuration invalid")

	// ErrSendFailed is returned for any other rejection from the service
	ErrSendFailed = errors.New("emailjs send failed")

	// ErrNetworkError is returned when the service cannot be reached
	ErrNetworkError = errors.New("emailjs network error")
)
