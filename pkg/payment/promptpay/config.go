package promptpay

// Config represents the configuration for the PromptPay QR builder
type Config struct {
	// MerchantID is the PromptPay phone number receiving the payment
	MerchantID string

	// QRBaseURL is the external QR image generation endpoint
	QRBaseURL string

	// QRSize is the requested image size, e.g. "300x300"
	QRSize string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.MerchantID == "" {
		return ErrInvalidMerchant
	}
	if c.QRBaseURL == "" {
		return ErrInvalidConfig
	}
	if c.QRSize == "" {
		return ErrInvalidConfig
	}
	return nil
}
