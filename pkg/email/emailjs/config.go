package emailjs

import "strings"

// Config represents the configuration for the EmailJS client
type Config struct {
	// BaseURL is the EmailJS send endpoint
	BaseURL string

	// PublicKey is the account public key (user_id of the send API)
	PublicKey string

	// ServiceID identifies the configured email service
	ServiceID string

	// TemplateID identifies the order notification template
	TemplateID string
}

// Validate checks if the configuration is complete and does not carry
// placeholder identifiers left over from an unconfigured deployment.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrNotConfigured
	}
	for _, v := range []string{c.PublicKey, c.ServiceID, c.TemplateID} {
		if v == "" || isPlaceholder(v) {
			return ErrNotConfigured
		}
	}
	return nil
}

// isPlaceholder reports values like "YOUR_SERVICE_ID_HERE" that ship in
// example env files.
func isPlaceholder(v string) bool {
	return strings.HasPrefix(v, "YOUR_") && strings.HasSuffix(v, "_HERE")
}
