package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client represents an EmailJS REST API client
type Client struct {
	config     Config
	httpClient *http.Client
}

// sendRequest is the body of the EmailJS send API
type sendRequest struct {
	ServiceID      string                 `json:"service_id"`
	TemplateID     string                 `json:"template_id"`
	UserID         string                 `json:"user_id"`
	TemplateParams map[string]interface{} `json:"template_params"`
}

// NewClient creates a new EmailJS client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// GetConfig returns the client configuration
func (c *Client) GetConfig() Config {
	return c.config
}

// Send dispatches one templated email with the given parameter map. The call
// is fire-once: no retries are performed here.
func (c *Client) Send(ctx context.Context, params map[string]interface{}) error {
	reqBody, err := json.Marshal(sendRequest{
		ServiceID:      c.config.ServiceID,
		TemplateID:     c.config.TemplateID,
		UserID:         c.config.PublicKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// EmailJS reports errors as plain text bodies
		msg := strings.TrimSpace(string(body))
		if strings.Contains(msg, "The user is invalid") {
			return fmt.Errorf("%w: %s", ErrInvalidSender, msg)
		}
		return fmt.Errorf("%w: status %d: %s", ErrSendFailed, resp.StatusCode, msg)
	}

	return nil
}
