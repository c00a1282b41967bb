package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ayursutra/config"
)

// Notifier delivers human-readable messages to a recipient mailbox.
type Notifier interface {
	Send(ctx context.Context, subject, message string) error
}

// RelayClient submits messages to a hosted form-to-email relay. The relay
// accepts form-encoded submissions and answers with a JSON status envelope.
type RelayClient struct {
	endpoint   string
	accessKey  string
	recipient  string
	httpClient *http.Client
}

func NewRelayClient(cfg *config.Config) *RelayClient {
	return &RelayClient{
		endpoint:  cfg.RelayEndpoint,
		accessKey: cfg.RelayAccessKey,
		recipient: cfg.RelayRecipient,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type relayResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *RelayClient) Send(ctx context.Context, subject, message string) error {
	form := url.Values{}
	form.Set("access_key", c.accessKey)
	form.Set("to", c.recipient)
	form.Set("subject", subject)
	form.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach relay: %w", err)
	}
	defer resp.Body.Close()

	var body relayResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode relay response: %w", err)
	}
	if !body.Success {
		if body.Message != "" {
			return fmt.Errorf("relay rejected submission: %s", body.Message)
		}
		return fmt.Errorf("relay rejected submission with status %d", resp.StatusCode)
	}
	return nil
}
