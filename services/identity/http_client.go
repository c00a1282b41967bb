package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient talks to the hosted identity provider over its REST API.
type HTTPClient struct {
	baseURL string
	project string
	apiKey  string
	hc      *http.Client
}

// NewHTTPClient creates an identity client for the given provider endpoint.
func NewHTTPClient(baseURL, project, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		project: project,
		apiKey:  apiKey,
		hc:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) IssuePhoneToken(ctx context.Context, uniqueID, phone string) (*Token, error) {
	body := map[string]string{"userId": uniqueID, "phone": phone}
	var token Token
	if err := c.do(ctx, http.MethodPost, "/tokens/phone", "", body, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (c *HTTPClient) IssueEmailToken(ctx context.Context, uniqueID, email string) (*Token, error) {
	body := map[string]string{"userId": uniqueID, "email": email}
	var token Token
	if err := c.do(ctx, http.MethodPost, "/tokens/email", "", body, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (c *HTTPClient) ExchangeToken(ctx context.Context, userID, code string) (*Session, error) {
	body := map[string]string{"userId": userID, "secret": code}
	var session Session
	if err := c.do(ctx, http.MethodPut, "/sessions/token", "", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *HTTPClient) CurrentIdentity(ctx context.Context, sessionToken string) (*Identity, error) {
	var identity Identity
	if err := c.do(ctx, http.MethodGet, "/account", sessionToken, nil, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (c *HTTPClient) DeleteSession(ctx context.Context, sessionToken string) error {
	return c.do(ctx, http.MethodDelete, "/account/sessions/current", sessionToken, nil, nil)
}

// providerError is the provider's error envelope. Its message is surfaced to
// users verbatim, so decoding must not rewrite it.
type providerError struct {
	Message string `json:"message"`
}

func (c *HTTPClient) do(ctx context.Context, method, path, sessionToken string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Sdk-Project", c.project)
	if c.apiKey != "" {
		req.Header.Set("X-Sdk-Key", c.apiKey)
	}
	if sessionToken != "" {
		req.Header.Set("X-Sdk-Session", sessionToken)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var provErr providerError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&provErr); decodeErr == nil && provErr.Message != "" {
			return errors.New(provErr.Message)
		}
		return fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode provider response: %w", err)
		}
	}
	return nil
}
