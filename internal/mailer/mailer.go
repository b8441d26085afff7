// Package mailer delivers transactional email through an HTTP mail API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Mailer sends password reset emails.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetLink string) error
}

// APIClient posts messages to a Resend style JSON mail API.
type APIClient struct {
	apiURL string
	apiKey string
	from   string
	client *http.Client
}

func NewAPIClient(apiURL, apiKey, from string) *APIClient {
	return &APIClient{
		apiURL: apiURL,
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (c *APIClient) SendPasswordReset(ctx context.Context, to, resetLink string) error {
	body, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      []string{to},
		Subject: "Reset your password",
		HTML: fmt.Sprintf(
			`<p>We received a request to reset your password.</p>`+
				`<p><a href="%s">Choose a new password</a></p>`+
				`<p>The link expires in 30 minutes. If you didn't ask for this, you can ignore this email.</p>`,
			resetLink),
	})
	if err != nil {
		return fmt.Errorf("marshal mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send mail request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail API returned %d: %s", resp.StatusCode, detail)
	}
	return nil
}

// ResetLink builds the user-facing reset URL carrying the raw token.
func ResetLink(baseURL, token string) string {
	return baseURL + "?token=" + url.QueryEscape(token)
}
