package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SocialClient posts a short public status message about a finished game to
// a social webhook.
type SocialClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

func NewSocialClient(endpoint, token string) *SocialClient {
	return &SocialClient{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type statusUpdate struct {
	Status string `json:"status"`
}

func (c *SocialClient) Post(ctx context.Context, message string) error {
	payload, err := json.Marshal(statusUpdate{Status: message})
	if err != nil {
		return fmt.Errorf("marshal status: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build status request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post status: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("social endpoint returned %s", resp.Status)
	}
	return nil
}
