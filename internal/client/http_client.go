package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"painel-etl/internal/config"
)

// WebhookClient fetches dashboard payloads from the remote webhooks.
// The payload schema is unversioned, so responses decode into a loose
// any and are unwrapped downstream by the transformer.
type WebhookClient struct {
	client        *http.Client
	retryAttempts int
	logger        *logrus.Logger
}

func NewWebhookClient(cfg *config.Config, logger *logrus.Logger) *WebhookClient {
	return &WebhookClient{
		client: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		retryAttempts: cfg.RetryAttempts,
		logger:        logger,
	}
}

// FetchPayload GETs a webhook and decodes the JSON body. Cancelling the
// context aborts the fetch between retries and mid-request, which is
// how a newer ingest supersedes a stalled one.
func (c *WebhookClient) FetchPayload(ctx context.Context, url string) (any, error) {
	var lastErr error

	for attempt := 0; attempt < c.retryAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt*attempt) * time.Second
			c.logger.WithFields(logrus.Fields{
				"attempt": attempt + 1,
				"backoff": backoff,
				"url":     url,
			}).Warn("Retrying webhook fetch after backoff")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create webhook request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("client error: %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		var payload any
		if err := json.Unmarshal(body, &payload); err != nil {
			lastErr = err
			continue
		}

		c.logger.WithFields(logrus.Fields{
			"attempt":     attempt + 1,
			"status_code": resp.StatusCode,
			"url":         url,
		}).Debug("Webhook fetch successful")

		return payload, nil
	}

	return nil, fmt.Errorf("all retry attempts failed, last error: %w", lastErr)
}

// PostJSON delivers a signed payload to the export sink.
func (c *WebhookClient) PostJSON(ctx context.Context, url string, data any, signature string) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal export data: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.retryAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt*attempt) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
		if err != nil {
			return fmt.Errorf("failed to create export request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Signature", signature)

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return fmt.Errorf("client error: %d", resp.StatusCode)
		}
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
	}

	return fmt.Errorf("export failed after retries: %w", lastErr)
}
