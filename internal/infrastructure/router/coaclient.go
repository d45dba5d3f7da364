// Package router talks to the NAS management API that can drop a live PPP
// session, forcing the subscriber to reauthenticate against the updated
// RADIUS records.
package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"netbill/internal/domain/radius"
	"netbill/internal/shared/config"
	"netbill/internal/shared/logger"
)

type CoAClient struct {
	endpoint string
	secret   string
	client   *http.Client
	logger   logger.Interface
}

func NewCoAClient(cfg *config.RouterConfig, logger logger.Interface) radius.SessionInvalidator {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CoAClient{
		endpoint: cfg.DisconnectURL,
		secret:   cfg.Secret,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

type disconnectRequest struct {
	Username string `json:"username"`
}

type disconnectResponse struct {
	Disconnected bool   `json:"disconnected"`
	Message      string `json:"message"`
}

// ForceReauthentication asks the NAS to drop the subscriber's session.
// 404 from the NAS means no live session, a normal outcome reported as
// (false, nil).
func (c *CoAClient) ForceReauthentication(ctx context.Context, username string) (bool, error) {
	body, err := json.Marshal(disconnectRequest{Username: username})
	if err != nil {
		return false, fmt.Errorf("failed to marshal disconnect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("failed to build disconnect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.secret != "" {
		req.Header.Set("Authorization", "Bearer "+c.secret)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("disconnect request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.logger.Infow("no live session on NAS", "username", username)
		return false, nil
	case resp.StatusCode >= 300:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return false, fmt.Errorf("NAS returned status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed disconnectResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		// A 2xx with an unparseable body still means the NAS accepted the
		// disconnect.
		c.logger.Warnw("unparseable NAS disconnect response", "username", username, "error", err)
		return true, nil
	}

	c.logger.Infow("session disconnect requested",
		"username", username,
		"disconnected", parsed.Disconnected,
	)
	return parsed.Disconnected, nil
}
