package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"netbill/internal/domain/notification"
)

// wablasAdapter speaks the Wablas JSON API. The device token goes into the
// Authorization header.
type wablasAdapter struct {
	provider *notification.Provider
	client   *http.Client
}

func newWablasAdapter(provider *notification.Provider, client *http.Client) *wablasAdapter {
	return &wablasAdapter{provider: provider, client: client}
}

type wablasRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

type wablasResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

func (a *wablasAdapter) Send(ctx context.Context, phone, message string) (string, error) {
	body, err := json.Marshal(wablasRequest{Phone: phone, Message: message})
	if err != nil {
		return "", fmt.Errorf("failed to marshal wablas request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.provider.APIURL(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build wablas request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", a.provider.Credential(notification.CredentialToken))

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("wablas request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("failed to read wablas response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wablas returned status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed wablasResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("unparseable wablas response: %s", string(raw))
	}
	if !parsed.Status {
		return "", fmt.Errorf("wablas rejected message: %s", parsed.Message)
	}

	return string(raw), nil
}
