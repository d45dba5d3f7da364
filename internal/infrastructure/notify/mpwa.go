package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"netbill/internal/domain/notification"
)

// mpwaAdapter speaks the MPWA form API. The API key travels in the request
// body next to the message, not in a header.
type mpwaAdapter struct {
	provider *notification.Provider
	client   *http.Client
}

func newMPWAAdapter(provider *notification.Provider, client *http.Client) *mpwaAdapter {
	return &mpwaAdapter{provider: provider, client: client}
}

// mpwaResponse tolerates both dialects seen in the wild: status as the
// string "success" and status as a JSON bool.
type mpwaResponse struct {
	Status  json.RawMessage `json:"status"`
	Message string          `json:"msg"`
}

func (r *mpwaResponse) ok() bool {
	s := strings.Trim(string(r.Status), `"`)
	return s == "success" || s == "true"
}

func (a *mpwaAdapter) Send(ctx context.Context, phone, message string) (string, error) {
	form := url.Values{}
	form.Set("api_key", a.provider.Credential(notification.CredentialAPIKey))
	form.Set("sender", a.provider.SenderNumber())
	form.Set("number", phone)
	form.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.provider.APIURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build mpwa request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("mpwa request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("failed to read mpwa response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mpwa returned status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed mpwaResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("unparseable mpwa response: %s", string(raw))
	}
	if !parsed.ok() {
		return "", fmt.Errorf("mpwa rejected message: %s", parsed.Message)
	}

	return string(raw), nil
}
