package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"netbill/internal/domain/notification"
)

// nusaSMSAdapter speaks the NusaSMS gateway with HTTP basic auth. Any 2xx
// response counts as accepted.
type nusaSMSAdapter struct {
	provider *notification.Provider
	client   *http.Client
}

func newNusaSMSAdapter(provider *notification.Provider, client *http.Client) *nusaSMSAdapter {
	return &nusaSMSAdapter{provider: provider, client: client}
}

func (a *nusaSMSAdapter) Send(ctx context.Context, phone, message string) (string, error) {
	form := url.Values{}
	form.Set("destination", phone)
	form.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.provider.APIURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build nusasms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(
		a.provider.Credential(notification.CredentialUsername),
		a.provider.Credential(notification.CredentialPassword),
	)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("nusasms request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("failed to read nusasms response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("nusasms returned status %d: %s", resp.StatusCode, string(raw))
	}

	return string(raw), nil
}
