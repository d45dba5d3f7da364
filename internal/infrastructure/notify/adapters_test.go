package notify

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netbill/internal/domain/notification"
	"netbill/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func buildProvider(t *testing.T, providerType notification.ProviderType, endpoint string, credentials map[string]string) *notification.Provider {
	t.Helper()
	p, err := notification.ReconstructProvider(
		1, "test-provider", providerType, endpoint,
		credentials, "628000000001", 0, true,
		time.Now().UTC(), time.Now().UTC(),
	)
	require.NoError(t, err)
	return p
}

func TestWablasAdapter_Send(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"status":true,"message":"queued"}`))
	}))
	defer srv.Close()

	provider := buildProvider(t, notification.ProviderTypeWablas, srv.URL,
		map[string]string{notification.CredentialToken: "device-token"})
	adapter := newWablasAdapter(provider, srv.Client())

	resp, err := adapter.Send(context.Background(), "6281234567890", "halo")

	require.NoError(t, err)
	assert.Contains(t, resp, "queued")
	assert.Equal(t, "device-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
}

func TestWablasAdapter_RejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":false,"message":"device disconnected"}`))
	}))
	defer srv.Close()

	provider := buildProvider(t, notification.ProviderTypeWablas, srv.URL,
		map[string]string{notification.CredentialToken: "device-token"})
	adapter := newWablasAdapter(provider, srv.Client())

	_, err := adapter.Send(context.Background(), "6281234567890", "halo")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "device disconnected")
}

func TestMPWAAdapter_SendsKeyInBody(t *testing.T) {
	var gotAPIKey, gotNumber, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotAPIKey = r.PostForm.Get("api_key")
		gotNumber = r.PostForm.Get("number")
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	provider := buildProvider(t, notification.ProviderTypeMPWA, srv.URL,
		map[string]string{notification.CredentialAPIKey: "mpwa-key"})
	adapter := newMPWAAdapter(provider, srv.Client())

	_, err := adapter.Send(context.Background(), "6281234567890", "halo")

	require.NoError(t, err)
	assert.Equal(t, "mpwa-key", gotAPIKey)
	assert.Equal(t, "6281234567890", gotNumber)
	assert.Empty(t, gotAuth)
}

func TestMPWAAdapter_BoolStatusAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":true}`))
	}))
	defer srv.Close()

	provider := buildProvider(t, notification.ProviderTypeMPWA, srv.URL,
		map[string]string{notification.CredentialAPIKey: "mpwa-key"})
	adapter := newMPWAAdapter(provider, srv.Client())

	_, err := adapter.Send(context.Background(), "6281234567890", "halo")

	require.NoError(t, err)
}

func TestNusaSMSAdapter_BasicAuth(t *testing.T) {
	var gotUser, gotPass string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("OK"))
	}))
	defer srv.Close()

	provider := buildProvider(t, notification.ProviderTypeNusaSMS, srv.URL, map[string]string{
		notification.CredentialUsername: "acct",
		notification.CredentialPassword: "pw",
	})
	adapter := newNusaSMSAdapter(provider, srv.Client())

	resp, err := adapter.Send(context.Background(), "6281234567890", "halo")

	require.NoError(t, err)
	assert.Equal(t, "OK", resp)
	assert.Equal(t, "acct", gotUser)
	assert.Equal(t, "pw", gotPass)
}

func TestNusaSMSAdapter_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("bad credentials"))
	}))
	defer srv.Close()

	provider := buildProvider(t, notification.ProviderTypeNusaSMS, srv.URL, nil)
	adapter := newNusaSMSAdapter(provider, srv.Client())

	_, err := adapter.Send(context.Background(), "6281234567890", "halo")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestAdapterFactory_ResolvesByType(t *testing.T) {
	factory := NewAdapterFactory(5*time.Second, testLogger())

	for _, providerType := range []notification.ProviderType{
		notification.ProviderTypeWablas,
		notification.ProviderTypeMPWA,
		notification.ProviderTypeNusaSMS,
	} {
		provider := buildProvider(t, providerType, "https://gw.example.test", nil)
		adapter, err := factory.AdapterFor(provider)
		require.NoError(t, err, "type %s", providerType)
		assert.NotNil(t, adapter)
	}
}
