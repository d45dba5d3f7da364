package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netbill/internal/shared/config"
	"netbill/internal/shared/logger"
)

func newTestClient(t *testing.T, url string) *CoAClient {
	t.Helper()
	log := logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
	c := NewCoAClient(&config.RouterConfig{
		DisconnectURL:  url,
		Secret:         "nas-secret",
		TimeoutSeconds: 5,
	}, log)
	return c.(*CoAClient)
}

func TestCoAClient_SessionDropped(t *testing.T) {
	var gotAuth, gotUsername string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var body disconnectRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotUsername = body.Username
		json.NewEncoder(w).Encode(disconnectResponse{Disconnected: true})
	}))
	defer srv.Close()

	dropped, err := newTestClient(t, srv.URL).ForceReauthentication(context.Background(), "budi01")

	require.NoError(t, err)
	assert.True(t, dropped)
	assert.Equal(t, "Bearer nas-secret", gotAuth)
	assert.Equal(t, "budi01", gotUsername)
}

func TestCoAClient_NoLiveSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	dropped, err := newTestClient(t, srv.URL).ForceReauthentication(context.Background(), "budi01")

	require.NoError(t, err, "missing session is a normal outcome")
	assert.False(t, dropped)
}

func TestCoAClient_NASError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("router unreachable"))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).ForceReauthentication(context.Background(), "budi01")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "router unreachable")
}
