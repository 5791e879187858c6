package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ftms-portal/internal/adapters/api"
	"ftms-portal/internal/adapters/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_AuthorizationHeader(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		wantHeader []string
	}{
		{
			name:       "token present sends exactly one bearer header",
			token:      "abc123",
			wantHeader: []string{"Bearer abc123"},
		},
		{
			name:       "no token sends no authorization header at all",
			token:      "",
			wantHeader: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotHeader []string
			var gotContentType string
			var gotRequestID string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotHeader = r.Header.Values("Authorization")
				gotContentType = r.Header.Get("Content-Type")
				gotRequestID = r.Header.Get("X-Request-ID")
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			tokens := storage.NewMemStore()
			if tt.token != "" {
				require.NoError(t, tokens.Set(tt.token))
			}
			gw := api.NewGateway(server.URL, nil, tokens, nil)

			err := gw.Do(context.Background(), http.MethodGet, "/tasks", nil, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.wantHeader, gotHeader)
			assert.Equal(t, "application/json", gotContentType)
			assert.NotEmpty(t, gotRequestID)
		})
	}
}

func TestGateway_ErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{
			name:        "server message is surfaced",
			status:      http.StatusBadRequest,
			body:        `{"error": "Invalid status: FOO"}`,
			wantMessage: "Invalid status: FOO",
		},
		{
			name:        "unparseable body falls back to generic message",
			status:      http.StatusInternalServerError,
			body:        `<html>boom</html>`,
			wantMessage: "An error occurred",
		},
		{
			name:        "empty body falls back to generic message",
			status:      http.StatusNotFound,
			body:        ``,
			wantMessage: "An error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			gw := api.NewGateway(server.URL, nil, storage.NewMemStore(), nil)
			err := gw.Do(context.Background(), http.MethodGet, "/tasks", nil, nil)

			var apiErr *api.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestGateway_401ClearsStoredToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "Access token expired"}`))
	}))
	defer server.Close()

	tokens := storage.NewMemStore()
	require.NoError(t, tokens.Set("abc123"))
	gw := api.NewGateway(server.URL, nil, tokens, nil)

	err := gw.Do(context.Background(), http.MethodGet, "/auth/me", nil, nil)

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.True(t, api.IsUnauthorized(err))

	stored, err := tokens.Get()
	require.NoError(t, err)
	assert.Empty(t, stored, "401 must clear the persisted token")
}

func TestGateway_NetworkErrorHasStatusZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	gw := api.NewGateway(server.URL, nil, storage.NewMemStore(), nil)
	err := gw.Do(context.Background(), http.MethodGet, "/tasks", nil, nil)

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, "Network error", apiErr.Message)
	assert.False(t, api.IsUnauthorized(err))
}

func TestGateway_DecodesSuccessBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token": "xyz"}`))
	}))
	defer server.Close()

	gw := api.NewGateway(server.URL, nil, storage.NewMemStore(), nil)

	var out struct {
		Token string `json:"token"`
	}
	err := gw.Do(context.Background(), http.MethodPost, "/auth/login", map[string]string{"email": "a@b.com"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "xyz", out.Token)
}
