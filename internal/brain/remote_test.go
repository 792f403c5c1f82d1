package brain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/copperwire/penny/internal/common"
	"github.com/copperwire/penny/internal/model"
)

func TestHTTPClientInfer(t *testing.T) {
	t.Run("sends mode, query, and context", func(t *testing.T) {
		var captured inferRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			assert.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`[{"label":"SAFEWAY","category":"Groceries"}]`))
		}))
		defer server.Close()

		client, err := NewHTTPClient(HTTPConfig{Endpoint: server.URL, APIKey: "sekrit"})
		require.NoError(t, err)

		req := model.NewClassificationRequest(model.ModeParse, "SAFEWAY", map[string]string{"total": "42.00"})
		body, err := client.Infer(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, "parse", captured.Mode)
		assert.Equal(t, "SAFEWAY", captured.Query)
		assert.Equal(t, "42.00", captured.Context["total"])
		assert.Contains(t, body, "Groceries")
	})

	t.Run("5xx is transient", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client, err := NewHTTPClient(HTTPConfig{Endpoint: server.URL})
		require.NoError(t, err)

		_, err = client.Infer(context.Background(), model.NewClassificationRequest(model.ModeChat, "hi", nil))
		require.Error(t, err)
		assert.True(t, common.IsRetryable(err))
	})

	t.Run("429 is transient", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client, err := NewHTTPClient(HTTPConfig{Endpoint: server.URL})
		require.NoError(t, err)

		_, err = client.Infer(context.Background(), model.NewClassificationRequest(model.ModeChat, "hi", nil))
		require.Error(t, err)
		assert.True(t, common.IsRetryable(err))
	})

	t.Run("4xx is permanent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer server.Close()

		client, err := NewHTTPClient(HTTPConfig{Endpoint: server.URL})
		require.NoError(t, err)

		_, err = client.Infer(context.Background(), model.NewClassificationRequest(model.ModeChat, "hi", nil))
		require.Error(t, err)
		assert.False(t, common.IsRetryable(err))
		assert.ErrorIs(t, err, common.ErrPermanentRemote)
	})

	t.Run("connection failure is transient", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		server.Close() // refuse connections

		client, err := NewHTTPClient(HTTPConfig{Endpoint: server.URL})
		require.NoError(t, err)

		_, err = client.Infer(context.Background(), model.NewClassificationRequest(model.ModeChat, "hi", nil))
		require.Error(t, err)
		assert.True(t, common.IsRetryable(err))
	})

	t.Run("missing endpoint rejected", func(t *testing.T) {
		_, err := NewHTTPClient(HTTPConfig{})
		assert.ErrorIs(t, err, common.ErrMissingConfig)
	})
}
