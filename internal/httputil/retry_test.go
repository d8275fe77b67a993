// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

func init() {
	RetryBaseDelay = 1 * time.Millisecond
}

// --- DoWithRetry ---

func TestDoWithRetry(t *testing.T) {
	tests := []struct {
		name       string
		failFirst  int32
		failStatus int
		maxRetries int
		wantStatus int
		wantCalls  int32
	}{
		{"immediate success", 0, http.StatusTooManyRequests, 3, http.StatusOK, 1},
		{"429 then success", 2, http.StatusTooManyRequests, 3, http.StatusOK, 3},
		{"503 then success", 1, http.StatusServiceUnavailable, 3, http.StatusOK, 2},
		{"exhausts retries", 100, http.StatusTooManyRequests, 2, http.StatusTooManyRequests, 3},
		{"default retries", 100, http.StatusTooManyRequests, 0, http.StatusTooManyRequests, 4},
		{"500 passes through", 100, http.StatusInternalServerError, 3, http.StatusInternalServerError, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if atomic.AddInt32(&calls, 1) <= tt.failFirst {
					w.WriteHeader(tt.failStatus)
					return
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer ts.Close()

			req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
			require.NoError(t, err)

			resp, err := DoWithRetry(context.Background(), ts.Client(), req, tt.maxRetries)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(&calls))
		})
	}
}

func TestDoWithRetry_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	old := RetryBaseDelay
	RetryBaseDelay = 500 * time.Millisecond
	defer func() { RetryBaseDelay = old }()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	_, err = DoWithRetry(ctx, ts.Client(), req, 5)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// --- GetJSON ---

func TestGetJSON(t *testing.T) {
	var gotAuth, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total": 3}`))
	}))
	defer ts.Close()

	var out struct {
		Total int `json:"total"`
	}
	cfg := types.HTTPConfig{UserAgent: "medkit-test"}
	err := GetJSON(context.Background(), ts.Client(), cfg, ts.URL, "tok", &out)
	require.NoError(t, err)

	assert.Equal(t, 3, out.Total)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "medkit-test", gotUA)
}

func TestGetJSON_NoTokenNoHeader(t *testing.T) {
	var hadAuth bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	var out []int
	require.NoError(t, GetJSON(context.Background(), ts.Client(), types.HTTPConfig{}, ts.URL, "", &out))
	assert.False(t, hadAuth)
}

func TestGetJSON_Errors(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		var out map[string]any
		err := GetJSON(context.Background(), ts.Client(), types.HTTPConfig{}, ts.URL, "", &out)
		assert.ErrorIs(t, err, ErrStatus)
	})

	t.Run("malformed body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{not json`))
		}))
		defer ts.Close()

		var out map[string]any
		err := GetJSON(context.Background(), ts.Client(), types.HTTPConfig{}, ts.URL, "", &out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decoding")
	})
}

func TestNewClient(t *testing.T) {
	assert.Equal(t, 30*time.Second, NewClient(types.HTTPConfig{}).Timeout)
	assert.Equal(t, 5*time.Second, NewClient(types.HTTPConfig{Timeout: 5 * time.Second}).Timeout)
}
