// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EshwaranandB/medkit.ai/pkg/types"
)

const sampleDataset = `[
	{"id": "1", "title": "Fever", "url": "https://medlineplus.gov/fever.html", "groups": ["Symptoms"]},
	{"id": "2", "title": "Fiebre", "url": "https://medlineplus.gov/spanish/fever.html"},
	{"id": "3", "title": "Insulin", "url": "https://medlineplus.gov/druginfo/insulin.html"}
]`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "topics.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// --- NewSource ---

func TestNewSource(t *testing.T) {
	_, err := NewSource(types.DatasetConfig{}, "")
	assert.ErrorIs(t, err, ErrNoSource)

	src, err := NewSource(types.DatasetConfig{Source: "https://example.org/topics.json"}, "tok")
	require.NoError(t, err)
	httpSrc, ok := src.(*HTTPSource)
	require.True(t, ok)
	assert.Equal(t, "tok", httpSrc.Token)

	src, err = NewSource(types.DatasetConfig{Source: "data/topics.json"}, "")
	require.NoError(t, err)
	assert.Equal(t, FileSource{Path: "data/topics.json"}, src)
}

// --- Load ---

func TestLoadFromFile(t *testing.T) {
	path := writeDataset(t, sampleDataset)

	topics, report, err := Load(context.Background(), FileSource{Path: path}, Options{})
	require.NoError(t, err)
	require.NoError(t, report.Err)

	require.Len(t, topics, 2)
	assert.Equal(t, "Fever", topics[0].Title)
	assert.Equal(t, "Insulin", topics[1].Title)
	assert.Equal(t, 3, report.Raw)
	assert.Equal(t, 1, report.Excluded)
}

func TestLoadFromHTTP(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer ds", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleDataset))
	}))
	defer ts.Close()

	src := &HTTPSource{URL: ts.URL, Token: "ds", Client: ts.Client()}
	topics, report, err := Load(context.Background(), src, Options{})
	require.NoError(t, err)
	require.NoError(t, report.Err)
	assert.Len(t, topics, 2)
}

func TestLoadFailureYieldsEmpty(t *testing.T) {
	tests := []struct {
		name string
		src  func(t *testing.T) Source
	}{
		{"missing file", func(t *testing.T) Source {
			return FileSource{Path: filepath.Join(t.TempDir(), "absent.json")}
		}},
		{"malformed file", func(t *testing.T) Source {
			return FileSource{Path: writeDataset(t, "{oops")}
		}},
		{"server error", func(t *testing.T) Source {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			t.Cleanup(ts.Close)
			return &HTTPSource{URL: ts.URL, Client: ts.Client()}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topics, report, err := Load(context.Background(), tt.src(t), Options{})
			require.NoError(t, err)
			assert.NotNil(t, topics)
			assert.Empty(t, topics)
			assert.Error(t, report.Err)
		})
	}
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	topics, _, err := Load(ctx, FileSource{Path: writeDataset(t, sampleDataset)}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, topics)
}

// --- Watcher ---

func TestWatcherFiresOnWrite(t *testing.T) {
	path := writeDataset(t, sampleDataset)

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	var fired atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		w.Run(ctx, func(context.Context) { fired.Add(1) })
		close(done)
	}()

	// A burst of writes collapses into few callbacks.
	for range 3 {
		require.NoError(t, os.WriteFile(path, []byte(sampleDataset), 0o644))
	}
	assert.Eventually(t, func() bool { return fired.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	// Unrelated files in the same directory are ignored.
	time.Sleep(100 * time.Millisecond)
	before := fired.Load()
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.json"), []byte("[]"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, before, fired.Load())

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
}
