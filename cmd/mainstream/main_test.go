package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaumene/mainstream/internal/config"
	"github.com/amaumene/mainstream/internal/middleware"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Port:           "0",
		LogLevel:       "error",
		ProxyRateLimit: 5,
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func TestNewAppWithoutDatabase(t *testing.T) {
	a, err := newApp(testConfig(t))
	require.NoError(t, err)
	defer a.close()

	assert.Nil(t, a.db)
	assert.Nil(t, a.container.DB)
	assert.NotNil(t, a.handler.Limiter())

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","credential":false}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestNewAppWithDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabasePath = filepath.Join(t.TempDir(), "cache", "mainstream.db")

	a, err := newApp(cfg)
	require.NoError(t, err)
	defer a.close()

	require.NotNil(t, a.db)
	assert.Equal(t, a.db, a.container.DB)
	assert.FileExists(t, cfg.DatabasePath)
}

func TestProxyWithoutCredential(t *testing.T) {
	a, err := newApp(testConfig(t))
	require.NoError(t, err)
	defer a.close()

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tmdb/search/multi?query=abc", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"API key not configured"}`, w.Body.String())
}

func TestRunStopsOnCancel(t *testing.T) {
	a, err := newApp(testConfig(t))
	require.NoError(t, err)
	defer a.close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
