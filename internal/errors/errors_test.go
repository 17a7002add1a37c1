package errors

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"configuration", NewConfigurationError("TMDB_API_KEY is not set"), http.StatusInternalServerError},
		{"upstream 401", NewUpstreamError(401), http.StatusUnauthorized},
		{"upstream 404 wrapped", fmt.Errorf("movie details: %w", NewUpstreamError(404)), http.StatusNotFound},
		{"upstream odd status", NewUpstreamError(302), http.StatusBadGateway},
		{"transport", NewTransportError("dial", io.EOF), http.StatusInternalServerError},
		{"not found", NewNotFoundError("duna"), http.StatusNotFound},
		{"plain", io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPredicates(t *testing.T) {
	wrapped := fmt.Errorf("home: %w", NewUpstreamError(503))
	status, ok := IsUpstream(wrapped)
	assert.True(t, ok)
	assert.Equal(t, 503, status)

	_, ok = IsUpstream(NewTransportError("dial", io.EOF))
	assert.False(t, ok)

	assert.True(t, IsConfiguration(NewConfigurationError("x")))
	assert.True(t, IsTransport(NewTransportError("x", io.EOF)))
	assert.True(t, IsNotFound(fmt.Errorf("watch: %w", NewNotFoundError("x"))))
	assert.False(t, IsNotFound(io.EOF))
}

func TestErrorUnwrap(t *testing.T) {
	err := NewTransportError("request failed", io.EOF)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "TRANSPORT: request failed (caused by: EOF)", err.Error())
	assert.Equal(t, "UPSTREAM: TMDB API error: 500", NewUpstreamError(500).Error())
}
