package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClientSetsUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer srv.Close()

	client := NewHTTPClient(time.Second)
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, UserAgent, got)
	assert.Equal(t, time.Second, client.Timeout)
}

func TestNewHTTPClientDefaultTimeout(t *testing.T) {
	assert.Equal(t, defaultTimeout, NewHTTPClient(0).Timeout)
	assert.Equal(t, defaultTimeout, NewDefaultHTTPClient().Timeout)
}
