package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/amaumene/mainstream/internal/cache"
	"github.com/amaumene/mainstream/internal/config"
	"github.com/amaumene/mainstream/internal/database"
	"github.com/amaumene/mainstream/internal/errors"
	"github.com/amaumene/mainstream/pkg/httputil"
	"github.com/amaumene/mainstream/pkg/logger"
	"github.com/amaumene/mainstream/pkg/security"
)

// Upstream bodies larger than this are rejected.
const maxResponseBytes = 8 << 20

// TMDB is the metadata client. Every call is a GET against the configured
// base URL with the API key appended as the last query parameter. Successful
// bodies are kept for the revalidation window in memory and, when a database
// is set, on disk.
type TMDB struct {
	apiKey     string
	baseURL    string
	language   string
	ttl        time.Duration
	cache      cache.Cache
	db         database.Database
	httpClient *http.Client
	logger     logger.Logger
	group      singleflight.Group
	now        func() time.Time
}

// NewTMDB builds the client from cfg. A missing API key is not an error here:
// each fetch reports it, so the server can still start and answer.
func NewTMDB(cfg *config.Config, c cache.Cache, log logger.Logger) *TMDB {
	if log == nil {
		log = logger.Discard()
	}
	if !cfg.HasCredential() {
		log.Warnf("[TMDB] TMDB_API_KEY is not set, metadata requests will fail")
	} else if !security.IsValidTMDBKey(cfg.TMDBAPIKey) {
		log.Warnf("[TMDB] API key %s does not look like a v3 key", security.MaskAPIKey(cfg.TMDBAPIKey))
	}

	return &TMDB{
		apiKey:     cfg.TMDBAPIKey,
		baseURL:    cfg.TMDBBase,
		language:   cfg.Language,
		ttl:        cfg.CacheTTL,
		cache:      c,
		httpClient: httputil.NewHTTPClient(cfg.HTTPTimeout),
		logger:     log,
		now:        time.Now,
	}
}

// SetDB enables the persistent response tier.
func (t *TMDB) SetDB(db database.Database) {
	t.db = db
}

// SetHTTPClient replaces the outbound client.
func (t *TMDB) SetHTTPClient(client *http.Client) {
	t.httpClient = client
}

// HasCredential reports whether an API key is configured.
func (t *TMDB) HasCredential() bool {
	return t.apiKey != ""
}

// Language is the default response language sent by the typed helpers.
func (t *TMDB) Language() string {
	return t.language
}

// Fetch performs a GET for endpoint with params and returns the raw body.
func (t *TMDB) Fetch(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	return t.FetchRaw(ctx, endpoint, params.Encode())
}

// FetchRaw is Fetch with a query string that is forwarded as given, so the
// caller's parameter order is kept.
func (t *TMDB) FetchRaw(ctx context.Context, endpoint, rawQuery string) ([]byte, error) {
	if t.apiKey == "" {
		return nil, errors.NewConfigurationError("TMDB API key not configured")
	}

	endpoint = "/" + strings.TrimLeft(endpoint, "/")
	key := endpoint
	if rawQuery != "" {
		key += "?" + rawQuery
	}

	if body, ok := t.cache.Get(key); ok {
		return body, nil
	}

	v, err, shared := t.group.Do(key, func() (interface{}, error) {
		if body, ok := t.fromDatabase(key); ok {
			t.cache.Set(key, body)
			return body, nil
		}
		body, err := t.fetchUpstream(ctx, endpoint, rawQuery)
		if err != nil {
			return nil, err
		}
		t.store(key, body)
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		t.logger.Debugf("[TMDB] shared in-flight response for %s", key)
	}
	return v.([]byte), nil
}

func (t *TMDB) fromDatabase(key string) ([]byte, bool) {
	if t.db == nil {
		return nil, false
	}
	resp, err := t.db.GetResponse(key)
	if err != nil {
		t.logger.Warnf("[TMDB] failed to read stored response: %v", err)
		return nil, false
	}
	if resp == nil || resp.Age(t.now()) >= t.ttl {
		return nil, false
	}
	return resp.Body, true
}

func (t *TMDB) store(key string, body []byte) {
	t.cache.Set(key, body)
	if t.db == nil {
		return
	}
	err := t.db.StoreResponse(&database.CachedResponse{Key: key, Body: body, FetchedAt: t.now()})
	if err != nil {
		t.logger.Errorf("[TMDB] failed to store response: %v", err)
	}
}

func (t *TMDB) fetchUpstream(ctx context.Context, endpoint, rawQuery string) ([]byte, error) {
	query := rawQuery
	if query != "" {
		query += "&"
	}
	query += security.CredentialParam + "=" + url.QueryEscape(t.apiKey)
	apiURL := t.baseURL + endpoint + "?" + query

	t.logger.Debugf("[TMDB] GET %s", security.RedactURL(apiURL, t.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, errors.NewTransportError("failed to build request", t.redact(err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewTransportError("failed to fetch from TMDB", t.redact(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		t.logger.Warnf("[TMDB] %s answered %d", endpoint, resp.StatusCode)
		return nil, errors.NewUpstreamError(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, errors.NewTransportError("failed to read TMDB response", t.redact(err))
	}
	if len(body) > maxResponseBytes {
		return nil, errors.NewTransportError(fmt.Sprintf("TMDB response for %s exceeds %d bytes", endpoint, maxResponseBytes), nil)
	}
	return body, nil
}

// redact strips the API key from the URL carried by net/http errors.
func (t *TMDB) redact(err error) error {
	var ue *url.Error
	if stderrors.As(err, &ue) {
		ue.URL = security.RedactURL(ue.URL, t.apiKey)
		return err
	}
	return stderrors.New(security.Scrub(err.Error(), t.apiKey))
}
