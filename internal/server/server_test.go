package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/QuickCooking_Go/internal/catalog"
	"github.com/osse101/QuickCooking_Go/internal/domain"
	"github.com/osse101/QuickCooking_Go/internal/handler"
	"github.com/osse101/QuickCooking_Go/internal/session"
	"github.com/osse101/QuickCooking_Go/internal/sse"
)

const testAPIKey = "test-key"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cat, err := catalog.Default(context.Background())
	require.NoError(t, err)

	mgr := session.NewManager(cat, nil, nil, session.DefaultOptions(), 16, 0, nil)
	t.Cleanup(func() { mgr.Close(context.Background()) })

	return NewServer(Options{Port: 0, APIKey: testAPIKey}, Dependencies{
		Sessions: mgr,
		Catalog:  cat,
		Checkers: map[string]handler.HealthChecker{
			"sessions": handler.HealthCheckerFunc(func(context.Context) error { return nil }),
		},
	}).Handler()
}

func call(t *testing.T, h http.Handler, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authed {
		req.Header.Set(HeaderAPIKey, testAPIKey)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicAndProtectedRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		authed bool
		want   int
	}{
		{"healthz", http.MethodGet, "/healthz", false, http.StatusOK},
		{"readyz", http.MethodGet, "/readyz", false, http.StatusOK},
		{"version", http.MethodGet, "/version", false, http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", false, http.StatusOK},
		{"catalog without key", http.MethodGet, "/api/v1/catalog", false, http.StatusUnauthorized},
		{"catalog with key", http.MethodGet, "/api/v1/catalog", true, http.StatusOK},
		{"stats with key", http.MethodGet, "/api/v1/stats", true, http.StatusOK},
		{"session list", http.MethodGet, "/api/v1/sessions", true, http.StatusOK},
		{"unknown route", http.MethodGet, "/api/v1/recipes", true, http.StatusNotFound},
		{"events without hub", http.MethodGet, "/api/v1/events", true, http.StatusNotFound},
		{"wrong method", http.MethodGet, "/api/v1/sessions/00000000-0000-0000-0000-000000000000/tick", true, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, router, tt.method, tt.path, "", tt.authed)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
		})
	}
}

func TestRouter_SessionLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := call(t, router, http.MethodPost, "/api/v1/sessions", `{"seed":3}`, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))

	var view session.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	base := "/api/v1/sessions/" + view.ID.String()

	rec = call(t, router, http.MethodPost, base+"/tick", `{"elapsed":0.25}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp handler.ActionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Accepted)
	assert.Equal(t, domain.StageSelection, resp.Session.Pipeline.Stage)

	rec = call(t, router, http.MethodPost, base+"/stir", `{"position":{"x":0,"y":0}}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Accepted)
	assert.Contains(t, resp.Reason, domain.ErrMsgWrongStage)

	rec = call(t, router, http.MethodDelete, base, "", true)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, router, http.MethodGet, base, "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_RequestBodyLimit(t *testing.T) {
	cat, err := catalog.Default(context.Background())
	require.NoError(t, err)
	mgr := session.NewManager(cat, nil, nil, session.DefaultOptions(), 4, 0, nil)
	t.Cleanup(func() { mgr.Close(context.Background()) })

	router := NewRouter(Options{MaxBodyBytes: 16}, Dependencies{Sessions: mgr, Catalog: cat})

	body := `{"seed":` + strings.Repeat("1", 32) + `}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, mgr.Len())
}

func TestRouter_MetricsUseRoutePatterns(t *testing.T) {
	router := newTestRouter(t)

	rec := call(t, router, http.MethodPost, "/api/v1/sessions", `{}`, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	var view session.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	call(t, router, http.MethodGet, "/api/v1/sessions/"+view.ID.String(), "", true)

	rec = call(t, router, http.MethodGet, "/metrics", "", false)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `path="/api/v1/sessions/{id}`)
	assert.NotContains(t, body, view.ID.String())
}

func TestRouter_EventStream(t *testing.T) {
	cat, err := catalog.Default(context.Background())
	require.NoError(t, err)
	hub := sse.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)

	mgr := session.NewManager(cat, nil, nil, session.DefaultOptions(), 4, 0, nil)
	t.Cleanup(func() { mgr.Close(context.Background()) })

	srv := httptest.NewServer(NewRouter(Options{APIKey: testAPIKey}, Dependencies{
		Sessions: mgr,
		Catalog:  cat,
		Events:   hub,
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events", nil)
	require.NoError(t, err)
	req.Header.Set(HeaderAPIKey, testAPIKey)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(line, "id: "), line)
}
