package router

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ping struct{}

type pingOutput struct {
	Body struct {
		Pong bool `json:"pong"`
	}
}

func (ping) RegisterPing(api huma.API) {
	huma.Get(api, "/ping", func(context.Context, *struct{}) (*pingOutput, error) {
		out := &pingOutput{}
		out.Body.Pong = true
		return out, nil
	})
}

func serve(t *testing.T, h http.Handler, method, target string, header http.Header) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Result()
}

func TestNew(t *testing.T) {
	var calls []string // operation paths seen by the middleware
	h, api := New("Test API", "1.2.3",
		func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
		func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, "up 1\n") },
		OptUseMiddleware(func(ctx huma.Context, next func(huma.Context)) {
			calls = append(calls, ctx.Operation().Path)
			next(ctx)
		}),
		OptGroup("/api", OptAutoRegister(ping{})),
		OptGroup("", OptAutoRegister(ping{})),
	)
	require.NotNil(t, api)
	assert.Equal(t, "1.2.3", api.OpenAPI().Info.Version)

	resp := serve(t, h, http.MethodGet, "/liveness", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = serve(t, h, http.MethodGet, "/readiness", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp = serve(t, h, http.MethodGet, "/metrics", nil)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "up 1\n", string(body))

	for _, path := range []string{"/api/ping", "/ping"} {
		resp = serve(t, h, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		body, err = io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"pong":true}`, string(body), path)
	}
	assert.Len(t, calls, 2)
}

func TestNewAllowsCrossOrigin(t *testing.T) {
	h, _ := New("Test API", "1.2.3",
		func(http.ResponseWriter, *http.Request) {},
		func(http.ResponseWriter, *http.Request) {},
		OptAutoRegister(ping{}),
	)

	resp := serve(t, h, http.MethodGet, "/ping", http.Header{"Origin": {"http://example.com"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp = serve(t, h, http.MethodOptions, "/ping", http.Header{
		"Origin":                        {"http://example.com"},
		"Access-Control-Request-Method": {http.MethodDelete},
	})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, http.MethodDelete, resp.Header.Get("Access-Control-Allow-Methods"))
}
