package router

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/rs/cors"
)

// New returns the [http.Handler] serving the health checks, the metrics and the
// huma API configured by opts, along with that API.
// Cross-origin requests are allowed from anywhere.
func New(
	title, version string,
	readiness http.HandlerFunc,
	metrics http.HandlerFunc,
	opts ...func(huma.API),
) (http.Handler, huma.API) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /liveness", func(http.ResponseWriter, *http.Request) {})
	mux.HandleFunc("GET /readiness", readiness)
	mux.HandleFunc("GET /metrics", metrics)

	config := huma.DefaultConfig(title, version)
	config.CreateHooks = nil // responses are bare envelopes, without $schema links
	api := humago.New(mux, config)
	for _, opt := range opts {
		opt(api)
	}

	return cors.AllowAll().Handler(mux), api
}

// OptUseMiddleware adds middlewares to the API.
// Operations registered by later options go through them.
func OptUseMiddleware(middlewares ...func(huma.Context, func(huma.Context))) func(huma.API) {
	return func(api huma.API) { api.UseMiddleware(middlewares...) }
}

// OptGroup applies opts to a [huma.Group] mounted at prefix.
// An empty prefix applies opts to the API itself.
func OptGroup(prefix string, opts ...func(huma.API)) func(huma.API) {
	return func(api huma.API) {
		if prefix != "" {
			api = huma.NewGroup(api, prefix)
		}
		for _, opt := range opts {
			opt(api)
		}
	}
}

// OptAutoRegister registers the operations of server with [huma.AutoRegister].
func OptAutoRegister(server any) func(huma.API) {
	return func(api huma.API) { huma.AutoRegister(api, server) }
}
