package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"

	"github.com/oaiiae/contacts-api/cli/api"
	"github.com/oaiiae/contacts-api/cli/logger"
	"github.com/oaiiae/contacts-api/datastores"
)

const title = "Contacts API"

// Set with -ldflags "-X main.version=... -X main.revision=... -X main.created=...".
var (
	version  = "dev"
	revision = ""
	created  = ""
)

// Options for the CLI. Pass `--port` or set the `SERVICE_PORT` env var.
type Options struct {
	logger.Options
	api.ServerOptions
	api.RouterOptions
}

func main() {
	loadEnv(".env")

	var hapi huma.API
	cli := humacli.New(func(hooks humacli.Hooks, options *Options) {
		logger := logger.New(&options.Options, title, version)

		var handler http.Handler
		handler, hapi = api.NewRouter(&options.RouterOptions, title, version, revision, created, logger,
			datastores.NewContactsInmem(),
		)
		srv := api.NewServer(&options.ServerOptions, handler, logger)

		hooks.OnStart(func() {
			logger.Info("listening", "addr", srv.Addr)
			err := srv.ListenAndServe()
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error("failed to listen and serve", "err", err)
			} else {
				logger.Info("server closed")
			}
		})
		hooks.OnStop(func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			err := srv.Shutdown(ctx)
			if err != nil {
				logger.Warn("could not shutdown the server", "err", err)
			}
		})
	})

	cli.Root().Use = "contacts-api"
	cli.Root().Version = version
	cli.Root().AddCommand(&cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := hapi.OpenAPI().YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	})

	cli.Run()
}

// loadEnv sets the variables of the dotenv file at path that are not already
// set. A bare PORT is accepted in place of SERVICE_PORT.
func loadEnv(path string) {
	err := gotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not load env file", "path", path, "err", err)
	}

	if port, ok := os.LookupEnv("PORT"); ok {
		if _, ok := os.LookupEnv("SERVICE_PORT"); !ok {
			_ = os.Setenv("SERVICE_PORT", port)
		}
	}
}
