// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hio-assistant/internal/gateway"
	"github.com/pdiddy/hio-assistant/internal/server"
	"github.com/pdiddy/hio-assistant/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local API gateway answering POST /query",
	Long: `Serve runs a development gateway on --addr with the query route under
--prefix (default http://localhost:3001/api/query). Answers are mock
responses unless server.upstream.base_url is set, in which case queries are
forwarded to that gateway.

Queries are rejected with HTTP 500 until a project is configured
(server.project, HIO_SERVER_PROJECT or GCP_PROJECT). The config file is
watched; project and upstream changes apply without a restart. Prometheus
metrics are served on /metrics.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :3001)")
	serveCmd.Flags().String("prefix", "", "path prefix for the query route (default /api)")
	serveCmd.Flags().String("project", "", "cloud project the gateway serves")
	serveCmd.Flags().String("upstream", "", "forward queries to this gateway base URL")

	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("server.prefix", serveCmd.Flags().Lookup("prefix"))
	viper.BindPFlag("server.project", serveCmd.Flags().Lookup("project"))
	viper.BindPFlag("server.upstream.base_url", serveCmd.Flags().Lookup("upstream"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger(cmd)
	cfg := serverConfig()

	srv := server.New(cfg, newResponder(cfg, log), log)

	if viper.ConfigFileUsed() != "" {
		viper.OnConfigChange(func(e fsnotify.Event) {
			next := serverConfig()
			srv.SetProject(next.Project)
			srv.SetResponder(newResponder(next, log))
			log.Info().Str("file", e.Name).Str("op", e.Op.String()).Msg("reloaded server config")
		})
		viper.WatchConfig()
	}

	return srv.ListenAndServe(cmd.Context())
}

// newResponder forwards to the upstream gateway when one is configured and
// answers with mock responses otherwise.
func newResponder(cfg types.ServerConfig, log zerolog.Logger) server.Responder {
	if cfg.Upstream.BaseURL != "" {
		log.Info().Str("upstream", cfg.Upstream.BaseURL).Msg("forwarding queries upstream")
		return &server.ForwardResponder{Client: gateway.New(cfg.Upstream, gateway.WithLogger(log))}
	}
	return &server.MockResponder{Project: cfg.Project, Location: cfg.Location, Model: cfg.Model}
}
