// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/hio-assistant/internal/secrets"
	"github.com/pdiddy/hio-assistant/pkg/types"
)

const (
	defaultTimeout = 30 * time.Second
	defaultAddr    = ":3001"
	defaultPrefix  = "/api"
	defaultRegion  = "us-central1"
	defaultModel   = "gemini-1.0-pro"
)

func setDefaults() {
	viper.SetDefault("gateway.timeout", defaultTimeout)
	viper.SetDefault("gateway.user_agent", "hio/"+version)
	viper.SetDefault("gateway.max_retries", 0)

	viper.SetDefault("server.addr", defaultAddr)
	viper.SetDefault("server.prefix", defaultPrefix)
	viper.SetDefault("server.location", defaultRegion)
	viper.SetDefault("server.model", defaultModel)
	viper.SetDefault("server.shutdown_timeout", 5*time.Second)

	viper.SetDefault("history.dir", defaultHistoryDir())
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.max_results", 20)

	viper.SetDefault("ingest.location", defaultRegion)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
}

// defaultHistoryDir is ~/.local/state/hio, or .hio when there is no home.
func defaultHistoryDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hio"
	}
	return filepath.Join(home, ".local", "state", "hio")
}

func gatewayConfig() types.GatewayConfig {
	return types.GatewayConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("gateway.timeout"),
			UserAgent: viper.GetString("gateway.user_agent"),
		},
		BaseURL:    viper.GetString("gateway.base_url"),
		APIKey:     secretDefault(secrets.GatewayAPIKey, viper.GetString("gateway.api_key")),
		MaxRetries: viper.GetInt("gateway.max_retries"),
	}
}

func serverConfig() types.ServerConfig {
	return types.ServerConfig{
		Addr:     viper.GetString("server.addr"),
		Prefix:   viper.GetString("server.prefix"),
		Project:  viper.GetString("server.project"),
		Location: viper.GetString("server.location"),
		Model:    viper.GetString("server.model"),
		Upstream: types.GatewayConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("gateway.timeout"),
				UserAgent: viper.GetString("gateway.user_agent"),
			},
			BaseURL: viper.GetString("server.upstream.base_url"),
			APIKey:  secretDefault(secrets.UpstreamAPIKey, viper.GetString("server.upstream.api_key")),
		},
		ShutdownTimeout: viper.GetDuration("server.shutdown_timeout"),
	}
}

func historyConfig() types.HistoryConfig {
	return types.HistoryConfig{
		Dir:        viper.GetString("history.dir"),
		Enabled:    viper.GetBool("history.enabled"),
		MaxResults: viper.GetInt("history.max_results"),
	}
}

func ingestConfig() types.IngestConfig {
	return types.IngestConfig{
		Project:     viper.GetString("ingest.project"),
		Location:    viper.GetString("ingest.location"),
		ProcessorID: viper.GetString("ingest.processor_id"),
	}
}
