// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the hio CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hio-assistant/internal/logging"
	"github.com/pdiddy/hio-assistant/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from the secrets directory at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if it is set, or the secret value for key otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the hio CLI.
var rootCmd = &cobra.Command{
	Use:   "hio",
	Short: "Ask the hio assistant questions from the command line",
	Long: `hio forwards questions to the hio API gateway and prints its answers.

It also runs a local development gateway, inspects the brand theme used by
the web front-end, keeps a local history of queries, and routes uploaded
documents to the right extraction processor.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log, err := logging.New(os.Stderr, viper.GetString("log.level"), logging.Format(viper.GetString("log.format")))
		if err != nil {
			return err
		}
		if used := viper.ConfigFileUsed(); used != "" {
			log.Debug().Str("file", used).Msg("using config file")
		}

		dir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := secrets.Load(dir, log)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			log.Debug().Strs("keys", keys).Msg("loaded secrets")
		}

		cmd.SetContext(log.WithContext(cmd.Context()))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./hio.yaml or ~/.config/hio/hio.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets", "directory of secret files (gateway-api-key, upstream-api-key)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "console", "log format: console or json")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("hio")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "hio"))
		}
	}

	setDefaults()

	viper.SetEnvPrefix("HIO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Deployment environments set these without the HIO_ prefix.
	viper.BindEnv("gateway.base_url", "HIO_GATEWAY_BASE_URL", "NEXT_PUBLIC_API_GATEWAY_URL")
	viper.BindEnv("server.project", "HIO_SERVER_PROJECT", "GCP_PROJECT")
	viper.BindEnv("server.location", "HIO_SERVER_LOCATION", "FUNCTION_REGION")
	viper.BindEnv("ingest.project", "HIO_INGEST_PROJECT", "GCP_PROJECT")
	viper.BindEnv("ingest.location", "HIO_INGEST_LOCATION", "FUNCTION_REGION")

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintln(os.Stderr, "warning: reading config file:", err)
	}
}

// logger returns the logger installed on cmd's context by PersistentPreRunE.
func logger(cmd *cobra.Command) zerolog.Logger {
	return *zerolog.Ctx(cmd.Context())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
