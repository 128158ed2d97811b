// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hio-assistant/internal/gateway"
	"github.com/pdiddy/hio-assistant/internal/history"
)

var queryCmd = &cobra.Command{
	Use:   "query [question...]",
	Short: "Send a question to the API gateway and print the answer",
	Long: `Query posts the question as {"query": "..."} to the gateway's /query
endpoint and prints the JSON answer. The gateway base URL comes from
gateway.base_url in the config file, HIO_GATEWAY_BASE_URL, or
NEXT_PUBLIC_API_GATEWAY_URL. Use "-" to read the question from stdin.

With --mock no request is made; a fixed answer is returned after a short
delay, which is useful while the gateway is not deployed.`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().String("base-url", "", "API gateway base URL (overrides gateway.base_url)")
	queryCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	queryCmd.Flags().Int("retries", 0, "retries on HTTP 429 (default 0)")
	queryCmd.Flags().Bool("mock", false, "answer with a mock response instead of calling the gateway")
	queryCmd.Flags().Duration("mock-delay", gateway.DefaultMockDelay, "simulated latency of --mock")
	queryCmd.Flags().Bool("json", false, "print the raw JSON answer")
	queryCmd.Flags().Bool("no-history", false, "do not record this query in the local history")

	viper.BindPFlag("gateway.base_url", queryCmd.Flags().Lookup("base-url"))
	viper.BindPFlag("gateway.timeout", queryCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("gateway.max_retries", queryCmd.Flags().Lookup("retries"))

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	text, err := queryText(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	log := logger(cmd)
	useMock, _ := cmd.Flags().GetBool("mock")

	var (
		querier  gateway.Querier
		endpoint = "mock"
	)
	if useMock {
		delay, _ := cmd.Flags().GetDuration("mock-delay")
		querier = &gateway.Mock{Delay: delay}
	} else {
		client := gateway.New(gatewayConfig(), gateway.WithLogger(log))
		endpoint, err = client.Endpoint()
		if err != nil {
			return err
		}
		querier = client
	}

	start := time.Now()
	result, queryErr := querier.SubmitQuery(cmd.Context(), text)
	elapsed := time.Since(start)

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if cfg := historyConfig(); cfg.Enabled && !noHistory {
		entry := history.Entry{Query: text, Endpoint: endpoint, Status: history.StatusOK, Duration: elapsed}
		if queryErr != nil {
			entry.Status = history.StatusError
			entry.Error = queryErr.Error()
		} else if data, err := json.Marshal(result); err == nil {
			entry.Response = string(data)
		}
		if err := recordHistory(cmd, entry); err != nil {
			log.Warn().Err(err).Msg("could not record query history")
		}
	}

	if queryErr != nil {
		return queryErr
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		return gateway.FormatJSON(result, cmd.OutOrStdout())
	}
	return gateway.FormatText(result, cmd.OutOrStdout())
}

// queryText joins args into the question, reading stdin for "-".
func queryText(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading question from stdin: %w", err)
		}
		args = []string{string(data)}
	}
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return "", fmt.Errorf("provide a question, or - to read it from stdin")
	}
	return text, nil
}

func recordHistory(cmd *cobra.Command, entry history.Entry) error {
	store, err := history.Open(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Record(cmd.Context(), entry)
	if err != nil {
		return err
	}
	log := logger(cmd)
	log.Debug().Str("id", rec.ID).Msg("recorded query")
	return nil
}
