// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/hio-assistant/internal/ingest"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [event.json|-]",
	Short: "Route an uploaded document to its extraction processor",
	Long: `Ingest reads a storage upload event ({"bucket": ..., "name": ...}) from a
file, from stdin with "-", or from --bucket and --name, and routes the object
by extension: pdf, tiff and gif go to the document processor; jpg, jpeg, png,
bmp and webp go to the image processor. Other types are rejected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().String("bucket", "", "bucket of the uploaded object")
	ingestCmd.Flags().String("name", "", "name of the uploaded object")
	ingestCmd.Flags().String("project", "", "cloud project documents are processed in")

	viper.BindPFlag("ingest.project", ingestCmd.Flags().Lookup("project"))

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	var ev ingest.StorageEvent
	switch {
	case len(args) == 1 && args[0] == "-":
		var err error
		if ev, err = ingest.DecodeEvent(cmd.InOrStdin()); err != nil {
			return err
		}
	case len(args) == 1:
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening event file: %w", err)
		}
		defer f.Close()
		if ev, err = ingest.DecodeEvent(f); err != nil {
			return err
		}
	default:
		ev.Bucket, _ = cmd.Flags().GetString("bucket")
		ev.Name, _ = cmd.Flags().GetString("name")
	}

	router := ingest.NewRouter(ingestConfig(), nil, logger(cmd))
	doc, err := router.Handle(cmd.Context(), ev)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s)\n", doc.URI, doc.Kind, doc.MIMEType)
	return nil
}
