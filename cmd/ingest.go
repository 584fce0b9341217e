package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newIngestCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file>",
		Short: "Load a pdf, txt or docx file into the document store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := newStore(cfg)
			if err != nil {
				return err
			}
			embedder := newEmbedder(cmd.Context(), cfg.Embedding)
			res, err := newPipeline(cfg, store, embedder).Ingest(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ingested %s: %d chunks (%d duplicates dropped) in %s\n",
				res.Source, res.Chunks, res.Duplicates, res.Elapsed.Round(time.Millisecond))
			return nil
		},
	}
}
