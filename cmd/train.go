package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chatbotht/internal/cluster"
)

func newTrainCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Fit the fallback cluster model and overwrite the saved one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			paths := clusterPaths(cfg)
			v, m, err := cluster.Train(cluster.TrainingData, cfg.Cluster.K, clusterOptions(cfg), paths)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Trained %d clusters over %d phrases (%d features)\n", m.K, len(cluster.TrainingData), v.Dimension())
			fmt.Fprintf(out, "Inertia: %.4f after %d iterations\n", m.Inertia, m.Iterations)
			fmt.Fprintf(out, "Model: %s\nVectorizer: %s\n", paths.Model, paths.Vectorizer)
			return nil
		},
	}
}
