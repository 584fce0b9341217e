package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"chatbotht/internal/chatbot"
	"chatbotht/internal/cluster"
)

func newClustersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clusters",
		Short: "Show which cluster each training phrase falls in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			classifier, err := loadClassifier(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderAssignments(classifier.Assignments(cluster.TrainingData)))
			return nil
		},
	}
}

func renderAssignments(assignments []cluster.Assignment) string {
	sorted := append([]cluster.Assignment(nil), assignments...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Cluster < sorted[j].Cluster })

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Cluster", "Phrase", "Sample reply"})
	for _, a := range sorted {
		tw.AppendRow(table.Row{
			strconv.Itoa(a.Cluster),
			a.Text,
			chatbot.Replies(chatbot.ClusterID(a.Cluster))[0],
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
