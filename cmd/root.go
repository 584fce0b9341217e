package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"chatbotht/internal/config"
	"chatbotht/pkg/logger"
)

type commandContext struct {
	configFlag   string
	envFlag      string
	logLevelFlag string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

// ensureConfig loads .env, then the YAML config, then sets up logging. It
// runs once per process.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		if err := config.LoadEnv(strings.TrimSpace(c.envFlag)); err != nil {
			c.configErr = err
			return
		}
		cfg, err := config.Load(strings.TrimSpace(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != "" {
			cfg.Server.LogLevel = c.logLevelFlag
		}
		if err := logger.InitLogger(cfg.Server.LogLevel, cfg.Server.LogFile); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "chatbotht",
		Short:         "Document chatbot with LLM and cluster fallback",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configFlag, "config", "c", "config.yaml", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&ctx.envFlag, "env", ".env", "Environment file loaded before the config")
	rootCmd.PersistentFlags().StringVar(&ctx.logLevelFlag, "log-level", "", "Override the configured log level")

	serveCmd := newServeCommand(ctx)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newTrainCommand(ctx))
	rootCmd.AddCommand(newClustersCommand(ctx))
	rootCmd.AddCommand(newIngestCommand(ctx))
	rootCmd.AddCommand(newAskCommand())

	// serving is the default action
	rootCmd.RunE = serveCmd.RunE
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())

	return rootCmd
}
