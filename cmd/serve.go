package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"chatbotht/internal/server"
	"chatbotht/pkg/logger"
)

const probeMessage = "Hola, ¿funcionas?"

func newServeCommand(ctx *commandContext) *cobra.Command {
	var addr string
	var probe bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chat web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if cfg.Server.Debug {
				gin.SetMode(gin.DebugMode)
			} else {
				gin.SetMode(gin.ReleaseMode)
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := newApplication(runCtx, cfg)
			if err != nil {
				return err
			}
			if probe {
				probeLLM(runCtx, app)
			}

			srv := server.New(app.bot, app.pipeline, app.store, server.Options{
				UploadDir:   cfg.Server.UploadDir,
				MaxUploadMB: cfg.Server.MaxUploadMB,
			})
			return listen(runCtx, cfg.Server.Addr, srv.Handler())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&probe, "probe", false, "Send a test message to the LLM at startup")
	return cmd
}

// probeLLM logs whether the configured LLM answers. Failures are only logged.
func probeLLM(ctx context.Context, app *application) {
	ctx, cancel := context.WithTimeout(ctx, app.cfg.LLM.Timeout())
	defer cancel()
	reply, err := app.llm.Complete(ctx, "", probeMessage)
	if err != nil {
		logger.Warn("llm probe failed", "error", err)
		return
	}
	logger.Info("llm probe ok", "reply", reply)
}

func listen(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
