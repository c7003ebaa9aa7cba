package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/codementor/internal/analysis"
	"github.com/dgallion1/codementor/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, gw, err := loadGateway(ctx)
		if err != nil {
			log.Error("startup failed", "error", err)
			return err
		}

		orch := analysis.NewOrchestrator(gw, log)
		srv := api.NewServer(orch, gw, log, cfg)

		httpServer := &http.Server{
			Addr:        ":" + cfg.Port,
			Handler:     srv,
			ReadTimeout: 30 * time.Second,
			// No write deadline: model calls are never cut short.
			IdleTimeout: 60 * time.Second,
		}

		// Graceful shutdown.
		go func() {
			<-ctx.Done()
			log.Info("shutting down...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			httpServer.Shutdown(shutdownCtx)
		}()

		log.Info("starting codementor", "port", cfg.Port, "model", gw.Model())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			return err
		}
		return nil
	},
}
