package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dgallion1/codementor/internal/config"
	"github.com/dgallion1/codementor/internal/llm"
)

var (
	verbose bool
	log     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "codementor",
	Short: "Explain source code with Gemini",
	Long: `codementor sends source code, optional documentation and an optional
question to a Gemini model and returns a sectioned explanation: a big
picture summary, why the code exists, hidden traps and a Mermaid flowchart.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		// stdout carries analyze output, so logs go to stderr.
		log = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd, analyzeCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadGateway reads configuration and connects to Gemini. A missing API key
// is fatal.
func loadGateway(ctx context.Context) (config.Config, *llm.Gateway, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return cfg, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	gw, err := llm.NewGemini(ctx, cfg.APIKey, llm.Options{
		DefaultModel:    cfg.DefaultModel,
		PreferredModels: cfg.PreferredModels,
		StatsWindow:     cfg.StatsWindow,
	}, log)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, gw, nil
}
