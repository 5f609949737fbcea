package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/HerbHall/plantmatch/internal/assistant"
)

func newMCPCmd(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the catalog tools over MCP on stdin/stdout",
		Long:  "Runs the Model Context Protocol server on stdio so a local chat assistant can query the plant catalog. Logs go to stderr.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, _, err := loadSettings(configPath())
			if err != nil {
				return err
			}
			logger, err := newLogger(settings.Log)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			engine, err := newEngine(settings.Catalog)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return assistant.RunStdio(ctx, assistant.NewServer(engine, logger.Named("assistant")))
		},
	}
}
