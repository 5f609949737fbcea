// Package main provides the plantmatch command: the HTTP API server, the
// MCP server for the chat assistant, and offline recommendation and backup
// tools.
//
//	@title						PlantMatch API
//	@version					0.1.0
//	@description				Houseplant catalog and preference-based plant recommendations.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT bearer token. Format: "Bearer {token}"
package main

//go:generate swag init --generalInfo main.go --dir ./,../../internal --output ../../docs --outputTypes go --parseDependency

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "plantmatch",
		Short:         "PlantMatch houseplant recommendation server",
		Long:          "PlantMatch ranks a houseplant catalog against light, climate, aesthetic, watering and personality preferences, and tracks what users grow.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (default: ./plantmatch.yaml or /etc/plantmatch/plantmatch.yaml)")

	cfg := func() string { return configPath }
	root.AddCommand(
		newServeCmd(cfg),
		newRecommendCmd(cfg),
		newMCPCmd(cfg),
		newBackupCmd(cfg),
		newRestoreCmd(cfg),
		newVersionCmd(),
	)
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
