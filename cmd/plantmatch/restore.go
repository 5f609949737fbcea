package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/HerbHall/plantmatch/internal/backup"
)

func newRestoreCmd(configPath func() string) *cobra.Command {
	var (
		input   string
		dataDir string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore the database and config file from a backup archive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dataDir == "" {
				settings, _, err := loadSettings(configPath())
				if err != nil {
					return err
				}
				dataDir = filepath.Dir(settings.Database.Path)
			}

			m, err := backup.Restore(cmd.Context(), input, dataDir, force)
			if err != nil {
				return fmt.Errorf("restore failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restore complete: %s from version %s restored to %s\n",
				m.Database, m.Version, dataDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "backup archive to restore (required)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "target directory for restored files (default: directory of database.path)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
