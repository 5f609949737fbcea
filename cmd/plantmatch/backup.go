package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/HerbHall/plantmatch/internal/backup"
)

func newBackupCmd(configPath func() string) *cobra.Command {
	var (
		output     string
		dbPath     string
		withConfig bool
	)

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Archive the database and config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, cfg, err := loadSettings(configPath())
			if err != nil {
				return err
			}
			if dbPath == "" {
				dbPath = settings.Database.Path
			}
			if output == "" {
				output = fmt.Sprintf("plantmatch-backup-%s.tar.gz", time.Now().Format("20060102-150405"))
			}
			include := ""
			if withConfig {
				include = cfg.File()
			}

			m, err := backup.Backup(cmd.Context(), dbPath, include, output)
			if err != nil {
				return fmt.Errorf("backup failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup created: %s (database %s", output, m.Database)
			if m.Config != "" {
				fmt.Fprintf(cmd.OutOrStdout(), ", config %s", m.Config)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ")")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default: plantmatch-backup-{timestamp}.tar.gz)")
	cmd.Flags().StringVar(&dbPath, "db", "", "database file (default: database.path from config)")
	cmd.Flags().BoolVar(&withConfig, "include-config", true, "include the config file that was loaded, if any")
	return cmd
}
