package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registers/internal/config"
	"github.com/mesh-intelligence/registers/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and data directories",
		Long:  "Write a default config.yaml if missing, create the data directory and,\nfor the sqlite format, the database file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(cmd, func(ws *workspace) error {
				var dataDir string
				if a.dataDir != "" {
					dataDir = ws.dataDir
				}
				written, err := config.WriteDefault(ws.configDir, config.File{Format: ws.format, DataDir: dataDir})
				if err != nil {
					return fmt.Errorf("%w: %w", errConfig, err)
				}
				if written {
					ws.log.Printf("wrote %s/%s", ws.configDir, config.FileName)
				}
				if err := os.MkdirAll(ws.dataDir, 0o755); err != nil {
					return fmt.Errorf("create data directory: %w: %w", types.ErrIO, err)
				}
				if ws.format == types.FormatSQLite {
					if _, err := ws.sqliteDB(); err != nil {
						return err
					}
				}
				return a.output(cmd, map[string]string{
					"config_dir": ws.configDir,
					"data_dir":   ws.dataDir,
					"format":     ws.format,
				}, "Registers initialized in "+ws.dataDir)
			})
		},
	}
}
