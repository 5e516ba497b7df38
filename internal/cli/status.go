package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registers/internal/grading"
	"github.com/mesh-intelligence/registers/pkg/types"
)

// kindStatus reports where a kind is stored and whether data exists.
type kindStatus struct {
	Kind     string `json:"kind"`
	Location string `json:"location"`
	Stored   bool   `json:"stored"`
}

type statusReport struct {
	ConfigDir string       `json:"config_dir"`
	DataDir   string       `json:"data_dir"`
	Format    string       `json:"format"`
	Kinds     []kindStatus `json:"kinds"`
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show resolved directories and which kinds hold data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(cmd, func(ws *workspace) error {
				report, err := ws.status()
				if err != nil {
					return err
				}
				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), report)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Config dir: %s\nData dir:   %s\nFormat:     %s\n", report.ConfigDir, report.DataDir, report.Format)
				for _, k := range report.Kinds {
					mark := "-"
					if k.Stored {
						mark = "*"
					}
					fmt.Fprintf(out, "  %s %-14s %s\n", mark, k.Kind, k.Location)
				}
				return nil
			})
		},
	}
}

func (ws *workspace) status() (statusReport, error) {
	report := statusReport{ConfigDir: ws.configDir, DataDir: ws.dataDir, Format: ws.format}

	var sqliteKinds []string
	var dbPath string
	if ws.format == types.FormatSQLite {
		db, err := ws.sqliteDB()
		if err != nil {
			return statusReport{}, err
		}
		if sqliteKinds, err = db.Kinds(); err != nil {
			return statusReport{}, err
		}
		dbPath = db.Path()
	}

	for _, kind := range types.StandardKinds {
		var st kindStatus
		switch {
		case kind == types.KindStudents:
			st = fileStatus(kind, filepath.Join(ws.dataDir, grading.StudentFileName))
		case ws.format == types.FormatSQLite:
			st = kindStatus{Kind: kind, Location: dbPath, Stored: slices.Contains(sqliteKinds, kind)}
		default:
			st = fileStatus(kind, filepath.Join(ws.dataDir, kind+"."+ws.format))
		}
		report.Kinds = append(report.Kinds, st)
	}
	return report, nil
}

func fileStatus(kind, path string) kindStatus {
	info, err := os.Stat(path)
	return kindStatus{Kind: kind, Location: path, Stored: err == nil && info.Mode().IsRegular()}
}
