package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registers/internal/grading"
	"github.com/mesh-intelligence/registers/pkg/types"
)

func newStudentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "students",
		Short: "Keep student scores and grade reports",
	}
	cmd.AddCommand(
		newStudentsAddCmd(a),
		newStudentsListCmd(a),
		newStudentsImportCmd(a),
		newStudentsReportCmd(a),
	)
	return cmd
}

func openRoster(ws *workspace, readOnly bool) (*grading.Roster, error) {
	r := grading.NewRoster(ws.studentsBackend())
	var err error
	if readOnly {
		err = ws.loadForRead(r.Load)
	} else {
		err = r.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading students: %w", err)
	}
	return r, nil
}

func newStudentsAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <id> <name> <score>",
		Short: "Add a student",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseInt("id", args[0])
			if err != nil {
				return err
			}
			score, err := parseInt("score", args[2])
			if err != nil {
				return err
			}
			return a.withWorkspace(cmd, func(ws *workspace) error {
				r, err := openRoster(ws, false)
				if err != nil {
					return err
				}
				s, err := r.Add(id, args[1], score)
				if err != nil {
					return err
				}
				if err := r.Save(); err != nil {
					return err
				}
				return a.output(cmd, s, "Added: "+s.String())
			})
		},
	}
}

func newStudentsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List students with their grades",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(cmd, func(ws *workspace) error {
				r, err := openRoster(ws, true)
				if err != nil {
					return err
				}
				return listOutput(a, cmd, r.All(), "No students on the roster.")
			})
		},
	}
}

func newStudentsImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import students from an ID,Name,Score file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(cmd, func(ws *workspace) error {
				r, err := openRoster(ws, false)
				if err != nil {
					return err
				}
				n, err := r.Import(args[0])
				if err != nil {
					return err
				}
				if err := r.Save(); err != nil {
					return err
				}
				return a.output(cmd, map[string]int{"imported": n}, fmt.Sprintf("Imported %d students", n))
			})
		},
	}
}

func newStudentsReportCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the grade report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withWorkspace(cmd, func(ws *workspace) error {
				r, err := openRoster(ws, true)
				if err != nil {
					return err
				}
				path := output
				if path == "" {
					path = filepath.Join(ws.dataDir, grading.ReportFileName)
				}
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					return fmt.Errorf("creating report directory: %w: %w", types.ErrIO, err)
				}
				if err := r.WriteReportFile(path, a.now()); err != nil {
					return err
				}
				students := r.All()
				return a.output(cmd, map[string]any{
					"path":         path,
					"total":        len(students),
					"distribution": grading.Distribution(students),
				}, "Report written to "+path)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "report path (default: <data-dir>/grade_report.txt)")
	return cmd
}
