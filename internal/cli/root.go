// Package cli implements the registers command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registers/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// errConfig marks failures to resolve directories or read config.yaml.
var errConfig = errors.New("configuration error")

// app holds global flag values and the clock shared by all subcommands.
type app struct {
	configDir string
	dataDir   string
	jsonMode  bool
	now       func() time.Time
}

// NewRootCmd creates the top-level "registers" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{now: time.Now})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "registers",
		Short: "Keep small typed record registers",
		Long: "Registers keeps inventory, warehouse, patient, student and finance records\n" +
			"in typed stores saved as JSON, JSON Lines or SQLite snapshots.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: .registers-db)")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newStatusCmd(a))
	root.AddCommand(newInventoryCmd(a))
	root.AddCommand(newWarehouseCmd(a))
	root.AddCommand(newPatientsCmd(a))
	root.AddCommand(newStudentsCmd(a))
	root.AddCommand(newFinanceCmd(a))

	return root
}

// Run executes the CLI with args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, types.ErrIO), errors.Is(err, errConfig):
		return exitSysError
	default:
		return exitUserError
	}
}
