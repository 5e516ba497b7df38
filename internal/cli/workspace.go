package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/registers/internal/config"
	"github.com/mesh-intelligence/registers/internal/grading"
	"github.com/mesh-intelligence/registers/internal/paths"
	"github.com/mesh-intelligence/registers/internal/persist"
	"github.com/mesh-intelligence/registers/internal/sqlite"
	"github.com/mesh-intelligence/registers/pkg/types"
)

const logPrefix = "registers: "

// workspace is the resolved data directory and format for one command.
type workspace struct {
	configDir string
	dataDir   string
	format    string
	verbose   bool
	log       *log.Logger
	db        *sqlite.DB
}

// openWorkspace resolves directories and settings. The caller must defer
// ws.Close().
func (a *app) openWorkspace(cmd *cobra.Command) (*workspace, error) {
	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve config dir: %w", errConfig, err)
	}
	settings, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errConfig, err)
	}
	dataDir, err := paths.ResolveDataDir(a.dataDir, settings.DataDir)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve data dir: %w", errConfig, err)
	}
	return &workspace{
		configDir: configDir,
		dataDir:   dataDir,
		format:    settings.Format,
		verbose:   settings.Verbose,
		log:       log.New(cmd.ErrOrStderr(), logPrefix, 0),
	}, nil
}

// Close releases the SQLite connection if one was opened.
func (ws *workspace) Close() error {
	if ws.db == nil {
		return nil
	}
	return ws.db.Close()
}

// persistLogger returns the logger handed to persistence backends, which
// only report when verbose is on.
func (ws *workspace) persistLogger() *log.Logger {
	if ws.verbose {
		return ws.log
	}
	return nil
}

func (ws *workspace) sqliteDB() (*sqlite.DB, error) {
	if ws.db != nil {
		return ws.db, nil
	}
	db, err := sqlite.Open(ws.dataDir, ws.persistLogger())
	if err != nil {
		return nil, err
	}
	ws.db = db
	return db, nil
}

// backendFor returns the persistence backend of kind in the configured format.
func backendFor[T types.Entity](ws *workspace, kind string) (persist.Backend[T], error) {
	switch ws.format {
	case types.FormatJSON:
		return persist.NewFile(filepath.Join(ws.dataDir, kind+".json"), persist.Codec[T](persist.JSONArray[T]{}), ws.persistLogger()), nil
	case types.FormatJSONL:
		return persist.NewFile(filepath.Join(ws.dataDir, kind+".jsonl"), persist.Codec[T](persist.JSONL[T]{}), ws.persistLogger()), nil
	case types.FormatSQLite:
		db, err := ws.sqliteDB()
		if err != nil {
			return nil, err
		}
		return sqlite.NewTable[T](db, kind), nil
	default:
		return nil, fmt.Errorf("%w: format %q: %w", errConfig, ws.format, types.ErrFormatUnknown)
	}
}

// studentsBackend always uses the line format in students.txt.
func (ws *workspace) studentsBackend() persist.Backend[types.Student] {
	return persist.NewFile(filepath.Join(ws.dataDir, grading.StudentFileName), persist.Codec[types.Student](grading.Lines{}), ws.persistLogger())
}

// loadForRead loads the stores of a read-only command. I/O failures are
// logged and the command continues with empty stores; parse and duplicate
// errors are returned.
func (ws *workspace) loadForRead(load func() error) error {
	err := load()
	if err != nil && errors.Is(err, types.ErrIO) {
		ws.log.Printf("starting empty: %v", err)
		return nil
	}
	return err
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// output prints v as JSON in --json mode, otherwise as text.
func (a *app) output(cmd *cobra.Command, v any, text string) error {
	if a.jsonMode {
		return writeJSON(cmd.OutOrStdout(), v)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

// listOutput prints items one per line, or empty when there are none.
func listOutput[T fmt.Stringer](a *app, cmd *cobra.Command, items []T, empty string) error {
	if a.jsonMode {
		if items == nil {
			items = []T{}
		}
		return writeJSON(cmd.OutOrStdout(), items)
	}
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		_, err := fmt.Fprintln(out, empty)
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintln(out, item); err != nil {
			return err
		}
	}
	return nil
}

// parseInt parses a numeric argument, reporting ErrInvalidValue on failure.
func parseInt(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not an integer: %w", name, s, types.ErrInvalidValue)
	}
	return n, nil
}

func parseAmount(name, s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a number: %w", name, s, types.ErrInvalidValue)
	}
	return f, nil
}

// withWorkspace opens a workspace for the duration of fn.
func (a *app) withWorkspace(cmd *cobra.Command, fn func(ws *workspace) error) error {
	ws, err := a.openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()
	return fn(ws)
}
