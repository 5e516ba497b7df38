package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/registers/internal/config"
	"github.com/mesh-intelligence/registers/internal/sqlite"
	"github.com/mesh-intelligence/registers/pkg/types"
)

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	code := Run([]string{"version"}, &out, &bytes.Buffer{})
	assert.Equal(t, exitSuccess, code)
	assert.Equal(t, "registers v"+Version+"\nmodule: "+modulePath+"\n", out.String())
}

func TestRunUnknownCommand(t *testing.T) {
	var errOut bytes.Buffer
	code := Run([]string{"bogus"}, &bytes.Buffer{}, &errOut)
	assert.Equal(t, exitUserError, code)
	assert.Contains(t, errOut.String(), "Error:")
}

func TestInit(t *testing.T) {
	env := newTestEnv(t, types.FormatSQLite)

	res := env.mustRun("init")
	assert.Contains(t, res.Stdout, "Registers initialized in "+env.DataDir)
	assert.FileExists(t, filepath.Join(env.ConfigDir, config.FileName))
	assert.FileExists(t, filepath.Join(env.DataDir, sqlite.DBFileName))

	// Idempotent.
	env.mustRun("init")
}

func TestExitCodes(t *testing.T) {
	env := newTestEnv(t, types.FormatJSON)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"not found", []string{"inventory", "remove", "42"}, exitUserError},
		{"invalid id", []string{"inventory", "remove", "abc"}, exitUserError},
		{"negative quantity", []string{"inventory", "add", "Bolts", "-q", "-1"}, exitUserError},
		{"unknown kind", []string{"warehouse", "remove", "furniture", "1"}, exitUserError},
		{"missing args", []string{"students", "add", "1"}, exitUserError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.run(tt.args...)
			assert.Equal(t, tt.want, res.ExitCode, res.Stderr)
		})
	}
}

func TestUnknownFormatIsConfigError(t *testing.T) {
	env := newTestEnv(t, "xml")
	res := env.run("inventory", "list")
	assert.Equal(t, exitSysError, res.ExitCode)
	assert.Contains(t, res.Stderr, "configuration error")
}

func TestInventoryCommands(t *testing.T) {
	for _, format := range []string{types.FormatJSON, types.FormatJSONL, types.FormatSQLite} {
		t.Run(format, func(t *testing.T) {
			env := newTestEnv(t, format)

			res := env.mustRun("inventory", "list")
			assert.Equal(t, "No items in inventory.\n", res.Stdout)

			res = env.mustRun("--json", "inventory", "add", "Bolts", "-q", "40")
			item := parseJSON[types.InventoryItem](t, res.Stdout)
			assert.Equal(t, 1, item.ID)
			assert.Equal(t, 40, item.Quantity)
			assert.True(t, item.DateAdded.Equal(fixedNow))

			env.mustRun("inventory", "add", "Nuts", "-q", "10")
			env.mustRun("inventory", "update-quantity", "2", "15")

			res = env.mustRun("--json", "inventory", "list")
			items := parseJSON[[]types.InventoryItem](t, res.Stdout)
			require.Len(t, items, 2)
			assert.Equal(t, 15, items[1].Quantity)

			env.mustRun("inventory", "remove", "1")
			res = env.run("inventory", "remove", "1")
			assert.Equal(t, exitUserError, res.ExitCode)

			env.mustRun("inventory", "clear")
			res = env.mustRun("--json", "inventory", "add", "Washers", "-q", "5")
			assert.Equal(t, 1, parseJSON[types.InventoryItem](t, res.Stdout).ID, "clear restarts IDs")
		})
	}
}

func TestInventoryListParseErrorFails(t *testing.T) {
	env := newTestEnv(t, types.FormatJSON)
	require.NoError(t, os.MkdirAll(env.DataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.DataDir, "inventory.json"), []byte("[\n  {\"id\": \"x\"}\n]\n"), 0o644))

	res := env.run("inventory", "list")
	assert.Equal(t, exitUserError, res.ExitCode)
	assert.Contains(t, res.Stderr, "line 2")
}

func TestInventoryListStartsEmptyOnIOError(t *testing.T) {
	env := newTestEnv(t, types.FormatJSON)
	// A directory where the data file should be makes reading fail.
	require.NoError(t, os.MkdirAll(filepath.Join(env.DataDir, "inventory.json"), 0o755))

	res := env.mustRun("inventory", "list")
	assert.Equal(t, "No items in inventory.\n", res.Stdout)
	assert.Contains(t, res.Stderr, "registers: starting empty")
}

func TestWarehouseCommands(t *testing.T) {
	env := newTestEnv(t, types.FormatJSON)

	env.mustRun("warehouse", "add-electronic", "Laptop", "-q", "3", "--brand", "Acme", "--warranty", "24")
	res := env.mustRun("--json", "warehouse", "add-grocery", "Milk", "-q", "12", "--days", "5")
	grocery := parseJSON[types.GroceryItem](t, res.Stdout)
	assert.Equal(t, 1, grocery.ID)
	assert.True(t, grocery.ExpiryDate.Equal(fixedNow.AddDate(0, 0, 5)))

	env.mustRun("warehouse", "update-quantity", "electronic", "1", "7")
	res = env.run("warehouse", "update-quantity", "--", "grocery", "1", "-2")
	assert.Equal(t, exitUserError, res.ExitCode)

	res = env.mustRun("--json", "warehouse", "list")
	listing := parseJSON[struct {
		Electronics []types.ElectronicItem `json:"electronics"`
		Groceries   []types.GroceryItem    `json:"groceries"`
	}](t, res.Stdout)
	require.Len(t, listing.Electronics, 1)
	assert.Equal(t, 7, listing.Electronics[0].Quantity)
	require.Len(t, listing.Groceries, 1)
	assert.Equal(t, 12, listing.Groceries[0].Quantity)

	env.mustRun("warehouse", "remove", "grocery", "1")
	res = env.mustRun("warehouse", "list")
	assert.Contains(t, res.Stdout, "Groceries:\n  (none)\n")
}

func TestPatientsCommands(t *testing.T) {
	env := newTestEnv(t, types.FormatJSONL)

	res := env.mustRun("--json", "patients", "add", "Ada", "--age", "36", "--gender", "F")
	assert.Equal(t, 1, parseJSON[types.Patient](t, res.Stdout).ID)

	res = env.run("patients", "prescribe", "9", "Aspirin")
	assert.Equal(t, exitUserError, res.ExitCode)

	env.mustRun("patients", "prescribe", "1", "Aspirin")
	env.mustRun("patients", "prescribe", "1", "Ibuprofen")

	res = env.mustRun("--json", "patients", "prescriptions", "1")
	list := parseJSON[[]types.Prescription](t, res.Stdout)
	require.Len(t, list, 2)
	assert.Equal(t, "Ibuprofen", list[1].MedicationName)

	res = env.run("patients", "prescriptions", "2")
	assert.Equal(t, exitUserError, res.ExitCode)
}

func TestStudentsCommands(t *testing.T) {
	env := newTestEnv(t, types.FormatSQLite)

	env.mustRun("students", "add", "1", "Alice", "95")
	res := env.run("students", "add", "2", "Bob", "105")
	assert.Equal(t, exitUserError, res.ExitCode)
	res = env.run("students", "add", "1", "Alicia", "80")
	assert.Equal(t, exitUserError, res.ExitCode)

	importPath := filepath.Join(t.TempDir(), "import.txt")
	require.NoError(t, os.WriteFile(importPath, []byte("2, Bob, 72\n\n3, Cara, 41\n"), 0o644))
	res = env.mustRun("students", "import", importPath)
	assert.Equal(t, "Imported 2 students\n", res.Stdout)

	data, err := os.ReadFile(filepath.Join(env.DataDir, "students.txt"))
	require.NoError(t, err)
	assert.Equal(t, "1,Alice,95\n2,Bob,72\n3,Cara,41\n", string(data), "students always use the line format")

	res = env.mustRun("students", "list")
	assert.Contains(t, res.Stdout, "Alice (ID: 1): Score = 95, Grade = A")

	reportPath := filepath.Join(t.TempDir(), "report.txt")
	env.mustRun("students", "report", "-o", reportPath)
	report, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "Generated on: 2026-03-14 15:09:26")
	assert.Contains(t, string(report), "Total Students: 3")
}

func TestStudentsImportBadLine(t *testing.T) {
	env := newTestEnv(t, types.FormatJSON)
	importPath := filepath.Join(t.TempDir(), "import.txt")
	require.NoError(t, os.WriteFile(importPath, []byte("1,Alice,95\n2,Bob\n"), 0o644))

	res := env.run("students", "import", importPath)
	assert.Equal(t, exitUserError, res.ExitCode)
	assert.Contains(t, res.Stderr, "line 2")
}

func TestFinanceCommands(t *testing.T) {
	env := newTestEnv(t, types.FormatJSON)

	res := env.run("finance", "record", "Rent", "10")
	assert.Equal(t, exitUserError, res.ExitCode, "no account yet")

	env.mustRun("finance", "open", "SAV-001", "100")

	res = env.mustRun("finance", "record", "Rent", "60", "-m", "mobile")
	assert.Contains(t, res.Stdout, "Processing mobile money: $60.00 for Rent")
	assert.Contains(t, res.Stdout, "Balance: $40.00")

	res = env.run("finance", "record", "Holiday", "50")
	assert.Equal(t, exitUserError, res.ExitCode)
	assert.Contains(t, res.Stderr, types.ErrInsufficientFunds.Error())

	res = env.run("finance", "record", "Snacks", "5", "-m", "cheque")
	assert.Equal(t, exitUserError, res.ExitCode)

	res = env.mustRun("--json", "finance", "history")
	history := parseJSON[[]types.Transaction](t, res.Stdout)
	require.Len(t, history, 1)
	assert.Equal(t, "Rent", history[0].Category)
}

func TestStatus(t *testing.T) {
	t.Run("file formats", func(t *testing.T) {
		env := newTestEnv(t, types.FormatJSONL)
		env.mustRun("inventory", "add", "Bolts", "-q", "1")
		env.mustRun("students", "add", "1", "Alice", "90")

		res := env.mustRun("--json", "status")
		report := parseJSON[statusReport](t, res.Stdout)
		assert.Equal(t, types.FormatJSONL, report.Format)
		require.Len(t, report.Kinds, len(types.StandardKinds))

		stored := map[string]bool{}
		for _, k := range report.Kinds {
			stored[k.Kind] = k.Stored
		}
		assert.True(t, stored[types.KindInventory])
		assert.True(t, stored[types.KindStudents])
		assert.False(t, stored[types.KindPatients])
	})

	t.Run("sqlite", func(t *testing.T) {
		env := newTestEnv(t, types.FormatSQLite)
		env.mustRun("finance", "open", "SAV-9", "10")

		res := env.mustRun("--json", "status")
		report := parseJSON[statusReport](t, res.Stdout)
		for _, k := range report.Kinds {
			switch k.Kind {
			case types.KindAccounts:
				assert.True(t, k.Stored)
				assert.Equal(t, filepath.Join(env.DataDir, sqlite.DBFileName), k.Location)
			case types.KindTransactions:
				assert.False(t, k.Stored, "empty kinds have no rows")
			}
		}
	})
}
