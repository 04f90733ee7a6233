package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/fino/internal/common"
	"github.com/Veraticus/fino/internal/config"
	"github.com/Veraticus/fino/internal/storage"
	tuitest "github.com/Veraticus/fino/internal/tui/testing"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupCLI points the configuration at a fresh database file.
func setupCLI(t *testing.T) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "fino.db")
	viper.Reset()
	viper.Set(config.KeyDatabasePath, dbPath)
	t.Cleanup(viper.Reset)
	return dbPath
}

// execute runs cmd with args and returns its plain stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return tuitest.StripANSI(out.String()), err
}

func openTestStore(t *testing.T, dbPath string) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestAddAndSearch(t *testing.T) {
	dbPath := setupCLI(t)

	out, err := execute(t, addCmd(), "2024-03-01,Flat white,-3.20,expense,Coffee")
	require.NoError(t, err)
	assert.Contains(t, out, "Added expense -3.20 on 2024-03-01")

	_, err = execute(t, addCmd(), "2024-03-02", "March salary", "3100", "income", "Salary")
	require.NoError(t, err)

	out, err = execute(t, searchCmd(), "coffee")
	require.NoError(t, err)
	assert.Contains(t, out, "Flat white")
	assert.NotContains(t, out, "March salary")

	count, err := openTestStore(t, dbPath).GetRecordCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAddRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad date", args: []string{"03/01/2024,Coffee,-3,expense,Food"}},
		{name: "bad amount", args: []string{"2024-03-01,Coffee,three,expense,Food"}},
		{name: "bad kind", args: []string{"2024-03-01,Coffee,-3,transfer,Food"}},
		{name: "missing field", args: []string{"2024-03-01,Coffee,-3,expense"}},
		{name: "wrong arg count", args: []string{"2024-03-01", "Coffee"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCLI(t)
			_, err := execute(t, addCmd(), tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRemove(t *testing.T) {
	dbPath := setupCLI(t)

	_, err := execute(t, addCmd(), "2024-03-01,Flat white,-3.20,expense,Coffee")
	require.NoError(t, err)

	records, err := openTestStore(t, dbPath).GetAllRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)

	out, err := execute(t, removeCmd(), records[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed transaction")

	_, err = execute(t, removeCmd(), records[0].ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSearchRejectsEmptyCategory(t *testing.T) {
	setupCLI(t)

	_, err := execute(t, searchCmd(), "  ")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidRecord)
}

func TestBudgetCommands(t *testing.T) {
	dbPath := setupCLI(t)

	out, err := execute(t, budgetCmd(), "set", "Food", "200")
	require.NoError(t, err)
	assert.Contains(t, out, "Budget for Food is now 200.00")

	out, err = execute(t, budgetCmd(), "increase", "food", "50.5")
	require.NoError(t, err)
	assert.Contains(t, out, "250.50")

	out, err = execute(t, budgetCmd(), "decrease", "Food", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "250.00")

	_, err = execute(t, budgetCmd(), "decrease", "Food", "300")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNegativeBudget)

	_, err = execute(t, budgetCmd(), "set", "--", "Food", "-1")
	assert.ErrorIs(t, err, ErrNegativeBudget)

	budget, err := openTestStore(t, dbPath).GetBudget(context.Background(), "Food")
	require.NoError(t, err)
	require.NotNil(t, budget)
	assert.True(t, budget.Amount.Equal(decimal.RequireFromString("250")))

	out, err = execute(t, budgetCmd(), "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "250.00")

	_, err = execute(t, budgetCmd(), "delete", "Food")
	require.NoError(t, err)

	_, err = execute(t, budgetCmd(), "delete", "Food")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestBudgetChanges(t *testing.T) {
	d := decimal.RequireFromString

	tests := []struct {
		name    string
		change  budgetChange
		current string
		amount  string
		want    string
		wantErr bool
	}{
		{name: "set replaces", change: setBudget, current: "10", amount: "25", want: "25"},
		{name: "increase adds", change: increaseBudget, current: "10", amount: "2.5", want: "12.5"},
		{name: "decrease to zero", change: decreaseBudget, current: "10", amount: "10", want: "0"},
		{name: "decrease below zero", change: decreaseBudget, current: "10", amount: "10.01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.change(d(tt.current), d(tt.amount))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNegativeBudget)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(d(tt.want)), "got %s", got)
		})
	}
}

func TestMigrateStatus(t *testing.T) {
	setupCLI(t)

	out, err := execute(t, migrateCmd(), "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "Current version: 0")
	assert.Contains(t, out, "pending")

	out, err = execute(t, migrateCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Database schema at version")

	out, err = execute(t, migrateCmd(), "--status")
	require.NoError(t, err)
	assert.Contains(t, out, "Current version: 2")
	assert.NotContains(t, out, "pending")
}

func TestReportRange(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)
	date := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}

	tests := []struct {
		name      string
		args      []string
		wantStart string
		wantEnd   string
		wantErr   error
	}{
		{name: "defaults", wantStart: "2024-02-15", wantEnd: "2024-03-15"},
		{name: "start only", args: []string{"2024-03-01"}, wantStart: "2024-03-01", wantEnd: "2024-03-15"},
		{name: "both", args: []string{"2024-01-01", "2024-01-31"}, wantStart: "2024-01-01", wantEnd: "2024-01-31"},
		{name: "single day", args: []string{"2024-01-01", "2024-01-01"}, wantStart: "2024-01-01", wantEnd: "2024-01-01"},
		{name: "reversed", args: []string{"2024-02-01", "2024-01-01"}, wantErr: common.ErrInvalidDateRange},
		{name: "bad date", args: []string{"yesterday"}, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := reportRange(tt.args, now)
			if tt.wantStart == "" {
				require.Error(t, err)
				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, date(tt.wantStart), start)
			assert.Equal(t, date(tt.wantEnd), end)
		})
	}
}

func TestImportCSV(t *testing.T) {
	dbPath := setupCLI(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "march.csv")
	require.NoError(t, os.WriteFile(good, []byte(
		"2024-03-01,Flat white,-3.20,expense,Coffee\n"+
			"2024-03-02,Groceries,-54.10,expense,Food\n"+
			"2024-03-03,March salary,3100,income,Salary\n"), 0o600))
	bad := filepath.Join(dir, "broken.csv")
	require.NoError(t, os.WriteFile(bad, []byte("2024-03-01,Coffee,abc,expense,Food\n"), 0o600))

	out, err := execute(t, importCSVCmd(), "--dry-run", filepath.Join(dir, "*.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run: 3 transactions parsed")

	count, err := openTestStore(t, dbPath).GetRecordCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	out, err = execute(t, importCSVCmd(), filepath.Join(dir, "*.csv"))
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 transactions (0 already present)")

	count, err = openTestStore(t, dbPath).GetRecordCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	out, err = execute(t, importCSVCmd(), good)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 transactions (3 already present)")

	count, err = openTestStore(t, dbPath).GetRecordCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestImportOFXSkipsDuplicates(t *testing.T) {
	setupCLI(t)
	path := filepath.Join(t.TempDir(), "statement.qfx")
	require.NoError(t, os.WriteFile(path, []byte(statementOFX), 0o600))

	out, err := execute(t, importOFXCmd(), path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 transactions (0 already present)")

	out, err = execute(t, importOFXCmd(), path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 0 transactions (2 already present)")
}

func TestExpandPatterns(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.qfx", "b.qfx", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}

	files, err := expandPatterns([]string{filepath.Join(dir, "*.qfx"), filepath.Join(dir, "notes.txt")})
	require.NoError(t, err)
	assert.Len(t, files, 3)

	_, err = expandPatterns([]string{filepath.Join(dir, "*.ofx")})
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     string
		wantHint bool
	}{
		{
			name: "user error shows only its message",
			err:  common.NewUserError("no budget set for \"Food\"", common.ErrNotFound),
			want: "no budget set for \"Food\"\n",
		},
		{
			name: "plain error shows the chain",
			err:  fmt.Errorf("failed to load transactions: %w", common.ErrNotFound),
			want: "failed to load transactions: not found\n",
		},
		{
			name:     "terminal error adds a hint",
			err:      common.NewTerminalError("run", errors.New("broken pipe")),
			wantHint: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printError(&buf, tt.err)
			if tt.wantHint {
				assert.Contains(t, buf.String(), "terminal run failed: broken pipe")
				assert.Contains(t, buf.String(), "reset")
				return
			}
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, versionCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "fino dev")
}

const statementOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240401090000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>EUR
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>CHK777
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240301000000[0:GMT]
<DTEND>20240331000000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240304120000[0:GMT]
<TRNAMT>-12.80
<FITID>M0304
<NAME>CORNER BOOKSHOP
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240325120000[0:GMT]
<TRNAMT>3100.00
<FITID>M0325
<NAME>ACME PAYROLL
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>4100.00
<DTASOF>20240331000000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`
