package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRules = "keyword,vendor,category,tag\nstarbucks,Starbucks,Dining,coffee\n"

func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err = runCommand(t, "init", dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vendor_rules.csv"), []byte(testRules), 0o644))
	return dir
}

func TestIngest_FileArgument(t *testing.T) {
	dir := setupProject(t)
	path := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(path,
		[]byte("Date,Amount,Description\n01/03/2025,-4.50,STARBUCKS #123\n"), 0o644))

	out, err := runCommand(t, "ingest", "--yes", path)
	require.NoError(t, err)
	assert.Contains(t, out, "committed 1 records")

	data, err := os.ReadFile(filepath.Join(dir, "master_transactions.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "STARBUCKS #123")
	assert.Contains(t, string(data), "Starbucks,Dining,coffee")
}

func TestIngest_ScansImportDirAndMarksProcessed(t *testing.T) {
	dir := setupProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "chase_export.csv"),
		[]byte("Date,Amount,Description\n01/03/2025,-4.50,COFFEE\n"), 0o644))

	_, err := runCommand(t, "ingest", "--yes")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "import", "processed", "chase_export.csv"))
	assert.NoError(t, err)

	// A run log row is written for the ingestion.
	_, err = os.Stat(filepath.Join(dir, "logs", "ingest-log.csv"))
	assert.NoError(t, err)
}

func TestIngest_EmptyImportDir(t *testing.T) {
	setupProject(t)

	out, err := runCommand(t, "ingest", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "No statement files found")
}

func TestIngest_MissingFileFailsThatFileOnly(t *testing.T) {
	dir := setupProject(t)
	good := filepath.Join(dir, "good.csv")
	require.NoError(t, os.WriteFile(good,
		[]byte("Date,Amount,Description\n01/03/2025,-4.50,COFFEE\n"), 0o644))

	_, err := runCommand(t, "ingest", "--yes", filepath.Join(dir, "missing.csv"), good)
	require.Error(t, err)

	// The good file still committed.
	data, readErr := os.ReadFile(filepath.Join(dir, "master_transactions.csv"))
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "COFFEE")
}

func TestClassifyCommand(t *testing.T) {
	setupProject(t)

	out, err := runCommand(t, "classify", "STARBUCKS #123")
	require.NoError(t, err)
	assert.Contains(t, out, "vendor: Starbucks")
	assert.Contains(t, out, "tag: coffee")

	out, err = runCommand(t, "classify", "MYSTERY CHARGE")
	require.NoError(t, err)
	assert.Contains(t, out, "unclassified")
}

func TestReportCommand(t *testing.T) {
	dir := setupProject(t)
	path := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(path,
		[]byte("Date,Amount,Description\n01/03/2025,-4.50,STARBUCKS #123\n01/05/2025,-80.00,WEGMANS\n"), 0o644))

	_, err := runCommand(t, "ingest", "--yes", path)
	require.NoError(t, err)

	out, err := runCommand(t, "report")
	require.NoError(t, err)
	assert.Contains(t, out, "2 transactions")
	assert.Contains(t, out, "coffee")
	assert.Contains(t, out, "(unclassified)")

	out, err = runCommand(t, "report", "--from", "01/04/25")
	require.NoError(t, err)
	assert.Contains(t, out, "1 transactions")
}
