package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendREST, cfg.Calendar.Backend)
	assert.Equal(t, "08:00", cfg.Planner.WorkStart)
	assert.Equal(t, "20:00", cfg.Planner.WorkEnd)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
journal:
  token: file-token
  database_id: db-42
calendar:
  ics_path: /tmp/cal.ics
planner:
  work_start: "07:00"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.Journal.Token)
	assert.Equal(t, "db-42", cfg.Journal.DatabaseID)
	// ICS path without an explicit backend selects the ics backend.
	assert.Equal(t, BackendICS, cfg.Calendar.Backend)
	assert.Equal(t, "07:00", cfg.Planner.WorkStart)
	// Unset fields are normalized.
	assert.Equal(t, "20:00", cfg.Planner.WorkEnd)
	assert.NotEmpty(t, cfg.HistoryDB)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
journal:
  token: file-token
`), 0o600))

	t.Setenv("NOTION_TOKEN", "env-token")
	t.Setenv("DATABASE_ID", "env-db")
	t.Setenv("DAYPLAN_CALENDAR_URL", "http://cal.local")
	t.Setenv("DAYPLAN_HISTORY_DB", "/tmp/runs.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Journal.Token)
	assert.Equal(t, "env-db", cfg.Journal.DatabaseID)
	assert.Equal(t, "http://cal.local", cfg.Calendar.BaseURL)
	assert.Equal(t, BackendREST, cfg.Calendar.Backend)
	assert.Equal(t, "/tmp/runs.db", cfg.HistoryDB)
}

func TestWorkWindow(t *testing.T) {
	cfg := DefaultConfig()
	start, end, err := cfg.WorkWindow()
	require.NoError(t, err)
	assert.Equal(t, 480, start)
	assert.Equal(t, 1200, end)

	cfg.Planner.WorkStart = "21:00"
	_, _, err = cfg.WorkWindow()
	require.Error(t, err)

	cfg.Planner.WorkStart = "bad"
	_, _, err = cfg.WorkWindow()
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Journal.Token = "tok"
	cfg.Calendar.Backend = BackendICS
	cfg.Calendar.ICSPath = "/tmp/cal.ics"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tok", loaded.Journal.Token)
	assert.Equal(t, BackendICS, loaded.Calendar.Backend)
	assert.Equal(t, "/tmp/cal.ics", loaded.Calendar.ICSPath)
}
