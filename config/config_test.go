package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	return home
}

func TestLoadConfigCreatesDefaults(t *testing.T) {
	home := withHome(t)

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultCardHeight, cfg.CardHeight)
	assert.Equal(t, DefaultHoleDepth, cfg.DefaultDepth)
	assert.Equal(t, 5*time.Second, cfg.UndoTimeout())
	assert.Empty(t, cfg.WatchDir)

	data, err := os.ReadFile(filepath.Join(home, ".door-import", ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "card_height: 600")
	assert.Contains(t, string(data), "undo_timeout_ms: 5000")
}

func TestLoadConfigLayers(t *testing.T) {
	home := withHome(t)
	dir := filepath.Join(home, ".door-import")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(
		"card_height: 300\nwatch_dir: /from/file\noutput_dir: /out\n"), 0644))

	t.Setenv("DOOR_IMPORT_WATCH_DIR", "/from/env")
	t.Setenv("DOOR_IMPORT_UNDO_TIMEOUT_MS", "2500")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("watch", "", "")
	flags.String("output-dir", "", "")
	require.NoError(t, flags.Parse([]string{"--output-dir", "/from/flag"}))

	cfg, err := LoadConfig(flags)
	require.NoError(t, err)

	assert.Equal(t, 300.0, cfg.CardHeight, "file overrides defaults")
	assert.Equal(t, "/from/env", cfg.WatchDir, "env overrides file, unset flag ignored")
	assert.Equal(t, 2500, cfg.UndoTimeoutMs)
	assert.Equal(t, "/from/flag", cfg.OutputDir, "flag overrides file")
}

func TestLoadConfigWatchFlag(t *testing.T) {
	withHome(t)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("watch", "", "")
	require.NoError(t, flags.Parse([]string{"--watch", "/drop"}))

	cfg, err := LoadConfig(flags)
	require.NoError(t, err)
	assert.Equal(t, "/drop", cfg.WatchDir)
}

func TestLoadConfigCorruptFile(t *testing.T) {
	home := withHome(t)
	dir := filepath.Join(home, ".door-import")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("card_height: [oops"), 0644))

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultCardHeight, cfg.CardHeight)

	backups, err := filepath.Glob(filepath.Join(dir, ConfigFileName+".corrupt.*"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestLoadConfigSanitizes(t *testing.T) {
	withHome(t)
	t.Setenv("DOOR_IMPORT_CARD_HEIGHT", "-1")
	t.Setenv("DOOR_IMPORT_DEFAULT_DEPTH", "0")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultCardHeight, cfg.CardHeight)
	assert.Equal(t, DefaultHoleDepth, cfg.DefaultDepth)
}

func TestState(t *testing.T) {
	home := withHome(t)

	state := LoadState()
	assert.Equal(t, uint32(0), state.GetHelpScreensSeen())
	assert.FileExists(t, filepath.Join(home, ".door-import", StateFileName))

	require.NoError(t, state.SetHelpScreensSeen(3))
	require.NoError(t, state.SetLastDirectory("/panels"))

	reloaded := LoadState()
	assert.Equal(t, uint32(3), reloaded.GetHelpScreensSeen())
	assert.Equal(t, "/panels", reloaded.GetLastDirectory())

	require.NoError(t, ResetState())
	assert.Equal(t, DefaultState(), LoadState())
}

func TestStateCorrupt(t *testing.T) {
	home := withHome(t)
	dir := filepath.Join(home, ".door-import")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, StateFileName), []byte("{not json"), 0644))

	assert.Equal(t, DefaultState(), LoadState())
}

func TestFileLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), StateFileName)

	lock := NewFileLock(path)
	require.NoError(t, lock.Lock())
	assert.Error(t, lock.Lock(), "lock is not reentrant")
	require.NoError(t, lock.Unlock())
	require.NoError(t, lock.Unlock())

	r1, r2 := NewFileLock(path), NewFileLock(path)
	require.NoError(t, r1.RLock())
	require.NoError(t, r2.RLock(), "shared locks coexist")
	require.NoError(t, r1.Unlock())
	require.NoError(t, r2.Unlock())
}
