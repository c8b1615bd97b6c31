package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SPELLTREE_ENV", "")
	t.Setenv("SPELLTREE_DB", "")
	t.Setenv("SPELLTREE_HISTORY", "")

	app, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", app.Env)
	assert.False(t, app.IsProduction())
	assert.Equal(t, filepath.Join(home, ".spelltree", "history.db"), app.DBPath)
	assert.True(t, app.History)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SPELLTREE_ENV", "production")
	t.Setenv("SPELLTREE_DB", ":memory:")
	t.Setenv("SPELLTREE_HISTORY", "false")

	app, err := Load()
	require.NoError(t, err)
	assert.True(t, app.IsProduction())
	assert.Equal(t, ":memory:", app.DBPath)
	assert.False(t, app.History)
}

func TestLoad_BadBoolKeepsDefault(t *testing.T) {
	t.Setenv("SPELLTREE_DB", ":memory:")
	t.Setenv("SPELLTREE_HISTORY", "sometimes")

	app, err := Load()
	require.NoError(t, err)
	assert.True(t, app.History)
}
