package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("prefix_mode", "index")
	require.NoError(t, err)

	val, ok := store.Get("prefix_mode")
	assert.True(t, ok)
	assert.Equal(t, "index", val)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("weight_mode", "zipf"))
	require.NoError(t, store.Set("seed", 777))
	require.NoError(t, store.Set("zipf_exponent", 1.5))
	require.NoError(t, store.Set("cap_to_available", true))
	require.NoError(t, store.Set("sources", []string{"/data/a", "/data/b"}))

	assert.Equal(t, "zipf", store.GetString("weight_mode"))
	assert.Equal(t, 777, store.GetInt("seed"))
	assert.Equal(t, 1.5, store.GetFloat64("zipf_exponent"))
	assert.True(t, store.GetBool("cap_to_available"))
	assert.Equal(t, []string{"/data/a", "/data/b"}, store.GetStringSlice("sources"))

	// Missing keys return zero values.
	assert.Equal(t, "", store.GetString("nope"))
	assert.Equal(t, 0, store.GetInt("nope"))
	assert.Equal(t, 0.0, store.GetFloat64("nope"))
	assert.False(t, store.GetBool("nope"))
	assert.Nil(t, store.GetStringSlice("nope"))
}

func TestConfigStore_GetFloat64_FromInteger(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	// "zipf_exponent = 1" in TOML parses as an integer.
	require.NoError(t, store.Set("zipf_exponent", int64(1)))
	assert.Equal(t, 1.0, store.GetFloat64("zipf_exponent"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("seed", 42))
	require.NoError(t, store.Set("weight_mode", "uniform"))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 42, reopened.GetInt("seed"))
	assert.Equal(t, "uniform", reopened.GetString("weight_mode"))
}

func TestConfigStore_Load_FlattensNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[dev]\nseed = 13\ndestination = \"/data/dev\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0o600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 13, store.GetInt("dev.seed"))
	assert.Equal(t, "/data/dev", store.GetString("dev.destination"))
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), nil, 0o600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	_, ok := store.Get("anything")
	assert.False(t, ok)
}
