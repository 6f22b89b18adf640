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

func flagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(flagSet(t))
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.Addr)
	assert.Equal(t, "v2", cfg.SchemaVersion)
	assert.Equal(t, "file", cfg.Seed.Source)
	assert.Empty(t, cfg.Seed.File)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, 20.0, cfg.Limits.RPS)
	assert.Equal(t, 40, cfg.Limits.Burst)
	assert.Equal(t, 2.0, cfg.Limits.WriteRPS)
	assert.Equal(t, 5, cfg.Limits.WriteBurst)
	assert.Equal(t, 2000, cfg.Limits.QuotaPerDay)
}

func TestLoad_NilFlagSet(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "v2", cfg.SchemaVersion)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("SCHEMA_VERSION", "v1")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	t.Setenv("CACHE_TTL", "5s")
	t.Setenv("QUOTA_PER_DAY", "7")
	t.Setenv("WRITE_BURST", "9")

	cfg, err := Load(flagSet(t))
	require.NoError(t, err)
	assert.Equal(t, "v1", cfg.SchemaVersion)
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, 5*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, 7, cfg.Limits.QuotaPerDay)
	assert.Equal(t, 9, cfg.Limits.WriteBurst)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("ADDR", ":9000")
	cfg, err := Load(flagSet(t, "--addr=:9100", "--seed=mongo", "--mongo_db=events"))
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Addr)
	assert.Equal(t, "mongo", cfg.Seed.Source)
	assert.Equal(t, "events", cfg.Seed.MongoDB)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventgraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schema: v1\nrate_rps: 3\n"), 0o600))

	cfg, err := Load(flagSet(t, "--config_file="+path))
	require.NoError(t, err)
	assert.Equal(t, "v1", cfg.SchemaVersion)
	assert.Equal(t, 3.0, cfg.Limits.RPS)
}

func TestLoad_Invalid(t *testing.T) {
	for _, args := range [][]string{
		{"--schema=v3"},
		{"--seed=sqlite"},
		{"--rate_rps=-1"},
		{"--write_rps=-0.5"},
	} {
		_, err := Load(flagSet(t, args...))
		assert.Error(t, err, args)
	}
}
