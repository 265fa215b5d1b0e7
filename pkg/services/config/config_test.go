package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("empty path yields defaults", func(t *testing.T) {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "sacct", cfg.Sacct.Binary)
		assert.Equal(t, "lrz-hgx-h100-94x4", cfg.Sacct.DefaultPartition)
		assert.Equal(t, "mcml", cfg.Enrich.InitiativeTag)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "topusers.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
sacct:
  binary: /opt/slurm/bin/sacct
directory:
  base_url: https://directory.example.org
  profile_path: /etc/topusers/profile.ini
`), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "/opt/slurm/bin/sacct", cfg.Sacct.Binary)
		assert.Equal(t, "https://directory.example.org", cfg.Directory.BaseURL)
		assert.Equal(t, "lrz-hgx-h100-94x4", cfg.Sacct.DefaultPartition, "unset keys keep defaults")
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestLoadCredentials(t *testing.T) {
	t.Run("reads the directory section", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.ini")
		require.NoError(t, os.WriteFile(path, []byte(`
[directory]
user = svc
password = secret
`), 0o644))

		creds, err := LoadCredentials(path)
		require.NoError(t, err)
		assert.Equal(t, "svc", creds.User)
		assert.Equal(t, "secret", creds.Password)
	})

	t.Run("missing user is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.ini")
		require.NoError(t, os.WriteFile(path, []byte("[directory]\n"), 0o644))

		_, err := LoadCredentials(path)
		assert.Error(t, err)
	})
}
