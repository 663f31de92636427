package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_ParsesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pam_isolate.toml")
	content := `
log_level = "debug"

[users]
ignore = ["root", "svc-deploy"]

[mount]
tmp = "/tmp/carol"
size = "256M"

[net]
loopback = "lo"

[sysctl]
"net.ipv4.ip_forward" = 1
"kernel.hostname" = "isolated"

[sysctl."net.core.somaxconn"]
type = "u32"
value = 1024
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, DefaultUserEnv, cfg.UserEnv)
	require.ElementsMatch(t, []string{"root", "svc-deploy"}, cfg.Users.Ignore)
	require.NotNil(t, cfg.Mount)
	require.Equal(t, "/tmp/carol", cfg.Mount.Tmp)
	require.Equal(t, "256M", cfg.Mount.Size)
	require.True(t, cfg.IsIgnored("root"))
	require.False(t, cfg.IsIgnored("alice"))

	require.Equal(t, int64(1), cfg.Sysctl["net.ipv4.ip_forward"])
	require.Equal(t, "isolated", cfg.Sysctl["kernel.hostname"])
	typed, ok := cfg.Sysctl["net.core.somaxconn"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "u32", typed["type"])
}
