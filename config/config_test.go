package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "javaboot.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseKeepsDefaultsForAbsentKeys(t *testing.T) {
	cfg, err := Parse([]byte(`
[general]
log_level = "debug"
`))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.General.LogLevel)
	assert.Equal(t, "acdc-java", cfg.General.VendorPrefix)
	assert.Equal(t, 1, cfg.Network.Retries)
	assert.Equal(t, 30*time.Second, cfg.Network.TimeoutDuration())
	assert.Equal(t, 2*time.Second, cfg.Network.RetryCooldownDuration())
	assert.Equal(t, "changeit", cfg.Certificates.CacertsPassword)
}

func TestParseZeroRetries(t *testing.T) {
	cfg, err := Parse([]byte(`
[network]
retries = 0
timeout = "5s"
`))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Network.Retries)
	assert.Equal(t, 5*time.Second, cfg.Network.TimeoutDuration())
}

func TestLoadConfigFromFlag(t *testing.T) {
	cert := filepath.Join(t.TempDir(), "corp.pem")
	require.NoError(t, os.WriteFile(cert, []byte("pem"), 0644))

	path := writeConfig(t, `
[general]
log_level = "error"
vendor_prefix = "my-java"
home_dir = "/srv/sandbox"

[network]
retries = 3
retry_cooldown = "500ms"

[[certificates.entries]]
alias = "corp-root"
path = "`+filepath.ToSlash(cert)+`"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "my-java", cfg.General.VendorPrefix)
	assert.Equal(t, 3, cfg.Network.Retries)
	assert.Equal(t, 500*time.Millisecond, cfg.Network.RetryCooldownDuration())
	require.Len(t, cfg.Certificates.Entries, 1)
	assert.Equal(t, "corp-root", cfg.Certificates.Entries[0].Alias)

	home, err := cfg.Home()
	require.NoError(t, err)
	assert.Equal(t, "/srv/sandbox", home)
}

func TestLoadConfigFromEnv(t *testing.T) {
	path := writeConfig(t, "[general]\nvendor_prefix = \"from-env\"\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.General.VendorPrefix)
}

func TestLoadConfigMissingDefaultFile(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Default().General, cfg.General)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadConfigParseError(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "[general\nlog_level = "))
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "bad level", mutate: func(c *Config) { c.General.LogLevel = "verbose" }, wantErr: "log_level"},
		{name: "vendor with separator", mutate: func(c *Config) { c.General.VendorPrefix = "a/b" }, wantErr: "vendor_prefix"},
		{name: "hidden vendor", mutate: func(c *Config) { c.General.VendorPrefix = ".acdc-java" }, wantErr: "vendor_prefix"},
		{name: "negative retries", mutate: func(c *Config) { c.Network.Retries = -1 }, wantErr: "retries"},
		{name: "bad timeout", mutate: func(c *Config) { c.Network.Timeout = "soon" }, wantErr: "network.timeout"},
		{name: "zero timeout", mutate: func(c *Config) { c.Network.Timeout = "0s" }, wantErr: "network.timeout"},
		{name: "bad cooldown", mutate: func(c *Config) { c.Network.RetryCooldown = "-1s" }, wantErr: "retry_cooldown"},
		{
			name: "certificate without alias",
			mutate: func(c *Config) {
				c.Certificates.Entries = []CertificateEntry{{Path: "x.pem"}}
			},
			wantErr: "alias",
		},
		{
			name: "missing certificate file",
			mutate: func(c *Config) {
				c.Certificates.Entries = []CertificateEntry{{Alias: "a", Path: "/does/not/exist.pem"}}
			},
			wantErr: "certificate file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := ExpandTilde("~/logs")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs"), expanded)

	unchanged, err := ExpandTilde("/var/log")
	require.NoError(t, err)
	assert.Equal(t, "/var/log", unchanged)
}

func TestEnsureDirectoriesExist(t *testing.T) {
	cfg := Default()
	cfg.General.LogPath = filepath.Join(t.TempDir(), "logs", "javaboot")

	require.NoError(t, EnsureDirectoriesExist(cfg))
	info, err := os.Stat(cfg.General.LogPath)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.Error(t, EnsureDirectoriesExist(nil))
}
