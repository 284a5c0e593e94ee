package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, "gemini-2.0-flash", config.Gemini.Model)
	assert.Equal(t, 2*time.Second, config.Crawler.RequestDelay.Std())
	assert.NotEmpty(t, config.Crawler.URLs)
	assert.False(t, config.Scheduler.Enabled)
}

func TestLoadFromFiles(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "forage.toml")

	content := `
[server]
port = 9090

[crawler]
urls = ["https://example.com/a", "https://example.com/b"]
request_delay = "500ms"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	config, err := LoadFromFiles(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "localhost", config.Server.Host) // default preserved
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, config.Crawler.URLs)
	assert.Equal(t, 500*time.Millisecond, config.Crawler.RequestDelay.Std())
}

func TestLoadFromFilesLaterFileOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	base := filepath.Join(tmpDir, "base.toml")
	override := filepath.Join(tmpDir, "override.toml")

	require.NoError(t, os.WriteFile(base, []byte("[server]\nport = 9090\nhost = \"base\"\n"), 0644))
	require.NoError(t, os.WriteFile(override, []byte("[server]\nport = 7070\n"), 0644))

	config, err := LoadFromFiles(base, override)
	require.NoError(t, err)

	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, "base", config.Server.Host)
}

func TestLoadFromFilesDurationStrings(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "forage.toml")

	content := `
[crawler]
request_delay = "1m30s"
request_timeout = "45s"
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	config, err := LoadFromFiles(configPath)
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, config.Crawler.RequestDelay.Std())
	assert.Equal(t, 45*time.Second, config.Crawler.RequestTimeout.Std())
}

func TestLoadFromFilesInvalidDuration(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "forage.toml")

	require.NoError(t, os.WriteFile(configPath, []byte("[crawler]\nrequest_delay = \"soon\"\n"), 0644))

	_, err := LoadFromFiles(configPath)
	assert.Error(t, err)
}

func TestDurationText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("250ms")))
	assert.Equal(t, 250*time.Millisecond, d.Std())

	text, err := Duration(2 * time.Second).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2s", string(text))

	assert.Error(t, d.UnmarshalText([]byte("not-a-duration")))
}

func TestLoadFromFilesMissingFile(t *testing.T) {
	_, err := LoadFromFiles("/nonexistent/forage.toml")
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FORAGE_SERVER_PORT", "3333")
	t.Setenv("FORAGE_CRAWLER_REQUEST_DELAY", "5s")
	t.Setenv("GEMINI_API_KEY", "env-key")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, 3333, config.Server.Port)
	assert.Equal(t, 5*time.Second, config.Crawler.RequestDelay.Std())
	assert.Equal(t, "env-key", config.Gemini.APIKey)
}

func TestEnvOverridesPrefixedKeyWins(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "bare-key")
	t.Setenv("FORAGE_GEMINI_API_KEY", "prefixed-key")

	config, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, "prefixed-key", config.Gemini.APIKey)
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()

	ApplyFlagOverrides(config, 4444, "0.0.0.0")
	assert.Equal(t, 4444, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)

	// Zero values leave config untouched
	ApplyFlagOverrides(config, 0, "")
	assert.Equal(t, 4444, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
}
