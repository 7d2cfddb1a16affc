package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(siteBaseURLEnv, "")
	t.Setenv(researchDepthEnv, "")

	cfg := Load("")

	require.Equal(t, "light", cfg.Research.Depth)
	require.Equal(t, 3*time.Second, cfg.Research.RequestDelay)
	require.Equal(t, 180, cfg.Research.WindowDays)
	require.Equal(t, []string{"/docs/", "docs/", "/blog/", "/articles/"}, cfg.Site.LinkPrefixes)
	require.Equal(t, "UTC", cfg.Scheduler.Location().String())
	require.False(t, cfg.Notifications.Telegram.Enabled())
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
site:
  baseUrl: https://docs.example.org/
  maxPages: 5
research:
  depth: deep
  requestDelay: 500ms
scheduler:
  timezone: Europe/Berlin
logging:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	t.Setenv(researchDepthEnv, "light")
	t.Setenv(chatGPTAPIKeyEnv, "sk-test")
	t.Setenv(siteBaseURLEnv, "")

	cfg := Load(path)

	require.Equal(t, "https://docs.example.org/", cfg.Site.BaseURL)
	require.Equal(t, 5, cfg.Site.MaxPages)
	require.Equal(t, "light", cfg.Research.Depth)
	require.Equal(t, 500*time.Millisecond, cfg.Research.RequestDelay)
	require.Equal(t, "json", cfg.Logging.Format)
	require.Equal(t, "sk-test", cfg.ChatGPT.APIKey)
	require.Equal(t, "Europe/Berlin", cfg.Scheduler.Location().String())
	require.Equal(t, []string{"article", ".theme-doc-markdown", ".markdown", "main", ".content"}, cfg.Site.ContentSelectors)
}

func TestLoadIgnoresBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("site: [unterminated"), 0o600))
	t.Setenv(siteBaseURLEnv, "")

	cfg := Load(path)

	require.Equal(t, defaultConfig().Site.BaseURL, cfg.Site.BaseURL)
}
