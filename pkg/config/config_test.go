package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/ngwp/pkg/server"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(ConfigPathEnvVar, "")

	cfg, err := Load("")
	require.NoError(t, err)

	def := defaultConfig()
	assert.Equal(t, def.Server, cfg.Server)
	assert.Equal(t, def.Log, cfg.Log)
	assert.Equal(t, def.Data, cfg.Data)
	assert.Equal(t, def.Security, cfg.Security)
	assert.Empty(t, cfg.Widget.Templates)
	assert.False(t, cfg.Server.TLSEnabled())

	assert.Equal(t, server.DefaultPort, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080/wp-json", cfg.Server.BaseURL)
	assert.Equal(t, server.DefaultMaxHeaderBytes, cfg.Server.MaxHeaderBytes)
}

func TestLoadFile(t *testing.T) {
	p := writeFile(t, `
server:
  port: 8081
  base_url: https://example.com/wp-json
  read_timeout: 3s
  max_header_bytes: 8192
log:
  level: debug
  format: console
data:
  path: /data/site.yaml
widget:
  templates:
    widget_text: "<p>{{.Body}}</p>"
security:
  cors_origins:
    - https://a.example
    - https://b.example
`)

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "https://example.com/wp-json", cfg.Server.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 8192, cfg.Server.MaxHeaderBytes)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "/data/site.yaml", cfg.Data.Path)
	assert.Equal(t, map[string]string{"widget_text": "<p>{{.Body}}</p>"}, cfg.Widget.Templates)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.CORSOrigins)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	p := writeFile(t, "server:\n  port: 8081\nlog:\n  level: debug\n")
	t.Setenv("NGWP_PORT", "9090")
	t.Setenv("NGWP_LOG_LEVEL", "warn")
	t.Setenv("NGWP_MAX_HEADER_BYTES", "4096")
	t.Setenv("NGWP_RATE_LIMIT_WINDOW", "30s")
	t.Setenv("NGWP_RATE_LIMIT_DISABLED", "true")
	t.Setenv("NGWP_CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("NGWP_UNKNOWN_SETTING", "ignored")

	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 4096, cfg.Server.MaxHeaderBytes)
	assert.Equal(t, 30*time.Second, cfg.Security.RateLimitWindow)
	assert.True(t, cfg.Security.RateLimitDisabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.CORSOrigins)
}

func TestLoadConfigPathEnv(t *testing.T) {
	p := writeFile(t, "data:\n  path: from-env.yaml\n")
	t.Setenv(ConfigPathEnvVar, p)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env.yaml", cfg.Data.Path)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "port out of range", content: "server:\n  port: 70000\n"},
		{name: "bad log level", content: "log:\n  level: loud\n"},
		{name: "bad base url", content: "server:\n  base_url: not a url\n"},
		{name: "zero max header bytes", content: "server:\n  max_header_bytes: 0\n"},
		{name: "cert without key", content: "server:\n  tls_cert_file: cert.pem\n"},
		{name: "bad duration", content: "log:\n  level: info\n", env: map[string]string{"NGWP_READ_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeFile(t, tt.content+"\n"))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestEnvTransformFunc(t *testing.T) {
	assert.Equal(t, "server.port", envTransformFunc("NGWP_PORT"))
	assert.Equal(t, "security.cors_origins", envTransformFunc("NGWP_CORS_ORIGINS"))
	assert.Equal(t, "server.max_header_bytes", envTransformFunc("NGWP_MAX_HEADER_BYTES"))
	assert.Empty(t, envTransformFunc("NGWP_CONFIG"))
	assert.Empty(t, envTransformFunc("NGWP_SOMETHING"))
}
