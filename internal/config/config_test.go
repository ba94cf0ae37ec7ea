package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"verifier/internal/config"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "environment: development\n"))
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, time.Minute, cfg.HTTP.ReadTimeout)
	require.Equal(t, 10*time.Second, cfg.HTTP.ReadHeaderTimeout)
	require.Equal(t, time.Duration(0), cfg.HTTP.WriteTimeout)
	require.Equal(t, 30*time.Minute, cfg.HTTP.RequestTimeout)
	require.Equal(t, "/metrics", cfg.HTTP.MetricsPath)

	require.Equal(t, float64(10), cfg.RateLimit.RPS)
	require.Equal(t, 20, cfg.RateLimit.Burst)

	require.Equal(t, "verify@localhost", cfg.Verify.MailFrom)
	require.Equal(t, "localhost", cfg.Verify.HelloDomain)
	require.Equal(t, 25, cfg.Verify.SMTPPort)
	require.Equal(t, 5*time.Second, cfg.Verify.ProbeTimeout)
	require.Equal(t, 5*time.Second, cfg.Verify.DNSTimeout)
	require.Equal(t, 1000, cfg.Verify.BatchLimit)
	require.Equal(t, 4, cfg.Verify.BatchConcurrency)
	require.Empty(t, cfg.Verify.UnverifiableDomains)
	require.Equal(t, "off", cfg.Verify.UnverifiablePolicy)

	require.Equal(t, 10*time.Second, cfg.GracefulShutdownTimeout)
}

func TestLoadReadsValues(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, `environment: production
http:
  addr: ":9090"
  readTimeout: 30s
auth:
  secret: hunter2
verify:
  batchLimit: 50
  unverifiableDomains:
    - gmail.com
    - yahoo.com
  unverifiablePolicy: reject
`))
	require.NoError(t, err)

	require.Equal(t, "production", cfg.Environment)
	require.Equal(t, ":9090", cfg.HTTP.Addr)
	require.Equal(t, 30*time.Second, cfg.HTTP.ReadTimeout)
	require.Equal(t, "hunter2", cfg.Auth.Secret)
	require.Equal(t, 50, cfg.Verify.BatchLimit)
	require.Equal(t, []string{"gmail.com", "yahoo.com"}, cfg.Verify.UnverifiableDomains)
	require.Equal(t, "reject", cfg.Verify.UnverifiablePolicy)

	// untouched sections keep their defaults
	require.Equal(t, 25, cfg.Verify.SMTPPort)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
}
