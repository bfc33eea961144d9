package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenValidityDuration)
	assert.Equal(t, 10, cfg.LoginRatePerMinute)
	assert.Equal(t, 30, cfg.RefreshRatePerMinute)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("WENOTES_SECRET_KEY", "prod-secret")
	t.Setenv("WENOTES_ENV", "production")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "prod-secret", cfg.SecretKey)
	assert.True(t, cfg.IsProduction())
}

func TestParseJson(t *testing.T) {
	content := `{
		"endpoint_addr": ":9090",
		"secret_key": "json-secret",
		"access_token_validity_duration": "30m",
		"refresh_token_validity_duration": "168h",
		"login_rate_per_minute": 5
	}`

	f, err := os.CreateTemp(t.TempDir(), "conf*.json")
	require.NoError(t, err)
	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	oldArgs := os.Args
	os.Args = []string{"server", "-c", f.Name()}
	defer func() { os.Args = oldArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":9090", cfg.EndpointAddr)
	assert.Equal(t, "json-secret", cfg.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTokenValidityDuration)
	assert.Equal(t, 5, cfg.LoginRatePerMinute)
	// untouched fields keep defaults
	assert.Equal(t, 10, cfg.BcryptCost)
}
