package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEnvironment(t *testing.T) {
	t.Run("test profile", func(t *testing.T) {
		cfg, err := ForEnvironment(EnvTest)
		require.NoError(t, err)
		assert.True(t, cfg.Debug)
		assert.False(t, cfg.CSRFEnabled)
		assert.Equal(t, "not_very_secret", cfg.SecretKey)
		assert.Equal(t, "cirrus-communications-dev-dev", cfg.Buckets.Communications)
		assert.Equal(t, "http://asset-host", cfg.AssetsURL)
		assert.Equal(t, 4*time.Hour, cfg.Session.Lifetime)
	})

	t.Run("development profile uses insecure cookies", func(t *testing.T) {
		cfg, err := ForEnvironment(EnvDevelopment)
		require.NoError(t, err)
		assert.False(t, cfg.Session.Secure)
		assert.Equal(t, "http://localhost:5000", cfg.DataAPIURL)
		assert.Zero(t, cfg.TrustedProxyHops)
		assert.Equal(t, "https://cirrus-submissions-dev-dev.s3-eu-west-1.amazonaws.com", cfg.AssetsURL)
	})

	t.Run("live profiles share agreements inbox", func(t *testing.T) {
		for _, env := range []string{EnvPreview, EnvStaging, EnvProduction} {
			cfg, err := ForEnvironment(env)
			require.NoError(t, err)
			assert.Equal(t, "https", cfg.HTTPProto, env)
			assert.Equal(t, "enquiries@cirrus.pebblecode.com", cfg.FrameworkAgreementsEmail, env)
			assert.True(t, cfg.Session.Secure, env)
			assert.Equal(t, 1, cfg.TrustedProxyHops, env)
		}
	})

	t.Run("unknown environment", func(t *testing.T) {
		_, err := ForEnvironment("qa")
		require.Error(t, err)
	})
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DM_ENVIRONMENT", EnvTest)
	t.Setenv("DM_DATA_API_URL", "http://api.example")
	t.Setenv("DM_AGREEMENTS_BUCKET", "agreements")
	t.Setenv("DM_CONTENT_FRAMEWORKS", "g-cloud-7, digital-outcomes-and-specialists")
	t.Setenv("DM_SESSION_COOKIE_SECURE", "false")
	t.Setenv("DM_TRUSTED_PROXY_HOPS", "2")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://api.example", cfg.DataAPIURL)
	assert.Equal(t, "agreements", cfg.Buckets.Agreements)
	assert.Equal(t, []string{"g-cloud-7", "digital-outcomes-and-specialists"}, cfg.ContentFrameworks)
	assert.False(t, cfg.Session.Secure)
	assert.Equal(t, 2, cfg.TrustedProxyHops)
}

func TestFromEnv_InvalidProxyHops(t *testing.T) {
	for _, v := range []string{"-1", "two"} {
		t.Setenv("DM_ENVIRONMENT", EnvTest)
		t.Setenv("DM_DATA_API_URL", "http://api.example")
		t.Setenv("DM_TRUSTED_PROXY_HOPS", v)

		_, err := FromEnv()
		require.Error(t, err, v)
		assert.Contains(t, err.Error(), "DM_TRUSTED_PROXY_HOPS")
	}
}

func TestFromEnv_MissingAPIURL(t *testing.T) {
	t.Setenv("DM_ENVIRONMENT", EnvProduction)
	t.Setenv("DM_DATA_API_URL", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DM_DATA_API_URL")
	assert.Contains(t, err.Error(), "DM_SECRET_KEY")
}

func TestFeatureEnabled(t *testing.T) {
	cfg, err := ForEnvironment(EnvTest)
	require.NoError(t, err)

	assert.False(t, cfg.FeatureEnabled(FeatureEditSections, time.Date(2015, 6, 2, 23, 0, 0, 0, time.UTC)))
	assert.True(t, cfg.FeatureEnabled(FeatureEditSections, time.Date(2015, 6, 3, 0, 0, 0, 0, time.UTC)))
	assert.False(t, cfg.FeatureEnabled("UNKNOWN", time.Now()))

	live, err := ForEnvironment(EnvProduction)
	require.NoError(t, err)
	assert.False(t, live.FeatureEnabled(FeatureEditSections, time.Now()))
}
