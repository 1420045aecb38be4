package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/creativesync/internal/config"
	"github.com/sells-group/creativesync/internal/dashboard"
	"github.com/sells-group/creativesync/internal/model"
	"github.com/sells-group/creativesync/internal/store"
)

// withConfig installs c as the command config for the duration of the test.
func withConfig(t *testing.T, c *config.Config) {
	t.Helper()
	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Store:      config.StoreConfig{Driver: "sqlite", DatabaseURL: filepath.Join(t.TempDir(), "cli.db")},
		Generation: config.GenerationConfig{Provider: "fallback", Seed: 42},
		Server:     config.ServerConfig{Port: 8080},
		Log:        config.LogConfig{Level: "error", Format: "console"},
	}
}

func TestInitStore_UnsupportedDriver(t *testing.T) {
	c := testConfig(t)
	c.Store.Driver = "mysql"
	withConfig(t, c)

	_, err := initStore(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store driver")
}

func TestInitEnv_Fallback(t *testing.T) {
	withConfig(t, testConfig(t))

	env, err := initEnv(context.Background(), "cli")
	require.NoError(t, err)
	defer env.Close()

	assert.Equal(t, "fallback", env.Gen.ProviderName())
	_, err = env.Store.GetProfile(context.Background())
	assert.NoError(t, err, "store is migrated")
}

func TestInitEnv_InvalidConfig(t *testing.T) {
	c := testConfig(t)
	withConfig(t, c)

	_, err := initEnv(context.Background(), "publish")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notion.token is required")
}

func TestInitProvider(t *testing.T) {
	ctx := context.Background()
	c := testConfig(t)
	withConfig(t, c)

	st, err := initStore(ctx)
	require.NoError(t, err)
	defer st.Close() //nolint:errcheck
	require.NoError(t, st.Migrate(ctx))

	c.Generation.Provider = "gemini"
	p, err := initProvider(ctx, st)
	require.NoError(t, err)
	assert.Nil(t, p, "no gemini key means template copy")

	require.NoError(t, st.SetSetting(ctx, store.SettingGeminiAPIKey, "AIzaSyStoredKeyForTesting0123456789"))
	p, err = initProvider(ctx, st)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "gemini", p.Name())

	c.Generation.Provider = "anthropic"
	p, err = initProvider(ctx, st)
	require.NoError(t, err)
	assert.Nil(t, p)

	c.Anthropic.Key = "sk-ant-test"
	p, err = initProvider(ctx, st)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "anthropic", p.Name())
}

func TestStoredKeyProvider(t *testing.T) {
	c := testConfig(t)
	withConfig(t, c)
	key := "AIzaSyRuntimeKeyRuntimeKey1234"

	assert.Nil(t, storedKeyProvider(key), "fallback provider selected")

	c.Generation.Provider = "gemini"
	p := storedKeyProvider(key)
	require.NotNil(t, p)
	assert.Equal(t, "gemini", p.Name())

	assert.Nil(t, storedKeyProvider("short"))

	c.Gemini.Key = "AIzaSyConfiguredKeyConfigured1"
	assert.Nil(t, storedKeyProvider(key), "configured key takes precedence")
}

func TestGeminiKey_ConfigWins(t *testing.T) {
	ctx := context.Background()
	c := testConfig(t)
	c.Gemini.Key = "from-config"
	withConfig(t, c)

	st, err := initStore(ctx)
	require.NoError(t, err)
	defer st.Close() //nolint:errcheck
	require.NoError(t, st.Migrate(ctx))
	require.NoError(t, st.SetSetting(ctx, store.SettingGeminiAPIKey, "from-settings-stored-key-0001"))

	key, err := geminiKey(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, "from-config", key)
}

func TestLiveDashboard(t *testing.T) {
	ctx := context.Background()
	withConfig(t, testConfig(t))

	env, err := initEnv(ctx, "cli")
	require.NoError(t, err)
	defer env.Close()

	require.NoError(t, env.Store.SetSetting(ctx, store.SettingTheme, store.ThemeDark))
	require.NoError(t, env.Store.SaveCampaign(ctx, &model.Campaign{Name: "One", Content: "copy"}))

	state, err := liveDashboard(ctx, env)
	require.NoError(t, err)
	assert.Equal(t, dashboard.ThemeDark, state.Theme)
	assert.Equal(t, 1, state.Metrics.ActiveCampaigns)
	assert.Equal(t, dashboard.SeedImpressions, state.Metrics.Impressions)
}
