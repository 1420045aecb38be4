package main

import (
	"context"
	"errors"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/creativesync/internal/dashboard"
	"github.com/sells-group/creativesync/internal/generate"
	"github.com/sells-group/creativesync/internal/model"
	"github.com/sells-group/creativesync/internal/resilience"
	"github.com/sells-group/creativesync/internal/scorer"
	"github.com/sells-group/creativesync/internal/store"
	anthropicpkg "github.com/sells-group/creativesync/pkg/anthropic"
	"github.com/sells-group/creativesync/pkg/gemini"
)

// appEnv holds the store and generation service shared by the commands.
type appEnv struct {
	Store store.Store
	Gen   *generate.Service
	Rand  scorer.RandSource
}

// Close releases the store.
func (e *appEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initEnv validates config for mode, opens and migrates the store and builds
// the generation service. Callers should defer env.Close().
func initEnv(ctx context.Context, mode string) (*appEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	rng := scorer.GlobalRand()
	if cfg.Generation.Seed != 0 {
		rng = scorer.NewRand(cfg.Generation.Seed)
	}

	provider, err := initProvider(ctx, st)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	gen := generate.NewService(provider,
		generate.WithRand(rng),
		generate.WithVariantDelay(time.Duration(cfg.Generation.VariantDelayMS)*time.Millisecond),
		generate.WithTimeout(time.Duration(cfg.Generation.TimeoutSecs)*time.Second),
		generate.WithBreaker(resilience.NewCircuitBreaker(
			resilience.NewBreakerConfig(cfg.Generation.BreakerFailures, cfg.Generation.BreakerResetSec),
		)),
	)
	zap.L().Debug("generation provider ready", zap.String("provider", gen.ProviderName()))

	return &appEnv{Store: st, Gen: gen, Rand: rng}, nil
}

// initStore opens the configured store backend.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "creativesync.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// initProvider picks the generation backend. A missing key degrades to
// template copy (nil provider) rather than failing the command.
func initProvider(ctx context.Context, st store.Store) (generate.Provider, error) {
	switch cfg.Generation.Provider {
	case "gemini":
		key, err := geminiKey(ctx, st)
		if err != nil {
			return nil, err
		}
		if !gemini.KeyConfigured(key) {
			zap.L().Info("no gemini api key configured, using template copy")
			return nil, nil
		}
		return geminiProvider(key), nil
	case "anthropic":
		if cfg.Anthropic.Key == "" {
			zap.L().Info("no anthropic api key configured, using template copy")
			return nil, nil
		}
		return generate.NewAnthropicProvider(
			anthropicpkg.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model, cfg.Anthropic.MaxTokens,
		), nil
	default:
		return nil, nil
	}
}

func geminiProvider(key string) generate.Provider {
	return generate.NewGeminiProvider(gemini.NewClient(key,
		gemini.WithBaseURL(cfg.Gemini.BaseURL),
		gemini.WithModel(cfg.Gemini.Model),
	))
}

// storedKeyProvider builds a Gemini provider for a key saved at runtime. It
// declines when another provider is selected or a configured key takes
// precedence.
func storedKeyProvider(key string) generate.Provider {
	if cfg.Generation.Provider != "gemini" || cfg.Gemini.Key != "" || !gemini.KeyConfigured(key) {
		return nil
	}
	return geminiProvider(key)
}

// geminiKey prefers the configured key over the one saved in settings.
func geminiKey(ctx context.Context, st store.Store) (string, error) {
	if cfg.Gemini.Key != "" {
		return cfg.Gemini.Key, nil
	}
	key, err := st.GetSetting(ctx, store.SettingGeminiAPIKey)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", eris.Wrap(err, "read stored gemini key")
	}
	return key, nil
}

// liveDashboard seeds a dashboard for one CLI call, synced with the store.
func liveDashboard(ctx context.Context, env *appEnv) (dashboard.State, error) {
	state := dashboard.Seed(time.Now(), env.Rand)

	theme, err := env.Store.GetSetting(ctx, store.SettingTheme)
	if err != nil {
		return state, eris.Wrap(err, "read theme")
	}
	active, err := env.Store.CountByStatus(ctx, model.CampaignStatusActive)
	if err != nil {
		return state, eris.Wrap(err, "count active campaigns")
	}

	state = dashboard.Reduce(state, dashboard.SetTheme{Theme: theme})
	state = dashboard.Reduce(state, dashboard.CampaignsChanged{Active: active})
	return state, nil
}
