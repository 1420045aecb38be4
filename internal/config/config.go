package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Gemini     GeminiConfig     `yaml:"gemini" mapstructure:"gemini"`
	Anthropic  AnthropicConfig  `yaml:"anthropic" mapstructure:"anthropic"`
	Generation GenerationConfig `yaml:"generation" mapstructure:"generation"`
	Notion     NotionConfig     `yaml:"notion" mapstructure:"notion"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// GeminiConfig holds Gemini generateContent API settings.
type GeminiConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// GenerationConfig configures the generation service.
type GenerationConfig struct {
	Provider        string `yaml:"provider" mapstructure:"provider"`
	VariantDelayMS  int    `yaml:"variant_delay_ms" mapstructure:"variant_delay_ms"`
	TimeoutSecs     int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	BreakerFailures int    `yaml:"breaker_failures" mapstructure:"breaker_failures"`
	BreakerResetSec int    `yaml:"breaker_reset_secs" mapstructure:"breaker_reset_secs"`
	Seed            uint64 `yaml:"seed" mapstructure:"seed"`
}

// NotionConfig holds Notion API credentials and the campaign database ID.
type NotionConfig struct {
	Token      string `yaml:"token" mapstructure:"token"`
	CampaignDB string `yaml:"campaign_db" mapstructure:"campaign_db"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port            int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins  []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	ShutdownTimeout int      `yaml:"shutdown_timeout_secs" mapstructure:"shutdown_timeout_secs"`
	TickSecs        int      `yaml:"tick_secs" mapstructure:"tick_secs"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CREATIVESYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "creativesync.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.shutdown_timeout_secs", 10)
	v.SetDefault("server.tick_secs", 5)
	v.SetDefault("gemini.key", "")
	v.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 2048)
	v.SetDefault("generation.provider", "gemini")
	v.SetDefault("generation.variant_delay_ms", 500)
	v.SetDefault("generation.timeout_secs", 60)
	v.SetDefault("generation.breaker_failures", 3)
	v.SetDefault("generation.breaker_reset_secs", 30)
	v.SetDefault("generation.seed", 0)
	v.SetDefault("notion.token", "")
	v.SetDefault("notion.campaign_db", "")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command mode depends on. Every problem is
// reported in a single error.
func (c *Config) Validate(mode string) error {
	var errs []string

	switch c.Store.Driver {
	case "sqlite":
		if c.Store.DatabaseURL == "" {
			errs = append(errs, "store.database_url is required for sqlite")
		}
	case "postgres":
		if !strings.HasPrefix(c.Store.DatabaseURL, "postgres") {
			errs = append(errs, "store.database_url must be a postgres DSN")
		}
	default:
		errs = append(errs, "store.driver must be sqlite or postgres")
	}

	switch c.Generation.Provider {
	case "gemini", "anthropic", "fallback":
	default:
		errs = append(errs, "generation.provider must be gemini, anthropic, or fallback")
	}
	if c.Generation.VariantDelayMS < 0 {
		errs = append(errs, "generation.variant_delay_ms must be >= 0")
	}

	switch mode {
	case "cli":
	case "serve":
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be > 0 and <= 65535")
		}
	case "publish":
		if c.Notion.Token == "" {
			errs = append(errs, "notion.token is required")
		}
		if c.Notion.CampaignDB == "" {
			errs = append(errs, "notion.campaign_db is required")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
