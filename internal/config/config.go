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
	Apollo    ApolloConfig    `yaml:"apollo" mapstructure:"apollo"`
	Lusha     LushaConfig     `yaml:"lusha" mapstructure:"lusha"`
	Scraper   ScraperConfig   `yaml:"scraper" mapstructure:"scraper"`
	Strategy  StrategyConfig  `yaml:"strategy" mapstructure:"strategy"`
	Features  FeatureConfig   `yaml:"features" mapstructure:"features"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// ApolloConfig holds Apollo people-search API settings.
type ApolloConfig struct {
	Enabled       bool    `yaml:"enabled" mapstructure:"enabled"`
	Key           string  `yaml:"key" mapstructure:"key"`
	BaseURL       string  `yaml:"base_url" mapstructure:"base_url"`
	CostPerLookup float64 `yaml:"cost_per_lookup" mapstructure:"cost_per_lookup"`
}

// LushaConfig holds Lusha API settings.
type LushaConfig struct {
	Enabled       bool    `yaml:"enabled" mapstructure:"enabled"`
	Key           string  `yaml:"key" mapstructure:"key"`
	BaseURL       string  `yaml:"base_url" mapstructure:"base_url"`
	CostPerLookup float64 `yaml:"cost_per_lookup" mapstructure:"cost_per_lookup"`
}

// ScraperConfig configures the website-scraper provider. Scraper lookups
// are free, so there is no cost field.
type ScraperConfig struct {
	Enabled        bool     `yaml:"enabled" mapstructure:"enabled"`
	TimeoutSecs    int      `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RequestsPerSec float64  `yaml:"requests_per_sec" mapstructure:"requests_per_sec"`
	ContactPaths   []string `yaml:"contact_paths" mapstructure:"contact_paths"`
}

// StrategyConfig selects how providers are combined per lookup.
type StrategyConfig struct {
	Primary  string `yaml:"primary" mapstructure:"primary"`
	Fallback bool   `yaml:"fallback" mapstructure:"fallback"`
	Parallel bool   `yaml:"parallel" mapstructure:"parallel"`
}

// FeatureConfig holds optional enrichment behaviors.
type FeatureConfig struct {
	BulkEnrichment  bool `yaml:"bulk_enrichment" mapstructure:"bulk_enrichment"`
	PhoneNumbers    bool `yaml:"phone_numbers" mapstructure:"phone_numbers"`
	PartialProfiles bool `yaml:"partial_profiles" mapstructure:"partial_profiles"`
}

// StoreConfig configures the lookup-ledger backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	Path        string `yaml:"path" mapstructure:"path"`
}

// AnthropicConfig holds Anthropic API settings for outreach drafting.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// ServerConfig configures the webhook server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetEnvPrefix("CREWCAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Credential keys default to empty so AutomaticEnv can
	// surface CREWCAST_APOLLO_KEY etc. through Unmarshal; viper only
	// consults the environment for keys it knows about.
	v.SetDefault("apollo.enabled", true)
	v.SetDefault("apollo.key", "")
	v.SetDefault("apollo.base_url", "https://api.apollo.io/v1")
	v.SetDefault("apollo.cost_per_lookup", 0.03)
	v.SetDefault("lusha.enabled", true)
	v.SetDefault("lusha.key", "")
	v.SetDefault("lusha.base_url", "https://api.lusha.com")
	v.SetDefault("lusha.cost_per_lookup", 0.05)
	v.SetDefault("scraper.enabled", true)
	v.SetDefault("scraper.timeout_secs", 10)
	v.SetDefault("scraper.requests_per_sec", 2.0)
	v.SetDefault("scraper.contact_paths", []string{
		"/contact", "/contact-us", "/contacts", "/about", "/about-us",
		"/impressum", "/imprint", "/legal", "/support", "/team",
	})
	v.SetDefault("strategy.primary", "apollo")
	v.SetDefault("strategy.fallback", true)
	v.SetDefault("strategy.parallel", false)
	v.SetDefault("features.bulk_enrichment", true)
	v.SetDefault("features.phone_numbers", false)
	v.SetDefault("features.partial_profiles", true)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "")
	v.SetDefault("store.path", "enrich.db")
	v.SetDefault("anthropic.key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

// ApolloAvailable reports whether the Apollo provider is usable: the flag
// is on and a credential is present.
func (c *Config) ApolloAvailable() bool {
	return c.Apollo.Enabled && c.Apollo.Key != ""
}

// LushaAvailable reports whether the Lusha provider is usable.
func (c *Config) LushaAvailable() bool {
	return c.Lusha.Enabled && c.Lusha.Key != ""
}

// ScraperAvailable reports whether the website scraper is usable. It needs
// no credential.
func (c *Config) ScraperAvailable() bool {
	return c.Scraper.Enabled
}

// Validate checks that at least one provider can run. This is the only
// fatal startup condition: with zero providers every lookup would fail.
func (c *Config) Validate() error {
	if !c.ApolloAvailable() && !c.LushaAvailable() && !c.ScraperAvailable() {
		return eris.New("config: no enrichment provider enabled (set apollo.key, lusha.key, or scraper.enabled)")
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
