// Package config loads and validates the career recommender settings.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/career-recommender/internal/ranking"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// CAREER_SERVER_PORT or CAREER_RANKING_WEIGHTS_SKILL.
const EnvPrefix = "CAREER"

// Config is the fully resolved configuration.
type Config struct {
	Catalog   CatalogConfig   `mapstructure:"catalog" json:"catalog"`
	Server    ServerConfig    `mapstructure:"server" json:"server"`
	Log       LogConfig       `mapstructure:"log" json:"log"`
	Ranking   RankingConfig   `mapstructure:"ranking" json:"ranking"`
	Clusters  ClustersConfig  `mapstructure:"clusters" json:"clusters"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" json:"rate_limit"`
	S3        S3Config        `mapstructure:"s3" json:"s3"`
}

// CatalogConfig points at the career catalog: a CSV or XLSX path, a
// postgres:// URL, or an s3://bucket/key URL.
type CatalogConfig struct {
	Source string `mapstructure:"source" json:"source"`
	Table  string `mapstructure:"table" json:"table"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port" json:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" json:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" json:"write_timeout"`
}

type LogConfig struct {
	JSON  bool `mapstructure:"json" json:"json"`
	Debug bool `mapstructure:"debug" json:"debug"`
}

// RankingConfig tunes the ranker.
type RankingConfig struct {
	TopN               int             `mapstructure:"top_n" json:"top_n"`
	Weights            ranking.Weights `mapstructure:"weights" json:"weights"`
	PersonalityDefault float64         `mapstructure:"personality_default" json:"personality_default"`
}

type ClustersConfig struct {
	Enabled bool   `mapstructure:"enabled" json:"enabled"`
	K       int    `mapstructure:"k" json:"k"`
	Seed    uint64 `mapstructure:"seed" json:"seed"`
}

// RateLimitConfig mirrors ratelimit.Config in a decodable shape.
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled" json:"enabled"`
	DefaultLimit    int           `mapstructure:"default_limit" json:"default_limit"`
	DefaultWindow   time.Duration `mapstructure:"default_window" json:"default_window"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" json:"cleanup_interval"`
	Whitelist       []string      `mapstructure:"whitelist" json:"whitelist"`
}

type S3Config struct {
	Region   string `mapstructure:"region" json:"region"`
	Endpoint string `mapstructure:"endpoint" json:"endpoint"`
}

// New returns a viper instance carrying every default and reading
// CAREER_-prefixed environment variables.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// SetDefaults registers the default for every known key. AutomaticEnv only
// overrides keys viper already knows about, so each key needs one.
func SetDefaults(v *viper.Viper) {
	weights := ranking.DefaultWeights()

	v.SetDefault("catalog.source", "data/careers.csv")
	v.SetDefault("catalog.table", "careers")

	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)

	v.SetDefault("ranking.top_n", ranking.DefaultTopN)
	v.SetDefault("ranking.weights.skill", weights.Skill)
	v.SetDefault("ranking.weights.interest", weights.Interest)
	v.SetDefault("ranking.weights.experience", weights.Experience)
	v.SetDefault("ranking.weights.personality", weights.Personality)
	v.SetDefault("ranking.personality_default", ranking.DefaultPersonalityScore)

	v.SetDefault("clusters.enabled", true)
	v.SetDefault("clusters.k", 10)
	v.SetDefault("clusters.seed", 42)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.default_limit", 1000)
	v.SetDefault("rate_limit.default_window", time.Minute)
	v.SetDefault("rate_limit.cleanup_interval", 5*time.Minute)
	v.SetDefault("rate_limit.whitelist", []string{})

	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
}

// Load reads the optional config file at path into v, decodes the merged
// result and validates it. An empty path skips the file.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Catalog.Source) == "" {
		errs = append(errs, errors.New("catalog.source must not be empty"))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d is outside 1..65535", c.Server.Port))
	}
	if err := c.Ranking.Weights.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ranking.weights: %w", err))
	}
	if c.Ranking.TopN < 1 {
		errs = append(errs, fmt.Errorf("ranking.top_n must be at least 1, got %d", c.Ranking.TopN))
	}
	if c.Ranking.PersonalityDefault < 0 || c.Ranking.PersonalityDefault > 1 {
		errs = append(errs, fmt.Errorf("ranking.personality_default must be in [0,1], got %g", c.Ranking.PersonalityDefault))
	}
	if c.Clusters.K < 1 {
		errs = append(errs, fmt.Errorf("clusters.k must be at least 1, got %d", c.Clusters.K))
	}
	if c.RateLimit.Enabled && c.RateLimit.DefaultWindow <= 0 {
		errs = append(errs, errors.New("rate_limit.default_window must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config error: %w", errors.Join(errs...))
	}
	return nil
}
