package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure. The thresholds default to the values the
// pipeline documents; all of them are open for tuning.
type Global struct {
	// Cleaning
	MissingDropFraction float64 `mapstructure:"missing_drop_fraction" yaml:"missing_drop_fraction" validate:"gte=0,lte=1"`
	MissingSentinel     string  `mapstructure:"missing_sentinel" yaml:"missing_sentinel" validate:"required"`

	// Statistics
	TopCorrelations int `mapstructure:"top_correlations" yaml:"top_correlations" validate:"gt=0"`
	TopValues       int `mapstructure:"top_values" yaml:"top_values" validate:"gt=0"`

	// Insights
	HighVariabilityCV  float64 `mapstructure:"high_variability_cv" yaml:"high_variability_cv" validate:"gt=0"`
	DominancePercent   float64 `mapstructure:"dominance_percent" yaml:"dominance_percent" validate:"gt=0,lte=100"`
	TrendChangePercent float64 `mapstructure:"trend_change_percent" yaml:"trend_change_percent" validate:"gt=0"`
	StrongCorrelation  float64 `mapstructure:"strong_correlation" yaml:"strong_correlation" validate:"gte=0,lte=1"`
	TrendColumns       int     `mapstructure:"trend_columns" yaml:"trend_columns" validate:"gt=0"`
	MaxInsights        int     `mapstructure:"max_insights" yaml:"max_insights" validate:"gt=0"`

	// Loader
	MaxRows    int `mapstructure:"max_rows" yaml:"max_rows" validate:"gte=0"`
	SampleRows int `mapstructure:"sample_rows" yaml:"sample_rows" validate:"gte=0"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.dataloom/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".dataloom")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DATALOOM")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("missing_drop_fraction", 0.5)
	v.SetDefault("missing_sentinel", "Unknown")
	v.SetDefault("top_correlations", 5)
	v.SetDefault("top_values", 5)
	v.SetDefault("high_variability_cv", 50.0)
	v.SetDefault("dominance_percent", 50.0)
	v.SetDefault("trend_change_percent", 10.0)
	v.SetDefault("strong_correlation", 0.7)
	v.SetDefault("trend_columns", 2)
	v.SetDefault("max_insights", 7)
	v.SetDefault("max_rows", 0)
	v.SetDefault("sample_rows", 5)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".dataloom")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New().Struct(&c); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}
