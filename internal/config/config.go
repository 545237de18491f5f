package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"market-signals/internal/logging"
)

// Config materialises application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Logging   logging.Config  `mapstructure:"logging"`
	Memory    MemoryConfig    `mapstructure:"memory"`
	Portfolio PortfolioConfig `mapstructure:"portfolio"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Export    ExportConfig    `mapstructure:"export"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// MemoryConfig locates the persisted memory document.
type MemoryConfig struct {
	Path string `mapstructure:"path"`
}

// PortfolioConfig names the tracked instruments and their data files.
type PortfolioConfig struct {
	Symbols       []string `mapstructure:"symbols"`
	BarsDir       string   `mapstructure:"bars_dir"`
	HeadlinesFile string   `mapstructure:"headlines_file"`
}

// EngineConfig carries the learning tunables.
type EngineConfig struct {
	FlatThresholdPct  float64       `mapstructure:"flat_threshold_pct"`
	SentimentLookback time.Duration `mapstructure:"sentiment_lookback"`
	MinSamples        int           `mapstructure:"min_samples"`
	BasicDays         int           `mapstructure:"basic_days"`
	ReliableDays      int           `mapstructure:"reliable_days"`
	ConfidenceCap     float64       `mapstructure:"confidence_cap"`
}

// SchedulerConfig governs cycle cadence.
type SchedulerConfig struct {
	Interval     time.Duration `mapstructure:"interval"`
	AlignToStart bool          `mapstructure:"align_to_start"`
	StartupDelay time.Duration `mapstructure:"startup_delay"`
}

// ExportConfig sets CLI export behaviour.
type ExportConfig struct {
	MaxDataPoints int `mapstructure:"max_data_points"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MARKETSIGNALS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "marketsignals")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("memory.path", "memory.json")

	v.SetDefault("portfolio.symbols", []string{"TCS.NS", "INFY.NS"})
	v.SetDefault("portfolio.bars_dir", "data/bars")
	v.SetDefault("portfolio.headlines_file", "data/headlines.txt")

	v.SetDefault("engine.flat_threshold_pct", 0.5)
	v.SetDefault("engine.sentiment_lookback", "24h")
	v.SetDefault("engine.min_samples", 3)
	v.SetDefault("engine.basic_days", 7)
	v.SetDefault("engine.reliable_days", 30)
	v.SetDefault("engine.confidence_cap", 85.0)

	v.SetDefault("scheduler.interval", "24h")
	v.SetDefault("scheduler.align_to_start", true)
	v.SetDefault("scheduler.startup_delay", "0s")

	v.SetDefault("export.max_data_points", 10000)
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if len(c.Portfolio.Symbols) == 0 {
		return fmt.Errorf("portfolio.symbols 至少需要一个标的")
	}
	if c.Memory.Path == "" {
		return fmt.Errorf("memory.path is required")
	}
	if c.Engine.FlatThresholdPct < 0 {
		return fmt.Errorf("engine.flat_threshold_pct cannot be negative")
	}
	if c.Engine.SentimentLookback <= 0 {
		return fmt.Errorf("engine.sentiment_lookback must be greater than zero")
	}
	if c.Engine.MinSamples <= 0 {
		return fmt.Errorf("engine.min_samples must be greater than zero")
	}
	if c.Engine.ConfidenceCap <= 0 || c.Engine.ConfidenceCap > 100 {
		return fmt.Errorf("engine.confidence_cap must be in (0,100]")
	}
	if c.Scheduler.Interval <= 0 {
		return fmt.Errorf("scheduler.interval must be greater than zero")
	}
	if c.Export.MaxDataPoints <= 0 {
		return fmt.Errorf("export.max_data_points must be greater than zero")
	}
	return nil
}

// ResolveMaxPoints returns either the CLI override or config default.
func (c *Config) ResolveMaxPoints(override int) int {
	if override > 0 {
		return override
	}
	return c.Export.MaxDataPoints
}
