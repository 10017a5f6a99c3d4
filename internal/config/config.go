package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Providers struct {
		Primary   ProviderConfig `yaml:"primary"`
		Secondary ProviderConfig `yaml:"secondary"`
	} `yaml:"providers"`
	Benchmark struct {
		Source string `yaml:"source"`
	} `yaml:"benchmark"`
	Valuation struct {
		MarketGrowthRatePercent float64 `yaml:"market_growth_rate_percent"`
		BatchWorkers            int     `yaml:"batch_workers"`
	} `yaml:"valuation"`
}

// ProviderConfig holds the connection settings for one external data provider.
type ProviderConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	RatePerMinute  int    `yaml:"rate_per_minute"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is fine; defaults cover everything but API keys,
// and keys may also arrive per request.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[INFO] no .env file found, relying on system environment")
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("VS_PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("FINNHUB_API_KEY"); v != "" {
		cfg.Providers.Primary.APIKey = v
	}
	if v := os.Getenv("FINNHUB_BASE_URL"); v != "" {
		cfg.Providers.Primary.BaseURL = v
	}
	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" {
		cfg.Providers.Secondary.APIKey = v
	}
	if v := os.Getenv("ALPHA_VANTAGE_BASE_URL"); v != "" {
		cfg.Providers.Secondary.BaseURL = v
	}
	if v := os.Getenv("VS_BENCHMARK_SOURCE"); v != "" {
		cfg.Benchmark.Source = v
	}
	if v := os.Getenv("VS_MARKET_GROWTH_PERCENT"); v != "" {
		var growth float64
		if _, err := fmt.Sscanf(v, "%f", &growth); err == nil {
			cfg.Valuation.MarketGrowthRatePercent = growth
		}
	}

	// Defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8085
	}
	if cfg.Providers.Primary.TimeoutSeconds == 0 {
		cfg.Providers.Primary.TimeoutSeconds = 15
	}
	if cfg.Providers.Primary.RatePerMinute == 0 {
		cfg.Providers.Primary.RatePerMinute = 60
	}
	if cfg.Providers.Secondary.TimeoutSeconds == 0 {
		cfg.Providers.Secondary.TimeoutSeconds = 15
	}
	if cfg.Providers.Secondary.RatePerMinute == 0 {
		cfg.Providers.Secondary.RatePerMinute = 5
	}
	if cfg.Benchmark.Source == "" {
		cfg.Benchmark.Source = "static"
	}
	if cfg.Valuation.MarketGrowthRatePercent == 0 {
		cfg.Valuation.MarketGrowthRatePercent = 10
	}
	if cfg.Valuation.BatchWorkers == 0 {
		cfg.Valuation.BatchWorkers = 4
	}

	return cfg, nil
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Valuation.MarketGrowthRatePercent <= 0 {
		return fmt.Errorf("valuation.market_growth_rate_percent must be positive")
	}
	if c.Valuation.BatchWorkers < 1 {
		return fmt.Errorf("valuation.batch_workers must be at least 1")
	}
	if c.Benchmark.Source != "static" && c.Benchmark.Source != "live" {
		return fmt.Errorf("benchmark.source must be static or live, got %q", c.Benchmark.Source)
	}
	if c.Providers.Primary.TimeoutSeconds <= 0 || c.Providers.Secondary.TimeoutSeconds <= 0 {
		return fmt.Errorf("provider timeout_seconds must be positive")
	}
	if c.Providers.Primary.RatePerMinute <= 0 || c.Providers.Secondary.RatePerMinute <= 0 {
		return fmt.Errorf("provider rate_per_minute must be positive")
	}
	return nil
}
