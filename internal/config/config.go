package config

import (
	"fmt"
	"os"

	"CreditSentinel/internal/model"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Companies  []model.CompanyRef `yaml:"companies"`
	MarketData struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"market_data"`
	News struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"news"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// defaultCompanies is the roster used when the config file names none.
var defaultCompanies = []model.CompanyRef{
	{Name: "Apple Inc.", Ticker: "AAPL"},
	{Name: "Microsoft Corp.", Ticker: "MSFT"},
	{Name: "Alphabet Inc.", Ticker: "GOOGL"},
	{Name: "Amazon.com Inc.", Ticker: "AMZN"},
	{Name: "NVIDIA Corp.", Ticker: "NVDA"},
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
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
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("MARKETDATA_BASE_URL"); v != "" {
		cfg.MarketData.BaseURL = v
	}
	if v := os.Getenv("NEWS_API_KEY"); v != "" {
		cfg.News.APIKey = v
	}
	if v := os.Getenv("NEWS_BASE_URL"); v != "" {
		cfg.News.BaseURL = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if len(cfg.Companies) == 0 {
		cfg.Companies = defaultCompanies
	}
	if cfg.News.BaseURL == "" {
		cfg.News.BaseURL = "https://newsapi.org/v2/everything"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 0 * * * *" // hourly
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/credit_sentinel.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.Companies) == 0 {
		return fmt.Errorf("companies roster must not be empty")
	}
	seen := make(map[string]bool, len(c.Companies))
	for _, co := range c.Companies {
		if co.Name == "" || co.Ticker == "" {
			return fmt.Errorf("company entries require both name and ticker")
		}
		if seen[co.Ticker] {
			return fmt.Errorf("duplicate ticker %q in companies roster", co.Ticker)
		}
		seen[co.Ticker] = true
	}
	if c.Schedule.RefreshCron == "" {
		return fmt.Errorf("schedule.refresh_cron is required")
	}
	return nil
}
