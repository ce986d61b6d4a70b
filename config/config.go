package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"flat_scout/geo"
)

type Config struct {
	Search    SearchConfig
	Email     EmailConfig
	Store     StoreConfig
	Scheduler SchedulerConfig
	Scraper   ScraperConfig
	LogLevel  string
}

// SearchConfig is the read-only search profile: what to scrape and
// which offers qualify. Loaded from a YAML file so thresholds and the
// blacklist can be tuned without touching code.
type SearchConfig struct {
	ScrapeURL     string       `yaml:"-"` // from env, carries price filters
	City          string       `yaml:"city"`
	Center        geo.Location `yaml:"center"`
	MaxDistanceKM float64      `yaml:"max_distance_km"`
	MaxTotalCost  int          `yaml:"max_total_cost"`
	MinRent       int          `yaml:"min_rent"`
	MaxRent       int          `yaml:"max_rent"`
	StreetPattern string       `yaml:"street_pattern"`
	Blacklist     []string     `yaml:"blacklist"`
}

type EmailConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Recipients []string
}

type StoreConfig struct {
	Driver string // sqlite or postgres
	DBPath string // sqlite file
	DBURL  string // postgres connection string
}

type SchedulerConfig struct {
	Interval time.Duration
	Cron     string
}

type ScraperConfig struct {
	DelayMS  int
	ProxyURL string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Email: EmailConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("SMTP_PORT", 465),
			Username: os.Getenv("BOT_EMAIL"),
			Password: os.Getenv("BOT_PASS"),
			From:     os.Getenv("BOT_EMAIL"),
		},
		Store: StoreConfig{
			Driver: getEnv("STORE_DRIVER", "sqlite"),
			DBPath: getEnv("DB_PATH", "offers.db"),
			DBURL:  os.Getenv("DATABASE_URL"),
		},
		Scheduler: SchedulerConfig{
			Cron: os.Getenv("SCRAPE_CRON"),
		},
		Scraper: ScraperConfig{
			DelayMS:  getEnvInt("SCRAPE_DELAY_MS", 500),
			ProxyURL: os.Getenv("SCRAPE_PROXY"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if recipients := os.Getenv("RECIPIENT_EMAILS"); recipients != "" {
		for _, addr := range strings.Split(recipients, ",") {
			addr = strings.TrimSpace(addr)
			if addr != "" {
				cfg.Email.Recipients = append(cfg.Email.Recipients, addr)
			}
		}
	}

	if interval := os.Getenv("SCRAPE_INTERVAL"); interval != "" {
		d, err := time.ParseDuration(interval)
		if err == nil {
			cfg.Scheduler.Interval = d
		}
	}

	searchPath := getEnv("SEARCH_CONFIG", "config/search.yaml")
	if err := cfg.loadSearchConfig(searchPath); err != nil {
		return nil, err
	}

	cfg.Search.ScrapeURL = os.Getenv("SCRAPE_URL")
	if cfg.Search.ScrapeURL == "" {
		return nil, fmt.Errorf("SCRAPE_URL is required")
	}

	return cfg, nil
}

func (c *Config) loadSearchConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read search config: %w", err)
	}

	search := SearchConfig{
		City:          "Warszawa",
		MaxDistanceKM: 10,
		MaxTotalCost:  3500,
		MaxRent:       2000,
	}
	if err := yaml.Unmarshal(data, &search); err != nil {
		return fmt.Errorf("parse search config: %w", err)
	}

	if search.MaxRent <= search.MinRent {
		return fmt.Errorf("invalid rent bounds [%d, %d)", search.MinRent, search.MaxRent)
	}

	c.Search = search
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
