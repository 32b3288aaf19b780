package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/fr4nk3nst1ner/langsalary/internal/models"
	"github.com/fr4nk3nst1ner/langsalary/internal/utils"
)

// DefaultPath is the config file read when no -config flag is given
const DefaultPath = "langsalary.yaml"

// ErrMissingCredential is returned when SuperJob is enabled without an API key
var ErrMissingCredential = errors.New("SJ_SECRET_KEY is not set: SuperJob requires an API key (X-Api-App-Id)")

// Config represents the application configuration
type Config struct {
	Languages    []string       `yaml:"languages"`
	SearchPrefix string         `yaml:"search_prefix"`
	PerPage      int            `yaml:"per_page"`
	MaxPages     int            `yaml:"max_pages"`
	HTTP         HTTPConfig     `yaml:"http"`
	HH           HHConfig       `yaml:"hh"`
	SuperJob     SuperJobConfig `yaml:"superjob"`
}

type HTTPConfig struct {
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	HeaderTimeout  time.Duration `yaml:"header_timeout"`
	Timeout        time.Duration `yaml:"timeout"`
	Proxy          string        `yaml:"proxy"`
}

// HHConfig configures the HH source. Area codes: 1 Moscow, 2 Saint Petersburg, 66 Nizhny Novgorod.
type HHConfig struct {
	BaseURL   string `yaml:"base_url"`
	Area      string `yaml:"area"`
	Currency  string `yaml:"currency"`
	UserAgent string `yaml:"user_agent"`
}

// SuperJobConfig configures the SuperJob source. Town codes: 4 Moscow, 12 Nizhny Novgorod.
// Catalogue 33 is "IT, Internet, telecom".
type SuperJobConfig struct {
	BaseURL   string `yaml:"base_url"`
	Town      string `yaml:"town"`
	Catalogue string `yaml:"catalogue"`
	Currency  string `yaml:"currency"`
	// SecretKey comes from SJ_SECRET_KEY, never from the YAML file
	SecretKey string `yaml:"-"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Languages:    []string{"Python", "Java", "1C"},
		SearchPrefix: "Программист",
		PerPage:      100,
		MaxPages:     50,
		HTTP: HTTPConfig{
			ConnectTimeout: 10 * time.Second,
			HeaderTimeout:  30 * time.Second,
			Timeout:        60 * time.Second,
		},
		HH: HHConfig{
			BaseURL:  "https://api.hh.ru/vacancies",
			Area:     "1",
			Currency: "RUR",
		},
		SuperJob: SuperJobConfig{
			BaseURL:   "https://api.superjob.ru/2.0/vacancies/",
			Town:      "4",
			Catalogue: "33",
			Currency:  "rub",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at path and
// the environment. A .env file in the working directory is loaded first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
		cfg.Languages = utils.UniqueList(cfg.Languages)
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// no config file, defaults apply
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.SuperJob.SecretKey = strings.TrimSpace(os.Getenv("SJ_SECRET_KEY"))
	if v := os.Getenv("LANGSALARY_PROXY"); v != "" {
		cfg.HTTP.Proxy = v
	}

	return cfg, nil
}

// Validate checks the configuration before any request is issued.
// sources lists the source identifiers that will be queried.
func (c *Config) Validate(sources []string) error {
	if len(c.Languages) == 0 {
		return errors.New("no languages configured")
	}
	if c.PerPage <= 0 || c.PerPage > 100 {
		return fmt.Errorf("per_page must be between 1 and 100, got %d", c.PerPage)
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("max_pages must be positive, got %d", c.MaxPages)
	}
	for _, s := range sources {
		if strings.EqualFold(s, models.SourceSuperJob) && c.SuperJob.SecretKey == "" {
			return ErrMissingCredential
		}
	}
	return nil
}
