package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"scrapedash/internal/logging/types"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port"`
		Host         string        `yaml:"host"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		IdleTimeout  time.Duration `yaml:"idle_timeout"`
	} `yaml:"server"`

	// ScraperAPI points at the remote scraping service this dashboard
	// monitors and controls.
	ScraperAPI struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"scraper_api"`

	Polling struct {
		ProgressInterval  time.Duration `yaml:"progress_interval"`
		StatusInterval    time.Duration `yaml:"status_interval"`
		ResourcesInterval time.Duration `yaml:"resources_interval"`
		// IdleTimeout suspends a poller once no dashboard client has read
		// its snapshot for this long; zero disables suspension.
		IdleTimeout time.Duration `yaml:"idle_timeout"`
	} `yaml:"polling"`

	Cache struct {
		Enabled bool          `yaml:"enabled"`
		TTL     time.Duration `yaml:"ttl"`
	} `yaml:"cache"`

	Redis struct {
		URL      string        `yaml:"url"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"redis"`

	Logging struct {
		Level    string                `yaml:"level"`
		Format   string                `yaml:"format"`
		Adapters []types.AdapterConfig `yaml:"adapters"`
	} `yaml:"logging"`
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8090
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.ScraperAPI.BaseURL = "http://localhost:8020"
	config.ScraperAPI.Timeout = 60 * time.Second

	config.Polling.ProgressInterval = 5 * time.Second
	config.Polling.StatusInterval = 10 * time.Second
	config.Polling.ResourcesInterval = 10 * time.Second
	config.Polling.IdleTimeout = 30 * time.Second

	config.Cache.Enabled = false
	config.Cache.TTL = 5 * time.Second

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			yamlContent := expandEnvVars(string(data))
			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if baseURL := os.Getenv("SCRAPER_API_URL"); baseURL != "" {
		c.ScraperAPI.BaseURL = baseURL
	}

	if timeout := os.Getenv("SCRAPER_API_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.ScraperAPI.Timeout = d
		}
	}

	if interval := os.Getenv("POLL_PROGRESS_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Polling.ProgressInterval = d
		}
	}

	if interval := os.Getenv("POLL_STATUS_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Polling.StatusInterval = d
		}
	}

	if interval := os.Getenv("POLL_RESOURCES_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Polling.ResourcesInterval = d
		}
	}

	if idle := os.Getenv("POLL_IDLE_TIMEOUT"); idle != "" {
		if d, err := time.ParseDuration(idle); err == nil {
			c.Polling.IdleTimeout = d
		}
	}

	if enabled := os.Getenv("CACHE_ENABLED"); enabled != "" {
		c.Cache.Enabled = enabled == "true" || enabled == "1"
	}

	if ttl := os.Getenv("CACHE_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Cache.TTL = d
		}
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if redisTimeout := os.Getenv("REDIS_TIMEOUT"); redisTimeout != "" {
		if d, err := time.ParseDuration(redisTimeout); err == nil {
			c.Redis.Timeout = d
		}
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}
}
