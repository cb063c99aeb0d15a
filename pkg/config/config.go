package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"RiskPulse/pkg/util"
)

type District struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level        string        `yaml:"level"`
		Format       string        `yaml:"format"`        // json or console
		CollectTopic string        `yaml:"collect_topic"` // kafka topic for aggregated logs, empty disables
		CollectEvery time.Duration `yaml:"collect_every"`
	} `yaml:"logging"`
	Collector struct {
		Interval time.Duration `yaml:"interval"`
		Profile  string        `yaml:"profile"` // baseline or detailed
	} `yaml:"collector"`
	Backend struct {
		Type string `yaml:"type"` // file, kafka, clickhouse
	} `yaml:"backend"`
	Export struct {
		Dir  string `yaml:"dir"`
		JSON bool   `yaml:"json"`
	} `yaml:"export"`
	OpenWeather struct {
		APIKey    string        `yaml:"api_key"`
		BaseURL   string        `yaml:"base_url"`
		Timeout   time.Duration `yaml:"timeout"`
		Forecast  bool          `yaml:"forecast"`
		Districts []District    `yaml:"districts"`
	} `yaml:"openweather"`
	AlphaVantage struct {
		APIKey    string        `yaml:"api_key"`
		BaseURL   string        `yaml:"base_url"`
		Timeout   time.Duration `yaml:"timeout"`
		Symbols   []string      `yaml:"symbols"`
		CallDelay time.Duration `yaml:"call_delay"` // fixed sleep between symbol calls
		QuoteTTL  time.Duration `yaml:"quote_ttl"`  // cache TTL per symbol
	} `yaml:"alphavantage"`
	Traffic struct {
		CSVURL  string        `yaml:"csv_url"`
		Timeout time.Duration `yaml:"timeout"`
		MaxRows int           `yaml:"max_rows"`
	} `yaml:"traffic"`
	Kafka struct {
		Brokers      []string `yaml:"brokers"`
		Topic        string   `yaml:"topic"`
		RequiredAcks int      `yaml:"required_acks"`
		Compression  string   `yaml:"compression"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Cache struct {
		Redis struct {
			Enabled  bool   `yaml:"enabled"`
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
		} `yaml:"redis"`
	} `yaml:"cache"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		c.OpenWeather.APIKey = v
	}
	if v := os.Getenv("ALPHAVANTAGE_API_KEY"); v != "" {
		c.AlphaVantage.APIKey = v
	}
	if v := os.Getenv("SYMBOLS"); v != "" {
		c.AlphaVantage.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("BACKEND"); v != "" {
		c.Backend.Type = v
	}
	if v := os.Getenv("EXPORT_DIR"); v != "" {
		c.Export.Dir = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	switch c.Backend.Type {
	case "file", "kafka", "clickhouse":
	default:
		return fmt.Errorf("backend.type must be 'file', 'kafka' or 'clickhouse', got '%s'", c.Backend.Type)
	}
	if c.Export.Dir == "" {
		return fmt.Errorf("export.dir is required")
	}
	if len(c.OpenWeather.Districts) == 0 {
		return fmt.Errorf("openweather.districts cannot be empty")
	}
	if len(c.AlphaVantage.Symbols) == 0 {
		return fmt.Errorf("alphavantage.symbols cannot be empty")
	}
	switch c.Collector.Profile {
	case "", "baseline", "detailed":
	default:
		return fmt.Errorf("collector.profile must be 'baseline' or 'detailed', got '%s'", c.Collector.Profile)
	}
	return nil
}
