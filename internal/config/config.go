// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	Repository RepositoryConfig `yaml:"repository"`
	Worker     WorkerConfig     `yaml:"worker"`
	AI         AIConfig         `yaml:"ai"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Host string `yaml:"host"`
}

type LoggingConfig struct {
	Development bool `yaml:"development"`
}

type RepositoryConfig struct {
	Type string `yaml:"type"` // "jsonfile" или "postgres"
	Path string `yaml:"path"` // файл для jsonfile
	URL  string `yaml:"url"`  // строка подключения для postgres
}

type WorkerConfig struct {
	IntervalRaw string        `yaml:"interval"` // период сверки, например "1h" или "30m"
	Interval    time.Duration `yaml:"-"`
}

type AIConfig struct {
	Model  string `yaml:"model"`
	APIKey string `yaml:"api_key"` // перекрывается переменной GEMINI_API_KEY
}

func Load() (*Config, error) {
	file, err := os.Open("config.yml")
	if err != nil {
		return nil, fmt.Errorf("не могу открыть config.yml: %w", err)
	}
	defer file.Close()

	var cfg Config
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка парсинга config.yml: %w", err)
	}

	if cfg.Worker.IntervalRaw != "" {
		interval, err := time.ParseDuration(cfg.Worker.IntervalRaw)
		if err != nil {
			return nil, fmt.Errorf("неверный интервал воркера %q: %w", cfg.Worker.IntervalRaw, err)
		}
		cfg.Worker.Interval = interval
	}

	if cfg.Worker.Interval <= 0 {
		cfg.Worker.Interval = time.Hour
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.AI.APIKey = key
	}

	return &cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
