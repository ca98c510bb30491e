package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"travmd-form/i18n"
	"travmd-form/logging"
	"travmd-form/metrics"
	"travmd-form/payload"
	"travmd-form/qr"
	redis "travmd-form/redis"
)

type Config struct {
	ServerConfig ServerConfig `json:"server_config"`

	LogLevel   string `json:"log_level"`
	LogFormat  string `json:"log_format"`
	StaticPath string `json:"static_path"`

	DefaultFormat   string      `json:"default_format"`
	DefaultLanguage string      `json:"default_language"`
	QrConfig        *qr.Options `json:"qr_config,omitempty"`

	StorageType         string                    `json:"storage_type"`
	RedisConfig         redis.RedisConfig         `json:"redis_config,omitempty"`
	RedisSentinelConfig redis.RedisSentinelConfig `json:"redis_sentinel_config,omitempty"`
}

func (c *Config) applyDefaults() {
	if c.ServerConfig.Host == "" {
		c.ServerConfig.Host = "localhost"
	}
	if c.ServerConfig.Port == 0 {
		c.ServerConfig.Port = 8080
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.StaticPath == "" {
		c.StaticPath = "../frontend/build"
	}
	if c.DefaultFormat == "" {
		c.DefaultFormat = string(payload.FormatJSON)
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = i18n.DefaultLanguage
	}
	if c.QrConfig == nil {
		opts := qr.DefaultOptions()
		c.QrConfig = &opts
	} else {
		opts := c.QrConfig.WithDefaults()
		c.QrConfig = &opts
	}
	if c.StorageType == "" {
		c.StorageType = "memory"
	}
}

func (c *Config) validate() error {
	if _, err := payload.ParseFormat(c.DefaultFormat); err != nil {
		return fmt.Errorf("default_format: %w", err)
	}
	if _, err := i18n.Normalize(c.DefaultLanguage); err != nil {
		return fmt.Errorf("default_language: %w", err)
	}
	return nil
}

func main() {
	configPath := flag.String("config", "", "Path for the config.json to use")
	flag.Parse()

	if *configPath == "" {
		slog.Error("please provide a config path using the --config flag")
		os.Exit(1)
	}

	config, err := readConfigFile(*configPath)
	if err != nil {
		slog.Error("failed to read config file", "error", err)
		os.Exit(1)
	}
	logging.Configure(logging.Options{Level: config.LogLevel, Format: config.LogFormat})
	slog.Info("using config", "path", *configPath)

	languageStorage, err := createLanguageStorage(&config)
	if err != nil {
		slog.Error("failed to instantiate language storage", "error", err)
		os.Exit(1)
	}

	format, _ := payload.ParseFormat(config.DefaultFormat)
	lang, _ := i18n.Normalize(config.DefaultLanguage)
	serverState := ServerState{
		languageStorage: languageStorage,
		catalog:         i18n.Default(),
		metrics:         metrics.New(),
		defaultFormat:   format,
		defaultLanguage: lang,
		qrOptions:       *config.QrConfig,
		staticPath:      config.StaticPath,
	}

	server, err := NewServer(&serverState, config.ServerConfig)
	if err != nil {
		slog.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	err = server.ListenAndServe()
	if err != nil {
		slog.Error("failed to listen and serve", "error", err)
		os.Exit(1)
	}
}

func readConfigFile(path string) (Config, error) {
	configBytes, err := os.ReadFile(path)

	if err != nil {
		return Config{}, err
	}

	var config Config
	err = json.Unmarshal(configBytes, &config)

	if err != nil {
		return Config{}, err
	}

	config.applyDefaults()
	if err := config.validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func createLanguageStorage(config *Config) (LanguageStorage, error) {
	if config.StorageType == "redis" {
		slog.Info("Using redis language storage")
		client, err := redis.NewRedisClient(&config.RedisConfig)
		if err != nil {
			return nil, err
		}
		return NewRedisLanguageStorage(client, config.RedisConfig.Namespace), nil
	}
	if config.StorageType == "redis_sentinel" {
		slog.Info("Using redis sentinel language storage")
		client, err := redis.NewRedisSentinelClient(&config.RedisSentinelConfig)
		if err != nil {
			return nil, err
		}
		return NewRedisLanguageStorage(client, config.RedisSentinelConfig.Namespace), nil
	}
	if config.StorageType == "memory" {
		slog.Info("Using in memory language storage")
		return NewInMemoryLanguageStorage(), nil
	}
	return nil, fmt.Errorf("%v is not a valid storage type", config.StorageType)
}
