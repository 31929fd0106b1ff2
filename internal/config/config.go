package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Logger LoggerConfig
	LLM    LLMConfig
	Redis  RedisConfig
	Export ExportConfig
	Cache  CacheConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

// LLMConfig selects the generation provider. Provider is one of "googleai",
// "openai" or "ollama"; ServerURL only applies to ollama.
type LLMConfig struct {
	Provider  string
	APIKey    string
	Model     string
	ServerURL string
	Timeout   time.Duration
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ExportConfig points at the headless-browser rasterization service used for
// PDF downloads.
type ExportConfig struct {
	RasterizerURL string
	Timeout       time.Duration
}

type CacheConfig struct {
	ReportTTL  time.Duration
	QuizTTL    time.Duration
	SessionTTL time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 20)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")
	viper.SetDefault("llm.provider", "googleai")
	viper.SetDefault("llm.model", "gemini-2.0-flash-exp")
	viper.SetDefault("llm.timeout", 60)
	viper.SetDefault("export.timeout", 30)
	viper.SetDefault("cache.report_ttl", 3600)
	viper.SetDefault("cache.quiz_ttl", 3600)
	viper.SetDefault("cache.session_ttl", 7200)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A config file is optional; defaults plus env vars are enough to run.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
		LLM: LLMConfig{
			Provider:  viper.GetString("llm.provider"),
			APIKey:    viper.GetString("llm.api_key"),
			Model:     viper.GetString("llm.model"),
			ServerURL: viper.GetString("llm.server_url"),
			Timeout:   viper.GetDuration("llm.timeout") * time.Second,
		},
		Redis: RedisConfig{
			Address:  viper.GetString("redis.address"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		Export: ExportConfig{
			RasterizerURL: viper.GetString("export.rasterizer_url"),
			Timeout:       viper.GetDuration("export.timeout") * time.Second,
		},
		Cache: CacheConfig{
			ReportTTL:  viper.GetDuration("cache.report_ttl") * time.Second,
			QuizTTL:    viper.GetDuration("cache.quiz_ttl") * time.Second,
			SessionTTL: viper.GetDuration("cache.session_ttl") * time.Second,
		},
	}

	// Override with environment variables if set
	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = provider
	}
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.LLM.APIKey = apiKey
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" && config.LLM.Provider == "openai" {
		config.LLM.APIKey = apiKey
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		config.LLM.Model = model
	}
	if serverURL := os.Getenv("LLM_SERVER"); serverURL != "" {
		config.LLM.ServerURL = serverURL
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if rasterizerURL := os.Getenv("RASTERIZER_URL"); rasterizerURL != "" {
		config.Export.RasterizerURL = rasterizerURL
	}

	return config, nil
}
