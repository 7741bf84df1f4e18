package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Storage
	Postgres PostgresConfig

	// Transport
	Telegram TelegramConfig

	// Providers
	LLM    LLMConfig
	Image  ImageConfig
	Voice  VoiceConfig
	Search SearchConfig

	// Chat behavior
	Chat      ChatConfig
	Scheduler SchedulerConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// PostgresConfig holds connection pool settings for the session store.
type PostgresConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

type TelegramConfig struct {
	BotToken      string
	WebhookURL    string
	WebhookSecret string
	AdminID       int64 // single allow-listed chat; 0 disables the check
}

// LLMConfig holds configuration for the chat completion provider chain.
type LLMConfig struct {
	APIKey          string
	BaseURL         string
	Models          []LLMModelConfig
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      string
	RequestTimeout  string
	MaxTotalTimeout string
	Temperature     float64
}

// LLMModelConfig is one model in the chat fallback sequence.
type LLMModelConfig struct {
	Model    string
	Enabled  bool
	Priority int
}

// ImageConfig holds the image generation provider settings.
type ImageConfig struct {
	HFToken      string
	DefaultModel string
	Timeout      string
}

// VoiceConfig holds the text-to-speech provider settings.
type VoiceConfig struct {
	Model string
}

type SearchConfig struct {
	TavilyAPIKey string
	MaxResults   int
}

// ChatConfig holds orchestration behavior settings.
type ChatConfig struct {
	Timezone        string
	HistoryWindow   int // K: turns kept besides the system message
	DefaultPersona  string
	RateLimitPerMin int
}

type SchedulerConfig struct {
	Interval    string
	SinkTimeout string
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Storage
	cfg.Postgres.URL = viper.GetString("postgres.url")
	cfg.Postgres.MaxOpenConns = viper.GetInt("postgres.max_open_conns")
	cfg.Postgres.MaxIdleConns = viper.GetInt("postgres.max_idle_conns")
	if dbURL := viper.GetString("database_url"); dbURL != "" {
		cfg.Postgres.URL = dbURL
	}

	// Telegram
	cfg.Telegram.BotToken = viper.GetString("telegram.bot_token")
	cfg.Telegram.WebhookURL = viper.GetString("telegram.webhook_url")
	cfg.Telegram.WebhookSecret = viper.GetString("telegram.webhook_secret")
	cfg.Telegram.AdminID = viper.GetInt64("telegram.admin_id")
	if tgToken := viper.GetString("bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}
	if adminID := viper.GetInt64("admin_id"); adminID != 0 {
		cfg.Telegram.AdminID = adminID
	}

	// LLM provider chain
	cfg.LLM.APIKey = expandEnvVar(viper.GetString("llm.api_key"))
	if groqKey := viper.GetString("groq_api_key"); groqKey != "" {
		cfg.LLM.APIKey = groqKey
	}
	cfg.LLM.BaseURL = viper.GetString("llm.base_url")
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.RequestTimeout = viper.GetString("llm.request_timeout")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")
	cfg.LLM.Temperature = viper.GetFloat64("llm.temperature")
	cfg.LLM.Models = loadModels()

	// Image generation
	cfg.Image.HFToken = expandEnvVar(viper.GetString("image.hf_token"))
	if hfToken := viper.GetString("hf_token"); hfToken != "" {
		cfg.Image.HFToken = hfToken
	}
	cfg.Image.DefaultModel = viper.GetString("image.default_model")
	cfg.Image.Timeout = viper.GetString("image.timeout")

	// Voice
	cfg.Voice.Model = viper.GetString("voice.model")

	// Search
	cfg.Search.TavilyAPIKey = expandEnvVar(viper.GetString("search.tavily_api_key"))
	if tavilyKey := viper.GetString("tavily_api_key"); tavilyKey != "" {
		cfg.Search.TavilyAPIKey = tavilyKey
	}
	cfg.Search.MaxResults = viper.GetInt("search.max_results")

	// Chat behavior
	cfg.Chat.Timezone = viper.GetString("chat.timezone")
	cfg.Chat.HistoryWindow = viper.GetInt("chat.history_window")
	cfg.Chat.DefaultPersona = viper.GetString("chat.default_persona")
	cfg.Chat.RateLimitPerMin = viper.GetInt("chat.rate_limit_per_min")

	// Scheduler
	cfg.Scheduler.Interval = viper.GetString("scheduler.interval")
	cfg.Scheduler.SinkTimeout = viper.GetString("scheduler.sink_timeout")

	return cfg, nil
}

// loadModels reads the llm.models list. Viper flattens the YAML list into
// []interface{} of maps, so the entries are decoded by hand.
func loadModels() []LLMModelConfig {
	var models []LLMModelConfig

	raw, ok := viper.Get("llm.models").([]interface{})
	if !ok {
		return models
	}

	for _, entry := range raw {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		models = append(models, LLMModelConfig{
			Model:    getStringFromMap(m, "model"),
			Enabled:  getBoolFromMap(m, "enabled"),
			Priority: getIntFromMap(m, "priority"),
		})
	}

	return models
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("postgres.max_open_conns", 10)
	viper.SetDefault("postgres.max_idle_conns", 2)

	// LLM defaults: reference chain is smartest model first, instant last.
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 3)
	viper.SetDefault("llm.retry_delay", "2s")
	viper.SetDefault("llm.request_timeout", "90s")
	viper.SetDefault("llm.max_total_timeout", "5m")
	viper.SetDefault("llm.temperature", 0.7)
	viper.SetDefault("llm.models", []map[string]interface{}{
		{"model": "llama-3.3-70b-versatile", "enabled": true, "priority": 1},
		{"model": "llama-3.1-8b-instant", "enabled": true, "priority": 2},
	})

	viper.SetDefault("image.default_model", "black-forest-labs/FLUX.1-schnell")
	viper.SetDefault("image.timeout", "60s")
	viper.SetDefault("voice.model", "facebook/mms-tts-rus")
	viper.SetDefault("search.max_results", 5)

	viper.SetDefault("chat.timezone", "UTC")
	viper.SetDefault("chat.history_window", 10)
	viper.SetDefault("chat.default_persona", "default")
	viper.SetDefault("chat.rate_limit_per_min", 30)

	viper.SetDefault("scheduler.interval", "60s")
	viper.SetDefault("scheduler.sink_timeout", "30s")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

func getStringFromMap(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
