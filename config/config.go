package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Log       Logger          `mapstructure:"logger"`
	API       API             `mapstructure:"api"`
	Assistant AssistantConfig `mapstructure:"assistant"`
	Market    MarketConfig    `mapstructure:"market"`
	Cache     Cache           `mapstructure:"cache"`
	Widget    WidgetConfig    `mapstructure:"widget"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type API struct {
	Port int `mapstructure:"port"`
}

// AssistantConfig points the chat core at the external conversational backend.
type AssistantConfig struct {
	BaseURL          string        `mapstructure:"base_url" validate:"required,url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxRequestPerMin int           `mapstructure:"max_request_per_min"`
}

type MarketConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	Timeout          time.Duration `mapstructure:"timeout"`
	MaxRequestPerMin int           `mapstructure:"max_request_per_min"`
	RefreshSchedule  string        `mapstructure:"refresh_schedule"`
	TickerSymbols    []string      `mapstructure:"ticker_symbols"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

// WidgetConfig parameterizes the chat presentation surfaces. The embedded
// widget shows a holdings preview, the full-page chat shows everything.
type WidgetConfig struct {
	PersonaName     string        `mapstructure:"persona_name"`
	HoldingsPreview int           `mapstructure:"holdings_preview"`
	SessionTTL      time.Duration `mapstructure:"session_ttl"`
}

type TelegramConfig struct {
	BotToken        string        `mapstructure:"bot_token"`
	PollTimeout     time.Duration `mapstructure:"poll_timeout"`
	TimeoutDuration time.Duration `mapstructure:"timeout_duration"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("assistant.timeout", 30*time.Second)
	viper.SetDefault("assistant.max_request_per_min", 60)
	viper.SetDefault("market.base_url", "https://api.binance.com")
	viper.SetDefault("market.timeout", 10*time.Second)
	viper.SetDefault("market.max_request_per_min", 60)
	viper.SetDefault("market.refresh_schedule", "@every 30s")
	viper.SetDefault("market.ticker_symbols", []string{
		"BTCUSDT", "BCHUSDT", "LINKUSDT", "TONUSDT", "ZILUSDT", "SFPUSDT",
	})
	viper.SetDefault("cache.default_expiration", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)
	viper.SetDefault("widget.persona_name", "Alice")
	viper.SetDefault("widget.holdings_preview", 3)
	viper.SetDefault("widget.session_ttl", 30*time.Minute)
	viper.SetDefault("telegram.poll_timeout", 10*time.Second)
	viper.SetDefault("telegram.timeout_duration", 30*time.Second)
}
