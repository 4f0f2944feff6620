package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Store       StoreConfig
	Auth        AuthConfig
	Notify      NotifyConfig
	Orders      OrdersConfig
	CORS        CORSConfig
}

// StoreConfig selects and configures the document store
type StoreConfig struct {
	Driver         string // STORE_DRIVER: mongo or memory
	MongoURI       string
	Database       string
	ConnectTimeout time.Duration
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// NotifyConfig configures the owner notifications sent after an order is placed.
// A channel with missing settings is skipped.
type NotifyConfig struct {
	TelegramBotToken string
	TelegramChatID   string
	TelegramAPIURL   string
	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPass         string
	EmailTo          string
	Timeout          time.Duration
	QueueSize        int
}

type OrdersConfig struct {
	MapsBaseURL  string
	StrictStatus bool // ORDER_STATUS_STRICT: enforce the status transition table
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	viper.SetDefault("PORT", "5000")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORE_DRIVER", StoreDriverMongo)

	viper.AutomaticEnv()

	// .env is optional
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	connectTimeout, err := getDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	tokenTTL, err := getDuration("TOKEN_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	notifyTimeout, err := getDuration("NOTIFY_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	smtpPort, err := getInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	queueSize, err := getInt("NOTIFY_QUEUE_SIZE", 100)
	if err != nil {
		return nil, err
	}
	strict, err := getBool("ORDER_STATUS_STRICT", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "5000"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Store: StoreConfig{
			Driver:         strings.ToLower(strings.TrimSpace(getEnvOrViper("STORE_DRIVER", StoreDriverMongo))),
			MongoURI:       strings.TrimSpace(getEnvOrViper("MONGO_URI", "")),
			Database:       getEnvOrViper("MONGO_DATABASE", "ssfresh"),
			ConnectTimeout: connectTimeout,
		},
		Auth: AuthConfig{
			JWTSecret: getEnvOrViper("JWT_SECRET", "devsecret"),
			TokenTTL:  tokenTTL,
		},
		Notify: NotifyConfig{
			TelegramBotToken: strings.TrimSpace(getEnvOrViper("TELEGRAM_BOT_TOKEN", "")),
			TelegramChatID:   strings.TrimSpace(getEnvOrViper("TELEGRAM_CHAT_ID", "")),
			TelegramAPIURL:   strings.TrimRight(getEnvOrViper("TELEGRAM_API_URL", "https://api.telegram.org"), "/"),
			SMTPHost:         strings.TrimSpace(getEnvOrViper("SMTP_HOST", "")),
			SMTPPort:         smtpPort,
			SMTPUser:         strings.TrimSpace(getEnvOrViper("SMTP_USER", "")),
			SMTPPass:         getEnvOrViper("SMTP_PASS", ""),
			EmailTo:          strings.TrimSpace(getEnvOrViper("NOTIFY_EMAIL_TO", "")),
			Timeout:          notifyTimeout,
			QueueSize:        queueSize,
		},
		Orders: OrdersConfig{
			MapsBaseURL:  strings.TrimSpace(getEnvOrViper("MAPS_BASE_URL", "https://www.google.com/maps")),
			StrictStatus: strict,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnvOrViper("CORS_ALLOWED_ORIGINS", "*")),
		},
	}

	switch cfg.Store.Driver {
	case StoreDriverMongo:
		if cfg.Store.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI is required")
		}
	case StoreDriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	if cfg.Notify.QueueSize < 1 {
		return nil, fmt.Errorf("NOTIFY_QUEUE_SIZE must be positive")
	}
	if cfg.Notify.Timeout <= 0 {
		return nil, fmt.Errorf("NOTIFY_TIMEOUT must be positive")
	}

	return cfg, nil
}

// IsProduction reports whether ENVIRONMENT is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(getEnvOrViper(key, ""))
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(getEnvOrViper(key, ""))
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(getEnvOrViper(key, ""))
	if raw == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
