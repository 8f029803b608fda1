package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type Config struct {
	// HTTP
	Port        string
	GinMode     string
	StaticDir   string
	CORSOrigins []string

	// PostgreSQL
	DatabaseURL    string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBMaxConns     int
	MigrateOnStart bool

	// Логи
	LogLevel  string
	LogFormat string

	// AMQP, пустой URL отключает публикацию событий
	AMQPURL      string
	AMQPExchange string

	// Фоновые задачи
	RolloverSchedule string
	CategoryCacheTTL time.Duration
}

// Load читает .env, если он есть, и переменные окружения.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "3000"),
		GinMode:     getEnv("GIN_MODE", "release"),
		StaticDir:   getEnv("STATIC_DIR", "./public"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DBHost:         getEnv("PGHOST", "localhost"),
		DBPort:         getEnv("PGPORT", "5432"),
		DBUser:         getEnv("PGUSER", "postgres"),
		DBPassword:     getEnv("PGPASSWORD", "postgres"),
		DBName:         getEnv("PGDATABASE", "controle_financeiro"),
		DBSSLMode:      getEnv("PGSSLMODE", ""),
		DBMaxConns:     getEnvInt("DB_MAX_CONNS", 10),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", true),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finance"),

		RolloverSchedule: getEnv("ROLLOVER_SCHEDULE", "CRON_TZ=UTC 5 0 * * *"),
		CategoryCacheTTL: getEnvDuration("CATEGORY_CACHE_TTL", 5*time.Minute),
	}
}

// DatabaseDSN возвращает строку подключения к PostgreSQL.
// DATABASE_URL имеет приоритет над переменными PG*.
func (c *Config) DatabaseDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   c.DBHost + ":" + c.DBPort,
		Path:   "/" + c.DBName,
	}
	if c.DBSSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.DBSSLMode}}.Encode()
	}
	return u.String()
}

// Validate проверяет конфигурацию и возвращает все найденные ошибки сразу.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("некорректный порт %q: должен быть числом", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("некорректный порт %d: допустимо от 1 до 65535", port))
	}

	switch c.GinMode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Sprintf("некорректный GIN_MODE %q", c.GinMode))
	}

	if c.DatabaseURL != "" {
		if u, err := url.Parse(c.DatabaseURL); err != nil {
			errs = append(errs, fmt.Sprintf("некорректный DATABASE_URL: %v", err))
		} else if u.Scheme != "postgres" && u.Scheme != "postgresql" {
			errs = append(errs, fmt.Sprintf("некорректная схема DATABASE_URL %q", u.Scheme))
		}
	} else if c.DBHost == "" || c.DBName == "" {
		errs = append(errs, "не заданы PGHOST или PGDATABASE")
	}

	if c.DBMaxConns < 1 {
		errs = append(errs, fmt.Sprintf("некорректный DB_MAX_CONNS %d: должен быть не меньше 1", c.DBMaxConns))
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Sprintf("некорректный LOG_FORMAT %q: text или json", c.LogFormat))
	}

	if c.AMQPURL != "" {
		if u, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("некорректный AMQP_URL: %v", err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("некорректная схема AMQP_URL %q: amqp или amqps", u.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP_EXCHANGE не может быть пустым при заданном AMQP_URL")
		}
	}

	if _, err := cron.ParseStandard(c.RolloverSchedule); err != nil {
		errs = append(errs, fmt.Sprintf("некорректное расписание ROLLOVER_SCHEDULE %q: %v", c.RolloverSchedule, err))
	}

	if c.CategoryCacheTTL < 0 {
		errs = append(errs, "CATEGORY_CACHE_TTL не может быть отрицательным")
	}

	if len(errs) > 0 {
		return fmt.Errorf("ошибка конфигурации:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
