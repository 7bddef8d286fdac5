package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewPricingConfigHolder),
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	OTLPEndpoint string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	Auth    AuthConfig
	Redis   RedisConfig
	Storage StorageConfig
	Email   EmailConfig
	Mobile  MobileConfig

	PricingConfigPath string
}

// AuthConfig carries the secrets used to verify access tokens.
type AuthConfig struct {
	JWTSecret       string
	MobileJWTSecret string
	CookieName      string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
	Region          string
}

type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	AccessTeamTo string
}

type MobileConfig struct {
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	jwtSecret := strings.TrimSpace(getenv("SUPABASE_JWT_SECRET", ""))
	cfg := Config{
		AppName:           getenv("APP_SERVICE", "missioncontrol"),
		AppVersion:        getenv("APP_VERSION", "0.1.0"),
		Environment:       getenv("ENVIRONMENT", "development"),
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		OTLPEndpoint:      getenv("OTLP_ENDPOINT", "localhost:4317"),
		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "postgres"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 10),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 50),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 60),
		Auth: AuthConfig{
			JWTSecret:       jwtSecret,
			MobileJWTSecret: strings.TrimSpace(getenv("MOBILE_JWT_SECRET", jwtSecret)),
			CookieName:      getenv("AUTH_COOKIE_NAME", "accessToken"),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(getenv("REDIS_ADDR", "")),
			Password: getenv("REDIS_PASSWORD", ""),
			DB:       getenvInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Endpoint:        strings.TrimSpace(getenv("STORAGE_ENDPOINT", "localhost:9000")),
			AccessKeyID:     strings.TrimSpace(getenv("STORAGE_ACCESS_KEY_ID", "")),
			SecretAccessKey: strings.TrimSpace(getenv("STORAGE_SECRET_ACCESS_KEY", "")),
			Bucket:          getenv("STORAGE_BUCKET", "documents"),
			UseSSL:          getenvBool("STORAGE_USE_SSL", false),
			Region:          getenv("STORAGE_REGION", ""),
		},
		Email: EmailConfig{
			SMTPHost:     getenv("SMTP_HOST", "localhost"),
			SMTPPort:     getenvInt("SMTP_PORT", 587),
			SMTPUsername: getenv("SMTP_USERNAME", ""),
			SMTPPassword: getenv("SMTP_PASSWORD", ""),
			SMTPFrom:     getenv("SMTP_FROM", "no-reply@missioncontrol.local"),
			AccessTeamTo: getenv("ACCESS_REQUEST_TO", ""),
		},
		Mobile: MobileConfig{
			RateLimitPerSecond: getenvFloat("MOBILE_RATE_LIMIT_PER_SECOND", 5),
			RateLimitBurst:     getenvInt("MOBILE_RATE_LIMIT_BURST", 20),
		},
		PricingConfigPath: strings.TrimSpace(getenv("PRICING_CONFIG_PATH", "")),
	}

	return cfg
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}

// ConnMaxLifetime returns the pool lifetime as a duration.
func (c Config) ConnMaxLifetime() time.Duration {
	return time.Duration(c.DBConnMaxLifetime) * time.Second
}

func (c Config) ConnMaxIdleTime() time.Duration {
	return time.Duration(c.DBConnMaxIdleTime) * time.Second
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}
