package config

import (
	"fmt"     // DSN formatting
	"strings" // Env key normalization
	"time"    // Lock TTL

	"github.com/joho/godotenv"   // For loading .env files
	"github.com/sirupsen/logrus" // Logger setup
	"github.com/spf13/viper"     // Env lookup with defaults
	"golang.org/x/crypto/bcrypt" // Default hashing cost
)

// Config holds the application configuration
type Config struct {
	AppPort        string        // Application port
	IsProd         bool          // Is production environment
	TrustedProxies []string      // Proxies gin trusts for client IP
	DBDriver       string        // mysql or postgres
	DBUser         string        // Database user
	DBPassword     string        // Database password
	DBHost         string        // Database host
	DBPort         string        // Database port
	DBName         string        // Database name
	DBMaxOpenConns int           // Connection pool size
	DBMaxIdleConns int           // Idle connections kept in the pool
	DBLogLevel     string        // silent, error, warn or info
	RedisAddr      string        // Redis server address, empty disables distributed locking
	RedisPass      string        // Redis password
	RedisDB        int           // Redis database number
	LockTTL        time.Duration // Expiry of a distributed product lock
	LogLevel       string        // logrus level
	LogFormat      string        // text or json
	BcryptCost     int           // Password hashing cost
}

// setDefaults fills in every key that may be absent from the environment
func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("IS_PROD", false)
	v.SetDefault("TRUSTED_PROXIES", "127.0.0.1")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_NAME", "stock_management")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOCK_TTL", "5s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
}

// LoadConfig loads configuration from the environment, after applying a .env file if present
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		AppPort:        v.GetString("APP_PORT"),
		IsProd:         v.GetBool("IS_PROD"),
		TrustedProxies: splitList(v.GetString("TRUSTED_PROXIES")),
		DBDriver:       strings.ToLower(v.GetString("DB_DRIVER")),
		DBUser:         v.GetString("DB_USER"),
		DBPassword:     v.GetString("DB_PASSWORD"),
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBName:         v.GetString("DB_NAME"),
		DBMaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		DBLogLevel:     strings.ToLower(v.GetString("DB_LOG_LEVEL")),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPass:      v.GetString("REDIS_PASS"),
		RedisDB:        v.GetInt("REDIS_DB"),
		LockTTL:        v.GetDuration("LOCK_TTL"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      strings.ToLower(v.GetString("LOG_FORMAT")),
		BcryptCost:     v.GetInt("BCRYPT_COST"),
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost // Out-of-range costs make bcrypt fail
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 5 * time.Second
	}
	return cfg
}

// DSN builds the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=true&loc=UTC"
}

// SetupLogger configures the global logrus logger
func (c *Config) SetupLogger() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if c.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
