package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func load(t *testing.T, env map[string]string) *Config {
	t.Helper()
	for k, val := range env {
		t.Setenv(k, val)
	}
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}

func TestDefaults(t *testing.T) {
	cfg := load(t, nil)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, 5*time.Second, cfg.LockTTL)
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
	assert.Equal(t, []string{"127.0.0.1"}, cfg.TrustedProxies)
	assert.Empty(t, cfg.RedisAddr)
}

func TestEnvOverrides(t *testing.T) {
	cfg := load(t, map[string]string{
		"APP_PORT":        "9090",
		"DB_DRIVER":       "Postgres",
		"REDIS_ADDR":      "localhost:6379",
		"LOCK_TTL":        "750ms",
		"BCRYPT_COST":     "4",
		"TRUSTED_PROXIES": "10.0.0.1, 10.0.0.2,",
		"IS_PROD":         "true",
	})
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 750*time.Millisecond, cfg.LockTTL)
	assert.Equal(t, 4, cfg.BcryptCost)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
	assert.True(t, cfg.IsProd)
}

func TestBcryptCostOutOfRangeFallsBack(t *testing.T) {
	cfg := load(t, map[string]string{"BCRYPT_COST": "99"})
	assert.Equal(t, bcrypt.DefaultCost, cfg.BcryptCost)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBDriver: "mysql", DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "3306", DBName: "d"}
	assert.Equal(t, "u:p@tcp(h:3306)/d?charset=utf8mb4&parseTime=true&loc=UTC", cfg.DSN())

	cfg.DBDriver = "postgres"
	cfg.DBPort = "5432"
	assert.Equal(t, "host=h user=u password=p dbname=d port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}

func TestSetupLogger(t *testing.T) {
	defer logrus.SetLevel(logrus.GetLevel())

	(&Config{LogLevel: "debug", LogFormat: "json"}).SetupLogger()
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	_, isJSON := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)

	(&Config{LogLevel: "bogus"}).SetupLogger()
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
	_, isText := logrus.StandardLogger().Formatter.(*logrus.TextFormatter)
	assert.True(t, isText)
}
