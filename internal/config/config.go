package config

import (
	"errors"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// defaultJWTSecret は開発用の署名鍵。本番環境では使用できない
const defaultJWTSecret = "dev-secret-change-me"

// Config はアプリケーション設定を表す
type Config struct {
	Env            string
	MigrationsPath string
	Server         ServerConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	Auth           AuthConfig
	Admin          AdminConfig
	Metrics        MetricsConfig
}

// ServerConfig はサーバー設定
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration
}

// DatabaseConfig はデータベース設定
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig はRedis設定
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// AuthConfig はトークン発行と認証エンドポイントの設定
type AuthConfig struct {
	JWTSecret      string
	JWTIssuer      string
	TokenTTL       time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

// AdminConfig は起動時に作成する管理者ユーザーの設定
type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

// Enabled は管理者シードが設定されているかを返す
func (c *AdminConfig) Enabled() bool {
	return c.Email != "" && c.Password != ""
}

// MetricsConfig は /metrics の Basic 認証設定
type MetricsConfig struct {
	User     string
	Password string
}

// Enabled は認証が有効かどうかを返す
func (c *MetricsConfig) Enabled() bool {
	return c.User != "" && c.Password != ""
}

// Load は環境変数から設定を読み込む
func Load() *Config {
	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "event_management"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:      getEnv("JWT_SECRET", defaultJWTSecret),
			JWTIssuer:      getEnv("JWT_ISSUER", "event-management-api"),
			TokenTTL:       getDurationEnv("JWT_TTL", time.Hour),
			RateLimitRPS:   getFloatEnv("AUTH_RATE_LIMIT_RPS", 1),
			RateLimitBurst: getIntEnv("AUTH_RATE_LIMIT_BURST", 5),
		},
		Admin: AdminConfig{
			Name:     getEnv("ADMIN_NAME", "Admin User"),
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Metrics: MetricsConfig{
			User:     getEnv("METRICS_USER", ""),
			Password: getEnv("METRICS_PASSWORD", ""),
		},
	}

	// PaaS 形式の接続URLが与えられた場合は個別設定より優先する
	if raw := os.Getenv("DATABASE_URL"); raw != "" {
		if u, err := url.Parse(raw); err == nil {
			cfg.Database.applyURL(u)
		}
	}
	if raw := os.Getenv("REDIS_URL"); raw != "" {
		if u, err := url.Parse(raw); err == nil {
			cfg.Redis.applyURL(u)
		}
	}
	return cfg
}

// Validate は起動前に致命的な設定ミスを検出する
func (c *Config) Validate() error {
	if c.IsProduction() && (c.Auth.JWTSecret == defaultJWTSecret || len(c.Auth.JWTSecret) < 32) {
		return errors.New("本番環境では32文字以上の JWT_SECRET が必要です")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TTL は正の値である必要があります")
	}
	if c.Server.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT は正の値である必要があります")
	}
	return nil
}

// IsProduction は本番環境かを返す
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// DSN はPostgreSQL接続文字列を返す
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

func (c *DatabaseConfig) applyURL(u *url.URL) {
	c.Host = u.Hostname()
	if p := u.Port(); p != "" {
		c.Port = p
	}
	if u.User != nil {
		c.User = u.User.Username()
		if pw, ok := u.User.Password(); ok {
			c.Password = pw
		}
	}
	if name := strings.TrimPrefix(u.Path, "/"); name != "" {
		c.DBName = name
	}
	// URL 経由の接続はリモートを想定し、指定がなければ TLS を要求する
	c.SSLMode = "require"
	if mode := u.Query().Get("sslmode"); mode != "" {
		c.SSLMode = mode
	}
}

// Addr はRedis接続アドレスを返す
func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func (c *RedisConfig) applyURL(u *url.URL) {
	c.Host = u.Hostname()
	if p := u.Port(); p != "" {
		c.Port = p
	}
	if u.User != nil {
		if pw, ok := u.User.Password(); ok {
			c.Password = pw
		}
	}
	if db, err := strconv.Atoi(strings.TrimPrefix(u.Path, "/")); err == nil {
		c.DB = db
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
