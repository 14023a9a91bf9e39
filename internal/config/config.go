package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Auth      AuthConfig
	S3        S3Config
	Log       LogConfig
	Extractor ExtractorConfig
	CORS      CORSConfig
	Email     EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// AuthConfig holds JWT signing settings and the admin credentials.
type AuthConfig struct {
	Secret            string        `mapstructure:"secret"`
	TokenExpiry       time.Duration `mapstructure:"token_expiry"`
	Issuer            string        `mapstructure:"issuer"`
	AdminEmail        string        `mapstructure:"admin_email"`
	AdminPasswordHash string        `mapstructure:"admin_password_hash"`
}

// S3Config holds AWS S3 settings for uploaded file storage.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// ExtractorConfig holds settings for the AI field extractor. An empty APIKey
// disables the AI stage; the pipeline then runs heuristics-only.
type ExtractorConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings for due-invoice reminders.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// Load reads configuration from environment variables with the CASHFLOW_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CASHFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "cashflow")
	v.SetDefault("db.password", "cashflow_secret")
	v.SetDefault("db.name", "cashflow_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Auth defaults
	v.SetDefault("auth.secret", "change-me-in-production")
	v.SetDefault("auth.token_expiry", "12h")
	v.SetDefault("auth.issuer", "cashflow")
	v.SetDefault("auth.admin_email", "admin@localhost")
	v.SetDefault("auth.admin_password_hash", "")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "cashflow-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)
	v.SetDefault("s3.presign_expiry", 3600)

	// Extractor defaults
	v.SetDefault("extractor.api_key", "")
	v.SetDefault("extractor.model", "gpt-4o-mini")
	v.SetDefault("extractor.timeout_secs", 60)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@localhost")
	v.SetDefault("email.from_name", "Cashflow")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "CASHFLOW_SERVER_PORT",
		"server.read_timeout":      "CASHFLOW_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "CASHFLOW_SERVER_WRITE_TIMEOUT",
		"server.environment":       "CASHFLOW_SERVER_ENVIRONMENT",
		"db.host":                  "CASHFLOW_DB_HOST",
		"db.port":                  "CASHFLOW_DB_PORT",
		"db.user":                  "CASHFLOW_DB_USER",
		"db.password":              "CASHFLOW_DB_PASSWORD",
		"db.name":                  "CASHFLOW_DB_NAME",
		"db.sslmode":               "CASHFLOW_DB_SSLMODE",
		"db.max_open":              "CASHFLOW_DB_MAX_OPEN",
		"db.max_idle":              "CASHFLOW_DB_MAX_IDLE",
		"auth.secret":              "CASHFLOW_AUTH_SECRET",
		"auth.token_expiry":        "CASHFLOW_AUTH_TOKEN_EXPIRY",
		"auth.issuer":              "CASHFLOW_AUTH_ISSUER",
		"auth.admin_email":         "CASHFLOW_AUTH_ADMIN_EMAIL",
		"auth.admin_password_hash": "CASHFLOW_AUTH_ADMIN_PASSWORD_HASH",
		"s3.region":                "CASHFLOW_S3_REGION",
		"s3.bucket":                "CASHFLOW_S3_BUCKET",
		"s3.endpoint":              "CASHFLOW_S3_ENDPOINT",
		"s3.access_key":            "CASHFLOW_S3_ACCESS_KEY",
		"s3.secret_key":            "CASHFLOW_S3_SECRET_KEY",
		"s3.max_file_size_mb":      "CASHFLOW_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":        "CASHFLOW_S3_PRESIGN_EXPIRY",
		"extractor.api_key":        "CASHFLOW_EXTRACTOR_API_KEY",
		"extractor.model":          "CASHFLOW_EXTRACTOR_MODEL",
		"extractor.timeout_secs":   "CASHFLOW_EXTRACTOR_TIMEOUT_SECS",
		"log.level":                "CASHFLOW_LOG_LEVEL",
		"log.format":               "CASHFLOW_LOG_FORMAT",
		"cors.allowed_origins":     "CASHFLOW_CORS_ALLOWED_ORIGINS",
		"email.provider":           "CASHFLOW_EMAIL_PROVIDER",
		"email.region":             "CASHFLOW_EMAIL_REGION",
		"email.from_address":       "CASHFLOW_EMAIL_FROM_ADDRESS",
		"email.from_name":          "CASHFLOW_EMAIL_FROM_NAME",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CASHFLOW_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CASHFLOW_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Auth = AuthConfig{
		Secret:            v.GetString("auth.secret"),
		TokenExpiry:       v.GetDuration("auth.token_expiry"),
		Issuer:            v.GetString("auth.issuer"),
		AdminEmail:        v.GetString("auth.admin_email"),
		AdminPasswordHash: v.GetString("auth.admin_password_hash"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Extractor = ExtractorConfig{
		APIKey:      v.GetString("extractor.api_key"),
		Model:       v.GetString("extractor.model"),
		TimeoutSecs: v.GetInt("extractor.timeout_secs"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	return cfg, nil
}
