package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type InvoiceServiceConfig struct {
	Port        string
	PostgresCfg PostgresConfig
	RedisCfg    RedisConfig
	MinioCfg    MinioConfig
	SMTPCfg     SMTPConfig
	AuthCfg     AuthConfig
	StorageCfg  StorageConfig
	LogCfg      LogConfig
}

type PostgresConfig struct {
	// DatabaseURL wins over the individual parts when set.
	DatabaseURL string
	DBname      string
	Username    string
	Password    string
	Host        string
	Port        string
	SSLMode     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MinioConfig struct {
	MinioUrl       string
	MinioAccessKey string
	MinioSecretKey string
	MinioLocation  string
	MinioSecure    string
	MinioBucket    string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type AuthConfig struct {
	JWTSecret string
}

type StorageConfig struct {
	InvoiceDir string
	UploadDir  string
}

type LogConfig struct {
	Level  string
	Format string
	Dir    string
}

func New() *InvoiceServiceConfig {
	return &InvoiceServiceConfig{
		Port: getEnvOrDefault("PORT", "5000"),
		PostgresCfg: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			DBname:      getEnvOrDefault("DB_NAME", "invoice_service"),
			Username:    os.Getenv("POSTGRES_USER"),
			Password:    os.Getenv("POSTGRES_PWD"),
			Host:        os.Getenv("POSTGRES_HOST"),
			Port:        getEnvOrDefault("POSTGRES_PORT", "5432"),
			SSLMode:     getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
		},
		RedisCfg: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvIntOrDefault("REDIS_DB", 0),
		},
		MinioCfg: MinioConfig{
			MinioUrl:       os.Getenv("MINIO_ENDPOINT"),
			MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
			MinioLocation:  getEnvOrDefault("MINIO_LOCATION", "us-east-1"),
			MinioSecure:    getEnvOrDefault("MINIO_SECURE", "false"),
			MinioBucket:    getEnvOrDefault("MINIO_BUCKET", "invoice-documents"),
		},
		SMTPCfg: SMTPConfig{
			Host:     getEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvIntOrDefault("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     os.Getenv("SMTP_FROM"),
		},
		AuthCfg: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		StorageCfg: StorageConfig{
			InvoiceDir: getEnvOrDefault("INVOICE_DIR", "invoices"),
			UploadDir:  getEnvOrDefault("UPLOAD_DIR", "Uploads"),
		},
		LogCfg: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "console"),
			Dir:    os.Getenv("LOG_DIR"),
		},
	}
}

// Validate reports every missing setting the service cannot start without.
func (c *InvoiceServiceConfig) Validate() error {
	var problems []string

	if c.PostgresCfg.DatabaseURL == "" && c.PostgresCfg.Host == "" {
		problems = append(problems, "DATABASE_URL or POSTGRES_HOST is required")
	}
	if c.AuthCfg.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}
	if c.SMTPCfg.Port <= 0 {
		problems = append(problems, "SMTP_PORT must be a positive integer")
	}
	if c.RedisCfg.DB < 0 {
		problems = append(problems, "REDIS_DB must be a non-negative integer")
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// DSN returns the connection string sqlx should dial.
func (p PostgresConfig) DSN() string {
	if p.DatabaseURL != "" {
		return p.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.Username, p.Password, p.DBname, p.SSLMode)
}

func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

func (m MinioConfig) Enabled() bool {
	return m.MinioUrl != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}
	return n
}
