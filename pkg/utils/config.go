package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	OTP      OTPConfig
	SMS      SMSConfig
	Storage  StorageConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	CleanupInterval time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a Redis address was configured.
func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Addr) != ""
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type OTPConfig struct {
	ExpiryMinutes  int
	MaxAttempts    int
	LockoutMinutes int
}

type SMSConfig struct {
	APIURL   string
	User     string
	Password string
	Header   string
	Encoding string
}

type StorageConfig struct {
	Endpoint    string
	AccessKey   string
	SecretKey   string
	Bucket      string
	UseSSL      bool
	PublicURL   string
	MaxUploadMB int
}

// Enabled reports whether the media host is configured.
func (c StorageConfig) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

// LoadConfig reads an optional .env file, then environment variables.
// Environment values win over the file.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return buildConfig(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "worklog-panel")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("CLEANUP_INTERVAL_MINUTES", 60)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("OTP_EXPIRY_MINUTES", 5)
	v.SetDefault("OTP_MAX_ATTEMPTS", 5)
	v.SetDefault("OTP_LOCKOUT_MINUTES", 15)
	v.SetDefault("SMS_API_URL", "https://api.netgsm.com.tr/sms/rest/v2/send")
	v.SetDefault("SMS_ENCODING", "TR")
	v.SetDefault("STORAGE_USE_SSL", true)
	v.SetDefault("UPLOAD_MAX_MB", 10)
}

func buildConfig(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			CleanupInterval: time.Duration(v.GetInt("CLEANUP_INTERVAL_MINUTES")) * time.Minute,
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		OTP: OTPConfig{
			ExpiryMinutes:  v.GetInt("OTP_EXPIRY_MINUTES"),
			MaxAttempts:    v.GetInt("OTP_MAX_ATTEMPTS"),
			LockoutMinutes: v.GetInt("OTP_LOCKOUT_MINUTES"),
		},
		SMS: SMSConfig{
			APIURL:   v.GetString("SMS_API_URL"),
			User:     v.GetString("SMS_USER"),
			Password: v.GetString("SMS_PASS"),
			Header:   v.GetString("SMS_HEADER"),
			Encoding: v.GetString("SMS_ENCODING"),
		},
		Storage: StorageConfig{
			Endpoint:    v.GetString("STORAGE_ENDPOINT"),
			AccessKey:   v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey:   v.GetString("STORAGE_SECRET_KEY"),
			Bucket:      v.GetString("STORAGE_BUCKET"),
			UseSSL:      v.GetBool("STORAGE_USE_SSL"),
			PublicURL:   v.GetString("STORAGE_PUBLIC_URL"),
			MaxUploadMB: v.GetInt("UPLOAD_MAX_MB"),
		},
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	var missing []string
	if c.Database.Name == "" {
		missing = append(missing, "DB_NAME")
	}
	if c.Database.User == "" {
		missing = append(missing, "DB_USER")
	}
	if c.JWT.Secret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return errors.New("missing required config: " + strings.Join(missing, ", "))
	}
	return nil
}
