package utils

import (
	"errors"
	"log"
	"os"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server configuration
	AppPort      string `yaml:"APP_PORT"`
	LogMode      string `yaml:"LOG_MODE"`
	LogFile      string `yaml:"LOG_FILE"`
	RateLimitMax int    `yaml:"RATE_LIMIT_MAX"`
	CORSOrigins  string `yaml:"CORS_ORIGINS"`

	// Storage configuration; STORAGE_DRIVER is memory, postgres or sqlite
	StorageDriver string `yaml:"STORAGE_DRIVER"`
	SeedDemoData  bool   `yaml:"SEED_DEMO_DATA"`
	SQLitePath    string `yaml:"SQLITE_PATH"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret     string `yaml:"JWT_SECRET"`
	JWTTTLMinutes int    `yaml:"JWT_TTL_MINUTES"`

	// Realtime bus; empty address keeps fan-out in process
	RedisAddr    string `yaml:"REDIS_ADDR"`
	RedisChannel string `yaml:"REDIS_CHANNEL"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

func DefaultConfig() Config {
	return Config{
		AppPort:       "8080",
		LogMode:       "development",
		RateLimitMax:  10,
		CORSOrigins:   "*",
		StorageDriver: "memory",
		SQLitePath:    "recipe-chat.db",
		JWTTTLMinutes: 120,
		RedisChannel:  "recipe-chat:realtime",
		SMTPPort:      "587",
	}
}

// LoadConfig reads path (config.yaml when empty) on top of the defaults and
// then applies any environment variable named after a yaml key. A missing
// file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = "config.yaml"
	}

	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Printf("config file %s not found, using defaults and environment\n", path)
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return cfg, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("yaml")
		raw, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		raw = strings.TrimSpace(raw)
		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(raw)
		case reflect.Int:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return errors.New("invalid integer for " + key)
			}
			field.SetInt(int64(n))
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return errors.New("invalid boolean for " + key)
			}
			field.SetBool(b)
		}
	}
	return nil
}
