package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	ServerPort string `yaml:"server_port"`
	SecretKey  string `yaml:"secret_key"`
	AppEnv     string `yaml:"app_env"`

	DBDriver string `yaml:"db_driver"`
	DBPath   string `yaml:"db_path"`
	DBUrl    string `yaml:"database_url"`

	ClinicTimezone string `yaml:"clinic_timezone"`

	RedisURL string        `yaml:"redis_url"`
	CacheTTL time.Duration `yaml:"cache_ttl"`

	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`

	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`

	S3 S3Config `yaml:"s3"`
}

// S3Config points the snapshot exporter at an S3-compatible bucket.
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Prefix          string `yaml:"prefix"`
}

func defaults() *Config {
	return &Config{
		ServerPort:     "8080",
		SecretKey:      "dev-secret",
		AppEnv:         "production",
		DBDriver:       DriverSQLite,
		DBPath:         "healthcare.db",
		ClinicTimezone: "UTC",
		CacheTTL:       60 * time.Second,
		RateLimitBurst: 30,
		S3: S3Config{
			Region: "us-east-1",
			Prefix: "snapshots",
		},
	}
}

// Load reads .env (if any), the optional CONFIG_FILE yaml document and then
// the process environment, in increasing order of precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: could not load .env: %v", err)
	}

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "config: read %s", path)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return errors.Wrapf(err, "config: parse %s", path)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.SecretKey = getEnv("SECRET_KEY", c.SecretKey)
	c.AppEnv = getEnv("APP_ENV", c.AppEnv)

	c.DBDriver = strings.ToLower(getEnv("DB_DRIVER", c.DBDriver))
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.DBUrl = getEnv("DATABASE_URL", c.DBUrl)

	c.ClinicTimezone = getEnv("CLINIC_TIMEZONE", c.ClinicTimezone)

	c.RedisURL = getEnv("REDIS_URL", c.RedisURL)
	if v := os.Getenv("CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(err, "config: CACHE_TTL")
		}
		c.CacheTTL = ttl
	}

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrap(err, "config: RATE_LIMIT_RPS")
		}
		c.RateLimitRPS = rps
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "config: RATE_LIMIT_BURST")
		}
		c.RateLimitBurst = burst
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.CORSAllowedOrigins = splitList(v)
	}

	c.S3.Bucket = getEnv("S3_BUCKET", c.S3.Bucket)
	c.S3.Region = getEnv("S3_REGION", c.S3.Region)
	c.S3.Endpoint = getEnv("S3_ENDPOINT", c.S3.Endpoint)
	c.S3.AccessKeyID = getEnv("S3_ACCESS_KEY_ID", c.S3.AccessKeyID)
	c.S3.SecretAccessKey = getEnv("S3_SECRET_ACCESS_KEY", c.S3.SecretAccessKey)
	c.S3.Prefix = getEnv("S3_PREFIX", c.S3.Prefix)

	return nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return errors.New("config: DB_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DBUrl == "" {
			return errors.New("config: DATABASE_URL is required for the postgres driver")
		}
	default:
		return errors.Errorf("config: unknown DB_DRIVER %q", c.DBDriver)
	}

	if c.SecretKey == "" {
		return errors.New("config: SECRET_KEY must not be empty")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
