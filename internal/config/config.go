package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultJWTSecret = "changeme-secret"

	// ten years, far below where hours overflow time.Duration
	maxTTLHours = 10 * 365 * 24
)

type Config struct {
	Env      string `yaml:"env"`
	HTTPPort string `yaml:"http_port"`

	// Demo echoes OTP codes back to the caller. Never enable it on a real deployment.
	Demo bool `yaml:"demo"`

	ShortBaseURL    string `yaml:"short_base_url"`
	ViewBaseURL     string `yaml:"view_base_url"`
	CodeLength      int    `yaml:"code_length"`
	DefaultTTLHours int    `yaml:"default_ttl_hours"`
	DefaultUsageMax int    `yaml:"default_usage_max"`

	OTPTTL         time.Duration `yaml:"otp_ttl"`
	OTPMaxAttempts int           `yaml:"otp_max_attempts"`
	OTPHashCost    int           `yaml:"otp_hash_cost"`

	DatabaseURL string `yaml:"database_url"`
	Migrate     bool   `yaml:"migrate"`

	JWTSecret              string        `yaml:"jwt_secret"`
	JWTIssuer              string        `yaml:"jwt_issuer"`
	ViewSessionTTL         time.Duration `yaml:"view_session_ttl"`
	ReceiptSessionRequired bool          `yaml:"receipt_session_required"`

	SweepInterval time.Duration `yaml:"sweep_interval"`
	Retention     time.Duration `yaml:"retention"`

	CORSOrigins []string `yaml:"cors_origins"`
}

func Defaults() Config {
	return Config{
		Env:             "dev",
		HTTPPort:        "8080",
		Demo:            true,
		ShortBaseURL:    "http://localhost:8080",
		ViewBaseURL:     "http://localhost:8080/view",
		CodeLength:      7,
		DefaultTTLHours: 48,
		DefaultUsageMax: 2,
		OTPTTL:          5 * time.Minute,
		OTPMaxAttempts:  3,
		OTPHashCost:     10,
		JWTSecret:       defaultJWTSecret,
		JWTIssuer:       "ereceipt-backend",
		ViewSessionTTL:  15 * time.Minute,
		SweepInterval:   10 * time.Minute,
		Retention:       24 * time.Hour,
		CORSOrigins:     []string{"*"},
	}
}

// Load builds the configuration from defaults, an optional YAML file, a .env
// file and finally the process environment, in that order of precedence.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var errs []error
	c.Env = get("APP_ENV", c.Env)
	c.HTTPPort = get("HTTP_PORT", c.HTTPPort)
	c.ShortBaseURL = get("SHORT_BASE_URL", c.ShortBaseURL)
	c.ViewBaseURL = get("VIEW_BASE_URL", c.ViewBaseURL)
	c.DatabaseURL = get("DATABASE_URL", c.DatabaseURL)
	c.JWTSecret = get("JWT_SECRET", c.JWTSecret)
	c.JWTIssuer = get("JWT_ISSUER", c.JWTIssuer)
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}

	c.Demo = getBool("DEMO", c.Demo, &errs)
	c.Migrate = getBool("APP_MIGRATE", c.Migrate, &errs)
	c.ReceiptSessionRequired = getBool("RECEIPT_SESSION_REQUIRED", c.ReceiptSessionRequired, &errs)

	c.CodeLength = getInt("CODE_LENGTH", c.CodeLength, &errs)
	c.DefaultTTLHours = getInt("DEFAULT_TTL_HOURS", c.DefaultTTLHours, &errs)
	c.DefaultUsageMax = getInt("DEFAULT_USAGE_MAX", c.DefaultUsageMax, &errs)
	c.OTPMaxAttempts = getInt("OTP_MAX_ATTEMPTS", c.OTPMaxAttempts, &errs)
	c.OTPHashCost = getInt("OTP_HASH_COST", c.OTPHashCost, &errs)

	c.OTPTTL = getDuration("OTP_TTL", c.OTPTTL, &errs)
	c.ViewSessionTTL = getDuration("VIEW_SESSION_TTL", c.ViewSessionTTL, &errs)
	c.SweepInterval = getDuration("SWEEP_INTERVAL", c.SweepInterval, &errs)
	c.Retention = getDuration("RETENTION", c.Retention, &errs)
	return errors.Join(errs...)
}

// normalize mirrors the demo's "non-positive means default" rule.
func (c *Config) normalize() {
	d := Defaults()
	if c.CodeLength <= 0 {
		c.CodeLength = d.CodeLength
	}
	if c.DefaultTTLHours <= 0 {
		c.DefaultTTLHours = d.DefaultTTLHours
	}
	if c.DefaultUsageMax <= 0 {
		c.DefaultUsageMax = d.DefaultUsageMax
	}
	if c.OTPTTL <= 0 {
		c.OTPTTL = d.OTPTTL
	}
	if c.OTPMaxAttempts <= 0 {
		c.OTPMaxAttempts = d.OTPMaxAttempts
	}
	if c.OTPHashCost <= 0 {
		c.OTPHashCost = d.OTPHashCost
	}
	if c.ViewSessionTTL <= 0 {
		c.ViewSessionTTL = d.ViewSessionTTL
	}
	if c.Retention < 0 {
		c.Retention = 0
	}
	if c.HTTPPort == "" {
		c.HTTPPort = d.HTTPPort
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = d.CORSOrigins
	}
}

func (c Config) Validate() error {
	var errs []error
	for name, raw := range map[string]string{"short_base_url": c.ShortBaseURL, "view_base_url": c.ViewBaseURL} {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s: %q is not an absolute http(s) URL", name, raw))
		}
	}
	if c.CodeLength > 64 {
		errs = append(errs, fmt.Errorf("code_length: %d exceeds 64", c.CodeLength))
	}
	if c.DefaultTTLHours > maxTTLHours {
		errs = append(errs, fmt.Errorf("default_ttl_hours: %d exceeds %d", c.DefaultTTLHours, maxTTLHours))
	}
	if c.OTPHashCost > 31 {
		errs = append(errs, fmt.Errorf("otp_hash_cost: %d exceeds 31", c.OTPHashCost))
	}
	if c.Env == "prod" && c.JWTSecret == defaultJWTSecret {
		errs = append(errs, errors.New("jwt_secret: default secret is not allowed in prod"))
	}
	return errors.Join(errs...)
}

// DefaultTTL is the lifetime of a freshly issued receipt and its short link.
func (c Config) DefaultTTL() time.Duration {
	return time.Duration(c.DefaultTTLHours) * time.Hour
}

func get(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getBool(key string, def bool, errs *[]error) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}

func getInt(key string, def int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func getDuration(key string, def time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
