package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort            = 5001
	DefaultEnv             = "development"
	DefaultBodyLimit       = 1 << 20
	DefaultRateLimitWindow = 10 * time.Minute
	DefaultRateLimitMax    = 1000
)

type Config struct {
	Env      string `yaml:"env" validate:"required"`
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=DEBUG INFO ERROR debug info error"`
	Server   struct {
		Port            int           `yaml:"port" validate:"gt=0,lte=65535"`
		TrustedProxies  []string      `yaml:"trusted_proxies" validate:"dive,cidr|ip"`
		BodyLimit       int64         `yaml:"body_limit" validate:"gt=0"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		IdleTimeout     time.Duration `yaml:"idle_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Database struct {
		URI    string `yaml:"uri" validate:"required"`
		DBName string `yaml:"dbname" validate:"required"`
	} `yaml:"database"`
	Redis struct {
		Enabled     bool   `yaml:"enabled"`
		Host        string `yaml:"host" validate:"required"`
		Port        int    `yaml:"port" validate:"gt=0,lte=65535"`
		Password    string `yaml:"password"`
		DB          int    `yaml:"db" validate:"gte=0"`
		TLSEnabled  bool   `yaml:"tls_enabled"`
		TLSCertFile string `yaml:"tls_cert_file"`
	} `yaml:"redis"`
	JWT struct {
		Secret           string        `yaml:"secret" validate:"required"`
		Expire           time.Duration `yaml:"expire" validate:"gt=0"`
		CookieExpireDays int           `yaml:"cookie_expire_days" validate:"gt=0"`
	} `yaml:"jwt"`
	RateLimit struct {
		Window    time.Duration `yaml:"window" validate:"gt=0"`
		Max       int           `yaml:"max" validate:"gt=0"`
		Store     string        `yaml:"store" validate:"oneof=memory redis"`
		KeyPrefix string        `yaml:"key_prefix"`
	} `yaml:"rate_limit"`
	Throttle struct {
		RPS   float64 `yaml:"rps" validate:"gt=0"`
		Burst int     `yaml:"burst" validate:"gt=0"`
	} `yaml:"throttle"`
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// LoadConfig reads the YAML file at path (a missing file is not an error),
// applies environment overrides and defaults, and validates the result.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags and the cross-field rules.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.RateLimit.Store == "redis" && !cfg.Redis.Enabled {
		return fmt.Errorf("invalid config: rate_limit.store=redis requires redis.enabled")
	}
	if cfg.Redis.TLSEnabled && cfg.Redis.TLSCertFile != "" {
		if _, err := os.Stat(cfg.Redis.TLSCertFile); os.IsNotExist(err) {
			return fmt.Errorf("TLS certificate file does not exist: %s", cfg.Redis.TLSCertFile)
		}
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if env := os.Getenv("APP_ENV"); env != "" {
		cfg.Env = env
	} else if env := os.Getenv("NODE_ENV"); env != "" {
		cfg.Env = env
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if err := envInt("PORT", &cfg.Server.Port); err != nil {
		return err
	}
	if proxies := os.Getenv("TRUSTED_PROXIES"); proxies != "" {
		cfg.Server.TrustedProxies = splitList(proxies)
	}
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		cfg.Database.URI = uri
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		cfg.Database.DBName = dbname
	}
	if enabled := os.Getenv("REDIS_ENABLED"); enabled != "" {
		cfg.Redis.Enabled = enabled == "true"
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Host = host
	}
	if err := envInt("REDIS_PORT", &cfg.Redis.Port); err != nil {
		return err
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if err := envInt("REDIS_DB", &cfg.Redis.DB); err != nil {
		return err
	}
	if tlsEnabled := os.Getenv("REDIS_TLS_ENABLED"); tlsEnabled != "" {
		cfg.Redis.TLSEnabled = tlsEnabled == "true"
	}
	if tlsCertFile := os.Getenv("REDIS_TLS_CERT_FILE"); tlsCertFile != "" {
		cfg.Redis.TLSCertFile = tlsCertFile
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}
	if err := envDuration("JWT_EXPIRE", &cfg.JWT.Expire); err != nil {
		return err
	}
	if err := envInt("JWT_COOKIE_EXPIRE", &cfg.JWT.CookieExpireDays); err != nil {
		return err
	}
	if err := envDuration("RATE_LIMIT_WINDOW", &cfg.RateLimit.Window); err != nil {
		return err
	}
	if err := envInt("RATE_LIMIT_MAX", &cfg.RateLimit.Max); err != nil {
		return err
	}
	if store := os.Getenv("RATE_LIMIT_STORE"); store != "" {
		cfg.RateLimit.Store = store
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Env == "" {
		cfg.Env = DefaultEnv
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.BodyLimit == 0 {
		cfg.Server.BodyLimit = DefaultBodyLimit
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 5 * time.Second
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.JWT.Expire == 0 {
		cfg.JWT.Expire = 30 * 24 * time.Hour
	}
	if cfg.JWT.CookieExpireDays == 0 {
		cfg.JWT.CookieExpireDays = 30
	}
	if cfg.RateLimit.Window == 0 {
		cfg.RateLimit.Window = DefaultRateLimitWindow
	}
	if cfg.RateLimit.Max == 0 {
		cfg.RateLimit.Max = DefaultRateLimitMax
	}
	if cfg.RateLimit.Store == "" {
		cfg.RateLimit.Store = "memory"
	}
	if cfg.RateLimit.KeyPrefix == "" {
		cfg.RateLimit.KeyPrefix = "ratelimit:"
	}
	if cfg.Throttle.RPS == 0 {
		cfg.Throttle.RPS = 5
	}
	if cfg.Throttle.Burst == 0 {
		cfg.Throttle.Burst = 10
	}
}

func envInt(name string, dst *int) error {
	raw := os.Getenv(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s value: %w", name, err)
	}
	*dst = n
	return nil
}

// envDuration accepts Go duration strings ("10m"), day counts ("30d") and
// bare integers, which are read as milliseconds.
func envDuration(name string, dst *time.Duration) error {
	raw := os.Getenv(name)
	if raw == "" {
		return nil
	}
	d, err := ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid %s value: %w", name, err)
	}
	*dst = d
	return nil
}

// ParseDuration extends time.ParseDuration with a "d" (day) suffix and
// treats a bare integer as milliseconds.
func ParseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid day count %q", raw)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(raw)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
