package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration required by the API process.
// All values must come from env (or an env-file loaded at process start).
// No business logic should depend on raw environment variables.
type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Auth      AuthConfig
	Synthflow SynthflowConfig
	Google    GoogleConfig
}

type AppConfig struct {
	Env  string
	Port int
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string

	// SSLMode is kept explicit for hosted-Postgres posture.
	// Accepts: disable, require, verify-ca, verify-full
	SSLMode string

	// Pool sizing; zero values fall back to the pool defaults in pkg/utils.
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host string
	Port int
}

type AuthConfig struct {
	JWTSecret      string
	JWTIssuer      string
	JWTAudience    string
	AccessTokenTTL time.Duration

	// Login throttling (fixed window per email).
	LoginAttemptLimit  int
	LoginAttemptWindow time.Duration
}

// SynthflowConfig configures the external call data source.
//
// StartTimeUnit makes the upstream start_time unit explicit ("s" or "ms")
// instead of guessing from digit count.
type SynthflowConfig struct {
	BaseURL       string
	APIKey        string
	StartTimeUnit string
	FetchTimeout  time.Duration
}

// GoogleConfig is served verbatim to the browser client; it contains no secrets
// beyond the public API key and OAuth client id.
type GoogleConfig struct {
	APIKey        string
	ClientID      string
	DiscoveryDocs []string
	Scopes        string
}

func Load() (Config, error) {
	c := Config{}
	var parseErrs []error

	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	{
		n, err := mustInt("APP_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.App.Port = n
	}

	c.DB.Host = strings.TrimSpace(os.Getenv("DB_HOST"))
	{
		n, err := mustInt("DB_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.DB.Port = n
	}
	c.DB.User = strings.TrimSpace(os.Getenv("DB_USER"))
	c.DB.Password = os.Getenv("DB_PASSWORD")
	c.DB.Name = strings.TrimSpace(os.Getenv("DB_NAME"))
	c.DB.SSLMode = strings.TrimSpace(os.Getenv("DB_SSLMODE"))
	c.DB.MaxOpenConns = optInt("DB_MAX_OPEN_CONNS")
	c.DB.MaxIdleConns = optInt("DB_MAX_IDLE_CONNS")
	c.DB.ConnMaxLifetime = mustDuration("DB_CONN_MAX_LIFETIME")
	c.DB.ConnMaxIdleTime = mustDuration("DB_CONN_MAX_IDLE_TIME")

	c.Redis.Host = strings.TrimSpace(os.Getenv("REDIS_HOST"))
	{
		n, err := mustInt("REDIS_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.Redis.Port = n
	}

	c.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	c.Auth.JWTIssuer = strings.TrimSpace(os.Getenv("JWT_ISSUER"))
	c.Auth.JWTAudience = strings.TrimSpace(os.Getenv("JWT_AUDIENCE"))
	// Duration env vars are optional; defaults applied in Validate().
	c.Auth.AccessTokenTTL = mustDuration("JWT_ACCESS_TTL")
	c.Auth.LoginAttemptLimit = optInt("LOGIN_ATTEMPT_LIMIT")
	c.Auth.LoginAttemptWindow = mustDuration("LOGIN_ATTEMPT_WINDOW")

	c.Synthflow.BaseURL = strings.TrimSpace(os.Getenv("SYNTHFLOW_BASE_URL"))
	c.Synthflow.APIKey = os.Getenv("SYNTHFLOW_API_KEY")
	c.Synthflow.StartTimeUnit = strings.TrimSpace(os.Getenv("SYNTHFLOW_START_TIME_UNIT"))
	c.Synthflow.FetchTimeout = mustDuration("SYNTHFLOW_FETCH_TIMEOUT")

	c.Google.APIKey = strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
	c.Google.ClientID = strings.TrimSpace(os.Getenv("GOOGLE_CLIENT_ID"))
	c.Google.DiscoveryDocs = splitList(os.Getenv("GOOGLE_DISCOVERY_DOCS"))
	c.Google.Scopes = strings.TrimSpace(os.Getenv("GOOGLE_SCOPES"))

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}

	if c.DB.Host == "" {
		errs = append(errs, errors.New("DB_HOST is required"))
	}
	if c.DB.Port <= 0 || c.DB.Port > 65535 {
		errs = append(errs, fmt.Errorf("DB_PORT must be a valid port, got %d", c.DB.Port))
	}
	if c.DB.User == "" {
		errs = append(errs, errors.New("DB_USER is required"))
	}
	if c.DB.Name == "" {
		errs = append(errs, errors.New("DB_NAME is required"))
	}
	if strings.TrimSpace(c.DB.SSLMode) == "" {
		if c.IsProduction() {
			errs = append(errs, errors.New("DB_SSLMODE is required in production"))
		} else {
			// Local-friendly default; production must be explicit.
			c.DB.SSLMode = "disable"
		}
	}
	if c.DB.SSLMode != "" && !isValidSSLMode(c.DB.SSLMode) {
		errs = append(errs, fmt.Errorf("DB_SSLMODE must be one of disable, require, verify-ca, verify-full, got %q", c.DB.SSLMode))
	}

	if c.Redis.Host == "" {
		errs = append(errs, errors.New("REDIS_HOST is required"))
	}
	if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
		errs = append(errs, fmt.Errorf("REDIS_PORT must be a valid port, got %d", c.Redis.Port))
	}

	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.IsProduction() {
		if c.Auth.JWTIssuer == "" {
			errs = append(errs, errors.New("JWT_ISSUER is required in production"))
		}
		if c.Auth.JWTAudience == "" {
			errs = append(errs, errors.New("JWT_AUDIENCE is required in production"))
		}
	}
	if c.Auth.AccessTokenTTL <= 0 {
		// Sessions outlive a working day; the UI has no refresh flow.
		c.Auth.AccessTokenTTL = 12 * time.Hour
	}
	if c.Auth.LoginAttemptLimit <= 0 {
		c.Auth.LoginAttemptLimit = 10
	}
	if c.Auth.LoginAttemptWindow <= 0 {
		c.Auth.LoginAttemptWindow = 15 * time.Minute
	}

	if c.Synthflow.BaseURL == "" {
		errs = append(errs, errors.New("SYNTHFLOW_BASE_URL is required"))
	}
	if c.Synthflow.APIKey == "" {
		errs = append(errs, errors.New("SYNTHFLOW_API_KEY is required"))
	}
	if c.Synthflow.StartTimeUnit == "" {
		c.Synthflow.StartTimeUnit = "ms"
	}
	if c.Synthflow.StartTimeUnit != "s" && c.Synthflow.StartTimeUnit != "ms" {
		errs = append(errs, fmt.Errorf("SYNTHFLOW_START_TIME_UNIT must be s or ms, got %q", c.Synthflow.StartTimeUnit))
	}
	if c.Synthflow.FetchTimeout <= 0 {
		c.Synthflow.FetchTimeout = 10 * time.Second
	}

	// Google config is optional: without it the calendar tab simply cannot connect.

	return joinErrors(errs)
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c Config) PostgresDSN() string {
	// Avoid logging this string; it contains secrets.
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func mustInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

// optInt reads an optional integer env var; unset or malformed yields 0.
func optInt(key string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	return n
}

func mustDuration(key string) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0
	}
	return d
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func appendParseErr(errs []error, n int, err error) (int, []error) {
	if err != nil {
		errs = append(errs, err)
	}
	return n, errs
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func isValidSSLMode(v string) bool {
	switch v {
	case "disable", "require", "verify-ca", "verify-full":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
