package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Logging    LoggingConfig
	Session    SessionConfig
	Content    ContentConfig
	Appearance AppearanceConfig
	Timing     TimingConfig
	SMTP       SMTPConfig
	Admin      AdminConfig
	Resume     ResumeConfig
	Metrics    MetricsConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig contains the database connection settings. An empty URL
// leaves the contact recorder and inbox disabled.
type DatabaseConfig struct {
	URL             string
	UseMock         bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
}

// SessionConfig configures the scs session manager that carries per-visitor
// appearance and loading state.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

type ContentConfig struct {
	Path  string
	Watch bool
}

type AppearanceConfig struct {
	Default string
}

// TimingConfig holds the durations that drive the visible behaviour of the page.
type TimingConfig struct {
	LoadingDelay     time.Duration
	RotationInterval time.Duration
	ContactDelay     time.Duration
	DescriptionLimit int
}

type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
	To   string
}

// Enabled reports whether enough settings are present to deliver mail.
func (c SMTPConfig) Enabled() bool {
	return strings.TrimSpace(c.Host) != "" && strings.TrimSpace(c.To) != ""
}

type AdminConfig struct {
	User         string
	PasswordHash string
}

type ResumeConfig struct {
	File string
}

type MetricsConfig struct {
	Enabled bool
}

// Load inspects the environment and builds a Config value.
func Load() (Config, error) {
	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			":8080",
		),
	}

	cfg.Database = DatabaseConfig{
		URL: firstNonEmpty(
			os.Getenv("DATABASE_URL"),
			os.Getenv("DB_URL"),
			"",
		),
		UseMock:         parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), false),
		MaxIdleConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_IDLE_CONNS"), 2),
		MaxOpenConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_OPEN_CONNS"), 10),
		ConnMaxLifetime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), time.Hour),
		ConnMaxIdleTime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), 15*time.Minute),
	}

	cfg.Logging = LoggingConfig{
		Level:  firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
		Format: firstNonEmpty(os.Getenv("LOG_FORMAT"), "text"),
	}

	cfg.Session = SessionConfig{
		Lifetime:     parseDurationWithDefault(os.Getenv("SESSION_LIFETIME"), 24*time.Hour),
		CookieName:   firstNonEmpty(os.Getenv("SESSION_COOKIE_NAME"), "folio_session"),
		CookieDomain: strings.TrimSpace(os.Getenv("SESSION_COOKIE_DOMAIN")),
		CookieSecure: parseBoolWithDefault(os.Getenv("SESSION_COOKIE_SECURE"), false),
	}

	cfg.Content = ContentConfig{
		Path:  firstNonEmpty(os.Getenv("CONTENT_PATH"), os.Getenv("CONTENT_FILE"), "content.json"),
		Watch: parseBoolWithDefault(os.Getenv("CONTENT_WATCH"), false),
	}

	cfg.Appearance = AppearanceConfig{
		Default: strings.ToLower(firstNonEmpty(os.Getenv("APPEARANCE_DEFAULT"), "system")),
	}

	cfg.Timing = TimingConfig{
		LoadingDelay:     parseDurationWithDefault(os.Getenv("LOADING_DELAY"), 2*time.Second),
		RotationInterval: parseDurationWithDefault(os.Getenv("ROTATION_INTERVAL"), 2500*time.Millisecond),
		ContactDelay:     parseDurationWithDefault(os.Getenv("CONTACT_DELAY"), 1500*time.Millisecond),
		DescriptionLimit: parseIntWithDefault(os.Getenv("DESCRIPTION_LIMIT"), 150),
	}

	cfg.SMTP = SMTPConfig{
		Host: strings.TrimSpace(os.Getenv("SMTP_HOST")),
		Port: parseIntWithDefault(os.Getenv("SMTP_PORT"), 587),
		User: os.Getenv("SMTP_USER"),
		Pass: os.Getenv("SMTP_PASS"),
		From: firstNonEmpty(os.Getenv("SMTP_FROM"), os.Getenv("SMTP_USER")),
		To:   strings.TrimSpace(os.Getenv("SMTP_TO")),
	}

	cfg.Admin = AdminConfig{
		User:         firstNonEmpty(os.Getenv("ADMIN_USER"), "admin"),
		PasswordHash: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")),
	}

	cfg.Resume = ResumeConfig{
		File: strings.TrimSpace(os.Getenv("RESUME_FILE")),
	}

	cfg.Metrics = MetricsConfig{
		Enabled: parseBoolWithDefault(os.Getenv("METRICS_ENABLED"), false),
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}
	if cfg.Timing.LoadingDelay < 0 || cfg.Timing.ContactDelay < 0 {
		return Config{}, fmt.Errorf("timing delays must not be negative")
	}
	if cfg.Timing.RotationInterval <= 0 {
		return Config{}, fmt.Errorf("rotation interval must be positive")
	}
	if cfg.Timing.DescriptionLimit <= 0 {
		return Config{}, fmt.Errorf("description limit must be positive")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}
