package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingConfig is returned when a required secret is absent.
	ErrMissingConfig = errors.New("missing required config")
	// ErrInvalidConfig is returned when a setting cannot be parsed.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config holds the settings of a mailing run. Numeric settings stay strings
// until Validate so that env and file values share one merge path.
type Config struct {
	MongoURI        string `yaml:"mongo_uri"`
	MongoDB         string `yaml:"mongo_db"`
	UsersCollection string `yaml:"users_collection"`
	SenderEmail     string `yaml:"sender_email"`
	SenderName      string `yaml:"sender_name"`
	SenderPassword  string `yaml:"sender_password"`
	EmailSubject    string `yaml:"email_subject"`
	TemplatePath    string `yaml:"email_template_path"`
	SMTPHost        string `yaml:"smtp_host"`
	SMTPPortRaw     string `yaml:"smtp_port"`
	RateLimitRaw    string `yaml:"rate_limit_secs"`
	LogLevel        string `yaml:"log_level"`
	LogFormat       string `yaml:"log_format"`

	SMTPPort  int           `yaml:"-"`
	RateLimit time.Duration `yaml:"-"`
}

type setting struct {
	env   string
	field func(c *Config) *string
	def   string
}

var settings = []setting{
	{"MONGO_URI", func(c *Config) *string { return &c.MongoURI }, ""},
	{"MONGO_DB", func(c *Config) *string { return &c.MongoDB }, "hrcc"},
	{"MONGO_USERS_COLLECTION", func(c *Config) *string { return &c.UsersCollection }, "users"},
	{"SENDER_EMAIL", func(c *Config) *string { return &c.SenderEmail }, "hrccsrm@gmail.com"},
	{"SENDER_NAME", func(c *Config) *string { return &c.SenderName }, "HRCC Recruitments"},
	{"SENDER_PASSWORD", func(c *Config) *string { return &c.SenderPassword }, ""},
	{"EMAIL_SUBJECT", func(c *Config) *string { return &c.EmailSubject }, "HRCC Recruitment Update"},
	{"EMAIL_TEMPLATE_PATH", func(c *Config) *string { return &c.TemplatePath }, "scripts/email_template.html"},
	{"SMTP_HOST", func(c *Config) *string { return &c.SMTPHost }, "smtp.gmail.com"},
	{"SMTP_PORT", func(c *Config) *string { return &c.SMTPPortRaw }, "465"},
	{"RATE_LIMIT_SECS", func(c *Config) *string { return &c.RateLimitRaw }, "0.5"},
	{"LOG_LEVEL", func(c *Config) *string { return &c.LogLevel }, "info"},
	{"LOG_FORMAT", func(c *Config) *string { return &c.LogFormat }, "text"},
}

// dotenvPath is the optional dotenv file read by LoadConfig.
var dotenvPath = ".env"

// LoadConfig merges, from lowest to highest precedence: built-in defaults,
// the .env file (if present), the optional YAML settings file at path, and
// the process environment. The result is validated before it is returned.
func LoadConfig(path string) (*Config, error) {
	dotenv, err := godotenv.Read(dotenvPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", dotenvPath, err)
	}

	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read settings file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
		}
	}

	for _, s := range settings {
		dst := s.field(&cfg)
		if v := strings.TrimSpace(os.Getenv(s.env)); v != "" {
			*dst = v
			continue
		}
		if strings.TrimSpace(*dst) != "" {
			continue
		}
		if v := strings.TrimSpace(dotenv[s.env]); v != "" {
			*dst = v
			continue
		}
		*dst = s.def
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required secrets and parses the numeric settings.
func (c *Config) Validate() error {
	var missing []string
	if c.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if c.SenderPassword == "" {
		missing = append(missing, "SENDER_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(c.SMTPPortRaw)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("%w: SMTP_PORT=%q", ErrInvalidConfig, c.SMTPPortRaw)
	}
	c.SMTPPort = port

	secs, err := strconv.ParseFloat(c.RateLimitRaw, 64)
	if err != nil || secs < 0 {
		return fmt.Errorf("%w: RATE_LIMIT_SECS=%q", ErrInvalidConfig, c.RateLimitRaw)
	}
	c.RateLimit = time.Duration(secs * float64(time.Second))

	return nil
}
