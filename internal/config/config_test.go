package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every known variable so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, s := range settings {
		t.Setenv(s.env, "")
	}
	useDotenv(t, filepath.Join(t.TempDir(), "absent.env"))
}

func useDotenv(t *testing.T, path string) {
	t.Helper()
	orig := dotenvPath
	dotenvPath = path
	t.Cleanup(func() { dotenvPath = orig })
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("SENDER_PASSWORD", "app-password")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "hrcc", cfg.MongoDB)
	assert.Equal(t, "users", cfg.UsersCollection)
	assert.Equal(t, "hrccsrm@gmail.com", cfg.SenderEmail)
	assert.Equal(t, "HRCC Recruitments", cfg.SenderName)
	assert.Equal(t, "HRCC Recruitment Update", cfg.EmailSubject)
	assert.Equal(t, "scripts/email_template.html", cfg.TemplatePath)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.Equal(t, 500*time.Millisecond, cfg.RateLimit)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigMissingSecrets(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig("")
	require.ErrorIs(t, err, ErrMissingConfig)
	assert.Contains(t, err.Error(), "MONGO_URI")
	assert.Contains(t, err.Error(), "SENDER_PASSWORD")

	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	_, err = LoadConfig("")
	require.ErrorIs(t, err, ErrMissingConfig)
	assert.NotContains(t, err.Error(), "MONGO_URI")
}

func TestLoadConfigFileAndEnvOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `mongo_uri: mongodb://file:27017
sender_password: from-file
mongo_db: recruitment
smtp_port: "587"
rate_limit_secs: "2"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("MONGO_DB", "from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "mongodb://file:27017", cfg.MongoURI)
	assert.Equal(t, "from-file", cfg.SenderPassword)
	assert.Equal(t, "from-env", cfg.MongoDB)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, 2*time.Second, cfg.RateLimit)
	assert.Equal(t, "users", cfg.UsersCollection)
}

func TestLoadConfigPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(`MONGO_URI=mongodb://dotenv:27017
SENDER_PASSWORD=from-dotenv
MONGO_DB=from-dotenv
MONGO_USERS_COLLECTION=from-dotenv
EMAIL_SUBJECT=from-dotenv
`), 0o600))
	useDotenv(t, envFile)

	settingsFile := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(settingsFile, []byte(`mongo_db: from-yaml
users_collection: from-yaml
`), 0o600))

	t.Setenv("MONGO_USERS_COLLECTION", "from-env")

	cfg, err := LoadConfig(settingsFile)
	require.NoError(t, err)

	// env > yaml > .env > default
	assert.Equal(t, "from-env", cfg.UsersCollection)
	assert.Equal(t, "from-yaml", cfg.MongoDB)
	assert.Equal(t, "from-dotenv", cfg.EmailSubject)
	assert.Equal(t, "mongodb://dotenv:27017", cfg.MongoURI)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)

	// .env values are not exported into the process environment
	assert.Empty(t, os.Getenv("EMAIL_SUBJECT"))
}

func TestLoadConfigDotenvOnly(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("MONGO_URI=mongodb://dotenv\nSENDER_PASSWORD=pw\nSMTP_PORT=587\n"), 0o600))
	useDotenv(t, envFile)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "mongodb://dotenv", cfg.MongoURI)
	assert.Equal(t, 587, cfg.SMTPPort)
}

func TestLoadConfigBadFile(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mongo_uri: [unterminated"), 0o600))
	_, err = LoadConfig(path)
	require.Error(t, err)
}

func TestValidateInvalidNumbers(t *testing.T) {
	tests := []struct {
		name string
		port string
		rate string
	}{
		{name: "port not a number", port: "smtp", rate: "0"},
		{name: "port out of range", port: "70000", rate: "0"},
		{name: "rate not a number", port: "465", rate: "fast"},
		{name: "negative rate", port: "465", rate: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				MongoURI:       "mongodb://localhost",
				SenderPassword: "secret",
				SMTPPortRaw:    tt.port,
				RateLimitRaw:   tt.rate,
			}
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestValidateZeroRateLimit(t *testing.T) {
	cfg := &Config{
		MongoURI:       "mongodb://localhost",
		SenderPassword: "secret",
		SMTPPortRaw:    "465",
		RateLimitRaw:   "0",
	}
	require.NoError(t, cfg.Validate())
	assert.Zero(t, cfg.RateLimit)
}
