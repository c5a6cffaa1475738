package config

import (
	env_utils "clubhub/internal/util/env"
	"clubhub/internal/util/logger"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

type EnvVariables struct {
	IsTesting       bool
	DatabaseDsn     string            `env:"DATABASE_DSN"       required:"true"`
	EnvMode         env_utils.EnvMode `env:"ENV_MODE"           required:"true"`
	BackendRootPath string            `env:"BACKEND_ROOT_PATH"  required:"true"`
	BaseURL         string            `env:"BASE_URL"           env-default:"http://localhost:4005"`
	// administration
	AdminEmailsRaw string   `env:"ADMIN_EMAILS" required:"true"`
	AdminEmails    []string `env:"-"`
	// identity lifecycle
	UnverifiedRetentionHours int `env:"UNVERIFIED_RETENTION_HOURS" env-default:"24"`
	// cache
	ValkeyHost     string `env:"VALKEY_HOST"     required:"true"`
	ValkeyPort     string `env:"VALKEY_PORT"     required:"true"`
	ValkeyUsername string `env:"VALKEY_USERNAME" required:"false"`
	ValkeyPassword string `env:"VALKEY_PASSWORD" required:"false"`
	ValkeyIsSsl    bool   `env:"VALKEY_IS_SSL"   required:"true"`
	// verification email
	MailFromEmail    string `env:"MAIL_FROM_EMAIL" env-default:"no-reply@clubhub.local"`
	ResendAPIKey     string `env:"RESEND_API_KEY"  required:"false"`
	SMTPEnabled      bool   `env:"SMTP_ENABLED"    env-default:"false"`
	SMTPHost         string `env:"SMTP_HOST"       required:"false"`
	SMTPPort         string `env:"SMTP_PORT"       env-default:"587"`
	SMTPUser         string `env:"SMTP_USER"       required:"false"`
	SMTPPassword     string `env:"SMTP_PASSWORD"   required:"false"`
	IsMailSuppressed bool   `env:"MAIL_SUPPRESSED" env-default:"false"`
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

// IsAllowlistedAdmin reports whether the email belongs to the configured
// admin allowlist. Comparison is case-insensitive.
func (e EnvVariables) IsAllowlistedAdmin(email string) bool {
	lowered := strings.ToLower(email)
	for _, admin := range e.AdminEmails {
		if admin == lowered {
			return true
		}
	}

	return false
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(backendRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(backendRoot)
		if parent == backendRoot {
			break
		}

		backendRoot = parent
	}

	env.BackendRootPath = backendRoot

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	var loaded bool
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Successfully loaded .env", "path", path)
			loaded = true
			break
		}
	}

	if !loaded {
		log.Error("Error loading .env file: could not find .env in any location")
		os.Exit(1)
	}

	err = cleanenv.ReadEnv(&env)
	if err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	if env.DatabaseDsn == "" {
		log.Error("DATABASE_DSN is empty")
		os.Exit(1)
	}

	if env.EnvMode == "" {
		log.Error("ENV_MODE is empty")
		os.Exit(1)
	}
	if env.EnvMode != env_utils.EnvModeDevelopment && env.EnvMode != env_utils.EnvModeProduction {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}
	log.Info("ENV_MODE loaded", "mode", env.EnvMode)

	env.AdminEmails = parseAdminEmails(env.AdminEmailsRaw)
	if len(env.AdminEmails) == 0 {
		log.Error("ADMIN_EMAILS is empty")
		os.Exit(1)
	}

	if env.UnverifiedRetentionHours < 0 {
		log.Error("UNVERIFIED_RETENTION_HOURS must not be negative")
		os.Exit(1)
	}

	// Valkey
	if env.ValkeyHost == "" {
		log.Error("VALKEY_HOST is empty")
		os.Exit(1)
	}
	if env.ValkeyPort == "" {
		log.Error("VALKEY_PORT is empty")
		os.Exit(1)
	}

	log.Info("Environment variables loaded successfully!")
}

func parseAdminEmails(raw string) []string {
	parts := strings.Split(raw, ",")
	emails := make([]string, 0, len(parts))

	for _, part := range parts {
		email := strings.ToLower(strings.TrimSpace(part))
		if email != "" {
			emails = append(emails, email)
		}
	}

	return emails
}
