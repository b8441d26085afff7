package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Database
	SQLiteDBPath string

	// Auth
	JWTSecret   string
	TokenTTL    time.Duration
	ResetTTL    time.Duration
	BcryptCost  int
	RateLimit   int
	RateWindow  time.Duration

	// AMQP
	AMQPURL         string
	AMQPExchange    string
	AMQPMailQueue   string
	AMQPExportQueue string

	// Mail
	MailAPIURL   string
	MailAPIKey   string
	MailFrom     string
	ResetBaseURL string

	// Google Sheets export
	GoogleSpreadsheetID    string
	GoogleSheetName        string
	GoogleCredentialsFile  string
	GoogleCredentialsJSON  string

	// Worker
	SweepBatchSize int
	SweepInterval  time.Duration

	// Backend selection
	DataBackend string
}

func Load() *Config {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/jobadmin.db"),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		TokenTTL:   getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
		ResetTTL:   getEnvDuration("RESET_TOKEN_TTL", 30*time.Minute),
		BcryptCost: getEnvInt("BCRYPT_COST", 10),
		RateLimit:  getEnvInt("AUTH_RATE_LIMIT", 20),
		RateWindow: getEnvDuration("AUTH_RATE_WINDOW", 15*time.Minute),

		AMQPURL:         getEnv("AMQP_URL", ""),
		AMQPExchange:    getEnv("AMQP_EXCHANGE", "jobadmin"),
		AMQPMailQueue:   getEnv("AMQP_MAIL_QUEUE", "reset_mail"),
		AMQPExportQueue: getEnv("AMQP_EXPORT_QUEUE", "entry_export"),

		MailAPIURL:   getEnv("MAIL_API_URL", "https://api.resend.com/emails"),
		MailAPIKey:   getEnv("MAIL_API_KEY", ""),
		MailFrom:     getEnv("MAIL_FROM", "no-reply@jobadmin.local"),
		ResetBaseURL: getEnv("RESET_BASE_URL", "http://localhost:5173/reset-password"),

		GoogleSpreadsheetID:   getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:       getEnv("GOOGLE_SHEET_NAME", "Ledger"),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		GoogleCredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),

		SweepBatchSize: getEnvInt("SWEEP_BATCH_SIZE", 25),
		SweepInterval:  getEnvDuration("SWEEP_INTERVAL", 60*time.Second),

		DataBackend: getEnv("DATA_BACKEND", "sqlite"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET must be set")
	} else if len(c.JWTSecret) < 16 {
		errors = append(errors, "JWT_SECRET must be at least 16 characters")
	}

	if c.TokenTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid token TTL %v: must be at least 1 minute", c.TokenTTL))
	}
	if c.ResetTTL < time.Minute || c.ResetTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid reset token TTL %v: must be between 1 minute and 24 hours", c.ResetTTL))
	}

	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errors = append(errors, fmt.Sprintf("invalid bcrypt cost %d: must be between 4 and 31", c.BcryptCost))
	}

	if c.RateLimit < 1 {
		errors = append(errors, fmt.Sprintf("invalid auth rate limit %d: must be at least 1", c.RateLimit))
	}
	if c.RateWindow < time.Second {
		errors = append(errors, fmt.Sprintf("invalid auth rate window %v: must be at least 1 second", c.RateWindow))
	}

	// Validate data backend
	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	// Validate SQLite configuration if backend is sqlite
	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			// Check if directory exists or can be created
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}

		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPMailQueue == "" {
			errors = append(errors, "AMQP mail queue name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPExportQueue == "" {
			errors = append(errors, "AMQP export queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Validate mail settings when a mail API key is configured
	if c.MailAPIKey != "" {
		if c.MailAPIURL == "" {
			errors = append(errors, "mail API URL cannot be empty when a mail API key is provided")
		} else if parsedURL, err := url.Parse(c.MailAPIURL); err != nil || parsedURL.Scheme == "" {
			errors = append(errors, fmt.Sprintf("invalid mail API URL '%s'", c.MailAPIURL))
		}
		if c.MailFrom == "" {
			errors = append(errors, "mail sender address cannot be empty when a mail API key is provided")
		}
		if c.ResetBaseURL == "" {
			errors = append(errors, "reset base URL cannot be empty when a mail API key is provided")
		}
	}

	// Validate sheets export configuration when a spreadsheet is configured
	if c.GoogleSpreadsheetID != "" {
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when a spreadsheet ID is provided")
		}

		hasCredsFile := c.GoogleCredentialsFile != ""
		hasCredsJSON := c.GoogleCredentialsJSON != ""
		if !hasCredsFile && !hasCredsJSON {
			errors = append(errors, "either GOOGLE_CREDENTIALS_FILE or GOOGLE_CREDENTIALS_JSON must be provided for sheets export")
		}

		if hasCredsFile {
			if _, err := os.Stat(c.GoogleCredentialsFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google credentials file does not exist: %s", c.GoogleCredentialsFile))
			}
		}
	}

	// Validate worker configuration
	if c.SweepBatchSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid sweep batch size %d: must be at least 1", c.SweepBatchSize))
	} else if c.SweepBatchSize > 1000 {
		errors = append(errors, fmt.Sprintf("invalid sweep batch size %d: must be at most 1000", c.SweepBatchSize))
	}

	if c.SweepInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid sweep interval %v: must be at least 1 second", c.SweepInterval))
	} else if c.SweepInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid sweep interval %v: must be at most 24 hours", c.SweepInterval))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
