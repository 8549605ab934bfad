// Package config defines the application configuration structures and
// loads them from file and environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Configuration holds all configuration for the vendor-collective backend.
type Configuration struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Finalize      FinalizeConfig
	Notifications NotificationsConfig
	Logging       LoggingConfig
}

// ServerConfig holds the HTTP listener parameters.
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds the Postgres connection parameters. URL takes
// precedence over the discrete fields when set.
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// FinalizeConfig guards the scheduler-only finalize trigger.
type FinalizeConfig struct {
	// SharedSecret must match the X-Internal-Secret header on
	// POST /orders/finalize-and-route.
	SharedSecret string
}

// NotificationsConfig holds the Twilio SMS credentials. When any field is
// empty the dispatcher runs in mock mode and only logs messages.
type NotificationsConfig struct {
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// ConnString builds a connection string from the discrete fields when URL
// is not set.
func (d DatabaseConfig) ConnString() (string, error) {
	if d.URL != "" {
		return d.URL, nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return "", fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}
	port := d.Port
	if port == "" {
		port = "5432"
	}
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, port, d.User, d.Password, d.Name, sslmode), nil
}

// LoadConfiguration reads the optional YAML config at configPath and merges
// environment variables over it (DATABASE_URL, FINALIZE_SHARED_SECRET,
// TWILIO_ACCOUNT_SID, ...). A missing file is not an error; environment
// variables alone are enough to run.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
			}
		}
	}

	cfg := &Configuration{
		Server: ServerConfig{
			Port: firstNonEmpty(v.GetString("PORT"), v.GetString("server.port")),
		},
		Database: DatabaseConfig{
			URL:      firstNonEmpty(v.GetString("DATABASE_URL"), v.GetString("database.url")),
			Host:     firstNonEmpty(v.GetString("DB_HOST"), v.GetString("database.host")),
			Port:     firstNonEmpty(v.GetString("DB_PORT"), v.GetString("database.port")),
			User:     firstNonEmpty(v.GetString("DB_USER"), v.GetString("database.user")),
			Password: firstNonEmpty(v.GetString("DB_PASSWORD"), v.GetString("database.password")),
			Name:     firstNonEmpty(v.GetString("DB_NAME"), v.GetString("database.name")),
			SSLMode:  firstNonEmpty(v.GetString("DB_SSLMODE"), v.GetString("database.sslmode")),
		},
		Finalize: FinalizeConfig{
			SharedSecret: firstNonEmpty(v.GetString("FINALIZE_SHARED_SECRET"), v.GetString("finalize.sharedsecret")),
		},
		Notifications: NotificationsConfig{
			TwilioAccountSID:  firstNonEmpty(v.GetString("TWILIO_ACCOUNT_SID"), v.GetString("notifications.twilioaccountsid")),
			TwilioAuthToken:   firstNonEmpty(v.GetString("TWILIO_AUTH_TOKEN"), v.GetString("notifications.twilioauthtoken")),
			TwilioPhoneNumber: firstNonEmpty(v.GetString("TWILIO_PHONE_NUMBER"), v.GetString("notifications.twiliophonenumber")),
		},
		Logging: LoggingConfig{
			Level:  firstNonEmpty(v.GetString("LOG_LEVEL"), v.GetString("logging.level")),
			Format: firstNonEmpty(v.GetString("LOG_FORMAT"), v.GetString("logging.format")),
		},
	}

	if cfg.Finalize.SharedSecret == "" {
		return nil, fmt.Errorf("FINALIZE_SHARED_SECRET is required to guard the finalize trigger")
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
