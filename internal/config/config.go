package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SSLMode    string
	SQLitePath string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	Timezone           string
	CORSAllowedOrigins []string
}

// AttendanceConfig holds accounting policy switches
type AttendanceConfig struct {
	// HolidayAllowSunday credits a Sunday holiday with zero hours instead of rejecting it
	HolidayAllowSunday bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
		slog.Debug("No .env file found, using process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Driver:     strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		Host:       getEnv("DB_HOST", "localhost"),
		Port:       dbPort,
		User:       getEnv("DB_USER", "postgres"),
		Password:   getEnv("DB_PASSWORD", ""),
		Name:       getEnv("DB_NAME", "control_asistencia"),
		SSLMode:    getEnv("DB_SSL_MODE", "disable"),
		SQLitePath: getEnv("SQLITE_PATH", "data/attendance.db"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:               appPort,
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Timezone:           getEnv("APP_TIMEZONE", "America/Lima"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Attendance policy
	allowSunday, err := strconv.ParseBool(getEnv("ATTENDANCE_HOLIDAY_ALLOW_SUNDAY", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_HOLIDAY_ALLOW_SUNDAY: %w", err)
	}
	config.Attendance = AttendanceConfig{
		HolidayAllowSunday: allowSunday,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q", DriverPostgres, DriverSQLite)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return nil
}

// Location resolves APP_TIMEZONE, the zone of calendar dates and the 08:00 boundary
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.App.Timezone)
}

// LogLevel maps LOG_LEVEL to a slog level, defaulting to info
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
