package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL        string
	JWTSecretKey       string
	AdminPasswordHash  string
	ServerPort         int
	LogLevel           slog.Level
	CORSAllowedOrigins []string

	Schedule ScheduleConfig

	// KnockoutDateOffset сдвигает время новых матчей плей-офф относительно текущего момента.
	KnockoutDateOffset time.Duration

	R2 R2Config

	// BackupInterval == 0 отключает периодический бэкап.
	BackupInterval time.Duration
}

type ScheduleConfig struct {
	Fields           int
	SlotDuration     time.Duration
	MatchesPerDay    int
	FirstKickoffHour int
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

// R2Enabled сообщает, заданы ли все параметры R2.
func (c *Config) R2Enabled() bool {
	r := c.R2
	return r.AccountID != "" && r.AccessKeyID != "" && r.SecretAccessKey != "" && r.BucketName != "" && r.PublicBaseURL != ""
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*Config, error) {
	dbURL := getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := intVar(getenv, "SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	var level slog.Level
	if raw := getenv("LOG_LEVEL"); raw != "" {
		if err := level.UnmarshalText([]byte(raw)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL:        dbURL,
		JWTSecretKey:       jwtKey,
		AdminPasswordHash:  getenv("ADMIN_PASSWORD_HASH"),
		ServerPort:         port,
		LogLevel:           level,
		CORSAllowedOrigins: splitList(getenv("CORS_ALLOWED_ORIGINS"), []string{"*"}),
		R2: R2Config{
			AccountID:       getenv("R2_ACCOUNT_ID"),
			AccessKeyID:     getenv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: getenv("R2_SECRET_ACCESS_KEY"),
			BucketName:      getenv("R2_BUCKET_NAME"),
			PublicBaseURL:   getenv("R2_PUBLIC_BASE_URL"),
		},
	}

	if cfg.Schedule.Fields, err = intVar(getenv, "SCHEDULE_FIELDS", 3); err != nil {
		return nil, err
	}
	slotMinutes, err := intVar(getenv, "SCHEDULE_SLOT_MINUTES", 120)
	if err != nil {
		return nil, err
	}
	cfg.Schedule.SlotDuration = time.Duration(slotMinutes) * time.Minute
	if cfg.Schedule.MatchesPerDay, err = intVar(getenv, "SCHEDULE_MATCHES_PER_DAY", 2); err != nil {
		return nil, err
	}
	if cfg.Schedule.FirstKickoffHour, err = intVar(getenv, "SCHEDULE_FIRST_KICKOFF_HOUR", 14); err != nil {
		return nil, err
	}
	if cfg.Schedule.Fields <= 0 || slotMinutes <= 0 || cfg.Schedule.MatchesPerDay <= 0 {
		return nil, fmt.Errorf("schedule settings must be positive")
	}
	if cfg.Schedule.FirstKickoffHour < 0 || cfg.Schedule.FirstKickoffHour > 23 {
		return nil, fmt.Errorf("SCHEDULE_FIRST_KICKOFF_HOUR must be between 0 and 23, got %d", cfg.Schedule.FirstKickoffHour)
	}

	offsetDays, err := intVar(getenv, "KNOCKOUT_DATE_OFFSET_DAYS", 7)
	if err != nil {
		return nil, err
	}
	if offsetDays < 0 {
		return nil, fmt.Errorf("KNOCKOUT_DATE_OFFSET_DAYS must not be negative, got %d", offsetDays)
	}
	cfg.KnockoutDateOffset = time.Duration(offsetDays) * 24 * time.Hour

	if raw := getenv("BACKUP_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid BACKUP_INTERVAL environment variable: %w", err)
		}
		if d < 0 {
			return nil, fmt.Errorf("BACKUP_INTERVAL must not be negative, got %s", d)
		}
		cfg.BackupInterval = d
	}

	return cfg, nil
}

func intVar(getenv func(string) string, name string, def int) (int, error) {
	raw := getenv(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}
	return v, nil
}

func splitList(raw string, def []string) []string {
	if strings.TrimSpace(raw) == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
