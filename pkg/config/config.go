package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/arnavshah/freewindow-api-go/pkg/availability"
)

// Config holds the process settings read from the environment.
type Config struct {
	Port             string
	GinMode          string
	AppEnv           string
	LogLevel         string
	DatabaseURL      string
	DataPath         string
	JWTSecret        string
	APIMasterSecret  string
	AdminUsername    string
	AdminPassword    string
	DefaultRateLimit int

	Window availability.Window
	Step   availability.Hour
	Days   []string
}

// LoadDotEnv loads the first .env found in the working directory or its
// parents. Variables already set in the environment win.
func LoadDotEnv() {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// Load reads the environment and validates the working window. An invalid
// window is fatal for the whole process.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getenv("PORT", "8000"),
		GinMode:         os.Getenv("GIN_MODE"),
		AppEnv:          getenv("APP_ENV", "production"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DataPath:        getenv("DATA_PATH", "api_keys.db"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		APIMasterSecret: os.Getenv("API_MASTER_SECRET"),
		AdminUsername:   getenv("ADMIN_USERNAME", "admin"),
		AdminPassword:   getenv("ADMIN_PASSWORD", "admin123"),
		Days:            ParseDays(os.Getenv("DAYS")),
	}

	var err error
	if cfg.DefaultRateLimit, err = getint("DEFAULT_RATE_LIMIT", 10000); err != nil {
		return nil, err
	}
	start, err := getint("WINDOW_START", 8)
	if err != nil {
		return nil, err
	}
	end, err := getint("WINDOW_END", 18)
	if err != nil {
		return nil, err
	}
	if cfg.Window, err = availability.NewWindow(start, end); err != nil {
		return nil, err
	}

	cfg.Step = availability.DefaultStep
	if raw := os.Getenv("SCAN_STEP"); raw != "" {
		step, err := strconv.ParseFloat(raw, 64)
		if err != nil || step <= 0 {
			return nil, fmt.Errorf("%w: SCAN_STEP=%q", availability.ErrInvalidStep, raw)
		}
		cfg.Step = availability.Hour(step)
	}
	return cfg, nil
}

// ParseDays splits a comma separated day list. Empty input yields the
// default Monday to Friday.
func ParseDays(raw string) []string {
	var days []string
	for _, d := range strings.Split(raw, ",") {
		if d = strings.TrimSpace(d); d != "" {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return append([]string(nil), availability.DefaultDays...)
	}
	return days
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}
