package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultUpstreamHomeContentURL is the published home document the
// /api/home-content proxy forwards to.
const DefaultUpstreamHomeContentURL = "https://oakwoodsys.com/wp-content/uploads/2025/12/home-content.json"

// Load reads the .env file from the current working directory and sets
// environment variables. If .env does not exist, Load returns an error but
// callers can ignore it and use system env or defaults. Pass one or more paths
// to load from specific files (e.g. ".env"); with no paths, ".env" is used.
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	return godotenv.Load(paths...)
}

// GetEnv returns the value of the environment variable named by key, or fallback
// if the variable is unset or empty.
func GetEnv(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}

// GetEnvInt returns the integer value of the environment variable named by key,
// or fallback if the variable is unset, empty, or not a valid integer.
func GetEnvInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}

// GetEnvDuration returns the duration value of the environment variable named
// by key, or fallback if the variable is unset, empty, not a valid
// time.ParseDuration string, or not positive.
func GetEnvDuration(key string, fallback time.Duration) time.Duration {
	if s := os.Getenv(key); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

// GetEnvList splits a comma-separated environment variable, trimming blanks.
func GetEnvList(key string, fallback []string) []string {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// Site holds every setting the server reads at startup.
type Site struct {
	Port             string
	LogLevel         string
	LogFormat        string
	ContentDir       string
	StaticDir        string
	DBPath           string
	UpstreamURL      string
	UpstreamTimeout  time.Duration
	CarouselInterval time.Duration
	SiteURL          string
	SiteName         string
	AllowedOrigins   []string
}

// FromEnv builds a Site from the environment, applying defaults.
func FromEnv() Site {
	return Site{
		Port:             GetEnv("PORT", "8080"),
		LogLevel:         GetEnv("LOG_LEVEL", "info"),
		LogFormat:        GetEnv("LOG_FORMAT", "json"),
		ContentDir:       GetEnv("CONTENT_DIR", "./content"),
		StaticDir:        GetEnv("STATIC_DIR", "./static"),
		DBPath:           GetEnv("DB_PATH", "oakwood-site.db"),
		UpstreamURL:      GetEnv("UPSTREAM_HOME_CONTENT_URL", DefaultUpstreamHomeContentURL),
		UpstreamTimeout:  GetEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		CarouselInterval: GetEnvDuration("CAROUSEL_INTERVAL", 10*time.Second),
		SiteURL:          strings.TrimRight(GetEnv("SITE_URL", "https://oakwoodsys.com"), "/"),
		SiteName:         GetEnv("SITE_NAME", "Oakwood Systems"),
		AllowedOrigins:   GetEnvList("ALLOWED_ORIGINS", []string{"*"}),
	}
}
