package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort       string
	DatabaseDriver string // postgres or sqlite
	DatabaseDSN    string
	CORSOrigins    string
	StoragePath    string // folder that holds uploaded sticker images
	PublicBaseURL  string // prefix of public image URLs
	PrintSecret    string
	PrintLinkTTL   time.Duration
}

const defaultDSN = "host=localhost user=postgres password=postgres dbname=stickers port=5432 sslmode=disable"

func Load() *Config {
	// without a .env file only the process environment is used
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] could not read .env: %v", err)
	}

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "5000"),
		DatabaseDriver: strings.ToLower(getEnv("DATABASE_DRIVER", "postgres")),
		DatabaseDSN:    getEnv("DATABASE_DSN", defaultDSN),
		CORSOrigins:    getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		StoragePath:    getEnv("STORAGE_PATH", "./sticker-images"),
		PrintSecret:    getEnv("PRINT_SECRET", ""),
		PrintLinkTTL:   getDuration("PRINT_LINK_TTL", 24*time.Hour),
	}
	cfg.PublicBaseURL = strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:"+cfg.HTTPPort), "/")

	if cfg.DatabaseDriver != "postgres" && cfg.DatabaseDriver != "sqlite" {
		log.Fatalf("[FATAL] DATABASE_DRIVER %q is not supported (postgres | sqlite)", cfg.DatabaseDriver)
	}
	if cfg.DatabaseDriver == "postgres" && cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN is using the default value, set your own Postgres DSN for production.")
	}
	if cfg.PrintSecret == "" {
		log.Println("[WARN] PRINT_SECRET is not set, print links are disabled.")
	} else if len(cfg.PrintSecret) < 32 {
		log.Fatal("[FATAL] PRINT_SECRET must be at least 32 characters.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS is using the default value, set your own domain for production.")
	}

	return cfg
}

// Origins splits CORS_ALLOWED_ORIGINS into a trimmed list.
func (c *Config) Origins() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[WARN] %s is invalid (%q), using default %s", key, v, def)
		return def
	}
	return d
}
