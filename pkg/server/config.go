package server

import (
	"os"
	"strconv"
)

// MaxDPI bounds preview resolution; a 40x20 cm panel at 1200 dpi is
// already an 18897x9449 image.
const MaxDPI = 1200.0

// Config holds the preview server settings.
type Config struct {
	Addr  string
	DPI   float64
	Sheet bool // fill the sheet material behind PNG strokes
}

// LoadConfig reads HITBOX_ADDR, HITBOX_DPI and HITBOX_SHEET. A DPI above
// MaxDPI falls back to the default.
func LoadConfig() Config {
	dpi := getEnvAsFloat("HITBOX_DPI", 100)
	if dpi > MaxDPI {
		dpi = 100
	}
	return Config{
		Addr:  getEnv("HITBOX_ADDR", ":8080"),
		DPI:   dpi,
		Sheet: getEnvAsBool("HITBOX_SHEET", false),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}
