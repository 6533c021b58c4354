package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AssetsDir string

	LogLevel string
	Pretty   bool

	WatermarkText    string
	WatermarkOpacity int

	MaxConcurrent int
	ZipMaxMB      int
}

func Load() Config {
	cfg := Config{
		AssetsDir:        getEnv("GOMOCKUP_ASSETS_DIR", "./assets"),
		LogLevel:         strings.ToLower(getEnv("GOMOCKUP_LOG_LEVEL", "info")),
		Pretty:           getEnvBool("GOMOCKUP_PRETTY_LOG", false),
		WatermarkText:    getEnv("GOMOCKUP_WATERMARK_TEXT", ""),
		WatermarkOpacity: getEnvInt("GOMOCKUP_WATERMARK_OPACITY", -1),
		MaxConcurrent:    getEnvInt("GOMOCKUP_MAX_CONCURRENT", 4),
		ZipMaxMB:         getEnvInt("GOMOCKUP_ZIP_MAX_MB", 20),
	}

	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 1
	}
	if cfg.ZipMaxMB < 1 {
		cfg.ZipMaxMB = 1
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
