// Package config loads the environment-driven configuration. Everything
// has a development-friendly default so the binary runs with no setup.
package config

import "os"

type Config struct {
	ListenAddr       string
	DBPath           string
	SessionSecret    string
	SessionRedisAddr string
	ImageHostURL     string
	ImageHostKey     string
	UploadsPath      string
	LogFile          string
}

func Load() *Config {
	return &Config{
		ListenAddr:       getEnv("LISTEN_ADDR", ":8080"),
		DBPath:           getEnv("DB_PATH", "campusfound.sqlite3"),
		SessionSecret:    getEnv("SESSION_SECRET", ""),
		SessionRedisAddr: getEnv("SESSION_REDIS_ADDR", ""),
		ImageHostURL:     getEnv("IMAGE_HOST_URL", "https://api.imgbb.com/1/upload"),
		ImageHostKey:     getEnv("IMAGE_HOST_KEY", ""),
		UploadsPath:      getEnv("UPLOADS_PATH", "uploads"),
		LogFile:          getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
