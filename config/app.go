package config

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName       string
	Port          string
	Env           string
	Debug         bool
	BaseURL       string
	MediaRoot     string
	ReportTimeout time.Duration
	// Add more fields as needed
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		timeout := 120 * time.Second
		if v := os.Getenv("REPORT_TIMEOUT"); v != "" {
			if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
				timeout = time.Duration(secs) * time.Second
			}
		}
		AppConfig = &Config{
			AppName:       os.Getenv("APP_NAME"),
			Port:          os.Getenv("PORT"),
			Env:           os.Getenv("APP_ENV"),
			Debug:         os.Getenv("DEBUG") == "true",
			BaseURL:       GetEnv("BASE_URL", "http://localhost:8080"),
			MediaRoot:     GetEnv("MEDIA_ROOT", "media"),
			ReportTimeout: timeout,
		}
	})
}

// ReportsDir is the artifact directory for generated report PDFs.
func ReportsDir() string {
	LoadAppConfig()
	return filepath.Join(AppConfig.MediaRoot, "generated_reports")
}
