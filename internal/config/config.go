package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	minSecretKeyLength = 32
	configFileEnv      = "SITELOG_CONFIG"
)

var insecureSecretKeys = []string{
	"change_me_in_production",
	"replace_with_at_least_32_random_characters",
}

type Config struct {
	SecretKey    string
	DBPath       string
	Port         string
	Location     *time.Location
	CookieSecure bool
	Uploads      UploadConfig
	Geocoder     GeocoderConfig
	Weather      WeatherConfig
	HTTPTimeout  time.Duration
}

type UploadConfig struct {
	Dir      string
	BaseURL  string
	MaxBytes int64
}

type GeocoderConfig struct {
	URL               string
	RequestsPerSecond float64
}

type WeatherConfig struct {
	ForecastURL string
	ArchiveURL  string
}

// Load reads settings from the environment, optionally layered over the file
// named by SITELOG_CONFIG.
func Load() (Config, error) {
	settings, err := readSettings()
	if err != nil {
		return Config{}, err
	}

	secretKey, err := resolveSecretKey(settings.GetString("secret_key"))
	if err != nil {
		return Config{}, err
	}
	port, err := resolvePort(settings.GetString("port"))
	if err != nil {
		return Config{}, err
	}
	rps := settings.GetFloat64("geocoder_rps")
	if rps <= 0 {
		return Config{}, fmt.Errorf("GEOCODER_RPS must be positive, got %v", rps)
	}
	timeout := settings.GetDuration("http_timeout")
	if timeout <= 0 {
		return Config{}, fmt.Errorf("HTTP_TIMEOUT must be a positive duration, got %q", settings.GetString("http_timeout"))
	}

	return Config{
		SecretKey:    secretKey,
		DBPath:       settings.GetString("db_path"),
		Port:         port,
		Location:     loadLocation(settings.GetString("tz")),
		CookieSecure: settings.GetBool("cookie_secure"),
		Uploads: UploadConfig{
			Dir:      settings.GetString("upload_dir"),
			BaseURL:  settings.GetString("upload_base_url"),
			MaxBytes: settings.GetInt64("upload_max_bytes"),
		},
		Geocoder: GeocoderConfig{
			URL:               settings.GetString("geocoder_url"),
			RequestsPerSecond: rps,
		},
		Weather: WeatherConfig{
			ForecastURL: settings.GetString("weather_forecast_url"),
			ArchiveURL:  settings.GetString("weather_archive_url"),
		},
		HTTPTimeout: timeout,
	}, nil
}

// DatabasePath resolves only DB_PATH, for maintenance commands that never
// start the server and so need no SECRET_KEY.
func DatabasePath() (string, error) {
	settings, err := readSettings()
	if err != nil {
		return "", err
	}
	return settings.GetString("db_path"), nil
}

func readSettings() (*viper.Viper, error) {
	settings := viper.New()
	registerDefaults(settings)
	settings.AutomaticEnv()

	if path := strings.TrimSpace(os.Getenv(configFileEnv)); path != "" {
		settings.SetConfigFile(path)
		if err := settings.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return settings, nil
}

func registerDefaults(settings *viper.Viper) {
	settings.SetDefault("db_path", filepath.Join("data", "sitelog.db"))
	settings.SetDefault("port", "8080")
	settings.SetDefault("tz", "UTC")
	settings.SetDefault("cookie_secure", false)
	settings.SetDefault("upload_dir", filepath.Join("data", "uploads"))
	settings.SetDefault("upload_base_url", "/uploads")
	settings.SetDefault("upload_max_bytes", 10<<20)
	settings.SetDefault("geocoder_url", "https://nominatim.openstreetmap.org/search")
	settings.SetDefault("geocoder_rps", 1)
	settings.SetDefault("weather_forecast_url", "https://api.open-meteo.com/v1/forecast")
	settings.SetDefault("weather_archive_url", "https://archive-api.open-meteo.com/v1/archive")
	settings.SetDefault("http_timeout", "10s")
}

func resolveSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	for _, placeholder := range insecureSecretKeys {
		if strings.EqualFold(secret, placeholder) {
			return "", errors.New("SECRET_KEY uses an insecure placeholder value")
		}
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func resolvePort(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		return "8080", nil
	}
	value, err := strconv.Atoi(port)
	if err != nil || value < 1 || value > 65535 {
		return "", fmt.Errorf("PORT must be a number between 1 and 65535, got %q", port)
	}
	return strconv.Itoa(value), nil
}

func loadLocation(name string) *time.Location {
	location, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}
