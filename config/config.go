package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the departure board server
type Config struct {
	Port int

	// Transit API
	BaseURL         string
	Coverage        string
	Token           string
	Timeout         time.Duration
	DeparturesCount int
	TimeZone        string

	// Presentation
	BrandsFile  string
	DelayPolicy string
	CORSOrigins []string
}

// LoadEnvFiles loads .env files in order; later files override earlier ones.
// Missing files are skipped.
func LoadEnvFiles(base string, overrides ...string) {
	if err := godotenv.Load(base); err != nil && !os.IsNotExist(err) {
		log.Printf("unable to load %s: %v", base, err)
	}
	for _, o := range overrides {
		if err := godotenv.Overload(o); err != nil && !os.IsNotExist(err) {
			log.Printf("unable to load %s: %v", o, err)
		}
	}
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		Port: getEnvInt("PORT", 4934),

		BaseURL:         getEnv("NAVITIA_BASE_URL", "https://api.sncf.com/v1"),
		Coverage:        getEnv("NAVITIA_COVERAGE", "sncf"),
		Token:           getEnv("NAVITIA_TOKEN", ""),
		Timeout:         getEnvDuration("NAVITIA_TIMEOUT", 5*time.Second),
		DeparturesCount: getEnvInt("DEPARTURES_COUNT", 200),
		TimeZone:        getEnv("STATION_TIMEZONE", "Europe/Paris"),

		BrandsFile:  getEnv("BRANDS_FILE", ""),
		DelayPolicy: getEnv("DELAY_POLICY", "timestamps"),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"*"}),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Printf("ignoring invalid %s=%q", key, value)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("ignoring invalid %s=%q", key, value)
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result := []string{}
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
