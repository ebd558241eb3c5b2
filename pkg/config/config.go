package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Ollama   OllamaConfig
	Places   PlacesConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type OllamaConfig struct {
	BaseURL         string
	DefaultModel    string
	KeepAlive       string
	GenerateTimeout time.Duration
	ListTimeout     time.Duration
	StatusTimeout   time.Duration
}

type PlacesConfig struct {
	NominatimURL    string
	OverpassURL     string
	GeocodeTimeout  time.Duration
	OverpassTimeout time.Duration
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env file is fine, environment variables are used directly
	// (useful for Docker/K8s)

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "180"))
	generateTimeout, _ := strconv.Atoi(getEnv("OLLAMA_GENERATE_TIMEOUT", "120"))
	listTimeout, _ := strconv.Atoi(getEnv("OLLAMA_LIST_TIMEOUT", "10"))
	statusTimeout, _ := strconv.Atoi(getEnv("OLLAMA_STATUS_TIMEOUT", "5"))
	geocodeTimeout, _ := strconv.Atoi(getEnv("PLACES_GEOCODE_TIMEOUT", "10"))
	overpassTimeout, _ := strconv.Atoi(getEnv("PLACES_OVERPASS_TIMEOUT", "30"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "wanderplan"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Ollama: OllamaConfig{
			BaseURL:         getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			DefaultModel:    getEnv("OLLAMA_DEFAULT_MODEL", "llama3"),
			KeepAlive:       getEnv("OLLAMA_KEEP_ALIVE", "5m"),
			GenerateTimeout: time.Duration(generateTimeout) * time.Second,
			ListTimeout:     time.Duration(listTimeout) * time.Second,
			StatusTimeout:   time.Duration(statusTimeout) * time.Second,
		},
		Places: PlacesConfig{
			NominatimURL:    getEnv("PLACES_NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
			OverpassURL:     getEnv("PLACES_OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
			GeocodeTimeout:  time.Duration(geocodeTimeout) * time.Second,
			OverpassTimeout: time.Duration(overpassTimeout) * time.Second,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
