package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Providers ProvidersConfig
	Engine    EngineConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type JWTConfig struct {
	SecretKey string
}

// ProvidersConfig holds base URLs and credentials for the external travel
// search APIs. An empty base URL disables the live tier for that provider.
type ProvidersConfig struct {
	FlightBaseURL   string
	HotelBaseURL    string
	CarBaseURL      string
	TicketBaseURL   string
	MetadataBaseURL string

	FlightAPIKey   string
	HotelAPIKey    string
	CarAPIKey      string
	TicketUsername string
	TicketPassword string
	MetadataAPIKey string
}

type EngineConfig struct {
	WorkerCount     int
	TargetTripCount int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	workers, err := strconv.Atoi(getEnv("ENGINE_WORKER_COUNT", "8"))
	if err != nil || workers <= 0 {
		return nil, errors.New("invalid engine worker count")
	}

	targetTrips, err := strconv.Atoi(getEnv("ENGINE_TARGET_TRIP_COUNT", "10"))
	if err != nil || targetTrips <= 0 {
		return nil, errors.New("invalid engine target trip count")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "EncoreTrips API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "encore_trips"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Providers: ProvidersConfig{
			FlightBaseURL:   getEnv("FLIGHT_PROVIDER_BASE_URL", ""),
			HotelBaseURL:    getEnv("HOTEL_PROVIDER_BASE_URL", ""),
			CarBaseURL:      getEnv("CAR_PROVIDER_BASE_URL", ""),
			TicketBaseURL:   getEnv("TICKET_PROVIDER_BASE_URL", ""),
			MetadataBaseURL: getEnv("METADATA_PROVIDER_BASE_URL", ""),
			FlightAPIKey:    getEnv("FLIGHT_PROVIDER_API_KEY", ""),
			HotelAPIKey:     getEnv("HOTEL_PROVIDER_API_KEY", ""),
			CarAPIKey:       getEnv("CAR_PROVIDER_API_KEY", ""),
			TicketUsername:  getEnv("TICKET_PROVIDER_USERNAME", ""),
			TicketPassword:  getEnv("TICKET_PROVIDER_PASSWORD", ""),
			MetadataAPIKey:  getEnv("METADATA_PROVIDER_API_KEY", ""),
		},
		Engine: EngineConfig{
			WorkerCount:     workers,
			TargetTripCount: targetTrips,
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
