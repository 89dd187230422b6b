package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration (assistant conversation context).
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisContextDB int    `mapstructure:"REDIS_CONTEXT_DB"`

	// Gemini API key for the intent classifier.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Default search origin when the caller supplies no location.
	DefaultLat float64 `mapstructure:"DEFAULT_LAT"`
	DefaultLng float64 `mapstructure:"DEFAULT_LNG"`

	// Lab collection settings.
	HomeCollectionFee   int     `mapstructure:"HOME_COLLECTION_FEE"`
	HomeSlotProbability float64 `mapstructure:"HOME_SLOT_PROBABILITY"`
	LabSlotProbability  float64 `mapstructure:"LAB_SLOT_PROBABILITY"`

	// Catalog fixture settings.
	CatalogSeed          int64   `mapstructure:"CATALOG_SEED"`
	FullBodyDiscount     float64 `mapstructure:"FULL_BODY_DISCOUNT"`
	DiabetesCareDiscount float64 `mapstructure:"DIABETES_CARE_DISCOUNT"`
	HeartHealthDiscount  float64 `mapstructure:"HEART_HEALTH_DISCOUNT"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CONTEXT_DB", 0)
	viper.SetDefault("GEMINI_API_KEY", "")
	// Pune city centre, matching the seeded catalog.
	viper.SetDefault("DEFAULT_LAT", 18.5204)
	viper.SetDefault("DEFAULT_LNG", 73.8567)
	viper.SetDefault("HOME_COLLECTION_FEE", 50)
	viper.SetDefault("HOME_SLOT_PROBABILITY", 0.8)
	viper.SetDefault("LAB_SLOT_PROBABILITY", 0.7)
	viper.SetDefault("CATALOG_SEED", 42)
	viper.SetDefault("FULL_BODY_DISCOUNT", 0.35)
	viper.SetDefault("DIABETES_CARE_DISCOUNT", 0.30)
	viper.SetDefault("HEART_HEALTH_DISCOUNT", 0.25)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
