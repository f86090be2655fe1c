package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	SotiFeed  SotiFeedConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret string
}

// SotiFeedConfig describes the MQTT bridge over which the MDM connector
// publishes presence snapshots.
type SotiFeedConfig struct {
	Broker         string
	ClientID       string
	Username       string
	Password       string
	PresenceTopic  string
	QoS            int
	KeepAlive      int
	ConnectTimeout int
	BatchSize      int
	BatchTimeout   time.Duration
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	viper.SetDefault("SOTI_FEED_QOS", 1)
	viper.SetDefault("SOTI_FEED_KEEPALIVE", 30)
	viper.SetDefault("SOTI_FEED_CONNECT_TIMEOUT", 10)
	viper.SetDefault("SOTI_FEED_BATCH_SIZE", 100)
	viper.SetDefault("SOTI_FEED_BATCH_TIMEOUT_SEC", 5)
	viper.SetDefault("RATE_LIMIT_GENERAL_RPS", 50.0)
	viper.SetDefault("RATE_LIMIT_GENERAL_BURST", 100)

	config := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Host:        viper.GetString("SERVER_HOST"),
			Environment: viper.GetString("ENVIRONMENT"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		SotiFeed: SotiFeedConfig{
			Broker:         viper.GetString("SOTI_FEED_BROKER"),
			ClientID:       viper.GetString("SOTI_FEED_CLIENT_ID"),
			Username:       viper.GetString("SOTI_FEED_USERNAME"),
			Password:       viper.GetString("SOTI_FEED_PASSWORD"),
			PresenceTopic:  viper.GetString("SOTI_FEED_PRESENCE_TOPIC"),
			QoS:            viper.GetInt("SOTI_FEED_QOS"),
			KeepAlive:      viper.GetInt("SOTI_FEED_KEEPALIVE"),
			ConnectTimeout: viper.GetInt("SOTI_FEED_CONNECT_TIMEOUT"),
			BatchSize:      viper.GetInt("SOTI_FEED_BATCH_SIZE"),
			BatchTimeout:   time.Duration(viper.GetInt("SOTI_FEED_BATCH_TIMEOUT_SEC")) * time.Second,
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   viper.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: viper.GetInt("RATE_LIMIT_GENERAL_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   viper.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
