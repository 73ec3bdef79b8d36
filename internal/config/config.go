package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Scan     ScanConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// RedisConfig holds Redis-specific configuration. An empty Addr disables
// the redis-backed rate limiter.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ScanConfig holds tuning for the scan transaction retry loop and the
// per-actor scan rate limit
type ScanConfig struct {
	MaxTxnAttempts   int
	TxnBackoffMillis int
	RatePerMinute    int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017/?replicaSet=rs0")
	viper.SetDefault("MongoDB.Database", "cafestamp")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("Redis.Addr", "")
	viper.SetDefault("Redis.DB", 0)
	viper.SetDefault("Scan.MaxTxnAttempts", 5)
	viper.SetDefault("Scan.TxnBackoffMillis", 20)
	viper.SetDefault("Scan.RatePerMinute", 60)
	viper.SetDefault("LogLevel", "info")
}
