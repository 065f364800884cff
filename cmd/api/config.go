package main

import (
	"fmt"
	"os"

	"interview-booking-api/pkg/config"
	"interview-booking-api/pkg/logger"

	"github.com/joho/godotenv"
)

const (
	defaultEnvFile    = "config/config.env"
	defaultConfigPath = "configs/config.yaml"
)

// load environment variables and configuration
func LoadConfiguration() (*config.Config, error) {
	loadEnvironment()
	cfg, err := loadConfigFile()
	if err != nil {
		return nil, err
	}
	logger.InitLogger(os.Stdout, cfg.LogLevel)
	return cfg, nil
}

// load environment variables from the env file
func loadEnvironment() {
	path := os.Getenv("CONFIG_ENV_FILE")
	if path == "" {
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		logger.GlobalLogger.Printf("No env file at %s, relying on system environment variables: %v", path, err)
	}
}

// load the application configuration from a YAML file
func loadConfigFile() (*config.Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
