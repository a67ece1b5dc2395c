package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	API      API      `yaml:"api"`
	Database Database `yaml:"database"`
	Auth     Auth     `yaml:"auth"`
}

type API struct {
	Port        int `yaml:"port" env:"API_PORT" env-default:"8080"`
	SessionPort int `yaml:"session-port" env:"SESSION_PORT" env-default:"8081"`
}

type Database struct {
	// Driver is "sqlite" or "postgres".
	Driver     string `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite"`
	Path       string `yaml:"path" env:"DB_PATH" env-default:"parlor.db"`
	Migrations string `yaml:"migrations" env:"DB_MIGRATIONS" env-default:"migrations/sqlite"`
	ConnStr    string `yaml:"conn-str" env:"DB_CONN_STR" env-default:""`
}

type Auth struct {
	// Provider is "firebase" or "static". Static trusts the bearer
	// token as the identity and must never run in production.
	Provider          string `yaml:"provider" env:"AUTH_PROVIDER" env-default:"static"`
	FirebaseProjectID string `yaml:"firebase-project-id" env:"FIREBASE_PROJECT_ID" env-default:""`
	FirebaseAPIKey    string `yaml:"firebase-api-key" env:"FIREBASE_API_KEY" env-default:""`
}

// MustLoad reads the config file at path, falling back to defaults and
// environment overrides. It panics on a malformed file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Default returns a config built purely from defaults and environment
// variables, for running without a config file.
func Default() *Config {
	config := &Config{}
	if err := cleanenv.ReadEnv(config); err != nil {
		panic(fmt.Errorf("unable to read environment config: %w", err))
	}
	return config
}
