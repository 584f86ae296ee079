// Package config also loads a local .env file into the process environment.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file in the working
// directory, or its parent, once per process. Nothing is logged because
// logging is configured from the environment afterwards.
func LoadEnv() {
	once.Do(func() {
		for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
			if _, err := os.Stat(envFile); err != nil {
				continue
			}
			_ = LoadEnvFile(envFile)
			return
		}
	})
}

// LoadEnvFile loads envFile. Variables already set in the environment win.
func LoadEnvFile(envFile string) error {
	return godotenv.Load(envFile)
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
