package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// envFiles are tried in order; the first one that loads wins.
var envFiles = []string{".env", ".env.local"}

// loadEnvFile loads environment variables from the first available .env file.
// Existing process environment variables are not overwritten.
func loadEnvFile() error {
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", path)
		return nil
	}
	return fmt.Errorf("no .env file found")
}
