package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config reads a key from the environment. A .env file is loaded when
// present, real environment variables win in deployment.
func Config(key string) string {
	_ = godotenv.Load(".env")
	return os.Getenv(key)
}
