// Package environment provides .env loading and struct-tag based
// configuration parsing from environment variables.
package environment

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Load loads environment variables from a .env file in the working
// directory. A missing file is not an error worth stopping startup for, so
// callers typically log and continue.
func Load() error {
	return godotenv.Load()
}

// LoadPath loads environment variables from the given .env file path,
// falling back to the default lookup when the path is empty.
func LoadPath(p string) error {
	if p != "" {
		return godotenv.Load(p)
	}
	return godotenv.Load()
}

// GetEnvOrDefault retrieves an environment variable value, returning the
// fallback when unset.
func GetEnvOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// PrefixKey joins a namespace prefix and key with an underscore. An empty
// prefix returns the key unchanged.
func PrefixKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return fmt.Sprintf("%s_%s", prefix, key)
}

// GetPrefixEnvOrDefault retrieves a namespaced environment variable value,
// returning the fallback when unset.
func GetPrefixEnvOrDefault(prefix, key, fallback string) string {
	return GetEnvOrDefault(PrefixKey(prefix, key), fallback)
}
