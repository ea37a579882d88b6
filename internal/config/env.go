package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// envLookup resolves environment fallbacks. Process environment wins over
// values read from a .env file in the working directory.
type envLookup func(key string) (string, bool)

func newEnvLookup() envLookup {
	dotenv, err := godotenv.Read(".env")
	if err != nil {
		dotenv = nil
	}
	return func(key string) (string, bool) {
		if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
			return value, true
		}
		if value, ok := dotenv[key]; ok && strings.TrimSpace(value) != "" {
			return value, true
		}
		return "", false
	}
}

func (lookup envLookup) first(keys ...string) (string, bool) {
	if lookup == nil {
		return "", false
	}
	for _, key := range keys {
		if value, ok := lookup(key); ok {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}
