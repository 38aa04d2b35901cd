package config

import (
	"context"
	"errors"
	"maps"
	"os"

	"github.com/joho/godotenv"

	"github.com/dmitrymomot/envir/pkg/store"
)

const defaultEnvFile = ".env"

// LoadEnv reads dotenv files into the process environment. Later files
// override earlier ones, and variables already set in the process are never
// replaced. With no paths the .env file of the working directory is read.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{defaultEnvFile}
	}
	return loadEnvFiles(paths...)
}

// MustLoadEnv works like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(err)
	}
}

func loadEnvFiles(paths ...string) error {
	entries, err := godotenv.Read(paths...)
	if err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}

	maps.DeleteFunc(entries, func(key, _ string) bool {
		_, set := os.LookupEnv(key)
		return set
	})

	if err := store.NewEnv().Apply(context.Background(), entries); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}
