package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/dmitrymomot/envir"
)

// configCache stores loaded configuration values keyed by type name.
type configCache struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*sync.Once
}

var (
	globalCache = &configCache{
		values: make(map[string]any),
		onces:  make(map[string]*sync.Once),
	}

	defaultEnvLoaded sync.Once
)

// Load imports the process environment into the structure v points to.
// Each configuration type is imported once; later calls for the same type
// return the cached copy and ignore opts.
//
// The default .env file is read on the first call if it exists.
//
// Example:
//
//	type DatabaseConfig struct {
//		_ struct{} `envir:"prefix=DB_"`
//
//		Host     string `envir:"default=localhost"`
//		Port     int    `envir:"default=5432"`
//		Username string `envir:"name=USER"`
//		Password string `envir:"name=PASS, skip_export"`
//	}
//
//	var dbConfig DatabaseConfig
//	err := config.Load(&dbConfig)
//	if err != nil {
//		// Handle error
//	}
func Load[T any](v *T, opts ...envir.Option) error {
	defaultEnvLoaded.Do(func() {
		// The .env file is optional.
		_ = loadEnvFiles(defaultEnvFile)
	})
	if v == nil {
		return ErrNilPointer
	}

	typeName := getTypeName[T]()

	globalCache.mu.RLock()
	if cached, ok := globalCache.values[typeName]; ok {
		*v = cached.(T)
		globalCache.mu.RUnlock()
		return nil
	}
	globalCache.mu.RUnlock()

	globalCache.mu.Lock()
	once, exists := globalCache.onces[typeName]
	if !exists {
		once = new(sync.Once)
		globalCache.onces[typeName] = once
	}
	globalCache.mu.Unlock()

	var err error

	once.Do(func() {
		loaded, loadErr := envir.FromEnv[T](opts...)
		if loadErr != nil {
			err = errors.Join(ErrParsingConfig, loadErr)

			// A failed load must not poison later attempts.
			globalCache.mu.Lock()
			delete(globalCache.onces, typeName)
			globalCache.mu.Unlock()
			return
		}

		*v = loaded
		globalCache.mu.Lock()
		globalCache.values[typeName] = loaded
		globalCache.mu.Unlock()
	})

	if err != nil {
		return err
	}

	globalCache.mu.RLock()
	defer globalCache.mu.RUnlock()
	if cached, ok := globalCache.values[typeName]; ok {
		*v = cached.(T)
		return nil
	}

	return ErrConfigNotLoaded
}

// MustLoad works like Load but panics if configuration loading fails.
//
// Example:
//
//	var dbConfig DatabaseConfig
//	config.MustLoad(&dbConfig)
func MustLoad[T any](v *T, opts ...envir.Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
}

// ResetCache forgets every loaded configuration.
func ResetCache() {
	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()

	globalCache.values = make(map[string]any)
	globalCache.onces = make(map[string]*sync.Once)
}

// ForceReloadConfig drops the cached value for T and loads it again.
func ForceReloadConfig[T any](v *T, opts ...envir.Option) error {
	typeName := getTypeName[T]()

	globalCache.mu.Lock()
	delete(globalCache.values, typeName)
	delete(globalCache.onces, typeName)
	globalCache.mu.Unlock()

	return Load(v, opts...)
}

func getTypeName[T any]() string {
	t := reflect.TypeFor[T]()
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
