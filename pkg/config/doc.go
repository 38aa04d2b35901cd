// Package config loads application configuration structures from the
// process environment with envir and caches them per type.
//
//   - Dotenv files are read with github.com/joho/godotenv. The default .env
//     file is picked up on the first Load if it exists.
//   - Each configuration type is imported once for the lifetime of the
//     process. MustLoad and MustLoadEnv panic instead of returning errors.
//   - ResetCache and ForceReloadConfig drop cached values, mostly for tests.
//
// # Usage
//
//	type DatabaseConfig struct {
//		_ struct{} `envir:"prefix=DB_"`
//
//		Host string `envir:"default=localhost"`
//		Port int    `envir:"default=5432"`
//		User string
//		Pass string `envir:"skip_export"`
//	}
//
//	func main() {
//		if err := config.LoadEnv("./config/.env"); err != nil {
//			log.Fatalf("loading env: %v", err)
//		}
//
//		var db DatabaseConfig
//		if err := config.Load(&db); err != nil {
//			log.Fatalf("parsing env: %v", err)
//		}
//	}
//
// # Error Handling
//
// Load wraps envir errors with ErrParsingConfig, so both errors.Is(err,
// config.ErrParsingConfig) and errors.Is(err, envir.ErrMissing) hold for a
// missing variable. LoadEnv failures wrap ErrLoadingEnvFile.
package config
