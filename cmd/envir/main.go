// Command envir inspects and moves environment variables between stores:
// the process environment, dotenv/YAML/JSON files, S3 objects, Redis hashes,
// Postgres tables and MongoDB collections.
//
//	envir dump   [-from URI] [-format dotenv|yaml|json]
//	envir keys   [-from URI]
//	envir get    [-from URI] KEY
//	envir set    [-to URI] [-hidden] [-seal] KEY [VALUE]
//	envir copy   -from URI -to URI [-keys A,B] [-seal A,B]
//	envir expand [-from URI] TEXT
//	envir ping   [-from URI]
//
// Values sealed with ENVIR_SECRET_KEY are opened on read. When the key is set,
// copy seals what it writes to persistent stores and set seals on -seal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/envir/internal/source"
	"github.com/dmitrymomot/envir/pkg/config"
	"github.com/dmitrymomot/envir/pkg/environment"
	"github.com/dmitrymomot/envir/pkg/logger"
	"github.com/dmitrymomot/envir/pkg/secrets"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A local .env is optional.
	if err := config.LoadEnv(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "envir: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.FromEnv(
		logger.WithOutput(os.Stderr),
		logger.WithContextExtractors(environment.LoggerExtractor()),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "envir: %v\n", err)
		os.Exit(1)
	}

	env, err := environment.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "envir: %v\n", err)
		os.Exit(1)
	}
	ctx = environment.WithContext(ctx, env)

	var defaults settings
	if err := config.Load(&defaults); err != nil {
		fmt.Fprintf(os.Stderr, "envir: %v\n", err)
		os.Exit(1)
	}

	opts := []source.Option{source.WithLogger(log)}

	var secretCfg secrets.Config
	if err := config.Load(&secretCfg); err != nil {
		fmt.Fprintf(os.Stderr, "envir: %v\n", err)
		os.Exit(1)
	}
	if c, err := secrets.FromConfig(secretCfg); err == nil {
		opts = append(opts, source.WithCipher(c))
	} else if !errors.Is(err, secrets.ErrNoKey) {
		fmt.Fprintf(os.Stderr, "envir: %v\n", err)
		os.Exit(1)
	}

	app := &cli{
		stdout: os.Stdout,
		stderr: os.Stderr,
		prompt: surveyPrompter{},
		log:    log,
		open: func(ctx context.Context, uri string, extra ...source.Option) (*source.Handle, error) {
			return source.Open(ctx, uri, append(opts, extra...)...)
		},
		defaults: defaults,
	}

	if err := app.run(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, errUsage) {
			log.ErrorContext(ctx, "command failed", logger.Error(err))
			fmt.Fprintf(os.Stderr, "envir: %v\n", err)
		}
		os.Exit(1)
	}
}
