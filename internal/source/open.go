package source

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/dmitrymomot/envir"
	"github.com/dmitrymomot/envir/pkg/file"
	"github.com/dmitrymomot/envir/pkg/logger"
	"github.com/dmitrymomot/envir/pkg/mongo"
	"github.com/dmitrymomot/envir/pkg/pg"
	"github.com/dmitrymomot/envir/pkg/redis"
	"github.com/dmitrymomot/envir/pkg/secrets"
	"github.com/dmitrymomot/envir/pkg/store"
)

// Handle is an opened store. Close releases the connections it holds.
type Handle struct {
	store.Store
	Location Location

	ping    func(context.Context) error
	closers []func() error
}

// Ping checks that the backend is reachable. Local stores are probed by
// reading a snapshot.
func (h *Handle) Ping(ctx context.Context) error {
	if h.ping != nil {
		return h.ping(ctx)
	}
	_, err := h.Snapshot(ctx)
	return err
}

// Close releases every resource held by the handle.
func (h *Handle) Close() error {
	var errs []error
	for i := len(h.closers) - 1; i >= 0; i-- {
		errs = append(errs, h.closers[i]())
	}
	return errors.Join(errs...)
}

// Option configures Open.
type Option func(*options)

type options struct {
	cipher *secrets.Cipher
	seal   []string
	plain  bool
	logger *slog.Logger
}

// WithCipher opens sealed values on read. Writes to every store but the
// process environment are sealed.
func WithCipher(c *secrets.Cipher) Option {
	return func(o *options) { o.cipher = c }
}

// WithSealedKeys restricts sealing on write to keys.
func WithSealedKeys(keys ...string) Option {
	return func(o *options) { o.seal = append(o.seal, keys...) }
}

// WithPlainWrites keeps reads decrypted but writes values unsealed.
func WithPlainWrites() Option {
	return func(o *options) { o.plain = true }
}

// WithLogger sets the logger used for connection and migration output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Open parses raw and connects to the store it names.
func Open(ctx context.Context, raw string, opts ...Option) (*Handle, error) {
	o := &options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(o)
	}

	loc, err := Parse(raw)
	if err != nil {
		return nil, err
	}

	h := &Handle{Location: loc}
	if err := h.open(ctx, o); err != nil {
		_ = h.Close()
		return nil, err
	}

	if o.cipher != nil {
		sealed := &sealedStore{Decrypting: secrets.Decrypt(h.Store, o.cipher)}
		if loc.Kind == KindEnv || o.plain {
			sealed.sink = h.Store
		} else {
			sealed.sink = secrets.Encrypt(h.Store, o.cipher, secrets.WithKeys(o.seal...))
		}
		h.Store = sealed
	}

	o.logger.DebugContext(ctx, "store opened", logger.Store(string(loc.Kind)))
	return h, nil
}

func (h *Handle) open(ctx context.Context, o *options) error {
	loc := h.Location

	switch loc.Kind {
	case KindEnv:
		h.Store = store.NewEnv(store.WithPrefix(loc.Prefix))

	case KindFile:
		var fopts []file.LocalOption
		if loc.Format != "" {
			fopts = append(fopts, file.WithFormat(loc.Format))
		}
		s, err := file.NewLocal(loc.Path, fopts...)
		if err != nil {
			return err
		}
		h.Store = s

	case KindS3:
		cfg, err := loadConfig[file.S3Config](map[string]string{
			"ENVIR_S3_BUCKET":         loc.Bucket,
			"ENVIR_S3_KEY":            loc.Key,
			"ENVIR_S3_REGION":         loc.Region,
			"ENVIR_S3_ENDPOINT":       loc.Endpoint,
			"ENVIR_S3_FORCEPATHSTYLE": boolParam(loc.PathStyle),
			"ENVIR_S3_FORMAT":         string(loc.Format),
		})
		if err != nil {
			return err
		}
		s, err := file.NewS3(ctx, cfg)
		if err != nil {
			return err
		}
		h.Store = s

	case KindRedis:
		cfg, err := loadConfig[redis.Config](map[string]string{
			"REDIS_URL":  loc.DSN,
			"REDIS_HASH": loc.Container,
		})
		if err != nil {
			return err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		h.closers = append(h.closers, client.Close)
		h.ping = redis.Healthcheck(client)
		s, err := redis.NewStore(client, cfg.Hash)
		if err != nil {
			return err
		}
		h.Store = s

	case KindPostgres:
		cfg, err := loadConfig[pg.Config](map[string]string{
			"PG_CONN_URL": loc.DSN,
			"PG_TABLE":    loc.Container,
		})
		if err != nil {
			return err
		}
		pool, err := pg.Connect(ctx, cfg)
		if err != nil {
			return err
		}
		h.closers = append(h.closers, func() error { pool.Close(); return nil })
		h.ping = pg.Healthcheck(pool)
		if loc.Migrate {
			if err := pg.Migrate(ctx, pool, cfg, o.logger); err != nil {
				return err
			}
		}
		s, err := pg.NewStore(pool, cfg.Table)
		if err != nil {
			return err
		}
		h.Store = s

	case KindMongo:
		cfg, err := loadConfig[mongo.Config](map[string]string{
			"MONGODB_URL":        loc.DSN,
			"MONGODB_DATABASE":   loc.Database,
			"MONGODB_COLLECTION": loc.Container,
		})
		if err != nil {
			return err
		}
		client, err := mongo.New(ctx, cfg)
		if err != nil {
			return err
		}
		h.closers = append(h.closers, func() error {
			return client.Disconnect(context.WithoutCancel(ctx))
		})
		h.ping = mongo.Healthcheck(client)
		h.Store = mongo.NewStore(client.Database(cfg.Database).Collection(cfg.Collection))
	}

	return nil
}

// loadConfig imports a provider configuration from the process environment
// with the non-empty overrides taking precedence.
func loadConfig[T any](overrides map[string]string) (T, error) {
	set := make(map[string]string, len(overrides))
	for k, v := range overrides {
		if v != "" {
			set[k] = v
		}
	}

	m, err := store.NewLayered(store.NewEnv(), store.NewMap(set)).Snapshot(context.Background())
	if err != nil {
		var zero T
		return zero, err
	}
	return envir.From[T](m)
}

func boolParam(b bool) string {
	if b {
		return "true"
	}
	return ""
}

// sealedStore reads through a Decrypting source and writes to sink.
type sealedStore struct {
	*secrets.Decrypting
	sink store.Sink
}

func (s *sealedStore) Apply(ctx context.Context, entries map[string]string) error {
	return s.sink.Apply(ctx, entries)
}
