package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/dmitrymomot/envir/internal/source"
	"github.com/dmitrymomot/envir/pkg/file"
	"github.com/dmitrymomot/envir/pkg/logger"
	"github.com/dmitrymomot/envir/pkg/resolve"
	"github.com/dmitrymomot/envir/pkg/store"
)

var errUsage = errors.New("usage")

// settings holds flag defaults read from ENVIR_FROM, ENVIR_TO and ENVIR_FORMAT.
type settings struct {
	_ struct{} `envir:"prefix=ENVIR_"`

	From   string      `envir:"default=env"`
	To     string      `envir:"default=env"`
	Format file.Format `envir:"default=dotenv"`
}

type opener func(ctx context.Context, uri string, opts ...source.Option) (*source.Handle, error)

type cli struct {
	stdout   io.Writer
	stderr   io.Writer
	prompt   prompter
	log      *slog.Logger
	open     opener
	defaults settings
}

const usage = `Usage: envir <command> [flags] [args]

Commands:
  dump    print every variable of a store
  keys    print the variable names of a store
  get     print one variable
  set     write one variable, prompting for the value when it is omitted
  copy    copy variables from one store to another
  expand  replace ${NAME} placeholders in text with store values
  ping    check that a store is reachable

Store URIs: env:[PREFIX], file:PATH, s3://BUCKET/KEY, redis://HOST/DB?hash=NAME,
postgres://...?table=NAME, mongodb://...?db=NAME&collection=NAME
`

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(c.stderr, usage)
		return errUsage
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "dump":
		return c.dump(ctx, args)
	case "keys":
		return c.keys(ctx, args)
	case "get":
		return c.get(ctx, args)
	case "set":
		return c.set(ctx, args)
	case "copy":
		return c.copy(ctx, args)
	case "expand":
		return c.expand(ctx, args)
	case "ping":
		return c.ping(ctx, args)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(c.stdout, usage)
		return nil
	default:
		fmt.Fprintf(c.stderr, "unknown command %q\n\n%s", cmd, usage)
		return errUsage
	}
}

func (c *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

func (c *cli) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errUsage
		}
		return errors.Join(errUsage, err)
	}
	return nil
}

func (c *cli) snapshot(ctx context.Context, uri string) (map[string]string, error) {
	h, err := c.open(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer h.Close()

	m, err := h.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	c.log.DebugContext(ctx, "store read", logger.Store(uri), logger.Count(len(m)))
	return m, nil
}

func (c *cli) dump(ctx context.Context, args []string) error {
	fs := c.flags("dump")
	from := fs.String("from", c.defaults.From, "store to read")
	formatName := fs.String("format", string(c.defaults.Format), "output format: dotenv, yaml or json")
	if err := c.parse(fs, args); err != nil {
		return err
	}

	format := file.FormatDotenv
	if *formatName != "" {
		if err := format.UnmarshalText([]byte(*formatName)); err != nil {
			return err
		}
	}

	m, err := c.snapshot(ctx, *from)
	if err != nil {
		return err
	}
	data, err := file.Encode(format, m)
	if err != nil {
		return err
	}
	_, err = c.stdout.Write(data)
	return err
}

func (c *cli) keys(ctx context.Context, args []string) error {
	fs := c.flags("keys")
	from := fs.String("from", c.defaults.From, "store to read")
	if err := c.parse(fs, args); err != nil {
		return err
	}

	m, err := c.snapshot(ctx, *from)
	if err != nil {
		return err
	}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		fmt.Fprintln(c.stdout, k)
	}
	return nil
}

func (c *cli) get(ctx context.Context, args []string) error {
	fs := c.flags("get")
	from := fs.String("from", c.defaults.From, "store to read")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(c.stderr, "get: expected exactly one KEY")
		return errUsage
	}

	m, err := c.snapshot(ctx, *from)
	if err != nil {
		return err
	}
	v, err := resolve.Get[string](lookupMap(m), fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, v)
	return nil
}

func (c *cli) set(ctx context.Context, args []string) error {
	fs := c.flags("set")
	to := fs.String("to", c.defaults.To, "store to write")
	hidden := fs.Bool("hidden", false, "do not echo the prompted value")
	seal := fs.Bool("seal", false, "seal the value when ENVIR_SECRET_KEY is set")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		fmt.Fprintln(c.stderr, "set: expected KEY [VALUE]")
		return errUsage
	}

	key := fs.Arg(0)
	var value string
	if fs.NArg() == 2 {
		value = fs.Arg(1)
	} else {
		var err error
		if value, err = c.prompt.Value(ctx, key, *hidden); err != nil {
			return err
		}
	}

	var opts []source.Option
	if !*seal {
		opts = append(opts, source.WithPlainWrites())
	}
	h, err := c.open(ctx, *to, opts...)
	if err != nil {
		return err
	}
	defer h.Close()

	if err := h.Apply(ctx, map[string]string{key: value}); err != nil {
		return err
	}
	c.log.InfoContext(ctx, "variable set", logger.Key(key), logger.Store(*to))
	return nil
}

func (c *cli) copy(ctx context.Context, args []string) error {
	fs := c.flags("copy")
	from := fs.String("from", c.defaults.From, "store to read")
	to := fs.String("to", c.defaults.To, "store to write")
	keys := fs.String("keys", "", "comma separated variable names to copy, all when empty")
	seal := fs.String("seal", "", "comma separated variable names to seal, all when empty")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if *from == *to {
		fmt.Fprintln(c.stderr, "copy: -from and -to name the same store")
		return errUsage
	}

	src, err := c.open(ctx, *from)
	if err != nil {
		return err
	}
	defer src.Close()

	var opts []source.Option
	if *seal != "" {
		opts = append(opts, source.WithSealedKeys(splitList(*seal)...))
	}
	dst, err := c.open(ctx, *to, opts...)
	if err != nil {
		return err
	}
	defer dst.Close()

	var in store.Source = src
	if *keys != "" {
		in = filtered{src: src, keys: splitList(*keys)}
	}

	m, err := in.Snapshot(ctx)
	if err != nil {
		return err
	}
	if err := dst.Apply(ctx, m); err != nil {
		return err
	}
	c.log.InfoContext(ctx, "variables copied",
		logger.Store(*to),
		logger.Count(len(m)),
	)
	return nil
}

func (c *cli) expand(ctx context.Context, args []string) error {
	fs := c.flags("expand")
	from := fs.String("from", c.defaults.From, "store to read")
	if err := c.parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(c.stderr, "expand: expected TEXT")
		return errUsage
	}

	m, err := c.snapshot(ctx, *from)
	if err != nil {
		return err
	}
	out, err := resolve.Extrapolate(strings.Join(fs.Args(), " "), lookupMap(m))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, out)
	return nil
}

func (c *cli) ping(ctx context.Context, args []string) error {
	fs := c.flags("ping")
	from := fs.String("from", c.defaults.From, "store to check")
	if err := c.parse(fs, args); err != nil {
		return err
	}

	h, err := c.open(ctx, *from)
	if err != nil {
		return err
	}
	defer h.Close()

	start := time.Now()
	if err := h.Ping(ctx); err != nil {
		return err
	}
	c.log.DebugContext(ctx, "store reachable", logger.Store(*from), logger.Duration(time.Since(start)))
	fmt.Fprintf(c.stdout, "%s: ok\n", h.Location.Kind)
	return nil
}

func lookupMap(m map[string]string) resolve.Lookup {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// filtered limits a source to keys.
type filtered struct {
	src  store.Source
	keys []string
}

func (f filtered) Snapshot(ctx context.Context) (map[string]string, error) {
	m, err := f.src.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	maps.DeleteFunc(m, func(k, _ string) bool { return !slices.Contains(f.keys, k) })
	return m, nil
}
