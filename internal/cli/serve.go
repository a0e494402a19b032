package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridsmith/pkg/api"
	"github.com/matzehuels/gridsmith/pkg/cache"
	"github.com/matzehuels/gridsmith/pkg/observability"
	"github.com/matzehuels/gridsmith/pkg/pipeline"
	"github.com/matzehuels/gridsmith/pkg/store"
)

// apiKeyPrefix scopes server cache keys to the API version.
const apiKeyPrefix = "v1:"

const shutdownTimeout = 10 * time.Second

type serveOpts struct {
	addr     string
	store    string
	database string
	noStore  bool
	redis    string
	noCache  bool
	timeout  time.Duration
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Geometry and generation endpoints are always available. Projects are stored
in a directory (default: ~/.local/share/gridsmith/projects) or, when --store
is a mongodb:// URI, in MongoDB. Generated output is cached on disk, or in
Redis when --redis is given.

Endpoints:
  GET    /healthz
  POST   /v1/tracks | /v1/locate | /v1/snap | /v1/gesture | /v1/generate
  GET    /v1/projects            POST /v1/projects
  GET    /v1/projects/{id}       PUT | DELETE /v1/projects/{id}
  GET    /v1/projects/{id}/generate`,
		Example: `  gridsmith serve --addr :8080
  gridsmith serve --store mongodb://localhost:27017 --redis redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "localhost:8080", "listen address")
	cmd.Flags().StringVar(&opts.store, "store", "", "project directory or mongodb:// URI")
	cmd.Flags().StringVar(&opts.database, "database", appName, "MongoDB database name")
	cmd.Flags().BoolVar(&opts.noStore, "no-store", false, "disable the project endpoints")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "Redis URL for the cache (redis://host:port/db)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "per-request timeout")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)
	observability.Register(observability.NewLogHooks(logger))
	defer observability.Reset()

	backend, err := openServerCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(backend, cache.NewScopedKeyer(cache.NewDefaultKeyer(), apiKeyPrefix), logger)
	defer runner.Close()

	srvOpts := []api.Option{api.WithLogger(logger), api.WithTimeout(opts.timeout)}
	if !opts.noStore {
		st, desc, err := openStore(ctx, opts)
		if err != nil {
			return err
		}
		defer st.Close()
		srvOpts = append(srvOpts, api.WithStore(st))
		printKeyValue("Store", desc)
	}

	ln, err := net.Listen("tcp", opts.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", opts.addr, err)
	}
	return serve(ctx, ln, api.New(runner, srvOpts...), logger)
}

// serve runs handler on ln until ctx is cancelled, then shuts down
// gracefully.
func serve(ctx context.Context, ln net.Listener, handler http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()
	printSuccess("Listening on %s", StyleLink.Render("http://"+ln.Addr().String()))
	logger.Info("server started", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func openServerCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil
	case opts.redis != "":
		rc, err := cache.NewRedisCache(ctx, opts.redis, appName+":")
		if err != nil {
			return nil, fmt.Errorf("open redis cache: %w", err)
		}
		printKeyValue("Cache", "redis")
		return rc, nil
	}
	fc, err := newCache(false)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	if dc, ok := fc.(*cache.FileCache); ok {
		printKeyValue("Cache", dc.Dir())
	}
	return fc, nil
}

func openStore(ctx context.Context, opts serveOpts) (store.Store, string, error) {
	if strings.HasPrefix(opts.store, "mongodb://") || strings.HasPrefix(opts.store, "mongodb+srv://") {
		st, err := store.NewMongoStore(ctx, opts.store, opts.database)
		if err != nil {
			return nil, "", err
		}
		return st, "mongodb/" + opts.database, nil
	}

	dir := opts.store
	if dir == "" {
		var err error
		if dir, err = store.DefaultDir(); err != nil {
			return nil, "", fmt.Errorf("project directory: %w", err)
		}
	}
	st, err := store.NewFileStore(dir)
	if err != nil {
		return nil, "", err
	}
	return st, st.Path(), nil
}
