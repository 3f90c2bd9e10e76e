// Command devapi serves a seeded in-memory backend REST API for local
// development of the staffboard pages, with its OpenAPI reference at
// /api-docs.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/okian/staffboard/internal/adapters/devapi"
	"github.com/okian/staffboard/internal/adapters/http/swagger"
	repository "github.com/okian/staffboard/internal/adapters/repository"
	"github.com/okian/staffboard/internal/config"
	"github.com/okian/staffboard/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

func main() {
	var (
		addr    = flag.String("addr", "", "Listen address (default: devapi_addr from config)")
		noSeed  = flag.Bool("empty", false, "Start with an empty store instead of the demo data")
		verbose = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}
	if *addr != "" {
		cfg.DevAPIAddr = *addr
	}

	if err := logger.Init(logger.WithFile(cfg.LogFile)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	level := cfg.LogLevel
	if *verbose {
		level = "debug"
	}
	if err := logger.SetLevelString(level); err != nil {
		_ = logger.SetLevelString("info")
	}
	log := logger.Get().Named("devapi")

	handler, err := newRouter(ctx, log, !*noSeed)
	if err != nil {
		log.Error(ctx, "failed to build development backend", logger.Error(err))
		return
	}

	srv := &http.Server{
		Addr:              cfg.DevAPIAddr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting development backend", logger.String("addr", cfg.DevAPIAddr), logger.Bool("seeded", !*noSeed))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "development backend stopped")
}

// newRouter builds the /api routes over a fresh in-memory store plus the
// API reference pages.
func newRouter(ctx context.Context, log logger.Logger, seed bool) (*mux.Router, error) {
	store := repository.NewMemoryStore()
	if seed {
		if err := devapi.Seed(ctx, store); err != nil {
			return nil, err
		}
	}
	r := devapi.New(store, devapi.WithLogger(log)).NewRouter(ctx)
	swagger.Register(ctx, r)
	return r, nil
}
