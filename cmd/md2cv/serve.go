package main

import (
	"context"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	md2cv "github.com/alnah/go-md2cv"
	"github.com/alnah/go-md2cv/internal/assets"
	"github.com/alnah/go-md2cv/internal/logging"
	"github.com/alnah/go-md2cv/internal/server"
	"github.com/alnah/go-md2cv/internal/storage"
)

// runServe starts the HTTP server until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	server.RegisterFlags(fs)
	var configName string
	var workers int
	fs.StringVarP(&configName, "config", "c", "", "document config file name or path")
	fs.IntVarP(&workers, "workers", "w", 0, "concurrent renders (0 = auto)")
	fs.Usage = func() { printServeUsage(env.Stderr) }

	if err := parse(fs, args); err != nil {
		return err
	}
	if err := validateWorkers(workers); err != nil {
		return err
	}

	scfg, err := server.LoadConfig(fs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	logger, closer, err := logging.New(scfg.LoggingConfig(), env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	defer closer.Close()

	cfg, err := loadConfig(configName)
	if err != nil {
		return withHint(err, false)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Every request renders through one pool, so concurrent uploads
	// queue instead of starting a Chrome each.
	pool := md2cv.NewPool(md2cv.ResolvePoolSize(workers))
	opts, err := buildOptions(cfg, logger, pool)
	if err != nil {
		return err
	}
	gen, err := env.NewGenerator(opts...)
	if err != nil {
		return err
	}

	store, err := openStore(ctx, scfg)
	if err != nil {
		return err
	}

	loader, err := assets.NewAssetResolver(scfg.AssetsDir)
	if err != nil {
		return err
	}

	srv, err := server.New(scfg, Version, gen, store, loader, logger)
	if err != nil {
		return err
	}
	defer srv.Close()

	if err := srv.Restore(ctx); err != nil {
		logger.WithError(err).Warn("Could not restore previous artifacts")
	}
	return srv.Run(ctx)
}

// openStore builds the artifact store selected by cfg.Storage.
func openStore(ctx context.Context, cfg *server.Config) (storage.Store, error) {
	switch cfg.Storage {
	case server.StorageS3:
		return storage.NewS3Store(ctx, cfg.StorageS3Config())
	default:
		return storage.NewLocalStore(cfg.UploadDir)
	}
}
