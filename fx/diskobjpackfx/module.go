// Package diskobjpackfx provides an fx module for a disk-backed objpack client.
package diskobjpackfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/absfs/objpack"
	"github.com/absfs/objpack/fx/internal/fxstats"
	"github.com/absfs/objpack/internal/stats"
	"github.com/absfs/objpack/internal/store/diskstore"
)

// Config holds configuration for the disk-backed client.
type Config struct {
	// DataDir is the directory artifacts are written to. It is created if
	// missing.
	DataDir string

	// ConfigFile is an optional YAML file with candidates, levels and
	// rle_flush. Empty means objpack.DefaultConfig.
	ConfigFile string
}

// Module provides a disk-backed objpack client.
// Requires a Config and a *zap.Logger to be provided.
var Module = fx.Module("diskobjpack",
	fx.Provide(
		fxstats.New,
		newClient,
	),
)

// Params holds dependencies for creating the client.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided client.
type Result struct {
	fx.Out

	Client *objpack.Client
}

func newClient(p Params) (Result, error) {
	cfg := objpack.DefaultConfig()
	if p.Config.ConfigFile != "" {
		var err error
		if cfg, err = objpack.LoadConfigFile(p.Config.ConfigFile); err != nil {
			return Result{}, err
		}
	}

	st, err := diskstore.New(p.Config.DataDir)
	if err != nil {
		return Result{}, err
	}

	client, err := objpack.NewClient(
		objpack.WithConfig(cfg),
		objpack.WithStore(st),
		objpack.WithStats(p.Collector),
		objpack.WithLogger(p.Logger.Named("objpack")),
	)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return Result{Client: client}, nil
}
