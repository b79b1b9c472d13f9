// Package gcsobjpackfx provides an fx module for a GCS-backed objpack client.
package gcsobjpackfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/absfs/objpack"
	"github.com/absfs/objpack/fx/internal/fxstats"
	"github.com/absfs/objpack/internal/stats"
	"github.com/absfs/objpack/internal/store/gcsstore"
)

// Config holds configuration for the GCS-backed client.
type Config struct {
	// Bucket must already exist.
	Bucket string

	// Prefix is prepended to every object name.
	Prefix string

	// Endpoint points at a GCS-compatible emulator. Requests to it are
	// unauthenticated.
	Endpoint string

	// ConfigFile is an optional YAML file with candidates, levels and
	// rle_flush. Empty means objpack.DefaultConfig.
	ConfigFile string
}

// Module provides a GCS-backed objpack client.
// Requires a Config and a *zap.Logger to be provided. If a
// prometheus.Registerer is provided too, metrics go to Prometheus.
var Module = fx.Module("gcsobjpack",
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

	opts := []gcsstore.Option{gcsstore.WithPrefix(p.Config.Prefix)}
	if p.Config.Endpoint != "" {
		opts = append(opts, gcsstore.WithEndpoint(p.Config.Endpoint))
	}
	st, err := gcsstore.New(context.Background(), p.Config.Bucket, opts...)
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
		st.Close()
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})

	return Result{Client: client}, nil
}
