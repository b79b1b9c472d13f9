// Package s3objpackfx provides an fx module for an S3-backed objpack client.
package s3objpackfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/absfs/objpack"
	"github.com/absfs/objpack/fx/internal/fxstats"
	"github.com/absfs/objpack/internal/stats"
	"github.com/absfs/objpack/internal/store/s3store"
)

// Config holds configuration for the S3-backed client.
type Config struct {
	// Bucket must already exist.
	Bucket string

	// Prefix is prepended to every object key.
	Prefix string

	// Region overrides the region from the AWS environment.
	Region string

	// Endpoint points at an S3-compatible service such as MinIO.
	Endpoint string

	// ConfigFile is an optional YAML file with candidates, levels and
	// rle_flush. Empty means objpack.DefaultConfig.
	ConfigFile string
}

// Module provides an S3-backed objpack client.
// Requires a Config and a *zap.Logger to be provided. If a
// prometheus.Registerer is provided too, metrics go to Prometheus.
var Module = fx.Module("s3objpack",
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

	opts := []s3store.Option{s3store.WithPrefix(p.Config.Prefix)}
	if p.Config.Region != "" {
		opts = append(opts, s3store.WithRegion(p.Config.Region))
	}
	if p.Config.Endpoint != "" {
		opts = append(opts, s3store.WithEndpoint(p.Config.Endpoint))
	}
	st, err := s3store.New(context.Background(), p.Config.Bucket, opts...)
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
