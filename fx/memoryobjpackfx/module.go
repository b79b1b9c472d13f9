// Package memoryobjpackfx provides an fx module for an in-memory objpack client.
// Useful for testing.
package memoryobjpackfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/absfs/objpack"
	"github.com/absfs/objpack/fx/internal/fxstats"
	"github.com/absfs/objpack/internal/stats"
	"github.com/absfs/objpack/internal/store/memstore"
)

// Module provides an in-memory objpack client for testing, along with the
// *memstore.Store behind it for test setup.
// Requires a *zap.Logger to be provided. If a prometheus.Registerer is
// provided too, metrics go to Prometheus instead of the log.
var Module = fx.Module("memoryobjpack",
	fx.Provide(
		fxstats.New,
		newMemStore,
		newClient,
	),
)

func newMemStore() *memstore.Store {
	return memstore.New()
}

// Params holds dependencies for creating the client.
type Params struct {
	fx.In

	Logger    *zap.Logger
	Collector stats.Collector
	Store     *memstore.Store
	Lifecycle fx.Lifecycle
}

// Result holds the provided client.
type Result struct {
	fx.Out

	Client *objpack.Client
}

func newClient(p Params) (Result, error) {
	client, err := objpack.NewClient(
		objpack.WithStore(p.Store),
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
