// Package fxstats provides the stats collector shared by the objpack fx
// modules.
package fxstats

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/absfs/objpack/internal/stats"
	"github.com/absfs/objpack/internal/stats/logger"
	prom "github.com/absfs/objpack/internal/stats/prometheus"
)

// Params holds dependencies for choosing a collector.
type Params struct {
	fx.In

	Logger     *zap.Logger
	Registerer prometheus.Registerer `optional:"true"`
}

// New returns a Prometheus collector when the app provides a
// prometheus.Registerer, and a zap logger collector otherwise.
func New(p Params) stats.Collector {
	if p.Registerer != nil {
		return prom.New(p.Registerer)
	}
	return logger.New(p.Logger.Named("objpack.stats"))
}
