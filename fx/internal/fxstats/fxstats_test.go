package fxstats

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/absfs/objpack/internal/stats/logger"
	prom "github.com/absfs/objpack/internal/stats/prometheus"
)

func TestNew(t *testing.T) {
	assert.IsType(t, &logger.Collector{}, New(Params{Logger: zap.NewNop()}))
	assert.IsType(t, &prom.Collector{}, New(Params{Logger: zap.NewNop(), Registerer: prometheus.NewRegistry()}))
}
