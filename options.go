package objpack

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/absfs/objpack/internal/stats"
	"github.com/absfs/objpack/internal/store"
	"github.com/absfs/objpack/internal/store/diskstore"
)

// Option configures a Serializer or a Client.
type Option interface {
	apply(*options)
}

// options holds the shared configuration.
type options struct {
	config      *Config
	transformer Transformer
	store       store.Store
	stats       stats.Collector
	logger      *zap.Logger
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		config:      DefaultConfig(),
		transformer: Gob,
		stats:       stats.NewNoop(),
		logger:      zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithConfig sets the encoding configuration. The config is copied.
// A nil config restores DefaultConfig().
func WithConfig(c *Config) Option {
	return optionFunc(func(o *options) {
		if c == nil {
			o.config = DefaultConfig()
			return
		}
		o.config = c.clone()
	})
}

// WithCandidates sets the formats probed by AutomaticBest, in tie-break
// order.
func WithCandidates(candidates ...Format) Option {
	return optionFunc(func(o *options) {
		o.config = o.config.clone()
		o.config.Candidates = append([]Format(nil), candidates...)
	})
}

// WithTransformer sets the value transformer.
// If not set, gob is used.
func WithTransformer(t Transformer) Option {
	return optionFunc(func(o *options) {
		o.transformer = t
	})
}

// WithStore sets the storage backend used by a Client.
func WithStore(s store.Store) Option {
	return optionFunc(func(o *options) {
		o.store = s
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

// WithDataDir stores a Client's artifacts as files under dir, creating the
// directory if needed.
func WithDataDir(dir string) (Option, error) {
	st, err := diskstore.New(dir)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}
	return WithStore(st), nil
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.stats == nil {
		o.stats = stats.NewNoop()
	}
	if o.transformer == nil {
		o.transformer = Gob
	}
	return o
}
