package objpack

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/absfs/objpack/internal/stats"
	"github.com/absfs/objpack/internal/store"
)

// Client persists values as artifacts in a keyed store.
// A Client is safe for concurrent use by multiple goroutines.
type Client struct {
	ser    *Serializer
	store  store.Store
	stats  stats.Collector
	logger *zap.Logger
	closed atomic.Bool
}

// NewClient creates a Client. A store is required, either through
// WithStore or WithDataDir.
func NewClient(opts ...Option) (*Client, error) {
	o := buildOptions(opts)
	if o.store == nil {
		return nil, ErrNoStore
	}

	c := &Client{
		ser:    newSerializer(o),
		store:  o.store,
		stats:  o.stats,
		logger: o.logger,
	}

	c.logger.Debug("client initialized",
		zap.String("transformer", o.transformer.Name()),
		zap.Int("candidates", len(o.config.Candidates)),
	)
	return c, nil
}

// Serializer returns the serializer the client encodes with.
func (c *Client) Serializer() *Serializer {
	return c.ser
}

// Save serializes v and stores the artifact under key. The artifact is
// fully encoded before the store is touched, so a failed Save leaves the
// previous artifact in place. Store errors are returned unchanged.
func (c *Client) Save(ctx context.Context, key string, v any, mode Mode) error {
	if c.closed.Load() {
		return ErrClosed
	}

	raw, err := c.ser.marshal(v)
	if err != nil {
		return err
	}
	_, err = c.put(ctx, key, raw, mode)
	return err
}

// SaveBytes stores raw under key as an artifact without passing it through
// the transformer, and returns the format used. The stored object is the
// same as a file written by WriteArtifact.
func (c *Client) SaveBytes(ctx context.Context, key string, raw []byte, mode Mode) (Format, error) {
	if c.closed.Load() {
		return Format{}, ErrClosed
	}
	return c.put(ctx, key, raw, mode)
}

func (c *Client) put(ctx context.Context, key string, raw []byte, mode Mode) (Format, error) {
	var buf bytes.Buffer
	f, err := c.ser.WriteArtifact(&buf, raw, mode)
	if err != nil {
		return Format{}, err
	}

	if err := c.store.Put(ctx, key, buf.Bytes()); err != nil {
		return Format{}, err
	}

	c.stats.IncCounter(stats.MetricSaves, 1)
	c.stats.SetGauge(stats.MetricLastSaved, int64(buf.Len()))
	c.logger.Debug("saved",
		zap.String("key", key),
		zap.Stringer("format", f),
		zap.Int("bytes", buf.Len()),
	)
	return f, nil
}

// Load reads the artifact stored under key into v.
// Returns ErrNotFound if there is none; other store errors are returned
// unchanged.
func (c *Client) Load(ctx context.Context, key string, v any) error {
	if c.closed.Load() {
		return ErrClosed
	}

	data, err := c.get(ctx, key)
	if err != nil {
		return err
	}
	return c.ser.Deserialize(bytes.NewReader(data), v)
}

// LoadBytes returns the raw bytes and format of the artifact stored under
// key, skipping the transformer.
func (c *Client) LoadBytes(ctx context.Context, key string) ([]byte, Format, error) {
	if c.closed.Load() {
		return nil, Format{}, ErrClosed
	}

	data, err := c.get(ctx, key)
	if err != nil {
		return nil, Format{}, err
	}
	return c.ser.ReadArtifact(bytes.NewReader(data))
}

func (c *Client) get(ctx context.Context, key string) ([]byte, error) {
	c.stats.IncCounter(stats.MetricLoads, 1)

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.stats.IncCounter(stats.MetricMisses, 1)
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, err
	}
	return data, nil
}

// Delete removes the artifact stored under key.
// Returns ErrNotFound if there is none.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c.closed.Load() {
		return ErrClosed
	}

	if err := c.store.Delete(ctx, key); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return err
	}
	c.logger.Debug("deleted", zap.String("key", key))
	return nil
}

// GetStats returns a snapshot of the client's encode and decode statistics.
func (c *Client) GetStats() *Stats {
	return c.ser.GetStats()
}

// Close releases the store. After Close, the client should not be used.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	return c.store.Close()
}
