package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/absfs/objpack"
	statslogger "github.com/absfs/objpack/internal/stats/logger"
	"github.com/absfs/objpack/internal/store/storeurl"
)

var (
	// Global flags.
	configPath    string
	storeLocation string
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "objpack",
	Short: "Pack files into self-describing compressed artifacts",
	Long: `objpack writes files as artifacts: one tag byte naming the format,
followed by the compressed bytes. Unpacking needs no flags because the
tag says how the artifact was written.

Examples:
  # Pack with the smallest of the default candidates
  objpack pack data.bin -o data.opk

  # Pack with a fixed format
  objpack pack data.bin -o data.opk --mode xz+huffman

  # Compare every candidate without writing anything
  objpack probe data.bin --csv

  # Show the format of an artifact
  objpack info data.opk

  # Keep artifacts in S3 under keys
  objpack put reports/2024 data.bin --store s3://bucket/objpack?region=eu-west-1
  objpack get reports/2024 -o data.bin --store s3://bucket/objpack?region=eu-west-1`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML file with candidates, levels and rle_flush")
	rootCmd.PersistentFlags().StringVarP(&storeLocation, "store", "s", "./objpack-data",
		"artifact store for put/get/rm: a directory, mem://, s3://bucket/prefix or gs://bucket/prefix")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// newLogger returns a development logger with --verbose and a quiet
// production logger otherwise.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// loadConfig reads --config, or returns the default configuration.
func loadConfig() (*objpack.Config, error) {
	if configPath == "" {
		return objpack.DefaultConfig(), nil
	}
	return objpack.LoadConfigFile(configPath)
}

// newOptions builds serializer options from the global flags. With
// --verbose metrics are logged too, and the returned collector can print a
// summary; otherwise it is nil.
func newOptions(logger *zap.Logger) ([]objpack.Option, *statslogger.Collector, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	opts := []objpack.Option{
		objpack.WithConfig(cfg),
		objpack.WithLogger(logger),
	}
	var collector *statslogger.Collector
	if verbose {
		collector = statslogger.New(logger)
		opts = append(opts, objpack.WithStats(collector))
	}
	return opts, collector, nil
}

// newSerializer builds a serializer from the global flags.
func newSerializer(logger *zap.Logger) (*objpack.Serializer, *statslogger.Collector, error) {
	opts, collector, err := newOptions(logger)
	if err != nil {
		return nil, nil, err
	}
	return objpack.New(opts...), collector, nil
}

// newClient opens --store and builds a client over it.
func newClient(ctx context.Context, logger *zap.Logger) (*objpack.Client, *statslogger.Collector, error) {
	opts, collector, err := newOptions(logger)
	if err != nil {
		return nil, nil, err
	}
	st, err := storeurl.Open(ctx, storeLocation)
	if err != nil {
		return nil, nil, err
	}
	client, err := objpack.NewClient(append(opts, objpack.WithStore(st))...)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return client, collector, nil
}

// summarize logs the collector's totals when --verbose is set.
func summarize(collector *statslogger.Collector) {
	if collector != nil {
		collector.Summary()
	}
}

// openInput opens path for reading; "-" or "" means stdin.
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// createOutput creates path for writing; "-" or "" means stdout.
func createOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
