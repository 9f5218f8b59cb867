package container

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"arrowview/adapters/arrowfile"
	"arrowview/adapters/stats/engine"
	"arrowview/adapters/xlsx"
	"arrowview/app"
	"arrowview/internal"
	"arrowview/internal/config"
	"arrowview/internal/describe"
	"arrowview/internal/errors"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	Allocator memory.Allocator
	Source    *arrowfile.Reader
	Exporter  *xlsx.Exporter

	// Statistics
	Compute   *engine.StatsEngine
	Assembler *describe.Assembler

	// Services
	Viewer *app.ViewerService
}

// New wires every component from a validated configuration
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	interpolation, err := engine.ParseInterpolation(cfg.Describe.Quantile)
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}

	c := &Container{
		Config:    cfg,
		Logger:    logger,
		Allocator: memory.DefaultAllocator,
	}

	c.Source = arrowfile.NewReader(
		arrowfile.WithAllocator(c.Allocator),
		arrowfile.WithLogger(logger),
		arrowfile.WithSheet(cfg.View.Sheet),
	)
	c.Exporter = xlsx.NewExporter(logger)

	opts := describe.DefaultOptions()
	opts.Precision = cfg.Describe.Precision
	c.Compute = engine.NewStatsEngine(interpolation)
	c.Assembler = describe.NewAssembler(describe.NewEngine(c.Compute, opts), cfg.Describe.Workers, logger)

	c.Viewer = app.NewViewerService(c.Source, c.Assembler, c.Exporter, logger)

	logger.Debug("[container] workers=%d precision=%d quantile=%s",
		cfg.Describe.Workers, cfg.Describe.Precision, interpolation)
	return c, nil
}

// Converter builds a converter writing with the given compression
func (c *Container) Converter(compression string) *app.ConvertService {
	sink := arrowfile.NewWriter(arrowfile.WriteOptions{
		Compression: compression,
		Allocator:   c.Allocator,
	})
	return app.NewConvertService(c.Source, sink, c.Logger)
}
