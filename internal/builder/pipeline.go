package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Alex-Programs/nuenki-dictionary/internal/codec"
)

// Config carries the builder's inputs.
type Config struct {
	InputPath        string
	OutputPath       string
	SampleOutputPath string
	CompressionLevel int
}

// sampleEvery is the stride of the optional human-readable sample dump.
const sampleEvery = 200

// Pipeline runs the five build phases in order: headword set, entry build +
// merge, dereference, per-entry compression, dump write. Individual records
// that fail to parse are dropped; I/O failures abort the run.
type Pipeline struct {
	log *logrus.Logger
	cfg Config
}

func NewPipeline(log *logrus.Logger, cfg Config) *Pipeline {
	return &Pipeline{log: log, cfg: cfg}
}

func (p *Pipeline) Run(ctx context.Context) error {
	started := time.Now()

	phase := time.Now()
	set, err := BuildHeadwordSet(ctx, p.log, p.cfg.InputPath)
	if err != nil {
		return fmt.Errorf("phase 1 (headword set): %w", err)
	}
	p.logPhase("headword set", phase)

	phase = time.Now()
	elements, err := BuildElements(ctx, p.log, p.cfg.InputPath, set)
	if err != nil {
		return fmt.Errorf("phase 2 (entries): %w", err)
	}
	p.logPhase("entries", phase)

	phase = time.Now()
	elements = Dereference(p.log, elements)
	p.logPhase("dereference", phase)

	if p.cfg.SampleOutputPath != "" {
		if err := writeSample(p.cfg.SampleOutputPath, elements); err != nil {
			return fmt.Errorf("write sample: %w", err)
		}
		p.log.WithField("path", p.cfg.SampleOutputPath).Info("sample written")
	}

	c, err := codec.New(p.cfg.CompressionLevel)
	if err != nil {
		return fmt.Errorf("phase 4 (compress): %w", err)
	}
	phase = time.Now()
	compressed, err := CompressElements(ctx, p.log, c, elements)
	if err != nil {
		return fmt.Errorf("phase 4 (compress): %w", err)
	}
	p.logPhase("compress", phase)

	phase = time.Now()
	codec.SortElements(compressed)
	if err := codec.WriteDump(p.cfg.OutputPath, compressed); err != nil {
		return fmt.Errorf("phase 5 (dump): %w", err)
	}
	p.logPhase("dump", phase)

	p.log.WithFields(logrus.Fields{
		"elements": len(compressed),
		"output":   p.cfg.OutputPath,
		"duration": time.Since(started).Round(time.Millisecond).String(),
	}).Info("build complete")
	return nil
}

func (p *Pipeline) logPhase(name string, started time.Time) {
	p.log.WithFields(logrus.Fields{
		"phase":    name,
		"duration": time.Since(started).Round(time.Millisecond).String(),
	}).Info("phase complete")
}
