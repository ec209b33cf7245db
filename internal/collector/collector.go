package collector

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/prabalesh/hwinfo/internal/models"
)

const DefaultSampleInterval = time.Second

type Options struct {
	// SampleInterval is the window over which per-core CPU usage is measured.
	SampleInterval time.Duration
	// AllPartitions includes pseudo, memory and duplicate filesystems.
	AllPartitions bool
	// FirstPartitionOnly stops disk enumeration after the first partition
	// whose usage could be read.
	FirstPartitionOnly bool
}

// StatsCollector runs every section collector once, in report order. A
// failing section never aborts the others.
type StatsCollector struct {
	source Source
	gpu    GPUReader
	opts   Options
	log    *zap.Logger
	now    func() time.Time
}

// NewStatsCollector builds a collector. A nil gpu reader disables GPU
// enumeration; the GPU section is then reported empty.
func NewStatsCollector(source Source, gpu GPUReader, opts Options, log *zap.Logger) *StatsCollector {
	if opts.SampleInterval <= 0 {
		opts.SampleInterval = DefaultSampleInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &StatsCollector{
		source: source,
		gpu:    gpu,
		opts:   opts,
		log:    log,
		now:    time.Now,
	}
}

type step struct {
	section string
	collect func(context.Context, *models.Snapshot) error
}

func (s *StatsCollector) steps() []step {
	return []step{
		{models.SectionSystem, s.collectSystem},
		{models.SectionBootTime, s.collectBootTime},
		{models.SectionCPU, s.collectCPUInfo},
		{models.SectionCPUUsage, s.collectCPUUsage},
		{models.SectionMemory, s.collectMemory},
		{models.SectionSwap, s.collectSwap},
		{models.SectionDisk, s.collectDisks},
		{models.SectionDiskIO, s.collectDiskIO},
		{models.SectionNetwork, s.collectNetwork},
		{models.SectionNetIO, s.collectNetIO},
		{models.SectionGPU, s.collectGPU},
	}
}

// Collect takes one snapshot of the host. Once ctx is cancelled the remaining
// sections are marked with the context error instead of being collected.
func (s *StatsCollector) Collect(ctx context.Context) *models.Snapshot {
	snap := &models.Snapshot{
		CollectedAt: s.now(),
		Errors:      make(map[string]error),
	}

	for _, st := range s.steps() {
		if err := ctx.Err(); err != nil {
			snap.Errors[st.section] = err
			continue
		}

		start := time.Now()
		if err := s.run(ctx, st, snap); err != nil {
			snap.Errors[st.section] = err
			s.log.Warn("section degraded", zap.String("section", st.section), zap.Error(err))
			continue
		}
		s.log.Debug("section collected", zap.String("section", st.section), zap.Duration("took", time.Since(start)))
	}

	return snap
}

// GetReport collects a snapshot and renders it as a labelled report.
func (s *StatsCollector) GetReport(ctx context.Context) *models.Report {
	return s.Collect(ctx).Report()
}

func (s *StatsCollector) run(ctx context.Context, st step, snap *models.Snapshot) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: panic: %v", st.section, r)
		}
	}()
	return st.collect(ctx, snap)
}
