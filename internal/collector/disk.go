package collector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"github.com/prabalesh/hwinfo/internal/models"
)

// collectDisks lists mounted partitions with their usage. A partition whose
// usage cannot be read is left out of the report.
func (s *StatsCollector) collectDisks(ctx context.Context, snap *models.Snapshot) error {
	partitions, err := s.source.Partitions(ctx, s.opts.AllPartitions)
	if err != nil {
		return fmt.Errorf("disk partitions: %w", err)
	}

	for _, p := range partitions {
		usage, err := s.source.DiskUsage(ctx, p.Mountpoint)
		if err != nil {
			reason := "usage unavailable"
			if errors.Is(err, fs.ErrPermission) {
				reason = "permission denied"
			}
			s.log.Debug("skipping partition",
				zap.String("device", p.Device),
				zap.String("mountpoint", p.Mountpoint),
				zap.String("reason", reason),
				zap.Error(err))
			continue
		}

		maxFile, maxPath := s.source.NameLimits(p.Mountpoint)
		snap.Disks = append(snap.Disks, models.DiskPartition{
			Device:       p.Device,
			Mountpoint:   p.Mountpoint,
			Filesystem:   p.Fstype,
			Options:      strings.Join(p.Opts, ","),
			MaxFile:      maxFile,
			MaxPath:      maxPath,
			Total:        usage.Total,
			Used:         usage.Used,
			Free:         usage.Free,
			UsagePercent: usage.UsedPercent,
		})

		if s.opts.FirstPartitionOnly {
			break
		}
	}

	return nil
}

func (s *StatsCollector) collectDiskIO(ctx context.Context, snap *models.Snapshot) error {
	counters, err := s.source.DiskIOCounters(ctx)
	if err != nil {
		return fmt.Errorf("disk io counters: %w", err)
	}
	if len(counters) == 0 {
		return fmt.Errorf("disk io counters: %w", ErrUnavailableMetric)
	}

	io := &models.DiskIO{}
	for _, c := range counters {
		io.ReadBytes += c.ReadBytes
		io.WriteBytes += c.WriteBytes
	}
	snap.DiskIO = io
	return nil
}
