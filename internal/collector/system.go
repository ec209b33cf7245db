package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/prabalesh/hwinfo/internal/models"
)

func (s *StatsCollector) collectSystem(ctx context.Context, snap *models.Snapshot) error {
	info, err := s.source.SystemInfo(ctx)
	if err != nil {
		return err
	}
	snap.System = info
	return nil
}

func (s *StatsCollector) collectBootTime(ctx context.Context, snap *models.Snapshot) error {
	secs, err := s.source.BootTime(ctx)
	if err != nil {
		return fmt.Errorf("boot time: %w", err)
	}
	if secs == 0 {
		return fmt.Errorf("boot time: %w", ErrUnavailableMetric)
	}

	bt := time.Unix(int64(secs), 0)
	snap.BootTime = &bt
	return nil
}
