package collector

import (
	"context"
	"fmt"

	"github.com/prabalesh/hwinfo/internal/models"
)

func (s *StatsCollector) collectMemory(ctx context.Context, snap *models.Snapshot) error {
	vm, err := s.source.VirtualMemory(ctx)
	if err != nil {
		return fmt.Errorf("virtual memory: %w", err)
	}

	snap.Memory = &models.MemoryStats{
		Total:        vm.Total,
		Available:    vm.Available,
		Used:         vm.Used,
		UsagePercent: vm.UsedPercent,
	}
	return nil
}

// collectSwap reports zeroes on hosts without swap; gopsutil already returns
// an all-zero stat there.
func (s *StatsCollector) collectSwap(ctx context.Context, snap *models.Snapshot) error {
	sw, err := s.source.SwapMemory(ctx)
	if err != nil {
		return fmt.Errorf("swap memory: %w", err)
	}

	stats := &models.SwapStats{
		Total: sw.Total,
		Free:  sw.Free,
		Used:  sw.Used,
	}
	if sw.Total > 0 {
		stats.UsagePercent = sw.UsedPercent
	}
	snap.Swap = stats
	return nil
}
