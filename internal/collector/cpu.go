package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"

	"github.com/prabalesh/hwinfo/internal/models"
)

// collectCPUInfo reports core counts even when frequency is unavailable; the
// frequency failure is returned so the section is marked degraded.
func (s *StatsCollector) collectCPUInfo(ctx context.Context, snap *models.Snapshot) error {
	physical, err := s.source.CPUCounts(ctx, false)
	if err != nil {
		return fmt.Errorf("physical cores: %w", err)
	}
	logical, err := s.source.CPUCounts(ctx, true)
	if err != nil {
		return fmt.Errorf("logical cores: %w", err)
	}

	info := &models.CPUInfo{PhysicalCores: physical, TotalCores: logical}
	snap.CPU = info

	freq, err := s.source.CPUFrequency(ctx)
	if err != nil {
		return err
	}
	info.Frequency = freq
	return nil
}

// collectCPUUsage blocks for the sample interval and reports the busy share of
// each core and of the whole machine over that window.
func (s *StatsCollector) collectCPUUsage(ctx context.Context, snap *models.Snapshot) error {
	perCore1, total1, err := s.cpuTimes(ctx)
	if err != nil {
		return err
	}

	timer := time.NewTimer(s.opts.SampleInterval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	perCore2, total2, err := s.cpuTimes(ctx)
	if err != nil {
		return err
	}

	usage := &models.CPUUsage{Cores: make([]float64, 0, len(perCore2))}
	for i := range perCore2 {
		if i >= len(perCore1) {
			break
		}
		usage.Cores = append(usage.Cores, busyPercent(perCore1[i], perCore2[i]))
	}

	if total1 != nil && total2 != nil {
		usage.Total = busyPercent(*total1, *total2)
	} else if len(usage.Cores) > 0 {
		var sum float64
		for _, p := range usage.Cores {
			sum += p
		}
		usage.Total = sum / float64(len(usage.Cores))
	}

	snap.CPUUsage = usage
	return nil
}

func (s *StatsCollector) cpuTimes(ctx context.Context) ([]cpu.TimesStat, *cpu.TimesStat, error) {
	perCore, err := s.source.CPUTimes(ctx, true)
	if err != nil {
		return nil, nil, fmt.Errorf("cpu times: %w", err)
	}
	totals, err := s.source.CPUTimes(ctx, false)
	if err != nil || len(totals) == 0 {
		return perCore, nil, nil
	}
	return perCore, &totals[0], nil
}

// Guest time is already accounted in user and nice, so it is left out.
func cpuTimeSplit(t cpu.TimesStat) (all, busy float64) {
	all = t.User + t.System + t.Nice + t.Iowait + t.Irq + t.Softirq + t.Steal + t.Idle
	busy = all - t.Idle - t.Iowait
	return all, busy
}

func busyPercent(t1, t2 cpu.TimesStat) float64 {
	all1, busy1 := cpuTimeSplit(t1)
	all2, busy2 := cpuTimeSplit(t2)

	if busy2 <= busy1 {
		return 0
	}
	if all2 <= all1 {
		return 100
	}

	p := (busy2 - busy1) / (all2 - all1) * 100
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
