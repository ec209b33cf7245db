package collector

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"

	"github.com/prabalesh/hwinfo/internal/models"
)

// HostSource reads metrics from the running machine through gopsutil.
type HostSource struct{}

func NewHostSource() *HostSource {
	return &HostSource{}
}

var osNames = map[string]string{
	"linux":   "Linux",
	"darwin":  "Darwin",
	"windows": "Windows",
	"freebsd": "FreeBSD",
	"openbsd": "OpenBSD",
	"netbsd":  "NetBSD",
	"solaris": "SunOS",
}

func (h *HostSource) SystemInfo(ctx context.Context) (*models.SystemInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get host info: %w", err)
	}

	name, ok := osNames[info.OS]
	if !ok {
		name = info.OS
	}

	sys := &models.SystemInfo{
		System:    name,
		NodeName:  info.Hostname,
		Release:   info.KernelVersion,
		Version:   kernelBuild(),
		Machine:   info.KernelArch,
		Processor: h.processor(ctx),
	}
	if sys.Machine == "" {
		sys.Machine = runtime.GOARCH
	}
	if sys.Version == "" {
		sys.Version = strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
	}
	if sys.Processor == "" {
		sys.Processor = sys.Machine
	}
	return sys, nil
}

func (h *HostSource) processor(ctx context.Context) string {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil || len(infos) == 0 {
		return ""
	}
	return strings.TrimSpace(infos[0].ModelName)
}

func (h *HostSource) BootTime(ctx context.Context) (uint64, error) {
	return host.BootTimeWithContext(ctx)
}

func (h *HostSource) CPUCounts(ctx context.Context, logical bool) (int, error) {
	return cpu.CountsWithContext(ctx, logical)
}

func (h *HostSource) CPUFrequency(ctx context.Context) (*models.CPUFrequency, error) {
	if freq, ok := readCPUFreq(); ok {
		return freq, nil
	}
	return frequencyFromInfo(ctx)
}

// frequencyFromInfo falls back to the nominal clock reported by cpu.Info. Min
// is not exposed there and stays zero.
func frequencyFromInfo(ctx context.Context) (*models.CPUFrequency, error) {
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("cpu frequency: %w", err)
	}

	var sum float64
	var n int
	for _, info := range infos {
		if info.Mhz > 0 {
			sum += info.Mhz
			n++
		}
	}
	if n == 0 {
		return nil, fmt.Errorf("cpu frequency: %w", ErrUnavailableMetric)
	}

	avg := sum / float64(n)
	return &models.CPUFrequency{Current: avg, Max: avg}, nil
}

func (h *HostSource) CPUTimes(ctx context.Context, perCPU bool) ([]cpu.TimesStat, error) {
	return cpu.TimesWithContext(ctx, perCPU)
}

func (h *HostSource) VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error) {
	return mem.VirtualMemoryWithContext(ctx)
}

func (h *HostSource) SwapMemory(ctx context.Context) (*mem.SwapMemoryStat, error) {
	return mem.SwapMemoryWithContext(ctx)
}

func (h *HostSource) Partitions(ctx context.Context, all bool) ([]disk.PartitionStat, error) {
	return disk.PartitionsWithContext(ctx, all)
}

func (h *HostSource) DiskUsage(ctx context.Context, path string) (*disk.UsageStat, error) {
	return disk.UsageWithContext(ctx, path)
}

func (h *HostSource) NameLimits(path string) (uint64, uint64) {
	return nameLimits(path)
}

// DiskIOCounters returns counters for whole devices only, so partitions are
// not counted twice when summed.
func (h *HostSource) DiskIOCounters(ctx context.Context) (map[string]disk.IOCountersStat, error) {
	counters, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		return nil, err
	}
	for name := range counters {
		if !isWholeDevice(name) {
			delete(counters, name)
		}
	}
	return counters, nil
}

func (h *HostSource) Interfaces(ctx context.Context) (net.InterfaceStatList, error) {
	return net.InterfacesWithContext(ctx)
}

func (h *HostSource) NetIOCounters(ctx context.Context) ([]net.IOCountersStat, error) {
	return net.IOCountersWithContext(ctx, false)
}
