package collector

import (
	"context"
	"errors"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"

	"github.com/prabalesh/hwinfo/internal/models"
)

var (
	// ErrUnavailableMetric means the platform does not expose the metric.
	ErrUnavailableMetric = errors.New("metric unavailable on this platform")

	// ErrNoGPU means no GPU or GPU driver was found.
	ErrNoGPU = errors.New("no gpu available")
)

// Source is the set of OS queries the collectors read from.
type Source interface {
	SystemInfo(ctx context.Context) (*models.SystemInfo, error)
	BootTime(ctx context.Context) (uint64, error)

	CPUCounts(ctx context.Context, logical bool) (int, error)
	CPUFrequency(ctx context.Context) (*models.CPUFrequency, error)
	CPUTimes(ctx context.Context, perCPU bool) ([]cpu.TimesStat, error)

	VirtualMemory(ctx context.Context) (*mem.VirtualMemoryStat, error)
	SwapMemory(ctx context.Context) (*mem.SwapMemoryStat, error)

	Partitions(ctx context.Context, all bool) ([]disk.PartitionStat, error)
	DiskUsage(ctx context.Context, path string) (*disk.UsageStat, error)
	NameLimits(path string) (maxFile, maxPath uint64)
	DiskIOCounters(ctx context.Context) (map[string]disk.IOCountersStat, error)

	Interfaces(ctx context.Context) (net.InterfaceStatList, error)
	NetIOCounters(ctx context.Context) ([]net.IOCountersStat, error)
}
