package models

import "time"

// Snapshot is the typed result of one collection pass. A nil section pointer
// means the section could not be collected; Errors holds why.
type Snapshot struct {
	CollectedAt time.Time

	System   *SystemInfo
	BootTime *time.Time
	CPU      *CPUInfo
	CPUUsage *CPUUsage
	Memory   *MemoryStats
	Swap     *SwapStats
	Disks    []DiskPartition
	DiskIO   *DiskIO
	Network  []NetworkInterface
	NetIO    *NetIO
	GPUs     []GPU

	Errors map[string]error
}

type SystemInfo struct {
	System    string `json:"system"`
	NodeName  string `json:"node_name"`
	Release   string `json:"release"`
	Version   string `json:"version"`
	Machine   string `json:"machine"`
	Processor string `json:"processor"`
}

type CPUInfo struct {
	PhysicalCores int           `json:"physical_cores"`
	TotalCores    int           `json:"total_cores"`
	Frequency     *CPUFrequency `json:"frequency"`
}

// CPUFrequency values are in MHz.
type CPUFrequency struct {
	Current float64 `json:"current"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

type CPUUsage struct {
	Cores []float64 `json:"cores"`
	Total float64   `json:"total"`
}

type MemoryStats struct {
	Total        uint64  `json:"total"`
	Available    uint64  `json:"available"`
	Used         uint64  `json:"used"`
	UsagePercent float64 `json:"usage_percent"`
}

type SwapStats struct {
	Total        uint64  `json:"total"`
	Free         uint64  `json:"free"`
	Used         uint64  `json:"used"`
	UsagePercent float64 `json:"usage_percent"`
}
