package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prabalesh/hwinfo/internal/units"
)

// Section names, in report order.
const (
	SectionSystem   = "System Information"
	SectionBootTime = "Boot Time"
	SectionCPU      = "CPU Information"
	SectionCPUUsage = "CPU Usage Per Core"
	SectionMemory   = "Memory Information"
	SectionSwap     = "SWAP Memory"
	SectionDisk     = "Disk Information"
	SectionDiskIO   = "Disk IO"
	SectionNetwork  = "Network Information"
	SectionNetIO    = "IO Stat"
	SectionGPU      = "GPU Stats"
)

var SectionOrder = []string{
	SectionSystem,
	SectionBootTime,
	SectionCPU,
	SectionCPUUsage,
	SectionMemory,
	SectionSwap,
	SectionDisk,
	SectionDiskIO,
	SectionNetwork,
	SectionNetIO,
	SectionGPU,
}

// Report is the labelled, ordered rendition of a Snapshot. It marshals to a
// JSON object whose keys follow SectionOrder.
type Report struct {
	sections *Section
}

func NewReport() *Report {
	return &Report{sections: NewSection()}
}

func (r *Report) Add(name string, s *Section) {
	r.sections.Set(name, s)
}

func (r *Report) Section(name string) *Section {
	v, ok := r.sections.Get(name)
	if !ok {
		return nil
	}
	s, _ := v.(*Section)
	return s
}

func (r *Report) Names() []string {
	return r.sections.Keys()
}

func (r *Report) MarshalJSON() ([]byte, error) {
	return r.sections.MarshalJSON()
}

// Report builds the labelled report. Every section in SectionOrder is present;
// sections whose collection failed carry an Error entry.
func (s *Snapshot) Report() *Report {
	report := NewReport()
	for _, name := range SectionOrder {
		section := s.section(name)
		section.MarkDegraded(s.Errors[name])
		report.Add(name, section)
	}
	return report
}

func (s *Snapshot) section(name string) *Section {
	out := NewSection()

	switch name {
	case SectionSystem:
		if s.System != nil {
			out.Set("System", s.System.System).
				Set("Node Name", s.System.NodeName).
				Set("Release", s.System.Release).
				Set("Version", s.System.Version).
				Set("Machine", s.System.Machine).
				Set("Processor", s.System.Processor)
		}

	case SectionBootTime:
		if s.BootTime != nil {
			out.Set("Boot Time", FormatBootTime(*s.BootTime))
		}

	case SectionCPU:
		if s.CPU != nil {
			out.Set("Physical cores", s.CPU.PhysicalCores).
				Set("Total cores", s.CPU.TotalCores)
			if f := s.CPU.Frequency; f != nil {
				out.Set("Max Frequency", units.MHz(f.Max)).
					Set("Min Frequency", units.MHz(f.Min)).
					Set("Current Frequency", units.MHz(f.Current))
			} else {
				out.Set("Max Frequency", nil).
					Set("Min Frequency", nil).
					Set("Current Frequency", nil)
			}
		}

	case SectionCPUUsage:
		if s.CPUUsage != nil {
			for i, p := range s.CPUUsage.Cores {
				out.Set("Core "+strconv.Itoa(i), units.Percent(p))
			}
			out.Set("Total CPU Usage", units.Percent(s.CPUUsage.Total))
		}

	case SectionMemory:
		if m := s.Memory; m != nil {
			out.Set("Total", units.Size(m.Total)).
				Set("Available", units.Size(m.Available)).
				Set("Used", units.Size(m.Used)).
				Set("Percentage", units.Percent(m.UsagePercent))
		}

	case SectionSwap:
		if sw := s.Swap; sw != nil {
			out.Set("Total", units.Size(sw.Total)).
				Set("Free", units.Size(sw.Free)).
				Set("Used", units.Size(sw.Used)).
				Set("Percentage", units.Percent(sw.UsagePercent))
		}

	case SectionDisk:
		for _, d := range s.Disks {
			out.Child(d.Device).
				Set("Mountpoint", d.Mountpoint).
				Set("File system type", d.Filesystem).
				Set("opts", d.Options).
				Set("maxfile", nonZero(d.MaxFile)).
				Set("maxpath", nonZero(d.MaxPath)).
				Set("Total Size", units.Size(d.Total)).
				Set("Used", units.Size(d.Used)).
				Set("Free", units.Size(d.Free)).
				Set("Percentage", units.Percent(d.UsagePercent))
		}

	case SectionDiskIO:
		if io := s.DiskIO; io != nil {
			out.Set("Total read", units.Size(io.ReadBytes)).
				Set("Total write", units.Size(io.WriteBytes))
		}

	case SectionNetwork:
		for _, iface := range s.Network {
			info := out.Child(iface.Name)
			if iface.HasIPv4() {
				info.Set("IP Address", iface.IPAddress).
					Set("Netmask", nonEmpty(iface.Netmask)).
					Set("Broadcast IP", nonEmpty(iface.BroadcastIP))
			}
			if iface.HasLink() {
				info.Set("MAC Address", iface.MACAddress)
				if _, ok := info.Get("Netmask"); !ok {
					info.Set("Netmask", nil)
				}
				info.Set("Broadcast MAC", nonEmpty(iface.BroadcastMAC))
			}
		}

	case SectionNetIO:
		if io := s.NetIO; io != nil {
			out.Set("Total Bytes Sent", units.Size(io.BytesSent)).
				Set("Total Bytes Received", units.Size(io.BytesRecv))
		}

	case SectionGPU:
		for _, g := range s.GPUs {
			out.Child(fmt.Sprintf("GPU %d", g.ID)).
				Set("gpu_id", g.ID).
				Set("gpu_uuid", g.UUID).
				Set("gpu_name", g.Name).
				Set("gpu_load", units.Percent(g.Load)).
				Set("gpu_free_memory", units.MB(g.MemoryFree)).
				Set("gpu_used_memory", units.MB(g.MemoryUsed)).
				Set("gpu_total_memory", units.MB(g.MemoryTotal)).
				Set("gpu_temperature", units.Celsius(g.Temperature))
		}
	}

	return out
}

// FormatBootTime renders t in local time as Y/M/D H:M:S without zero padding.
func FormatBootTime(t time.Time) string {
	t = t.Local()
	return fmt.Sprintf("%d/%d/%d %d:%d:%d", t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
}

func nonZero(v uint64) any {
	if v == 0 {
		return nil
	}
	return v
}

func nonEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
