package collector

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/prabalesh/hwinfo/internal/models"
)

const DefaultDRMRoot = "/sys/class/drm"

var cardName = regexp.MustCompile(`^card(\d+)$`)

var gpuVendors = map[string]string{
	"0x1002": "AMD",
	"0x10de": "NVIDIA",
	"0x8086": "INTEL",
}

// DRM reads GPUs from the Linux DRM sysfs tree. It has no UUIDs and only
// amdgpu exposes load and VRAM counters there.
type DRM struct {
	root string
}

func NewDRM(root string) *DRM {
	if root == "" {
		root = DefaultDRMRoot
	}
	return &DRM{root: root}
}

func (d *DRM) GPUs(ctx context.Context) ([]models.GPU, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, ErrNoGPU
	}

	var gpus []models.GPU
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		m := cardName.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		vendor, ok := gpuVendors[d.readString(e.Name(), "vendor")]
		if !ok {
			continue
		}

		id, _ := strconv.Atoi(m[1])
		total, used := d.readVRAM(e.Name())
		gpus = append(gpus, models.GPU{
			ID:          id,
			Name:        strings.TrimSpace(vendor + " " + d.readModel(e.Name())),
			Load:        d.readFloat(e.Name(), "gpu_busy_percent"),
			MemoryTotal: total,
			MemoryUsed:  used,
			MemoryFree:  total - used,
			Temperature: d.readTemperature(e.Name()),
		})
	}

	if len(gpus) == 0 {
		return nil, ErrNoGPU
	}
	sort.Slice(gpus, func(i, j int) bool { return gpus[i].ID < gpus[j].ID })
	return gpus, nil
}

func (d *DRM) devicePath(card, file string) string {
	return filepath.Join(d.root, card, "device", file)
}

func (d *DRM) readString(card, file string) string {
	b, err := os.ReadFile(d.devicePath(card, file))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func (d *DRM) readFloat(card, file string) float64 {
	v, _ := strconv.ParseFloat(d.readString(card, file), 64)
	return v
}

func (d *DRM) readModel(card string) string {
	if name := d.readString(card, "product_name"); name != "" {
		return name
	}
	return d.readString(card, "device")
}

// readVRAM returns total and used VRAM in MB.
func (d *DRM) readVRAM(card string) (float64, float64) {
	total := d.readFloat(card, "mem_info_vram_total")
	used := d.readFloat(card, "mem_info_vram_used")
	return total / (1024 * 1024), used / (1024 * 1024)
}

func (d *DRM) readTemperature(card string) float64 {
	hwmonRoot := d.devicePath(card, "hwmon")
	hwmons, _ := os.ReadDir(hwmonRoot)
	for _, hw := range hwmons {
		b, err := os.ReadFile(filepath.Join(hwmonRoot, hw.Name(), "temp1_input"))
		if err == nil {
			v, _ := strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
			return v / 1000
		}
	}
	return 0
}
