//go:build linux

package collector

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/prabalesh/hwinfo/internal/models"
)

const cpufreqGlob = "/sys/devices/system/cpu/cpu[0-9]*/cpufreq"

// readCPUFreq averages the cpufreq values of every CPU. sysfs reports kHz.
func readCPUFreq() (*models.CPUFrequency, bool) {
	dirs, err := filepath.Glob(cpufreqGlob)
	if err != nil || len(dirs) == 0 {
		return nil, false
	}

	var curSum, minSum, maxSum float64
	var n int
	for _, dir := range dirs {
		c, ok := readKHz(filepath.Join(dir, "scaling_cur_freq"))
		if !ok {
			if c, ok = readKHz(filepath.Join(dir, "cpuinfo_cur_freq")); !ok {
				continue
			}
		}
		lo, _ := readKHz(filepath.Join(dir, "cpuinfo_min_freq"))
		hi, _ := readKHz(filepath.Join(dir, "cpuinfo_max_freq"))
		curSum += c
		minSum += lo
		maxSum += hi
		n++
	}
	if n == 0 {
		return nil, false
	}

	return &models.CPUFrequency{
		Current: curSum / float64(n) / 1000,
		Min:     minSum / float64(n) / 1000,
		Max:     maxSum / float64(n) / 1000,
	}, true
}

func readKHz(path string) (float64, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(content)), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func kernelBuild() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return ""
	}
	return unix.ByteSliceToString(u.Version[:])
}

func nameLimits(path string) (uint64, uint64) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, 0
	}
	return uint64(st.Namelen), unix.PathMax
}

// isWholeDevice reports whether name is a block device rather than one of its
// partitions. When /sys/block is unreadable every name is accepted.
func isWholeDevice(name string) bool {
	if _, err := os.Stat("/sys/block"); err != nil {
		return true
	}
	_, err := os.Stat(filepath.Join("/sys/block", name))
	return err == nil
}
