//go:build !linux

package collector

import "github.com/prabalesh/hwinfo/internal/models"

func readCPUFreq() (*models.CPUFrequency, bool) {
	return nil, false
}

func kernelBuild() string {
	return ""
}

func nameLimits(string) (uint64, uint64) {
	return 0, 0
}

func isWholeDevice(string) bool {
	return true
}
