// Package units renders raw metric values as the human-readable strings used
// in reports.
package units

import "fmt"

const factor = 1024

var sizeUnits = []string{"", "K", "M", "G", "T", "P"}

// Size scales a byte count to the largest 1024-based unit it reaches.
//
//	1253656    => "1.20MB"
//	1253656678 => "1.17GB"
func Size(bytes uint64) string {
	return sizeWithSuffix(bytes, "B")
}

func sizeWithSuffix(bytes uint64, suffix string) string {
	value := float64(bytes)
	unit := 0
	for value >= factor && unit < len(sizeUnits)-1 {
		value /= factor
		unit++
	}
	return fmt.Sprintf("%.2f%s%s", value, sizeUnits[unit], suffix)
}

// Percent renders a ratio already expressed in percent, e.g. 23.4 => "23.4%".
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// MHz renders a clock frequency, e.g. 2400 => "2400.00Mhz".
func MHz(f float64) string {
	return fmt.Sprintf("%.2fMhz", f)
}

// MB renders a size already expressed in megabytes.
func MB(f float64) string {
	return fmt.Sprintf("%.1fMB", f)
}

// Celsius renders a temperature in degrees Celsius.
func Celsius(f float64) string {
	return fmt.Sprintf("%.1f°C", f)
}
