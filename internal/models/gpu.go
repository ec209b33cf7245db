package models

// GPU memory values are in MB, temperature in °C, load in percent.
type GPU struct {
	ID          int     `json:"id"`
	UUID        string  `json:"uuid"`
	Name        string  `json:"name"`
	Load        float64 `json:"load"`
	MemoryFree  float64 `json:"memory_free"`
	MemoryUsed  float64 `json:"memory_used"`
	MemoryTotal float64 `json:"memory_total"`
	Temperature float64 `json:"temperature"`
}
