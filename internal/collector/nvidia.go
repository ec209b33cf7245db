package collector

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/prabalesh/hwinfo/internal/models"
)

const nvidiaQuery = "index,uuid,name,utilization.gpu,memory.total,memory.used,memory.free,temperature.gpu"

// nvidia-smi exits with this status, printing smiNoDriver, when the tool is
// installed but no NVIDIA kernel driver is loaded.
const (
	smiNoDriverExit = 9
	smiNoDriver     = "couldn't communicate with the NVIDIA driver"
)

// NvidiaSMI queries NVIDIA GPUs through the nvidia-smi tool.
type NvidiaSMI struct {
	path    string
	timeout time.Duration
	run     func(ctx context.Context, name string, args ...string) ([]byte, error)
}

func NewNvidiaSMI(path string, timeout time.Duration) *NvidiaSMI {
	if path == "" {
		path = "nvidia-smi"
	}
	return &NvidiaSMI{
		path:    path,
		timeout: timeout,
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).Output()
		},
	}
}

func (n *NvidiaSMI) GPUs(ctx context.Context) ([]models.GPU, error) {
	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	out, err := n.run(ctx, n.path, "--query-gpu="+nvidiaQuery, "--format=csv,noheader,nounits")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) || noDriver(out, err) {
			return nil, ErrNoGPU
		}
		if msg := smiMessage(out, err); msg != "" {
			return nil, fmt.Errorf("nvidia-smi: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("nvidia-smi: %w", err)
	}

	gpus, err := parseNvidiaCSV(out)
	if err != nil {
		return nil, fmt.Errorf("nvidia-smi: %w", err)
	}
	if len(gpus) == 0 {
		return nil, ErrNoGPU
	}
	return gpus, nil
}

func noDriver(out []byte, err error) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.ExitCode() == smiNoDriverExit || bytes.Contains(exitErr.Stderr, []byte(smiNoDriver)) {
			return true
		}
	}
	return bytes.Contains(out, []byte(smiNoDriver))
}

// smiMessage returns the first non-blank line nvidia-smi printed, stderr first.
func smiMessage(out []byte, err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if line := firstLine(exitErr.Stderr); line != "" {
			return line
		}
	}
	return firstLine(out)
}

func firstLine(b []byte) string {
	for _, line := range strings.Split(string(b), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

func parseNvidiaCSV(out []byte) ([]models.GPU, error) {
	r := csv.NewReader(bytes.NewReader(out))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = 8

	var gpus []models.GPU
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		id, err := strconv.Atoi(strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("gpu index %q: %w", rec[0], err)
		}
		gpus = append(gpus, models.GPU{
			ID:          id,
			UUID:        strings.TrimSpace(rec[1]),
			Name:        strings.TrimSpace(rec[2]),
			Load:        smiFloat(rec[3]),
			MemoryTotal: smiFloat(rec[4]),
			MemoryUsed:  smiFloat(rec[5]),
			MemoryFree:  smiFloat(rec[6]),
			Temperature: smiFloat(rec[7]),
		})
	}
	return gpus, nil
}

// smiFloat parses a numeric field; "[N/A]" and "[Not Supported]" read as 0.
func smiFloat(field string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0
	}
	return v
}
