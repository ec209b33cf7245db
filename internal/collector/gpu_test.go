package collector

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/prabalesh/hwinfo/internal/models"
)

const smiOutput = `0, GPU-1a2b3c, NVIDIA GeForce RTX 3080, 35, 10240, 2048, 8192, 51
1, GPU-4d5e6f, NVIDIA GeForce RTX 3080, [N/A], 10240, 0, 10240, 38
`

func TestParseNvidiaCSV(t *testing.T) {
	gpus, err := parseNvidiaCSV([]byte(smiOutput))
	if err != nil {
		t.Fatalf("parseNvidiaCSV failed: %v", err)
	}
	if len(gpus) != 2 {
		t.Fatalf("got %d gpus, want 2", len(gpus))
	}

	g := gpus[0]
	if g.ID != 0 || g.UUID != "GPU-1a2b3c" || g.Name != "NVIDIA GeForce RTX 3080" {
		t.Errorf("identity = %+v", g)
	}
	if g.Load != 35 || g.MemoryTotal != 10240 || g.MemoryUsed != 2048 || g.MemoryFree != 8192 || g.Temperature != 51 {
		t.Errorf("metrics = %+v", g)
	}
	if gpus[1].Load != 0 {
		t.Errorf("N/A load = %v, want 0", gpus[1].Load)
	}
}

func TestParseNvidiaCSVRejectsShortRows(t *testing.T) {
	if _, err := parseNvidiaCSV([]byte("0, GPU-1, name\n")); err == nil {
		t.Error("expected error for short row")
	}
}

func TestNvidiaSMIMissingBinary(t *testing.T) {
	smi := NewNvidiaSMI("nvidia-smi", 0)
	smi.run = func(context.Context, string, ...string) ([]byte, error) {
		return nil, &exec.Error{Name: "nvidia-smi", Err: exec.ErrNotFound}
	}

	if _, err := smi.GPUs(context.Background()); !errors.Is(err, ErrNoGPU) {
		t.Errorf("err = %v, want ErrNoGPU", err)
	}
}

func TestNvidiaSMIPassesQuery(t *testing.T) {
	var gotName string
	var gotArgs []string
	smi := NewNvidiaSMI("/opt/bin/nvidia-smi", 0)
	smi.run = func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		return []byte(smiOutput), nil
	}

	gpus, err := smi.GPUs(context.Background())
	if err != nil || len(gpus) != 2 {
		t.Fatalf("GPUs = %v, %v", gpus, err)
	}
	if gotName != "/opt/bin/nvidia-smi" {
		t.Errorf("ran %q", gotName)
	}
	if len(gotArgs) != 2 || gotArgs[0] != "--query-gpu="+nvidiaQuery || gotArgs[1] != "--format=csv,noheader,nounits" {
		t.Errorf("args = %v", gotArgs)
	}
}

func TestNvidiaSMIEmptyOutput(t *testing.T) {
	smi := NewNvidiaSMI("", 0)
	smi.run = func(context.Context, string, ...string) ([]byte, error) {
		return nil, nil
	}
	if _, err := smi.GPUs(context.Background()); !errors.Is(err, ErrNoGPU) {
		t.Errorf("err = %v, want ErrNoGPU", err)
	}
}

// fakeSMI writes an executable stand-in for nvidia-smi running script.
func fakeSMI(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub needs a unix shell")
	}
	path := filepath.Join(t.TempDir(), "nvidia-smi")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

const noDriverScript = `echo "NVIDIA-SMI has failed because it couldn't communicate with the NVIDIA driver. Make sure that the latest NVIDIA driver is installed and running."
exit 9`

func TestNvidiaSMIWithoutDriver(t *testing.T) {
	smi := NewNvidiaSMI(fakeSMI(t, noDriverScript), 0)
	if _, err := smi.GPUs(context.Background()); !errors.Is(err, ErrNoGPU) {
		t.Errorf("err = %v, want ErrNoGPU", err)
	}
}

func TestNvidiaSMIDriverMessageWithoutExitCode(t *testing.T) {
	smi := NewNvidiaSMI("nvidia-smi", 0)
	smi.run = func(context.Context, string, ...string) ([]byte, error) {
		return []byte("NVIDIA-SMI has failed because it couldn't communicate with the NVIDIA driver.\n"), errors.New("signal: killed")
	}
	if _, err := smi.GPUs(context.Background()); !errors.Is(err, ErrNoGPU) {
		t.Errorf("err = %v, want ErrNoGPU", err)
	}
}

func TestNvidiaSMIFailureKeepsMessage(t *testing.T) {
	smi := NewNvidiaSMI(fakeSMI(t, "echo '  ' >&2\necho 'Unable to determine the device handle for GPU0000:01:00.0: Unknown Error' >&2\nexit 2"), 0)

	_, err := smi.GPUs(context.Background())
	if err == nil || errors.Is(err, ErrNoGPU) {
		t.Fatalf("err = %v, want a query failure", err)
	}
	for _, s := range []string{"exit status 2", "Unable to determine the device handle"} {
		if !strings.Contains(err.Error(), s) {
			t.Errorf("err = %q, missing %q", err, s)
		}
	}
}

func TestGPUSectionEmptyWithoutDriver(t *testing.T) {
	readers := GPUReaders{
		NewNvidiaSMI(fakeSMI(t, noDriverScript), 0),
		NewDRM(t.TempDir()),
	}
	snap := newTestCollector(newFakeSource(), readers, Options{}).Collect(context.Background())

	section := snap.Report().Section(models.SectionGPU)
	if section == nil {
		t.Fatal("GPU section missing")
	}
	if section.Degraded() || section.Len() != 0 {
		t.Errorf("GPU section degraded=%v len=%d, want present and empty", section.Degraded(), section.Len())
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDRMReadsAMDCard(t *testing.T) {
	root := t.TempDir()
	dev := filepath.Join(root, "card1", "device")
	writeFile(t, filepath.Join(dev, "vendor"), "0x1002\n")
	writeFile(t, filepath.Join(dev, "product_name"), "Radeon RX 6800\n")
	writeFile(t, filepath.Join(dev, "gpu_busy_percent"), "12\n")
	writeFile(t, filepath.Join(dev, "mem_info_vram_total"), "17179869184\n")
	writeFile(t, filepath.Join(dev, "mem_info_vram_used"), "1073741824\n")
	writeFile(t, filepath.Join(dev, "hwmon", "hwmon3", "temp1_input"), "47000\n")

	// connector entries and unknown vendors are ignored
	writeFile(t, filepath.Join(root, "card1-DP-1", "status"), "connected\n")
	writeFile(t, filepath.Join(root, "card0", "device", "vendor"), "0x1234\n")

	gpus, err := NewDRM(root).GPUs(context.Background())
	if err != nil {
		t.Fatalf("GPUs failed: %v", err)
	}
	if len(gpus) != 1 {
		t.Fatalf("got %d gpus, want 1", len(gpus))
	}

	g := gpus[0]
	if g.ID != 1 || g.Name != "AMD Radeon RX 6800" {
		t.Errorf("identity = %+v", g)
	}
	if g.Load != 12 || g.MemoryTotal != 16384 || g.MemoryUsed != 1024 || g.MemoryFree != 15360 || g.Temperature != 47 {
		t.Errorf("metrics = %+v", g)
	}
}

func TestDRMWithoutCards(t *testing.T) {
	if _, err := NewDRM(filepath.Join(t.TempDir(), "missing")).GPUs(context.Background()); !errors.Is(err, ErrNoGPU) {
		t.Errorf("err = %v, want ErrNoGPU", err)
	}
	if _, err := NewDRM(t.TempDir()).GPUs(context.Background()); !errors.Is(err, ErrNoGPU) {
		t.Errorf("err = %v, want ErrNoGPU", err)
	}
}
