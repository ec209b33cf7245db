package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prabalesh/hwinfo/internal/models"
)

func TestJSONPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"report", "report.json"},
		{"report.json", "report.json"},
		{"out/report.txt", "out/report.json"},
		{"a.tar.gz", "a.tar.json"},
		{".hidden", ".hidden.json"},
	}

	for _, tt := range tests {
		if got := JSONPath(tt.path); got != filepath.FromSlash(tt.expected) && got != tt.expected {
			t.Errorf("JSONPath(%q) = %q, want %q", tt.path, got, tt.expected)
		}
	}
}

func sampleReport() *models.Report {
	snap := &models.Snapshot{
		Memory: &models.MemoryStats{Total: 8 << 30, Available: 4 << 30, Used: 3 << 30, UsagePercent: 42.1},
		GPUs:   []models.GPU{{ID: 0, Name: "GPU", Temperature: 40}},
	}
	return snap.Report()
}

func TestWriteFileCreatesDirsAndNormalisesExtension(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "deeper", "report")

	written, err := WriteFile(target, sampleReport())
	if err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if written != target+".json" {
		t.Errorf("wrote %q, want %q", written, target+".json")
	}

	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}

	var decoded map[string]map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if got := decoded[models.SectionMemory]["Percentage"]; got != "42.1%" {
		t.Errorf("Percentage = %v, want 42.1%%", got)
	}
	if len(decoded) != len(models.SectionOrder) {
		t.Errorf("got %d sections, want %d", len(decoded), len(models.SectionOrder))
	}
}

func TestEncodeIndentsWithFourSpaces(t *testing.T) {
	var sb strings.Builder
	if err := Encode(&sb, sampleReport()); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out := sb.String()

	if !strings.HasPrefix(out, "{\n    \"System Information\": {}") {
		t.Errorf("unexpected layout:\n%s", out)
	}
	if !strings.Contains(out, "\n        \"Total\": \"8.00GB\"") {
		t.Errorf("nested keys not indented by eight spaces:\n%s", out)
	}
	if !strings.Contains(out, "40.0°C") {
		t.Errorf("temperature should be written as UTF-8:\n%s", out)
	}
}

func TestWriteFileRejectsEmptyPath(t *testing.T) {
	if _, err := WriteFile("", sampleReport()); err == nil {
		t.Error("expected error for empty path")
	}
}
