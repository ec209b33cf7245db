package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/prabalesh/hwinfo/internal/models"
)

type stubCollector struct {
	calls int
	snap  *models.Snapshot
}

func (s *stubCollector) Collect(context.Context) *models.Snapshot {
	s.calls++
	return s.snap
}

func testSnapshot() *models.Snapshot {
	boot := time.Now().Add(-3 * time.Hour)
	return &models.Snapshot{
		CollectedAt: time.Now(),
		System:      &models.SystemInfo{System: "Linux", NodeName: "devbox"},
		BootTime:    &boot,
		CPUUsage:    &models.CPUUsage{Cores: []float64{10, 20}, Total: 15},
		Memory:      &models.MemoryStats{Total: 8 << 30, Used: 2 << 30, Available: 6 << 30, UsagePercent: 25},
		Disks:       []models.DiskPartition{{Device: "/dev/sda1", Mountpoint: "/", Total: 1 << 30, UsagePercent: 60}},
		Errors:      map[string]error{models.SectionDiskIO: errors.New("disk io counters: unavailable")},
	}
}

func newTestApp(t *testing.T) (*App, *stubCollector) {
	t.Helper()
	stub := &stubCollector{snap: testSnapshot()}
	app := NewApp(context.Background(), stub)

	app.Init()
	app.Update(tea.WindowSizeMsg{Width: 200, Height: 60})
	app.Update(snapshotMsg{snap: stub.snap})
	return app, stub
}

func TestAppShowsFirstSection(t *testing.T) {
	app, _ := newTestApp(t)
	view := app.View()

	if !strings.Contains(view, "devbox") {
		t.Errorf("title should carry node name:\n%s", view)
	}
	if !strings.Contains(view, "1 degraded") {
		t.Errorf("status should count degraded sections:\n%s", view)
	}
	if !strings.Contains(view, "Node Name:") {
		t.Errorf("first tab should show system information:\n%s", view)
	}
}

func TestAppTabNavigation(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if app.activeTab != 0 {
		t.Fatalf("activeTab = %d, want 0", app.activeTab)
	}

	for i := 0; i < 4; i++ {
		app.Update(tea.KeyMsg{Type: tea.KeyRight})
	}
	if got := app.tabs[app.activeTab]; got != models.SectionMemory {
		t.Fatalf("active tab = %q, want %q", got, models.SectionMemory)
	}
	if !strings.Contains(app.viewport.View(), "25.0%") {
		t.Errorf("memory tab should show percentage:\n%s", app.viewport.View())
	}

	for i := 0; i < 20; i++ {
		app.Update(tea.KeyMsg{Type: tea.KeyRight})
	}
	if app.activeTab != len(app.tabs)-1 {
		t.Errorf("activeTab = %d, want last tab", app.activeTab)
	}
}

func TestAppRefresh(t *testing.T) {
	app, stub := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd == nil || !app.collecting {
		t.Fatal("refresh should start a collection")
	}

	// a second refresh while collecting is ignored
	if _, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}); cmd != nil {
		t.Error("refresh during collection should be a no-op")
	}

	msg := app.collect()()
	if stub.calls != 1 {
		t.Errorf("collector called %d times, want 1", stub.calls)
	}
	app.Update(msg)
	if app.collecting {
		t.Error("collecting should be cleared after the snapshot arrives")
	}
}

func TestAppQuit(t *testing.T) {
	app, _ := newTestApp(t)
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestVisibleTabsKeepsActiveTabInView(t *testing.T) {
	app, _ := newTestApp(t)
	app.width = 40

	app.activeTab = len(app.tabs) - 1
	start, end := app.visibleTabs()
	if app.activeTab < start || app.activeTab >= end {
		t.Errorf("active tab %d outside window [%d, %d)", app.activeTab, start, end)
	}

	app.activeTab = 0
	start, _ = app.visibleTabs()
	if start != 0 {
		t.Errorf("window start = %d, want 0", start)
	}
}

func TestRenderBars(t *testing.T) {
	app, _ := newTestApp(t)

	if bars := app.renderBars(models.SectionCPUUsage); len(bars) != 6 {
		t.Errorf("cpu usage bars = %d lines, want 6", len(bars))
	}
	if bars := app.renderBars(models.SectionDisk); len(bars) != 2 || !strings.Contains(bars[0], "/dev/sda1") {
		t.Errorf("disk bars = %v", bars)
	}
	if bars := app.renderBars(models.SectionSystem); len(bars) != 0 {
		t.Errorf("system should have no bars, got %d", len(bars))
	}
}
