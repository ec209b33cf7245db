package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/prabalesh/hwinfo/internal/models"
)

// Reserved rows: title, status, tabs, help and the blank lines between them.
const chromeHeight = 8

// Collector takes one snapshot of the host.
type Collector interface {
	Collect(ctx context.Context) *models.Snapshot
}

type snapshotMsg struct {
	snap *models.Snapshot
}

// App is an interactive browser over one report, one tab per section.
type App struct {
	ctx       context.Context
	collector Collector

	snap   *models.Snapshot
	report *models.Report

	tabs            []string
	activeTab       int
	tabScrollOffset int

	width      int
	height     int
	ready      bool
	collecting bool

	spinner  spinner.Model
	viewport viewport.Model
	bar      progress.Model
}

func NewApp(ctx context.Context, c Collector) *App {
	return &App{
		ctx:       ctx,
		collector: c,
		tabs:      models.SectionOrder,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		bar:       progress.New(progress.WithDefaultGradient()),
	}
}

func (a *App) Init() tea.Cmd {
	a.collecting = true
	return tea.Batch(a.spinner.Tick, a.collect())
}

func (a *App) collect() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg{snap: a.collector.Collect(a.ctx)}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		contentHeight := max(1, a.height-chromeHeight)
		if !a.ready {
			a.viewport = viewport.New(a.width, contentHeight)
			a.ready = true
		} else {
			a.viewport.Width = a.width
			a.viewport.Height = contentHeight
		}
		a.bar.Width = max(10, min(50, a.width-20))
		a.refreshContent()
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return a, tea.Quit
		case "left", "h":
			if a.activeTab > 0 {
				a.activeTab--
				a.refreshContent()
				a.viewport.GotoTop()
			}
			return a, nil
		case "right", "l":
			if a.activeTab < len(a.tabs)-1 {
				a.activeTab++
				a.refreshContent()
				a.viewport.GotoTop()
			}
			return a, nil
		case "r":
			if a.collecting {
				return a, nil
			}
			a.collecting = true
			return a, tea.Batch(a.spinner.Tick, a.collect())
		}

	case spinner.TickMsg:
		if !a.collecting {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case snapshotMsg:
		a.collecting = false
		a.snap = msg.snap
		a.report = msg.snap.Report()
		a.refreshContent()
		return a, nil
	}

	if !a.ready {
		return a, nil
	}
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	title := TitleStyle.Width(a.width).Render(a.title())

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		a.status(),
		"",
		a.renderTabs(),
		"",
		a.viewport.View(),
		"",
		HelpStyle.Render("←/→ h/l: sections • ↑/↓ k/j: scroll • PgUp/PgDn: page • r: refresh • q: quit"),
	)
}

func (a *App) title() string {
	if a.snap != nil && a.snap.System != nil {
		return "hwinfo · " + a.snap.System.NodeName
	}
	return "hwinfo"
}

func (a *App) status() string {
	if a.collecting {
		return a.spinner.View() + " sampling host metrics..."
	}
	if a.snap == nil {
		return ""
	}

	parts := []string{"collected " + a.snap.CollectedAt.Format("15:04:05")}
	if a.snap.BootTime != nil {
		parts = append(parts, "booted "+humanize.Time(*a.snap.BootTime))
	}
	if n := len(a.snap.Errors); n > 0 {
		parts = append(parts, ErrorStyle.Render(fmt.Sprintf("%d degraded", n)))
	}
	return HelpStyle.Render(strings.Join(parts, " • "))
}

// visibleTabs returns the window of tabs that fits the terminal width and
// keeps the active tab in view.
func (a *App) visibleTabs() (start, end int) {
	if a.activeTab < a.tabScrollOffset {
		a.tabScrollOffset = a.activeTab
	}

	available := a.width - 10
	for {
		width := 0
		end = a.tabScrollOffset
		for end < len(a.tabs) {
			w := len(a.tabs[end]) + 4
			if width+w > available && end > a.tabScrollOffset {
				break
			}
			width += w
			end++
		}
		if a.activeTab < end || a.tabScrollOffset >= a.activeTab {
			return a.tabScrollOffset, end
		}
		a.tabScrollOffset++
	}
}

func (a *App) renderTabs() string {
	start, end := a.visibleTabs()

	var elements []string
	if start > 0 {
		elements = append(elements, IndicatorStyle.Render("‹"))
	}
	for i := start; i < end; i++ {
		if i == a.activeTab {
			elements = append(elements, ActiveTabStyle.Render(a.tabs[i]))
		} else {
			elements = append(elements, InactiveTabStyle.Render(a.tabs[i]))
		}
	}
	if end < len(a.tabs) {
		elements = append(elements, IndicatorStyle.Render("›"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Left, elements...)
}

func (a *App) refreshContent() {
	if !a.ready {
		return
	}
	if a.report == nil {
		a.viewport.SetContent("")
		return
	}

	name := a.tabs[a.activeTab]
	content := []string{RenderSection(name, a.report.Section(name))}
	if bars := a.renderBars(name); len(bars) > 0 {
		content = append(content, "", SubHeaderStyle.Render("Usage"))
		content = append(content, bars...)
	}

	a.viewport.SetContent(BaseStyle.Width(max(20, a.width-4)).Render(
		lipgloss.JoinVertical(lipgloss.Left, content...),
	))
}

// renderBars draws a progress bar for every percentage in the section.
func (a *App) renderBars(section string) []string {
	s := a.snap
	var bars []string
	add := func(label string, percent float64) {
		bars = append(bars, LabelStyle.Render(label), a.bar.ViewAs(percent/100))
	}

	switch section {
	case models.SectionCPUUsage:
		if s.CPUUsage != nil {
			add("Total", s.CPUUsage.Total)
			for i, p := range s.CPUUsage.Cores {
				add(fmt.Sprintf("Core %d", i), p)
			}
		}
	case models.SectionMemory:
		if s.Memory != nil {
			add("Memory", s.Memory.UsagePercent)
		}
	case models.SectionSwap:
		if s.Swap != nil {
			add("Swap", s.Swap.UsagePercent)
		}
	case models.SectionDisk:
		for _, d := range s.Disks {
			add(d.Device+" ("+d.Mountpoint+")", d.UsagePercent)
		}
	case models.SectionGPU:
		for _, g := range s.GPUs {
			add(fmt.Sprintf("GPU %d load", g.ID), g.Load)
			if g.MemoryTotal > 0 {
				add(fmt.Sprintf("GPU %d memory", g.ID), g.MemoryUsed/g.MemoryTotal*100)
			}
		}
	}
	return bars
}
