package main

import (
	"context"
	"fmt"
	"time"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/craftboard/signcast/internal/engine"
	"github.com/craftboard/signcast/internal/poller"
)

const fetchTimeout = 4 * time.Second

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	chartStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

type tickMsg time.Time

type dataMsg struct {
	stats engine.Stats
	cache cacheReport
	err   error
}

// monitorModel polls the display's API and shows loop health: FPS
// history, frame/drop counters, and per-domain cache ages.
type monitorModel struct {
	client   *apiClient
	interval time.Duration

	stats     engine.Stats
	cache     cacheReport
	fetchErr  error
	lastFetch time.Time

	domains table.Model
	spark   sparkline.Model
	width   int
}

func newMonitorModel(client *apiClient, interval time.Duration) monitorModel {
	columns := []table.Column{
		{Title: "Domain", Width: 18},
		{Title: "Updated", Width: 10},
		{Title: "Age", Width: 10},
		{Title: "State", Width: 8},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(len(poller.Domains)),
		table.WithFocused(false),
	)

	return monitorModel{
		client:   client,
		interval: interval,
		domains:  t,
		spark:    sparkline.New(60, 4, sparkline.WithStyle(chartStyle)),
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(m.fetch(), m.tick())
}

func (m monitorModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m monitorModel) fetch() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		stats, err := client.fetchStats(ctx)
		if err != nil {
			return dataMsg{err: err}
		}
		cache, err := client.fetchCache(ctx)
		if err != nil {
			return dataMsg{err: err}
		}
		return dataMsg{stats: stats, cache: cache}
	}
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.fetch()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 8
		if w < 20 {
			w = 20
		}
		if w > 100 {
			w = 100
		}
		m.spark = sparkline.New(w, 4, sparkline.WithStyle(chartStyle))
		m.redrawChart()

	case tickMsg:
		return m, tea.Batch(m.fetch(), m.tick())

	case dataMsg:
		m.fetchErr = msg.err
		if msg.err == nil {
			m.stats = msg.stats
			m.cache = msg.cache
			m.lastFetch = time.Now()
			m.domains.SetRows(m.domainRows())
			m.redrawChart()
		}
	}
	return m, nil
}

func (m *monitorModel) redrawChart() {
	m.spark.Clear()
	for _, v := range m.stats.FPSSamples {
		m.spark.Push(v)
	}
	m.spark.Draw()
}

func (m monitorModel) domainRows() []table.Row {
	rows := make([]table.Row, 0, len(poller.Domains))
	for _, d := range poller.Domains {
		age, ok := m.cache.Domains[string(d)]
		switch {
		case !ok || !age.Fetched:
			rows = append(rows, table.Row{string(d), "-", "-", "never"})
		default:
			rows = append(rows, table.Row{
				string(d),
				age.LastUpdated.Format("15:04:05"),
				fmtAge(age.AgeSeconds),
				"fresh",
			})
		}
	}
	return rows
}

func fmtAge(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
}

func (m monitorModel) View() string {
	header := titleStyle.Render("SIGNCAST MONITOR")

	if m.fetchErr != nil && m.lastFetch.IsZero() {
		body := badStyle.Render(fmt.Sprintf("cannot reach display API: %v", m.fetchErr))
		hint := labelStyle.Render("is signcast running with api-enabled?  press q to quit")
		return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", hint)
	}

	slide := m.stats.ActiveSlide
	if slide == "" {
		slide = "(empty deck)"
	}

	staleness := goodStyle.Render("fresh")
	if m.stats.Stale {
		staleness = warnStyle.Render("STALE")
	}
	conn := goodStyle.Render("connected")
	if m.cache.Status.UsingMockData {
		conn = warnStyle.Render("mock data")
	} else if !m.cache.Status.IsConnected {
		conn = badStyle.Render("offline")
	}

	summary := lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s %s", labelStyle.Render("FPS:      "), valueStyle.Render(fmt.Sprintf("%.1f", m.stats.FPS))),
		fmt.Sprintf("%s %s", labelStyle.Render("Frames:   "), valueStyle.Render(fmt.Sprintf("%d (%d dropped)", m.stats.FrameCount, m.stats.DropCount))),
		fmt.Sprintf("%s %s", labelStyle.Render("Slide:    "), valueStyle.Render(slide)),
		fmt.Sprintf("%s %s", labelStyle.Render("Data:     "), staleness),
		fmt.Sprintf("%s %s", labelStyle.Render("Source:   "), conn),
		fmt.Sprintf("%s %s", labelStyle.Render("Uptime:   "), valueStyle.Render(fmtUptime(m.stats.StartedAt))),
	)

	chart := borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("fps (last 60s)"),
		m.spark.View(),
	))

	caches := borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render("cache ages"),
		m.domains.View(),
	))

	footer := labelStyle.Render("q quit · r refresh")
	if m.fetchErr != nil {
		footer = badStyle.Render(fmt.Sprintf("last fetch failed: %v", m.fetchErr)) + "  " + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header, "", summary, "", chart, caches, "", footer)
}

func fmtUptime(start time.Time) string {
	if start.IsZero() {
		return "-"
	}
	d := time.Since(start).Round(time.Second)
	return d.String()
}
