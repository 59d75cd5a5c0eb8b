package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/guptarohit/asciigraph"
	"github.com/samber/lo"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/history"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/metrics"
	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/widget"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			MarginBottom(1)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	captionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

const dashboardBarWidth = 36

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder

	title := "Claude Usage"
	if p := m.activeProfile(); p != nil && p.DisplayName != "" {
		title += " — " + p.DisplayName
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if m.render == nil || !m.render.HasData() {
		b.WriteString(cardStyle.Render(captionStyle.Render("No usage data yet. Is the daemon running?")))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("q quit · r refresh · p switch profile"))
		return b.String()
	}

	b.WriteString(m.renderQuotaCard())
	if chart := m.renderChartCard(); chart != "" {
		b.WriteString(chart)
	}
	b.WriteString(helpStyle.Render("q quit · r refresh · p switch profile"))
	return b.String()
}

func (m Model) renderQuotaCard() string {
	lines := []string{cardTitleStyle.Render("Quota"), ""}
	lines = append(lines,
		m.renderBar(m.render.Derived.Session),
		m.renderBar(m.render.Derived.Weekly),
	)

	names := lo.Keys(m.render.Derived.PerModel)
	sort.Strings(names)
	for _, name := range names {
		lines = append(lines, m.renderBar(m.render.Derived.PerModel[name]))
	}

	lines = append(lines, "", captionStyle.Render("Extra usage: ")+m.render.Derived.ExtraText)
	card := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return m.fit(card) + "\n"
}

func (m Model) renderBar(metric widget.Metric) string {
	label := fmt.Sprintf("%-8s", widgetLabel(metric))
	bar := progress.New(
		progress.WithSolidFill(string(metric.Color)),
		progress.WithWidth(dashboardBarWidth),
		progress.WithoutPercentage(),
	)
	pct := lipgloss.NewStyle().Foreground(metric.Color).
		Render(fmt.Sprintf("%3.0f%% %s", metric.Percentage, widget.StatusGlyph(metric.Level)))

	line := fmt.Sprintf("%s %s %s", label, bar.ViewAs(metric.Percentage/100), pct)
	if metric.ResetText != "" {
		line += "  " + captionStyle.Render("resets "+metric.ResetText)
	}
	return line
}

func widgetLabel(metric widget.Metric) string {
	name := string(metric.Name)
	if name == "" {
		return "Usage"
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func (m Model) renderChartCard() string {
	if len(m.points) < 2 {
		return ""
	}

	session := lo.Map(m.points, func(p history.Point, _ int) float64 {
		return metrics.Clamp(p.SessionPct)
	})

	width := m.width - 16
	if width < 24 {
		width = 24
	}
	graph := asciigraph.Plot(session,
		asciigraph.Height(6),
		asciigraph.Width(width),
		asciigraph.Caption("session usage, last 24h"),
	)

	lines := []string{cardTitleStyle.Render("History"), "", graph}
	return m.fit(cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))) + "\n"
}

// fit truncates rendered lines to the terminal width.
func (m Model) fit(s string) string {
	if m.width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, m.width, "")
	}
	return strings.Join(lines, "\n")
}
