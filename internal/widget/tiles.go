package widget

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/hamed-elfayome/Claude-Usage-Tracker-sub002/internal/metrics"
)

const tileBarWidth = 24

var (
	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	tileTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	tileCaptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// RenderTile renders the model as a text tile of the model's kind.
func RenderTile(model *RenderModel) string {
	if !model.HasData() {
		return tileStyle.Render(noDataStyle.Render("No usage data yet"))
	}

	switch model.Kind {
	case KindMedium:
		return renderMediumTile(model)
	case KindLarge:
		return renderLargeTile(model)
	default:
		return renderSmallTile(model)
	}
}

func renderSmallTile(model *RenderModel) string {
	metric := model.MetricFor(model.Settings.SmallTileMetric)
	return tileStyle.Render(renderMetricBlock(model, metric, true))
}

func renderMediumTile(model *RenderModel) string {
	blocks := make([]string, 0, 2)
	for _, name := range model.Settings.MediumTileMetrics {
		blocks = append(blocks, renderMetricBlock(model, model.MetricFor(name), false))
	}
	return tileStyle.Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

func renderLargeTile(model *RenderModel) string {
	sections := []string{
		renderMetricBlock(model, model.Derived.Session, false),
		renderMetricBlock(model, model.Derived.Weekly, false),
	}

	names := make([]string, 0, len(model.Derived.PerModel))
	for name := range model.Derived.PerModel {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		metric := model.Derived.PerModel[name]
		line := fmt.Sprintf("%-8s %s", name,
			lipgloss.NewStyle().Foreground(metric.Color).Render(fmt.Sprintf("%3.0f%%", metric.Percentage)))
		sections = append(sections, line)
	}

	sections = append(sections,
		tileCaptionStyle.Render("Extra: ")+model.Derived.ExtraText)

	return tileStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderMetricBlock renders one metric as title, percentage, optional
// progress bar and reset caption.
func renderMetricBlock(model *RenderModel, metric Metric, compact bool) string {
	title := tileTitleStyle.Render(metricLabel(string(metric.Name)))
	value := lipgloss.NewStyle().
		Bold(true).
		Foreground(metric.Color).
		Render(fmt.Sprintf("%.0f%%", metric.Percentage))

	lines := []string{title + " " + value}

	if model.Settings.ShowProgressBar {
		bar := progress.New(
			progress.WithSolidFill(string(metric.Color)),
			progress.WithWidth(tileBarWidth),
			progress.WithoutPercentage(),
		)
		lines = append(lines, bar.ViewAs(metric.Percentage/100))
	}

	if metric.ResetText != "" && !compact {
		lines = append(lines, tileCaptionStyle.Render("Resets "+metric.ResetText))
	} else if metric.ResetText != "" {
		lines = append(lines, tileCaptionStyle.Render(metric.ResetText))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func metricLabel(name string) string {
	switch name {
	case "session":
		return "Session"
	case "weekly":
		return "Weekly"
	case "extra":
		return "Extra usage"
	default:
		if name == "" {
			return "Usage"
		}
		return strings.ToUpper(name[:1]) + name[1:]
	}
}

// StatusGlyph returns a one-character indicator for a status level,
// used by the companion status line.
func StatusGlyph(level metrics.StatusLevel) string {
	switch level {
	case metrics.StatusCritical:
		return "!"
	case metrics.StatusModerate:
		return "~"
	default:
		return "·"
	}
}
