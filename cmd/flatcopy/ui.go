package main

import (
	"fmt"
	"strings"
	"time"

	"flatcopy/internal/config"
	"flatcopy/pkg/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7B61FF"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Width(10)

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#73F59F")).
		Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C"))

	summaryBox = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7B61FF"))
)

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

func count(n int, style lipgloss.Style) string {
	if n == 0 {
		return fmt.Sprint(n)
	}
	return style.Render(fmt.Sprint(n))
}

// renderSummary formats the end-of-run report.
func renderSummary(cfg *config.Config, s *types.RunSummary) string {
	title := "Flattened " + cfg.SourceDir
	doneLabel, done := "Copied", s.Copied
	if s.DryRun {
		title = "Dry run for " + cfg.SourceDir
		doneLabel, done = "Planned", s.Candidates()-s.Failed
	}

	lines := []string{
		titleStyle.Render(title),
		row("Into", cfg.DestDir),
		row(doneLabel, count(done, okStyle)),
		row("Failed", count(s.Failed, failStyle)),
		row("Filtered", fmt.Sprint(s.Filtered)),
		row("Warnings", count(len(s.Warnings), warnStyle)),
		row("Size", humanize.Bytes(uint64(s.Bytes))),
		row("Took", s.Duration.Round(time.Millisecond).String()),
	}
	if cfg.Preset != "" {
		lines = append(lines, row("Preset", cfg.Preset))
	}
	return summaryBox.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderPlan lists each planned copy in order, one per line.
func renderPlan(s *types.RunSummary) string {
	var b strings.Builder
	for _, r := range s.Results {
		if r.Error != nil {
			continue
		}
		fmt.Fprintf(&b, "%s -> %s\n", r.Task.Rel, okStyle.Render(r.Task.Name))
	}
	return b.String()
}

// renderPresets describes every built-in preset.
func renderPresets(presets []config.Preset) string {
	blocks := make([]string, 0, len(presets))
	for _, p := range presets {
		targets := "(whole tree)"
		if len(p.TargetDirs) > 0 {
			targets = joinNames(p.TargetDirs)
		}
		blocks = append(blocks, lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(string(p.Name))+"  "+p.Description,
			row("  include", orNone(p.IncludedExtensions)),
			row("  exclude", orNone(p.ExcludedExtensions)),
			row("  ignore", orNone(p.IgnoredDirs)),
			row("  targets", targets),
		))
	}
	return strings.Join(blocks, "\n\n")
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return joinNames(items)
}

func joinNames(items []string) string {
	return strings.Join(items, ", ")
}
