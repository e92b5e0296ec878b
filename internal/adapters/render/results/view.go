package results

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/ctxsim/internal/application"
	"github.com/bnema/ctxsim/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
)

const barWidth = 24

type RenderOptions struct {
	Steps    bool
	Coverage bool
}

func RenderReport(report application.SimulationReport, opts RenderOptions) (string, error) {
	return render(func(s styles) string {
		return reportView(report, opts, s)
	})
}

func RenderBatch(report application.BatchReport, opts RenderOptions) (string, error) {
	return render(func(s styles) string {
		return batchView(report, opts, s)
	})
}

func RenderRecords(records []domain.RunRecord) (string, error) {
	return render(func(s styles) string {
		return recordsView(records, s)
	})
}

func RenderScenarios(summaries []application.ScenarioSummary, defaultScenario int) (string, error) {
	return render(func(s styles) string {
		return scenariosView(summaries, defaultScenario, s)
	})
}

func RenderScenario(scenario domain.Scenario) (string, error) {
	return render(func(s styles) string {
		return scenarioView(scenario, s)
	})
}

func reportView(report application.SimulationReport, opts RenderOptions, s styles) string {
	record := report.Record
	lines := []string{
		s.title.Render("Context Resolution Run"),
		s.header.Render(fmt.Sprintf("scenario: %d  seed: %d  observations: %d",
			record.Key.Scenario, record.Key.Seed, record.Observations)),
		s.section.Render(s.run.Render(resultLine(record.Result))),
		reliabilityLine(record.Result.Reliable, record.Observations, s),
		s.detail.Render(fmt.Sprintf("retained: %d contexts", report.Retained)),
	}

	if opts.Steps {
		steps := make([]string, 0, len(report.Steps))
		for _, step := range report.Steps {
			steps = append(steps, stepLine(step, s))
		}
		if len(steps) == 0 {
			steps = append(steps, s.empty.Render("No observations."))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, steps...)))
	}

	if opts.Coverage && report.Coverage != nil {
		lines = append(lines, s.section.Render(coverageView(report.Coverage, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func batchView(report application.BatchReport, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Context Resolution Batch"),
		s.header.Render(fmt.Sprintf("runs: %d", len(report.Records))),
	}

	if len(report.Records) == 0 {
		lines = append(lines, s.empty.Render("No runs."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	observations := 0
	runs := make([]string, 0, len(report.Records))
	for _, record := range report.Records {
		observations += record.Observations
		runs = append(runs, recordLine(record, s))
	}

	lines = append(lines,
		s.section.Render(s.run.Render("total "+resultLine(report.Totals))),
		reliabilityLine(report.Totals.Reliable, observations, s),
		s.section.Render(lipgloss.JoinVertical(lipgloss.Left, runs...)),
	)

	if opts.Coverage && report.Coverage != nil {
		lines = append(lines, s.section.Render(coverageView(report.Coverage, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func recordsView(records []domain.RunRecord, s styles) string {
	lines := []string{
		s.title.Render("Saved Runs"),
		s.header.Render(fmt.Sprintf("runs: %d", len(records))),
	}

	if len(records) == 0 {
		lines = append(lines, s.empty.Render("No saved runs."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, record := range records {
		line := recordLine(record, s)
		if !record.RecordedAt.IsZero() {
			line += " " + s.meta.Render("recorded "+record.RecordedAt.UTC().Format(time.RFC3339))
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func scenariosView(summaries []application.ScenarioSummary, defaultScenario int, s styles) string {
	lines := []string{
		s.title.Render("Scenarios"),
		s.header.Render(fmt.Sprintf("scenarios: %d", len(summaries))),
	}

	if len(summaries) == 0 {
		lines = append(lines, s.empty.Render("No scenarios loaded."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, summary := range summaries {
		line := lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.run.Render(fmt.Sprintf("[%d] %s", summary.ID, summary.Name)),
			" ",
			s.detail.Render(fmt.Sprintf("positions: %d  samples: %d", summary.Positions, summary.Samples)),
		)
		if summary.ID == defaultScenario {
			line += " " + s.meta.Render("(default)")
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func scenarioView(scenario domain.Scenario, s styles) string {
	lines := []string{
		s.title.Render(fmt.Sprintf("Scenario %d: %s", scenario.ID, scenario.Name)),
		s.header.Render(fmt.Sprintf("positions: %d", len(scenario.Positions))),
	}

	for _, position := range scenario.Positions {
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.key.Render(fmt.Sprintf("#%d", position.Index)),
			" ",
			s.detail.Render(formatPoint(position.Actual)),
			" ",
			s.meta.Render(fmt.Sprintf("samples: %d", len(position.Samples))),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func coverageView(tally *domain.RuleTally, s styles) string {
	lines := []string{s.title.Render("Rule coverage")}
	for _, id := range domain.Rules {
		count := tally.Rules[id]
		line := lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.key.Render(fmt.Sprintf("%-15s", id.String())),
			" ",
			s.detail.Render(fmt.Sprintf("matched %d  failed %d", count.Matched, count.Failed)),
		)
		if count.Matched == 0 {
			line += " " + s.warning.Render("[never matched]")
		}
		lines = append(lines, line)
	}
	lines = append(lines, s.meta.Render(fmt.Sprintf("accepted: %d  rejected: %d", tally.Accepted, tally.Rejected)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func resultLine(result domain.ApplicationResult) string {
	return fmt.Sprintf("moved: %d  reliable: %d  counter: %d", result.Moved, result.Reliable, result.Counter)
}

func recordLine(record domain.RunRecord, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.key.Render(fmt.Sprintf("scenario %d seed %d:", record.Key.Scenario, record.Key.Seed)),
		" ",
		s.detail.Render(resultLine(record.Result)),
		" ",
		s.meta.Render(fmt.Sprintf("(%d obs)", record.Observations)),
	)
}

func reliabilityLine(reliable, observations int, s styles) string {
	percent := 0.0
	if observations > 0 {
		percent = float64(reliable) * 100 / float64(observations)
	}

	percentStyle := lipgloss.NewStyle().Foreground(interpolateColor(percent, 0, 100))
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.key.Render("reliability:"),
		" ",
		renderProgressBar(percent, barWidth, s),
		" ",
		percentStyle.Render(fmt.Sprintf("%3.0f%%", percent)),
	)
}

func stepLine(step application.Step, s styles) string {
	obs := step.Observation
	parts := []string{
		s.key.Render(fmt.Sprintf("#%-3d", obs.Seq)),
		s.meta.Render(fmt.Sprintf("ep %d pos %d", obs.Episode, obs.Position)),
		s.detail.Render("est " + formatPoint(obs.Estimate)),
		s.detail.Render("-> " + formatPoint(step.Accepted)),
		s.meta.Render(fmt.Sprintf("err %.3f", step.Error)),
	}

	var flags []string
	if step.Moved {
		flags = append(flags, "moved")
	}
	if !step.Reliable {
		flags = append(flags, "unreliable")
	}
	if len(flags) > 0 {
		parts = append(parts, s.meta.Render("["+strings.Join(flags, ",")+"]"))
	}

	if step.Resolution.Substituted {
		parts = append(parts, s.warning.Render(fmt.Sprintf("rejected by %s vs #%d",
			step.Resolution.Rule, step.Resolution.Conflict.Owner)))
	}

	return strings.Join(parts, " ")
}

func formatPoint(p orb.Point) string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X(), p.Y())
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(percent) / 100))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	return lipgloss.Color(strconv.Itoa(int(240 + 15*normalized)))
}
