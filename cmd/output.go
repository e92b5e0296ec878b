package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bnema/ctxsim/internal/application"
	"github.com/bnema/ctxsim/internal/domain"
	"github.com/spf13/cobra"
)

type ruleCountOutput struct {
	Matched int `json:"matched"`
	Failed  int `json:"failed"`
}

type coverageOutput struct {
	Rules    map[string]ruleCountOutput `json:"rules"`
	Accepted int                        `json:"accepted"`
	Rejected int                        `json:"rejected"`
}

type stepOutput struct {
	Seq         int64   `json:"seq"`
	Episode     int     `json:"episode"`
	Position    int     `json:"position"`
	Timestamp   string  `json:"timestamp"`
	Object      string  `json:"object"`
	Accepted    string  `json:"accepted"`
	Error       float64 `json:"error"`
	Moved       bool    `json:"moved"`
	Reliable    bool    `json:"reliable"`
	Substituted bool    `json:"substituted"`
	Rule        string  `json:"rule,omitempty"`
}

type recordOutput struct {
	Scenario     int                      `json:"scenario"`
	Seed         int64                    `json:"seed"`
	Result       domain.ApplicationResult `json:"result"`
	Observations int                      `json:"observations"`
	RecordedAt   string                   `json:"recorded_at,omitempty"`
}

type runOutput struct {
	recordOutput
	Retained int             `json:"retained"`
	Coverage *coverageOutput `json:"coverage,omitempty"`
	Steps    []stepOutput    `json:"steps,omitempty"`
}

type batchOutput struct {
	Runs     []recordOutput           `json:"runs"`
	Totals   domain.ApplicationResult `json:"totals"`
	Coverage *coverageOutput          `json:"coverage,omitempty"`
}

type positionOutput struct {
	Index   int     `json:"index"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Samples int     `json:"samples"`
}

type scenarioOutput struct {
	ID        int              `json:"id"`
	Name      string           `json:"name"`
	Positions []positionOutput `json:"positions"`
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRendered(cmd *cobra.Command, what string, render func() (string, error)) error {
	rendered, err := render()
	if err != nil {
		return fmt.Errorf("render %s: %w", what, err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func newRecordOutput(record domain.RunRecord) recordOutput {
	out := recordOutput{
		Scenario:     record.Key.Scenario,
		Seed:         record.Key.Seed,
		Result:       record.Result,
		Observations: record.Observations,
	}
	if !record.RecordedAt.IsZero() {
		out.RecordedAt = record.RecordedAt.UTC().Format(time.RFC3339)
	}
	return out
}

func newRunOutput(report application.SimulationReport, withCoverage, withSteps bool) runOutput {
	out := runOutput{
		recordOutput: newRecordOutput(report.Record),
		Retained:     report.Retained,
	}
	if withCoverage {
		out.Coverage = newCoverageOutput(report.Coverage)
	}
	if withSteps {
		out.Steps = make([]stepOutput, 0, len(report.Steps))
		for _, step := range report.Steps {
			out.Steps = append(out.Steps, newStepOutput(step))
		}
	}
	return out
}

func newBatchOutput(report application.BatchReport, withCoverage bool) batchOutput {
	out := batchOutput{
		Runs:   make([]recordOutput, 0, len(report.Records)),
		Totals: report.Totals,
	}
	for _, record := range report.Records {
		out.Runs = append(out.Runs, newRecordOutput(record))
	}
	if withCoverage {
		out.Coverage = newCoverageOutput(report.Coverage)
	}
	return out
}

func newCoverageOutput(tally *domain.RuleTally) *coverageOutput {
	if tally == nil {
		return nil
	}

	out := &coverageOutput{
		Rules:    make(map[string]ruleCountOutput, len(domain.Rules)),
		Accepted: tally.Accepted,
		Rejected: tally.Rejected,
	}
	for _, id := range domain.Rules {
		count := tally.Rules[id]
		out.Rules[id.String()] = ruleCountOutput{Matched: count.Matched, Failed: count.Failed}
	}
	return out
}

func newStepOutput(step application.Step) stepOutput {
	out := stepOutput{
		Seq:         step.Observation.Seq,
		Episode:     step.Observation.Episode,
		Position:    step.Observation.Position,
		Timestamp:   step.Candidate.Timestamp,
		Object:      step.Candidate.Object,
		Accepted:    step.Resolution.Context.Object,
		Error:       step.Error,
		Moved:       step.Moved,
		Reliable:    step.Reliable,
		Substituted: step.Resolution.Substituted,
	}
	if step.Resolution.Substituted {
		out.Rule = step.Resolution.Rule.String()
	}
	return out
}

func newScenarioOutput(scenario domain.Scenario) scenarioOutput {
	out := scenarioOutput{
		ID:        scenario.ID,
		Name:      scenario.Name,
		Positions: make([]positionOutput, 0, len(scenario.Positions)),
	}
	for _, position := range scenario.Positions {
		out.Positions = append(out.Positions, positionOutput{
			Index:   position.Index,
			X:       position.Actual.X(),
			Y:       position.Actual.Y(),
			Samples: len(position.Samples),
		})
	}
	return out
}
