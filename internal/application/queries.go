package application

import "github.com/bnema/ctxsim/internal/domain"

type SimulationReport struct {
	Record   domain.RunRecord
	Steps    []Step
	Coverage *domain.RuleTally
	Retained int
}

type BatchReport struct {
	Records  []domain.RunRecord
	Totals   domain.ApplicationResult
	Coverage *domain.RuleTally
}

type ScenarioSummary struct {
	ID        int
	Name      string
	Positions int
	Samples   int
}
