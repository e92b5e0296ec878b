package domain

import "time"

type RuleEvaluation struct {
	Rule       RuleID
	Candidate  Context
	Entry      Context
	Offset     int
	OwnerDelta int64
	Elapsed    time.Duration
	Distance   float64
	Passed     bool
}

// Observer receives resolver decisions. Implementations must not retain or
// mutate the window.
type Observer interface {
	RuleEvaluated(RuleEvaluation)
	Resolved(candidate Context, res Resolution)
}

type NopObserver struct{}

func (NopObserver) RuleEvaluated(RuleEvaluation) {}
func (NopObserver) Resolved(Context, Resolution) {}

type multiObserver []Observer

func MultiObserver(observers ...Observer) Observer {
	out := make(multiObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

func (m multiObserver) RuleEvaluated(ev RuleEvaluation) {
	for _, o := range m {
		o.RuleEvaluated(ev)
	}
}

func (m multiObserver) Resolved(candidate Context, res Resolution) {
	for _, o := range m {
		o.Resolved(candidate, res)
	}
}

type RuleCount struct {
	Matched int
	Failed  int
}

// RuleTally counts rule hits over one or more runs. It is not safe for
// concurrent use; give each run its own tally and Merge afterwards.
type RuleTally struct {
	Rules    map[RuleID]RuleCount
	Accepted int
	Rejected int
}

func NewRuleTally() *RuleTally {
	return &RuleTally{Rules: make(map[RuleID]RuleCount, len(Rules))}
}

func (t *RuleTally) RuleEvaluated(ev RuleEvaluation) {
	count := t.Rules[ev.Rule]
	count.Matched++
	if !ev.Passed {
		count.Failed++
	}
	t.Rules[ev.Rule] = count
}

func (t *RuleTally) Resolved(_ Context, res Resolution) {
	if res.Substituted {
		t.Rejected++
		return
	}
	t.Accepted++
}

func (t *RuleTally) Merge(other *RuleTally) {
	if other == nil {
		return
	}
	for id, count := range other.Rules {
		current := t.Rules[id]
		current.Matched += count.Matched
		current.Failed += count.Failed
		t.Rules[id] = current
	}
	t.Accepted += other.Accepted
	t.Rejected += other.Rejected
}
