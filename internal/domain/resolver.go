package domain

import (
	"fmt"
	"time"

	"github.com/paulmach/orb/planar"
)

type RuleID int

const (
	RuleNone RuleID = iota
	RuleAdjacentDwell
	RuleAdjacentWalk
	RuleSkipDwell
	RuleSkipWalk
	RuleSkipMixed
)

// Rules lists every rule in evaluation order.
var Rules = []RuleID{RuleAdjacentDwell, RuleAdjacentWalk, RuleSkipDwell, RuleSkipWalk, RuleSkipMixed}

func (id RuleID) String() string {
	switch id {
	case RuleNone:
		return "none"
	case RuleAdjacentDwell:
		return "adjacent-dwell"
	case RuleAdjacentWalk:
		return "adjacent-walk"
	case RuleSkipDwell:
		return "skip-dwell"
	case RuleSkipWalk:
		return "skip-walk"
	case RuleSkipMixed:
		return "skip-mixed"
	default:
		return fmt.Sprintf("rule(%d)", int(id))
	}
}

// stayTolerance widens the dwell interval when deciding whether two
// observations belong to the same stay.
const stayTolerance = 100.0

type rule struct {
	id        RuleID
	matches   func(ownerDelta int64, dtMillis float64) bool
	plausible func(dist, dtMillis float64) bool
}

// Resolution is the outcome of one Resolve call. Context is the value the
// application should use: the candidate when accepted, the prior window head
// when substituted.
type Resolution struct {
	Context     Context
	Substituted bool
	Rule        RuleID
	Conflict    Context
}

type Resolver struct {
	params   Params
	rules    []rule
	observer Observer
}

type ResolverOption func(*Resolver)

func WithObserver(observer Observer) ResolverOption {
	return func(r *Resolver) {
		if observer != nil {
			r.observer = observer
		}
	}
}

func NewResolver(params Params, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		params:   params,
		rules:    buildRules(params),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func buildRules(p Params) []rule {
	dwell := p.stayMillis() + stayTolerance
	walk := p.walkMillis()
	maxDist := 2 * p.AllowedError

	withinDistance := func(dist, _ float64) bool {
		return dist <= maxDist
	}
	withinVelocity := func(dist, dtMillis float64) bool {
		if dtMillis <= 0 {
			return false
		}
		secs := dtMillis / 1000
		ve := dist / secs
		tolerance := maxDist / secs
		return ve >= p.Velocity-tolerance && ve <= p.Velocity+tolerance
	}

	return []rule{
		{
			id:        RuleAdjacentDwell,
			matches:   func(d int64, dt float64) bool { return d == 1 && dt <= dwell },
			plausible: withinDistance,
		},
		{
			id:        RuleAdjacentWalk,
			matches:   func(d int64, dt float64) bool { return d == 1 && dt > dwell },
			plausible: withinVelocity,
		},
		{
			id:        RuleSkipDwell,
			matches:   func(d int64, dt float64) bool { return d == 2 && dt <= 2*dwell },
			plausible: withinDistance,
		},
		{
			id:      RuleSkipWalk,
			matches: func(d int64, dt float64) bool { return d == 2 && dt >= 2*walk },
			plausible: func(dist, dtMillis float64) bool {
				if dtMillis <= 0 {
					return false
				}
				secs := dtMillis / 1000
				return dist/secs <= p.Velocity+maxDist/secs
			},
		},
		{
			id:      RuleSkipMixed,
			matches: func(d int64, dt float64) bool { return d == 2 && dt > 2*dwell && dt < 2*walk },
			plausible: func(dist, dtMillis float64) bool {
				return withinVelocity(dist, dtMillis-p.stayMillis())
			},
		},
	}
}

func (r *Resolver) classify(ownerDelta int64, dtMillis float64) (rule, bool) {
	for _, candidate := range r.rules {
		if candidate.matches(ownerDelta, dtMillis) {
			return candidate, true
		}
	}
	return rule{}, false
}

// Resolve checks candidate against the most recent accepted contexts in
// window. On the first implausible pair the candidate is dropped and the
// current head is returned; otherwise the candidate becomes the new head.
func (r *Resolver) Resolve(candidate Context, window *Window) (Resolution, error) {
	point, err := candidate.Coordinate()
	if err != nil {
		return Resolution{}, fmt.Errorf("candidate %d: %w", candidate.Owner, err)
	}
	at, err := candidate.LogicalTime()
	if err != nil {
		return Resolution{}, fmt.Errorf("candidate %d: %w", candidate.Owner, err)
	}

	scan := min(r.params.WindowScan, window.Len())
	for i := 0; i < scan; i++ {
		entry := window.At(i)
		entryAt, err := entry.LogicalTime()
		if err != nil {
			return Resolution{}, fmt.Errorf("window entry %d: %w", entry.Owner, err)
		}

		ownerDelta := candidate.Owner - entry.Owner
		elapsed := at.Sub(entryAt)
		dtMillis := float64(elapsed) / float64(time.Millisecond)

		matched, ok := r.classify(ownerDelta, dtMillis)
		if !ok {
			continue
		}

		entryPoint, err := entry.Coordinate()
		if err != nil {
			return Resolution{}, fmt.Errorf("window entry %d: %w", entry.Owner, err)
		}
		dist := planar.Distance(entryPoint, point)
		passed := matched.plausible(dist, dtMillis)

		r.observer.RuleEvaluated(RuleEvaluation{
			Rule:       matched.id,
			Candidate:  candidate,
			Entry:      entry,
			Offset:     i,
			OwnerDelta: ownerDelta,
			Elapsed:    elapsed,
			Distance:   dist,
			Passed:     passed,
		})

		if !passed {
			head, _ := window.Head()
			window.substitutions++
			res := Resolution{Context: head, Substituted: true, Rule: matched.id, Conflict: entry}
			r.observer.Resolved(candidate, res)
			return res, nil
		}
	}

	window.push(candidate)
	res := Resolution{Context: candidate}
	r.observer.Resolved(candidate, res)
	return res, nil
}
