package zerolog

import (
	"fmt"
	"io"
	"os"

	"github.com/bnema/ctxsim/internal/domain"
	"github.com/rs/zerolog"
)

const (
	EventRule     = "rule"
	EventDecision = "decision"
)

// Tracer writes one JSON line per rule evaluation and one per resolver
// decision. Sampling keeps only candidates whose owner is a multiple of it.
type Tracer struct {
	traceLogger zerolog.Logger
	outFile     *os.File

	Sampling int64
}

var _ domain.Observer = (*Tracer)(nil)

func NewTracer(w io.Writer, key domain.RunKey) *Tracer {
	return &Tracer{
		traceLogger: zerolog.New(w).With().
			Int("scenario", key.Scenario).
			Int64("seed", key.Seed).
			Logger(),
		Sampling: 1,
	}
}

// Create opens (truncating) path and traces into it until Close.
func Create(path string, key domain.RunKey) (*Tracer, error) {
	outFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create trace file: %w", err)
	}

	t := NewTracer(outFile, key)
	t.outFile = outFile
	return t, nil
}

func (t *Tracer) RuleEvaluated(ev domain.RuleEvaluation) {
	if !t.sampled(ev.Candidate.Owner) {
		return
	}

	t.traceLogger.Log().
		Int64("owner", ev.Candidate.Owner).
		Int64("entry", ev.Entry.Owner).
		Int("offset", ev.Offset).
		Str("rule", ev.Rule.String()).
		Int64("ownerDelta", ev.OwnerDelta).
		Int64("elapsedMs", ev.Elapsed.Milliseconds()).
		Float64("distance", ev.Distance).
		Bool("passed", ev.Passed).
		Msg(EventRule)
}

func (t *Tracer) Resolved(candidate domain.Context, res domain.Resolution) {
	if !t.sampled(candidate.Owner) {
		return
	}

	event := t.traceLogger.Log().
		Int64("owner", candidate.Owner).
		Str("timestamp", candidate.Timestamp).
		Str("object", candidate.Object).
		Bool("substituted", res.Substituted).
		Int64("accepted", res.Context.Owner)
	if res.Substituted {
		event = event.
			Str("rule", res.Rule.String()).
			Int64("conflict", res.Conflict.Owner)
	}
	event.Msg(EventDecision)
}

func (t *Tracer) Close() error {
	if t.outFile == nil {
		return nil
	}
	if err := t.outFile.Close(); err != nil {
		return fmt.Errorf("close trace file: %w", err)
	}
	t.outFile = nil
	return nil
}

func (t *Tracer) sampled(owner int64) bool {
	if t.Sampling <= 1 {
		return true
	}
	return owner%t.Sampling == 0
}
