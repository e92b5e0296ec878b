package domain

import "time"

type RunKey struct {
	Scenario int
	Seed     int64
}

// RunRecord is a persisted summary of one path run.
type RunRecord struct {
	Key          RunKey
	Result       ApplicationResult
	Observations int
	RecordedAt   time.Time
}
