package domain

import (
	"fmt"
	"time"
)

const (
	DefaultAllowedError = 0.5
	DefaultVelocity     = 2.0
	DefaultStayTime     = 200 * time.Millisecond
	DefaultWalkDist     = 0.9
	DefaultNoise        = 0.5
	DefaultMaxStay      = 5
	DefaultWindowScan   = 10
	DefaultEpisodes     = 6
)

// Params holds the physical plausibility constants shared by the mobility
// generator and the resolver. Distances are metres, Velocity is m/s.
type Params struct {
	AllowedError float64
	Velocity     float64
	StayTime     time.Duration
	WalkDist     float64
	Noise        float64
	MaxStay      int
	WindowScan   int
	Episodes     int
}

func DefaultParams() Params {
	return Params{
		AllowedError: DefaultAllowedError,
		Velocity:     DefaultVelocity,
		StayTime:     DefaultStayTime,
		WalkDist:     DefaultWalkDist,
		Noise:        DefaultNoise,
		MaxStay:      DefaultMaxStay,
		WindowScan:   DefaultWindowScan,
		Episodes:     DefaultEpisodes,
	}
}

func (p Params) Validate() error {
	if p.AllowedError <= 0 {
		return fmt.Errorf("allowed error must be positive, got %g", p.AllowedError)
	}
	if p.Velocity <= 0 {
		return fmt.Errorf("velocity must be positive, got %g", p.Velocity)
	}
	if p.StayTime <= 0 {
		return fmt.Errorf("stay time must be positive, got %s", p.StayTime)
	}
	if p.WalkDist <= 0 {
		return fmt.Errorf("walk distance must be positive, got %g", p.WalkDist)
	}
	if p.Noise < 0 {
		return fmt.Errorf("noise must not be negative, got %g", p.Noise)
	}
	if p.MaxStay < 1 {
		return fmt.Errorf("max stay must be at least 1, got %d", p.MaxStay)
	}
	if p.WindowScan < 1 {
		return fmt.Errorf("window scan must be at least 1, got %d", p.WindowScan)
	}
	if p.Episodes < 1 {
		return fmt.Errorf("episodes must be at least 1, got %d", p.Episodes)
	}

	return nil
}

// stayMillis is the dwell interval in milliseconds.
func (p Params) stayMillis() float64 {
	return float64(p.StayTime) / float64(time.Millisecond)
}

// walkMillis is the time needed to cover WalkDist at Velocity, in milliseconds.
func (p Params) walkMillis() float64 {
	return p.WalkDist * 1000 / p.Velocity
}
