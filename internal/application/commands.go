package application

import (
	"errors"
	"fmt"

	"github.com/bnema/ctxsim/internal/domain"
)

type SimulateCommand struct {
	Scenario int
	Seed     int64
	Save     bool
	Observer domain.Observer
}

type BatchCommand struct {
	Scenario int
	Seeds    []int64
	Parallel int
	Save     bool
	// Progress, when set, is called once per finished run. It may be called
	// from several goroutines.
	Progress func(done, total int)
}

// MaxBatchSeeds bounds the number of seeds one batch may cover.
const MaxBatchSeeds = 1_000_000

var ErrSeedRangeTooLarge = errors.New("seed range too large")

// SeedRange returns the seeds from..to inclusive. An inverted range is empty.
func SeedRange(from, to int64) ([]int64, error) {
	if to < from {
		return nil, nil
	}

	span := uint64(to - from)
	if span >= MaxBatchSeeds {
		return nil, fmt.Errorf("%w: %d..%d exceeds %d seeds", ErrSeedRangeTooLarge, from, to, MaxBatchSeeds)
	}

	seeds := make([]int64, 0, span+1)
	for seed := from; ; seed++ {
		seeds = append(seeds, seed)
		if seed == to {
			break
		}
	}
	return seeds, nil
}
