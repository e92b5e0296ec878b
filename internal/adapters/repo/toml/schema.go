package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int            `toml:"version"`
	Runs    []recordSchema `toml:"runs"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported results schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type recordSchema struct {
	Scenario     int    `toml:"scenario"`
	Seed         int64  `toml:"seed"`
	Moved        int    `toml:"moved"`
	Reliable     int    `toml:"reliable"`
	Counter      int    `toml:"counter"`
	Observations int    `toml:"observations"`
	RecordedAt   string `toml:"recorded_at"`
}
