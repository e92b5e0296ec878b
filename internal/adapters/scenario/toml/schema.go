package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version   int              `toml:"version"`
	Scenarios []scenarioSchema `toml:"scenarios"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported scenarios schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type scenarioSchema struct {
	Name string `toml:"name"`
	// SampleDir holds "<index>.txt" sample files for positions that declare
	// neither inline samples nor a sample_file.
	SampleDir string           `toml:"sample_dir,omitempty"`
	Positions []positionSchema `toml:"positions"`
}

type positionSchema struct {
	X          float64     `toml:"x"`
	Y          float64     `toml:"y"`
	Samples    [][]float64 `toml:"samples,omitempty"`
	SampleFile string      `toml:"sample_file,omitempty"`
}
