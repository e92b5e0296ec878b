package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bnema/ctxsim/internal/domain"
	"github.com/bnema/ctxsim/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	ResultsPathKey    = "results.path"
	resultsFileMode   = 0o600
	resultsDirMode    = 0o700
	resultsConfigDir  = ".ctxsim"
	resultsConfigFile = "results.toml"
	tempFilePattern   = ".results-*.toml.tmp"
)

type Repository struct {
	resultsPath string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ResultRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg.SetDefault(ResultsPathKey, filepath.Join(homeDir, resultsConfigDir, resultsConfigFile))

	resultsPath := cfg.GetString(ResultsPathKey)
	if resultsPath == "" {
		return nil, errors.New("results path is empty")
	}
	resultsPath, err = normalizeResultsPath(resultsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{resultsPath: resultsPath, mu: lockForPath(resultsPath)}, nil
}

func (r *Repository) Path() string {
	return r.resultsPath
}

// Save upserts records by (scenario, seed) in one atomic file replace.
func (r *Repository) Save(ctx context.Context, records []domain.RunRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	index := make(map[domain.RunKey]int, len(file.Runs))
	for i, entry := range file.Runs {
		index[domain.RunKey{Scenario: entry.Scenario, Seed: entry.Seed}] = i
	}

	for _, record := range records {
		encoded := toSchema(record)
		if i, ok := index[record.Key]; ok {
			file.Runs[i] = encoded
			continue
		}
		index[record.Key] = len(file.Runs)
		file.Runs = append(file.Runs, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) Get(ctx context.Context, key domain.RunKey) (domain.RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.RunRecord{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.RunRecord{}, err
	}

	for _, entry := range file.Runs {
		if entry.Scenario == key.Scenario && entry.Seed == key.Seed {
			return fromSchema(entry), nil
		}
	}

	return domain.RunRecord{}, domain.ErrRecordNotFound
}

// List returns records ordered by scenario then seed.
func (r *Repository) List(ctx context.Context) ([]domain.RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	records := make([]domain.RunRecord, 0, len(file.Runs))
	for _, entry := range file.Runs {
		records = append(records, fromSchema(entry))
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Key.Scenario != records[j].Key.Scenario {
			return records[i].Key.Scenario < records[j].Key.Scenario
		}
		return records[i].Key.Seed < records[j].Key.Seed
	})

	return records, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.resultsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{Version: currentSchemaVersion}, nil
		}
		return fileSchema{}, fmt.Errorf("read results file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode results file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeResultsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve results path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.resultsPath), resultsDirMode); err != nil {
		return fmt.Errorf("create results directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode results file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.resultsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp results file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp results file: %w", err)
	}

	if err := tempFile.Chmod(resultsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp results file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp results file: %w", err)
	}

	if err := os.Rename(tempName, r.resultsPath); err != nil {
		return fmt.Errorf("replace results file: %w", err)
	}

	cleanup = false
	return nil
}

func toSchema(record domain.RunRecord) recordSchema {
	return recordSchema{
		Scenario:     record.Key.Scenario,
		Seed:         record.Key.Seed,
		Moved:        record.Result.Moved,
		Reliable:     record.Result.Reliable,
		Counter:      record.Result.Counter,
		Observations: record.Observations,
		RecordedAt:   formatTime(record.RecordedAt),
	}
}

func fromSchema(entry recordSchema) domain.RunRecord {
	return domain.RunRecord{
		Key: domain.RunKey{Scenario: entry.Scenario, Seed: entry.Seed},
		Result: domain.ApplicationResult{
			Moved:    entry.Moved,
			Reliable: entry.Reliable,
			Counter:  entry.Counter,
		},
		Observations: entry.Observations,
		RecordedAt:   parseTime(entry.RecordedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
