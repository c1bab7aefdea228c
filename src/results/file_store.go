package results

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists stage outputs as JSON files under a results directory.
// It serves deployments that run without Redis; the file names match the
// "<stage>_results.json" layout investigators already expect on disk.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create results directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) SaveStage(ctx context.Context, stage string, payload any) error {
	return s.write(stage+"_results.json", payload)
}

func (s *FileStore) LoadStage(ctx context.Context, stage string, into any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, stage+"_results.json"))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrStageNotFound, stage)
	}
	if err != nil {
		return fmt.Errorf("failed to load %s results: %w", stage, err)
	}

	if err := json.Unmarshal(data, into); err != nil {
		return fmt.Errorf("failed to unmarshal %s results: %w", stage, err)
	}

	return nil
}

func (s *FileStore) SaveRun(ctx context.Context, runID string, report any) error {
	return s.write(runID+".json", report)
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) write(name string, payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	return nil
}
