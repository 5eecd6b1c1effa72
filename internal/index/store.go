package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const indexFileName = "index.json"

// DiskStore persists one index per document id, each under its own
// directory. Directory presence is the cache-validity signal: an existing
// directory is always loaded, never rebuilt.
type DiskStore struct {
	baseDir string
}

func NewDiskStore(baseDir string) *DiskStore {
	return &DiskStore{baseDir: baseDir}
}

func (s *DiskStore) dir(documentID string) string {
	return filepath.Join(s.baseDir, documentID)
}

// Exists reports whether an index has been persisted for the document.
func (s *DiskStore) Exists(documentID string) bool {
	info, err := os.Stat(s.dir(documentID))
	return err == nil && info.IsDir()
}

func (s *DiskStore) Save(idx *Index) error {
	dir := s.dir(idx.DocumentID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create index dir failed: %w", err)
	}

	payload, err := json.Marshal(idx)
	if err != nil {
		return fmt.Errorf("marshal index failed: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, indexFileName), payload, 0o644); err != nil {
		return fmt.Errorf("write index file failed: %w", err)
	}
	return nil
}

func (s *DiskStore) Load(documentID string) (*Index, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir(documentID), indexFileName))
	if err != nil {
		return nil, fmt.Errorf("read index file failed: %w", err)
	}
	var idx Index
	if err := json.Unmarshal(raw, &idx); err != nil {
		return nil, fmt.Errorf("unmarshal index failed: %w", err)
	}
	return &idx, nil
}
