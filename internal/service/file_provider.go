package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileIndexDataProvider implements IndexDataProvider by reading an index
// dump from a JSON file on disk. The file is re-read on every call so the
// in-memory service can pick up replaced dumps on its refresh interval.
type FileIndexDataProvider struct {
	path string
}

// NewFileIndexDataProvider creates a file-based index data provider for the
// given dump path.
func NewFileIndexDataProvider(path string) (*FileIndexDataProvider, error) {
	if path == "" {
		return nil, fmt.Errorf("index dump path is required")
	}
	return &FileIndexDataProvider{path: filepath.Clean(path)}, nil
}

// GetIndexData implements IndexDataProvider.GetIndexData.
func (p *FileIndexDataProvider) GetIndexData(_ context.Context) (*IndexDump, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index dump: %w", err)
	}

	var dump IndexDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("failed to parse index dump %s: %w", p.path, err)
	}

	return &dump, nil
}

// GetSource implements IndexDataProvider.GetSource.
func (p *FileIndexDataProvider) GetSource() string {
	return fmt.Sprintf("file:%s", p.path)
}
