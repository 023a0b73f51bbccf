package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nhle/eventcal/internal/fileutil"
	"github.com/nhle/eventcal/internal/model"
)

// FileStore keeps the collection as a JSON array in a single file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore backed by path. The file is created on
// the first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the collection. A missing or empty file is an empty
// collection.
func (s *FileStore) Load(_ context.Context) ([]model.Event, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.Event{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	return decodeEvents(data)
}

// Save replaces the file contents with events.
func (s *FileStore) Save(_ context.Context, events []model.Event) error {
	data, err := encodeEvents(events)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := fileutil.WriteAtomic(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op.
func (s *FileStore) Close() error {
	return nil
}

func encodeEvents(events []model.Event) ([]byte, error) {
	if events == nil {
		events = []model.Event{}
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding events: %w", err)
	}
	return data, nil
}

func decodeEvents(data []byte) ([]model.Event, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Event{}, nil
	}

	var events []model.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("decoding events: %w", err)
	}
	if events == nil {
		events = []model.Event{}
	}
	return events, nil
}
