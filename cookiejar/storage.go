package cookiejar

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// Memory is an in-process Storage, mainly for tests and short-lived
// sessions.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemory creates an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{}
}

// Load returns the stored entries.
func (m *Memory) Load() ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

// Save replaces the stored entries.
func (m *Memory) Save(entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make([]Entry, len(entries))
	copy(m.entries, entries)
	return nil
}

// File persists entries as JSON at Path. A missing file loads as empty.
type File struct {
	Path string
}

// NewFile creates a file-backed storage.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Load reads and decodes the entries file.
func (f *File) Load() ([]Entry, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("cookiejar: read %s: %w", f.Path, err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("cookiejar: decode %s: %w", f.Path, err)
	}
	return entries, nil
}

// Save encodes and writes the entries file.
func (f *File) Save(entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("cookiejar: encode entries: %w", err)
	}
	if err := os.WriteFile(f.Path, data, 0o600); err != nil {
		return fmt.Errorf("cookiejar: write %s: %w", f.Path, err)
	}
	return nil
}
