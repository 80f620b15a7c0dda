package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// ArchiveEntry is one published briefing page.
type ArchiveEntry struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Path  string `json:"path"`
}

// Archive is the append-only index of published briefings, persisted as a
// JSON array sorted by date, newest first.
type Archive struct {
	filePath string
	entries  []ArchiveEntry
	mu       sync.RWMutex
}

func NewArchive(filePath string) *Archive {
	return &Archive{filePath: filePath}
}

// Load reads the index from disk. A missing or empty file is an empty index.
func (a *Archive) Load() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	data, err := os.ReadFile(a.filePath)
	if errors.Is(err, os.ErrNotExist) {
		a.entries = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read archive file: %w", err)
	}
	if len(data) == 0 {
		a.entries = nil
		return nil
	}

	var entries []ArchiveEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to unmarshal archive: %w", err)
	}
	a.entries = entries
	sortEntries(a.entries)
	return nil
}

// Add records pages for date unless that date is already indexed. It
// reports whether anything was added.
func (a *Archive) Add(date string, pages []ArchiveEntry) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, e := range a.entries {
		if e.Date == date {
			return false
		}
	}
	for _, p := range pages {
		p.Date = date
		a.entries = append(a.entries, p)
	}
	sortEntries(a.entries)
	return len(pages) > 0
}

// Entries returns a copy of the index.
func (a *Archive) Entries() []ArchiveEntry {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]ArchiveEntry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Save writes the index atomically.
func (a *Archive) Save() error {
	a.mu.RLock()
	entries := a.entries
	if entries == nil {
		entries = []ArchiveEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	a.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal archive: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(a.filePath), 0o755); err != nil {
		return fmt.Errorf("failed to create archive dir: %w", err)
	}
	tmp := a.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write archive file: %w", err)
	}
	if err := os.Rename(tmp, a.filePath); err != nil {
		return fmt.Errorf("failed to replace archive file: %w", err)
	}
	return nil
}

// sortEntries orders by date descending; entries of one date keep their
// relative order.
func sortEntries(entries []ArchiveEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}
