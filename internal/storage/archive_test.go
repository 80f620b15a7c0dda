package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func pages(date string) []ArchiveEntry {
	return []ArchiveEntry{
		{Title: date + " - 국내 종합 뉴스", Path: "x/domestic_general.html"},
		{Title: date + " - 세계 종합 뉴스", Path: "x/world_general.html"},
	}
}

func TestArchiveAddOncePerDate(t *testing.T) {
	a := NewArchive(filepath.Join(t.TempDir(), "archive_data.json"))
	require.NoError(t, a.Load())
	require.Empty(t, a.Entries())

	require.True(t, a.Add("2026-10-13", pages("2026-10-13")))
	require.False(t, a.Add("2026-10-13", pages("2026-10-13")))
	require.Len(t, a.Entries(), 2)
	for _, e := range a.Entries() {
		require.Equal(t, "2026-10-13", e.Date)
	}
}

func TestArchiveSortedNewestFirst(t *testing.T) {
	a := NewArchive(filepath.Join(t.TempDir(), "archive_data.json"))
	a.Add("2026-10-12", pages("2026-10-12"))
	a.Add("2026-10-14", pages("2026-10-14"))
	a.Add("2026-10-13", pages("2026-10-13"))

	entries := a.Entries()
	require.Len(t, entries, 6)
	require.Equal(t, "2026-10-14", entries[0].Date)
	require.Equal(t, "x/domestic_general.html", entries[0].Path)
	require.Equal(t, "x/world_general.html", entries[1].Path)
	require.Equal(t, "2026-10-12", entries[5].Date)
}

func TestArchiveSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "archive_data.json")
	a := NewArchive(path)
	a.Add("2026-10-14", pages("2026-10-14"))
	require.NoError(t, a.Save())

	b := NewArchive(path)
	require.NoError(t, b.Load())
	require.Equal(t, a.Entries(), b.Entries())
	require.False(t, b.Add("2026-10-14", pages("2026-10-14")))

	_, err := os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestArchiveEmptyAndCorruptFiles(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	require.NoError(t, NewArchive(empty).Load())

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	require.Error(t, NewArchive(bad).Load())
}

func TestArchiveSaveEmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive_data.json")
	require.NoError(t, NewArchive(path).Save())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))
}
