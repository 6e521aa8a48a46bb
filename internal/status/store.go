// Package status implements the change-aggregation engine behind the
// diffstatus report: two comparison passes merged into one per-path view.
package status

import "github.com/theiostream/diffstatus/internal/models"

// Store is a path-keyed collection of per-path change records. It owns all
// records; callers mutate it only through Upsert.
type Store struct {
	records map[string]*models.FileStat
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{records: make(map[string]*models.FileStat)}
}

// Upsert records the counts for path in the given phase. The record is
// created on first sight with both deltas zero. Within one phase the most
// recent report for a path overwrites the previous one; counts are never
// summed. A write in one phase leaves the other phase's delta untouched.
func (s *Store) Upsert(path string, phase models.Phase, added, deleted uint64) {
	entry, ok := s.records[path]
	if !ok {
		entry = &models.FileStat{Path: path}
		s.records[path] = entry
	}

	delta := models.Delta{Added: added, Deleted: deleted}
	switch phase {
	case models.PhaseWorktree:
		entry.Worktree = delta
	case models.PhaseIndex:
		entry.Index = delta
	}
}

// Size returns the number of distinct paths stored.
func (s *Store) Size() int {
	return len(s.records)
}

// Snapshot returns all records in unspecified order. Callers that need a
// stable order must sort.
func (s *Store) Snapshot() []*models.FileStat {
	files := make([]*models.FileStat, 0, len(s.records))
	for _, entry := range s.records {
		files = append(files, entry)
	}
	return files
}
