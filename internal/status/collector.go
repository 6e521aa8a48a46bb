package status

import (
	"context"

	log "github.com/theiostream/diffstatus/internal/log"
	"github.com/theiostream/diffstatus/internal/models"
)

// ChangeSource produces the change events the collector consumes. It is
// implemented by the git layer; tests substitute fakes.
type ChangeSource interface {
	// IndexReadable reports whether the staged snapshot can be loaded.
	IndexReadable(ctx context.Context) bool
	// ResolveReference returns the baseline for the index comparison.
	ResolveReference(ctx context.Context) string
	// WorktreeChanges compares the working tree against the index.
	WorktreeChanges(ctx context.Context, pathspec []string) ([]models.ChangeEvent, error)
	// IndexChanges compares the index against reference.
	IndexChanges(ctx context.Context, reference string, pathspec []string) ([]models.ChangeEvent, error)
}

// Collector drives the two comparison passes and feeds each path's counts
// into a store, tagged with the phase that produced them.
type Collector struct {
	source   ChangeSource
	pathspec []string
}

// NewCollector builds a collector reading from source, optionally limited
// to the given pathspec.
func NewCollector(source ChangeSource, pathspec []string) *Collector {
	return &Collector{source: source, pathspec: pathspec}
}

// Run executes the working-tree phase, then the index phase, writing every
// event into store. It reports false when the staged snapshot could not be
// loaded or a pass failed mid-way; the caller then shows nothing and still
// exits successfully.
func (c *Collector) Run(ctx context.Context, store *Store) bool {
	if !c.source.IndexReadable(ctx) {
		log.Println("staged snapshot unreadable, skipping collection")
		return false
	}

	worktree, err := c.source.WorktreeChanges(ctx, c.pathspec)
	if err != nil {
		log.Printf("worktree pass failed: %v", err)
		return false
	}
	for _, event := range worktree {
		store.Upsert(event.Path, models.PhaseWorktree, event.Added, event.Deleted)
	}

	reference := c.source.ResolveReference(ctx)
	index, err := c.source.IndexChanges(ctx, reference, c.pathspec)
	if err != nil {
		log.Printf("index pass failed: %v", err)
		return false
	}
	for _, event := range index {
		store.Upsert(event.Path, models.PhaseIndex, event.Added, event.Deleted)
	}

	return true
}
