// Package models defines the data objects shared across diffstatus packages.
package models

// Phase identifies which of the two comparison passes produced a change event.
type Phase int

const (
	// PhaseWorktree compares the working tree against the index.
	PhaseWorktree Phase = iota
	// PhaseIndex compares the index against the reference commit.
	PhaseIndex
)

// String returns the phase name used in debug logs.
func (p Phase) String() string {
	switch p {
	case PhaseWorktree:
		return "worktree"
	case PhaseIndex:
		return "index"
	default:
		return "unknown"
	}
}

// Delta holds the added/deleted line counts for one path in one phase.
// A zero Delta means no difference was observed in that phase.
type Delta struct {
	Added   uint64
	Deleted uint64
}

// IsZero reports whether no lines were added or deleted.
func (d Delta) IsZero() bool {
	return d.Added == 0 && d.Deleted == 0
}

// ChangeEvent is one changed-path record emitted by the diff layer.
type ChangeEvent struct {
	Path    string
	Added   uint64
	Deleted uint64
}

// FileStat aggregates the per-phase deltas for a single path. The two deltas
// are independent: writing one never touches the other.
type FileStat struct {
	Path     string
	Index    Delta
	Worktree Delta
}
