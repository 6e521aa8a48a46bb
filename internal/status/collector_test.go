package status

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theiostream/diffstatus/internal/models"
)

type fakeSource struct {
	readable       bool
	reference      string
	worktreeEvents []models.ChangeEvent
	indexEvents    []models.ChangeEvent
	worktreeErr    error
	indexErr       error

	calls        []string
	gotReference string
	gotPathspec  []string
}

func (f *fakeSource) IndexReadable(context.Context) bool {
	f.calls = append(f.calls, "readable")
	return f.readable
}

func (f *fakeSource) ResolveReference(context.Context) string {
	f.calls = append(f.calls, "resolve")
	return f.reference
}

func (f *fakeSource) WorktreeChanges(_ context.Context, pathspec []string) ([]models.ChangeEvent, error) {
	f.calls = append(f.calls, "worktree")
	f.gotPathspec = pathspec
	return f.worktreeEvents, f.worktreeErr
}

func (f *fakeSource) IndexChanges(_ context.Context, reference string, _ []string) ([]models.ChangeEvent, error) {
	f.calls = append(f.calls, "index")
	f.gotReference = reference
	return f.indexEvents, f.indexErr
}

func TestRunPhasesInFixedOrder(t *testing.T) {
	source := &fakeSource{
		readable:  true,
		reference: "HEAD",
		worktreeEvents: []models.ChangeEvent{
			{Path: "a.txt", Added: 3, Deleted: 1},
		},
		indexEvents: []models.ChangeEvent{
			{Path: "b.txt", Added: 0, Deleted: 2},
		},
	}
	store := NewStore()

	ok := NewCollector(source, nil).Run(context.Background(), store)

	require.True(t, ok)
	assert.Equal(t, []string{"readable", "worktree", "resolve", "index"}, source.calls)
	assert.Equal(t, "HEAD", source.gotReference)

	require.Equal(t, 2, store.Size())
	byPath := map[string]*models.FileStat{}
	for _, f := range store.Snapshot() {
		byPath[f.Path] = f
	}
	assert.Equal(t, models.Delta{Added: 3, Deleted: 1}, byPath["a.txt"].Worktree)
	assert.True(t, byPath["a.txt"].Index.IsZero())
	assert.Equal(t, models.Delta{Added: 0, Deleted: 2}, byPath["b.txt"].Index)
	assert.True(t, byPath["b.txt"].Worktree.IsZero())
}

func TestRunAbandonsWhenIndexUnreadable(t *testing.T) {
	source := &fakeSource{
		readable: false,
		worktreeEvents: []models.ChangeEvent{
			{Path: "a.txt", Added: 3, Deleted: 1},
		},
	}
	store := NewStore()

	ok := NewCollector(source, nil).Run(context.Background(), store)

	assert.False(t, ok)
	assert.Zero(t, store.Size())
	assert.Equal(t, []string{"readable"}, source.calls, "no pass may run after a failed load")
}

func TestRunAbandonsOnWorktreePassFailure(t *testing.T) {
	source := &fakeSource{
		readable:    true,
		worktreeErr: errors.New("diff engine exploded"),
	}
	store := NewStore()

	ok := NewCollector(source, nil).Run(context.Background(), store)

	assert.False(t, ok)
	assert.NotContains(t, source.calls, "index")
}

func TestRunAbandonsOnIndexPassFailure(t *testing.T) {
	source := &fakeSource{
		readable:  true,
		reference: "HEAD",
		indexErr:  errors.New("bad ref"),
	}

	ok := NewCollector(source, nil).Run(context.Background(), NewStore())
	assert.False(t, ok)
}

func TestRunDuplicateReportsWithinPhaseOverwrite(t *testing.T) {
	source := &fakeSource{
		readable:  true,
		reference: "HEAD",
		worktreeEvents: []models.ChangeEvent{
			{Path: "a.txt", Added: 3, Deleted: 1},
			{Path: "a.txt", Added: 8, Deleted: 0},
		},
	}
	store := NewStore()

	require.True(t, NewCollector(source, nil).Run(context.Background(), store))

	require.Equal(t, 1, store.Size())
	assert.Equal(t, models.Delta{Added: 8, Deleted: 0}, store.Snapshot()[0].Worktree)
}

func TestRunForwardsPathspec(t *testing.T) {
	source := &fakeSource{readable: true, reference: "HEAD"}
	pathspec := []string{"cmd/", "a.txt"}

	require.True(t, NewCollector(source, pathspec).Run(context.Background(), NewStore()))
	assert.Equal(t, pathspec, source.gotPathspec)
}

func TestRunPassesResolvedReferenceToIndexPhase(t *testing.T) {
	source := &fakeSource{
		readable:  true,
		reference: "4b825dc642cb6eb9a060e54bf8d69288fbee4904",
	}

	require.True(t, NewCollector(source, nil).Run(context.Background(), NewStore()))
	assert.Equal(t, source.reference, source.gotReference)
}
