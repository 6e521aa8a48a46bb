package status

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theiostream/diffstatus/internal/models"
)

func plainReporter(buf *bytes.Buffer) *Reporter {
	return NewReporter(buf, lipgloss.NewStyle())
}

func TestRenderEmptyStoreIsSingleBlankLine(t *testing.T) {
	var buf bytes.Buffer

	plainReporter(&buf).Render(NewStore())

	assert.Equal(t, "\n", buf.String())
}

func TestRenderTwoPhaseScenario(t *testing.T) {
	store := NewStore()
	store.Upsert("a.txt", models.PhaseWorktree, 3, 1)
	store.Upsert("b.txt", models.PhaseIndex, 0, 2)

	var buf bytes.Buffer
	plainReporter(&buf).Render(store)

	expected := "            staged     unstaged path\n" +
		"  1:    unchanged        +3/-1 a.txt\n" +
		"  2:        +0/-2      nothing b.txt\n" +
		"\n"
	assert.Equal(t, expected, buf.String())
}

func TestRenderSortsBytewiseRegardlessOfInsertionOrder(t *testing.T) {
	store := NewStore()
	store.Upsert("b/inner.go", models.PhaseWorktree, 1, 0)
	store.Upsert("a.txt", models.PhaseWorktree, 1, 0)
	store.Upsert("Z.txt", models.PhaseWorktree, 1, 0)
	store.Upsert("a/x.go", models.PhaseWorktree, 1, 0)

	var buf bytes.Buffer
	plainReporter(&buf).Render(store)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5) // header + 4 rows

	var paths []string
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		paths = append(paths, fields[len(fields)-1])
	}
	// Byte-wise: uppercase sorts before lowercase, "a.txt" before "a/x.go".
	assert.Equal(t, []string{"Z.txt", "a.txt", "a/x.go", "b/inner.go"}, paths)
}

func TestRenderIsIdempotent(t *testing.T) {
	store := NewStore()
	store.Upsert("a.txt", models.PhaseWorktree, 3, 1)
	store.Upsert("b.txt", models.PhaseIndex, 4, 0)

	var first, second bytes.Buffer
	plainReporter(&first).Render(store)
	plainReporter(&second).Render(store)

	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestRenderRowNumbersAreOneBased(t *testing.T) {
	store := NewStore()
	store.Upsert("a.txt", models.PhaseWorktree, 1, 0)
	store.Upsert("b.txt", models.PhaseWorktree, 1, 0)

	var buf bytes.Buffer
	plainReporter(&buf).Render(store)

	assert.Contains(t, buf.String(), "  1: ")
	assert.Contains(t, buf.String(), "  2: ")
}

func TestRenderDecorationDoesNotChangeContent(t *testing.T) {
	store := NewStore()
	store.Upsert("a.txt", models.PhaseWorktree, 3, 1)

	var plain, colored bytes.Buffer
	plainReporter(&plain).Render(store)
	NewReporter(&colored, lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000"))).Render(store)

	strip := func(s string) string {
		var out strings.Builder
		inEscape := false
		for _, r := range s {
			switch {
			case inEscape:
				if r == 'm' {
					inEscape = false
				}
			case r == '\x1b':
				inEscape = true
			default:
				out.WriteRune(r)
			}
		}
		return out.String()
	}
	assert.Equal(t, plain.String(), strip(colored.String()))
}

func TestDeltaCell(t *testing.T) {
	assert.Equal(t, "+3/-1", deltaCell(models.Delta{Added: 3, Deleted: 1}, indexUnchanged))
	assert.Equal(t, "unchanged", deltaCell(models.Delta{}, indexUnchanged))
	assert.Equal(t, "nothing", deltaCell(models.Delta{}, worktreeUnchanged))
	// +0/-2 is a real change even though nothing was added.
	assert.Equal(t, "+0/-2", deltaCell(models.Delta{Deleted: 2}, indexUnchanged))
}

func TestDeltaCellBoundWithExtremeCounts(t *testing.T) {
	// The widest possible cell (two 20-digit counts) still fits the clamp;
	// the clamp guarantees alignment can never break regardless of input.
	cell := deltaCell(models.Delta{Added: math.MaxUint64, Deleted: math.MaxUint64}, indexUnchanged)
	assert.LessOrEqual(t, len(cell), statCellWidth)
	assert.Equal(t, "+18446744073709551615/-18446744073709551615", cell)
}
