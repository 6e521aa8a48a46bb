package status

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/theiostream/diffstatus/internal/models"
)

const headerIndent = "      "

// statCellWidth bounds the rendered width of one count cell. Counts large
// enough to overflow are clipped rather than rejected, keeping column
// alignment intact for any input.
const statCellWidth = 49

// Sentinels shown when a phase observed no difference for a path.
const (
	worktreeUnchanged = "nothing"
	indexUnchanged    = "unchanged"
)

// Reporter renders the finished store as a sorted, fixed-column table.
// Rendering never mutates the store; rendering twice yields identical bytes.
type Reporter struct {
	out         io.Writer
	headerStyle lipgloss.Style
}

// NewReporter builds a reporter writing to out. headerStyle decorates the
// header row only; content is the same with an empty style.
func NewReporter(out io.Writer, headerStyle lipgloss.Style) *Reporter {
	return &Reporter{out: out, headerStyle: headerStyle}
}

// Render prints the report. An empty store renders as a single blank line.
func (r *Reporter) Render(store *Store) {
	if store.Size() == 0 {
		fmt.Fprintln(r.out)
		return
	}

	files := store.Snapshot()
	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	header := fmt.Sprintf("%12s %12s %s", "staged", "unstaged", "path")
	fmt.Fprint(r.out, headerIndent)
	fmt.Fprintln(r.out, r.headerStyle.Render(header))

	for i, f := range files {
		indexCell := deltaCell(f.Index, indexUnchanged)
		worktreeCell := deltaCell(f.Worktree, worktreeUnchanged)
		fmt.Fprintf(r.out, " %2d: %12s %12s %s\n", i+1, indexCell, worktreeCell, f.Path)
	}
	fmt.Fprintln(r.out)
}

func deltaCell(d models.Delta, sentinel string) string {
	if d.IsZero() {
		return truncate.String(sentinel, statCellWidth)
	}
	return truncate.String(fmt.Sprintf("+%d/-%d", d.Added, d.Deleted), statCellWidth)
}
