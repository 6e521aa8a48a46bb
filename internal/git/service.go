// Package git wraps the git commands diffstatus consumes as its diff engine.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"slices"
	"strconv"
	"strings"

	log "github.com/theiostream/diffstatus/internal/log"
	"github.com/theiostream/diffstatus/internal/models"
)

// EmptyTreeID is the object id of the empty tree, used as the comparison
// baseline when no reference commit resolves (unborn HEAD).
const EmptyTreeID = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// LookupPath is used to find executables in PATH. It's exposed as a package
// variable so tests can mock it and avoid depending on system binaries.
var LookupPath = exec.LookPath

// Service runs git commands and turns their output into change events.
type Service struct {
	workDir string
}

// NewService constructs a Service operating on the repository at workDir.
// An empty workDir means the current directory.
func NewService(workDir string) *Service {
	return &Service{workDir: workDir}
}

func (s *Service) debugf(format string, args ...any) {
	log.Printf(format, args...)
}

func prepareGitCommand(ctx context.Context, args []string) (*exec.Cmd, error) {
	if len(args) == 0 || args[0] != "git" {
		return nil, fmt.Errorf("unsupported command %q", strings.Join(args, " "))
	}
	// #nosec G204 -- arguments come from internal logic and are not shell interpolated
	return exec.CommandContext(ctx, "git", args[1:]...), nil
}

// run executes a git command. Exit codes listed in okReturncodes are treated
// as success with whatever output was produced.
func (s *Service) run(ctx context.Context, args []string, okReturncodes []int) (string, error) {
	command := strings.Join(args, " ")
	s.debugf("run: %s (cwd=%s)", command, s.workDir)

	cmd, err := prepareGitCommand(ctx, args)
	if err != nil {
		return "", err
	}
	if s.workDir != "" {
		cmd.Dir = s.workDir
	}

	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			returnCode := exitError.ExitCode()
			if slices.Contains(okReturncodes, returnCode) {
				return string(output), nil
			}
			stderr := strings.TrimSpace(string(exitError.Stderr))
			if stderr != "" {
				s.debugf("error: %s: %s", command, stderr)
				return "", fmt.Errorf("%s: %s", command, stderr)
			}
			s.debugf("error: %s (exit %d)", command, returnCode)
			return "", fmt.Errorf("%s: exit %d", command, returnCode)
		}
		s.debugf("error: %s: %v", command, err)
		return "", fmt.Errorf("%s: %w", command, err)
	}

	s.debugf("ok: %s", command)
	return string(output), nil
}

// IndexReadable reports whether the staged snapshot can be loaded. When it
// cannot (not a repository, corrupt index, missing git binary), collection
// is abandoned silently.
func (s *Service) IndexReadable(ctx context.Context) bool {
	if _, err := LookupPath("git"); err != nil {
		s.debugf("git binary not found: %v", err)
		return false
	}
	if _, err := s.run(ctx, []string{"git", "rev-parse", "--show-toplevel"}, []int{0}); err != nil {
		return false
	}
	_, err := s.run(ctx, []string{"git", "ls-files", "--cached"}, []int{0})
	return err == nil
}

// CommonDir returns the repository's common git directory as an absolute
// path, or "" when it cannot be resolved.
func (s *Service) CommonDir(ctx context.Context) string {
	out, err := s.run(ctx, []string{"git", "rev-parse", "--path-format=absolute", "--git-common-dir"}, []int{0})
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ResolveReference returns the baseline for the index comparison: HEAD when
// it resolves, otherwise the empty-tree sentinel.
func (s *Service) ResolveReference(ctx context.Context) string {
	out, err := s.run(ctx, []string{"git", "rev-parse", "--verify", "--quiet", "HEAD"}, []int{0, 1})
	if err != nil || strings.TrimSpace(out) == "" {
		return EmptyTreeID
	}
	return "HEAD"
}

// WorktreeChanges compares the working tree against the index and returns
// one event per changed path, in the order git reports them.
func (s *Service) WorktreeChanges(ctx context.Context, pathspec []string) ([]models.ChangeEvent, error) {
	args := []string{"git", "diff-files", "--numstat", "-z"}
	args = appendPathspec(args, pathspec)
	out, err := s.run(ctx, args, []int{0})
	if err != nil {
		return nil, err
	}
	return parseNumstat(out), nil
}

// IndexChanges compares the index against reference and returns one event
// per changed path, in the order git reports them.
func (s *Service) IndexChanges(ctx context.Context, reference string, pathspec []string) ([]models.ChangeEvent, error) {
	args := []string{"git", "diff-index", "--cached", "--numstat", "-z", reference}
	args = appendPathspec(args, pathspec)
	out, err := s.run(ctx, args, []int{0})
	if err != nil {
		return nil, err
	}
	return parseNumstat(out), nil
}

func appendPathspec(args, pathspec []string) []string {
	if len(pathspec) == 0 {
		return args
	}
	args = append(args, "--")
	return append(args, pathspec...)
}

// parseNumstat parses NUL-terminated `--numstat -z` records. Each record is
// "added\tdeleted\tpath"; binary files report "-" for both counts and parse
// as zero. Rename records carry an empty path followed by the two names as
// separate tokens; the destination name wins.
func parseNumstat(raw string) []models.ChangeEvent {
	tokens := strings.Split(raw, "\x00")
	events := make([]models.ChangeEvent, 0, len(tokens))

	for i := 0; i < len(tokens); i++ {
		record := tokens[i]
		if record == "" {
			continue
		}

		fields := strings.SplitN(record, "\t", 3)
		if len(fields) != 3 {
			continue
		}

		added := parseCount(fields[0])
		deleted := parseCount(fields[1])
		path := fields[2]

		if path == "" {
			// Rename: the next two tokens are source and destination.
			if i+2 >= len(tokens) {
				break
			}
			path = tokens[i+2]
			i += 2
		}

		events = append(events, models.ChangeEvent{
			Path:    path,
			Added:   added,
			Deleted: deleted,
		})
	}

	return events
}

func parseCount(field string) uint64 {
	if field == "-" {
		return 0
	}
	n, err := strconv.ParseUint(field, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
