package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGetters(t *testing.T) {
	Set("1.2.3", "abc123", "2025-01-01", "ci")

	assert.Equal(t, "1.2.3", Version())
	assert.Equal(t, "abc123", Commit())
}

func TestEnrichOverwritesDefaults(t *testing.T) {
	Set("dev", "none", "unknown", "unknown")
	Enrich()

	// runtime/debug.ReadBuildInfo() always provides the Go version.
	assert.NotEqual(t, "unknown", builtBy)
}

func TestEnrichPreservesExplicitValues(t *testing.T) {
	Set("v1.0.0", "deadbeef", "2025-06-01", "goreleaser")
	Enrich()

	assert.Equal(t, "deadbeef", Commit())
	assert.Equal(t, "goreleaser", builtBy)
}

func TestDescribeContainsVersion(t *testing.T) {
	Set("v2.0.0", "cafe", "2025-07-01", "ci")
	assert.Contains(t, Describe(), "diffstatus version v2.0.0")
	assert.Contains(t, Describe(), "cafe")
}
