package gitstat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesExtensions(t *testing.T) {
	f := FileChange{Path: "internal/server/main.go"}
	assert.True(t, f.MatchesExtensions(nil))
	assert.True(t, f.MatchesExtensions([]string{"go"}))
	assert.True(t, f.MatchesExtensions([]string{"md", "go"}))
	assert.False(t, f.MatchesExtensions([]string{"md"}))

	noExt := FileChange{Path: "Makefile"}
	assert.True(t, noExt.MatchesExtensions(nil))
	assert.False(t, noExt.MatchesExtensions([]string{"go"}))

	dotfile := FileChange{Path: ".gitignore"}
	assert.True(t, dotfile.MatchesExtensions([]string{"gitignore"}))
}

func TestDiffStatsAddFile(t *testing.T) {
	var d DiffStats
	d.AddFile(FileChange{Path: "a.go", Additions: 10, Deletions: 3})
	d.AddFile(FileChange{Path: "b.go", Additions: 2, Deletions: 5})

	assert.Equal(t, 12, d.Additions)
	assert.Equal(t, 8, d.Deletions)
	assert.Equal(t, 2, d.FilesChanged)
	assert.Equal(t, 4, d.NetLines())
	assert.Len(t, d.Files, 2)
}
