package gitstat

import (
	"path/filepath"
	"strings"
)

// FileChange is one file's contribution to a commit.
type FileChange struct {
	Path      string
	Additions int
	Deletions int
}

// MatchesExtensions reports whether the file's extension is in the filter
// set. An empty set matches everything.
func (f FileChange) MatchesExtensions(extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.TrimPrefix(filepath.Ext(f.Path), ".")
	if ext == "" {
		return false
	}
	for _, e := range extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// DiffStats holds a commit's change statistics against its first parent.
type DiffStats struct {
	Additions    int
	Deletions    int
	FilesChanged int
	Files        []FileChange
}

func (d *DiffStats) AddFile(f FileChange) {
	d.Additions += f.Additions
	d.Deletions += f.Deletions
	d.FilesChanged++
	d.Files = append(d.Files, f)
}

func (d DiffStats) NetLines() int {
	return d.Additions - d.Deletions
}
