package types

// Provenance tracks where a source was discovered.
type Provenance interface {
	Kind() string
	// Path returns the name the source is reported under.
	Path() string
}

// FileProvenance for filesystem files.
type FileProvenance struct {
	FilePath string
}

// Kind returns "file".
func (f FileProvenance) Kind() string {
	return "file"
}

// Path returns the file path.
func (f FileProvenance) Path() string {
	return f.FilePath
}

// GitProvenance for sources read from a git tree.
type GitProvenance struct {
	RepoPath string
	CommitID string
	BlobPath string // path within repo at commit
}

// Kind returns "git".
func (g GitProvenance) Kind() string {
	return "git"
}

// Path returns the blob path within the repository.
func (g GitProvenance) Path() string {
	return g.BlobPath
}

// InlineProvenance for text given on the command line or read from stdin.
type InlineProvenance struct {
	Name string
}

// Kind returns "inline".
func (i InlineProvenance) Kind() string {
	return "inline"
}

// Path returns the display name, "<stdin>" when unset.
func (i InlineProvenance) Path() string {
	if i.Name == "" {
		return DefaultFilename
	}
	return i.Name
}
