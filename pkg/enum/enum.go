package enum

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/praetorian-inc/calclex/pkg/types"
)

// Callback receives each discovered source.
type Callback func(content []byte, id types.SourceID, prov types.Provenance) error

// Enumerator discovers sources to lex.
type Enumerator interface {
	// Enumerate yields sources. The callback may be invoked from several
	// goroutines at once.
	Enumerate(ctx context.Context, callback Callback) error
}

// Config for enumeration.
type Config struct {
	// Root is the starting path for enumeration.
	Root string

	// IncludeHidden includes hidden files/directories (starting with .).
	IncludeHidden bool

	// MaxFileSize is the maximum file size to process (0 = no limit).
	MaxFileSize int64

	// Extensions restricts enumeration to files with one of these
	// extensions (".calc"). Empty accepts every file.
	Extensions []string
}

// matchesExtension reports whether name passes the extension allow-list.
func (c Config) matchesExtension(name string) bool {
	if len(c.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range c.Extensions {
		want = strings.ToLower(want)
		if !strings.HasPrefix(want, ".") {
			want = "." + want
		}
		if ext == want {
			return true
		}
	}
	return false
}
