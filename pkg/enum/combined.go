package enum

import (
	"context"
	"sync"

	"github.com/praetorian-inc/calclex/pkg/types"
)

type sourceKey struct {
	id   types.SourceID
	path string
}

// CombinedEnumerator runs multiple enumerators sequentially and yields each
// (source, path) pair at most once, so overlapping roots are lexed once.
type CombinedEnumerator struct {
	enumerators []Enumerator
}

// NewCombinedEnumerator creates a CombinedEnumerator that wraps the provided
// enumerators. They are run in order.
func NewCombinedEnumerator(enumerators ...Enumerator) *CombinedEnumerator {
	return &CombinedEnumerator{enumerators: enumerators}
}

// Enumerate runs each child enumerator in sequence, passing unique sources
// to callback.
func (c *CombinedEnumerator) Enumerate(ctx context.Context, callback Callback) error {
	var mu sync.Mutex
	seen := make(map[sourceKey]bool)

	for _, e := range c.enumerators {
		err := e.Enumerate(ctx, func(content []byte, id types.SourceID, prov types.Provenance) error {
			key := sourceKey{id: id, path: prov.Path()}
			mu.Lock()
			if seen[key] {
				mu.Unlock()
				return nil
			}
			seen[key] = true
			mu.Unlock()

			return callback(content, id, prov)
		})
		if err != nil {
			return err
		}
	}
	return nil
}
