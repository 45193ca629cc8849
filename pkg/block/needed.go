package block

import (
	"context"

	schema "github.com/mutablelogic/go-cdp/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// HASH-SET ORACLE (C4)

// Needed returns the subset of hashes not already present in the store,
// preserving the order of first occurrence in hashes and collapsing
// duplicates to their first occurrence.
func (s *Store) Needed(ctx context.Context, hashes []schema.Hash) ([]schema.Hash, error) {
	seen := make(map[schema.Hash]bool, len(hashes))
	needed := make([]schema.Hash, 0, len(hashes))

	for _, h := range hashes {
		if seen[h] {
			continue
		}
		seen[h] = true

		exists, err := s.Exists(ctx, h)
		if err != nil {
			return nil, err
		}
		if !exists {
			needed = append(needed, h)
		}
	}

	return needed, nil
}
