package dedup

import (
	"strings"

	"github.com/simaogato/advisordesk-backend/internal/domain"
)

// Index is the set of source refs already carried by persisted ledger entries
type Index map[string]struct{}

// NewIndex builds the set of non-empty source refs
func NewIndex(persisted []*domain.LedgerEntry) Index {
	idx := make(Index, len(persisted))
	for _, entry := range persisted {
		if entry == nil {
			continue
		}
		ref := strings.TrimSpace(entry.SourceRef)
		if ref == "" {
			continue
		}
		idx[ref] = struct{}{}
	}
	return idx
}

// Contains reports whether candidateSourceRef is already persisted.
// An empty ref never matches.
func (idx Index) Contains(candidateSourceRef string) bool {
	ref := strings.TrimSpace(candidateSourceRef)
	if ref == "" {
		return false
	}
	_, ok := idx[ref]
	return ok
}

// IsDuplicate reports whether a derived record with candidateSourceRef represents
// an event the advisor already recorded in the ledger
func IsDuplicate(persisted []*domain.LedgerEntry, candidateSourceRef string) bool {
	return NewIndex(persisted).Contains(candidateSourceRef)
}
