// Package resolve translates display names chosen from a listing into the
// identifiers the joined tables use.
package resolve

import (
	"context"
	"strings"

	"oxexplorer/internal/errs"
	"oxexplorer/internal/types"
)

// Store is the lookup the resolver needs from the data source adapter.
type Store interface {
	LookupIDs(ctx context.Context, kind types.Kind, name string) ([]string, error)
}

// Resolver maps (kind, display name) to an identifier.
type Resolver struct {
	store Store
}

// New creates a Resolver over store.
func New(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the identifier for name. Several matching rows resolve to the
// lowest identifier; none yields a NotFoundError.
func (r *Resolver) Resolve(ctx context.Context, kind types.Kind, name string) (string, error) {
	name = Normalize(kind, name)
	ids, err := r.store.LookupIDs(ctx, kind, name)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", errs.NotFound(string(kind), name)
	}
	return ids[0], nil
}

// ResolveAll resolves every name, preserving input order and dropping duplicates.
// The first unresolvable name aborts with its NotFoundError.
func (r *Resolver) ResolveAll(ctx context.Context, kind types.Kind, names []string) ([]string, error) {
	seen := make(map[string]bool, len(names))
	ids := make([]string, 0, len(names))
	for _, name := range names {
		id, err := r.Resolve(ctx, kind, name)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Normalize canonicalises user input for kind. Postcodes are matched in upper
// case with single spaces; other names only lose surrounding whitespace.
func Normalize(kind types.Kind, name string) string {
	name = strings.TrimSpace(name)
	if kind == types.KindPostcode {
		return strings.Join(strings.Fields(strings.ToUpper(name)), " ")
	}
	return name
}
