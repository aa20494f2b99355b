package explorer

import (
	"context"
	"errors"
	"fmt"

	"oxexplorer/internal/errs"
	"oxexplorer/internal/types"
)

// Location is the ward found at a coordinate. WardID is empty when the
// boundary layer names a ward the relational store does not know.
type Location struct {
	Ward   string `json:"ward"`
	WardID string `json:"ward_id,omitempty"`
}

// WardAt returns the ward containing a WGS-84 coordinate.
func (e *Explorer) WardAt(ctx context.Context, lat, lon float64) (loc Location, err error) {
	err = e.observe("location.ward_at", []any{"lat", lat, "lon", lon}, func() error {
		if e.boundaries == nil {
			return ErrBoundariesUnavailable
		}
		name, ok := e.boundaries.WardAt(lat, lon)
		if !ok {
			return errs.NotFound("ward at", fmt.Sprintf("%.5f,%.5f", lat, lon))
		}
		loc.Ward = name

		id, err := e.resolver.Resolve(ctx, types.KindWard, name)
		switch {
		case err == nil:
			loc.WardID = id
		case !errors.Is(err, errs.ErrNotFound):
			return err
		}
		return nil
	})
	return loc, err
}
