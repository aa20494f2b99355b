package analytics

import (
	"context"
	"fmt"
	"math"

	"oxexplorer/internal/database"
	"oxexplorer/internal/errs"
	"oxexplorer/internal/types"
)

// DefaultGigabitThreshold is the availability below which an area counts as
// poorly served.
const DefaultGigabitThreshold = 0.5

// Store is the slice of the data source adapter the engine reads from.
type Store interface {
	HousePrices(ctx context.Context, f database.HousePriceFilter) ([]types.HousePrice, error)
	BroadbandAll(ctx context.Context) ([]types.Broadband, error)
	CouncilTaxCharges(ctx context.Context, town, band string) ([]types.CouncilTax, error)
	CouncilTaxByBand(ctx context.Context, band string) ([]types.CouncilTax, error)
}

// Engine evaluates metrics over identifiers that have already been resolved.
type Engine struct {
	store Store
}

// NewEngine creates an Engine reading from store.
func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// AverageOver returns the mean price of every row for wardID in the given years.
func (e *Engine) AverageOver(ctx context.Context, wardID string, years []int) (float64, error) {
	prices, err := e.store.HousePrices(ctx, database.HousePriceFilter{
		WardIDs: []string{wardID},
		Years:   years,
	})
	if err != nil {
		return 0, err
	}
	avg, ok := Average(Records(prices), "price")
	if !ok {
		return 0, errs.NoData("ward %s in %v", wardID, years)
	}
	return avg, nil
}

// PercentChange compares the average price of yearB against yearA.
func (e *Engine) PercentChange(ctx context.Context, wardID string, yearA, yearB int) (float64, error) {
	base, err := e.AverageOver(ctx, wardID, []int{yearA})
	if err != nil {
		return 0, err
	}
	if yearA == yearB {
		return PercentChange(base, base)
	}
	current, err := e.AverageOver(ctx, wardID, []int{yearB})
	if err != nil {
		return 0, err
	}
	pct, err := PercentChange(base, current)
	if err != nil {
		return 0, &errs.DivisionByZeroError{What: fmt.Sprintf("percent change for ward %s from %d", wardID, yearA)}
	}
	return pct, nil
}

// LowestInDistrict returns the cheapest ward in a district for one year and
// quarter. Equal prices go to the ward that sorts first by name.
func (e *Engine) LowestInDistrict(ctx context.Context, districtID string, year int, quarter types.Quarter) (Extremum, error) {
	prices, err := e.store.HousePrices(ctx, database.HousePriceFilter{
		DistrictID: districtID,
		Years:      []int{year},
	})
	if err != nil {
		return NoExtremum, err
	}
	pred := Predicate{Field: "quarter", Value: string(quarter)}
	return ExtremumBy(Records(prices), pred, "price", Min), nil
}

// LowGigabitAreas returns the ids of areas whose gigabit availability is
// strictly below threshold.
func (e *Engine) LowGigabitAreas(ctx context.Context, threshold float64) ([]string, error) {
	coverage, err := e.store.BroadbandAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterBelow(Records(coverage), "gigabit_availability", threshold), nil
}

// CouncilTaxDifference returns |charge(townA) - charge(townB)| for a band,
// using the first recorded charge of each town.
func (e *Engine) CouncilTaxDifference(ctx context.Context, townA, townB, band string) (float64, error) {
	a, err := e.firstCharge(ctx, townA, band)
	if err != nil {
		return 0, err
	}
	b, err := e.firstCharge(ctx, townB, band)
	if err != nil {
		return 0, err
	}
	return math.Abs(a - b), nil
}

func (e *Engine) firstCharge(ctx context.Context, town, band string) (float64, error) {
	charges, err := e.store.CouncilTaxCharges(ctx, town, band)
	if err != nil {
		return 0, err
	}
	if len(charges) == 0 {
		return 0, errs.NoData("band %s council tax in %s", band, town)
	}
	return charges[0].Charge, nil
}

// LowestCouncilTax returns the town with the lowest charge for band. Ties go
// to the town that sorts first.
func (e *Engine) LowestCouncilTax(ctx context.Context, band string) (Extremum, error) {
	charges, err := e.store.CouncilTaxByBand(ctx, band)
	if err != nil {
		return NoExtremum, err
	}
	return ExtremumBy(Records(charges), Predicate{Field: "band", Value: band}, "charge", Min), nil
}
