// Package series builds the ordered house price sequences behind the trend
// and bar charts.
package series

import (
	"context"
	"fmt"
	"sort"

	"oxexplorer/internal/analytics"
	"oxexplorer/internal/database"
	"oxexplorer/internal/types"
)

// DefaultYearFloor is the first year the trend chart shows unless told otherwise.
const DefaultYearFloor = 2013

// Point is one observation on a chart axis.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is a named sequence of points, ready for rendering.
type Series struct {
	Name string  `json:"name"`
	Data []Point `json:"data"`
}

// Bar is one entity's mean value for a bar chart.
type Bar struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Store is the slice of the data source adapter the builder reads from.
type Store interface {
	HousePrices(ctx context.Context, f database.HousePriceFilter) ([]types.HousePrice, error)
}

// Builder produces series for resolved ward ids.
type Builder struct {
	store Store
}

// NewBuilder creates a Builder reading from store.
func NewBuilder(store Store) *Builder {
	return &Builder{store: store}
}

// BuildSeries returns, for every id, its price observations from yearFloor
// onwards ordered by year then calendar quarter. Ids without observations map
// to an empty, non-nil slice.
func (b *Builder) BuildSeries(ctx context.Context, ids []string, yearFloor int) (map[string][]Point, error) {
	out := make(map[string][]Point, len(ids))
	for _, id := range ids {
		out[id] = []Point{}
	}
	if len(ids) == 0 {
		return out, nil
	}

	prices, err := b.store.HousePrices(ctx, database.HousePriceFilter{WardIDs: ids, YearFloor: yearFloor})
	if err != nil {
		return nil, err
	}
	sortChronological(prices)

	for _, p := range prices {
		if _, wanted := out[p.WardID]; !wanted {
			continue
		}
		out[p.WardID] = append(out[p.WardID], Point{Label: p.Period(), Value: p.Price})
	}
	return out, nil
}

// AverageByEntity returns the mean price per id from yearFloor onwards, ordered
// by ward name. Ids without observations are left out.
func (b *Builder) AverageByEntity(ctx context.Context, ids []string, yearFloor int) ([]Bar, error) {
	if len(ids) == 0 {
		return []Bar{}, nil
	}
	prices, err := b.store.HousePrices(ctx, database.HousePriceFilter{WardIDs: ids, YearFloor: yearFloor})
	if err != nil {
		return nil, err
	}

	byID := make(map[string][]types.Record)
	labels := make(map[string]string)
	for _, p := range prices {
		r := p.Record()
		byID[p.WardID] = append(byID[p.WardID], r)
		labels[p.WardID] = r.Label
	}

	bars := make([]Bar, 0, len(byID))
	for _, id := range ids {
		records, ok := byID[id]
		if !ok {
			continue
		}
		avg, _ := analytics.Average(records, "price")
		bars = append(bars, Bar{ID: id, Label: labels[id], Value: avg})
		delete(byID, id)
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Label < bars[j].Label })
	return bars, nil
}

// PeriodAxis returns the union of point labels across series in calendar order,
// for a shared x axis.
func PeriodAxis(series map[string][]Point) []string {
	seen := make(map[string]period)
	for _, points := range series {
		for _, p := range points {
			if _, ok := seen[p.Label]; ok {
				continue
			}
			seen[p.Label] = parsePeriod(p.Label)
		}
	}

	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		a, b := seen[labels[i]], seen[labels[j]]
		if a.year != b.year {
			return a.year < b.year
		}
		if a.rank != b.rank {
			return a.rank < b.rank
		}
		return labels[i] < labels[j]
	})
	return labels
}

type period struct {
	year int
	rank int
}

func parsePeriod(label string) period {
	var (
		year    int
		quarter string
	)
	if _, err := fmt.Sscanf(label, "%d %s", &year, &quarter); err != nil {
		return period{}
	}
	return period{year: year, rank: types.Quarter(quarter).Rank()}
}

// sortChronological orders by year then calendar quarter, keeping the store's
// order among equal periods.
func sortChronological(prices []types.HousePrice) {
	sort.SliceStable(prices, func(i, j int) bool {
		if prices[i].Year != prices[j].Year {
			return prices[i].Year < prices[j].Year
		}
		return prices[i].Quarter.Rank() < prices[j].Quarter.Rank()
	})
}
