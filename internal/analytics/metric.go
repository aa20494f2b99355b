// Package analytics computes the derived metrics shown to users: averages,
// percent change, extremum scans and threshold filters.
//
// The functions in this file are pure and operate over types.Record so the
// same scan serves house prices, broadband coverage and council tax. Engine
// binds them to the relational store.
package analytics

import (
	"math"

	"oxexplorer/internal/errs"
	"oxexplorer/internal/types"
)

// Direction selects the extremum ExtremumBy looks for.
type Direction int

const (
	Min Direction = iota
	Max
)

func (d Direction) String() string {
	if d == Max {
		return "max"
	}
	return "min"
}

// Predicate restricts a scan to records whose dimension Field equals Value.
// The zero Predicate matches every record.
type Predicate struct {
	Field string
	Value string
}

func (p Predicate) match(r types.Record) bool {
	if p.Field == "" {
		return true
	}
	return r.Dimensions[p.Field] == p.Value
}

// Extremum is the winning record of an ExtremumBy scan.
type Extremum struct {
	ID    string
	Label string
	Value float64
	Found bool
}

// NoExtremum is returned when the scan saw no candidate. It is distinct from
// a real extremum of zero because Found is false.
var NoExtremum = Extremum{}

// Average returns the arithmetic mean of field over every record carrying it.
// ok is false when no record carries the field.
func Average(records []types.Record, field string) (avg float64, ok bool) {
	var sum float64
	n := 0
	for _, r := range records {
		v, has := r.Measures[field]
		if !has {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// PercentChange returns (current-base)/base*100. A zero base is a
// DivisionByZeroError; equal inputs always yield exactly 0.
func PercentChange(base, current float64) (float64, error) {
	if base == 0 {
		return 0, &errs.DivisionByZeroError{What: "percent change"}
	}
	if base == current {
		return 0, nil
	}
	return (current - base) / base * 100, nil
}

// ExtremumBy scans records matching pred in order and returns the one with the
// smallest (Min) or largest (Max) value of field. Ties keep the earliest record,
// so callers control tie-breaking through the order they pass records in.
func ExtremumBy(records []types.Record, pred Predicate, field string, dir Direction) Extremum {
	best := NoExtremum
	for _, r := range records {
		if !pred.match(r) {
			continue
		}
		v, ok := r.Measures[field]
		if !ok {
			continue
		}
		if !best.Found || (dir == Min && v < best.Value) || (dir == Max && v > best.Value) {
			best = Extremum{ID: r.ID, Label: r.Label, Value: v, Found: true}
		}
	}
	return best
}

// FilterBelow returns the ids of records whose field is strictly below
// threshold, in input order and without duplicates.
func FilterBelow(records []types.Record, field string, threshold float64) []string {
	return filter(records, field, func(v float64) bool { return v < threshold })
}

// FilterAbove returns the ids of records whose field is strictly above threshold.
func FilterAbove(records []types.Record, field string, threshold float64) []string {
	return filter(records, field, func(v float64) bool { return v > threshold })
}

func filter(records []types.Record, field string, keep func(float64) bool) []string {
	seen := make(map[string]bool)
	ids := []string{}
	for _, r := range records {
		v, ok := r.Measures[field]
		if !ok || !keep(v) || seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		ids = append(ids, r.ID)
	}
	return ids
}

// RoundTo2 rounds to two decimal places, half away from zero.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Records converts any slice of typed rows to generic records.
func Records[T interface{ Record() types.Record }](rows []T) []types.Record {
	out := make([]types.Record, len(rows))
	for i, row := range rows {
		out[i] = row.Record()
	}
	return out
}
