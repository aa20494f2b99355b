package types

import (
	"fmt"
	"strings"
)

// Quarter is a calendar quarter named by its closing month.
type Quarter string

const (
	Mar Quarter = "Mar"
	Jun Quarter = "Jun"
	Sep Quarter = "Sep"
	Dec Quarter = "Dec"
)

// Quarters lists the quarters in calendar order.
var Quarters = []Quarter{Mar, Jun, Sep, Dec}

// Rank orders quarters by calendar position (Mar=1 .. Dec=4). Unknown values rank 0.
func (q Quarter) Rank() int {
	switch q {
	case Mar:
		return 1
	case Jun:
		return 2
	case Sep:
		return 3
	case Dec:
		return 4
	}
	return 0
}

// ParseQuarter accepts a quarter name in any case.
func ParseQuarter(s string) (Quarter, error) {
	s = strings.TrimSpace(s)
	for _, q := range Quarters {
		if strings.EqualFold(s, string(q)) {
			return q, nil
		}
	}
	return "", fmt.Errorf("invalid quarter %q: want one of Mar, Jun, Sep, Dec", s)
}

// Bands are the council tax valuation bands.
var Bands = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

// ParseBand normalises a band letter and rejects anything outside A-H.
func ParseBand(s string) (string, error) {
	b := strings.ToUpper(strings.TrimSpace(s))
	for _, band := range Bands {
		if b == band {
			return b, nil
		}
	}
	return "", fmt.Errorf("invalid band %q: want a letter A-H", s)
}

// Kind names a dimension a user can select by display name.
type Kind string

const (
	KindWard     Kind = "ward"
	KindDistrict Kind = "district"
	KindArea     Kind = "area"
	KindPostcode Kind = "postcode"
)

// ParseKind validates a dimension kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindWard, KindDistrict, KindArea, KindPostcode:
		return k, nil
	}
	return "", fmt.Errorf("invalid dimension kind %q", s)
}
