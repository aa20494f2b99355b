package types

import "fmt"

// Ward is one row of the District table: a ward and the district it belongs to.
type Ward struct {
	WardID       string
	WardName     string
	DistrictID   string
	DistrictName string
}

// HousePrice holds one quarterly house price observation for a ward.
// WardName is populated when the query joins District; it is empty otherwise.
type HousePrice struct {
	WardID     string
	WardName   string
	DistrictID string
	Year       int
	Quarter    Quarter
	Price      float64
}

// Period returns the "<year> <quarter>" label used on chart axes.
func (h HousePrice) Period() string {
	return fmt.Sprintf("%d %s", h.Year, h.Quarter)
}

// Record converts the observation into the generic form used by the metric engine.
func (h HousePrice) Record() Record {
	label := h.WardName
	if label == "" {
		label = h.WardID
	}
	return Record{
		ID:    h.WardID,
		Label: label,
		Dimensions: map[string]string{
			"ward_id":     h.WardID,
			"district_id": h.DistrictID,
			"year":        fmt.Sprint(h.Year),
			"quarter":     string(h.Quarter),
		},
		Measures: map[string]float64{
			"price": h.Price,
		},
	}
}

// Broadband holds coverage figures for an area.
type Broadband struct {
	AreaID                string
	AreaName              string
	AvgDownloadSpeed      float64
	SuperfastAvailability float64
	GigabitAvailability   float64
}

// Record converts the coverage row into the generic form used by the metric engine.
func (b Broadband) Record() Record {
	return Record{
		ID:    b.AreaID,
		Label: b.AreaName,
		Dimensions: map[string]string{
			"area_id": b.AreaID,
		},
		Measures: map[string]float64{
			"avg_download_speed":     b.AvgDownloadSpeed,
			"superfast_availability": b.SuperfastAvailability,
			"gigabit_availability":   b.GigabitAvailability,
		},
	}
}

// CouncilTax is one band charge for a town.
type CouncilTax struct {
	TownName string
	Band     string
	Charge   float64
}

// Record converts the charge into the generic form used by the metric engine.
func (c CouncilTax) Record() Record {
	return Record{
		ID:    c.TownName,
		Label: c.TownName,
		Dimensions: map[string]string{
			"band": c.Band,
		},
		Measures: map[string]float64{
			"charge": c.Charge,
		},
	}
}

// Record is a generic row: string dimensions plus numeric measures.
type Record struct {
	ID         string
	Label      string
	Dimensions map[string]string
	Measures   map[string]float64
}
