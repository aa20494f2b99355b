package httpapi

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// NamesResponse wraps a listing.
type NamesResponse struct {
	Names []string `json:"names"`
}

// ValueResponse carries a single rounded figure.
type ValueResponse struct {
	Value float64 `json:"value"`
}

// WardsWithPricesRequest is the query for GET /v1/wards/with-prices.
type WardsWithPricesRequest struct {
	Since    int    `form:"since" binding:"omitempty,min=1995,max=2100"`
	District string `form:"district"`
}

// AveragePriceRequest is the query for GET /v1/house/average.
type AveragePriceRequest struct {
	Ward  string `form:"ward" binding:"required"`
	Years []int  `form:"years" binding:"required,min=1,dive,min=1995,max=2100"`
}

// PriceChangeRequest is the query for GET /v1/house/change.
type PriceChangeRequest struct {
	Ward string `form:"ward" binding:"required"`
	From int    `form:"from" binding:"required,min=1995,max=2100"`
	To   int    `form:"to" binding:"required,min=1995,max=2100"`
}

// LowestWardRequest is the query for GET /v1/house/lowest.
type LowestWardRequest struct {
	District string `form:"district" binding:"required"`
	Year     int    `form:"year" binding:"required,min=1995,max=2100"`
	Quarter  string `form:"quarter" binding:"required,oneof=Mar Jun Sep Dec"`
}

// AreaRequest is the query for GET /v1/broadband/area.
type AreaRequest struct {
	Area string `form:"area" binding:"required"`
}

// PostcodeRequest is the query for GET /v1/broadband/postcode.
type PostcodeRequest struct {
	Postcode string `form:"postcode" binding:"required"`
}

// LowGigabitRequest is the query for GET /v1/broadband/low-gigabit.
type LowGigabitRequest struct {
	Threshold *float64 `form:"threshold" binding:"omitempty,min=0,max=1"`
}

// BandRequest is the query for the single-band council tax endpoints.
type BandRequest struct {
	Band string `form:"band" binding:"required,oneof=A B C D E F G H a b c d e f g h"`
}

// TaxDiffRequest is the query for GET /v1/tax/diff.
type TaxDiffRequest struct {
	TownA string `form:"town_a" binding:"required"`
	TownB string `form:"town_b" binding:"required"`
	Band  string `form:"band" binding:"required,oneof=A B C D E F G H a b c d e f g h"`
}

// TrendsRequest is the query for the trend chart endpoints.
type TrendsRequest struct {
	Wards []string `form:"wards" binding:"required,min=1"`
	Since int      `form:"since" binding:"omitempty,min=1995,max=2100"`
}

// BarsRequest is the query for the district bar chart endpoints.
type BarsRequest struct {
	District string   `form:"district" binding:"required"`
	Wards    []string `form:"wards"`
	Since    int      `form:"since" binding:"omitempty,min=1995,max=2100"`
}

// WardAtRequest is the query for GET /v1/location/ward.
type WardAtRequest struct {
	Lat *float64 `form:"lat" binding:"required,latitude"`
	Lon *float64 `form:"lon" binding:"required,longitude"`
}
