package httpapi

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"oxexplorer/internal/analytics"
	"oxexplorer/internal/errs"
	"oxexplorer/internal/explorer"
	"oxexplorer/internal/report"
	"oxexplorer/internal/series"
	"oxexplorer/internal/types"
)

// Handlers holds the explorer the routes query.
type Handlers struct {
	ex     *explorer.Explorer
	logger *slog.Logger
}

// HandleHealth handles GET /healthz.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// HandleReady handles GET /readyz by pinging the relational store.
func (h *Handlers) HandleReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.ex.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// bind decodes query parameters into req, replying 400 on failure.
func (h *Handlers) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		h.logger.Warn("invalid query parameters", "request_id", c.GetString(requestIDKey), "path", c.FullPath(), "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:     "invalid query parameters: " + err.Error(),
			Code:      "INVALID_REQUEST",
			RequestID: c.GetString(requestIDKey),
		})
		return false
	}
	return true
}

// fail maps explorer errors onto HTTP statuses.
func (h *Handlers) fail(c *gin.Context, err error) {
	status, code, msg := http.StatusInternalServerError, "INTERNAL", "internal error"
	switch {
	case errors.Is(err, errs.ErrNotFound):
		status, code, msg = http.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, errs.ErrNoData):
		status, code, msg = http.StatusNotFound, "NO_DATA", err.Error()
	case errors.Is(err, errs.ErrDivisionByZero):
		status, code, msg = http.StatusUnprocessableEntity, "DIVISION_BY_ZERO", err.Error()
	case errors.Is(err, errs.ErrParse):
		status, code, msg = http.StatusInternalServerError, "PARSE_ERROR", err.Error()
	case errors.Is(err, explorer.ErrBoundariesUnavailable):
		status, code, msg = http.StatusServiceUnavailable, "UNAVAILABLE", err.Error()
	default:
		h.logger.Error("request failed", "request_id", c.GetString(requestIDKey), "path", c.FullPath(), "error", err)
	}
	c.JSON(status, ErrorResponse{Error: msg, Code: code, RequestID: c.GetString(requestIDKey)})
}

func (h *Handlers) names(c *gin.Context, list func(context.Context) ([]string, error)) {
	names, err := list(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, NamesResponse{Names: names})
}

// HandleWards handles GET /v1/wards.
func (h *Handlers) HandleWards(c *gin.Context) { h.names(c, h.ex.Wards) }

// HandleDistricts handles GET /v1/districts.
func (h *Handlers) HandleDistricts(c *gin.Context) { h.names(c, h.ex.Districts) }

// HandleAreas handles GET /v1/areas.
func (h *Handlers) HandleAreas(c *gin.Context) { h.names(c, h.ex.Areas) }

// HandleTowns handles GET /v1/towns.
func (h *Handlers) HandleTowns(c *gin.Context) { h.names(c, h.ex.Towns) }

// HandleWardsWithPrices handles GET /v1/wards/with-prices.
func (h *Handlers) HandleWardsWithPrices(c *gin.Context) {
	var req WardsWithPricesRequest
	if !h.bind(c, &req) {
		return
	}
	if req.Since == 0 {
		req.Since = series.DefaultYearFloor
	}
	h.names(c, func(ctx context.Context) ([]string, error) {
		return h.ex.WardsWithPrices(ctx, req.Since, req.District)
	})
}

// HandleAveragePrice handles GET /v1/house/average.
func (h *Handlers) HandleAveragePrice(c *gin.Context) {
	var req AveragePriceRequest
	if !h.bind(c, &req) {
		return
	}
	avg, err := h.ex.AveragePrice(c.Request.Context(), req.Ward, req.Years)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ValueResponse{Value: avg})
}

// HandlePriceChange handles GET /v1/house/change.
func (h *Handlers) HandlePriceChange(c *gin.Context) {
	var req PriceChangeRequest
	if !h.bind(c, &req) {
		return
	}
	pct, err := h.ex.PriceChange(c.Request.Context(), req.Ward, req.From, req.To)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ValueResponse{Value: pct})
}

// HandleLowestWard handles GET /v1/house/lowest.
func (h *Handlers) HandleLowestWard(c *gin.Context) {
	var req LowestWardRequest
	if !h.bind(c, &req) {
		return
	}
	res, err := h.ex.LowestWard(c.Request.Context(), req.District, req.Year, types.Quarter(req.Quarter))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleBroadbandArea handles GET /v1/broadband/area.
func (h *Handlers) HandleBroadbandArea(c *gin.Context) {
	var req AreaRequest
	if !h.bind(c, &req) {
		return
	}
	cov, err := h.ex.BroadbandByArea(c.Request.Context(), req.Area)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cov)
}

// HandleBroadbandPostcode handles GET /v1/broadband/postcode.
func (h *Handlers) HandleBroadbandPostcode(c *gin.Context) {
	var req PostcodeRequest
	if !h.bind(c, &req) {
		return
	}
	cov, err := h.ex.BroadbandByPostcode(c.Request.Context(), req.Postcode)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cov)
}

// HandleLowGigabit handles GET /v1/broadband/low-gigabit.
func (h *Handlers) HandleLowGigabit(c *gin.Context) {
	var req LowGigabitRequest
	if !h.bind(c, &req) {
		return
	}
	threshold := analytics.DefaultGigabitThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	h.names(c, func(ctx context.Context) ([]string, error) {
		return h.ex.LowGigabitAreas(ctx, threshold)
	})
}

// HandleTaxDiff handles GET /v1/tax/diff.
func (h *Handlers) HandleTaxDiff(c *gin.Context) {
	var req TaxDiffRequest
	if !h.bind(c, &req) {
		return
	}
	diff, err := h.ex.CouncilTaxDifference(c.Request.Context(), req.TownA, req.TownB, req.Band)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ValueResponse{Value: diff})
}

// HandleTaxLowest handles GET /v1/tax/lowest.
func (h *Handlers) HandleTaxLowest(c *gin.Context) {
	h.townCharge(c, h.ex.LowestCouncilTax)
}

// HandleXMLHighest handles GET /v1/tax/xml/highest.
func (h *Handlers) HandleXMLHighest(c *gin.Context) {
	h.townCharge(c, h.ex.XMLHighest)
}

func (h *Handlers) townCharge(c *gin.Context, fn func(context.Context, string) (explorer.TownCharge, error)) {
	var req BandRequest
	if !h.bind(c, &req) {
		return
	}
	res, err := fn(c.Request.Context(), req.Band)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleXMLAverage handles GET /v1/tax/xml/average.
func (h *Handlers) HandleXMLAverage(c *gin.Context) {
	var req BandRequest
	if !h.bind(c, &req) {
		return
	}
	avg, err := h.ex.XMLAverage(c.Request.Context(), req.Band)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ValueResponse{Value: avg})
}

func (h *Handlers) trends(c *gin.Context) (explorer.Trends, bool) {
	var req TrendsRequest
	if !h.bind(c, &req) {
		return explorer.Trends{}, false
	}
	if req.Since == 0 {
		req.Since = series.DefaultYearFloor
	}
	res, err := h.ex.Trends(c.Request.Context(), req.Wards, req.Since)
	if err != nil {
		h.fail(c, err)
		return explorer.Trends{}, false
	}
	return res, true
}

// HandleTrends handles GET /v1/charts/trends.
func (h *Handlers) HandleTrends(c *gin.Context) {
	if res, ok := h.trends(c); ok {
		c.JSON(http.StatusOK, res)
	}
}

// HandleTrendsPNG handles GET /v1/charts/trends.png.
func (h *Handlers) HandleTrendsPNG(c *gin.Context) {
	res, ok := h.trends(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := report.TrendChart(&buf, res.Series, res.Axis, "House Price Trends by Ward"); err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// HandleTrendsXLSX handles GET /v1/charts/trends.xlsx.
func (h *Handlers) HandleTrendsXLSX(c *gin.Context) {
	res, ok := h.trends(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := report.Workbook(&buf, res.Series, res.Axis, nil); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="trends.xlsx"`)
	c.Data(http.StatusOK, report.XLSXContentType, buf.Bytes())
}

func (h *Handlers) bars(c *gin.Context) (string, []series.Bar, bool) {
	var req BarsRequest
	if !h.bind(c, &req) {
		return "", nil, false
	}
	if req.Since == 0 {
		req.Since = series.DefaultYearFloor
	}
	bars, err := h.ex.DistrictAverages(c.Request.Context(), req.District, req.Wards, req.Since)
	if err != nil {
		h.fail(c, err)
		return "", nil, false
	}
	return req.District, bars, true
}

// HandleBars handles GET /v1/charts/bars.
func (h *Handlers) HandleBars(c *gin.Context) {
	if _, bars, ok := h.bars(c); ok {
		c.JSON(http.StatusOK, gin.H{"bars": bars})
	}
}

// HandleBarsPNG handles GET /v1/charts/bars.png.
func (h *Handlers) HandleBarsPNG(c *gin.Context) {
	district, bars, ok := h.bars(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := report.BarChart(&buf, bars, "Average House Prices in "+district+" Wards"); err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// HandleBarsXLSX handles GET /v1/charts/bars.xlsx.
func (h *Handlers) HandleBarsXLSX(c *gin.Context) {
	_, bars, ok := h.bars(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := report.Workbook(&buf, nil, nil, bars); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="district-averages.xlsx"`)
	c.Data(http.StatusOK, report.XLSXContentType, buf.Bytes())
}

// HandleWardAt handles GET /v1/location/ward.
func (h *Handlers) HandleWardAt(c *gin.Context) {
	var req WardAtRequest
	if !h.bind(c, &req) {
		return
	}
	loc, err := h.ex.WardAt(c.Request.Context(), *req.Lat, *req.Lon)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}
