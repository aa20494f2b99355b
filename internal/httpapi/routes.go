package httpapi

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the /v1 query endpoints.
//
//	GET /v1/wards                      ward names
//	GET /v1/wards/with-prices          wards with prices since a year
//	GET /v1/districts                  district names
//	GET /v1/areas                      broadband area names
//	GET /v1/towns                      council tax towns
//	GET /v1/house/average              mean price for a ward over years
//	GET /v1/house/change               percent change between two years
//	GET /v1/house/lowest               cheapest ward in a district
//	GET /v1/broadband/area             coverage by area name
//	GET /v1/broadband/postcode         coverage by postcode
//	GET /v1/broadband/low-gigabit      areas below a gigabit threshold
//	GET /v1/tax/diff                   charge difference between two towns
//	GET /v1/tax/lowest                 cheapest town for a band
//	GET /v1/tax/xml/average            band average from the XML document
//	GET /v1/tax/xml/highest            priciest town from the XML document
//	GET /v1/charts/trends              trend series as JSON
//	GET /v1/charts/trends.png          trend line chart
//	GET /v1/charts/trends.xlsx         trend table as a workbook
//	GET /v1/charts/bars                district averages as JSON
//	GET /v1/charts/bars.png            district averages bar chart
//	GET /v1/charts/bars.xlsx           district averages as a workbook
//	GET /v1/location/ward              ward at a coordinate
func RegisterRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.GET("/wards", h.HandleWards)
	rg.GET("/wards/with-prices", h.HandleWardsWithPrices)
	rg.GET("/districts", h.HandleDistricts)
	rg.GET("/areas", h.HandleAreas)
	rg.GET("/towns", h.HandleTowns)

	house := rg.Group("/house")
	house.GET("/average", h.HandleAveragePrice)
	house.GET("/change", h.HandlePriceChange)
	house.GET("/lowest", h.HandleLowestWard)

	broadband := rg.Group("/broadband")
	broadband.GET("/area", h.HandleBroadbandArea)
	broadband.GET("/postcode", h.HandleBroadbandPostcode)
	broadband.GET("/low-gigabit", h.HandleLowGigabit)

	tax := rg.Group("/tax")
	tax.GET("/diff", h.HandleTaxDiff)
	tax.GET("/lowest", h.HandleTaxLowest)
	tax.GET("/xml/average", h.HandleXMLAverage)
	tax.GET("/xml/highest", h.HandleXMLHighest)

	charts := rg.Group("/charts")
	charts.GET("/trends", h.HandleTrends)
	charts.GET("/trends.png", h.HandleTrendsPNG)
	charts.GET("/trends.xlsx", h.HandleTrendsXLSX)
	charts.GET("/bars", h.HandleBars)
	charts.GET("/bars.png", h.HandleBarsPNG)
	charts.GET("/bars.xlsx", h.HandleBarsXLSX)

	rg.GET("/location/ward", h.HandleWardAt)
}
