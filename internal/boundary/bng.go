package boundary

// Latitude/longitude → Ordnance Survey National Grid (transverse Mercator on
// the Airy 1830 ellipsoid). No datum shift is applied, so WGS-84 input lands
// within roughly 120 m of the true OSGB36 position; ward polygons are far
// larger than that.

import "math"

const (
	airyA       = 6377563.396
	airyB       = 6356256.909
	gridF0      = 0.9996012717
	gridLat0Deg = 49.0
	gridLon0Deg = -2.0
	gridE0      = 400000.0
	gridN0      = -100000.0
)

// WGS84ToBNG returns (northing, easting) in metres, matching the [y, x]
// ordering of the boundary rings.
func WGS84ToBNG(latDeg, lonDeg float64) (northing, easting float64) {
	phi := latDeg * math.Pi / 180
	lambda := lonDeg * math.Pi / 180
	phi0 := gridLat0Deg * math.Pi / 180
	lambda0 := gridLon0Deg * math.Pi / 180

	e2 := 1 - (airyB*airyB)/(airyA*airyA)
	n := (airyA - airyB) / (airyA + airyB)
	n2, n3 := n*n, n*n*n

	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)
	tanPhi := math.Tan(phi)
	nu := airyA * gridF0 / math.Sqrt(1-e2*sinPhi*sinPhi)
	rho := airyA * gridF0 * (1 - e2) / math.Pow(1-e2*sinPhi*sinPhi, 1.5)
	eta2 := nu/rho - 1

	dPhi, sPhi := phi-phi0, phi+phi0
	m := airyB * gridF0 * ((1+n+1.25*n2+1.25*n3)*dPhi -
		(3*n+3*n2+21.0/8*n3)*math.Sin(dPhi)*math.Cos(sPhi) +
		(15.0/8*n2+15.0/8*n3)*math.Sin(2*dPhi)*math.Cos(2*sPhi) -
		35.0/24*n3*math.Sin(3*dPhi)*math.Cos(3*sPhi))

	cos3, cos5 := math.Pow(cosPhi, 3), math.Pow(cosPhi, 5)
	tan2, tan4 := tanPhi*tanPhi, math.Pow(tanPhi, 4)

	i := m + gridN0
	ii := nu / 2 * sinPhi * cosPhi
	iii := nu / 24 * sinPhi * cos3 * (5 - tan2 + 9*eta2)
	iiia := nu / 720 * sinPhi * cos5 * (61 - 58*tan2 + tan4)
	iv := nu * cosPhi
	v := nu / 6 * cos3 * (nu/rho - tan2)
	vi := nu / 120 * cos5 * (5 - 18*tan2 + tan4 + 14*eta2 - 58*tan2*eta2)

	dl := lambda - lambda0
	northing = i + ii*dl*dl + iii*math.Pow(dl, 4) + iiia*math.Pow(dl, 6)
	easting = gridE0 + iv*dl + v*math.Pow(dl, 3) + vi*math.Pow(dl, 5)
	return northing, easting
}
