// Package boundary finds the ward containing a coordinate using a ward
// boundary shapefile.
package boundary

import (
	"fmt"
	"math"
	"strings"

	shp "github.com/jonas-p/go-shp"
)

// CRS names the coordinate system the shapefile rings are stored in.
type CRS string

const (
	WGS84 CRS = "wgs84"
	BNG   CRS = "bng" // British National Grid, EPSG:27700
)

// ward is one polygon (possibly multi-part) with its name attribute.
type ward struct {
	name  string
	parts [][][2]float64 // each part is a closed ring of [y, x] points
	minY  float64
	minX  float64
	maxY  float64
	maxX  float64
}

// Locator answers point-in-ward queries over an in-memory boundary layer.
type Locator struct {
	crs   CRS
	wards []ward
}

// Load reads every polygon from the shapefile at path, naming each by the
// nameField attribute.
func Load(path, nameField string, crs CRS) (*Locator, error) {
	if crs != WGS84 && crs != BNG {
		return nil, fmt.Errorf("unsupported boundary CRS %q", crs)
	}

	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open boundary shapefile %s: %w", path, err)
	}
	defer r.Close()

	nameIdx := -1
	for i, f := range r.Fields() {
		if strings.EqualFold(f.String(), nameField) {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("boundary shapefile %s has no %s attribute", path, nameField)
	}

	l := &Locator{crs: crs}
	for r.Next() {
		idx, shape := r.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			continue
		}
		w := ward{
			name: attributeText(r.ReadAttribute(idx, nameIdx)),
			minY: math.MaxFloat64, minX: math.MaxFloat64,
			maxY: -math.MaxFloat64, maxX: -math.MaxFloat64,
		}
		for p := range poly.Parts {
			start := poly.Parts[p]
			end := int32(len(poly.Points))
			if p+1 < len(poly.Parts) {
				end = poly.Parts[p+1]
			}
			ring := make([][2]float64, 0, end-start)
			for _, pt := range poly.Points[start:end] {
				ring = append(ring, [2]float64{pt.Y, pt.X})
				w.minY = math.Min(w.minY, pt.Y)
				w.maxY = math.Max(w.maxY, pt.Y)
				w.minX = math.Min(w.minX, pt.X)
				w.maxX = math.Max(w.maxX, pt.X)
			}
			w.parts = append(w.parts, ring)
		}
		l.wards = append(l.wards, w)
	}
	return l, nil
}

// Len reports how many ward polygons were loaded.
func (l *Locator) Len() int { return len(l.wards) }

// WardAt returns the name of the first ward whose polygon contains the
// WGS-84 coordinate.
func (l *Locator) WardAt(lat, lon float64) (string, bool) {
	y, x := lat, lon
	if l.crs == BNG {
		y, x = WGS84ToBNG(lat, lon)
	}
	for _, w := range l.wards {
		if y < w.minY || y > w.maxY || x < w.minX || x > w.maxX {
			continue
		}
		for _, ring := range w.parts {
			if pointInRing(y, x, ring) {
				return w.name, true
			}
		}
	}
	return "", false
}

// attributeText strips the space and NUL padding DBF writers leave in
// fixed-width character fields.
func attributeText(s string) string {
	return strings.Trim(s, " \x00")
}

// pointInRing is the even-odd ray casting test.
func pointInRing(y, x float64, ring [][2]float64) bool {
	inside := false
	j := len(ring) - 1
	for i := range ring {
		yi, xi := ring[i][0], ring[i][1]
		yj, xj := ring[j][0], ring[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}
