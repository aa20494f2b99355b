// Package testfixture builds a small Oxfordshire dataset on disk for tests.
// It is imported only from _test.go files.
package testfixture

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	shp "github.com/jonas-p/go-shp"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE District (ward_id TEXT, ward_name TEXT, district_id TEXT, district_name TEXT);
CREATE TABLE HousePrice (ward_id TEXT, district_id TEXT, year INTEGER, quarter TEXT, price REAL);
CREATE TABLE Area (area_id TEXT, area_name TEXT);
CREATE TABLE BroadBand (area_id TEXT, avg_download_speed REAL, superfast_availability REAL, gigabit_availability REAL);
CREATE TABLE PostCode (postcode TEXT, area_id TEXT);
CREATE TABLE CouncilTax (town_name TEXT, band TEXT, charge REAL);
`

// Rows are inserted deliberately out of calendar order so ordering is exercised.
const data = `
INSERT INTO District VALUES
	('W01', 'Summertown', 'D01', 'Oxford'),
	('W02', 'Barton', 'D01', 'Oxford'),
	('W03', 'Marston', 'D01', 'Oxford'),
	('W10', 'Banbury Cross and Neithrop', 'D02', 'Cherwell'),
	('W11', 'Bicester East', 'D02', 'Cherwell'),
	('W12', 'Deddington', 'D02', 'Cherwell'),
	('W20', 'Zero Ward', 'D03', 'Vale of White Horse');

INSERT INTO HousePrice VALUES
	('W01', 'D01', 2023, 'Jun', 460000),
	('W01', 'D01', 2020, 'Dec', 410000),
	('W01', 'D01', 2020, 'Mar', 390000),
	('W01', 'D01', 2013, 'Dec', 320000),
	('W01', 'D01', 2013, 'Mar', 310000),
	('W01', 'D01', 2012, 'Sep', 300000),
	('W02', 'D01', 2023, 'Jun', 280000),
	('W02', 'D01', 2022, 'Jun', 270000),
	('W02', 'D01', 2020, 'Mar', 250000),
	('W03', 'D01', 2022, 'Sep', 305000),
	('W03', 'D01', 2022, 'Jun', 300000),
	('W11', 'D02', 2022, 'Sep', 240000),
	('W11', 'D02', 2022, 'Jun', 230000),
	('W10', 'D02', 2022, 'Jun', 230000),
	('W20', 'D03', 2020, 'Mar', 100000),
	('W20', 'D03', 2019, 'Mar', 0);

INSERT INTO Area VALUES
	('A', 'Abingdon Central'),
	('B', 'Banbury Ruscote'),
	('C', 'Carterton North');

INSERT INTO BroadBand VALUES
	('A', 30.5, 55.2, 0.3),
	('B', 80.1, 97.0, 0.6),
	('C', 45.0, 90.0, 0.49);

INSERT INTO PostCode VALUES
	('OX3 0FG', 'A'),
	('OX4 1FY', 'C');

INSERT INTO CouncilTax VALUES
	('Oxford', 'A', 1500.10),
	('Oxford', 'B', 1750.20),
	('Oxford', 'C', 2000.30),
	('Witney', 'B', 1600.00),
	('Banbury', 'B', 1600.00),
	('Banbury', 'C', 1900.00);
`

// CouncilTaxXML mirrors the CouncilTax rows in the hierarchical document format.
const CouncilTaxXML = `<?xml version="1.0" encoding="UTF-8"?>
<CouncilTax>
	<Town name="Oxford">
		<Band name="A" charge="1500.10"/>
		<Band name="B" charge="1750.20"/>
		<Band name="C" charge="2000.30"/>
	</Town>
	<Town name="Banbury">
		<Band name="B" charge="1600.00"/>
		<Band name="C" charge="1900.00"/>
	</Town>
	<Town name="Witney">
		<Band name="B" charge="1600.00"/>
		<Band name="C" charge="2000.30"/>
	</Town>
</CouncilTax>
`

// NewDatabase writes the fixture SQLite file into a temp dir and returns its path.
func NewDatabase(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oxfordshire.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	defer db.Close()

	for _, stmt := range []string{schema, data} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("load fixture db: %v", err)
		}
	}
	return path
}

// WriteXML writes content to a file in a temp dir and returns its path.
func WriteXML(t testing.TB, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "CouncilTaxData.xml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture xml: %v", err)
	}
	return path
}

// BoundarySquare is an axis-aligned ward polygon. X/Y are lon/lat for a WGS-84
// layer and easting/northing for a National Grid layer.
type BoundarySquare struct {
	Name                   string
	MinX, MinY, MaxX, MaxY float64
}

// WardBoundaries covers Summertown and a ward the fixture database does not know.
var WardBoundaries = []BoundarySquare{
	{Name: "Summertown", MinX: -1.28, MinY: 51.77, MaxX: -1.25, MaxY: 51.79},
	{Name: "Port Meadow", MinX: -1.30, MinY: 51.77, MaxX: -1.28, MaxY: 51.79},
}

// WriteBoundaries writes squares as a polygon shapefile with a WD_NAME
// attribute and returns the .shp path. The writer names its attribute table
// "<base>dbf", so it is moved to "<base>.dbf" where readers look for it.
func WriteBoundaries(t testing.TB, squares []BoundarySquare) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wards.shp")

	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		t.Fatalf("create fixture shapefile: %v", err)
	}
	if err := w.SetFields([]shp.Field{shp.StringField("WD_NAME", 50)}); err != nil {
		t.Fatalf("set fixture shapefile fields: %v", err)
	}
	for _, s := range squares {
		ring := []shp.Point{
			{X: s.MinX, Y: s.MinY},
			{X: s.MinX, Y: s.MaxY},
			{X: s.MaxX, Y: s.MaxY},
			{X: s.MaxX, Y: s.MinY},
			{X: s.MinX, Y: s.MinY},
		}
		poly := shp.Polygon(*shp.NewPolyLine([][]shp.Point{ring}))
		idx := w.Write(&poly)
		if err := w.WriteAttribute(int(idx), 0, s.Name); err != nil {
			t.Fatalf("write fixture shapefile attribute: %v", err)
		}
	}
	w.Close()

	base := strings.TrimSuffix(path, ".shp")
	if _, err := os.Stat(base + "dbf"); err == nil {
		if err := os.Rename(base+"dbf", base+".dbf"); err != nil {
			t.Fatalf("rename fixture attribute table: %v", err)
		}
	}
	return path
}
