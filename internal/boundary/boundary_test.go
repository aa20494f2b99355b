package boundary

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oxexplorer/internal/testfixture"
)

func TestLocator_WGS84(t *testing.T) {
	path := testfixture.WriteBoundaries(t, []testfixture.BoundarySquare{
		{Name: "Summertown", MinX: -1.28, MinY: 51.77, MaxX: -1.25, MaxY: 51.79},
		{Name: "Barton", MinX: -1.21, MinY: 51.76, MaxX: -1.19, MaxY: 51.78},
	})

	l, err := Load(path, "wd_name", WGS84)
	require.NoError(t, err)
	assert.Equal(t, 2, l.Len())

	name, ok := l.WardAt(51.78, -1.265)
	require.True(t, ok)
	assert.Equal(t, "Summertown", name)

	name, ok = l.WardAt(51.77, -1.20)
	require.True(t, ok)
	assert.Equal(t, "Barton", name)

	_, ok = l.WardAt(51.50, -0.12)
	assert.False(t, ok)
}

func TestLocator_BNG(t *testing.T) {
	n, e := WGS84ToBNG(51.752, -1.2577)
	path := testfixture.WriteBoundaries(t, []testfixture.BoundarySquare{
		{Name: "Carfax", MinX: e - 500, MinY: n - 500, MaxX: e + 500, MaxY: n + 500},
	})

	l, err := Load(path, "WD_NAME", BNG)
	require.NoError(t, err)

	name, ok := l.WardAt(51.752, -1.2577)
	require.True(t, ok)
	assert.Equal(t, "Carfax", name)

	_, ok = l.WardAt(51.80, -1.2577)
	assert.False(t, ok)
}

func TestLoad_Errors(t *testing.T) {
	path := testfixture.WriteBoundaries(t, testfixture.WardBoundaries)

	_, err := Load(path, "WARD", WGS84)
	assert.ErrorContains(t, err, "no WARD attribute")

	_, err = Load(path, "WD_NAME", CRS("utm"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.shp"), "WD_NAME", WGS84)
	assert.Error(t, err)
}

func TestAttributeText_StripsPadding(t *testing.T) {
	assert.Equal(t, "Summertown", attributeText("Summertown\x00\x00\x00"))
	assert.Equal(t, "Summertown", attributeText("  Summertown  "))
	assert.Equal(t, "St Clement's", attributeText("St Clement's \x00\x00"))
	assert.Equal(t, "", attributeText("\x00\x00"))
}

func TestLoad_NamesHaveNoPadding(t *testing.T) {
	l, err := Load(testfixture.WriteBoundaries(t, testfixture.WardBoundaries), "WD_NAME", WGS84)
	require.NoError(t, err)

	for _, w := range l.wards {
		assert.NotContains(t, w.name, "\x00")
	}
	name, ok := l.WardAt(51.78, -1.29)
	require.True(t, ok)
	assert.Equal(t, "Port Meadow", name)
}

func TestPointInRing(t *testing.T) {
	ring := [][2]float64{{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0}}
	assert.True(t, pointInRing(5, 5, ring))
	assert.False(t, pointInRing(15, 5, ring))
	assert.False(t, pointInRing(5, -1, ring))
}

func TestWGS84ToBNG_TrueOrigin(t *testing.T) {
	n, e := WGS84ToBNG(49, -2)
	assert.InDelta(t, -100000.0, n, 1e-6)
	assert.InDelta(t, 400000.0, e, 1e-6)
}

func TestWGS84ToBNG_OrdnanceSurveyWorkedExample(t *testing.T) {
	// 52°39'27.2531"N 1°43'4.5177"E
	n, e := WGS84ToBNG(52.65757030555556, 1.7179215833333334)
	assert.InDelta(t, 313177.270, n, 0.05)
	assert.InDelta(t, 651409.903, e, 0.05)
}
