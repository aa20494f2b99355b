package counciltax

import (
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oxexplorer/internal/errs"
	"oxexplorer/internal/testfixture"
)

func parseString(t *testing.T, s string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(s))
	require.NoError(t, err)
	return doc
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func TestParseFile(t *testing.T) {
	doc, err := ParseFile(testfixture.WriteXML(t, testfixture.CouncilTaxXML))
	require.NoError(t, err)
	require.Len(t, doc.Towns, 3)
	assert.Equal(t, "Oxford", doc.Towns[0].Name)
	assert.Equal(t, Band{Name: "B", Charge: "1750.20"}, doc.Towns[0].Bands[1])
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nope.xml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrParse)
}

func TestParse_Malformed(t *testing.T) {
	const town = `<Town name="A"><Band name="B" charge="10"/></Town>`
	tests := []struct {
		name string
		doc  string
	}{
		{"unclosed", `<CouncilTax><Town name="Oxford">`},
		{"element after root", `<CouncilTax>` + town + `</CouncilTax><Other/>`},
		{"truncated element after root", `<CouncilTax>` + town + `</CouncilTax><Town name="B"><Band`},
		{"extra end tag", `<CouncilTax>` + town + `</CouncilTax></CouncilTax>`},
		{"text after root", `<CouncilTax>` + town + `</CouncilTax>trailing`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			require.Error(t, err)

			var pe *errs.ParseError
			require.True(t, errors.As(err, &pe))
			assert.ErrorIs(t, err, errs.ErrParse)
		})
	}
}

func TestParse_TrailingWhitespaceAndComments(t *testing.T) {
	doc, err := Parse(strings.NewReader("<CouncilTax><Town name=\"A\"><Band name=\"B\" charge=\"10\"/></Town></CouncilTax>\n<!-- exported -->\n"))
	require.NoError(t, err)

	avg, err := doc.AverageForBand("B")
	require.NoError(t, err)
	assert.Equal(t, 10.0, avg)
}

func TestAverageForBand(t *testing.T) {
	doc := parseString(t, testfixture.CouncilTaxXML)

	avg, err := doc.AverageForBand("A")
	require.NoError(t, err)
	assert.Equal(t, 1500.10, avg)

	avg, err = doc.AverageForBand("B")
	require.NoError(t, err)
	assert.Equal(t, 1650.07, round2(avg))

	_, err = doc.AverageForBand("H")
	assert.ErrorIs(t, err, errs.ErrNoData)
}

func TestAverageForBand_NonNumericCharge(t *testing.T) {
	doc := parseString(t, `<CouncilTax>
		<Town name="Oxford"><Band name="A" charge="n/a"/><Band name="B" charge="1750.20"/></Town>
	</CouncilTax>`)

	_, err := doc.AverageForBand("A")
	assert.ErrorIs(t, err, errs.ErrParse)

	avg, err := doc.AverageForBand("B")
	require.NoError(t, err, "bad charge in another band is ignored")
	assert.Equal(t, 1750.20, avg)
}

func TestHighestForBand(t *testing.T) {
	doc := parseString(t, testfixture.CouncilTaxXML)

	got, err := doc.HighestForBand("C")
	require.NoError(t, err)
	assert.Equal(t, Highest{Town: "Oxford", Charge: 2000.30}, got, "first town wins the tie with Witney")

	_, err = doc.HighestForBand("H")
	assert.ErrorIs(t, err, errs.ErrNoData)
}

func TestHighestForBand_NonPositiveChargesKeepZeroStart(t *testing.T) {
	doc := parseString(t, `<CouncilTax>
		<Town name="Nowhere"><Band name="C" charge="0"/></Town>
		<Town name="Refundville"><Band name="C" charge="-12.5"/></Town>
	</CouncilTax>`)

	got, err := doc.HighestForBand("C")
	require.NoError(t, err)
	assert.Equal(t, Highest{}, got)
}

func TestParse_IgnoresNestedTowns(t *testing.T) {
	doc := parseString(t, `<Root>
		<Town name="Top"><Band name="A" charge="10"/></Town>
		<Group><Town name="Nested"><Band name="A" charge="1000"/></Town></Group>
	</Root>`)

	avg, err := doc.AverageForBand("A")
	require.NoError(t, err)
	assert.Equal(t, 10.0, avg)
}
