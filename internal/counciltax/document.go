// Package counciltax reads the council tax XML document and aggregates band
// charges across towns.
package counciltax

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"oxexplorer/internal/errs"
)

// Document is the parsed council tax file: Town elements directly under the
// root, each holding Band elements.
type Document struct {
	Towns []Town `xml:"Town"`
}

// Town is one town and its band charges.
type Town struct {
	Name  string `xml:"name,attr"`
	Bands []Band `xml:"Band"`
}

// Band holds the raw charge attribute; it is converted only when a band is
// aggregated, so a malformed charge in an unrelated band is never an error.
type Band struct {
	Name   string `xml:"name,attr"`
	Charge string `xml:"charge,attr"`
}

// Parse decodes a document from r.
func Parse(r io.Reader) (*Document, error) {
	doc, err := decode(r)
	if err != nil {
		return nil, &errs.ParseError{Err: err}
	}
	return doc, nil
}

func decode(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	// Only whitespace, comments and processing instructions may follow the root.
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return &doc, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return nil, fmt.Errorf("junk after document element: <%s>", t.Name.Local)
		case xml.EndElement:
			return nil, fmt.Errorf("junk after document element: </%s>", t.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return nil, errors.New("junk after document element: text")
			}
		}
	}
}

// ParseFile decodes the document at path. An unreadable file is reported as a
// ParseError, the same as a malformed one.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &errs.ParseError{Path: path, Err: err}
	}
	defer f.Close()

	doc, err := decode(f)
	if err != nil {
		return nil, &errs.ParseError{Path: path, Err: err}
	}
	return doc, nil
}

// charges returns every (town, charge) pair for band in document order.
func (d *Document) charges(band string) ([]townCharge, error) {
	var out []townCharge
	for _, town := range d.Towns {
		for _, b := range town.Bands {
			if b.Name != band {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(b.Charge), 64)
			if err != nil {
				return nil, &errs.ParseError{Err: fmt.Errorf("town %q band %s: invalid charge %q", town.Name, band, b.Charge)}
			}
			out = append(out, townCharge{town: town.Name, charge: v})
		}
	}
	return out, nil
}

type townCharge struct {
	town   string
	charge float64
}

// AverageForBand returns the mean charge over every Band element named band.
func (d *Document) AverageForBand(band string) (float64, error) {
	charges, err := d.charges(band)
	if err != nil {
		return 0, err
	}
	if len(charges) == 0 {
		return 0, errs.NoData("band %s in council tax document", band)
	}
	var sum float64
	for _, c := range charges {
		sum += c.charge
	}
	return sum / float64(len(charges)), nil
}

// Highest is the result of HighestForBand.
type Highest struct {
	Town   string  `json:"town"`
	Charge float64 `json:"charge"`
}

// HighestForBand returns the town with the largest charge for band. The
// running maximum starts at ("", 0) and only strictly larger charges replace
// it, so when every matching charge is zero or negative the result is ("", 0).
// The first town wins a tie.
func (d *Document) HighestForBand(band string) (Highest, error) {
	charges, err := d.charges(band)
	if err != nil {
		return Highest{}, err
	}
	if len(charges) == 0 {
		return Highest{}, errs.NoData("band %s in council tax document", band)
	}
	var best Highest
	for _, c := range charges {
		if c.charge > best.Charge {
			best = Highest{Town: c.town, Charge: c.charge}
		}
	}
	return best, nil
}
