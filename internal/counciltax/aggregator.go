package counciltax

import "context"

// Aggregator answers band questions against a document source.
type Aggregator struct {
	src Source
}

// NewAggregator creates an Aggregator over src.
func NewAggregator(src Source) *Aggregator {
	return &Aggregator{src: src}
}

// AverageForBand returns the mean charge for band across every town.
func (a *Aggregator) AverageForBand(ctx context.Context, band string) (float64, error) {
	doc, err := a.src.Document(ctx)
	if err != nil {
		return 0, err
	}
	return doc.AverageForBand(band)
}

// HighestForBand returns the town charging the most for band.
func (a *Aggregator) HighestForBand(ctx context.Context, band string) (Highest, error) {
	doc, err := a.src.Document(ctx)
	if err != nil {
		return Highest{}, err
	}
	return doc.HighestForBand(band)
}
