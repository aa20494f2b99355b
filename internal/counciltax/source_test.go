package counciltax

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oxexplorer/internal/errs"
	"oxexplorer/internal/observability"
	"oxexplorer/internal/testfixture"
)

const updatedXML = `<CouncilTax>
	<Town name="Thame"><Band name="C" charge="2500.00"/></Town>
</CouncilTax>`

func TestFileSource_ParsesEveryCall(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	agg := NewAggregator(NewFileSource(testfixture.WriteXML(t, testfixture.CouncilTaxXML), metrics))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := agg.AverageForBand(ctx, "B")
		require.NoError(t, err)
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.XMLDocuments.WithLabelValues("parse")))
}

func TestFileSource_CancelledContext(t *testing.T) {
	src := NewFileSource(testfixture.WriteXML(t, testfixture.CouncilTaxXML), observability.NewMetricsForTesting())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Document(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSources_WithoutMetrics(t *testing.T) {
	path := testfixture.WriteXML(t, testfixture.CouncilTaxXML)
	ctx := context.Background()

	doc, err := NewFileSource(path, nil).Document(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Towns, 3)

	clock := clockwork.NewFakeClock()
	c, err := NewCachedDocument(path, clock, slog.Default(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	for i := 0; i < 2; i++ {
		doc, err = c.Document(ctx)
		require.NoError(t, err)
		assert.Len(t, doc.Towns, 3)
	}
	clock.Advance(2 * DefaultRecheck)
	_, err = c.Document(ctx)
	require.NoError(t, err)
}

func newCached(t *testing.T, path string, clock clockwork.Clock) (*CachedDocument, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	c, err := NewCachedDocument(path, clock, slog.Default(), metrics)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, metrics
}

func TestCachedDocument_ServesMemo(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c, metrics := newCached(t, testfixture.WriteXML(t, testfixture.CouncilTaxXML), clock)
	agg := NewAggregator(c)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := agg.HighestForBand(ctx, "C")
		require.NoError(t, err)
		assert.Equal(t, "Oxford", got.Town)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.XMLDocuments.WithLabelValues("parse")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.XMLDocuments.WithLabelValues("cache")))
}

func TestCachedDocument_ReloadsAfterRecheckWhenFileChanged(t *testing.T) {
	clock := clockwork.NewFakeClock()
	path := testfixture.WriteXML(t, testfixture.CouncilTaxXML)
	c, _ := newCached(t, path, clock)
	agg := NewAggregator(c)
	ctx := context.Background()

	_, err := agg.HighestForBand(ctx, "C")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(updatedXML), 0o644))
	clock.Advance(DefaultRecheck + time.Millisecond)

	got, err := agg.HighestForBand(ctx, "C")
	require.NoError(t, err)
	assert.Equal(t, Highest{Town: "Thame", Charge: 2500}, got)
}

func TestCachedDocument_WatcherInvalidates(t *testing.T) {
	clock := clockwork.NewFakeClock()
	path := testfixture.WriteXML(t, testfixture.CouncilTaxXML)
	c, _ := newCached(t, path, clock)
	agg := NewAggregator(c)
	ctx := context.Background()

	_, err := agg.AverageForBand(ctx, "C")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(updatedXML), 0o644))

	// The fake clock never moves, so only the watcher can expose the new file.
	assert.Eventually(t, func() bool {
		got, err := agg.HighestForBand(ctx, "C")
		return err == nil && got.Town == "Thame"
	}, 5*time.Second, 20*time.Millisecond)
}

func TestCachedDocument_ParseErrorNotMemoised(t *testing.T) {
	clock := clockwork.NewFakeClock()
	path := testfixture.WriteXML(t, `<CouncilTax><Town`)
	c, _ := newCached(t, path, clock)
	ctx := context.Background()

	_, err := c.Document(ctx)
	require.ErrorIs(t, err, errs.ErrParse)

	require.NoError(t, os.WriteFile(path, []byte(updatedXML), 0o644))
	doc, err := c.Document(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Thame", doc.Towns[0].Name)
}
