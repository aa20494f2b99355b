package counciltax

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"

	"oxexplorer/internal/observability"
)

// Source yields the council tax document.
type Source interface {
	Document(ctx context.Context) (*Document, error)
}

// FileSource parses the file on every call.
type FileSource struct {
	path    string
	metrics *observability.Metrics
}

// NewFileSource creates a Source that re-reads path each time.
func NewFileSource(path string, metrics *observability.Metrics) *FileSource {
	return &FileSource{path: path, metrics: metrics}
}

// Document parses the file.
func (s *FileSource) Document(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	countDocument(s.metrics, "parse")
	return ParseFile(s.path)
}

// countDocument records where a document came from. Metrics are optional.
func countDocument(m *observability.Metrics, source string) {
	if m != nil {
		m.XMLDocuments.WithLabelValues(source).Inc()
	}
}

// DefaultRecheck bounds how long a memoised document is served before the
// file is stat'ed again.
const DefaultRecheck = time.Second

// CachedDocument memoises the parsed document until the file changes. Changes
// are picked up from fsnotify events on the containing directory and, as a
// fallback, from a modification time or size change seen at most once per
// recheck interval.
type CachedDocument struct {
	path    string
	clock   clockwork.Clock
	recheck time.Duration
	logger  *slog.Logger
	metrics *observability.Metrics

	mu        sync.Mutex
	doc       *Document
	modTime   time.Time
	size      int64
	checkedAt time.Time
	dirty     bool

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewCachedDocument starts watching path. Call Close to stop the watcher.
func NewCachedDocument(path string, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) (*CachedDocument, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory so editors that replace the file by rename are seen.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	c := &CachedDocument{
		path:    abs,
		clock:   clock,
		recheck: DefaultRecheck,
		logger:  logger,
		metrics: metrics,
		watcher: watcher,
		done:    make(chan struct{}),
	}
	go c.watch()
	return c, nil
}

func (c *CachedDocument) watch() {
	defer close(c.done)
	for {
		select {
		case ev, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != c.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) || ev.Has(fsnotify.Remove) {
				c.invalidate()
				c.logger.Debug("council tax document changed", "path", c.path, "op", ev.Op.String())
			}
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			c.logger.Warn("council tax watcher error", "path", c.path, "error", err)
		}
	}
}

func (c *CachedDocument) invalidate() {
	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()
}

// Document returns the memoised document, re-parsing it when the file changed.
func (c *CachedDocument) Document(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if c.doc != nil && !c.dirty {
		if now.Sub(c.checkedAt) < c.recheck {
			countDocument(c.metrics, "cache")
			return c.doc, nil
		}
		if fi, err := os.Stat(c.path); err == nil && fi.ModTime().Equal(c.modTime) && fi.Size() == c.size {
			c.checkedAt = now
			countDocument(c.metrics, "cache")
			return c.doc, nil
		}
	}

	fi, statErr := os.Stat(c.path)
	countDocument(c.metrics, "parse")
	doc, err := ParseFile(c.path)
	if err != nil {
		c.doc = nil
		return nil, err
	}
	c.doc = doc
	c.dirty = false
	c.checkedAt = now
	if statErr == nil {
		c.modTime = fi.ModTime()
		c.size = fi.Size()
	}
	return doc, nil
}

// Close stops the watcher.
func (c *CachedDocument) Close() error {
	err := c.watcher.Close()
	<-c.done
	return err
}
