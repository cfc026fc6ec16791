// Package corpus collects units from every source beneath a root.
package corpus

import (
	"errors"

	"semdiff/internal/classify"
	"semdiff/internal/extract"
	"semdiff/internal/fsio"
	"semdiff/internal/ignore"
	"semdiff/internal/unit"
)

// Collector builds unit corpora from filesystem roots.
type Collector struct {
	classifier *classify.Classifier
	selector   *extract.Selector
	ignore     *ignore.Matcher
}

// Option configures a Collector.
type Option func(*Collector)

// WithIgnore sets the ignore matcher applied to directory walks.
func WithIgnore(m *ignore.Matcher) Option {
	return func(c *Collector) { c.ignore = m }
}

// WithClassifier sets a classifier carrying language overrides.
func WithClassifier(cl *classify.Classifier) Option {
	return func(c *Collector) { c.classifier = cl }
}

// NewCollector creates a collector with default classification and no
// ignore patterns.
func NewCollector(opts ...Option) *Collector {
	c := &Collector{
		classifier: classify.NewClassifier(nil),
		selector:   extract.NewSelector(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Build extracts units from root. A file root is extracted directly; a
// directory contributes every contained file in lexicographic path order.
// Sources that fail structured extraction are dropped entirely and the
// walk continues; IO failures abort.
func (c *Collector) Build(root string) ([]unit.Unit, error) {
	sources, err := fsio.ListSources(root, c.ignore)
	if err != nil {
		return nil, err
	}

	var units []unit.Unit
	for _, src := range sources {
		text, err := fsio.ReadText(src)
		if err != nil {
			return nil, err
		}

		extracted, err := c.Extract(src, text)
		if err != nil {
			var parseErr *extract.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, err
		}
		units = append(units, extracted...)
	}
	return units, nil
}

// Extract runs the classified strategy for one already-loaded source.
func (c *Collector) Extract(path, text string) ([]unit.Unit, error) {
	return c.selector.For(c.classifier.Strategy(path)).Extract(path, text)
}
