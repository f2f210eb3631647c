// Package passage provides the reference texts offered by the typing test.
package passage

import (
	"errors"
	"math/rand"
	"strings"
	"time"
)

// ErrNoPassages is returned when a source yields no usable text.
var ErrNoPassages = errors.New("no passages")

// Passage is one reference text.
type Passage struct {
	Title string
	Text  string
}

var builtin = []Passage{
	{Title: "Quick Brown Fox", Text: "The quick brown fox jumps over the lazy dog. This is a sample text for typing practice. Keep typing to improve your speed and accuracy."},
	{Title: "The Hobbit", Text: "In a hole in the ground there lived a hobbit. Not a nasty, dirty, wet hole, filled with the ends of worms and an oozy smell, nor yet a dry, bare, sandy hole with nothing in it to sit down on or to eat."},
	{Title: "A Tale of Two Cities", Text: "It was the best of times, it was the worst of times, it was the age of wisdom, it was the age of foolishness, it was the epoch of belief, it was the epoch of incredulity."},
	{Title: "Hamlet", Text: "To be or not to be, that is the question. Whether tis nobler in the mind to suffer the slings and arrows of outrageous fortune, or to take arms against a sea of troubles."},
	{Title: "Anna Karenina", Text: "All happy families are alike; each unhappy family is unhappy in its own way. Everything was in confusion in the Oblonskys house. The wife had discovered that the husband was carrying on an intrigue."},
}

// Builtin returns a copy of the built-in passages.
func Builtin() []Passage {
	return append([]Passage(nil), builtin...)
}

// Catalog is an ordered, non-empty set of passages.
type Catalog struct {
	items []Passage
	rnd   *rand.Rand
}

// NewCatalog builds a catalog. Passages with blank text are dropped.
func NewCatalog(items []Passage) (*Catalog, error) {
	kept := make([]Passage, 0, len(items))
	for _, p := range items {
		p.Text = normalize(p.Text)
		if p.Text == "" {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return nil, ErrNoPassages
	}
	return &Catalog{
		items: kept,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Len returns the number of passages.
func (c *Catalog) Len() int {
	return len(c.items)
}

// At returns the passage at i, wrapping around in both directions.
func (c *Catalog) At(i int) Passage {
	return c.items[c.Index(i)]
}

// Index normalizes i into the catalog range.
func (c *Catalog) Index(i int) int {
	n := len(c.items)
	return ((i % n) + n) % n
}

// Random returns a random index different from current when possible.
func (c *Catalog) Random(current int) int {
	if len(c.items) < 2 {
		return 0
	}
	next := c.rnd.Intn(len(c.items) - 1)
	if next >= c.Index(current) {
		next++
	}
	return next
}

// Titles lists passage titles in catalog order.
func (c *Catalog) Titles() []string {
	titles := make([]string, len(c.items))
	for i, p := range c.items {
		titles[i] = p.Title
	}
	return titles
}

// normalize collapses runs of whitespace so every word is separated by one space.
func normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
