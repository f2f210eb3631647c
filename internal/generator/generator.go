// Package generator builds random word passages for words mode.
package generator

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/verte-zerg/monkeytui/internal/passage"
)

// Options controls the shape of a generated passage.
type Options struct {
	Words    int
	CapsPct  float64
	PunctPct float64
	PunctSet []rune
	// Weak biases selection toward words containing these characters.
	Weak       map[rune]struct{}
	WeakFactor float64
}

// Generator produces randomized passages from a word list.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Passages generates count passages titled by their position.
func (g *Generator) Passages(words []string, count int, opts Options) []passage.Passage {
	out := make([]passage.Passage, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, passage.Passage{
			Title: "Words #" + strconv.Itoa(i+1),
			Text:  g.Text(words, opts),
		})
	}
	return out
}

// Text returns one passage of opts.Words words joined by single spaces.
func (g *Generator) Text(words []string, opts Options) string {
	if len(words) == 0 || opts.Words <= 0 {
		return ""
	}
	pick := g.uniform(words)
	if len(opts.Weak) > 0 && opts.WeakFactor > 0 {
		pick = g.weighted(words, opts.Weak, opts.WeakFactor)
	}
	result := make([]string, 0, opts.Words)
	for i := 0; i < opts.Words; i++ {
		word := pick()
		word = applyCaps(g.rnd, word, opts.CapsPct)
		word = applyPunct(g.rnd, word, opts.PunctPct, opts.PunctSet)
		result = append(result, word)
	}
	return strings.Join(result, " ")
}

func (g *Generator) uniform(words []string) func() string {
	return func() string {
		return words[g.rnd.Intn(len(words))]
	}
}

func (g *Generator) weighted(words []string, weak map[rune]struct{}, factor float64) func() string {
	weights := make([]float64, len(words))
	total := 0.0
	for i, word := range words {
		weakCount := 0
		for _, r := range word {
			if _, ok := weak[unicode.ToLower(r)]; ok {
				weakCount++
			}
		}
		w := 1.0 + float64(weakCount)*factor
		weights[i] = w
		total += w
	}
	return func() string {
		r := g.rnd.Float64() * total
		acc := 0.0
		for j, w := range weights {
			acc += w
			if r <= acc {
				return words[j]
			}
		}
		return words[len(words)-1]
	}
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 || rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 || rnd.Float64() > punctPct {
		return word
	}
	return word + string(punctSet[rnd.Intn(len(punctSet))])
}
