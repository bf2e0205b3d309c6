// Package generator picks words for the typing engine.
package generator

import (
	"math/rand"
	"time"
)

const (
	gibberishLetters = "abcdefghijklmnopqrstuvwxyz"
	gibberishSymbols = "!@#$%^&*(){}[]|;:,.<>?"

	gibberishMinLen   = 8
	gibberishLenRange = 12
	gibberishLetterP  = 0.8
)

// Generator produces randomized words and phrases.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Pick selects a word uniformly from pool. It returns "" for an empty pool.
func (g *Generator) Pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[g.rnd.Intn(len(pool))]
}

// Gibberish returns count random strings of 8 to 19 characters, roughly
// 80% lowercase letters and 20% symbols.
func (g *Generator) Gibberish(count int) []string {
	words := make([]string, 0, count)
	for i := 0; i < count; i++ {
		length := gibberishMinLen + g.rnd.Intn(gibberishLenRange)
		buf := make([]byte, length)
		for j := range buf {
			if g.rnd.Float64() < gibberishLetterP {
				buf[j] = gibberishLetters[g.rnd.Intn(len(gibberishLetters))]
			} else {
				buf[j] = gibberishSymbols[g.rnd.Intn(len(gibberishSymbols))]
			}
		}
		words = append(words, string(buf))
	}
	return words
}

// Intn exposes the generator's source for callers sharing its seed.
func (g *Generator) Intn(n int) int {
	return g.rnd.Intn(n)
}

// Float64 exposes the generator's source for callers sharing its seed.
func (g *Generator) Float64() float64 {
	return g.rnd.Float64()
}
