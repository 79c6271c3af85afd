// Package names provides the offline Vietnamese full-name generator and the
// small set of helpers shared by every name source: a string set, whitespace
// normalization and structural validation.
package names

import (
	"math/rand/v2"
	"strings"
)

// MaxAttemptsPerName bounds how many draws are spent on one new name before
// the generator gives up on it.
const MaxAttemptsPerName = 30

// Rand is the randomness provider threaded through the generator and any
// shuffle step. *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a PCG-backed source. A nil seed yields a randomly seeded
// source; a non-nil seed makes every draw reproducible.
func NewRand(seed *int64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s := uint64(*seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// Vocabulary holds the three word lists a full name is drawn from.
type Vocabulary struct {
	Family []string
	Middle []string
	Given  []string
}

// DefaultVocabulary returns the built-in word lists.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{Family: FamilyNames, Middle: MiddleNames, Given: GivenNames}
}

// Synthesizer draws family + middle + given triples uniformly at random.
type Synthesizer struct {
	rnd   Rand
	vocab Vocabulary
}

// NewSynthesizer creates a generator over the default vocabulary.
func NewSynthesizer(rnd Rand) *Synthesizer {
	return NewSynthesizerWithVocabulary(rnd, DefaultVocabulary())
}

// NewSynthesizerWithVocabulary creates a generator over custom word lists.
// Empty lists fall back to the defaults.
func NewSynthesizerWithVocabulary(rnd Rand, vocab Vocabulary) *Synthesizer {
	def := DefaultVocabulary()
	if len(vocab.Family) == 0 {
		vocab.Family = def.Family
	}
	if len(vocab.Middle) == 0 {
		vocab.Middle = def.Middle
	}
	if len(vocab.Given) == 0 {
		vocab.Given = def.Given
	}
	return &Synthesizer{rnd: rnd, vocab: vocab}
}

func (s *Synthesizer) draw() string {
	var b strings.Builder
	b.WriteString(s.vocab.Family[s.rnd.IntN(len(s.vocab.Family))])
	b.WriteByte(' ')
	b.WriteString(s.vocab.Middle[s.rnd.IntN(len(s.vocab.Middle))])
	b.WriteByte(' ')
	b.WriteString(s.vocab.Given[s.rnd.IntN(len(s.vocab.Given))])
	return b.String()
}

// Synthesize returns one name not contained in avoid. It reports false when
// MaxAttemptsPerName draws all collided.
func (s *Synthesizer) Synthesize(avoid Set) (string, bool) {
	for range MaxAttemptsPerName {
		name := s.draw()
		if !avoid.Has(name) {
			return name, true
		}
	}
	return "", false
}

// SynthesizeMany returns up to n distinct names, none of them in avoid, in
// draw order. It stops after n*MaxAttemptsPerName draws, so a crowded avoid
// set yields a short result rather than an error.
func (s *Synthesizer) SynthesizeMany(n int, avoid Set) []string {
	if n <= 0 {
		return []string{}
	}
	out := make([]string, 0, n)
	seen := make(Set, n)
	for attempts := 0; len(out) < n && attempts < n*MaxAttemptsPerName; attempts++ {
		name := s.draw()
		if avoid.Has(name) || seen.Has(name) {
			continue
		}
		seen.Add(name)
		out = append(out, name)
	}
	return out
}
