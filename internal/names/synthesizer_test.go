package names_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosanma1/vncard-cli/internal/names"
)

func seeded(seed int64) names.Rand {
	return names.NewRand(&seed)
}

func TestSynthesizeProducesThreeParts(t *testing.T) {
	s := names.NewSynthesizer(seeded(1))

	for range 50 {
		name, ok := s.Synthesize(nil)
		require.True(t, ok)
		parts := strings.Split(name, " ")
		require.Len(t, parts, 3, "name %q", name)
		assert.Contains(t, names.FamilyNames, parts[0])
		assert.Contains(t, names.MiddleNames, parts[1])
		assert.Contains(t, names.GivenNames, parts[2])
	}
}

func TestSynthesizeAvoidsHistory(t *testing.T) {
	s := names.NewSynthesizer(seeded(7))
	avoid := names.NewSet("Nguyễn Văn An")

	for range 200 {
		name, ok := s.Synthesize(avoid)
		require.True(t, ok)
		assert.NotEqual(t, "Nguyễn Văn An", name)
	}
}

func TestSynthesizeGivesUpWhenExhausted(t *testing.T) {
	vocab := names.Vocabulary{Family: []string{"Lê"}, Middle: []string{"Văn"}, Given: []string{"An"}}
	s := names.NewSynthesizerWithVocabulary(seeded(3), vocab)

	_, ok := s.Synthesize(names.NewSet("Lê Văn An"))
	assert.False(t, ok)
}

func TestSynthesizeManyUnique(t *testing.T) {
	s := names.NewSynthesizer(seeded(42))
	history := names.NewSet()
	for _, n := range s.SynthesizeMany(100, nil) {
		history.Add(n)
	}

	got := s.SynthesizeMany(250, history)
	require.Len(t, got, 250)

	seen := names.NewSet()
	for _, n := range got {
		assert.False(t, history.Has(n), "%q is in history", n)
		assert.False(t, seen.Has(n), "%q returned twice", n)
		seen.Add(n)
	}
}

func TestSynthesizeManyShortfallIsNotAnError(t *testing.T) {
	vocab := names.Vocabulary{
		Family: []string{"Lê", "Trần"},
		Middle: []string{"Văn"},
		Given:  []string{"An"},
	}
	s := names.NewSynthesizerWithVocabulary(seeded(5), vocab)

	got := s.SynthesizeMany(5, names.NewSet("Lê Văn An"))
	assert.Equal(t, []string{"Trần Văn An"}, got)
}

func TestSynthesizeManyZero(t *testing.T) {
	s := names.NewSynthesizer(seeded(1))
	assert.Empty(t, s.SynthesizeMany(0, nil))
}

func TestSeededRandIsDeterministic(t *testing.T) {
	a := names.NewSynthesizer(seeded(99)).SynthesizeMany(20, nil)
	b := names.NewSynthesizer(seeded(99)).SynthesizeMany(20, nil)
	assert.Equal(t, a, b)
}
