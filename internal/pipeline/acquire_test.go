package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosanma1/vncard-cli/internal/logger"
	"github.com/dosanma1/vncard-cli/internal/names"
	"github.com/dosanma1/vncard-cli/internal/pipeline"
	"github.com/dosanma1/vncard-cli/internal/source"
)

type fakeAdapter struct {
	name  string
	items []string
	err   error
	reqs  []source.Request
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Fetch(_ context.Context, req source.Request) ([]string, error) {
	f.reqs = append(f.reqs, req)
	return f.items, f.err
}

func newPipeline(seed int64) (*pipeline.Pipeline, *names.Synthesizer) {
	rnd := names.NewRand(&seed)
	synth := names.NewSynthesizer(rnd)
	return pipeline.New(source.NewOffline(synth), rnd, logger.Nop()), synth
}

func TestAcquireOfflineAvoidsHistory(t *testing.T) {
	p, synth := newPipeline(7)
	history := names.NewSet(synth.SynthesizeMany(10, nil)...)
	require.Equal(t, 10, history.Len())

	offline := source.NewOffline(synth)
	got, err := p.Acquire(context.Background(), pipeline.Plan{Count: 5, Kind: source.KindOffline, Adapter: offline}, history)
	require.NoError(t, err)
	require.Len(t, got, 5)

	seen := names.NewSet()
	for _, n := range got {
		assert.False(t, history.Has(n), n)
		assert.False(t, seen.Has(n), n)
		seen.Add(n)
	}
}

func TestAcquireOfflineShortfallIsNotAnError(t *testing.T) {
	seed := int64(3)
	rnd := names.NewRand(&seed)
	synth := names.NewSynthesizerWithVocabulary(rnd, names.Vocabulary{
		Family: []string{"Nguyễn"},
		Middle: []string{"Văn"},
		Given:  []string{"An", "Bình"},
	})
	offline := source.NewOffline(synth)
	p := pipeline.New(offline, rnd, logger.Nop())

	for _, pad := range []bool{false, true} {
		t.Run(fmt.Sprintf("pad=%v", pad), func(t *testing.T) {
			got, err := p.Acquire(context.Background(), pipeline.Plan{Count: 3, Kind: source.KindOffline, Adapter: offline, Pad: pad}, names.NewSet())
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"Nguyễn Văn An", "Nguyễn Văn Bình"}, got)
		})
	}

	got, err := p.Acquire(context.Background(), pipeline.Plan{Count: 3, Kind: source.KindOffline, Adapter: offline}, names.NewSet("Nguyễn Văn An"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Nguyễn Văn Bình"}, got)
}

func TestAcquireZeroCount(t *testing.T) {
	p, _ := newPipeline(1)
	a := &fakeAdapter{name: "url", items: []string{"Nguyễn Văn An"}}

	got, err := p.Acquire(context.Background(), pipeline.Plan{Count: 0, Kind: source.KindURL, Adapter: a}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, a.reqs)
}

func TestAcquireFilePaddedWithOffline(t *testing.T) {
	p, _ := newPipeline(3)
	file := []string{"Nguyễn Văn An", "Trần Thị Lan", "Lê Minh Anh"}
	a := &fakeAdapter{name: "file", items: file}
	history := names.NewSet("Phạm Quang Huy")

	got, err := p.Acquire(context.Background(), pipeline.Plan{Count: 5, Kind: source.KindFile, Adapter: a, Pad: true}, history)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.ElementsMatch(t, file, got[:3])

	fromFile := names.NewSet(file...)
	for _, n := range got[3:] {
		assert.False(t, fromFile.Has(n), n)
		assert.False(t, history.Has(n), n)
		assert.Equal(t, 3, names.Words(n), n)
	}
	assert.NotEqual(t, got[3], got[4])

	require.Len(t, a.reqs, 1)
	assert.Equal(t, 0, a.reqs[0].Count, "file source is read in full")
}

func TestAcquireExcludesHistory(t *testing.T) {
	p, _ := newPipeline(1)
	a := &fakeAdapter{name: "url", items: []string{"Nguyễn Văn An", "Trần Thị Lan"}}

	got, err := p.Acquire(context.Background(), pipeline.Plan{Count: 1, Kind: source.KindURL, Adapter: a}, names.NewSet("Nguyễn Văn An"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Trần Thị Lan"}, got)
}

func TestAcquireShortfallWithoutPad(t *testing.T) {
	p, _ := newPipeline(1)
	a := &fakeAdapter{name: "url", items: []string{"Nguyễn Văn An", "Nguyễn Văn An", "Trần Thị Lan"}}

	got, err := p.Acquire(context.Background(), pipeline.Plan{Count: 5, Kind: source.KindURL, Adapter: a}, nil)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, pipeline.ErrInsufficientNames))
	assert.EqualError(t, err, "url did not return enough unique names (2/5)")

	var short *pipeline.InsufficientNamesError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, 2, short.Got)
	assert.Equal(t, 5, short.Want)
}

func TestAcquireSourceErrorIsNotPropagated(t *testing.T) {
	p, _ := newPipeline(9)
	a := &fakeAdapter{name: "gemini", err: fmt.Errorf("gemini: %w: timeout", source.ErrUnavailable)}

	got, err := p.Acquire(context.Background(), pipeline.Plan{Count: 4, Kind: source.KindGemini, Adapter: a, Pad: true}, nil)
	require.NoError(t, err)
	assert.Len(t, got, 4)

	_, err = p.Acquire(context.Background(), pipeline.Plan{Count: 4, Kind: source.KindGemini, Adapter: a}, nil)
	assert.ErrorIs(t, err, pipeline.ErrInsufficientNames)
	assert.NotErrorIs(t, err, source.ErrUnavailable)
}

func TestAcquireScalesRequest(t *testing.T) {
	tests := []struct {
		kind source.Kind
		want int
	}{
		{source.KindGemini, 3},
		{source.KindURL, 15},
		{source.KindAuto, 3},
		{source.KindNamefake, 6},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			p, _ := newPipeline(1)
			a := &fakeAdapter{name: string(tt.kind)}
			history := names.NewSet("Nguyễn Văn An")

			_, _ = p.Acquire(context.Background(), pipeline.Plan{Count: 3, Kind: tt.kind, Adapter: a}, history)
			require.Len(t, a.reqs, 1)
			assert.Equal(t, tt.want, a.reqs[0].Count)
			assert.True(t, a.reqs[0].Avoid.Has("Nguyễn Văn An"))
		})
	}
}

func TestAcquireCancelled(t *testing.T) {
	p, _ := newPipeline(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := &fakeAdapter{name: "url", items: []string{"Nguyễn Văn An"}}
	_, err := p.Acquire(ctx, pipeline.Plan{Count: 1, Kind: source.KindURL, Adapter: a}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFilter(t *testing.T) {
	batch := []string{" Nguyễn Văn An ", "", "Trần Thị Lan", "Nguyễn Văn An", "Lê Minh Anh", "Phạm Quang Huy"}
	history := names.NewSet("Lê Minh Anh")

	got := pipeline.Filter(batch, history, 2)
	assert.Equal(t, []string{"Nguyễn Văn An", "Trần Thị Lan"}, got)
	assert.Equal(t, " Nguyễn Văn An ", batch[0], "input is not modified")

	all := pipeline.Filter(batch, history, -1)
	assert.Equal(t, []string{"Nguyễn Văn An", "Trần Thị Lan", "Phạm Quang Huy"}, all)

	assert.Empty(t, pipeline.Filter(batch, history, 0))
	assert.Empty(t, pipeline.Filter(nil, nil, 3))
}

func TestFilterIdempotent(t *testing.T) {
	seed := int64(42)
	synth := names.NewSynthesizer(names.NewRand(&seed))
	batch := synth.SynthesizeMany(30, nil)
	batch = append(batch, batch[:10]...)
	history := names.NewSet(batch[5:15]...)

	for _, n := range []int{-1, 0, 1, 5, 20, 100} {
		once := pipeline.Filter(batch, history, n)
		assert.Equal(t, once, pipeline.Filter(once, history, n), "n=%d", n)
	}
}
