package source

import (
	"context"

	"github.com/dosanma1/vncard-cli/internal/names"
)

// Offline draws names from the built-in vocabularies. It is always available
// and is the terminal fallback used for padding.
type Offline struct {
	synth *names.Synthesizer
}

// NewOffline wraps a synthesizer.
func NewOffline(synth *names.Synthesizer) *Offline {
	return &Offline{synth: synth}
}

func (o *Offline) Name() string { return string(KindOffline) }

// Fetch returns up to req.Count new names. It never fails; a short result
// means the attempt cap was hit.
func (o *Offline) Fetch(_ context.Context, req Request) ([]string, error) {
	return o.synth.SynthesizeMany(req.Count, req.Avoid), nil
}
