package source

import (
	"fmt"
	"net/http"

	"github.com/dosanma1/vncard-cli/internal/names"
)

// Kind identifies a source.
type Kind string

const (
	KindGemini   Kind = "gemini"
	KindFile     Kind = "file"
	KindURL      Kind = "url"
	KindAuto     Kind = "auto"
	KindNamefake Kind = "namefake"
	KindOffline  Kind = "offline"
)

// Entry describes how the pipeline uses one source.
type Entry struct {
	Kind        Kind
	Description string
	// Multiplier scales the requested count to absorb filtering losses.
	// Zero asks the source for everything it has.
	Multiplier int
	// Shuffle randomizes the filtered candidates before truncation.
	Shuffle bool
}

// Precedence lists every source, highest priority first. When several sources
// are requested at once the first requested entry wins; offline is always
// eligible.
var Precedence = []Entry{
	{Kind: KindGemini, Description: "Gemini generative text API", Multiplier: 1},
	{Kind: KindFile, Description: "local word list, one name per line", Multiplier: 0, Shuffle: true},
	{Kind: KindURL, Description: "single HTTP endpoint (JSON, HTML or text)", Multiplier: 5},
	{Kind: KindAuto, Description: "endpoint list discovery", Multiplier: 1},
	{Kind: KindNamefake, Description: "api.namefake.com Vietnamese identities", Multiplier: 2},
	{Kind: KindOffline, Description: "built-in combinatorial generator", Multiplier: 1},
}

// Selection records which sources the run configuration asked for.
type Selection struct {
	Gemini   bool
	File     bool
	URL      bool
	Auto     bool
	Namefake bool
}

// Requested reports whether kind was asked for.
func (s Selection) Requested(kind Kind) bool {
	switch kind {
	case KindGemini:
		return s.Gemini
	case KindFile:
		return s.File
	case KindURL:
		return s.URL
	case KindAuto:
		return s.Auto
	case KindNamefake:
		return s.Namefake
	case KindOffline:
		return true
	}
	return false
}

// Select returns the highest-priority requested entry.
func Select(sel Selection) Entry {
	for _, e := range Precedence {
		if sel.Requested(e.Kind) {
			return e
		}
	}
	return Precedence[len(Precedence)-1]
}

// Lookup returns the entry for kind.
func Lookup(kind Kind) (Entry, bool) {
	for _, e := range Precedence {
		if e.Kind == kind {
			return e, true
		}
	}
	return Entry{}, false
}

// Deps carries everything the adapter factories may need.
type Deps struct {
	Synth         *names.Synthesizer
	NamesFile     string
	APIURL        string
	EndpointsFile string
	Gemini        GeminiOptions
	HTTPClient    *http.Client
}

var factories = map[Kind]func(Deps) (Adapter, error){
	KindGemini: func(d Deps) (Adapter, error) { return NewGemini(d.Gemini), nil },
	KindFile: func(d Deps) (Adapter, error) {
		if d.NamesFile == "" {
			return nil, fmt.Errorf("file source requires a names file")
		}
		return NewFile(d.NamesFile), nil
	},
	KindURL: func(d Deps) (Adapter, error) {
		if d.APIURL == "" {
			return nil, fmt.Errorf("url source requires an api url")
		}
		return NewDirectURL(d.APIURL, d.HTTPClient), nil
	},
	KindAuto: func(d Deps) (Adapter, error) {
		return NewMultiEndpoint(d.EndpointsFile, d.HTTPClient), nil
	},
	KindNamefake: func(d Deps) (Adapter, error) { return NewNamefake(), nil },
	KindOffline: func(d Deps) (Adapter, error) {
		if d.Synth == nil {
			return nil, fmt.Errorf("offline source requires a synthesizer")
		}
		return NewOffline(d.Synth), nil
	},
}

// New builds the adapter for kind.
func New(kind Kind, deps Deps) (Adapter, error) {
	factory, ok := factories[kind]
	if !ok {
		return nil, fmt.Errorf("unknown source: %s", kind)
	}
	return factory(deps)
}
