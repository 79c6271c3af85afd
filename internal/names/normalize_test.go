package names_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dosanma1/vncard-cli/internal/names"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace", "  Nguyễn\t Văn   An ", "Nguyễn Văn An"},
		{"composes combining marks", "Nguye\u0302\u0303n Va\u0306n An", "Nguyễn Văn An"},
		{"empty", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names.Normalize(tt.in))
		})
	}
}

func TestValidExternal(t *testing.T) {
	assert.False(t, names.ValidExternal("An"))
	assert.True(t, names.ValidExternal("Lê An"))
	assert.True(t, names.ValidExternal("Nguyễn Văn An"))
	assert.True(t, names.ValidExternal("Tôn Nữ Thị Hà"))
	assert.False(t, names.ValidExternal("Here are five name tokens"))
}

func TestDedupe(t *testing.T) {
	got := names.Dedupe([]string{" Lê An", "", "Lê An", "Trần Bình", "  "})
	assert.Equal(t, []string{"Lê An", "Trần Bình"}, got)
}

func TestSetUnionDoesNotMutate(t *testing.T) {
	base := names.NewSet("a")
	u := base.Union("b")
	assert.True(t, u.Has("a"))
	assert.True(t, u.Has("b"))
	assert.False(t, base.Has("b"))
	assert.False(t, names.Set(nil).Has("a"))
}
