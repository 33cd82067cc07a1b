package embedding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHash32(t *testing.T) {
	tests := []struct {
		text string
		want int32
	}{
		{"", 0},
		{"a", 97},
		{"ab", 3105},
		{"hello world", 1794106052},
		{"Cats are mammals", 1763844357},
		{"The quick brown fox jumps over the lazy dog", -609428141},
		// surrogate pair: two UTF-16 code units
		{"😀", 1772899},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Hash32(tt.text), "text %q", tt.text)
	}
}

func TestHashEmbedder_KnownValues(t *testing.T) {
	e := NewHashEmbedder()
	got := e.Embed("a", 4)
	want := []float64{0.5, 0.6898038695137608, 0.14880683536575395, 0.9600071127479823}
	require.Len(t, got, 4)
	for i := range want {
		require.InDelta(t, want[i], got[i], 1e-12)
	}

	got = e.Embed("The quick brown fox jumps over the lazy dog", 4)
	want = []float64{0.5, 0.20749537140767432, 0.025541922845513765, 0.022908372763919493}
	for i := range want {
		require.InDelta(t, want[i], got[i], 1e-9)
	}
}

func TestHashEmbedder_LengthAndFirstElement(t *testing.T) {
	e := NewHashEmbedder()
	inputs := []string{"", "x", "Which animals are mammals?", strings.Repeat("long text ", 200)}
	for d := 2; d <= 8; d++ {
		for _, in := range inputs {
			v := e.Embed(in, d)
			require.Len(t, v, d)
			require.Equal(t, 0.5, v[0])
			for _, x := range v {
				require.GreaterOrEqual(t, x, 0.0)
				require.LessOrEqual(t, x, 1.0)
			}
		}
	}
}

func TestHashEmbedder_Deterministic(t *testing.T) {
	e := NewHashEmbedder()
	v1 := e.Embed("Dogs are mammals", 6)
	v2 := e.Embed("Dogs are mammals", 6)
	require.Equal(t, v1, v2)
}

func TestHashEmbedder_NonPositiveDimensions(t *testing.T) {
	e := NewHashEmbedder()
	require.Empty(t, e.Embed("text", 0))
	require.Empty(t, e.Embed("text", -3))
}
