package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{in: "42", want: 42, wantOK: true},
		{in: "-3.5", want: -3.5, wantOK: true},
		{in: "12.", want: 12, wantOK: true},
		{in: ".5", want: 0.5, wantOK: true},
		{in: "-.25", want: -0.25, wantOK: true},
		{in: "  7", want: 7, wantOK: true},
		{in: "12abc", want: 12, wantOK: true},
		{in: "1e+21", want: 1e21, wantOK: true},
		{in: "1.5e-7", want: 1.5e-7, wantOK: true},
		{in: "1e+", want: 1, wantOK: true},
		{in: "1,234", want: 1, wantOK: true},
		{in: "", wantOK: false},
		{in: "-", wantOK: false},
		{in: ".", wantOK: false},
		{in: "NaN", wantOK: false},
		{in: "Error: Division by zero", wantOK: false},
	}
	for _, tt := range tests {
		got, ok := parseNumber(tt.in)
		require.Equal(t, tt.wantOK, ok, "parseNumber(%q) ok", tt.in)
		if ok {
			require.InDelta(t, tt.want, got, 1e-12, "parseNumber(%q)", tt.in)
		}
	}
}

func TestParseNumberInfinity(t *testing.T) {
	t.Parallel()

	v, ok := parseNumber("Infinity")
	require.True(t, ok)
	require.True(t, math.IsInf(v, 1))

	v, ok = parseNumber("-Infinity")
	require.True(t, ok)
	require.True(t, math.IsInf(v, -1))

	_, ok = parseFinite("Infinity")
	require.False(t, ok)
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0"},
		{in: math.Copysign(0, -1), want: "0"},
		{in: 16, want: "16"},
		{in: -7, want: "-7"},
		{in: 2.5, want: "2.5"},
		{in: 0.1 + 0.2, want: "0.30000000000000004"},
		{in: 123456789012, want: "123456789012"},
		{in: 1e20, want: "100000000000000000000"},
		{in: 1e21, want: "1e+21"},
		{in: 1.5e-7, want: "1.5e-7"},
		{in: 0.000001, want: "0.000001"},
		{in: -2e-9, want: "-2e-9"},
		{in: math.NaN(), want: "NaN"},
		{in: math.Inf(1), want: "Infinity"},
		{in: math.Inf(-1), want: "-Infinity"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, FormatNumber(tt.in))
	}
}
