package calc

import "testing"

func TestFormatForDisplay(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty", raw: "", want: ""},
		{name: "zero", raw: "0", want: "0"},
		{name: "small", raw: "999", want: "999"},
		{name: "thousands", raw: "1234", want: "1,234"},
		{name: "millions", raw: "1234567", want: "1,234,567"},
		{name: "negative", raw: "-1234", want: "-1,234"},
		{name: "fraction kept verbatim", raw: "1234.5", want: "1,234.5"},
		{name: "long fraction not grouped", raw: "0.123456", want: "0.123456"},
		{name: "trailing decimal point", raw: "1234.", want: "1,234."},
		{name: "bare sign", raw: "-", want: ""},
		{name: "negative fraction", raw: "-0.25", want: "-0.25"},
		{name: "leading decimal point", raw: ".5", want: ".5"},
		{name: "nan renders blank", raw: "NaN", want: ""},
		{name: "error passthrough", raw: "Error: x", want: "Error: x"},
		{name: "division by zero passthrough", raw: DivisionByZero, want: DivisionByZero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatForDisplay(tt.raw); got != tt.want {
				t.Fatalf("FormatForDisplay(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
