package calc

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var groupingPrinter = message.NewPrinter(language.English)

// FormatForDisplay groups the integer part of raw in thousands and keeps the
// fractional part verbatim. Error messages pass through unchanged.
func FormatForDisplay(raw string) string {
	if strings.HasPrefix(raw, errorPrefix) {
		return raw
	}
	parts := strings.Split(raw, ".")

	intDisplay := ""
	if v, ok := parseNumber(parts[0]); ok {
		intDisplay = groupInteger(v)
	}
	if len(parts) > 1 {
		return intDisplay + "." + parts[1]
	}
	return intDisplay
}

func groupInteger(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	case v == 0 && math.Signbit(v):
		return "-0"
	}
	return groupingPrinter.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(0)))
}
