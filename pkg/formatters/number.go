package formatters

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numberFormats = map[string]struct{}{
	"0":        {},
	"#,##0":    {},
	"+0;-0":    {},
	"0.00":     {},
	"#,##0.00": {},
	"0.###":    {},
	"0.00E0":   {},
}

var leadingZeros = regexp.MustCompile(`^0+$`)

// grouped renders integers with thousands separators per the English
// locale.
var grouped = message.NewPrinter(language.English)

// NumberFormatter renders integers and floats using a small pattern
// language: plain and grouped decimals, explicit sign, fixed and
// trimmed fractions, scientific notation, and zero-padding via a run
// of zeros.
type NumberFormatter struct{}

func NewNumberFormatter() *NumberFormatter { return &NumberFormatter{} }

func (*NumberFormatter) Supports(format string) bool {
	if _, ok := numberFormats[format]; ok {
		return true
	}
	return leadingZeros.MatchString(format)
}

func (n *NumberFormatter) Format(value any, format string) (string, error) {
	if !n.Supports(format) {
		return "", fmt.Errorf("Unsupported format: %s", format)
	}
	f, isInt, i, err := coerceNumber(value)
	if err != nil {
		return "", err
	}

	switch format {
	case "0":
		return wholeString(f, isInt, i), nil
	case "#,##0":
		return grouped.Sprintf("%d", wholeInt(f, isInt, i)), nil
	case "+0;-0":
		w := wholeInt(f, isInt, i)
		if w >= 0 {
			return "+" + strconv.FormatInt(w, 10), nil
		}
		return strconv.FormatInt(w, 10), nil
	case "0.00":
		return strconv.FormatFloat(asFloat(f, isInt, i), 'f', 2, 64), nil
	case "#,##0.00":
		return groupFixed(asFloat(f, isInt, i), 2), nil
	case "0.###":
		s := strconv.FormatFloat(asFloat(f, isInt, i), 'f', 3, 64)
		s = strings.TrimRight(s, "0")
		return strings.TrimSuffix(s, "."), nil
	case "0.00E0":
		return scientific(asFloat(f, isInt, i)), nil
	}

	// Run of zeros: zero-padded integer of that width.
	w := wholeInt(f, isInt, i)
	if w < 0 {
		return "-" + fmt.Sprintf("%0*d", len(format), -w), nil
	}
	return fmt.Sprintf("%0*d", len(format), w), nil
}

func coerceNumber(value any) (f float64, isInt bool, i int64, err error) {
	switch v := value.(type) {
	case int:
		return 0, true, int64(v), nil
	case int8:
		return 0, true, int64(v), nil
	case int16:
		return 0, true, int64(v), nil
	case int32:
		return 0, true, int64(v), nil
	case int64:
		return 0, true, v, nil
	case uint:
		return 0, true, int64(v), nil
	case uint8:
		return 0, true, int64(v), nil
	case uint16:
		return 0, true, int64(v), nil
	case uint32:
		return 0, true, int64(v), nil
	case uint64:
		return 0, true, int64(v), nil
	case float32:
		return float64(v), false, 0, nil
	case float64:
		return v, false, 0, nil
	}
	return 0, false, 0, fmt.Errorf("value must be a number, got %T", value)
}

func asFloat(f float64, isInt bool, i int64) float64 {
	if isInt {
		return float64(i)
	}
	return f
}

func wholeInt(f float64, isInt bool, i int64) int64 {
	if isInt {
		return i
	}
	return int64(math.RoundToEven(f))
}

func wholeString(f float64, isInt bool, i int64) string {
	return strconv.FormatInt(wholeInt(f, isInt, i), 10)
}

// groupFixed renders f with prec decimals and a grouped integer part.
func groupFixed(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	n, _ := strconv.ParseInt(whole, 10, 64)
	return sign + grouped.Sprintf("%d", n) + "." + frac
}

// scientific renders f as a two-decimal mantissa with a bare decimal
// exponent, e.g. 1234.567 -> 1.23E3.
func scientific(f float64) string {
	if f == 0 {
		return "0.00E0"
	}
	sign := ""
	if f < 0 {
		sign = "-"
		f = -f
	}
	exp := int(math.Floor(math.Log10(f)))
	mant := f / math.Pow(10, float64(exp))
	// Rounding the mantissa can carry it to 10.00.
	if s := strconv.FormatFloat(mant, 'f', 2, 64); s == "10.00" {
		mant = 1
		exp++
	}
	return fmt.Sprintf("%s%sE%d", sign, strconv.FormatFloat(mant, 'f', 2, 64), exp)
}
