package locale

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateStyle selects one of the named date renderings used by message
// templates ({Date,date,short} and friends).
type DateStyle string

const (
	DateShort  DateStyle = "short"
	DateMedium DateStyle = "medium"
	DateLong   DateStyle = "long"
)

// Format holds locale-specific rendering rules for numbers, currency,
// percentages, dates, and times. It is immutable after creation and
// safe for concurrent use.
type Format struct {
	decimalSeparator  string
	thousandSeparator string
	currencySymbol    string
	currencyPosition  string // "before" or "after"
	percentSymbol     string
	dateShort         string
	dateLong          string
	timeFormat        string
	dateTimeFormat    string
}

// Option configures a Format during construction.
type Option func(*Format)

// NewFormat creates a Format with the given options. Without options it
// defaults to US English rules.
func NewFormat(opts ...Option) *Format {
	f := &Format{
		decimalSeparator:  ".",
		thousandSeparator: ",",
		currencySymbol:    "$",
		currencyPosition:  "before",
		percentSymbol:     "%",
		dateShort:         "01/02/2006",
		dateLong:          "January 2, 2006",
		timeFormat:        "3:04 PM",
		dateTimeFormat:    "01/02/2006 3:04 PM",
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// WithDecimalSeparator sets the decimal separator character.
func WithDecimalSeparator(sep string) Option {
	return func(f *Format) {
		f.decimalSeparator = sep
	}
}

// WithThousandSeparator sets the thousand separator character.
func WithThousandSeparator(sep string) Option {
	return func(f *Format) {
		f.thousandSeparator = sep
	}
}

// WithCurrencySymbol sets the currency symbol.
func WithCurrencySymbol(symbol string) Option {
	return func(f *Format) {
		f.currencySymbol = symbol
	}
}

// WithCurrencyPosition sets the currency position ("before" or "after").
func WithCurrencyPosition(pos string) Option {
	return func(f *Format) {
		if pos == "before" || pos == "after" {
			f.currencyPosition = pos
		}
	}
}

// WithPercentSymbol sets the percent symbol.
func WithPercentSymbol(symbol string) Option {
	return func(f *Format) {
		f.percentSymbol = symbol
	}
}

// WithDateShort sets the short date layout (Go time layout).
func WithDateShort(layout string) Option {
	return func(f *Format) {
		f.dateShort = layout
	}
}

// WithDateLong sets the long date layout (Go time layout).
func WithDateLong(layout string) Option {
	return func(f *Format) {
		f.dateLong = layout
	}
}

// WithTimeFormat sets the time layout (Go time layout).
func WithTimeFormat(layout string) Option {
	return func(f *Format) {
		f.timeFormat = layout
	}
}

// WithDateTimeFormat sets the combined date-time layout (Go time layout).
func WithDateTimeFormat(layout string) Option {
	return func(f *Format) {
		f.dateTimeFormat = layout
	}
}

// Number formats a number with the locale's separators. Up to two
// decimal places are kept, with trailing zeros trimmed.
func (f *Format) Number(n float64) string {
	negative := n < 0
	if negative {
		n = -n
	}

	intPart := int64(n)
	decPart := n - float64(intPart)

	result := f.groupedInteger(intPart)
	if decPart > 0 {
		decPart = math.Round(decPart*100) / 100
		decStr := strings.TrimRight(fmt.Sprintf("%.2f", decPart)[2:], "0")
		if decStr != "" {
			result += f.decimalSeparator + decStr
		}
	}

	if negative {
		result = "-" + result
	}

	return result
}

// NumberN formats a number with separators and a fixed count of
// decimal places.
func (f *Format) NumberN(n float64, decimals int) string {
	if decimals <= 0 {
		return f.Integer(n)
	}

	negative := n < 0
	if negative {
		n = -n
	}

	fixed := strconv.FormatFloat(n, 'f', decimals, 64)
	intStr, decStr, _ := strings.Cut(fixed, ".")
	intPart, _ := strconv.ParseInt(intStr, 10, 64)

	result := f.groupedInteger(intPart) + f.decimalSeparator + decStr
	if negative {
		result = "-" + result
	}
	return result
}

// Integer formats a number with separators and no decimal places.
func (f *Format) Integer(n float64) string {
	rounded := int64(math.Round(n))
	negative := rounded < 0
	if negative {
		rounded = -rounded
	}
	result := f.groupedInteger(rounded)
	if negative {
		result = "-" + result
	}
	return result
}

// Currency formats an amount with the locale's currency symbol and
// always two decimal places.
func (f *Format) Currency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	amount = math.Round(amount*100) / 100
	intPart := int64(amount)
	numStr := f.groupedInteger(intPart) + f.decimalSeparator + fmt.Sprintf("%.2f", amount-float64(intPart))[2:]

	var result string
	if f.currencyPosition == "before" {
		if symbolAbutsNumber(f.currencySymbol) {
			result = f.currencySymbol + numStr
		} else {
			result = f.currencySymbol + " " + numStr
		}
	} else {
		result = numStr + " " + f.currencySymbol
	}

	if negative {
		result = "-" + result
	}

	return result
}

// Percent formats a ratio (0.5 -> "50%") with at most one decimal place.
func (f *Format) Percent(n float64) string {
	pct := n * 100
	negative := pct < 0
	if negative {
		pct = -pct
	}

	pct = math.Round(pct*10) / 10
	intPart := int64(pct)
	result := fmt.Sprintf("%d", intPart)
	if dec := pct - float64(intPart); dec > 0 {
		decStr := strings.TrimRight(fmt.Sprintf("%.1f", dec)[2:], "0")
		if decStr != "" {
			result += f.decimalSeparator + decStr
		}
	}

	if negative {
		result = "-" + result
	}

	return result + f.percentSymbol
}

// Date renders a date in the given named style. Unknown styles fall
// back to the short layout.
func (f *Format) Date(t time.Time, style DateStyle) string {
	switch style {
	case DateLong:
		return t.Format(f.dateLong)
	case DateMedium:
		return t.Format(f.dateTimeFormat)
	default:
		return t.Format(f.dateShort)
	}
}

// Time renders the time-of-day portion.
func (f *Format) Time(t time.Time) string {
	return t.Format(f.timeFormat)
}

// DateTime renders the combined date-time layout.
func (f *Format) DateTime(t time.Time) string {
	return t.Format(f.dateTimeFormat)
}

func (f *Format) groupedInteger(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	str := fmt.Sprintf("%d", n)
	var groups []string
	for i := len(str); i > 0; i -= 3 {
		start := max(0, i-3)
		groups = append([]string{str[start:i]}, groups...)
	}
	return strings.Join(groups, f.thousandSeparator)
}

// symbolAbutsNumber reports whether a leading currency symbol attaches
// directly to the number ($5) instead of taking a space (CHF 5).
func symbolAbutsNumber(symbol string) bool {
	switch symbol {
	case "$", "¥", "£", "₩":
		return true
	}
	return strings.HasSuffix(symbol, "$")
}
