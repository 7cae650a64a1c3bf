package locale

// EnUS returns a Format configured for US English (en-US).
func EnUS() *Format {
	return NewFormat()
}

// EnGB returns a Format configured for British English (en-GB).
func EnGB() *Format {
	return NewFormat(
		WithCurrencySymbol("£"),
		WithDateShort("02/01/2006"),
		WithDateLong("2 January 2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02/01/2006 15:04"),
	)
}

// DeDE returns a Format configured for German (de-DE).
func DeDE() *Format {
	return NewFormat(
		WithDecimalSeparator(","),
		WithThousandSeparator("."),
		WithCurrencySymbol("€"),
		WithCurrencyPosition("after"),
		WithDateShort("02.01.2006"),
		WithDateLong("2. January 2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02.01.2006 15:04"),
	)
}

// FrFR returns a Format configured for French (fr-FR).
func FrFR() *Format {
	return NewFormat(
		WithDecimalSeparator(","),
		WithThousandSeparator(" "),
		WithCurrencySymbol("€"),
		WithCurrencyPosition("after"),
		WithDateShort("02/01/2006"),
		WithDateLong("2 January 2006"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("02/01/2006 15:04"),
	)
}

// JaJP returns a Format configured for Japanese (ja-JP).
func JaJP() *Format {
	return NewFormat(
		WithCurrencySymbol("¥"),
		WithDateShort("2006/01/02"),
		WithDateLong("2006/01/02"),
		WithTimeFormat("15:04"),
		WithDateTimeFormat("2006/01/02 15:04"),
	)
}

// ForLanguage returns the predefined Format for a language tag, falling
// back to EnUS for unknown tags.
func ForLanguage(lang string) *Format {
	if len(lang) >= 2 {
		lang = lang[:2]
	}
	switch lang {
	case "de":
		return DeDE()
	case "fr":
		return FrFR()
	case "ja":
		return JaJP()
	default:
		return EnUS()
	}
}
