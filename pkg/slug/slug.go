package slug

import (
	"crypto/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const padLength = 6

type config struct {
	separator  string
	stripChars string
	replace    map[string]string
	reserved   map[string]bool
	maxLength  int
	minLength  int
	suffixLen  int
	lowercase  bool
}

// Option configures slug generation.
type Option func(*config)

// Separator sets the string inserted between words. Default "-".
func Separator(s string) Option {
	return func(c *config) { c.separator = s }
}

// Lowercase controls case folding. Default true.
func Lowercase(enabled bool) Option {
	return func(c *config) { c.lowercase = enabled }
}

// MaxLength caps the slug at n runes. Zero means unlimited.
func MaxLength(n int) Option {
	return func(c *config) { c.maxLength = n }
}

// MinLength pads slugs shorter than n runes with a random suffix.
func MinLength(n int) Option {
	return func(c *config) { c.minLength = n }
}

// StripChars removes the given characters before slugification.
func StripChars(chars string) Option {
	return func(c *config) { c.stripChars = chars }
}

// CustomReplace applies string replacements before slugification.
func CustomReplace(replacements map[string]string) Option {
	return func(c *config) { c.replace = replacements }
}

// WithSuffix appends a random alphanumeric suffix of n characters.
func WithSuffix(n int) Option {
	return func(c *config) { c.suffixLen = n }
}

// ReservedSlugs lists slugs that must not be produced as-is. A match
// (case-insensitive) gets a random suffix appended.
func ReservedSlugs(slugs ...string) Option {
	return func(c *config) {
		if c.reserved == nil {
			c.reserved = make(map[string]bool, len(slugs))
		}
		for _, s := range slugs {
			c.reserved[strings.ToLower(s)] = true
		}
	}
}

// Make converts input to a URL-safe slug. Diacritics are normalized to
// ASCII, anything else non-alphanumeric becomes a separator, and runs
// of separators collapse.
func Make(input string, opts ...Option) string {
	cfg := &config{separator: "-", lowercase: true}
	for _, opt := range opts {
		opt(cfg)
	}

	s := input
	for from, to := range cfg.replace {
		s = strings.ReplaceAll(s, from, to)
	}
	if cfg.stripChars != "" {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(cfg.stripChars, r) {
				return -1
			}
			return r
		}, s)
	}

	s = tokenize(normalizeASCII(s), cfg)

	if cfg.maxLength > 0 && runeLen(s) > cfg.maxLength {
		s = trimSeparator(truncateRunes(s, cfg.maxLength), cfg.separator)
	}

	if cfg.suffixLen > 0 {
		s = appendSuffix(s, cfg)
	}

	if cfg.reserved[strings.ToLower(s)] {
		s = appendReservedSuffix(s, cfg)
	}

	if cfg.minLength > 0 && runeLen(s) < cfg.minLength {
		pad := randomSuffix(padLength, cfg.lowercase)
		if s == "" {
			s = pad
		} else {
			s += cfg.separator + pad
		}
		if cfg.maxLength > 0 && runeLen(s) > cfg.maxLength {
			s = trimSeparator(truncateRunes(s, cfg.maxLength), cfg.separator)
		}
	}

	return s
}

// stroked maps letters that do not decompose into base + combining
// mark, so the NFD pass alone cannot fold them.
var stroked = map[rune]rune{
	'ß': 's', 'ø': 'o', 'Ø': 'O', 'æ': 'a', 'Æ': 'A',
	'œ': 'o', 'Œ': 'O', 'ł': 'l', 'Ł': 'L', 'đ': 'd', 'Đ': 'D',
}

// normalizeASCII folds Latin diacritics to their base letters.
// Scripts without an ASCII base form (Cyrillic, CJK) pass through and
// get dropped by tokenize.
func normalizeASCII(s string) string {
	chain := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(chain, s)
	if err != nil {
		out = s
	}
	return strings.Map(func(r rune) rune {
		if sub, ok := stroked[r]; ok {
			return sub
		}
		return r
	}, out)
}

// tokenize keeps ASCII letters and digits, turning every other run of
// characters into a single separator. Leading and trailing separators
// never appear.
func tokenize(s string, cfg *config) string {
	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		if r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingSep && b.Len() > 0 {
				b.WriteString(cfg.separator)
			}
			pendingSep = false
			if cfg.lowercase {
				r = unicode.ToLower(r)
			}
			b.WriteRune(r)
		} else {
			pendingSep = true
		}
	}
	return b.String()
}

// appendSuffix attaches the explicit random suffix, truncating the base
// to honor maxLength. The suffix length wins over the base when both
// cannot fit.
func appendSuffix(s string, cfg *config) string {
	n := cfg.suffixLen
	suffix := randomSuffix(n, cfg.lowercase)

	if cfg.maxLength > 0 {
		if n >= cfg.maxLength {
			return truncateRunes(suffix, cfg.maxLength)
		}
		avail := cfg.maxLength - n - runeLen(cfg.separator)
		if avail < 1 {
			return suffix
		}
		if runeLen(s) > avail {
			s = trimSeparator(truncateRunes(s, avail), cfg.separator)
		}
	}
	if s == "" {
		return suffix
	}
	return s + cfg.separator + suffix
}

// appendReservedSuffix attaches a suffix to a reserved slug, shrinking
// the suffix before touching the base.
func appendReservedSuffix(s string, cfg *config) string {
	n := cfg.suffixLen
	if n <= 0 {
		n = padLength
	}

	if cfg.maxLength > 0 {
		avail := cfg.maxLength - runeLen(s) - runeLen(cfg.separator)
		if avail < 1 {
			target := cfg.maxLength - runeLen(cfg.separator) - 1
			if target < 1 {
				return truncateRunes(randomSuffix(n, cfg.lowercase), cfg.maxLength)
			}
			s = trimSeparator(truncateRunes(s, target), cfg.separator)
			avail = cfg.maxLength - runeLen(s) - runeLen(cfg.separator)
		}
		if n > avail {
			n = avail
		}
	}

	return s + cfg.separator + randomSuffix(n, cfg.lowercase)
}

const (
	lowerAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	mixedAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

func randomSuffix(n int, lowercase bool) string {
	if n <= 0 {
		return ""
	}
	alphabet := mixedAlphabet
	if lowercase {
		alphabet = lowerAlphabet
	}

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// Entropy failure leaves a constant, still-valid suffix.
		for i := range buf {
			buf[i] = byte(i)
		}
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf)
}

func runeLen(s string) int {
	return len([]rune(s))
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func trimSeparator(s, sep string) string {
	if sep == "" {
		return s
	}
	return strings.TrimRight(s, sep)
}
