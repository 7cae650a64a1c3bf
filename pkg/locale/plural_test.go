package locale_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/plazakit/plaza/pkg/locale"
)

func TestEnglishPluralRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n        int
		expected string
	}{
		{0, locale.PluralZero},
		{1, locale.PluralOne},
		{-1, locale.PluralOne},
		{2, locale.PluralOther},
		{100, locale.PluralOther},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, locale.EnglishPluralRule(tt.n), "n=%d", tt.n)
	}
}

func TestSlavicPluralRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n        int
		expected string
	}{
		{0, locale.PluralZero},
		{1, locale.PluralOne},
		{2, locale.PluralFew},
		{4, locale.PluralFew},
		{5, locale.PluralMany},
		{11, locale.PluralMany},
		{12, locale.PluralMany},
		{14, locale.PluralMany},
		{22, locale.PluralFew},
		{25, locale.PluralMany},
		{112, locale.PluralMany},
		{122, locale.PluralFew},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, locale.SlavicPluralRule(tt.n), "n=%d", tt.n)
	}
}

func TestRomanceAndSpanishRules(t *testing.T) {
	t.Parallel()

	require.Equal(t, locale.PluralOne, locale.RomancePluralRule(0))
	require.Equal(t, locale.PluralOne, locale.RomancePluralRule(1))
	require.Equal(t, locale.PluralOther, locale.RomancePluralRule(2))
	require.Equal(t, locale.PluralMany, locale.RomancePluralRule(2000000))

	require.Equal(t, locale.PluralOther, locale.SpanishPluralRule(0))
	require.Equal(t, locale.PluralOne, locale.SpanishPluralRule(1))
	require.Equal(t, locale.PluralMany, locale.SpanishPluralRule(1000000))
}

func TestArabicPluralRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n        int
		expected string
	}{
		{0, locale.PluralZero},
		{1, locale.PluralOne},
		{2, locale.PluralTwo},
		{3, locale.PluralFew},
		{10, locale.PluralFew},
		{103, locale.PluralFew},
		{11, locale.PluralMany},
		{99, locale.PluralMany},
		{100, locale.PluralOther},
		{102, locale.PluralOther},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expected, locale.ArabicPluralRule(tt.n), "n=%d", tt.n)
	}
}

func TestSelect(t *testing.T) {
	t.Parallel()

	require.Equal(t, "comment", locale.Select(locale.EnglishPluralRule, 1, "comment", "comments"))
	require.Equal(t, "comments", locale.Select(locale.EnglishPluralRule, 0, "comment", "comments"))
	require.Equal(t, "comments", locale.Select(locale.EnglishPluralRule, 5, "comment", "comments"))
	require.Equal(t, "comments", locale.Select(nil, 3, "comment", "comments"))
	require.Equal(t, "commentaire", locale.Select(locale.RomancePluralRule, 0, "commentaire", "commentaires"))
}

func TestPluralRuleForLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lang     string
		n        int
		expected string
	}{
		{"en", 2, locale.PluralOther},
		{"en-US", 1, locale.PluralOne},
		{"pl", 3, locale.PluralFew},
		{"ru", 5, locale.PluralMany},
		{"fr", 0, locale.PluralOne},
		{"es", 0, locale.PluralOther},
		{"de", 0, locale.PluralOther},
		{"ja", 1, locale.PluralOther},
		{"ar", 2, locale.PluralTwo},
		{"unknown", 1, locale.PluralOne},
		{"", 7, locale.PluralOther},
	}

	for _, tt := range tests {
		rule := locale.PluralRuleForLanguage(tt.lang)
		require.Equal(t, tt.expected, rule(tt.n), "lang=%s n=%d", tt.lang, tt.n)
	}
}

func TestArabicPluralRuleMod100Boundaries(t *testing.T) {
	t.Parallel()

	require.Equal(t, locale.PluralFew, locale.ArabicPluralRule(110))
	require.Equal(t, locale.PluralMany, locale.ArabicPluralRule(111))
	require.Equal(t, locale.PluralOther, locale.ArabicPluralRule(200))
}
