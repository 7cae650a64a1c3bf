package translate

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// maxAcceptHeaderLength caps header parsing to keep hostile inputs cheap.
const maxAcceptHeaderLength = 4096

type acceptTag struct {
	tag     string
	quality float64
}

// NegotiateLanguage picks the best language from available for an
// Accept-Language header. Tags are tried in descending quality order;
// an exact match wins, then a base-language match ("en" serves
// "en-US" and vice versa). With no match, or an empty header, the
// first available language is returned.
func NegotiateLanguage(header string, available []string) string {
	if len(available) == 0 {
		return ""
	}
	if header == "" {
		return available[0]
	}

	for _, want := range parseAcceptTags(header) {
		for _, avail := range available {
			if strings.EqualFold(want.tag, avail) {
				return avail
			}
		}
		wantBase := baseLanguage(want.tag)
		for _, avail := range available {
			if strings.EqualFold(wantBase, baseLanguage(avail)) {
				return avail
			}
		}
	}

	return available[0]
}

func parseAcceptTags(header string) []acceptTag {
	if len(header) > maxAcceptHeaderLength {
		header = header[:maxAcceptHeaderLength]
	}

	var tags []acceptTag
	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		quality := 1.0
		langPart, qPart, hasQuality := strings.Cut(part, ";")
		langPart = strings.TrimSpace(langPart)
		if hasQuality {
			qPart = strings.TrimSpace(qPart)
			if after, ok := strings.CutPrefix(qPart, "q="); ok {
				if q, err := strconv.ParseFloat(after, 64); err == nil && q >= 0 && q <= 1 {
					quality = q
				}
			}
		}

		if langPart == "" || langPart == "*" {
			continue
		}
		tags = append(tags, acceptTag{
			tag:     strings.ToLower(langPart),
			quality: quality,
		})
	}

	slices.SortStableFunc(tags, func(a, b acceptTag) int {
		return cmp.Compare(b.quality, a.quality)
	})

	return tags
}
