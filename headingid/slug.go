package headingid

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	tagLike = regexp.MustCompile(`<[^>]*>`)
	lower   = cases.Lower(language.Und)
)

// Slug turns heading text into an identifier. Text is NFC-normalized and
// lower-cased, tag-like substrings are removed, and only ASCII word
// characters, whitespace, hyphens and Hangul syllables are kept. Whitespace
// runs become one hyphen and outer hyphens are trimmed.
func Slug(text string) string {
	s := lower.String(norm.NFC.String(text))
	s = tagLike.ReplaceAllString(s, "")

	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			space = true
			continue
		case !keep(r):
			continue
		}
		if space {
			sb.WriteByte('-')
			space = false
		}
		sb.WriteRune(r)
	}
	return strings.Trim(sb.String(), "-")
}

func keep(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '-':
		return true
	case r >= '가' && r <= '힣':
		return true
	}
	return false
}
