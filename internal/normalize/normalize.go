package normalize

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// DefaultUnitIndex is used for weight text that doesn't match any known
// unit token.
const DefaultUnitIndex = 10

// unitIndexes maps measurement unit tokens to the feed's descriptionIndex
// enumeration. Lookup is case-insensitive with the trailing dot stripped.
var unitIndexes = map[string]int{
	"ед":        0,
	"гр":        1,
	"г":         1,
	"грамм":     1,
	"кг":        2,
	"килограмм": 2,
	"мл":        3,
	"л":         4,
	"литр":      4,
	"см":        5,
	"м":         6,
	"мин":       7,
	"ч":         8,
	"час":       8,
	"шт":        9,
	"порц":      10,
	"порция":    10,
}

var (
	nonPriceRunes = regexp.MustCompile(`[^\d\s]`)
	spaces        = regexp.MustCompile(`\s+`)
	quantityUnit  = regexp.MustCompile(`[\d.,]+\s*[а-яёА-ЯЁ.]+`)
	unitToken     = regexp.MustCompile(`[\d.,]+\s*([а-яёА-ЯЁ.]+)`)
)

// ParsePrice extracts an integer amount from free price text: every rune
// that is neither a digit nor whitespace is dropped, remaining whitespace
// is removed and the rest parsed as base-10. Text with no digits yields 0.
func ParsePrice(text string) int {
	cleaned := nonPriceRunes.ReplaceAllString(text, "")
	cleaned = spaces.ReplaceAllString(cleaned, "")
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return n
}

// UnitIndex resolves a unit token ("г", "кг.", "шт") to its enumeration
// value, -1 when the token is unknown.
func UnitIndex(token string) int {
	token = strings.TrimRight(strings.ToLower(strings.TrimSpace(token)), ".")
	if idx, ok := unitIndexes[token]; ok {
		return idx
	}
	return -1
}

// ParseUnit splits free weight text into its quantity-plus-unit part and
// the matching unit index. "165 г" yields ("165 г", 1). Text with no
// recognizable quantity+unit pattern degrades to ("1", DefaultUnitIndex).
func ParseUnit(text string) (string, int) {
	match := unitToken.FindStringSubmatch(text)
	if match == nil {
		return "1", DefaultUnitIndex
	}
	idx := UnitIndex(match[1])
	if idx == -1 {
		return "1", DefaultUnitIndex
	}
	return strings.TrimSpace(quantityUnit.FindString(text)), idx
}

// FixURL resolves a possibly relative link against the shop's origin.
// Placeholder links ("#", empty, single rune) become "".
func FixURL(link, base string) string {
	link = strings.TrimSpace(link)
	if link == "" || link == "#" || len(link) <= 1 {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	origin := &url.URL{Scheme: baseURL.Scheme, Host: baseURL.Host}
	resolved, err := origin.Parse(link)
	if err != nil {
		return ""
	}
	return resolved.String()
}
