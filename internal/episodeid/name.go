package episodeid

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UnknownName is used when a name has no alphanumeric content.
const UnknownName = "unknown"

var honorifics = map[string]struct{}{
	"dr":        {},
	"mr":        {},
	"mrs":       {},
	"ms":        {},
	"miss":      {},
	"prof":      {},
	"professor": {},
	"sir":       {},
	"rev":       {},
}

var lower = cases.Lower(language.Und)

// CleanName reduces an interviewee name to at most two lowercase ASCII
// alphanumeric tokens joined by an underscore. Leading honorifics are dropped.
//
//	CleanName("Dr. Jack Kruse!!") == "jack_kruse"
func CleanName(name string) string {
	lowered := lower.String(name)

	tokens := strings.FieldsFunc(lowered, func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	})
	for len(tokens) > 1 {
		if _, ok := honorifics[tokens[0]]; !ok {
			break
		}
		tokens = tokens[1:]
	}
	if len(tokens) == 0 {
		return UnknownName
	}
	if len(tokens) > 2 {
		tokens = tokens[:2]
	}
	return strings.Join(tokens, "_")
}

// BaseKey returns the counter key for an identifier: {yy_mm_dd}_{platform}_{clean_name}.
func BaseKey(platform string, publishedAt time.Time, name string) string {
	return publishedAt.Format("06_01_02") + "_" + strings.ToLower(strings.TrimSpace(platform)) + "_" + CleanName(name)
}

// SplitID separates an identifier into its base key and counter.
func SplitID(id string) (string, int, bool) {
	idx := strings.LastIndexByte(id, '_')
	if idx <= 0 || idx == len(id)-1 {
		return "", 0, false
	}
	n := 0
	for _, r := range id[idx+1:] {
		if r < '0' || r > '9' {
			return "", 0, false
		}
		n = n*10 + int(r-'0')
	}
	if n == 0 {
		return "", 0, false
	}
	return id[:idx], n, true
}
