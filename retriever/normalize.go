package retriever

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/oarkflow/convert"
	"github.com/oarkflow/pkg/str"
)

// Tickers can contain letters, numbers, and dashes
var tickerPattern = regexp.MustCompile(`[^A-Z0-9\-]+`)

// CleanTicker uppercases s and drops every character outside [A-Z0-9-].
func CleanTicker(s string) string {
	return tickerPattern.ReplaceAllString(strings.ToUpper(s), "")
}

// PadCIK formats a CIK as a 10 digit, zero padded string
func PadCIK(n int64) string {
	return fmt.Sprintf("%010d", n)
}

// TitleCase uppercases the first letter of every run of letters and lowercases the rest,
// so "APPLE INC." becomes "Apple Inc." and "AT&T INC" becomes "At&T Inc".
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}

// cellString renders a decoded JSON cell. null becomes "".
func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return str.ToString(val)
	}
}

func cellInt(v any) (int64, bool) {
	switch val := v.(type) {
	case float64:
		if val != math.Trunc(val) || val < 0 {
			return 0, false
		}
		return int64(val), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		return n, err == nil && n >= 0
	case nil, bool:
		return 0, false
	default:
		n, ok := convert.ToInt(val)
		return int64(n), ok && n >= 0
	}
}
