// Package hostcanon derives a canonical seed_host token from a doc's url
// field.
package hostcanon

import (
	"fmt"
	"regexp"
	"strings"
)

// pathedPrefixes are the exact host prefixes that keep one path segment
// beyond the host in the canonical token (e.g. a cafe or blog board is
// itself the addressable unit, not the whole domain).
var pathedPrefixes = []string{
	"cafe.naver.com",
	"m.cafe.daum.net",
	"cafe.daum.net",
	"blog.naver.com",
}

var hostPlusFirstSegment = regexp.MustCompile(`^([^/]+/[^/]+)`)

// PatternMismatchError is returned when a pathed prefix's remainder does
// not contain the expected host/first-segment shape.
type PatternMismatchError struct {
	Remainder string
}

func (e *PatternMismatchError) Error() string {
	return fmt.Sprintf("CAFE_PTRN_NOT_MATCH: %s", e.Remainder)
}

// SeedHost returns the canonical seed_host token for url.
//
//  1. Strip a leading "https://" or "http://".
//  2. Strip a leading "www.".
//  3. If what remains starts with one of the pathed prefixes, extract
//     "host/first-path-segment"; a failure to match is a hard error.
//  4. Otherwise return the prefix up to (excluding) the first '/' or '#',
//     or the whole remainder if neither occurs.
func SeedHost(url string) (string, error) {
	rest := strings.TrimPrefix(url, "https://")
	rest = strings.TrimPrefix(rest, "http://")
	rest = strings.TrimPrefix(rest, "www.")

	for _, prefix := range pathedPrefixes {
		if strings.HasPrefix(rest, prefix) {
			m := hostPlusFirstSegment.FindString(rest)
			if m == "" {
				return "", &PatternMismatchError{Remainder: rest}
			}
			return m, nil
		}
	}

	if i := strings.IndexAny(rest, "/#"); i >= 0 {
		return rest[:i], nil
	}
	return rest, nil
}
