package features

import (
	"strings"
	"unicode"
)

// charCounts holds the character-class breakdown of a raw URL. Every rune
// falls into exactly one class, so digits+letters+special always equals
// length.
type charCounts struct {
	length  int
	digits  int
	letters int
	special int
}

// countChars classifies every rune of the raw string. Unicode-aware so
// non-ASCII letters and digits count as such rather than as specials.
func countChars(raw string) charCounts {
	var c charCounts
	for _, r := range raw {
		c.length++
		switch {
		case unicode.IsDigit(r):
			c.digits++
		case unicode.IsLetter(r):
			c.letters++
		default:
			c.special++
		}
	}
	return c
}

// hasHTTPSPrefix reports whether the raw string starts with "https://",
// compared case-insensitively. This inspects the raw prefix, not the parsed
// scheme, so malformed input without a real scheme still yields a
// deterministic answer.
func hasHTTPSPrefix(raw string) bool {
	const prefix = "https://"
	return len(raw) >= len(prefix) && strings.EqualFold(raw[:len(prefix)], prefix)
}

// countSubdomains approximates the subdomain count as max(0, labels-2) over
// the dot-separated host, treating the last two labels as domain plus TLD.
// Numeric hosts are split the same way, so an IPv4 literal like 192.168.0.1
// reports 2 subdomains. Known limitation, kept for classifier compatibility.
func countSubdomains(host string, hasHost bool) int {
	if !hasHost {
		return 0
	}
	labels := strings.Count(host, ".") + 1
	if labels <= 2 {
		return 0
	}
	return labels - 2
}

// countPathDepth counts "/" characters in the path. An empty path or a path
// of exactly "/" is depth 0. Trailing and leading slashes each count, so
// "/a/b/" is depth 3. Known limitation, kept for classifier compatibility.
func countPathDepth(path string) int {
	if path == "" || path == "/" {
		return 0
	}
	return strings.Count(path, "/")
}
