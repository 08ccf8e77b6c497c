package features

import "strings"

// Parsed holds the scheme, host, and path components of a raw URL string.
// It is an ephemeral value recomputed per extraction; absence of a host is a
// valid, expected state rather than an error.
type Parsed struct {
	// Scheme is the lower-cased scheme, or empty when the raw string has none.
	Scheme string

	// Host is the network-location component with userinfo and port stripped.
	// Only meaningful when HasHost is true.
	Host string

	// HasHost distinguishes "no authority found" from an empty host string.
	// Host-dependent features fall back to their defaults when false.
	HasHost bool

	// Path is everything after the authority up to the query or fragment,
	// or the whole remainder when the raw string has no authority.
	Path string
}

// Parse splits a raw URL string into scheme, host, and path without ever
// failing on malformed input. This mirrors permissive URL-authority parsing,
// not strict RFC validation: an authority exists only after "//" (with or
// without a scheme), and anything that cannot be located simply stays absent.
//
// Design decision: we do not use net/url.Parse because it rejects inputs
// (control characters, bad percent escapes) that this extractor must still
// produce a complete feature vector for.
func Parse(raw string) Parsed {
	var p Parsed

	rest := raw
	switch {
	case hasScheme(rest):
		i := strings.Index(rest, "://")
		p.Scheme = strings.ToLower(rest[:i])
		rest = rest[i+3:]
	case strings.HasPrefix(rest, "//"):
		rest = rest[2:]
	default:
		// No authority marker: the whole input is treated as a path.
		p.Path = stripQueryFragment(rest)
		return p
	}

	authority := rest
	if end := strings.IndexAny(rest, "/?#"); end >= 0 {
		authority = rest[:end]
		p.Path = stripQueryFragment(rest[end:])
	}

	if host := hostFromAuthority(authority); host != "" {
		p.Host = host
		p.HasHost = true
	}
	return p
}

// hasScheme reports whether the raw string starts with "<scheme>://" where
// <scheme> is a plausible scheme name (letter first, then letters, digits,
// "+", "-", or "."). Inputs like "weird stuff://x" are treated as scheme-less.
func hasScheme(raw string) bool {
	i := strings.Index(raw, "://")
	if i <= 0 {
		return false
	}
	for pos, r := range raw[:i] {
		if isAlpha(r) {
			continue
		}
		if pos > 0 && (isDigitASCII(r) || r == '+' || r == '-' || r == '.') {
			continue
		}
		return false
	}
	return true
}

// hostFromAuthority strips userinfo and port from an authority component.
// IPv6 bracket notation keeps only the address between the brackets.
func hostFromAuthority(authority string) string {
	host := authority
	if at := strings.LastIndex(host, "@"); at >= 0 {
		host = host[at+1:]
	}

	if strings.HasPrefix(host, "[") {
		if end := strings.Index(host, "]"); end >= 0 {
			return host[1:end]
		}
		return host[1:]
	}
	if i := strings.Index(host, ":"); i >= 0 {
		host = host[:i]
	}
	return host
}

// stripQueryFragment cuts the path at the first "?" or "#".
func stripQueryFragment(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		return path[:i]
	}
	return path
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigitASCII(r rune) bool {
	return r >= '0' && r <= '9'
}
