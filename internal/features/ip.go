package features

import "regexp"

// Dotted-quad IPv4 patterns: four groups of one to three digits separated
// by dots. The host check is anchored to the full string, the raw-string
// fallback searches anywhere. Octet range is deliberately not validated
// (999.999.999.999 still flags) and IPv6 literals are never recognized.
var (
	ipv4Host = regexp.MustCompile(`^(\d{1,3}\.){3}\d{1,3}$`)
	ipv4Any  = regexp.MustCompile(`(\d{1,3}\.){3}\d{1,3}`)
)

// containsIP reports whether the host is an IPv4 dotted quad, or failing
// that, whether one appears anywhere in the raw string. The fallback catches
// IP literals hidden in query parameters of URLs whose authority could not
// be parsed.
func containsIP(raw, host string, hasHost bool) bool {
	if hasHost && ipv4Host.MatchString(host) {
		return true
	}
	return ipv4Any.MatchString(raw)
}
