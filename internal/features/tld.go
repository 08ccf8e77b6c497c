package features

import "strings"

// rareTLD reports whether the host's final dot-delimited label, lower-cased,
// is outside the common-TLD set. A host that is absent or contains no dot is
// treated as rare. Conservative fallback, not an error.
func rareTLD(host string, hasHost bool, common map[string]struct{}) bool {
	if !hasHost {
		return true
	}
	dot := strings.LastIndex(host, ".")
	if dot < 0 {
		return true
	}
	tld := strings.ToLower(host[dot+1:])
	_, ok := common[tld]
	return !ok
}
