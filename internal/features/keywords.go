package features

import "strings"

// matchKeywords performs a case-insensitive substring search for each
// configured phrase against the full raw string, not just host or path.
// Flags are independent and returned in configured keyword order.
func matchKeywords(raw string, keywords []string) []KeywordFlag {
	lower := strings.ToLower(raw)
	flags := make([]KeywordFlag, 0, len(keywords))
	for _, kw := range keywords {
		present := 0
		if strings.Contains(lower, strings.ToLower(kw)) {
			present = 1
		}
		flags = append(flags, KeywordFlag{Keyword: kw, Present: present})
	}
	return flags
}
