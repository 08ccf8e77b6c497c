package features

import "strings"

// DefaultKeywords is the phrase list searched for in every URL, in emission
// order. Each phrase yields one "has_<phrase>" flag.
var DefaultKeywords = []string{
	"login", "secure", "account", "update", "bank", "verify", "confirm", "payment",
}

// DefaultCommonTLDs is the set of top-level labels considered non-suspicious.
var DefaultCommonTLDs = []string{
	"com", "org", "net", "edu", "gov", "io", "co",
}

// Extractor computes feature vectors from raw URL strings. The zero value
// is not usable; construct with NewExtractor. An Extractor is immutable
// after construction and safe for concurrent use.
type Extractor struct {
	keywords   []string
	commonTLDs map[string]struct{}
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithKeywords replaces the default keyword list. Order is preserved in the
// emitted vector.
func WithKeywords(keywords []string) Option {
	return func(e *Extractor) {
		e.keywords = append([]string(nil), keywords...)
	}
}

// WithCommonTLDs replaces the default common-TLD set. Labels are compared
// lower-cased.
func WithCommonTLDs(tlds []string) Option {
	return func(e *Extractor) {
		e.commonTLDs = tldSet(tlds)
	}
}

// NewExtractor creates an Extractor with the default keyword and common-TLD
// configuration, modified by any options.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		keywords:   DefaultKeywords,
		commonTLDs: tldSet(DefaultCommonTLDs),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Keywords returns the configured keyword list in emission order.
func (e *Extractor) Keywords() []string {
	return append([]string(nil), e.keywords...)
}

// Extract computes the complete feature vector for a raw URL string. It is
// total: any input, including empty or malformed strings, produces a fully
// populated vector. It never returns an error and never panics.
func (e *Extractor) Extract(raw string) *Vector {
	parsed := Parse(raw)
	counts := countChars(raw)

	v := &Vector{
		URLLength:     counts.length,
		NumDigits:     counts.digits,
		NumSpecial:    counts.special,
		NumLetters:    counts.letters,
		NumSubdomains: countSubdomains(parsed.Host, parsed.HasHost),
		PathDepth:     countPathDepth(parsed.Path),
		Entropy:       entropy(raw),
		Keywords:      matchKeywords(raw, e.keywords),
	}
	if hasHTTPSPrefix(raw) {
		v.HasHTTPS = 1
	}
	if containsIP(raw, parsed.Host, parsed.HasHost) {
		v.ContainsIP = 1
	}
	if rareTLD(parsed.Host, parsed.HasHost, e.commonTLDs) {
		v.RareTLD = 1
	}
	return v
}

func tldSet(tlds []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tlds))
	for _, tld := range tlds {
		set[strings.ToLower(tld)] = struct{}{}
	}
	return set
}
