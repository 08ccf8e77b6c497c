package features

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Feature names as they appear in the serialized vector, in canonical order.
const (
	FeatureURLLength     = "url_length"
	FeatureNumDigits     = "num_digits"
	FeatureNumSpecial    = "num_special"
	FeatureNumLetters    = "num_letters"
	FeatureHasHTTPS      = "has_https"
	FeatureNumSubdomains = "num_subdomains"
	FeaturePathDepth     = "path_depth"
	FeatureEntropy       = "entropy"
	FeatureContainsIP    = "contains_ip"
	FeatureRareTLD       = "rare_tld_flag"

	// keywordFlagPrefix prefixes each keyword flag name, e.g. "has_login".
	keywordFlagPrefix = "has_"
)

// KeywordFlag records whether one configured phrase occurred in the URL.
// The slice order on Vector matches the configured keyword order.
type KeywordFlag struct {
	// Keyword is the matched phrase, e.g. "login". The serialized feature
	// name is "has_" + Keyword.
	Keyword string

	// Present is 1 when the phrase occurs in the URL, else 0.
	Present int
}

// Vector is the complete set of lexical features computed from one URL.
// It is immutable once produced; every field is always populated, even for
// empty or malformed input.
type Vector struct {
	// URLLength is the number of characters (runes) in the raw URL.
	URLLength int

	// NumDigits counts characters classified as decimal digits.
	NumDigits int

	// NumSpecial counts characters that are neither letters nor digits.
	NumSpecial int

	// NumLetters counts characters classified as alphabetic.
	NumLetters int

	// HasHTTPS is 1 when the raw string starts with "https://",
	// case-insensitively, else 0.
	HasHTTPS int

	// NumSubdomains approximates the subdomain count as max(0, labels-2)
	// over the dot-separated host. 0 when no host was found.
	NumSubdomains int

	// PathDepth counts "/" characters in the path. 0 for an empty path or
	// a path of exactly "/".
	PathDepth int

	// Entropy is the Shannon entropy of the raw string's character
	// distribution, in bits. 0.0 for empty input.
	Entropy float64

	// ContainsIP is 1 when the host, or failing that the raw string,
	// contains an IPv4 dotted quad.
	ContainsIP int

	// RareTLD is 1 when the host's final label is outside the configured
	// common-TLD set, or when no host or no dot is available.
	RareTLD int

	// Keywords holds one flag per configured keyword, in configured order.
	Keywords []KeywordFlag
}

// Feature is a single named feature value. Integer-valued features carry
// IsInt=true so serialization can distinguish counts and flags from entropy.
type Feature struct {
	Name  string
	Value float64
	IsInt bool
}

// Pairs returns every feature in canonical order: the ten structural
// features followed by one keyword flag per configured keyword.
func (v *Vector) Pairs() []Feature {
	pairs := make([]Feature, 0, 10+len(v.Keywords))
	pairs = append(pairs,
		Feature{Name: FeatureURLLength, Value: float64(v.URLLength), IsInt: true},
		Feature{Name: FeatureNumDigits, Value: float64(v.NumDigits), IsInt: true},
		Feature{Name: FeatureNumSpecial, Value: float64(v.NumSpecial), IsInt: true},
		Feature{Name: FeatureNumLetters, Value: float64(v.NumLetters), IsInt: true},
		Feature{Name: FeatureHasHTTPS, Value: float64(v.HasHTTPS), IsInt: true},
		Feature{Name: FeatureNumSubdomains, Value: float64(v.NumSubdomains), IsInt: true},
		Feature{Name: FeaturePathDepth, Value: float64(v.PathDepth), IsInt: true},
		Feature{Name: FeatureEntropy, Value: v.Entropy},
		Feature{Name: FeatureContainsIP, Value: float64(v.ContainsIP), IsInt: true},
		Feature{Name: FeatureRareTLD, Value: float64(v.RareTLD), IsInt: true},
	)
	for _, kw := range v.Keywords {
		pairs = append(pairs, Feature{
			Name:  keywordFlagPrefix + kw.Keyword,
			Value: float64(kw.Present),
			IsInt: true,
		})
	}
	return pairs
}

// KeywordFlagName returns the serialized feature name for a keyword.
func KeywordFlagName(keyword string) string {
	return keywordFlagPrefix + keyword
}

// MarshalJSON encodes the vector as a flat JSON object with stable key
// order. Encoding by hand keeps the canonical ordering that encoding/json's
// map marshaling would destroy.
func (v *Vector) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range v.Pairs() {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return nil, fmt.Errorf("marshal feature name %q: %w", f.Name, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		if f.IsInt {
			buf.WriteString(strconv.Itoa(int(f.Value)))
		} else {
			buf.WriteString(strconv.FormatFloat(f.Value, 'g', -1, 64))
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a flat feature object, preserving the keyword flag
// order the document was written with. Token-stream decoding is needed
// because encoding/json map decoding would lose key order.
func (v *Vector) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode feature vector: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decode feature vector: expected object, got %v", tok)
	}

	v.Keywords = nil
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode feature vector key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decode feature vector: non-string key %v", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode feature %q: %w", key, err)
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return fmt.Errorf("decode feature %q: non-numeric value %v", key, valTok)
		}

		switch key {
		case FeatureURLLength:
			v.URLLength, err = intValue(num)
		case FeatureNumDigits:
			v.NumDigits, err = intValue(num)
		case FeatureNumSpecial:
			v.NumSpecial, err = intValue(num)
		case FeatureNumLetters:
			v.NumLetters, err = intValue(num)
		case FeatureHasHTTPS:
			v.HasHTTPS, err = intValue(num)
		case FeatureNumSubdomains:
			v.NumSubdomains, err = intValue(num)
		case FeaturePathDepth:
			v.PathDepth, err = intValue(num)
		case FeatureEntropy:
			v.Entropy, err = num.Float64()
		case FeatureContainsIP:
			v.ContainsIP, err = intValue(num)
		case FeatureRareTLD:
			v.RareTLD, err = intValue(num)
		default:
			if !strings.HasPrefix(key, keywordFlagPrefix) {
				return fmt.Errorf("decode feature vector: unknown feature %q", key)
			}
			var present int
			present, err = intValue(num)
			if err == nil {
				v.Keywords = append(v.Keywords, KeywordFlag{
					Keyword: strings.TrimPrefix(key, keywordFlagPrefix),
					Present: present,
				})
			}
		}
		if err != nil {
			return fmt.Errorf("decode feature %q: %w", key, err)
		}
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode feature vector: %w", err)
	}
	return nil
}

func intValue(num json.Number) (int, error) {
	n, err := num.Int64()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
