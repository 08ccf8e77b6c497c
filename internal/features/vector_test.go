package features

import (
	"encoding/json"
	"testing"
)

// TestVectorMarshalJSON tests stable key ordering and numeric encoding.
func TestVectorMarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("keys follow canonical order", func(t *testing.T) {
		t.Parallel()

		v := &Vector{
			URLLength:     20,
			NumDigits:     3,
			NumSpecial:    5,
			NumLetters:    12,
			HasHTTPS:      1,
			NumSubdomains: 1,
			PathDepth:     2,
			Entropy:       3.5,
			ContainsIP:    0,
			RareTLD:       1,
			Keywords: []KeywordFlag{
				{Keyword: "login", Present: 1},
				{Keyword: "bank", Present: 0},
			},
		}

		got, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		expected := `{"url_length":20,"num_digits":3,"num_special":5,"num_letters":12,` +
			`"has_https":1,"num_subdomains":1,"path_depth":2,"entropy":3.5,` +
			`"contains_ip":0,"rare_tld_flag":1,"has_login":1,"has_bank":0}`
		if string(got) != expected {
			t.Errorf("got %s, expected %s", got, expected)
		}
	})

	t.Run("integer features encode without decimal point", func(t *testing.T) {
		t.Parallel()

		v := &Vector{Entropy: 2}
		got, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		expected := `{"url_length":0,"num_digits":0,"num_special":0,"num_letters":0,` +
			`"has_https":0,"num_subdomains":0,"path_depth":0,"entropy":2,` +
			`"contains_ip":0,"rare_tld_flag":0}`
		if string(got) != expected {
			t.Errorf("got %s, expected %s", got, expected)
		}
	})
}

// TestVectorUnmarshalJSON tests token-stream decoding.
func TestVectorUnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("round trip preserves all features", func(t *testing.T) {
		t.Parallel()

		original := NewExtractor().Extract("https://secure.example.xyz/login?user=1")
		data, err := json.Marshal(original)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		var decoded Vector
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		again, err := json.Marshal(&decoded)
		if err != nil {
			t.Fatalf("marshal decoded: %v", err)
		}
		if string(again) != string(data) {
			t.Errorf("round trip changed encoding:\n got %s\nwant %s", again, data)
		}
	})

	t.Run("keyword flag order follows document order", func(t *testing.T) {
		t.Parallel()

		doc := `{"url_length":1,"num_digits":0,"num_special":0,"num_letters":1,` +
			`"has_https":0,"num_subdomains":0,"path_depth":0,"entropy":0,` +
			`"contains_ip":0,"rare_tld_flag":1,"has_verify":1,"has_login":0}`

		var v Vector
		if err := json.Unmarshal([]byte(doc), &v); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(v.Keywords) != 2 {
			t.Fatalf("got %d keyword flags, expected 2", len(v.Keywords))
		}
		if v.Keywords[0].Keyword != "verify" || v.Keywords[1].Keyword != "login" {
			t.Errorf("got order %q,%q, expected verify,login",
				v.Keywords[0].Keyword, v.Keywords[1].Keyword)
		}
	})

	t.Run("has_https is not mistaken for a keyword flag", func(t *testing.T) {
		t.Parallel()

		doc := `{"has_https":1}`
		var v Vector
		if err := json.Unmarshal([]byte(doc), &v); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if v.HasHTTPS != 1 {
			t.Errorf("HasHTTPS = %d, expected 1", v.HasHTTPS)
		}
		if len(v.Keywords) != 0 {
			t.Errorf("got %d keyword flags, expected 0", len(v.Keywords))
		}
	})

	t.Run("unknown feature name is rejected", func(t *testing.T) {
		t.Parallel()

		var v Vector
		if err := json.Unmarshal([]byte(`{"bogus":1}`), &v); err == nil {
			t.Error("expected error for unknown feature name")
		}
	})

	t.Run("non-numeric value is rejected", func(t *testing.T) {
		t.Parallel()

		var v Vector
		if err := json.Unmarshal([]byte(`{"url_length":"ten"}`), &v); err == nil {
			t.Error("expected error for non-numeric value")
		}
	})
}

// TestVectorPairs tests the ordered feature listing.
func TestVectorPairs(t *testing.T) {
	t.Parallel()

	v := NewExtractor().Extract("https://example.com")
	pairs := v.Pairs()

	if len(pairs) != 10+len(DefaultKeywords) {
		t.Fatalf("got %d pairs, expected %d", len(pairs), 10+len(DefaultKeywords))
	}

	expectedOrder := []string{
		FeatureURLLength, FeatureNumDigits, FeatureNumSpecial, FeatureNumLetters,
		FeatureHasHTTPS, FeatureNumSubdomains, FeaturePathDepth, FeatureEntropy,
		FeatureContainsIP, FeatureRareTLD,
	}
	for i, name := range expectedOrder {
		if pairs[i].Name != name {
			t.Errorf("pairs[%d].Name = %q, expected %q", i, pairs[i].Name, name)
		}
	}
	for i, kw := range DefaultKeywords {
		if got := pairs[10+i].Name; got != KeywordFlagName(kw) {
			t.Errorf("pairs[%d].Name = %q, expected %q", 10+i, got, KeywordFlagName(kw))
		}
	}
	if pairs[7].IsInt {
		t.Error("entropy should not be marked as integer")
	}
}
