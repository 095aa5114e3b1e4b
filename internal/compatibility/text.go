package compatibility

import (
	"strings"
	"unicode"
)

const minTokenLength = 3

var stopwords = map[string]struct{}{
	"and": {}, "the": {}, "for": {}, "with": {}, "you": {}, "our": {}, "are": {},
	"les": {}, "des": {}, "une": {}, "pour": {}, "avec": {}, "dans": {}, "sur": {},
	"par": {}, "est": {}, "qui": {}, "que": {}, "aux": {}, "vous": {}, "nous": {},
}

// tokenize lowercases and splits text on anything that is not a letter or a
// digit, dropping short tokens and stopwords. The result is a set.
func tokenize(text string, more ...string) map[string]struct{} {
	tokens := make(map[string]struct{})
	add := func(s string) {
		for _, f := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		}) {
			if len([]rune(f)) < minTokenLength {
				continue
			}
			if _, stop := stopwords[f]; stop {
				continue
			}
			tokens[f] = struct{}{}
		}
	}

	add(text)
	for _, s := range more {
		add(s)
	}
	return tokens
}

// overlapCoefficient is |a ∩ b| / min(|a|, |b|), in [0,1].
func overlapCoefficient(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}

	shared := 0
	for t := range small {
		if _, ok := large[t]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(small))
}
