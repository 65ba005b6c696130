package chat

import "strings"

// CityMatcher finds a known city in free text. Implementations receive the
// lowercased message and the candidate city keys.
type CityMatcher interface {
	Match(text string, cities []string) (string, bool)
}

// SubstringMatcher matches when the city name appears verbatim in the text.
type SubstringMatcher struct{}

func (SubstringMatcher) Match(text string, cities []string) (string, bool) {
	for _, city := range cities {
		if strings.Contains(text, city) {
			return city, true
		}
	}
	return "", false
}

// DiceMatcher falls back to substring matching, then picks the city whose
// bigram similarity to the whole message clears the threshold. Useful for
// catching misspellings such as "jaipr".
type DiceMatcher struct {
	Threshold float64
}

func NewDiceMatcher() DiceMatcher {
	return DiceMatcher{Threshold: 0.4}
}

func (m DiceMatcher) Match(text string, cities []string) (string, bool) {
	if city, ok := (SubstringMatcher{}).Match(text, cities); ok {
		return city, true
	}

	best := ""
	bestScore := 0.0
	for _, city := range cities {
		if score := diceSimilarity(text, city); score > bestScore {
			best, bestScore = city, score
		}
	}
	if bestScore > m.Threshold {
		return best, true
	}
	return "", false
}

// diceSimilarity computes the Sørensen–Dice coefficient over character
// bigrams, ignoring whitespace.
func diceSimilarity(a, b string) float64 {
	aBigrams := bigrams(a)
	bBigrams := bigrams(b)
	if len(aBigrams) == 0 || len(bBigrams) == 0 {
		if a == b {
			return 1
		}
		return 0
	}

	counts := make(map[string]int, len(aBigrams))
	for _, bg := range aBigrams {
		counts[bg]++
	}
	overlap := 0
	for _, bg := range bBigrams {
		if counts[bg] > 0 {
			counts[bg]--
			overlap++
		}
	}
	return 2 * float64(overlap) / float64(len(aBigrams)+len(bBigrams))
}

func bigrams(s string) []string {
	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")
	runes := []rune(s)
	if len(runes) < 2 {
		return nil
	}
	out := make([]string, 0, len(runes)-1)
	for i := 0; i < len(runes)-1; i++ {
		out = append(out, string(runes[i:i+2]))
	}
	return out
}
