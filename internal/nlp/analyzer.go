package nlp

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/rainsafe/rainsafe-backend/internal/domain"
)

// Severity hint labels, least to most severe. "unknown" is reserved for the
// degraded scorer; a scored description with no matches is "low".
const (
	SeverityUnknown = "unknown"
	SeverityLow     = "low"
	SeverityMedium  = "medium"
	SeverityHigh    = "high"
)

// Scorer derives an NLP analysis from a report description.
type Scorer interface {
	Score(description string) domain.NLPAnalysis
}

// Analyzer is the lexicon-backed Scorer. A nil lexicon produces the degraded
// analyzer, which returns the unknown analysis unconditionally.
type Analyzer struct {
	lex *Lexicon
}

// NewAnalyzer creates an analyzer over the given lexicon. Pass nil to run
// degraded when the resource failed to load.
func NewAnalyzer(lex *Lexicon) *Analyzer {
	return &Analyzer{lex: lex}
}

// Enabled reports whether the language resource is loaded.
func (a *Analyzer) Enabled() bool { return a.lex != nil }

// Score scans the lemmatized tokens of the lower-cased description.
// A high-risk lemma match is terminal: severity high cannot be downgraded by
// later medium matches. Matched surface tokens accumulate into
// ActionableWords and gazetteer matches into Locations, both deduplicated.
func (a *Analyzer) Score(description string) domain.NLPAnalysis {
	if a.lex == nil {
		return domain.UnknownAnalysis()
	}

	tokens := tokenize(description)

	severity := SeverityLow
	words := make([]string, 0, 4)
	seenWords := make(map[string]struct{}, 4)

	for _, tok := range tokens {
		lemma := a.lex.lemma(tok)
		if _, ok := a.lex.highRisk[lemma]; ok {
			severity = SeverityHigh
		} else if _, ok := a.lex.mediumRisk[lemma]; ok {
			if severity != SeverityHigh {
				severity = SeverityMedium
			}
		} else {
			continue
		}
		if _, dup := seenWords[tok]; !dup {
			seenWords[tok] = struct{}{}
			words = append(words, tok)
		}
	}

	return domain.NLPAnalysis{
		Severity:        severity,
		Locations:       a.extractPlaces(tokens),
		ActionableWords: words,
	}
}

// extractPlaces matches token n-grams against the gazetteer, longest match
// first, and returns the deduplicated surface phrases.
func (a *Analyzer) extractPlaces(tokens []string) []string {
	places := make([]string, 0, 2)
	seen := make(map[string]struct{}, 2)

	for i := 0; i < len(tokens); {
		matched := 0
		for n := min(a.lex.maxPlaceLen, len(tokens)-i); n >= 1; n-- {
			phrase := strings.Join(tokens[i:i+n], " ")
			if _, ok := a.lex.places[phrase]; !ok {
				continue
			}
			if _, dup := seen[phrase]; !dup {
				seen[phrase] = struct{}{}
				places = append(places, phrase)
			}
			matched = n
			break
		}
		if matched == 0 {
			matched = 1
		}
		i += matched
	}
	return places
}

// tokenize lower-cases, Unicode-normalizes, and splits the description into
// letter/digit runs.
func tokenize(s string) []string {
	s = norm.NFKC.String(strings.ToLower(s))
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
