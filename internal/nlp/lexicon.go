// Package nlp derives a severity hint, place mentions, and actionable terms
// from free-text flood report descriptions.
//
// Scoring is lexicon-driven: tokens are lemmatized and matched against fixed
// high-risk and medium-risk lemma sets, while a place gazetteer picks out
// location mentions. The lexicon is a resource loaded once at process start;
// when it is unavailable the scorer degrades to an unconditional "unknown"
// analysis rather than failing report submissions.
package nlp

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Lexicon is the language resource backing the scorer: risk lemma sets, an
// irregular-form table for the lemmatizer, and a place gazetteer.
type Lexicon struct {
	highRisk   map[string]struct{}
	mediumRisk map[string]struct{}
	irregular  map[string]string
	places     map[string]struct{}
	maxPlaceLen int // longest gazetteer entry, in tokens
}

// lexiconFile is the on-disk JSON shape of the resource.
type lexiconFile struct {
	HighRisk   []string          `json:"high_risk"`
	MediumRisk []string          `json:"medium_risk"`
	Irregular  map[string]string `json:"irregular"`
	Places     []string          `json:"places"`
}

// LoadLexicon reads the lexicon resource from disk. A missing or malformed
// file is an error; the caller decides whether to run degraded.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	var f lexiconFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	if len(f.HighRisk) == 0 || len(f.MediumRisk) == 0 {
		return nil, fmt.Errorf("lexicon is missing risk lemma sets")
	}
	return newLexicon(f), nil
}

// DefaultLexicon returns the built-in resource: the fixed risk lemma sets
// plus a small gazetteer of common flood-prone place terms. Used when no
// lexicon file is shipped and by tests.
func DefaultLexicon() *Lexicon {
	return newLexicon(lexiconFile{
		HighRisk: []string{
			"stick", "submerge", "block", "trap", "enter",
			"dangerous", "impassable", "wash", "collapsed",
		},
		MediumRisk: []string{
			"rise", "overflow", "waterlog", "struggle", "difficult", "stagnant",
		},
		Irregular: map[string]string{
			"stuck": "stick",
			"swept": "wash",
		},
		Places: []string{
			"bridge", "underpass", "subway", "market", "station", "hospital",
			"school", "junction", "flyover", "lake", "river", "canal",
			"main road", "ring road", "bus stand",
		},
	})
}

func newLexicon(f lexiconFile) *Lexicon {
	lex := &Lexicon{
		highRisk:   make(map[string]struct{}, len(f.HighRisk)),
		mediumRisk: make(map[string]struct{}, len(f.MediumRisk)),
		irregular:  make(map[string]string, len(f.Irregular)),
		places:     make(map[string]struct{}, len(f.Places)),
	}
	for _, w := range f.HighRisk {
		lex.highRisk[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range f.MediumRisk {
		lex.mediumRisk[strings.ToLower(w)] = struct{}{}
	}
	for form, lemma := range f.Irregular {
		lex.irregular[strings.ToLower(form)] = strings.ToLower(lemma)
	}
	for _, p := range f.Places {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		lex.places[p] = struct{}{}
		if n := len(strings.Fields(p)); n > lex.maxPlaceLen {
			lex.maxPlaceLen = n
		}
	}
	return lex
}

func (l *Lexicon) isLemma(w string) bool {
	if _, ok := l.highRisk[w]; ok {
		return true
	}
	_, ok := l.mediumRisk[w]
	return ok
}

// lemma reduces a token to its dictionary form. The reduction is
// membership-guided: suffix-stripped candidates are only accepted when they
// land in a known lemma set, so ordinary words pass through unchanged.
func (l *Lexicon) lemma(token string) string {
	if lem, ok := l.irregular[token]; ok {
		return lem
	}
	if l.isLemma(token) {
		return token
	}

	type rule struct{ suffix, replace string }
	rules := []rule{
		{"ies", "y"},
		{"ing", ""},
		{"ed", ""},
		{"es", ""},
		{"s", ""},
	}
	for _, r := range rules {
		stem, ok := strings.CutSuffix(token, r.suffix)
		if !ok || stem == "" {
			continue
		}
		stem += r.replace
		// Try the bare stem, the stem with a restored final "e"
		// (rising -> ris -> rise), and the stem with an undoubled final
		// consonant (trapped -> trapp -> trap).
		for _, cand := range []string{stem, stem + "e", undouble(stem)} {
			if l.isLemma(cand) {
				return cand
			}
		}
	}
	return token
}

func undouble(s string) string {
	if n := len(s); n >= 2 && s[n-1] == s[n-2] {
		return s[:n-1]
	}
	return s
}
