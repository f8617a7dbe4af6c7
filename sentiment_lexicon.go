package bankpulse

import "strings"

// A Lexicon holds word valences, modifier strengths and negation words for
// the rule-based sentiment model. It is populated once by NewLexicon and
// read-only thereafter, so it is safe for concurrent use.
type Lexicon struct {
	valences  map[string]float64
	modifiers map[string]float64
	negations map[string]bool
}

// NewLexicon builds the English lexicon with app-review domain terms.
func NewLexicon() *Lexicon {
	return &Lexicon{
		valences:  lexiconValences,
		modifiers: lexiconModifiers,
		negations: lexiconNegations,
	}
}

// Valence returns the word's sentiment valence in [-1, 1], or 0 when the
// word is not in the lexicon.
func (l *Lexicon) Valence(word string) float64 {
	if v, ok := l.valences[word]; ok {
		return v
	}
	return l.valences[strings.ToLower(word)]
}

// ModifierStrength returns the intensifier (positive) or diminisher
// (negative) factor for a word, or 0.
func (l *Lexicon) ModifierStrength(word string) float64 {
	if f, ok := l.modifiers[word]; ok {
		return f
	}
	return l.modifiers[strings.ToLower(word)]
}

// IsNegation reports whether the word negates following sentiment.
func (l *Lexicon) IsNegation(word string) bool {
	return l.negations[word] || l.negations[strings.ToLower(word)]
}

var lexiconValences = map[string]float64{
	// Strong positive
	"excellent":   0.9,
	"amazing":     0.85,
	"wonderful":   0.85,
	"fantastic":   0.85,
	"outstanding": 0.9,
	"perfect":     0.95,
	"brilliant":   0.85,
	"superb":      0.85,
	"flawless":    0.9,
	"awesome":     0.8,

	// Moderate positive
	"good":        0.6,
	"great":       0.75,
	"nice":        0.5,
	"love":        0.8,
	"happy":       0.7,
	"enjoy":       0.65,
	"like":        0.5,
	"pleasant":    0.6,
	"best":        0.85,
	"fast":        0.5,
	"easy":        0.5,
	"smooth":      0.6,
	"convenient":  0.6,
	"reliable":    0.65,
	"helpful":     0.6,
	"useful":      0.55,
	"secure":      0.5,
	"simple":      0.4,
	"intuitive":   0.55,
	"responsive":  0.55,
	"recommend":   0.6,
	"improved":    0.5,
	"works":       0.4,
	"thanks":      0.5,
	"thank":       0.5,

	// Mild positive
	"okay":   0.2,
	"ok":     0.2,
	"fine":   0.3,
	"decent": 0.4,

	// Strong negative
	"terrible":   -0.9,
	"awful":      -0.85,
	"horrible":   -0.85,
	"disgusting": -0.9,
	"pathetic":   -0.85,
	"useless":    -0.8,
	"worthless":  -0.85,
	"scam":       -0.9,
	"fraud":      -0.85,
	"worst":      -0.85,

	// Moderate negative
	"bad":           -0.6,
	"hate":          -0.8,
	"poor":          -0.65,
	"wrong":         -0.6,
	"worse":         -0.5,
	"annoying":      -0.65,
	"frustrating":   -0.7,
	"disappointing": -0.7,
	"disappointed":  -0.7,
	"fail":          -0.7,
	"failed":        -0.7,
	"failure":       -0.75,
	"crash":         -0.7,
	"crashes":       -0.7,
	"crashing":      -0.7,
	"freeze":        -0.6,
	"freezes":       -0.6,
	"freezing":      -0.6,
	"bug":           -0.55,
	"buggy":         -0.65,
	"broken":        -0.7,
	"slow":          -0.5,
	"stuck":         -0.55,
	"error":         -0.5,
	"errors":        -0.5,
	"problem":       -0.5,
	"problems":      -0.5,
	"issue":         -0.45,
	"issues":        -0.45,
	"unable":        -0.5,
	"difficult":     -0.45,
	"confusing":     -0.5,
	"complicated":   -0.45,
	"uninstall":     -0.6,
	"uninstalled":   -0.6,
	"waste":         -0.65,
	"delay":         -0.45,
	"delayed":       -0.45,
	"locked":        -0.4,
	"rejected":      -0.5,
	"declined":      -0.5,
}

var lexiconModifiers = map[string]float64{
	// Intensifiers
	"very":       0.3,
	"extremely":  0.5,
	"absolutely": 0.5,
	"totally":    0.4,
	"really":     0.3,
	"so":         0.3,
	"quite":      0.2,
	"incredibly": 0.5,
	"super":      0.4,
	"completely": 0.4,
	"always":     0.3,
	"constantly": 0.4,
	"keeps":      0.3,

	// Diminishers
	"slightly": -0.3,
	"somewhat": -0.3,
	"rather":   -0.2,
	"fairly":   -0.1,
	"barely":   -0.5,
	"hardly":   -0.5,
	"a bit":    -0.2,
	"kind of":  -0.3,
	"sort of":  -0.3,
}

var lexiconNegations = map[string]bool{
	"not":      true,
	"no":       true,
	"never":    true,
	"neither":  true,
	"nor":      true,
	"cannot":   true,
	"can't":    true,
	"won't":    true,
	"don't":    true,
	"doesn't":  true,
	"didn't":   true,
	"isn't":    true,
	"aren't":   true,
	"wasn't":   true,
	"weren't":  true,
	"hasn't":   true,
	"haven't":  true,
	"wouldn't": true,
	"couldn't": true,
	"without":  true,
	"nothing":  true,
	"none":     true,
	"n't":      true,
}
