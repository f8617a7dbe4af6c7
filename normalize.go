package bankpulse

import (
	"regexp"
	"strings"

	"github.com/bbalet/stopwords"
)

// NormalizerConfig configures text normalization.
type NormalizerConfig struct {
	RemoveStopwords bool
	Lemmatize       bool
}

// DefaultNormalizerConfig returns the standard configuration.
func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		RemoveStopwords: true,
		Lemmatize:       true,
	}
}

// A Normalizer turns raw review text into a cleaned, space-joined token
// string. Given the same configuration it is deterministic, and it never
// fails: malformed or empty input yields the empty string.
type Normalizer struct {
	config NormalizerConfig
	tok    *wordTokenizer
}

// NewNormalizer creates a normalizer.
func NewNormalizer(config NormalizerConfig) *Normalizer {
	return &Normalizer{
		config: config,
		tok:    newWordTokenizer(),
	}
}

var whitespaceRE = regexp.MustCompile(`\s+`)

// Normalize lowercases, collapses whitespace, tokenizes, drops punctuation
// and (optionally) stop words, (optionally) lemmatizes, and rejoins the
// surviving tokens with single spaces.
func (n *Normalizer) Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = whitespaceRE.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	var kept []string
	for _, token := range n.tok.Tokenize(text) {
		if isPunctToken(token) {
			continue
		}
		if n.config.RemoveStopwords && isStopWord(token) {
			continue
		}
		if n.config.Lemmatize {
			token = Lemma(token)
		}
		kept = append(kept, token)
	}

	return strings.Join(kept, " ")
}

// Tokens returns the normalized token sequence instead of a joined string.
func (n *Normalizer) Tokens(text string) []string {
	normalized := n.Normalize(text)
	if normalized == "" {
		return nil
	}
	return strings.Split(normalized, " ")
}

// isStopWord reports whether the stop-word library filters the word out.
// The library doesn't export its word lists, so we test words individually.
func isStopWord(word string) bool {
	return strings.TrimSpace(stopwords.CleanString(word, "en", false)) == ""
}

// Lemma maps an English word to a base form using a small irregular table
// plus suffix rules. It is intentionally rule-based: close enough for
// keyword grouping, with no external model to load.
func Lemma(word string) string {
	if lemma, ok := irregularLemmas[word]; ok {
		return lemma
	}
	if len(word) <= 3 {
		return word
	}

	switch {
	case strings.HasSuffix(word, "ies") && len(word) > 4:
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "sses"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "xes"), strings.HasSuffix(word, "ches"), strings.HasSuffix(word, "shes"):
		return word[:len(word)-2]
	case strings.HasSuffix(word, "ss"):
		return word
	case strings.HasSuffix(word, "ing") && len(word) > 5:
		return undouble(word[:len(word)-3])
	case strings.HasSuffix(word, "ied"):
		return word[:len(word)-3] + "y"
	case strings.HasSuffix(word, "ed") && len(word) > 4:
		return undouble(word[:len(word)-2])
	case strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "us") && !strings.HasSuffix(word, "is"):
		return word[:len(word)-1]
	}
	return word
}

// undouble collapses a doubled final consonant left by stripping -ing/-ed
// (stopping -> stop) and restores a trailing "e" for common stems
// (freezing -> freez -> freeze).
func undouble(stem string) string {
	if len(stem) >= 2 && stem[len(stem)-1] == stem[len(stem)-2] && !strings.ContainsRune("aeilosz", rune(stem[len(stem)-1])) {
		return stem[:len(stem)-1]
	}
	if restored, ok := eRestoredStems[stem]; ok {
		return restored
	}
	return stem
}

var irregularLemmas = map[string]string{
	"am": "be", "is": "be", "are": "be", "was": "be", "were": "be", "been": "be", "being": "be",
	"has": "have", "had": "have", "having": "have",
	"does": "do", "did": "do", "done": "do",
	"went": "go", "gone": "go", "goes": "go",
	"made": "make", "making": "make",
	"took": "take", "taken": "take",
	"said": "say", "says": "say",
	"got": "get", "gotten": "get",
	"gave": "give", "given": "give",
	"sent": "send", "paid": "pay", "kept": "keep", "left": "leave",
	"froze": "freeze", "frozen": "freeze",
	"broke": "break", "broken": "break",
	"better": "good", "best": "good",
	"worse": "bad", "worst": "bad",
	"apps": "app", "this": "this", "its": "its",
}

var eRestoredStems = map[string]string{
	"freez": "freeze", "updat": "update", "clos": "close", "us": "use",
	"mak": "make", "tak": "take", "giv": "give", "hav": "have",
	"resolv": "resolve", "improv": "improve", "sav": "save", "manag": "manage",
	"charg": "charge", "receiv": "receive", "respons": "response",
}
