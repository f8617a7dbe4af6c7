package bankpulse

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// wordTokenizer splits review text into word tokens. It understands the
// punctuation conventions of informal review prose: attached suffixes
// ("great!" -> [great, !]), prefixes ("(slow" -> [(, slow]) and English
// contractions ("don't" -> [do, n't]).
type wordTokenizer struct {
	sanitizer    *strings.Replacer
	contractions []string
	splitCases   []string
	suffixes     []string
	prefixes     []string
}

func newWordTokenizer() *wordTokenizer {
	t := &wordTokenizer{
		sanitizer:    reviewSanitizer,
		contractions: wordContractions,
		suffixes:     wordSuffixes,
		prefixes:     wordPrefixes,
	}
	t.splitCases = append(t.splitCases, t.contractions...)
	return t
}

// Tokenize splits text into word and punctuation tokens.
func (t *wordTokenizer) Tokenize(text string) []string {
	var tokens []string

	clean, white := t.sanitizer.Replace(text), false
	length := len(clean)

	start, index := 0, 0
	for index <= length {
		uc, size := utf8.DecodeRuneInString(clean[index:])
		if size == 0 {
			break
		} else if index == 0 {
			white = unicode.IsSpace(uc)
		}
		if unicode.IsSpace(uc) != white {
			if start < index {
				tokens = append(tokens, t.split(clean[start:index])...)
			}
			if uc == ' ' {
				start = index + 1
			} else {
				start = index
			}
			white = !white
		}
		index += size
	}

	if start < index {
		tokens = append(tokens, t.split(clean[start:index])...)
	}

	return tokens
}

// split peels punctuation and contractions off a whitespace-delimited span.
func (t *wordTokenizer) split(token string) []string {
	var tokens, suffs []string

	last := 0
	for token != "" && utf8.RuneCountInString(token) != last {
		last = utf8.RuneCountInString(token)
		lower := strings.ToLower(token)
		if hasAnyPrefix(token, t.prefixes) {
			// Remove prefixes -- e.g., (slow -> [(, slow].
			tokens = appendNonEmpty(tokens, string(token[0]))
			token = token[1:]
		} else if idx := hasAnyIndex(lower, t.splitCases); idx > -1 {
			// Handle contractions -- e.g., don't -> [do, n't].
			tokens = appendNonEmpty(tokens, token[:idx])
			token = token[idx:]
		} else if hasAnySuffix(token, t.suffixes) {
			// Remove suffixes -- e.g., great! -> [great, !].
			suffs = append([]string{string(token[len(token)-1])}, suffs...)
			token = token[:len(token)-1]
		} else {
			tokens = appendNonEmpty(tokens, token)
			break
		}
	}

	return append(tokens, suffs...)
}

func appendNonEmpty(toks []string, s string) []string {
	if strings.TrimSpace(s) != "" {
		toks = append(toks, s)
	}
	return toks
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func hasAnyIndex(s string, cases []string) int {
	for _, c := range cases {
		idx := strings.Index(s, c)
		if idx >= 0 && len(s) > len(c) {
			return idx
		}
	}
	return -1
}

// isPunctToken reports whether a token consists entirely of punctuation or
// symbol runes.
func isPunctToken(token string) bool {
	if token == "" {
		return true
	}
	for _, r := range token {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

var reviewSanitizer = strings.NewReplacer(
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"&rsquo;", "'")

var wordContractions = []string{"'ll", "'s", "'re", "'m", "n't", "'ve", "'d"}
var wordSuffixes = []string{",", ")", `"`, "]", "!", ";", ".", "?", ":", "'"}
var wordPrefixes = []string{"$", "(", `"`, "["}
