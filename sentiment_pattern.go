package bankpulse

import (
	"regexp"
	"strings"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// patternModel is the simplest scorer in the chain: a list of phrase-level
// polarity patterns, averaged per sentence and then across sentences.
type patternModel struct {
	segmenter   *sentences.DefaultSentenceTokenizer
	rules       []polarityRule
	neutralBand float64
}

type polarityRule struct {
	re       *regexp.Regexp
	polarity float64
}

func newPatternModel(config ClassifierConfig) *patternModel {
	// Falls back to whole-text scoring if the segmenter's training data
	// cannot be loaded.
	segmenter, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		segmenter = nil
	}
	return &patternModel{
		segmenter:   segmenter,
		rules:       polarityRules,
		neutralBand: config.PatternNeutralBand,
	}
}

func (m *patternModel) Name() string    { return "pattern" }
func (m *patternModel) Available() bool { return true }

func (m *patternModel) TryClassify(text string) (SentimentResult, bool) {
	return resultFromCompound(m.polarity(text), m.neutralBand), true
}

// polarity averages sentence polarities over the sentences that matched at
// least one rule. Sentences with no match contribute nothing.
func (m *patternModel) polarity(text string) float64 {
	var total float64
	var matched int
	for _, sentence := range m.sentences(text) {
		score, ok := m.scoreSentence(sentence)
		if !ok {
			continue
		}
		total += score
		matched++
	}
	if matched == 0 {
		return 0
	}
	return total / float64(matched)
}

func (m *patternModel) sentences(text string) []string {
	if m.segmenter == nil {
		return []string{text}
	}
	segmented := m.segmenter.Tokenize(text)
	out := make([]string, 0, len(segmented))
	for _, s := range segmented {
		out = append(out, s.Text)
	}
	if len(out) == 0 {
		return []string{text}
	}
	return out
}

func (m *patternModel) scoreSentence(sentence string) (float64, bool) {
	lower := strings.ToLower(sentence)
	var sum float64
	var hits int
	for _, rule := range m.rules {
		if rule.re.MatchString(lower) {
			sum += rule.polarity
			hits++
		}
	}
	if hits == 0 {
		return 0, false
	}
	return sum / float64(hits), true
}

// Phrase patterns beat single words here: negated praise has to outrank the
// praise word it contains, so negation rules carry larger magnitudes.
var polarityRules = []polarityRule{
	{regexp.MustCompile(`\b(not|never|no longer) (work|works|working)\b`), -0.8},
	{regexp.MustCompile(`\bdoes ?n[o']t (work|open|load|respond)\b`), -0.8},
	{regexp.MustCompile(`\b(not|never) (good|great|happy|satisfied)\b`), -0.6},
	{regexp.MustCompile(`\bwaste of (time|money)\b`), -0.8},
	{regexp.MustCompile(`\bstopped working\b`), -0.7},
	{regexp.MustCompile(`\bkeeps? (crashing|freezing|logging (me )?out)\b`), -0.8},
	{regexp.MustCompile(`\b(crash|crashes|crashed|crashing)\b`), -0.7},
	{regexp.MustCompile(`\b(freeze|freezes|frozen|freezing|hangs?)\b`), -0.6},
	{regexp.MustCompile(`\b(terrible|horrible|awful|pathetic|useless|worst)\b`), -0.85},
	{regexp.MustCompile(`\b(scam|fraud|stole|stolen)\b`), -0.9},
	{regexp.MustCompile(`\b(bad|poor|slow|buggy|broken|annoying|frustrating|disappointing)\b`), -0.55},
	{regexp.MustCompile(`\b(error|failed|failure|problem|issue)s?\b`), -0.45},
	{regexp.MustCompile(`\bcan ?n[o']t (login|log ?in|transfer|access|pay)\b`), -0.6},
	{regexp.MustCompile(`\buninstall(ed|ing)?\b`), -0.6},

	{regexp.MustCompile(`\beasy to use\b`), 0.7},
	{regexp.MustCompile(`\bworks? (great|well|perfectly|fine)\b`), 0.7},
	{regexp.MustCompile(`\bhighly recommend(ed)?\b`), 0.8},
	{regexp.MustCompile(`\b(excellent|amazing|wonderful|fantastic|outstanding|perfect|awesome)\b`), 0.85},
	{regexp.MustCompile(`\b(love|loving|loved)\b`), 0.7},
	{regexp.MustCompile(`\b(good|great|nice|helpful|useful|smooth|convenient|reliable)\b`), 0.55},
	{regexp.MustCompile(`\b(fast|quick|simple|intuitive|responsive)\b`), 0.45},
	{regexp.MustCompile(`\bthank(s| you)\b`), 0.5},
	{regexp.MustCompile(`\bkeep (it )?up\b`), 0.6},
	{regexp.MustCompile(`\bwell done\b`), 0.7},
}
