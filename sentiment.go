package bankpulse

import (
	"math"
	"strings"

	"go.uber.org/zap"
)

// ClassifierConfig configures the sentiment model chain.
type ClassifierConfig struct {
	// RemoteAPIKey enables the remote transformer-class model when set.
	RemoteAPIKey string
	// RemoteModelName is the remote model identifier.
	RemoteModelName string
	// MaxRemoteChars truncates text sent to the remote model. Local models
	// always see the untruncated text.
	MaxRemoteChars int
	// LexiconNeutralBand: compound scores within ±band are Neutral.
	LexiconNeutralBand float64
	// PatternNeutralBand: polarity scores within ±band are Neutral.
	PatternNeutralBand float64
	// NegationWindow is how many preceding words are checked for negation.
	NegationWindow int
}

// DefaultClassifierConfig returns the standard configuration.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		RemoteModelName:    "gpt-4o-mini",
		MaxRemoteChars:     512,
		LexiconNeutralBand: 0.05,
		PatternNeutralBand: 0.1,
		NegationWindow:     3,
	}
}

// A SentimentModel is one adapter in the classifier chain. TryClassify
// returns ok=false when the model cannot produce a result for this input;
// Available reports whether the model's backing resource initialized at
// all. Neither is an error condition.
type SentimentModel interface {
	Name() string
	Available() bool
	TryClassify(text string) (SentimentResult, bool)
}

// A Classifier maps review text to a sentiment label and confidence by
// trying an ordered chain of models and returning the first result. The
// chain is built once at construction and is immutable afterwards, so a
// Classifier is safe for concurrent use across distinct texts.
type Classifier struct {
	models []SentimentModel
	logger *zap.Logger
}

// NewClassifier builds the canonical chain: remote transformer-class model
// (when configured), lexicon scorer, pattern scorer.
func NewClassifier(config ClassifierConfig, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	lexicon := NewLexicon()
	return &Classifier{
		models: []SentimentModel{
			newRemoteModel(config, logger),
			newLexiconModel(lexicon, config),
			newPatternModel(config),
		},
		logger: logger,
	}
}

// NewClassifierWithModels builds a classifier over a caller-supplied chain.
func NewClassifierWithModels(logger *zap.Logger, models ...SentimentModel) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{models: models, logger: logger}
}

// Classify returns the first successful model result, falling back to
// (Neutral, 0.5) when every model is unavailable or declines the input.
// It never fails.
func (c *Classifier) Classify(text string) SentimentResult {
	for _, model := range c.models {
		if !model.Available() {
			continue
		}
		if result, ok := model.TryClassify(text); ok {
			return result
		}
	}
	return SentimentResult{Label: Neutral, Score: 0.5}
}

// CompareWithRating classifies agreement between a star rating and a
// predicted sentiment label. A rating of 3 is always Neutral; ratings of
// 4-5 agree with Positive and 1-2 with Negative.
func CompareWithRating(rating int, label SentimentLabel) AgreementLabel {
	switch {
	case rating == 3:
		return AgreementNeutral
	case rating >= 4 && label == Positive:
		return AgreementMatch
	case rating <= 2 && rating >= 1 && label == Negative:
		return AgreementMatch
	default:
		return AgreementMismatch
	}
}

// resultFromCompound maps a compound-style score on [-1, 1] into a labeled
// confidence: scores inside the neutral band are (Neutral, 0.5); otherwise
// the confidence is (|compound|+1)/2 for the signed label.
func resultFromCompound(compound, neutralBand float64) SentimentResult {
	switch {
	case compound >= neutralBand:
		return SentimentResult{Label: Positive, Score: (compound + 1) / 2}
	case compound <= -neutralBand:
		return SentimentResult{Label: Negative, Score: (math.Abs(compound) + 1) / 2}
	default:
		return SentimentResult{Label: Neutral, Score: 0.5}
	}
}

// lexiconModel scores text with word valences, negation flipping and
// modifier scaling, then squashes the sum into a compound score.
type lexiconModel struct {
	lexicon        *Lexicon
	tok            *wordTokenizer
	neutralBand    float64
	negationWindow int
}

func newLexiconModel(lexicon *Lexicon, config ClassifierConfig) *lexiconModel {
	window := config.NegationWindow
	if window <= 0 {
		window = 3
	}
	return &lexiconModel{
		lexicon:        lexicon,
		tok:            newWordTokenizer(),
		neutralBand:    config.LexiconNeutralBand,
		negationWindow: window,
	}
}

func (m *lexiconModel) Name() string    { return "lexicon" }
func (m *lexiconModel) Available() bool { return true }

func (m *lexiconModel) TryClassify(text string) (SentimentResult, bool) {
	return resultFromCompound(m.compound(text), m.neutralBand), true
}

// compound computes a normalized polarity on [-1, 1].
func (m *lexiconModel) compound(text string) float64 {
	tokens := m.tok.Tokenize(strings.ToLower(text))

	var sum float64
	for i, token := range tokens {
		valence := m.lexicon.Valence(token)
		if valence == 0 {
			continue
		}
		valence = m.applyModifiers(valence, tokens, i)
		if m.negated(tokens, i) {
			// Negation reverses but weakens.
			valence = -valence * 0.5
		}
		sum += valence
	}

	// Exclamation marks amplify whatever signal is present.
	if sum != 0 {
		excl := math.Min(float64(strings.Count(text, "!")), 3)
		sum += math.Copysign(excl*0.2, sum)
	}

	if sum == 0 {
		return 0
	}
	// Squash into [-1, 1]; the constant keeps short texts from saturating.
	return sum / math.Sqrt(sum*sum+15)
}

// negated checks the preceding window for a negation word with no clause
// boundary in between.
func (m *lexiconModel) negated(tokens []string, position int) bool {
	start := position - m.negationWindow
	if start < 0 {
		start = 0
	}
	for i := start; i < position; i++ {
		if m.lexicon.IsNegation(tokens[i]) || strings.Contains(tokens[i], "n't") {
			if clauseBoundaryBetween(tokens, i+1, position) {
				return false
			}
			return true
		}
	}
	return false
}

// applyModifiers scales valence by intensifiers/diminishers in the two
// preceding tokens.
func (m *lexiconModel) applyModifiers(valence float64, tokens []string, position int) float64 {
	start := position - 2
	if start < 0 {
		start = 0
	}
	for i := start; i < position; i++ {
		if factor := m.lexicon.ModifierStrength(tokens[i]); factor != 0 {
			return valence * (1 + factor)
		}
	}
	return valence
}

func clauseBoundaryBetween(tokens []string, from, to int) bool {
	for i := from; i < to; i++ {
		switch strings.ToLower(tokens[i]) {
		case ",", ";", ":", ".", "!", "?", "but", "however", "although":
			return true
		}
	}
	return false
}
