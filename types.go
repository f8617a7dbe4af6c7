package bankpulse

import "regexp"

// A Review is a single app-store review record. Reviews are created by an
// external loader and are never mutated by the analysis core.
type Review struct {
	ID       string   // Stable identifier, assigned by the loader
	Text     string   // Raw review text
	Rating   int      // Star rating, 1-5; 0 when unknown
	GroupID  string   // Partition key, e.g. the bank name
	Keywords []string // Optional pre-extracted keywords
}

// SentimentLabel is one of the three sentiment classes.
type SentimentLabel string

const (
	Positive SentimentLabel = "Positive"
	Negative SentimentLabel = "Negative"
	Neutral  SentimentLabel = "Neutral"
)

// SentimentResult pairs a label with a confidence score in [0,1]. The score
// is a confidence for the chosen label, not a signed polarity: 0.85 for
// Negative means "confidently negative".
type SentimentResult struct {
	Label SentimentLabel
	Score float64
}

// AgreementLabel classifies how a review's star rating lines up with its
// predicted sentiment.
type AgreementLabel string

const (
	AgreementMatch    AgreementLabel = "Match"
	AgreementMismatch AgreementLabel = "Mismatch"
	AgreementNeutral  AgreementLabel = "Neutral"
)

// A TermScore is a scored keyword or n-gram.
type TermScore struct {
	Term  string
	Score float64
}

// A ThemeDefinition is a static catalog entry: a named theme recognized by a
// keyword set and a list of patterns. Theme names are unique within a
// catalog; every theme carries at least one keyword and one pattern.
type ThemeDefinition struct {
	Name     string
	Keywords []string
	Patterns []*regexp.Regexp
}

// Severity summarizes how negatively a theme's reviews skew within a group.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// A RepresentativeReview is the evidence slice of a review carried into a
// group summary.
type RepresentativeReview struct {
	Text      string
	Rating    int
	Sentiment SentimentLabel
}

// GroupThemeSummary aggregates one theme over one group's reviews. Built
// fresh per analysis run and handed to reporting; never maintained
// incrementally.
type GroupThemeSummary struct {
	Frequency             int
	Percentage            float64
	Severity              Severity
	SupportingKeywords    []string
	RepresentativeReviews []RepresentativeReview
}

// GroupThemeAnalysis holds the per-theme summaries for a single group.
type GroupThemeAnalysis struct {
	TotalReviews int
	Themes       map[string]GroupThemeSummary
}

// ReviewAnalysis is the per-review output: the input record augmented with
// normalized text, sentiment, rating agreement, theme assignments and
// extracted keywords.
type ReviewAnalysis struct {
	Review     Review
	Normalized string
	Sentiment  SentimentResult
	Agreement  AgreementLabel
	Themes     []string
	Keywords   []string
}

// AnalysisResult is the output of a full analysis run.
type AnalysisResult struct {
	Reviews []ReviewAnalysis
	Groups  map[string]GroupThemeAnalysis
}
