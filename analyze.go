package bankpulse

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// AnalyzerConfig bundles the configuration of every pipeline stage.
type AnalyzerConfig struct {
	Normalizer NormalizerConfig
	Classifier ClassifierConfig
	Extractor  ExtractorConfig
	Themes     ThemeConfig
	Severity   SeverityConfig

	// Workers bounds how many reviews are analyzed concurrently.
	Workers int
	// ReviewKeywords is how many keywords to extract per review when the
	// input carries none.
	ReviewKeywords int
}

// DefaultAnalyzerConfig returns the standard configuration.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		Normalizer:     DefaultNormalizerConfig(),
		Classifier:     DefaultClassifierConfig(),
		Extractor:      DefaultExtractorConfig(),
		Themes:         DefaultThemeConfig(),
		Severity:       DefaultSeverityConfig(),
		Workers:        4,
		ReviewKeywords: 10,
	}
}

// An Option adjusts analyzer construction.
type Option func(*Analyzer)

// WithLogger attaches a logger; the default is a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithCatalog replaces the default theme catalog.
func WithCatalog(catalog []ThemeDefinition) Option {
	return func(a *Analyzer) {
		a.catalog = catalog
	}
}

// WithSentimentModels replaces the classifier chain, mainly for tests.
func WithSentimentModels(models ...SentimentModel) Option {
	return func(a *Analyzer) {
		a.models = models
	}
}

// An Analyzer runs the full per-review pipeline (normalize, sentiment,
// keywords, themes) and the per-group reduction. All stages are built once
// at construction; an Analyzer is safe for concurrent use.
type Analyzer struct {
	normalizer *Normalizer
	classifier *Classifier
	extractor  *Extractor
	themes     *ThemeClassifier

	catalog []ThemeDefinition
	models  []SentimentModel
	workers int
	topN    int
	logger  *zap.Logger
}

// NewAnalyzer creates an analyzer.
func NewAnalyzer(config AnalyzerConfig, opts ...Option) *Analyzer {
	a := &Analyzer{
		catalog: DefaultThemeCatalog(),
		workers: config.Workers,
		topN:    config.ReviewKeywords,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.workers <= 0 {
		a.workers = 1
	}
	if a.topN <= 0 {
		a.topN = 10
	}

	a.normalizer = NewNormalizer(config.Normalizer)
	if a.models != nil {
		a.classifier = NewClassifierWithModels(a.logger, a.models...)
	} else {
		a.classifier = NewClassifier(config.Classifier, a.logger)
	}
	a.extractor = NewExtractor(config.Extractor)
	a.themes = NewThemeClassifier(a.catalog, config.Themes, config.Severity)
	return a
}

// Extractor exposes the keyword extractor for corpus-level queries
// (per-group, complaint and praise keywords).
func (a *Analyzer) Extractor() *Extractor { return a.extractor }

// Themes exposes the theme classifier.
func (a *Analyzer) Themes() *ThemeClassifier { return a.themes }

// Analyze runs the pipeline over all reviews and aggregates per group.
// Reviews are independent units of work and are processed concurrently up
// to the configured worker bound; output order always matches input order.
// The only error Analyze can return is the context's.
func (a *Analyzer) Analyze(ctx context.Context, reviews []Review) (*AnalysisResult, error) {
	results := make([]ReviewAnalysis, len(reviews))

	sem := semaphore.NewWeighted(int64(a.workers))
	var wg sync.WaitGroup
	for i := range reviews {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = a.analyzeOne(reviews[i])
		}(i)
	}
	wg.Wait()

	a.logger.Info("analysis complete",
		zap.Int("reviews", len(results)))

	return &AnalysisResult{
		Reviews: results,
		Groups:  a.themes.SummarizeGroups(results),
	}, nil
}

// analyzeOne is the per-review unit of work. It never fails: malformed
// input degrades to empty or neutral outputs.
func (a *Analyzer) analyzeOne(review Review) ReviewAnalysis {
	normalized := a.normalizer.Normalize(review.Text)
	sentiment := a.classifier.Classify(review.Text)

	keywords := review.Keywords
	if len(keywords) == 0 {
		keywords = a.extractor.ExtractForReview(normalized, a.topN)
	}

	return ReviewAnalysis{
		Review:     review,
		Normalized: normalized,
		Sentiment:  sentiment,
		Agreement:  CompareWithRating(review.Rating, sentiment.Label),
		Themes:     a.themes.AssignThemes(review.Text, keywords),
		Keywords:   keywords,
	}
}
