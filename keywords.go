package bankpulse

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ExtractorConfig configures keyword extraction.
type ExtractorConfig struct {
	NgramMin    int // Smallest n-gram length
	NgramMax    int // Largest n-gram length
	MaxFeatures int // Vocabulary cap; 0 means unlimited
	MinDocFreq  int // Minimum number of documents a term must appear in
}

// DefaultExtractorConfig returns the standard configuration: unigrams
// through trigrams, vocabulary capped at 100, terms in at least 2 documents.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		NgramMin:    1,
		NgramMax:    3,
		MaxFeatures: 100,
		MinDocFreq:  2,
	}
}

// An Extractor computes IDF-weighted term-frequency scores over a corpus of
// review texts. It never fails: any degenerate input produces an empty
// result.
type Extractor struct {
	config     ExtractorConfig
	tok        *wordTokenizer
	normalizer *Normalizer
}

// NewExtractor creates an extractor.
func NewExtractor(config ExtractorConfig) *Extractor {
	if config.NgramMin <= 0 {
		config.NgramMin = 1
	}
	if config.NgramMax < config.NgramMin {
		config.NgramMax = config.NgramMin
	}
	if config.MinDocFreq <= 0 {
		config.MinDocFreq = 1
	}
	return &Extractor{
		config:     config,
		tok:        newWordTokenizer(),
		normalizer: NewNormalizer(DefaultNormalizerConfig()),
	}
}

// Extract scores every qualifying n-gram in the corpus and returns terms in
// descending score order. The score of a term is the corpus mean of its
// per-document IDF-weighted, length-normalized frequency.
func (e *Extractor) Extract(texts []string) []TermScore {
	return e.extract(texts, e.config)
}

func (e *Extractor) extract(texts []string, config ExtractorConfig) []TermScore {
	docs := make([][]string, 0, len(texts))
	for _, text := range texts {
		docs = append(docs, e.terms(text, config))
	}
	if len(docs) == 0 {
		return nil
	}

	// Document frequency per term.
	df := make(map[string]int)
	corpusCount := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, term := range doc {
			corpusCount[term]++
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	vocab := make([]string, 0, len(df))
	for term, n := range df {
		if n >= config.MinDocFreq {
			vocab = append(vocab, term)
		}
	}
	if len(vocab) == 0 {
		return nil
	}

	// Cap the vocabulary by corpus frequency, ties alphabetical.
	sort.Slice(vocab, func(i, j int) bool {
		if corpusCount[vocab[i]] != corpusCount[vocab[j]] {
			return corpusCount[vocab[i]] > corpusCount[vocab[j]]
		}
		return vocab[i] < vocab[j]
	})
	if config.MaxFeatures > 0 && len(vocab) > config.MaxFeatures {
		vocab = vocab[:config.MaxFeatures]
	}

	index := make(map[string]int, len(vocab))
	for i, term := range vocab {
		index[term] = i
	}

	// Smoothed IDF, as if one extra document contained every term.
	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i, term := range vocab {
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	// Per-document weighted vectors, L2-normalized, accumulated per term.
	columns := make([][]float64, len(vocab))
	for i := range columns {
		columns[i] = make([]float64, len(docs))
	}
	row := make([]float64, len(vocab))
	for d, doc := range docs {
		for i := range row {
			row[i] = 0
		}
		for _, term := range doc {
			if i, ok := index[term]; ok {
				row[i] += idf[i]
			}
		}
		if norm := floats.Norm(row, 2); norm > 0 {
			floats.Scale(1/norm, row)
		}
		for i, v := range row {
			columns[i][d] = v
		}
	}

	scores := make([]TermScore, len(vocab))
	for i, term := range vocab {
		scores[i] = TermScore{Term: term, Score: stat.Mean(columns[i], nil)}
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Term < scores[j].Term
	})
	return scores
}

// terms tokenizes one document into stop-word-free n-grams.
func (e *Extractor) terms(text string, config ExtractorConfig) []string {
	var words []string
	for _, token := range e.tok.Tokenize(strings.ToLower(text)) {
		if isPunctToken(token) || isStopWord(token) {
			continue
		}
		words = append(words, token)
	}

	var out []string
	for n := config.NgramMin; n <= config.NgramMax; n++ {
		for i := 0; i+n <= len(words); i++ {
			out = append(out, strings.Join(words[i:i+n], " "))
		}
	}
	return out
}

// ExtractForReview extracts up to topN keywords from a single review. The
// TF-IDF machinery runs over a one-document corpus; when it produces
// nothing, lemmatized tokens are used, and as a last resort any
// whitespace-split token longer than two characters. Output is
// order-preserving deduplicated, so repeated calls on the same input return
// the same sequence.
func (e *Extractor) ExtractForReview(text string, topN int) []string {
	if strings.TrimSpace(text) == "" || topN <= 0 {
		return nil
	}

	single := e.config
	single.MinDocFreq = 1
	single.MaxFeatures = topN

	var terms []string
	for _, ts := range e.extract([]string{text}, single) {
		terms = append(terms, ts.Term)
	}

	if len(terms) == 0 {
		terms = e.normalizer.Tokens(text)
	}
	if len(terms) == 0 {
		for _, w := range strings.Fields(strings.ToLower(text)) {
			if len(w) > 2 {
				terms = append(terms, w)
			}
		}
	}

	return dedupeOrdered(terms, topN)
}

// ExtractPerGroup partitions reviews by group and runs corpus extraction
// independently per group over normalized text. Vocabularies never leak
// across groups.
func (e *Extractor) ExtractPerGroup(reviews []Review, topN int) map[string][]TermScore {
	grouped := make(map[string][]string)
	for _, r := range reviews {
		grouped[r.GroupID] = append(grouped[r.GroupID], e.normalizer.Normalize(r.Text))
	}

	out := make(map[string][]TermScore, len(grouped))
	for group, texts := range grouped {
		scores := e.Extract(texts)
		if topN > 0 && len(scores) > topN {
			scores = scores[:topN]
		}
		out[group] = scores
	}
	return out
}

// ExtractForLabel runs corpus extraction over the reviews carrying the
// given sentiment label.
func (e *Extractor) ExtractForLabel(analyses []ReviewAnalysis, label SentimentLabel, topN int) []TermScore {
	var texts []string
	for _, a := range analyses {
		if a.Sentiment.Label == label {
			texts = append(texts, a.Normalized)
		}
	}
	scores := e.Extract(texts)
	if topN > 0 && len(scores) > topN {
		scores = scores[:topN]
	}
	return scores
}

// ComplaintKeywords returns the top terms from Negative reviews.
func (e *Extractor) ComplaintKeywords(analyses []ReviewAnalysis, topN int) []TermScore {
	return e.ExtractForLabel(analyses, Negative, topN)
}

// PraiseKeywords returns the top terms from Positive reviews.
func (e *Extractor) PraiseKeywords(analyses []ReviewAnalysis, topN int) []TermScore {
	return e.ExtractForLabel(analyses, Positive, topN)
}

func dedupeOrdered(terms []string, limit int) []string {
	seen := make(map[string]bool, len(terms))
	var out []string
	for _, term := range terms {
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		out = append(out, term)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
