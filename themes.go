package bankpulse

import (
	"regexp"
	"sort"
	"strings"
)

// ThemeConfig holds the match weights and the assignment cutoff. The values
// are deliberately configuration, not literals: the defaults come from the
// reference tuning and carry no deeper derivation.
type ThemeConfig struct {
	KeywordWeight   int // Points per theme keyword found in the text
	PatternWeight   int // Points per matching pattern
	AssignThreshold int // Minimum score for a theme to be assigned
}

// DefaultThemeConfig returns the standard weights: 1 per keyword, 2 per
// pattern, assignment at 2.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		KeywordWeight:   1,
		PatternWeight:   2,
		AssignThreshold: 2,
	}
}

// SeverityConfig holds the fraction cutoffs for severity grading.
type SeverityConfig struct {
	High   float64 // Either fraction at or above this is High
	Medium float64 // Either fraction at or above this is Medium
}

// DefaultSeverityConfig returns the standard 70%/40% cutoffs.
func DefaultSeverityConfig() SeverityConfig {
	return SeverityConfig{High: 0.70, Medium: 0.40}
}

// A ThemeClassifier assigns reviews to themes from a fixed catalog and
// aggregates per-group theme statistics. The catalog is immutable after
// construction; the classifier is safe for concurrent use.
type ThemeClassifier struct {
	catalog  []ThemeDefinition
	config   ThemeConfig
	severity SeverityConfig
}

// NewThemeClassifier creates a classifier over the given catalog. Catalog
// declaration order is significant: it breaks ties in the fallback
// assignment and in top-theme selection.
func NewThemeClassifier(catalog []ThemeDefinition, config ThemeConfig, severity SeverityConfig) *ThemeClassifier {
	return &ThemeClassifier{
		catalog:  catalog,
		config:   config,
		severity: severity,
	}
}

// Catalog returns the theme definitions in declaration order.
func (tc *ThemeClassifier) Catalog() []ThemeDefinition {
	return tc.catalog
}

// AssignThemes scores the review text against every theme and returns the
// assigned theme names in catalog order.
//
// Scoring: each theme keyword occurring as a substring of the lowercased
// text adds KeywordWeight; each matching pattern adds PatternWeight; each
// supplied keyword that substring-matches a theme keyword in either
// direction adds KeywordWeight (once per matching pair). Themes scoring at
// least AssignThreshold are assigned. If none reach the threshold, the
// single highest-scoring theme is assigned, provided its score is positive;
// ties go to the earliest-declared theme. Blank text yields no themes.
func (tc *ThemeClassifier) AssignThemes(text string, keywords []string) []string {
	if strings.TrimSpace(text) == "" || len(tc.catalog) == 0 {
		return nil
	}

	lower := strings.ToLower(text)
	scores := make([]int, len(tc.catalog))
	for i, theme := range tc.catalog {
		score := 0
		for _, keyword := range theme.Keywords {
			if strings.Contains(lower, keyword) {
				score += tc.config.KeywordWeight
			}
		}
		for _, pattern := range theme.Patterns {
			if pattern.MatchString(lower) {
				score += tc.config.PatternWeight
			}
		}
		for _, supplied := range keywords {
			suppliedLower := strings.ToLower(strings.TrimSpace(supplied))
			if suppliedLower == "" {
				continue
			}
			for _, keyword := range theme.Keywords {
				if strings.Contains(suppliedLower, keyword) || strings.Contains(keyword, suppliedLower) {
					score += tc.config.KeywordWeight
				}
			}
		}
		scores[i] = score
	}

	var assigned []string
	for i, score := range scores {
		if score >= tc.config.AssignThreshold {
			assigned = append(assigned, tc.catalog[i].Name)
		}
	}
	if assigned == nil {
		best, bestScore := -1, 0
		for i, score := range scores {
			if score > bestScore {
				best, bestScore = i, score
			}
		}
		if best >= 0 {
			assigned = []string{tc.catalog[best].Name}
		}
	}
	return assigned
}

// topThemesPerGroup caps how many themes a group summary reports.
const topThemesPerGroup = 5

// SummarizeGroups reduces analyzed reviews into per-group, per-theme
// summaries. Only the top themes by frequency survive (ties broken by
// catalog order); themes nobody mentioned are dropped.
func (tc *ThemeClassifier) SummarizeGroups(analyses []ReviewAnalysis) map[string]GroupThemeAnalysis {
	byGroup := make(map[string][]ReviewAnalysis)
	var order []string
	for _, a := range analyses {
		if _, ok := byGroup[a.Review.GroupID]; !ok {
			order = append(order, a.Review.GroupID)
		}
		byGroup[a.Review.GroupID] = append(byGroup[a.Review.GroupID], a)
	}

	out := make(map[string]GroupThemeAnalysis, len(order))
	for _, group := range order {
		out[group] = tc.summarizeGroup(byGroup[group])
	}
	return out
}

func (tc *ThemeClassifier) summarizeGroup(analyses []ReviewAnalysis) GroupThemeAnalysis {
	themeIndex := make(map[string]int, len(tc.catalog))
	for i, theme := range tc.catalog {
		themeIndex[theme.Name] = i
	}

	counts := make([]int, len(tc.catalog))
	members := make([][]ReviewAnalysis, len(tc.catalog))
	for _, a := range analyses {
		for _, name := range a.Themes {
			if i, ok := themeIndex[name]; ok {
				counts[i]++
				members[i] = append(members[i], a)
			}
		}
	}

	ranked := make([]int, 0, len(tc.catalog))
	for i, count := range counts {
		if count > 0 {
			ranked = append(ranked, i)
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return counts[ranked[a]] > counts[ranked[b]]
	})
	if len(ranked) > topThemesPerGroup {
		ranked = ranked[:topThemesPerGroup]
	}

	themes := make(map[string]GroupThemeSummary, len(ranked))
	for _, i := range ranked {
		theme := tc.catalog[i]
		themes[theme.Name] = GroupThemeSummary{
			Frequency:             counts[i],
			Percentage:            float64(counts[i]) / float64(len(analyses)) * 100,
			Severity:              tc.gradeSeverity(members[i]),
			SupportingKeywords:    supportingKeywords(theme, members[i]),
			RepresentativeReviews: representativeReviews(members[i]),
		}
	}

	return GroupThemeAnalysis{
		TotalReviews: len(analyses),
		Themes:       themes,
	}
}

// gradeSeverity grades a theme by how negatively its reviews skew: High
// when at least the High fraction of them are Negative-labeled or rated at
// most 2 stars, Medium at the Medium fraction, otherwise Low. Reviews with
// no valid rating are left out of the low-rating fraction entirely.
func (tc *ThemeClassifier) gradeSeverity(members []ReviewAnalysis) Severity {
	if len(members) == 0 {
		return SeverityLow
	}

	negative := 0
	rated, lowRated := 0, 0
	for _, a := range members {
		if a.Sentiment.Label == Negative {
			negative++
		}
		if a.Review.Rating >= 1 && a.Review.Rating <= 5 {
			rated++
			if a.Review.Rating <= 2 {
				lowRated++
			}
		}
	}

	negativeFraction := float64(negative) / float64(len(members))
	var lowRatingFraction float64
	if rated > 0 {
		lowRatingFraction = float64(lowRated) / float64(rated)
	}

	switch {
	case negativeFraction >= tc.severity.High || lowRatingFraction >= tc.severity.High:
		return SeverityHigh
	case negativeFraction >= tc.severity.Medium || lowRatingFraction >= tc.severity.Medium:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// supportingKeywords collects the first distinct theme keywords found in
// the raw text of the theme's reviews, in first-seen order, capped at 10.
func supportingKeywords(theme ThemeDefinition, members []ReviewAnalysis) []string {
	const limit = 10
	seen := make(map[string]bool, limit)
	var found []string
	for _, a := range members {
		text := strings.ToLower(a.Review.Text)
		for _, keyword := range theme.Keywords {
			if !seen[keyword] && strings.Contains(text, keyword) {
				seen[keyword] = true
				found = append(found, keyword)
				if len(found) == limit {
					return found
				}
			}
		}
	}
	return found
}

// representativeReviews carries the first reviews assigned to the theme, in
// input order, capped at 5.
func representativeReviews(members []ReviewAnalysis) []RepresentativeReview {
	const limit = 5
	out := make([]RepresentativeReview, 0, limit)
	for _, a := range members {
		out = append(out, RepresentativeReview{
			Text:      a.Review.Text,
			Rating:    a.Review.Rating,
			Sentiment: a.Sentiment.Label,
		})
		if len(out) == limit {
			break
		}
	}
	return out
}

// DefaultThemeCatalog returns the eight-theme banking-app catalog.
func DefaultThemeCatalog() []ThemeDefinition {
	return []ThemeDefinition{
		{
			Name: "Account Access Issues",
			Keywords: []string{"login", "password", "otp", "verification", "access", "unlock", "locked",
				"authenticate", "security", "key", "code", "branch", "verify", "enter"},
			Patterns: compilePatterns(`login`, `password`, `otp`, `verification`, `access`, `locked`),
		},
		{
			Name: "Transaction Performance",
			Keywords: []string{"transaction", "transfer", "payment", "slow", "failed", "delay", "timeout",
				"process", "complete", "pending", "stuck", "wait", "speed", "fast"},
			Patterns: compilePatterns(`transfer`, `payment`, `slow`, `failed`, `delay`, `timeout`),
		},
		{
			Name: "Stability & Reliability",
			Keywords: []string{"crash", "bug", "freeze", "error", "close", "stop", "work", "broken",
				"issue", "problem", "fix", "update", "version", "hang"},
			Patterns: compilePatterns(`crash`, `bug`, `freeze`, `error`, `broken`, `hang`),
		},
		{
			Name: "User Interface & Experience",
			Keywords: []string{"interface", "design", "layout", "navigation", "easy", "simple", "user",
				"experience", "ui", "ux", "confusing", "difficult", "hard", "use"},
			Patterns: compilePatterns(`interface`, `design`, `navigation`, `easy`, `simple`, `confusing`),
		},
		{
			Name: "Customer Support",
			Keywords: []string{"support", "help", "service", "customer", "response", "contact", "call",
				"assist", "resolve", "unresolved", "complaint", "feedback"},
			Patterns: compilePatterns(`support`, `help`, `service`, `response`, `contact`),
		},
		{
			Name: "Feature Requests",
			Keywords: []string{"feature", "add", "need", "want", "missing", "request", "improve",
				"enhancement", "suggestion", "option", "functionality", "wallet"},
			Patterns: compilePatterns(`feature`, `add`, `need`, `want`, `missing`, `improve`),
		},
		{
			Name: "Security Concerns",
			Keywords: []string{"security", "safe", "secure", "privacy", "data", "protection", "hack",
				"fraud", "risk", "trust"},
			Patterns: compilePatterns(`security`, `safe`, `secure`, `privacy`),
		},
		{
			Name: "Network & Connectivity",
			Keywords: []string{"network", "connection", "internet", "wifi", "data", "connect", "online",
				"offline", "signal", "loading"},
			Patterns: compilePatterns(`network`, `connection`, `internet`, `wifi`, `loading`),
		},
	}
}

func compilePatterns(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		patterns = append(patterns, regexp.MustCompile(`(?i)`+expr))
	}
	return patterns
}
