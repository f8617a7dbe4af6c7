package bankpulse

import (
	"reflect"
	"testing"
)

func termNames(scores []TermScore) []string {
	names := make([]string, 0, len(scores))
	for _, s := range scores {
		names = append(names, s.Term)
	}
	return names
}

func containsTerm(names []string, term string) bool {
	for _, n := range names {
		if n == term {
			return true
		}
	}
	return false
}

func TestExtractMinDocFreq(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig())
	corpus := []string{
		"transfer failed today",
		"transfer failed again",
		"nice interface",
	}

	names := termNames(e.Extract(corpus))
	for _, want := range []string{"transfer", "failed", "transfer failed"} {
		if !containsTerm(names, want) {
			t.Errorf("term %q (in 2 documents) missing from %v", want, names)
		}
	}
	for _, reject := range []string{"nice", "interface", "nice interface"} {
		if containsTerm(names, reject) {
			t.Errorf("term %q appears in only 1 document but was kept", reject)
		}
	}
}

func TestExtractDegenerateInputs(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig())
	if got := e.Extract(nil); len(got) != 0 {
		t.Errorf("Extract(nil) = %v, want empty", got)
	}
	if got := e.Extract([]string{"", "   "}); len(got) != 0 {
		t.Errorf("Extract(blank corpus) = %v, want empty", got)
	}
}

func TestExtractDescendingScores(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig())
	corpus := []string{
		"transfer failed transfer failed transfer",
		"transfer failed slow",
		"transfer slow",
	}
	scores := e.Extract(corpus)
	if len(scores) == 0 {
		t.Fatal("expected terms from a non-trivial corpus")
	}
	for i := 1; i < len(scores); i++ {
		if scores[i].Score > scores[i-1].Score {
			t.Errorf("scores out of order at %d: %v before %v", i, scores[i-1], scores[i])
		}
	}
}

func TestExtractMaxFeaturesCap(t *testing.T) {
	config := DefaultExtractorConfig()
	config.MaxFeatures = 3
	config.MinDocFreq = 1
	e := NewExtractor(config)

	scores := e.Extract([]string{
		"transfer failed slow crash interface design",
		"transfer failed slow crash",
	})
	if len(scores) > 3 {
		t.Errorf("got %d terms, want at most 3", len(scores))
	}
}

func TestExtractForReviewDeterministic(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig())
	text := "Transfer failed and the app is very slow"

	first := e.ExtractForReview(text, 5)
	if len(first) == 0 {
		t.Fatal("expected keywords from a non-trivial review")
	}
	if len(first) > 5 {
		t.Errorf("got %d keywords, want at most 5", len(first))
	}
	for i := 0; i < 10; i++ {
		if got := e.ExtractForReview(text, 5); !reflect.DeepEqual(got, first) {
			t.Fatalf("nondeterministic extraction: %v vs %v", got, first)
		}
	}

	seen := make(map[string]bool)
	for _, term := range first {
		if seen[term] {
			t.Errorf("duplicate keyword %q", term)
		}
		seen[term] = true
	}
}

func TestExtractForReviewEmpty(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig())
	if got := e.ExtractForReview("", 5); got != nil {
		t.Errorf("ExtractForReview(\"\") = %v, want nil", got)
	}
	if got := e.ExtractForReview("some text", 0); got != nil {
		t.Errorf("ExtractForReview(topN=0) = %v, want nil", got)
	}
}

func TestExtractForReviewLastResort(t *testing.T) {
	// Every word is a stop word, so both the weighted pass and the
	// normalized-token pass come up empty; raw tokens longer than two
	// characters are the final fallback.
	e := NewExtractor(DefaultExtractorConfig())
	got := e.ExtractForReview("and the for", 5)
	want := []string{"and", "the", "for"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractForReview fallback = %v, want %v", got, want)
	}
}

func TestExtractPerGroupNoLeakage(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig())
	reviews := []Review{
		{ID: "1", GroupID: "A", Text: "transfer delay"},
		{ID: "2", GroupID: "A", Text: "transfer delay"},
		{ID: "3", GroupID: "B", Text: "interface design"},
		{ID: "4", GroupID: "B", Text: "interface design"},
	}

	byGroup := e.ExtractPerGroup(reviews, 10)
	if len(byGroup) != 2 {
		t.Fatalf("got %d groups, want 2", len(byGroup))
	}

	a := termNames(byGroup["A"])
	b := termNames(byGroup["B"])
	if !containsTerm(a, "transfer") {
		t.Errorf("group A terms %v missing \"transfer\"", a)
	}
	if !containsTerm(b, "interface") {
		t.Errorf("group B terms %v missing \"interface\"", b)
	}
	for _, leaked := range b {
		if containsTerm(a, leaked) {
			t.Errorf("term %q leaked between groups", leaked)
		}
	}
}

func TestComplaintAndPraiseKeywords(t *testing.T) {
	e := NewExtractor(DefaultExtractorConfig())
	analyses := []ReviewAnalysis{
		{Normalized: "transfer fail", Sentiment: SentimentResult{Label: Negative}},
		{Normalized: "transfer fail", Sentiment: SentimentResult{Label: Negative}},
		{Normalized: "nice interface", Sentiment: SentimentResult{Label: Positive}},
		{Normalized: "nice interface", Sentiment: SentimentResult{Label: Positive}},
	}

	complaints := termNames(e.ComplaintKeywords(analyses, 10))
	if !containsTerm(complaints, "fail") {
		t.Errorf("complaint terms %v missing \"fail\"", complaints)
	}
	if containsTerm(complaints, "interface") {
		t.Errorf("positive-review term leaked into complaints: %v", complaints)
	}

	praises := termNames(e.PraiseKeywords(analyses, 10))
	if !containsTerm(praises, "interface") {
		t.Errorf("praise terms %v missing \"interface\"", praises)
	}
	if containsTerm(praises, "fail") {
		t.Errorf("negative-review term leaked into praises: %v", praises)
	}
}
