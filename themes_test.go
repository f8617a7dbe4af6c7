package bankpulse

import (
	"fmt"
	"reflect"
	"testing"
)

func defaultThemeClassifier() *ThemeClassifier {
	return NewThemeClassifier(DefaultThemeCatalog(), DefaultThemeConfig(), DefaultSeverityConfig())
}

func TestAssignThemesStability(t *testing.T) {
	tc := defaultThemeClassifier()
	got := tc.AssignThemes("the app keeps crashing and freezing, very buggy", nil)
	if !containsTerm(got, "Stability & Reliability") {
		t.Errorf("AssignThemes = %v, want Stability & Reliability", got)
	}
}

func TestAssignThemesTable(t *testing.T) {
	tests := []struct {
		text     string
		expected string
		desc     string
	}{
		{"cannot login, the otp never arrives", "Account Access Issues", "Access problem"},
		{"transfer failed and the payment is still pending", "Transaction Performance", "Transfer problem"},
		{"customer support never responds to my complaint", "Customer Support", "Support problem"},
		{"please add a wallet feature, it is missing", "Feature Requests", "Feature ask"},
		{"is my data safe? worried about privacy and security", "Security Concerns", "Security worry"},
		{"no network connection, stuck loading forever", "Network & Connectivity", "Connectivity problem"},
	}

	tc := defaultThemeClassifier()
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := tc.AssignThemes(tt.text, nil)
			if !containsTerm(got, tt.expected) {
				t.Errorf("AssignThemes(%q) = %v, want %s", tt.text, got, tt.expected)
			}
		})
	}
}

func TestAssignThemesBlankText(t *testing.T) {
	tc := defaultThemeClassifier()
	if got := tc.AssignThemes("", nil); got != nil {
		t.Errorf("AssignThemes(\"\") = %v, want nil", got)
	}
	if got := tc.AssignThemes("   \t ", []string{"crash"}); got != nil {
		t.Errorf("AssignThemes(blank) = %v, want nil", got)
	}
}

func TestAssignThemesNoMatch(t *testing.T) {
	tc := defaultThemeClassifier()
	if got := tc.AssignThemes("zzz qqq xxyy", nil); got != nil {
		t.Errorf("AssignThemes on unmatched text = %v, want nil", got)
	}
}

func TestAssignThemesFallbackSingleBest(t *testing.T) {
	// "unlock" hits exactly one theme keyword and no pattern, so no theme
	// reaches the threshold; the single best scorer is still assigned.
	tc := defaultThemeClassifier()
	got := tc.AssignThemes("unlock", nil)
	want := []string{"Account Access Issues"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AssignThemes(\"unlock\") = %v, want %v", got, want)
	}
}

func TestAssignThemesSuppliedKeywords(t *testing.T) {
	// The text alone scores zero; the supplied keywords carry the theme
	// over the threshold.
	tc := defaultThemeClassifier()
	got := tc.AssignThemes("zzz qqq", []string{"crash", "freeze"})
	want := []string{"Stability & Reliability"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AssignThemes with supplied keywords = %v, want %v", got, want)
	}
}

func TestAssignThemesTieGoesToCatalogOrder(t *testing.T) {
	catalog := []ThemeDefinition{
		{Name: "First", Keywords: []string{"shared"}},
		{Name: "Second", Keywords: []string{"shared"}},
	}
	tc := NewThemeClassifier(catalog, DefaultThemeConfig(), DefaultSeverityConfig())

	for i := 0; i < 50; i++ {
		got := tc.AssignThemes("shared", nil)
		if !reflect.DeepEqual(got, []string{"First"}) {
			t.Fatalf("tie broken inconsistently on run %d: %v", i, got)
		}
	}
}

func TestAssignThemesMonotonic(t *testing.T) {
	catalog := []ThemeDefinition{
		{Name: "Alpha", Keywords: []string{"alpha"}, Patterns: compilePatterns(`beta`)},
		{Name: "Delta", Keywords: []string{"delta", "epsilon"}},
	}
	tc := NewThemeClassifier(catalog, DefaultThemeConfig(), DefaultSeverityConfig())

	base := tc.AssignThemes("delta epsilon", nil)
	extended := tc.AssignThemes("delta epsilon alpha beta", nil)

	for _, name := range base {
		if !containsTerm(extended, name) {
			t.Errorf("adding matches dropped theme %q: %v -> %v", name, base, extended)
		}
	}
	if !containsTerm(extended, "Alpha") {
		t.Errorf("extended text should add Alpha: %v", extended)
	}
}

func TestGradeSeverityRatingBoundary(t *testing.T) {
	tc := defaultThemeClassifier()

	build := func(lowRated int) []ReviewAnalysis {
		members := make([]ReviewAnalysis, 0, 1000)
		for i := 0; i < 1000; i++ {
			rating := 5
			if i < lowRated {
				rating = 1
			}
			members = append(members, ReviewAnalysis{
				Review:    Review{ID: fmt.Sprintf("r%d", i), Rating: rating},
				Sentiment: SentimentResult{Label: Neutral},
			})
		}
		return members
	}

	if got := tc.gradeSeverity(build(700)); got != SeverityHigh {
		t.Errorf("700/1000 low-rated = %s, want High", got)
	}
	if got := tc.gradeSeverity(build(699)); got != SeverityMedium {
		t.Errorf("699/1000 low-rated = %s, want Medium", got)
	}
	if got := tc.gradeSeverity(build(399)); got != SeverityLow {
		t.Errorf("399/1000 low-rated = %s, want Low", got)
	}
}

func TestGradeSeverityNegativeFraction(t *testing.T) {
	tc := defaultThemeClassifier()

	// No valid ratings at all; only the sentiment fraction can grade.
	build := func(negative, total int) []ReviewAnalysis {
		members := make([]ReviewAnalysis, 0, total)
		for i := 0; i < total; i++ {
			label := Positive
			if i < negative {
				label = Negative
			}
			members = append(members, ReviewAnalysis{
				Review:    Review{Rating: 0},
				Sentiment: SentimentResult{Label: label},
			})
		}
		return members
	}

	if got := tc.gradeSeverity(build(7, 10)); got != SeverityHigh {
		t.Errorf("7/10 negative = %s, want High", got)
	}
	if got := tc.gradeSeverity(build(4, 10)); got != SeverityMedium {
		t.Errorf("4/10 negative = %s, want Medium", got)
	}
	if got := tc.gradeSeverity(build(3, 10)); got != SeverityLow {
		t.Errorf("3/10 negative = %s, want Low", got)
	}
	if got := tc.gradeSeverity(nil); got != SeverityLow {
		t.Errorf("no members = %s, want Low", got)
	}
}

func TestSummarizeGroupsCounts(t *testing.T) {
	tc := defaultThemeClassifier()
	analyses := []ReviewAnalysis{
		{
			Review:    Review{ID: "1", GroupID: "CBE", Text: "the app keeps crashing", Rating: 1},
			Sentiment: SentimentResult{Label: Negative},
			Themes:    []string{"Stability & Reliability"},
		},
		{
			Review:    Review{ID: "2", GroupID: "CBE", Text: "another crash today", Rating: 2},
			Sentiment: SentimentResult{Label: Negative},
			Themes:    []string{"Stability & Reliability"},
		},
		{
			Review:    Review{ID: "3", GroupID: "CBE", Text: "cannot login at all", Rating: 1},
			Sentiment: SentimentResult{Label: Negative},
			Themes:    []string{"Account Access Issues"},
		},
		{
			Review:    Review{ID: "4", GroupID: "Dashen", Text: "smooth and easy to use", Rating: 5},
			Sentiment: SentimentResult{Label: Positive},
			Themes:    []string{"User Interface & Experience"},
		},
	}

	groups := tc.SummarizeGroups(analyses)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	cbe := groups["CBE"]
	if cbe.TotalReviews != 3 {
		t.Errorf("CBE total = %d, want 3", cbe.TotalReviews)
	}

	stability, ok := cbe.Themes["Stability & Reliability"]
	if !ok {
		t.Fatalf("CBE themes missing Stability & Reliability: %v", cbe.Themes)
	}
	if stability.Frequency != 2 {
		t.Errorf("stability frequency = %d, want 2", stability.Frequency)
	}
	if want := 2.0 / 3.0 * 100; stability.Percentage != want {
		t.Errorf("stability percentage = %v, want %v", stability.Percentage, want)
	}
	if stability.Severity != SeverityHigh {
		t.Errorf("stability severity = %s, want High (all members negative)", stability.Severity)
	}
	if !containsTerm(stability.SupportingKeywords, "crash") {
		t.Errorf("supporting keywords %v missing \"crash\"", stability.SupportingKeywords)
	}
	if len(stability.RepresentativeReviews) != 2 {
		t.Errorf("got %d representative reviews, want 2", len(stability.RepresentativeReviews))
	}

	dashen := groups["Dashen"]
	ui, ok := dashen.Themes["User Interface & Experience"]
	if !ok {
		t.Fatalf("Dashen themes missing UI theme: %v", dashen.Themes)
	}
	if ui.Severity != SeverityLow {
		t.Errorf("UI severity = %s, want Low", ui.Severity)
	}
}

func TestSummarizeGroupsTopFive(t *testing.T) {
	catalog := make([]ThemeDefinition, 7)
	for i := range catalog {
		catalog[i] = ThemeDefinition{Name: fmt.Sprintf("T%d", i)}
	}
	tc := NewThemeClassifier(catalog, DefaultThemeConfig(), DefaultSeverityConfig())

	// T0 mentioned 7 times, T1 6 times, ..., T6 once.
	var analyses []ReviewAnalysis
	id := 0
	for i := range catalog {
		for n := 0; n < 7-i; n++ {
			analyses = append(analyses, ReviewAnalysis{
				Review: Review{ID: fmt.Sprintf("r%d", id), GroupID: "g", Text: "x"},
				Themes: []string{catalog[i].Name},
			})
			id++
		}
	}

	group := tc.SummarizeGroups(analyses)["g"]
	if len(group.Themes) != 5 {
		t.Fatalf("got %d themes, want 5", len(group.Themes))
	}
	for _, dropped := range []string{"T5", "T6"} {
		if _, ok := group.Themes[dropped]; ok {
			t.Errorf("low-frequency theme %s should have been trimmed", dropped)
		}
	}
}

func TestSummarizeGroupsTieTrimsByCatalogOrder(t *testing.T) {
	catalog := make([]ThemeDefinition, 6)
	for i := range catalog {
		catalog[i] = ThemeDefinition{Name: fmt.Sprintf("T%d", i)}
	}
	tc := NewThemeClassifier(catalog, DefaultThemeConfig(), DefaultSeverityConfig())

	// Every theme mentioned exactly once: the cutoff tie resolves in
	// catalog order, so the last-declared theme is the one trimmed.
	var analyses []ReviewAnalysis
	for i := range catalog {
		analyses = append(analyses, ReviewAnalysis{
			Review: Review{ID: fmt.Sprintf("r%d", i), GroupID: "g", Text: "x"},
			Themes: []string{catalog[i].Name},
		})
	}

	group := tc.SummarizeGroups(analyses)["g"]
	if len(group.Themes) != 5 {
		t.Fatalf("got %d themes, want 5", len(group.Themes))
	}
	if _, ok := group.Themes["T5"]; ok {
		t.Error("T5 kept despite being last in catalog order at the tie")
	}
	if _, ok := group.Themes["T0"]; !ok {
		t.Error("T0 should survive the tie")
	}
}

func TestSupportingKeywordsCap(t *testing.T) {
	keywords := make([]string, 12)
	for i := range keywords {
		keywords[i] = fmt.Sprintf("kw%02d", i)
	}
	theme := ThemeDefinition{Name: "Big", Keywords: keywords}

	text := ""
	for _, k := range keywords {
		text += k + " "
	}
	members := []ReviewAnalysis{{Review: Review{Text: text}}}

	found := supportingKeywords(theme, members)
	if len(found) != 10 {
		t.Fatalf("got %d supporting keywords, want 10", len(found))
	}
	if !reflect.DeepEqual(found, keywords[:10]) {
		t.Errorf("supporting keywords = %v, want the first ten in order", found)
	}
}

func TestRepresentativeReviewsCap(t *testing.T) {
	members := make([]ReviewAnalysis, 7)
	for i := range members {
		members[i] = ReviewAnalysis{
			Review:    Review{ID: fmt.Sprintf("r%d", i), Text: fmt.Sprintf("text %d", i), Rating: i%5 + 1},
			Sentiment: SentimentResult{Label: Neutral},
		}
	}

	got := representativeReviews(members)
	if len(got) != 5 {
		t.Fatalf("got %d representative reviews, want 5", len(got))
	}
	for i, rep := range got {
		if rep.Text != fmt.Sprintf("text %d", i) {
			t.Errorf("representative %d = %q, out of input order", i, rep.Text)
		}
	}
}
