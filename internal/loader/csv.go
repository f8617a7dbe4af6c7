// Package loader reads review datasets from CSV files into core records.
// It is the external collaborator that feeds the analysis pipeline; the
// core itself has no file-format surface.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"bankpulse"
)

// Column aliases accepted for each field, checked in order.
var (
	idColumns      = []string{"review_id", "id"}
	textColumns    = []string{"review_text", "text", "review"}
	ratingColumns  = []string{"rating", "stars", "score"}
	groupColumns   = []string{"bank", "bank_name", "group", "app"}
	keywordColumns = []string{"keywords", "keywords_str"}
)

// FromCSV loads reviews from a CSV file with a header row. Rows with empty
// review text are skipped; ratings that fail to parse load as 0 and are
// treated as missing downstream. Reviews without an ID column get a
// generated one.
func FromCSV(path string) ([]bankpulse.Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reviews file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses CSV review records from r.
func Read(r io.Reader) ([]bankpulse.Review, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := columnIndex(header)
	textIdx, ok := cols.first(textColumns)
	if !ok {
		return nil, fmt.Errorf("no review text column found in header %v", header)
	}
	idIdx, hasID := cols.first(idColumns)
	ratingIdx, hasRating := cols.first(ratingColumns)
	groupIdx, hasGroup := cols.first(groupColumns)
	keywordIdx, hasKeywords := cols.first(keywordColumns)

	var reviews []bankpulse.Review
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}

		text := strings.TrimSpace(field(record, textIdx))
		if text == "" {
			continue
		}

		review := bankpulse.Review{Text: text}

		if hasID {
			review.ID = strings.TrimSpace(field(record, idIdx))
		}
		if review.ID == "" {
			review.ID = uuid.NewString()
		}
		if hasRating {
			review.Rating = parseRating(field(record, ratingIdx))
		}
		if hasGroup {
			review.GroupID = strings.TrimSpace(field(record, groupIdx))
		}
		if hasKeywords {
			review.Keywords = bankpulse.ParseKeywordList(field(record, keywordIdx))
		}

		reviews = append(reviews, review)
	}

	return reviews, nil
}

// parseRating parses a star rating, tolerating float formats like "4.0".
// Anything unparseable or out of the 1-5 range loads as 0 (missing).
func parseRating(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	rating, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0
		}
		rating = int(f)
	}
	if rating < 1 || rating > 5 {
		return 0
	}
	return rating
}

type columns map[string]int

func columnIndex(header []string) columns {
	cols := make(columns, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func (c columns) first(names []string) (int, bool) {
	for _, name := range names {
		if i, ok := c[name]; ok {
			return i, true
		}
	}
	return 0, false
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return record[i]
}
