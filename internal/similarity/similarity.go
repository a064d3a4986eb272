// Package similarity scores how alike two article text fields are.
// Scores are Ratcliff/Obershelp ratios in [0,1] computed at character
// level over normalized text, via difflib's SequenceMatcher.
package similarity

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/deusflow/newsdigest/internal/normalize"
)

// Title returns the similarity of two titles. Empty titles are defined
// as never similar, so a missing title can only ever be removed by an
// exact URL match downstream.
func Title(a, b string) float64 {
	return ratio(normalize.Text(a), normalize.Text(b))
}

// Description returns the similarity of two descriptions, with the
// same empty-input rule as Title.
func Description(a, b string) float64 {
	return ratio(normalize.Text(a), normalize.Text(b))
}

// ratio never panics: any failure inside the matcher scores the pair
// as not similar rather than aborting the digest run.
func ratio(a, b string) (r float64) {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	defer func() {
		if recover() != nil {
			r = 0
		}
	}()
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}
