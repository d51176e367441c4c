// Package verify pairs numbered citations with bibliography entries and
// decides, per pair, whether the citation is supported by its source.
package verify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/citeguard/citeguard/internal/model"
)

// markerPattern matches the first number inside a bracket marker. Covers
// [1], [1,2,3] and [1-3]; the leading number is the join key.
var markerPattern = regexp.MustCompile(`\[\s*(\d+)`)

// bareMarkerPattern matches text that is nothing but a bracket marker.
var bareMarkerPattern = regexp.MustCompile(`^\[\s*\d+(?:\s*[,;–-]\s*\d+)*\s*\]$`)

// Pair joins one citation to the bibliography entry backing it.
type Pair struct {
	Number   int
	Citation model.Citation
	Entry    model.BibliographyEntry
}

// CitationNumber extracts the citation number from the marker in text,
// falling back to the pre-parsed number from upstream. Returns 0 when no
// usable number exists.
func CitationNumber(c model.Citation) int {
	if m := markerPattern.FindStringSubmatch(c.Text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	if c.Number > 0 {
		return c.Number
	}
	return 0
}

// BuildPairs joins citations to bibliography entries positionally: the entry
// at 0-based index n-1 backs citation [n]. This leans on the upstream
// invariant that entries are emitted in citation order; an id-based join
// would be sturdier but would change documented behavior.
//
// Citations without a usable number, or whose index falls outside the
// bibliography, are dropped from the pair list. That is "no pair found",
// not a failure.
func BuildPairs(citations []model.Citation, bibliography []model.BibliographyEntry) ([]Pair, []string) {
	var pairs []Pair
	var dropped []string

	for i, c := range citations {
		n := CitationNumber(c)
		if n == 0 {
			dropped = append(dropped, fmt.Sprintf("citation %d: no parseable bracket number", i+1))
			continue
		}
		if n-1 >= len(bibliography) {
			dropped = append(dropped, fmt.Sprintf("citation [%d]: bibliography has only %d entries", n, len(bibliography)))
			continue
		}
		pairs = append(pairs, Pair{
			Number:   n,
			Citation: c,
			Entry:    bibliography[n-1],
		})
	}

	return pairs, dropped
}

// evidenceText resolves the text that represents the citation's claim, in
// priority order: context, full paragraph, raw text. Candidates that are
// blank or nothing but the bracket marker are skipped; the bare marker is
// the last resort.
func evidenceText(c model.Citation, number int) string {
	for _, candidate := range []string{c.Context, c.FullParagraph, c.Text} {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" || bareMarkerPattern.MatchString(candidate) {
			continue
		}
		return candidate
	}
	return fmt.Sprintf("[%d]", number)
}
