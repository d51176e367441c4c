package match

import (
	"strings"

	"github.com/citeguard/citeguard/internal/model"
)

// MaxPositionsPerKeyword bounds position collection on pathological content
// that repeats a keyword thousands of times.
const MaxPositionsPerKeyword = 100

// FindKeywords locates every occurrence of each keyword inside content,
// case-insensitively. Keywords with zero occurrences are omitted entirely.
// Positions are byte offsets into content.
func FindKeywords(keywords []string, content string) []model.KeywordMatch {
	if len(keywords) == 0 || content == "" {
		return nil
	}

	haystack := strings.ToLower(content)

	var matches []model.KeywordMatch
	for _, keyword := range keywords {
		needle := strings.ToLower(keyword)
		if needle == "" {
			continue
		}

		var positions []int
		for from := 0; from < len(haystack); {
			idx := strings.Index(haystack[from:], needle)
			if idx < 0 {
				break
			}
			positions = append(positions, from+idx)
			if len(positions) == MaxPositionsPerKeyword {
				break
			}
			from += idx + 1
		}

		if len(positions) > 0 {
			matches = append(matches, model.KeywordMatch{
				Keyword:   keyword,
				Positions: positions,
			})
		}
	}

	return matches
}
