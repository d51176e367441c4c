// Package snippet extracts bounded evidence excerpts from source text.
package snippet

import (
	"sort"
	"unicode/utf8"

	"github.com/citeguard/citeguard/internal/model"
)

const (
	// fallbackLen is how much leading content to show when no matches exist.
	fallbackLen = 300
	// contextPad is how far the excerpt extends beyond the keyword cluster.
	contextPad = 150
	// clusterGap is the maximum distance between consecutive keyword
	// positions that still counts as one topical cluster.
	clusterGap = 500
	// Caps on how many positions participate in cluster search.
	maxPositionsPerMatch = 10
	maxPositionsTotal    = 100

	ellipsis = "..."
)

// Locate finds the densest cluster of keyword occurrences in content and
// returns the surrounding excerpt as human-checkable evidence. With no
// matches it falls back to the leading fallbackLen bytes. Never panics on
// short or empty content.
func Locate(content string, matches []model.KeywordMatch) string {
	if content == "" || len(matches) == 0 {
		return head(content)
	}

	var positions []int
	for _, m := range matches {
		take := m.Positions
		if len(take) > maxPositionsPerMatch {
			take = take[:maxPositionsPerMatch]
		}
		positions = append(positions, take...)
	}
	if len(positions) == 0 {
		return head(content)
	}

	sort.Ints(positions)
	if len(positions) > maxPositionsTotal {
		positions = positions[:maxPositionsTotal]
	}

	clusterStart, clusterEnd := densestCluster(positions)

	start := clusterStart - contextPad
	if start < 0 {
		start = 0
	}
	end := clusterEnd + contextPad
	if end > len(content) {
		end = len(content)
	}

	// Positions are byte offsets; pull the cut points back onto rune
	// boundaries so the excerpt stays valid UTF-8.
	start = runeFloor(content, start)
	end = runeFloor(content, end)
	if end < start {
		end = start
	}

	excerpt := content[start:end]
	if start > 0 {
		excerpt = ellipsis + excerpt
	}
	if end < len(content) {
		excerpt = excerpt + ellipsis
	}
	return excerpt
}

// densestCluster returns the first maximal run of sorted positions in which
// consecutive positions are less than clusterGap apart. Ties keep the
// earliest cluster: only a strictly larger run replaces the current best.
func densestCluster(positions []int) (start, end int) {
	bestStart, bestEnd := positions[0], positions[0]
	bestLen := 1

	curStart := positions[0]
	curLen := 1
	for i := 1; i < len(positions); i++ {
		if positions[i]-positions[i-1] < clusterGap {
			curLen++
		} else {
			curStart = positions[i]
			curLen = 1
		}
		if curLen > bestLen {
			bestLen = curLen
			bestStart = curStart
			bestEnd = positions[i]
		}
	}

	return bestStart, bestEnd
}

// head returns the leading fallbackLen bytes of content with an ellipsis,
// or the literal content when shorter.
func head(content string) string {
	if len(content) <= fallbackLen {
		return content
	}
	return content[:runeFloor(content, fallbackLen)] + ellipsis
}

// runeFloor moves a byte offset down to the nearest rune boundary.
func runeFloor(s string, i int) int {
	for i > 0 && i < len(s) && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
