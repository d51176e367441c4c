package snippet

import (
	"strings"
	"testing"

	"github.com/citeguard/citeguard/internal/model"
)

func TestLocate_EmptyContent(t *testing.T) {
	if got := Locate("", nil); got != "" {
		t.Errorf("Expected empty string for empty content, got %q", got)
	}
}

func TestLocate_NoMatchesShortContent(t *testing.T) {
	content := "короткий текст"
	if got := Locate(content, nil); got != content {
		t.Errorf("Expected literal content, got %q", got)
	}
}

func TestLocate_NoMatchesLongContent(t *testing.T) {
	content := strings.Repeat("a", 1000)
	got := Locate(content, nil)

	if !strings.HasSuffix(got, "...") {
		t.Errorf("Expected trailing ellipsis, got %q", got)
	}
	if len(got) != fallbackLen+len("...") {
		t.Errorf("Expected %d bytes, got %d", fallbackLen+3, len(got))
	}
}

func TestLocate_WindowAroundCluster(t *testing.T) {
	pad := strings.Repeat("x", 400)
	content := pad + "экономика развивается" + pad
	matches := []model.KeywordMatch{
		{Keyword: "экономика", Positions: []int{400}},
		{Keyword: "развивается", Positions: []int{400 + len("экономика ")}},
	}

	got := Locate(content, matches)

	if !strings.Contains(got, "экономика развивается") {
		t.Errorf("Snippet misses the keyword cluster: %q", got)
	}
	if !strings.HasPrefix(got, "...") || !strings.HasSuffix(got, "...") {
		t.Errorf("Expected ellipses on both truncated sides: %q", got)
	}
}

func TestLocate_ClampedAtContentStart(t *testing.T) {
	content := "экономика " + strings.Repeat("y", 600)
	matches := []model.KeywordMatch{{Keyword: "экономика", Positions: []int{0}}}

	got := Locate(content, matches)

	if strings.HasPrefix(got, "...") {
		t.Errorf("Expected no leading ellipsis when window reaches content start: %q", got)
	}
	if !strings.HasPrefix(got, "экономика") {
		t.Errorf("Expected snippet to start at content start: %q", got)
	}
}

func TestLocate_BoundedLength(t *testing.T) {
	contents := []string{
		"",
		"tiny",
		strings.Repeat("слово ", 2000),
		strings.Repeat("z", 10_000),
	}
	matches := []model.KeywordMatch{
		{Keyword: "слово", Positions: []int{0, 6, 12, 600, 1200, 5000}},
	}

	for _, content := range contents {
		got := Locate(content, matches)
		limit := len(content) + 2*contextPad + 2*len("...")
		if len(got) > limit {
			t.Errorf("Snippet length %d exceeds bound %d", len(got), limit)
		}
	}
}

func TestLocate_DensestClusterWins(t *testing.T) {
	// One lone occurrence early, a three-hit cluster late.
	content := strings.Repeat("a", 5000)
	matches := []model.KeywordMatch{
		{Keyword: "x", Positions: []int{10, 3000, 3100, 3200}},
	}

	got := Locate(content, matches)

	// Window spans [3000-150, 3200+150]; the lone early hit is outside.
	wantLen := len("...") + (3350 - 2850) + len("...")
	if len(got) != wantLen {
		t.Errorf("Expected snippet of %d bytes around the dense cluster, got %d", wantLen, len(got))
	}
}

func TestLocate_FirstClusterWinsTies(t *testing.T) {
	content := strings.Repeat("b", 4000)
	// Two clusters of equal size; the earlier one must be kept.
	matches := []model.KeywordMatch{
		{Keyword: "x", Positions: []int{100, 200, 2000, 2100}},
	}

	got := Locate(content, matches)

	// Earliest cluster spans [100-150, 200+150] clamped to 0.
	wantLen := (350 - 0) + len("...")
	if len(got) != wantLen {
		t.Errorf("Expected earliest cluster window of %d bytes, got %d", wantLen, len(got))
	}
	if strings.HasPrefix(got, "...") {
		t.Errorf("Expected window clamped to content start: %q", got)
	}
}

func TestLocate_UTF8Safe(t *testing.T) {
	content := strings.Repeat("я", 1000)
	matches := []model.KeywordMatch{{Keyword: "я", Positions: []int{500}}}

	got := Locate(content, matches)
	if !strings.HasPrefix(got, "...") {
		t.Errorf("Expected leading ellipsis: %q", got)
	}
	for _, r := range got {
		if r != '.' && r != 'я' {
			t.Fatalf("Snippet contains broken rune %q", r)
		}
	}
}
