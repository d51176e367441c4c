package verify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/citeguard/citeguard/internal/library"
	"github.com/citeguard/citeguard/internal/model"
)

// fakeStore is an in-memory content store for runner tests.
type fakeStore struct {
	sources map[string]*model.SourceContent
	failIDs map[string]error
	delay   time.Duration
	fetches []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sources: make(map[string]*model.SourceContent),
		failIDs: make(map[string]error),
	}
}

func (f *fakeStore) FetchSourceContent(ctx context.Context, sourceID string) (*model.SourceContent, error) {
	f.fetches = append(f.fetches, sourceID)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if err, ok := f.failIDs[sourceID]; ok {
		return nil, err
	}
	if src, ok := f.sources[sourceID]; ok {
		return src, nil
	}
	return nil, library.ErrNotFound
}

func (f *fakeStore) ListSources(ctx context.Context) ([]model.SourceSummary, error) {
	return nil, nil
}

func libraryEntry(index int, sourceID, title string) model.BibliographyEntry {
	return model.BibliographyEntry{
		Index: index,
		Text:  fmt.Sprintf("%d. %s", index+1, title),
		LibraryMatch: &model.LibraryMatch{
			SourceID: sourceID,
			Title:    title,
			HasFile:  true,
		},
	}
}

func TestRunner_VerifyAll_SupportedCitation(t *testing.T) {
	store := newFakeStore()
	store.sources["src-1"] = &model.SourceContent{
		SourceID: "src-1",
		Title:    "Экономический рост",
		FullText: "Согласно статистике, экономика развивается устойчиво, " +
			"и исследования это подтверждают.",
	}

	citations := []model.Citation{{
		Text:    "[1]",
		Context: "Согласно исследованию экономика развивается быстро",
	}}
	bibliography := []model.BibliographyEntry{libraryEntry(0, "src-1", "Экономический рост")}

	runner := NewRunner(store)
	report, err := runner.VerifyAll(context.Background(), citations, bibliography)
	if err != nil {
		t.Fatalf("VerifyAll failed: %v", err)
	}

	if report.TotalPairs != 1 || report.Verified != 1 {
		t.Fatalf("Expected 1 verified pair, got %+v", report)
	}
	res := report.Results[0]
	if !res.HasSourceContent {
		t.Error("Expected has_source_content true")
	}
	if res.Verification.Confidence < 60 {
		t.Errorf("Expected confidence >= 60, got %d", res.Verification.Confidence)
	}
	if !strings.Contains(res.Verification.BestSnippet, "экономика развивается") {
		t.Errorf("Snippet misses the phrase: %q", res.Verification.BestSnippet)
	}
	if res.SourceID != "src-1" {
		t.Errorf("Expected source id src-1, got %q", res.SourceID)
	}
}

func TestRunner_VerifyAll_NoPairs(t *testing.T) {
	runner := NewRunner(newFakeStore())

	_, err := runner.VerifyAll(context.Background(),
		[]model.Citation{{Text: "без номера"}},
		[]model.BibliographyEntry{{Index: 0, Text: "Источник"}})

	if !errors.Is(err, ErrNoPairs) {
		t.Fatalf("Expected ErrNoPairs, got %v", err)
	}
}

func TestRunner_VerifyAll_OutOfRangeExcluded(t *testing.T) {
	store := newFakeStore()
	store.sources["src-1"] = &model.SourceContent{
		SourceID: "src-1",
		FullText: "экономика развивается",
	}

	citations := []model.Citation{
		{Text: "[1]", Context: "экономика развивается"},
		{Text: "[5]", Context: "несуществующий источник"},
	}
	bibliography := []model.BibliographyEntry{
		libraryEntry(0, "src-1", "Источник"),
		{Index: 1, Text: "2. Второй источник"},
	}

	report, err := NewRunner(store).VerifyAll(context.Background(), citations, bibliography)
	if err != nil {
		t.Fatalf("VerifyAll failed: %v", err)
	}

	if report.TotalPairs != 1 {
		t.Fatalf("Expected the [5] citation excluded entirely, got %d results", report.TotalPairs)
	}
	if report.Results[0].CitationNumber != 1 {
		t.Errorf("Expected only citation [1], got %d", report.Results[0].CitationNumber)
	}
}

func TestRunner_VerifyAll_FetchFailureContinues(t *testing.T) {
	store := newFakeStore()
	store.failIDs["bad"] = errors.New("store exploded")
	store.sources["good"] = &model.SourceContent{
		SourceID: "good",
		FullText: "экономика развивается",
	}

	citations := []model.Citation{
		{Text: "[1]", Context: "экономика развивается"},
		{Text: "[2]", Context: "экономика развивается"},
	}
	bibliography := []model.BibliographyEntry{
		libraryEntry(0, "bad", "Сломанный источник"),
		libraryEntry(1, "good", "Рабочий источник"),
	}

	report, err := NewRunner(store).VerifyAll(context.Background(), citations, bibliography)
	if err != nil {
		t.Fatalf("VerifyAll failed: %v", err)
	}

	if report.TotalPairs != 2 {
		t.Fatalf("Expected both pairs processed, got %d", report.TotalPairs)
	}

	failed := report.Results[0]
	if failed.HasSourceContent {
		t.Error("Expected has_source_content false for failed fetch")
	}
	if failed.Verification.Found || failed.Verification.Reason == "" {
		t.Errorf("Expected not-found with reason, got %+v", failed.Verification)
	}

	if !report.Results[1].Verification.Found {
		t.Errorf("Expected the batch to continue past the failure: %+v", report.Results[1])
	}
}

func TestRunner_VerifyAll_Timeout(t *testing.T) {
	store := newFakeStore()
	store.delay = 200 * time.Millisecond
	store.sources["slow"] = &model.SourceContent{SourceID: "slow", FullText: "текст"}

	citations := []model.Citation{{Text: "[1]", Context: "экономика развивается"}}
	bibliography := []model.BibliographyEntry{libraryEntry(0, "slow", "Медленный источник")}

	runner := NewRunner(store, WithPairTimeout(20*time.Millisecond))
	report, err := runner.VerifyAll(context.Background(), citations, bibliography)
	if err != nil {
		t.Fatalf("VerifyAll failed: %v", err)
	}

	res := report.Results[0]
	if res.Verification.Found {
		t.Fatal("Expected timeout to produce a not-found outcome")
	}
	// The reason names the pair's ordinal position.
	if !strings.Contains(res.Verification.Reason, "pair 1") ||
		!strings.Contains(res.Verification.Reason, "timed out") {
		t.Errorf("Expected a timeout reason naming pair 1, got %q", res.Verification.Reason)
	}
}

func TestRunner_VerifyAll_ProgressMonotonic(t *testing.T) {
	store := newFakeStore()
	for i := 1; i <= 4; i++ {
		id := fmt.Sprintf("src-%d", i)
		store.sources[id] = &model.SourceContent{SourceID: id, FullText: "экономика развивается"}
	}

	var citations []model.Citation
	var bibliography []model.BibliographyEntry
	for i := 1; i <= 4; i++ {
		citations = append(citations, model.Citation{
			Text:    fmt.Sprintf("[%d]", i),
			Context: "экономика развивается",
		})
		bibliography = append(bibliography, libraryEntry(i-1, fmt.Sprintf("src-%d", i), "Источник"))
	}

	var percents []int
	runner := NewRunner(store, WithProgress(func(percent int, partial []model.VerificationResult) {
		percents = append(percents, percent)
	}))

	if _, err := runner.VerifyAll(context.Background(), citations, bibliography); err != nil {
		t.Fatalf("VerifyAll failed: %v", err)
	}

	if len(percents) != 4 {
		t.Fatalf("Expected 4 progress callbacks, got %d", len(percents))
	}
	for i := 1; i < len(percents); i++ {
		if percents[i] <= percents[i-1] {
			t.Errorf("Progress not monotonic: %v", percents)
		}
	}
	if percents[len(percents)-1] != 100 {
		t.Errorf("Expected final progress 100, got %d", percents[len(percents)-1])
	}
}

func TestRunner_VerifyAll_Idempotent(t *testing.T) {
	store := newFakeStore()
	store.sources["src-1"] = &model.SourceContent{
		SourceID: "src-1",
		Title:    "Труды",
		FullText: strings.Repeat("экономика страны развивается и наука тоже. ", 30),
	}

	citations := []model.Citation{{Text: "[1]", Context: "экономика развивается благодаря науке"}}
	bibliography := []model.BibliographyEntry{libraryEntry(0, "src-1", "Труды")}

	runner := NewRunner(store)
	first, err := runner.VerifyAll(context.Background(), citations, bibliography)
	if err != nil {
		t.Fatalf("VerifyAll failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		again, err := runner.VerifyAll(context.Background(), citations, bibliography)
		if err != nil {
			t.Fatalf("VerifyAll failed: %v", err)
		}
		if again.Results[0].Verification.Confidence != first.Results[0].Verification.Confidence {
			t.Fatal("Confidence changed between identical runs")
		}
		if again.Results[0].Verification.BestSnippet != first.Results[0].Verification.BestSnippet {
			t.Fatal("Snippet changed between identical runs")
		}
	}
}

func TestRunner_VerifyAll_CancelledBetweenPairs(t *testing.T) {
	store := newFakeStore()
	store.sources["src-1"] = &model.SourceContent{SourceID: "src-1", FullText: "текст"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(store)
	_, err := runner.VerifyAll(ctx,
		[]model.Citation{{Text: "[1]", Context: "экономика"}},
		[]model.BibliographyEntry{libraryEntry(0, "src-1", "Источник")})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}

func TestRunner_VerifyAll_OnlineMetadataFallback(t *testing.T) {
	citations := []model.Citation{{Text: "[1]", Context: "экономика развивается"}}
	bibliography := []model.BibliographyEntry{{
		Index:          0,
		Text:           "1. Статья без библиотечного совпадения",
		OnlineMetadata: &model.OnlineMetadata{Title: model.NewDisplayTitle("Онлайн статья")},
	}}

	report, err := NewRunner(newFakeStore()).VerifyAll(context.Background(), citations, bibliography)
	if err != nil {
		t.Fatalf("VerifyAll failed: %v", err)
	}

	res := report.Results[0]
	if res.SourceTitle != "Онлайн статья" {
		t.Errorf("Expected online metadata title, got %q", res.SourceTitle)
	}
	if res.HasSourceContent || res.Verification.Found {
		t.Errorf("Expected no content and not-found outcome, got %+v", res)
	}
}
