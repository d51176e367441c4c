package model

import "time"

// KeywordMatch records where one keyword occurs inside scrubbed source text.
type KeywordMatch struct {
	Keyword   string `json:"keyword"`
	Positions []int  `json:"positions"` // Byte offsets, capped per keyword
}

// VerificationOutcome is the per-pair verdict. The two shapes are tagged by
// Found: a not-found outcome carries only Reason and zero confidence, a found
// outcome carries the full match breakdown.
type VerificationOutcome struct {
	Found                 bool           `json:"found"`
	Confidence            int            `json:"confidence"`
	Reason                string         `json:"reason,omitempty"`
	MatchType             string         `json:"match_type,omitempty"`
	KeywordMatches        []KeywordMatch `json:"keyword_matches,omitempty"`
	BestSnippet           string         `json:"best_snippet,omitempty"`
	TotalKeywordsFound    int            `json:"total_keywords_found,omitempty"`
	TotalKeywordsSearched int            `json:"total_keywords_searched,omitempty"`
}

// NotFound builds a not-found outcome with an explanatory reason.
func NotFound(reason string) VerificationOutcome {
	return VerificationOutcome{Found: false, Confidence: 0, Reason: reason}
}

// VerificationResult pairs one citation with the verdict against its source.
type VerificationResult struct {
	CitationNumber   int                 `json:"citation_number"`
	CitationText     string              `json:"citation_text"`
	SourceTitle      string              `json:"source_title"`
	SourceContent    string              `json:"source_content,omitempty"`
	SourceID         string              `json:"source_id,omitempty"`
	Verification     VerificationOutcome `json:"verification"`
	HasSourceContent bool                `json:"has_source_content"`
}

// RunReport is the complete output of one verification run.
type RunReport struct {
	CheckedAt         time.Time            `json:"checked_at"`
	TotalPairs        int                  `json:"total_pairs"`
	Verified          int                  `json:"verified"`
	NotVerified       int                  `json:"not_verified"`
	VerificationRate  float64              `json:"verification_rate"`
	AverageConfidence float64              `json:"average_confidence"`
	Results           []VerificationResult `json:"results"`

	LLM *LLMSummary `json:"llm,omitempty"` // Optional summary, never affects verdicts
}

// NewRunReport aggregates per-pair results into a run report.
func NewRunReport(results []VerificationResult) *RunReport {
	report := &RunReport{
		CheckedAt:  time.Now().UTC(),
		TotalPairs: len(results),
		Results:    results,
	}

	totalConfidence := 0
	for _, r := range results {
		if r.Verification.Found {
			report.Verified++
			totalConfidence += r.Verification.Confidence
		} else {
			report.NotVerified++
		}
	}

	if report.TotalPairs > 0 {
		report.VerificationRate = float64(report.Verified) / float64(report.TotalPairs)
	}
	if report.Verified > 0 {
		report.AverageConfidence = float64(totalConfidence) / float64(report.Verified)
	}

	return report
}

// LLMSummary contains an optional LLM-generated summary of the run.
// It never affects verification verdicts and is clearly separated.
type LLMSummary struct {
	Enabled   bool   `json:"enabled"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	SummaryMD string `json:"summary_md,omitempty"`
}
