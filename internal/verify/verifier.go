package verify

import (
	"strings"

	"github.com/citeguard/citeguard/internal/extract"
	"github.com/citeguard/citeguard/internal/match"
	"github.com/citeguard/citeguard/internal/model"
	"github.com/citeguard/citeguard/internal/score"
	"github.com/citeguard/citeguard/internal/snippet"
)

// Verify checks one citation's evidence text against one source's full text:
// extract keywords, scrub the source title out of the content, locate the
// keywords, map the hit ratio to a confidence tier, and pull the densest
// cluster as the evidence snippet. Deterministic for identical input.
func Verify(citationText string, src *model.SourceContent) model.VerificationOutcome {
	if src == nil || strings.TrimSpace(src.FullText) == "" {
		return model.NotFound("source text is not available")
	}

	keywords := extract.Keywords(citationText)
	if len(keywords) == 0 {
		return model.NotFound("citation context has no searchable keywords")
	}

	content := match.ScrubTitle(src.FullText, src.Title)

	found := match.FindKeywords(keywords, content)
	if len(found) == 0 {
		return model.NotFound("citation keywords were not found in the source text")
	}

	return model.VerificationOutcome{
		Found:                 true,
		Confidence:            score.Confidence(len(found), len(keywords)),
		MatchType:             "semantic",
		KeywordMatches:        found,
		BestSnippet:           snippet.Locate(content, found),
		TotalKeywordsFound:    len(found),
		TotalKeywordsSearched: len(keywords),
	}
}
