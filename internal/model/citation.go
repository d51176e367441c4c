package model

// Citation represents an in-text numbered reference marker plus its
// surrounding prose, as emitted by the upstream analysis pipeline.
type Citation struct {
	Text          string `json:"text"`                     // Raw citation text, contains the bracket marker
	Context       string `json:"context,omitempty"`        // Sentence-level context around the marker
	FullParagraph string `json:"full_paragraph,omitempty"` // Whole paragraph the marker appears in
	Number        int    `json:"number,omitempty"`         // Pre-parsed marker number, 0 if unknown
	Style         string `json:"style,omitempty"`          // Citation style (gost, ieee, ...)
}

// BibliographyEntry is a reference-list item. The entry at 0-based index n-1
// backs citation [n]; entries are assumed emitted in citation order.
type BibliographyEntry struct {
	Index          int             `json:"index"`
	Text           string          `json:"text"`
	OnlineMetadata *OnlineMetadata `json:"online_metadata,omitempty"`
	LibraryMatch   *LibraryMatch   `json:"library_match,omitempty"`
}

// LibraryMatch links a bibliography entry to a stored library source.
type LibraryMatch struct {
	SourceID      string   `json:"source_id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors,omitempty"`
	Year          int      `json:"year,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	Journal       string   `json:"journal,omitempty"`
	MatchScore    float64  `json:"match_score"`
	MatchedFields []string `json:"matched_fields,omitempty"`
	HasFile       bool     `json:"has_file"`
}

// OnlineMetadata holds unverified metadata found by the online search
// pipeline. None of it is required for verification; the title is used only
// for display when no library source is available.
type OnlineMetadata struct {
	Title   DisplayTitle `json:"title,omitempty"`
	Authors []string     `json:"authors,omitempty"`
	Year    int          `json:"year,omitempty"`
	URL     string       `json:"url,omitempty"`
}

// Analysis is the upstream pipeline's output consumed by a verification run.
type Analysis struct {
	Citations    []Citation          `json:"citations"`
	Bibliography []BibliographyEntry `json:"bibliography_entries"`
}
