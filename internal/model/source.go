package model

// SourceContent is a library source's retrievable full text, fetched lazily
// per verification pair from the content store.
type SourceContent struct {
	SourceID string `json:"source_id"`
	Title    string `json:"title"`
	FullText string `json:"full_text"`
	Length   int    `json:"length"`
}

// SourceSummary describes a stored library source without its full text.
type SourceSummary struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Authors   []string `json:"authors,omitempty"`
	Year      int      `json:"year,omitempty"`
	Journal   string   `json:"journal,omitempty"`
	Publisher string   `json:"publisher,omitempty"`
	HasFile   bool     `json:"has_file"`
}
