// Package library provides access to the personal source library: the
// backing store of reference documents with retrievable full text.
package library

import (
	"context"
	"errors"

	"github.com/citeguard/citeguard/internal/model"
)

// ErrNotFound reports that the store holds no source with the requested id.
var ErrNotFound = errors.New("source not found")

// ContentStore is the collaborator capability the verification engine
// consumes, decoupled from transport. Fetch failures degrade to
// empty-content handling downstream, they never abort a run.
type ContentStore interface {
	// FetchSourceContent returns the full text of one stored source.
	FetchSourceContent(ctx context.Context, sourceID string) (*model.SourceContent, error)

	// ListSources returns summaries of all stored sources. Used for
	// display counts only, never required for verification correctness.
	ListSources(ctx context.Context) ([]model.SourceSummary, error)
}
