package verify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/citeguard/citeguard/internal/library"
	"github.com/citeguard/citeguard/internal/model"
)

// ErrNoPairs reports that no citation could be joined to a bibliography
// entry. Distinct from a completed run with zero results so callers can
// explain why nothing ran.
var ErrNoPairs = errors.New("no citation-bibliography pairs to verify")

// DefaultPairTimeout bounds one pair's fetch-and-verify work.
const DefaultPairTimeout = 10 * time.Second

// ProgressFunc receives the completion percentage and the partial result
// list after every pair, so callers can render incremental progress.
type ProgressFunc func(percent int, partial []model.VerificationResult)

// Runner orchestrates one verification run over a document's citation set.
type Runner struct {
	store       library.ContentStore
	pairTimeout time.Duration
	progress    ProgressFunc
	verbose     bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithPairTimeout overrides the per-pair timeout.
func WithPairTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.pairTimeout = d
		}
	}
}

// WithProgress installs a progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(r *Runner) { r.progress = fn }
}

// WithVerbose enables diagnostic logging to stderr.
func WithVerbose(v bool) Option {
	return func(r *Runner) { r.verbose = v }
}

// NewRunner creates a verification runner over the given content store.
func NewRunner(store library.ContentStore, opts ...Option) *Runner {
	r := &Runner{
		store:       store,
		pairTimeout: DefaultPairTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// VerifyAll pairs citations with bibliography entries and verifies each pair
// sequentially. Pairs run one at a time so progress stays monotonic and the
// store sees fetches in citation order. Every recoverable failure is
// absorbed at the pair boundary; only ctx cancellation or an empty pair list
// stops the run.
func (r *Runner) VerifyAll(ctx context.Context, citations []model.Citation, bibliography []model.BibliographyEntry) (*model.RunReport, error) {
	pairs, dropped := BuildPairs(citations, bibliography)
	for _, reason := range dropped {
		r.logf("skipping: %s", reason)
	}
	if len(pairs) == 0 {
		return nil, ErrNoPairs
	}

	results := make([]model.VerificationResult, 0, len(pairs))
	for i, pair := range pairs {
		// The run may be abandoned between pairs, never mid-fetch.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		results = append(results, r.verifyPair(ctx, i, pair))

		if r.progress != nil {
			r.progress((i+1)*100/len(pairs), results)
		}
	}

	return model.NewRunReport(results), nil
}

// verifyPair races one pair's work against the pair timeout. The loser is
// abandoned, not cancelled: a late fetch may still complete in the
// background but its result is discarded.
func (r *Runner) verifyPair(ctx context.Context, ordinal int, pair Pair) model.VerificationResult {
	done := make(chan model.VerificationResult, 1)

	go func() {
		defer func() {
			if v := recover(); v != nil {
				res := r.skeleton(pair)
				res.Verification = model.NotFound(fmt.Sprintf("verification error: %v", v))
				done <- res
			}
		}()
		done <- r.checkPair(ctx, pair)
	}()

	timer := time.NewTimer(r.pairTimeout)
	defer timer.Stop()

	select {
	case res := <-done:
		return res
	case <-timer.C:
		r.logf("pair %d ([%d]) timed out after %s", ordinal+1, pair.Number, r.pairTimeout)
		res := r.skeleton(pair)
		res.Verification = model.NotFound(fmt.Sprintf(
			"verification of pair %d timed out after %s", ordinal+1, r.pairTimeout))
		return res
	}
}

// checkPair resolves the pair's evidence text and source content, then runs
// the matching engine. Fetch failures degrade to a not-found outcome with a
// recorded reason.
func (r *Runner) checkPair(ctx context.Context, pair Pair) model.VerificationResult {
	result := r.skeleton(pair)
	text := evidenceText(pair.Citation, pair.Number)

	title, src, fetchErr := r.resolveSource(ctx, pair.Entry)
	if title != "" {
		result.SourceTitle = title
	}

	if src == nil || src.FullText == "" {
		switch {
		case fetchErr != nil:
			result.Verification = model.NotFound(fmt.Sprintf("source content fetch failed: %v", fetchErr))
		case src != nil:
			result.Verification = model.NotFound("source has no extractable text")
		default:
			result.Verification = model.NotFound("no library source with full text for this entry")
		}
		return result
	}

	result.SourceID = src.SourceID
	result.SourceContent = src.FullText
	result.HasSourceContent = true
	result.Verification = Verify(text, src)
	return result
}

// resolveSource picks the display title and, when a library match exists,
// fetches the source's full text. Priority: library match, online metadata
// title, the entry's own leading text.
func (r *Runner) resolveSource(ctx context.Context, entry model.BibliographyEntry) (string, *model.SourceContent, error) {
	if lm := entry.LibraryMatch; lm != nil && lm.SourceID != "" {
		src, err := r.store.FetchSourceContent(ctx, lm.SourceID)
		if err != nil {
			r.logf("fetch source %s: %v", lm.SourceID, err)
			return lm.Title, nil, err
		}
		title := src.Title
		if title == "" {
			title = lm.Title
		}
		return title, src, nil
	}

	if om := entry.OnlineMetadata; om != nil && !om.Title.IsZero() {
		return om.Title.String(), nil, nil
	}

	return headRunes(entry.Text, 100), nil, nil
}

// skeleton builds the result shell shared by every outcome of one pair.
func (r *Runner) skeleton(pair Pair) model.VerificationResult {
	return model.VerificationResult{
		CitationNumber: pair.Number,
		CitationText:   pair.Citation.Text,
		SourceTitle:    headRunes(pair.Entry.Text, 100),
	}
}

func (r *Runner) logf(format string, args ...interface{}) {
	if r.verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// headRunes returns the first n runes of s.
func headRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
