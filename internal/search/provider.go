// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/scholar-federator/internal/httputil"
	"github.com/pdiddy/scholar-federator/pkg/types"
)

// ErrInvalidQuery is returned when the query is empty after trimming. It is
// the only error Federator.Search returns.
var ErrInvalidQuery = errors.New("query is empty: provide a search term")

// Provider searches one scholarly source. Implementations translate the
// query into the source's request shape, make exactly one outbound call
// sequence, and return records built by the normalize package. Records
// that cannot be normalized are dropped, never returned half-built.
// An empty result with a nil error means "no matches".
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]types.Resource, error)
}

// WebProvider searches the general web. Its hits are kept apart from
// scholarly resources.
type WebProvider interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]types.WebResult, error)
}

// ProviderError reports that one provider contributed nothing to a search.
// The Federator absorbs these; they never reach the caller.
type ProviderError struct {
	Source string
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Source, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Timeout reports whether the provider ran out of time.
func (e *ProviderError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// clientOr returns c, or a default unlimited client when c is nil.
func clientOr(c *httputil.Client) *httputil.Client {
	if c == nil {
		return &httputil.Client{}
	}
	return c
}
