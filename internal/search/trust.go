// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"

	"github.com/pdiddy/scholar-federator/pkg/types"
)

// TrustFilter keeps only resources whose source is on a fixed allow-list.
// Sources are compared case-insensitively; anything not listed is untrusted.
type TrustFilter struct {
	allowed map[string]struct{}
}

// NewTrustFilter builds a filter over the given provider names.
func NewTrustFilter(names []string) TrustFilter {
	allowed := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			allowed[n] = struct{}{}
		}
	}
	return TrustFilter{allowed: allowed}
}

// Trusted reports whether source is on the allow-list.
func (t TrustFilter) Trusted(source string) bool {
	_, ok := t.allowed[strings.ToLower(strings.TrimSpace(source))]
	return ok
}

// Apply returns the trusted resources in their original order.
func (t TrustFilter) Apply(resources []types.Resource) []types.Resource {
	out := make([]types.Resource, 0, len(resources))
	for _, r := range resources {
		if t.Trusted(r.Source) {
			out = append(out, r)
		}
	}
	return out
}
