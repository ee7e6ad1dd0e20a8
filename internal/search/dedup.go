// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"github.com/pdiddy/scholar-federator/internal/normalize"
	"github.com/pdiddy/scholar-federator/pkg/types"
)

// deduplicate drops every resource that shares a normalized title, a DOI,
// or an ID with an earlier one. The first-seen copy wins, so callers pass
// candidates in provider priority order. It returns the survivors and the
// number removed.
func deduplicate(resources []types.Resource) ([]types.Resource, int) {
	seen := make(map[string]struct{}, len(resources)*2)
	out := make([]types.Resource, 0, len(resources))
	removed := 0

	for _, r := range resources {
		keys := dedupKeys(r)
		dup := false
		for _, k := range keys {
			if _, ok := seen[k]; ok {
				dup = true
				break
			}
		}
		if dup {
			removed++
			continue
		}
		for _, k := range keys {
			seen[k] = struct{}{}
		}
		out = append(out, r)
	}
	return out, removed
}

// dedupKeys returns the identity keys of r.
func dedupKeys(r types.Resource) []string {
	keys := make([]string, 0, 3)
	if t := normalize.Title(r.Title); t != "" {
		keys = append(keys, "title:"+t)
	}
	if r.ExternalID != "" {
		keys = append(keys, "doi:"+r.ExternalID)
	}
	if r.ID != "" {
		keys = append(keys, "id:"+r.ID)
	}
	return keys
}

// dedupWeb drops web hits whose URL was already seen.
func dedupWeb(results []types.WebResult) []types.WebResult {
	seen := make(map[string]struct{}, len(results))
	out := make([]types.WebResult, 0, len(results))
	for _, w := range results {
		if _, ok := seen[w.URL]; ok {
			continue
		}
		seen[w.URL] = struct{}{}
		out = append(out, w)
	}
	return out
}
