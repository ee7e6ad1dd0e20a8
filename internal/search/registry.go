// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"sort"
	"strings"

	"github.com/pdiddy/scholar-federator/internal/httputil"
	"github.com/pdiddy/scholar-federator/pkg/types"
)

// BuildProviders constructs the enabled providers from cfg. Each provider
// gets its own client so rate limits are independent. The returned web
// provider is nil when DuckDuckGo is disabled.
func BuildProviders(cfg types.Config) ([]Provider, WebProvider) {
	enabled := func(name string) (types.ProviderConfig, bool) {
		pc, ok := cfg.Providers[name]
		return pc, ok && pc.Enabled
	}
	client := func(pc types.ProviderConfig) *httputil.Client {
		return httputil.New(cfg.HTTP, pc)
	}

	var scholarly []Provider
	if pc, ok := enabled(types.ProviderArxiv); ok {
		scholarly = append(scholarly, &ArxivProvider{Client: client(pc)})
	}
	if pc, ok := enabled(types.ProviderOpenAlex); ok {
		scholarly = append(scholarly, &OpenAlexProvider{Client: client(pc), Email: pc.Email})
	}
	if pc, ok := enabled(types.ProviderSemanticScholar); ok {
		scholarly = append(scholarly, &SemanticScholarProvider{Client: client(pc), APIKey: pc.APIKey})
	}
	if pc, ok := enabled(types.ProviderEuropePMC); ok {
		scholarly = append(scholarly, &EuropePMCProvider{Client: client(pc)})
	}
	if pc, ok := enabled(types.ProviderCrossref); ok {
		scholarly = append(scholarly, &CrossrefProvider{Client: client(pc), Mailto: pc.Email})
	}
	if pc, ok := enabled(types.ProviderWikipedia); ok {
		scholarly = append(scholarly, &WikipediaProvider{Client: client(pc)})
	}

	var web WebProvider
	if pc, ok := enabled(types.ProviderDuckDuckGo); ok {
		web = &DuckDuckGoProvider{Client: client(pc)}
	}
	return scholarly, web
}

// orderByPriority returns providers sorted by their position in priority.
// Unlisted providers keep their relative order after the listed ones.
func orderByPriority(providers []Provider, priority []string) []Provider {
	rank := make(map[string]int, len(priority))
	for i, name := range priority {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, dup := rank[name]; !dup {
			rank[name] = i
		}
	}
	pos := func(p Provider) int {
		if r, ok := rank[strings.ToLower(p.Name())]; ok {
			return r
		}
		return len(priority)
	}

	out := make([]Provider, len(providers))
	copy(out, providers)
	sort.SliceStable(out, func(i, j int) bool {
		return pos(out[i]) < pos(out[j])
	})
	return out
}
