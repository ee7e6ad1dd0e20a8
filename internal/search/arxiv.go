// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/scholar-federator/internal/httputil"
	"github.com/pdiddy/scholar-federator/internal/normalize"
	"github.com/pdiddy/scholar-federator/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivProvider queries the arXiv preprint archive. All arXiv records are
// openly readable.
type ArxivProvider struct {
	Client *httputil.Client
}

// Name returns the provider identifier.
func (p *ArxivProvider) Name() string { return types.ProviderArxiv }

// Search queries the arXiv API.
func (p *ArxivProvider) Search(ctx context.Context, query string, limit int) ([]types.Resource, error) {
	q := buildArxivQuery(query)
	if q == "" {
		return nil, fmt.Errorf("empty arXiv query")
	}

	params := url.Values{
		"search_query": {q},
		"start":        {"0"},
		"max_results":  {strconv.Itoa(limit)},
		"sortBy":       {"relevance"},
		"sortOrder":    {"descending"},
	}

	resp, err := clientOr(p.Client).Get(ctx, arxivAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var results []types.Resource
	for _, entry := range feed.Entries {
		arxivID := extractArxivID(entry.ID)
		if arxivID == "" {
			continue
		}

		rec := normalize.Record{
			ID:       arxivID,
			Title:    entry.Title,
			KindHint: types.KindPreprint,
			Source:   types.ProviderArxiv,
			URL:      "https://arxiv.org/abs/" + arxivID,
			Summary:  entry.Summary,
			Year:     entry.Published,
			Venue:    entry.JournalRef,
			DOI:      entry.DOI,
			Domain:   entry.PrimaryCategory.Term,
		}
		if rec.Venue == "" {
			rec.Venue = "arXiv"
		}
		var authors []string
		for _, a := range entry.Authors {
			authors = append(authors, a.Name)
		}
		rec.Authors = authors

		if r, ok := normalize.Resource(rec); ok {
			results = append(results, r)
		}
	}
	return results, nil
}

// buildArxivQuery turns free text into an all-fields search_query value.
func buildArxivQuery(query string) string {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return ""
	}
	for i, t := range terms {
		terms[i] = "all:" + t
	}
	return strings.Join(terms, " AND ")
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID              string        `xml:"id"`
	Title           string        `xml:"title"`
	Summary         string        `xml:"summary"`
	Published       string        `xml:"published"`
	Authors         []arxivAuthor `xml:"author"`
	DOI             string        `xml:"http://arxiv.org/schemas/atom doi"`
	JournalRef      string        `xml:"http://arxiv.org/schemas/atom journal_ref"`
	PrimaryCategory arxivCategory `xml:"http://arxiv.org/schemas/atom primary_category"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
