// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/scholar-federator/internal/httputil"
	"github.com/pdiddy/scholar-federator/internal/normalize"
	"github.com/pdiddy/scholar-federator/pkg/types"
)

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,abstract,authors,externalIds,year,venue,url,isOpenAccess,openAccessPdf,fieldsOfStudy"

// SemanticScholarProvider queries the Semantic Scholar index, keeping only
// papers with an open-access copy.
type SemanticScholarProvider struct {
	Client *httputil.Client
	APIKey string
}

// Name returns the provider identifier.
func (p *SemanticScholarProvider) Name() string { return types.ProviderSemanticScholar }

// Search queries the Semantic Scholar API.
func (p *SemanticScholarProvider) Search(ctx context.Context, query string, limit int) ([]types.Resource, error) {
	if limit > 100 {
		limit = 100
	}

	params := url.Values{
		"query":         {query},
		"limit":         {strconv.Itoa(limit)},
		"fields":        {semanticFields},
		"openAccessPdf": {""},
	}

	header := http.Header{}
	if p.APIKey != "" {
		header.Set("x-api-key", p.APIKey)
	}

	var sr semanticResponse
	if err := clientOr(p.Client).GetJSON(ctx, semanticAPIBase+"?"+params.Encode(), header, &sr); err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}

	var results []types.Resource
	for _, paper := range sr.Data {
		if !paper.IsOpenAccess && paper.OpenAccessPDF.URL == "" {
			continue
		}

		rec := normalize.Record{
			ID:       paper.PaperID,
			Title:    paper.Title,
			KindHint: types.KindArticle,
			Source:   types.ProviderSemanticScholar,
			URL:      paper.OpenAccessPDF.URL,
			Summary:  paper.Abstract,
			Year:     paper.Year,
			Venue:    paper.Venue,
			DOI:      paper.ExternalIDs.DOI,
			Domain:   strings.Join(paper.FieldsOfStudy, ", "),
		}
		if rec.URL == "" {
			rec.URL = paper.URL
		}
		if paper.ExternalIDs.ArXiv != "" && paper.Venue == "" {
			rec.Kind = "preprint"
		}

		var authors []string
		for _, a := range paper.Authors {
			authors = append(authors, a.Name)
		}
		rec.Authors = authors

		if r, ok := normalize.Resource(rec); ok {
			results = append(results, r)
		}
	}
	return results, nil
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total int             `json:"total"`
	Data  []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID       string              `json:"paperId"`
	Title         string              `json:"title"`
	Abstract      string              `json:"abstract"`
	Year          int                 `json:"year"`
	Venue         string              `json:"venue"`
	URL           string              `json:"url"`
	IsOpenAccess  bool                `json:"isOpenAccess"`
	OpenAccessPDF semanticPDF         `json:"openAccessPdf"`
	FieldsOfStudy []string            `json:"fieldsOfStudy"`
	Authors       []semanticAuthor    `json:"authors"`
	ExternalIDs   semanticExternalIDs `json:"externalIds"`
}

type semanticPDF struct {
	URL string `json:"url"`
}

type semanticAuthor struct {
	Name string `json:"name"`
}

type semanticExternalIDs struct {
	DOI   string `json:"DOI"`
	ArXiv string `json:"ArXiv"`
}
