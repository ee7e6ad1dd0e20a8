// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/scholar-federator/internal/httputil"
	"github.com/pdiddy/scholar-federator/internal/normalize"
	"github.com/pdiddy/scholar-federator/pkg/types"
)

// crossrefWorksBase is the Crossref works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefWorksBase = "https://api.crossref.org/works"

// CrossrefProvider queries the Crossref citation index. Crossref carries
// no open-access flag, so only works under a Creative Commons license are kept.
type CrossrefProvider struct {
	Client *httputil.Client
	// Mailto is sent for polite pool access.
	Mailto string
}

// Name returns the provider identifier.
func (p *CrossrefProvider) Name() string { return types.ProviderCrossref }

// Search queries the Crossref API.
func (p *CrossrefProvider) Search(ctx context.Context, query string, limit int) ([]types.Resource, error) {
	if limit > 1000 {
		limit = 1000
	}

	params := url.Values{
		"query":  {query},
		"rows":   {strconv.Itoa(limit)},
		"filter": {"has-license:true"},
		"select": {"DOI,title,author,type,issued,container-title,license,URL,abstract,subject"},
	}
	if p.Mailto != "" {
		params.Set("mailto", p.Mailto)
	}

	var cr crossrefResponse
	if err := clientOr(p.Client).GetJSON(ctx, crossrefWorksBase+"?"+params.Encode(), nil, &cr); err != nil {
		return nil, fmt.Errorf("Crossref API request: %w", err)
	}

	var results []types.Resource
	for _, item := range cr.Message.Items {
		license := openLicense(item.License)
		if license == "" {
			continue
		}

		rec := normalize.Record{
			ID:       item.DOI,
			Title:    first(item.Title),
			Kind:     item.Type,
			KindHint: types.KindArticle,
			Source:   types.ProviderCrossref,
			URL:      item.URL,
			Summary:  htmlText(item.Abstract),
			Venue:    first(item.ContainerTitle),
			DOI:      item.DOI,
			License:  license,
			Domain:   first(item.Subject),
		}
		if len(item.Issued.DateParts) > 0 && len(item.Issued.DateParts[0]) > 0 {
			rec.Year = item.Issued.DateParts[0][0]
		}

		var authors []string
		for _, a := range item.Author {
			name := strings.TrimSpace(a.Given + " " + a.Family)
			if name == "" {
				name = a.Name
			}
			authors = append(authors, name)
		}
		rec.Authors = authors

		if r, ok := normalize.Resource(rec); ok {
			results = append(results, r)
		}
	}
	return results, nil
}

// openLicense returns the first Creative Commons license URL, or "".
func openLicense(licenses []crossrefLicense) string {
	for _, l := range licenses {
		if strings.Contains(strings.ToLower(l.URL), "creativecommons.org") {
			return l.URL
		}
	}
	return ""
}

func first(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	return ss[0]
}

// Crossref API JSON structures.
type crossrefResponse struct {
	Message struct {
		Items []crossrefItem `json:"items"`
	} `json:"message"`
}

type crossrefItem struct {
	DOI            string            `json:"DOI"`
	Title          []string          `json:"title"`
	Type           string            `json:"type"`
	URL            string            `json:"URL"`
	Abstract       string            `json:"abstract"`
	ContainerTitle []string          `json:"container-title"`
	Subject        []string          `json:"subject"`
	Author         []crossrefAuthor  `json:"author"`
	License        []crossrefLicense `json:"license"`
	Issued         struct {
		DateParts [][]int `json:"date-parts"`
	} `json:"issued"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
	Name   string `json:"name"`
}

type crossrefLicense struct {
	URL string `json:"URL"`
}
