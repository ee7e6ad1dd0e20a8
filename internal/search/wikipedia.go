// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/pdiddy/scholar-federator/internal/httputil"
	"github.com/pdiddy/scholar-federator/internal/normalize"
	"github.com/pdiddy/scholar-federator/pkg/types"
)

// Wikipedia endpoints. Declared as vars so tests can substitute an
// httptest server.
var (
	wikipediaSearchBase = "https://en.wikipedia.org/w/rest.php/v1/search/page"
	wikipediaPageBase   = "https://en.wikipedia.org/wiki/"
)

const wikipediaLicense = "CC BY-SA 4.0"

// WikipediaProvider queries Wikipedia for encyclopedic reference entries.
type WikipediaProvider struct {
	Client *httputil.Client
}

// Name returns the provider identifier.
func (p *WikipediaProvider) Name() string { return types.ProviderWikipedia }

// Search queries the Wikipedia REST API.
func (p *WikipediaProvider) Search(ctx context.Context, query string, limit int) ([]types.Resource, error) {
	if limit > 100 {
		limit = 100
	}

	params := url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(limit)},
	}

	var wr wikipediaResponse
	if err := clientOr(p.Client).GetJSON(ctx, wikipediaSearchBase+"?"+params.Encode(), nil, &wr); err != nil {
		return nil, fmt.Errorf("Wikipedia API request: %w", err)
	}

	var results []types.Resource
	for _, page := range wr.Pages {
		rec := normalize.Record{
			Title:    page.Title,
			KindHint: types.KindReference,
			Source:   types.ProviderWikipedia,
			Summary:  htmlText(page.Excerpt),
			Venue:    "Wikipedia",
			Domain:   page.Description,
			Level:    string(types.LevelEntry),
			License:  wikipediaLicense,
		}
		if page.ID > 0 {
			rec.ID = strconv.Itoa(page.ID)
		}
		if page.Key != "" {
			rec.URL = wikipediaPageBase + url.PathEscape(page.Key)
		}

		if r, ok := normalize.Resource(rec); ok {
			results = append(results, r)
		}
	}
	return results, nil
}

// Wikipedia REST API JSON structures.
type wikipediaResponse struct {
	Pages []wikipediaPage `json:"pages"`
}

type wikipediaPage struct {
	ID          int    `json:"id"`
	Key         string `json:"key"`
	Title       string `json:"title"`
	Excerpt     string `json:"excerpt"`
	Description string `json:"description"`
}
