// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/scholar-federator/internal/httputil"
	"github.com/pdiddy/scholar-federator/internal/normalize"
	"github.com/pdiddy/scholar-federator/pkg/types"
)

// openAlexSearchBase is the OpenAlex Works search endpoint. Declared as a
// var so tests can substitute an httptest server.
var openAlexSearchBase = "https://api.openalex.org/works"

// OpenAlexProvider queries the OpenAlex citation index, restricted to
// open-access works.
type OpenAlexProvider struct {
	Client *httputil.Client
	// Email is sent as mailto parameter for polite pool access.
	Email string
}

// Name returns the provider identifier.
func (p *OpenAlexProvider) Name() string { return types.ProviderOpenAlex }

// Search queries the OpenAlex API.
func (p *OpenAlexProvider) Search(ctx context.Context, query string, limit int) ([]types.Resource, error) {
	if limit > 200 {
		limit = 200
	}

	params := url.Values{
		"search":   {query},
		"filter":   {"is_oa:true"},
		"per_page": {strconv.Itoa(limit)},
		"page":     {"1"},
	}
	if p.Email != "" {
		params.Set("mailto", p.Email)
	}

	var oar openAlexResponse
	if err := clientOr(p.Client).GetJSON(ctx, openAlexSearchBase+"?"+params.Encode(), nil, &oar); err != nil {
		return nil, fmt.Errorf("OpenAlex API request: %w", err)
	}

	var results []types.Resource
	for _, work := range oar.Results {
		if !work.OpenAccess.IsOA {
			continue
		}

		rec := normalize.Record{
			ID:       strings.TrimPrefix(work.ID, "https://openalex.org/"),
			Title:    work.Title,
			Kind:     work.Type,
			KindHint: types.KindArticle,
			Source:   types.ProviderOpenAlex,
			URL:      work.OpenAccess.OAURL,
			Summary:  reconstructAbstract(work.AbstractInvertedIndex),
			Year:     work.PublicationYear,
			DOI:      work.DOI,
			Venue:    work.PrimaryLocation.Source.DisplayName,
			License:  work.PrimaryLocation.License,
			Domain:   work.PrimaryTopic.Field.DisplayName,
		}
		if rec.URL == "" {
			rec.URL = work.DOI
		}
		if work.PublicationYear == 0 {
			rec.Year = work.PublicationDate
		}

		var authors []string
		for _, authorship := range work.Authorships {
			authors = append(authors, authorship.Author.DisplayName)
		}
		rec.Authors = authors

		if r, ok := normalize.Resource(rec); ok {
			results = append(results, r)
		}
	}
	return results, nil
}

// reconstructAbstract converts OpenAlex's abstract_inverted_index back to
// plain text. The inverted index maps each word to a list of positions
// where that word appears.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Results []openAlexWork `json:"results"`
}

type openAlexWork struct {
	ID                    string               `json:"id"`
	Title                 string               `json:"title"`
	DOI                   string               `json:"doi"`
	Type                  string               `json:"type"`
	PublicationDate       string               `json:"publication_date"`
	PublicationYear       int                  `json:"publication_year"`
	Authorships           []openAlexAuthorship `json:"authorships"`
	AbstractInvertedIndex map[string][]int     `json:"abstract_inverted_index"`
	OpenAccess            openAlexOpenAccess   `json:"open_access"`
	PrimaryLocation       openAlexLocation     `json:"primary_location"`
	PrimaryTopic          openAlexTopic        `json:"primary_topic"`
}

type openAlexAuthorship struct {
	Author struct {
		DisplayName string `json:"display_name"`
	} `json:"author"`
}

type openAlexOpenAccess struct {
	IsOA  bool   `json:"is_oa"`
	OAURL string `json:"oa_url"`
}

type openAlexLocation struct {
	License string `json:"license"`
	Source  struct {
		DisplayName string `json:"display_name"`
	} `json:"source"`
}

type openAlexTopic struct {
	Field struct {
		DisplayName string `json:"display_name"`
	} `json:"field"`
}
