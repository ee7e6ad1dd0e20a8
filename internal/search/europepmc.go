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

// europePMCSearchBase is the Europe PMC REST search endpoint. Declared as a
// var so tests can substitute an httptest server.
var europePMCSearchBase = "https://www.ebi.ac.uk/europepmc/webservices/rest/search"

// EuropePMCProvider queries the Europe PMC biomedical index for
// open-access records.
type EuropePMCProvider struct {
	Client *httputil.Client
}

// Name returns the provider identifier.
func (p *EuropePMCProvider) Name() string { return types.ProviderEuropePMC }

// Search queries the Europe PMC API.
func (p *EuropePMCProvider) Search(ctx context.Context, query string, limit int) ([]types.Resource, error) {
	if limit > 1000 {
		limit = 1000
	}

	params := url.Values{
		"query":      {fmt.Sprintf("(%s) AND OPEN_ACCESS:y", query)},
		"format":     {"json"},
		"resultType": {"lite"},
		"pageSize":   {strconv.Itoa(limit)},
	}

	var er europePMCResponse
	if err := clientOr(p.Client).GetJSON(ctx, europePMCSearchBase+"?"+params.Encode(), nil, &er); err != nil {
		return nil, fmt.Errorf("Europe PMC API request: %w", err)
	}

	var results []types.Resource
	for _, hit := range er.ResultList.Result {
		if !strings.EqualFold(hit.IsOpenAccess, "Y") {
			continue
		}

		rec := normalize.Record{
			ID:       hit.Source + "/" + hit.ID,
			Title:    hit.Title,
			KindHint: types.KindMedical,
			Source:   types.ProviderEuropePMC,
			URL:      europePMCURL(hit),
			Authors:  hit.AuthorString,
			Year:     hit.PubYear,
			Venue:    hit.JournalTitle,
			DOI:      hit.DOI,
			Domain:   "biomedicine",
		}
		if hit.Source == "PPR" {
			rec.Kind = "preprint"
		}
		if hit.ID == "" {
			rec.ID = ""
		}

		if r, ok := normalize.Resource(rec); ok {
			results = append(results, r)
		}
	}
	return results, nil
}

// europePMCURL links to the full text when a PMC copy exists, otherwise to
// the abstract page.
func europePMCURL(hit europePMCResult) string {
	if hit.PMCID != "" {
		return "https://europepmc.org/article/PMC/" + hit.PMCID
	}
	if hit.ID != "" && hit.Source != "" {
		return "https://europepmc.org/article/" + hit.Source + "/" + hit.ID
	}
	return ""
}

// Europe PMC API JSON structures.
type europePMCResponse struct {
	HitCount   int `json:"hitCount"`
	ResultList struct {
		Result []europePMCResult `json:"result"`
	} `json:"resultList"`
}

type europePMCResult struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	PMCID        string `json:"pmcid"`
	DOI          string `json:"doi"`
	Title        string `json:"title"`
	AuthorString string `json:"authorString"`
	JournalTitle string `json:"journalTitle"`
	PubYear      string `json:"pubYear"`
	IsOpenAccess string `json:"isOpenAccess"`
}
