// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/pdiddy/scholar-federator/internal/httputil"
	"github.com/pdiddy/scholar-federator/pkg/types"
)

// --- reconstructAbstract ---

func TestReconstructAbstract(t *testing.T) {
	tests := []struct {
		name  string
		index map[string][]int
		want  string
	}{
		{"nil", nil, ""},
		{"empty", map[string][]int{}, ""},
		{"single word", map[string][]int{"hello": {0}}, "hello"},
		{"ordered", map[string][]int{"We": {0}, "propose": {1}, "attention": {2}}, "We propose attention"},
		{"repeated word", map[string][]int{"the": {0, 2}, "cat": {1}, "dog": {3}}, "the cat the dog"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reconstructAbstract(tt.index); got != tt.want {
				t.Errorf("reconstructAbstract() = %q, want %q", got, tt.want)
			}
		})
	}
}

const sampleOpenAlexJSON = `{
  "meta": {"count": 3, "per_page": 20, "page": 1},
  "results": [
    {
      "id": "https://openalex.org/W2963403868",
      "title": "Attention  Is All You Need",
      "doi": "https://doi.org/10.5555/3295222.3295349",
      "type": "article",
      "publication_date": "2017-06-12",
      "publication_year": 2017,
      "authorships": [
        {"author": {"display_name": "Ashish Vaswani"}},
        {"author": {"display_name": "Noam Shazeer"}}
      ],
      "abstract_inverted_index": {"We": [0], "propose": [1], "attention": [2]},
      "open_access": {"is_oa": true, "oa_url": "https://arxiv.org/pdf/1706.03762"},
      "primary_location": {"license": "cc-by", "source": {"display_name": "NeurIPS"}},
      "primary_topic": {"field": {"display_name": "Computer Science"}}
    },
    {
      "id": "https://openalex.org/W3210812345",
      "title": "BERT: Pre-training of Deep Bidirectional Transformers",
      "doi": "https://doi.org/10.18653/v1/N19-1423",
      "type": "preprint",
      "publication_date": "2018-10-11",
      "publication_year": 0,
      "authorships": [{"author": {"display_name": "Jacob Devlin"}}],
      "abstract_inverted_index": {},
      "open_access": {"is_oa": true, "oa_url": ""}
    },
    {
      "id": "https://openalex.org/W1",
      "title": "Paywalled Paper",
      "type": "article",
      "publication_year": 2020,
      "open_access": {"is_oa": false}
    }
  ]
}`

// --- OpenAlexProvider.Search ---

func TestOpenAlexProviderSearch(t *testing.T) {
	ts := newFixtureServer(t, http.StatusOK, "application/json", sampleOpenAlexJSON)
	setBase(t, &openAlexSearchBase, ts.URL)

	p := &OpenAlexProvider{Email: "test@example.com"}
	results, err := p.Search(context.Background(), "attention", 20)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2 (closed-access work dropped)", len(results))
	}

	q := ts.lastQuery()
	if q.Get("search") != "attention" {
		t.Errorf("search = %q", q.Get("search"))
	}
	if q.Get("filter") != "is_oa:true" {
		t.Errorf("filter = %q, want is_oa:true", q.Get("filter"))
	}
	if q.Get("mailto") != "test@example.com" {
		t.Errorf("mailto = %q", q.Get("mailto"))
	}

	r0 := results[0]
	if r0.ID != "openalex:W2963403868" {
		t.Errorf("ID = %q", r0.ID)
	}
	if r0.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q, want whitespace collapsed", r0.Title)
	}
	if r0.Kind != types.KindArticle {
		t.Errorf("Kind = %q", r0.Kind)
	}
	if r0.ExternalID != "10.5555/3295222.3295349" {
		t.Errorf("ExternalID = %q, want bare DOI", r0.ExternalID)
	}
	if r0.URL != "https://arxiv.org/pdf/1706.03762" {
		t.Errorf("URL = %q, want oa_url", r0.URL)
	}
	if r0.Year != 2017 || r0.Venue != "NeurIPS" || r0.License != "cc-by" || r0.Domain != "Computer Science" {
		t.Errorf("Year/Venue/License/Domain = %d/%q/%q/%q", r0.Year, r0.Venue, r0.License, r0.Domain)
	}
	if len(r0.Authors) != 2 || r0.Authors[0] != "Ashish Vaswani" {
		t.Errorf("Authors = %v", r0.Authors)
	}
	if r0.Summary != "We propose attention" {
		t.Errorf("Summary = %q", r0.Summary)
	}
	if r0.Access != types.AccessOpen || r0.CurationStatus != types.CurationAutomated {
		t.Errorf("Access/CurationStatus = %q/%q", r0.Access, r0.CurationStatus)
	}

	r1 := results[1]
	if r1.Kind != types.KindPreprint {
		t.Errorf("Kind = %q, want preprint", r1.Kind)
	}
	// No oa_url falls back to the DOI; no publication_year falls back to the date.
	if r1.URL != "https://doi.org/10.18653/v1/N19-1423" {
		t.Errorf("URL = %q, want DOI link", r1.URL)
	}
	if r1.Year != 2018 {
		t.Errorf("Year = %d, want 2018 from publication_date", r1.Year)
	}
	if r1.Summary != "" {
		t.Errorf("Summary = %q, want empty", r1.Summary)
	}
}

func TestOpenAlexProviderLimitClamp(t *testing.T) {
	ts := newFixtureServer(t, http.StatusOK, "application/json", `{"results": []}`)
	setBase(t, &openAlexSearchBase, ts.URL)

	p := &OpenAlexProvider{}
	if _, err := p.Search(context.Background(), "x", 500); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := ts.lastQuery().Get("per_page"); got != "200" {
		t.Errorf("per_page = %q, want 200", got)
	}
	if ts.lastQuery().Has("mailto") {
		t.Error("mailto should be omitted without an email")
	}
}

func TestOpenAlexProviderHTTPError(t *testing.T) {
	ts := newFixtureServer(t, http.StatusServiceUnavailable, "text/plain", "maintenance")
	setBase(t, &openAlexSearchBase, ts.URL)

	_, err := (&OpenAlexProvider{}).Search(context.Background(), "x", 5)
	if err == nil {
		t.Fatal("expected error for HTTP 503")
	}
	var se *httputil.StatusError
	if !errors.As(err, &se) || se.Code != http.StatusServiceUnavailable {
		t.Errorf("error = %v, want StatusError 503", err)
	}
}

func TestOpenAlexProviderMalformedJSON(t *testing.T) {
	ts := newFixtureServer(t, http.StatusOK, "application/json", `{not json`)
	setBase(t, &openAlexSearchBase, ts.URL)

	_, err := (&OpenAlexProvider{}).Search(context.Background(), "x", 5)
	if err == nil || !strings.Contains(err.Error(), "decoding") {
		t.Errorf("error = %v, want decoding error", err)
	}
}

func TestOpenAlexProviderName(t *testing.T) {
	if got := (&OpenAlexProvider{}).Name(); got != "openalex" {
		t.Errorf("Name() = %q", got)
	}
}
