// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"net/http"
	"testing"

	"github.com/pdiddy/scholar-federator/pkg/types"
)

const sampleSemanticJSON = `{
  "total": 4,
  "offset": 0,
  "data": [
    {
      "paperId": "204e3073870fae3d05bcbc2f6a8e263d9b72e776",
      "title": "Attention Is All You Need",
      "abstract": "The dominant sequence transduction models...",
      "year": 2017,
      "venue": "NeurIPS",
      "url": "https://www.semanticscholar.org/paper/204e3073",
      "isOpenAccess": true,
      "openAccessPdf": {"url": "https://arxiv.org/pdf/1706.03762.pdf"},
      "fieldsOfStudy": ["Computer Science", "Mathematics"],
      "authors": [{"name": "Ashish Vaswani"}, {"name": "Noam Shazeer"}],
      "externalIds": {"DOI": "10.5555/3295222.3295349", "ArXiv": "1706.03762"}
    },
    {
      "paperId": "abc",
      "title": "An Arxiv Only Paper",
      "year": 2023,
      "venue": "",
      "url": "https://www.semanticscholar.org/paper/abc",
      "isOpenAccess": true,
      "openAccessPdf": {"url": ""},
      "authors": [{"name": "Solo Author"}],
      "externalIds": {"ArXiv": "2301.00001"}
    },
    {
      "paperId": "closed",
      "title": "Closed Paper",
      "year": 2020,
      "isOpenAccess": false,
      "openAccessPdf": {"url": ""}
    },
    {
      "paperId": "untitled",
      "title": "",
      "isOpenAccess": true
    }
  ]
}`

func TestSemanticScholarProviderSearch(t *testing.T) {
	ts := newFixtureServer(t, http.StatusOK, "application/json", sampleSemanticJSON)
	setBase(t, &semanticAPIBase, ts.URL)

	p := &SemanticScholarProvider{}
	results, err := p.Search(context.Background(), "attention", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	r0 := results[0]
	if r0.ID != "semantic_scholar:204e3073870fae3d05bcbc2f6a8e263d9b72e776" {
		t.Errorf("ID = %q", r0.ID)
	}
	if r0.URL != "https://arxiv.org/pdf/1706.03762.pdf" {
		t.Errorf("URL = %q, want open-access PDF", r0.URL)
	}
	if r0.Kind != types.KindArticle {
		t.Errorf("Kind = %q", r0.Kind)
	}
	if r0.ExternalID != "10.5555/3295222.3295349" {
		t.Errorf("ExternalID = %q", r0.ExternalID)
	}
	if r0.Domain != "Computer Science, Mathematics" {
		t.Errorf("Domain = %q", r0.Domain)
	}
	if len(r0.Authors) != 2 || r0.Authors[1] != "Noam Shazeer" {
		t.Errorf("Authors = %v", r0.Authors)
	}

	r1 := results[1]
	if r1.Kind != types.KindPreprint {
		t.Errorf("Kind = %q, want preprint for an arXiv-only paper", r1.Kind)
	}
	if r1.URL != "https://www.semanticscholar.org/paper/abc" {
		t.Errorf("URL = %q, want landing page fallback", r1.URL)
	}
}

func TestSemanticScholarProviderRequestParams(t *testing.T) {
	ts := newFixtureServer(t, http.StatusOK, "application/json", `{"total":0,"data":[]}`)
	setBase(t, &semanticAPIBase, ts.URL)

	p := &SemanticScholarProvider{}
	if _, err := p.Search(context.Background(), "graph neural networks", 250); err != nil {
		t.Fatalf("Search: %v", err)
	}
	q := ts.lastQuery()
	if q.Get("query") != "graph neural networks" {
		t.Errorf("query = %q", q.Get("query"))
	}
	if q.Get("limit") != "100" {
		t.Errorf("limit = %q, want clamp to 100", q.Get("limit"))
	}
	if q.Get("fields") != semanticFields {
		t.Errorf("fields = %q", q.Get("fields"))
	}
	if !q.Has("openAccessPdf") {
		t.Error("openAccessPdf filter missing")
	}
	if got := ts.lastHeader().Get("x-api-key"); got != "" {
		t.Errorf("x-api-key = %q, want none", got)
	}
}

func TestSemanticScholarProviderAPIKeyHeader(t *testing.T) {
	ts := newFixtureServer(t, http.StatusOK, "application/json", `{"total":0,"data":[]}`)
	setBase(t, &semanticAPIBase, ts.URL)

	p := &SemanticScholarProvider{APIKey: "secret-key"}
	if _, err := p.Search(context.Background(), "x", 5); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := ts.lastHeader().Get("x-api-key"); got != "secret-key" {
		t.Errorf("x-api-key = %q, want secret-key", got)
	}
}

func TestSemanticScholarProviderHTTPErrors(t *testing.T) {
	for _, code := range []int{http.StatusTooManyRequests, http.StatusInternalServerError} {
		ts := newFixtureServer(t, code, "application/json", `{"message":"slow down"}`)
		setBase(t, &semanticAPIBase, ts.URL)

		if _, err := (&SemanticScholarProvider{}).Search(context.Background(), "x", 5); err == nil {
			t.Errorf("HTTP %d: expected error", code)
		}
	}
}

func TestSemanticScholarProviderName(t *testing.T) {
	if got := (&SemanticScholarProvider{}).Name(); got != "semantic_scholar" {
		t.Errorf("Name() = %q", got)
	}
}
