// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"net/http"
	"testing"

	"github.com/pdiddy/scholar-federator/pkg/types"
)

func TestBuildArxivQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"single term", "transformers", "all:transformers"},
		{"multiple terms", "graph  neural networks", "all:graph AND all:neural AND all:networks"},
		{"blank", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildArxivQuery(tt.query); got != tt.want {
				t.Errorf("buildArxivQuery(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestExtractArxivID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://arxiv.org/abs/2301.07041v1", "2301.07041"},
		{"http://arxiv.org/abs/2301.07041v12", "2301.07041"},
		{"http://arxiv.org/abs/2301.07041", "2301.07041"},
		{"http://arxiv.org/abs/hep-th/9901001v2", "hep-th/9901001"},
		{"not-an-arxiv-url", ""},
	}
	for _, tt := range tests {
		if got := extractArxivID(tt.in); got != tt.want {
			t.Errorf("extractArxivID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

const sampleArxivXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:arxiv="http://arxiv.org/schemas/atom">
  <title>ArXiv Query</title>
  <entry>
    <id>http://arxiv.org/abs/2301.07041v2</id>
    <published>2023-01-17T18:59:59Z</published>
    <title>Quantum Networks:
      A Survey</title>
    <summary>  We survey quantum
      networks.  </summary>
    <author><name>Alice Smith</name></author>
    <author><name>Bob Jones</name></author>
    <arxiv:doi>10.1000/qn.2023</arxiv:doi>
    <arxiv:journal_ref>Rev. Mod. Phys. 95 (2023)</arxiv:journal_ref>
    <arxiv:primary_category term="quant-ph" scheme="http://arxiv.org/schemas/atom"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2302.00001v1</id>
    <published>2023-02-01T00:00:00Z</published>
    <title>Untitled Venue</title>
    <summary>Short.</summary>
    <author><name>Carol White</name></author>
    <arxiv:primary_category term="cs.LG" scheme="http://arxiv.org/schemas/atom"/>
  </entry>
  <entry>
    <id>garbage</id>
    <title>No ID</title>
  </entry>
</feed>`

func TestArxivProviderSearch(t *testing.T) {
	ts := newFixtureServer(t, http.StatusOK, "application/atom+xml", sampleArxivXML)
	setBase(t, &arxivAPIBase, ts.URL)

	p := &ArxivProvider{}
	results, err := p.Search(context.Background(), "quantum networks", 7)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}

	q := ts.lastQuery()
	if q.Get("search_query") != "all:quantum AND all:networks" {
		t.Errorf("search_query = %q", q.Get("search_query"))
	}
	if q.Get("max_results") != "7" {
		t.Errorf("max_results = %q, want 7", q.Get("max_results"))
	}

	r0 := results[0]
	if r0.ID != "arxiv:2301.07041" {
		t.Errorf("ID = %q", r0.ID)
	}
	if r0.Title != "Quantum Networks: A Survey" {
		t.Errorf("Title = %q", r0.Title)
	}
	if r0.Summary != "We survey quantum networks." {
		t.Errorf("Summary = %q", r0.Summary)
	}
	if r0.Kind != types.KindPreprint {
		t.Errorf("Kind = %q, want preprint", r0.Kind)
	}
	if r0.URL != "https://arxiv.org/abs/2301.07041" {
		t.Errorf("URL = %q", r0.URL)
	}
	if r0.Year != 2023 {
		t.Errorf("Year = %d", r0.Year)
	}
	if r0.ExternalID != "10.1000/qn.2023" {
		t.Errorf("ExternalID = %q", r0.ExternalID)
	}
	if r0.Venue != "Rev. Mod. Phys. 95 (2023)" {
		t.Errorf("Venue = %q", r0.Venue)
	}
	if r0.Domain != "quant-ph" {
		t.Errorf("Domain = %q", r0.Domain)
	}
	if len(r0.Authors) != 2 || r0.Authors[0] != "Alice Smith" {
		t.Errorf("Authors = %v", r0.Authors)
	}
	if r0.Access != types.AccessOpen {
		t.Errorf("Access = %q", r0.Access)
	}

	if results[1].Venue != "arXiv" {
		t.Errorf("Venue = %q, want arXiv default", results[1].Venue)
	}
}

func TestArxivProviderEmptyQuery(t *testing.T) {
	if _, err := (&ArxivProvider{}).Search(context.Background(), " ", 5); err == nil {
		t.Error("expected error for blank query")
	}
}

func TestArxivProviderMalformedXML(t *testing.T) {
	ts := newFixtureServer(t, http.StatusOK, "application/atom+xml", "<feed><entry>")
	setBase(t, &arxivAPIBase, ts.URL)

	if _, err := (&ArxivProvider{}).Search(context.Background(), "x", 5); err == nil {
		t.Error("expected parse error")
	}
}

func TestArxivProviderHTTPError(t *testing.T) {
	ts := newFixtureServer(t, http.StatusBadGateway, "text/plain", "bad gateway")
	setBase(t, &arxivAPIBase, ts.URL)

	if _, err := (&ArxivProvider{}).Search(context.Background(), "x", 5); err == nil {
		t.Error("expected error for HTTP 502")
	}
}
