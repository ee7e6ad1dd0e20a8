// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/scholar-federator/internal/httputil"
	"github.com/pdiddy/scholar-federator/internal/normalize"
	"github.com/pdiddy/scholar-federator/pkg/types"
)

// duckDuckGoHTMLBase is the DuckDuckGo no-JavaScript results page. Declared
// as a var so tests can substitute an httptest server.
var duckDuckGoHTMLBase = "https://html.duckduckgo.com/html/"

// DuckDuckGoProvider is the general web provider. It scrapes the HTML
// results page because the instant-answer API returns topics, not hits.
type DuckDuckGoProvider struct {
	Client *httputil.Client
}

// Name returns the provider identifier.
func (p *DuckDuckGoProvider) Name() string { return types.ProviderDuckDuckGo }

// Search fetches one results page and returns up to limit hits.
func (p *DuckDuckGoProvider) Search(ctx context.Context, query string, limit int) ([]types.WebResult, error) {
	reqURL := duckDuckGoHTMLBase + "?" + url.Values{"q": {query}}.Encode()

	resp, err := clientOr(p.Client).Get(ctx, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("DuckDuckGo request: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing DuckDuckGo response: %w", err)
	}

	var results []types.WebResult
	doc.Find(".result").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.HasClass("result--ad") {
			return true
		}
		link := s.Find("a.result__a").First()
		href, _ := link.Attr("href")
		rec := normalize.WebRecord{
			Title:   link.Text(),
			URL:     resolveDuckDuckGoHref(href),
			Snippet: s.Find(".result__snippet").First().Text(),
			Source:  s.Find(".result__url").First().Text(),
		}
		if w, ok := normalize.WebResult(rec); ok {
			results = append(results, w)
		}
		return len(results) < limit
	})
	return results, nil
}

// resolveDuckDuckGoHref unwraps DuckDuckGo's redirect links
// ("//duckduckgo.com/l/?uddg=<target>") to the target URL.
func resolveDuckDuckGoHref(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if strings.HasSuffix(u.Host, "duckduckgo.com") && strings.HasPrefix(u.Path, "/l/") {
		if target := u.Query().Get("uddg"); target != "" {
			return target
		}
	}
	return href
}
