// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlText returns the text content of an HTML or JATS fragment. Input
// that fails to parse is returned unchanged.
func htmlText(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return fragment
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	// Drop JATS section titles such as <jats:title>Abstract</jats:title>.
	doc.Find("*").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return goquery.NodeName(s) == "jats:title"
	}).Remove()
	return doc.Text()
}
