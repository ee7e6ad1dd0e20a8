// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-federator/pkg/types"
)

func sampleAggregate() types.AggregateResult {
	return types.AggregateResult{
		Resources: []types.Resource{
			{ID: "arxiv:1", Title: "Quantum Networks: A Survey", Kind: types.KindPreprint, Source: "arxiv", Year: 2023, Authors: []string{"Alice Smith", "Bob Jones"}},
			{ID: "openalex:W1", Title: "Entanglement", Kind: types.KindArticle, Source: "openalex"},
		},
		SourceBreakdown: map[string]int{"openalex": 1, "arxiv": 1},
		Web:             []types.WebResult{{Title: "Quantum - Wikipedia", URL: "https://en.wikipedia.org/wiki/Quantum"}},
	}
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(sampleAggregate(), &buf)
	out := buf.String()

	assert.Contains(t, out, "Quantum Networks: A Survey")
	assert.Contains(t, out, "Alice Smith et al.")
	assert.Contains(t, out, "2023")
	assert.Contains(t, out, "2 results (arxiv: 1, openalex: 1)")
	assert.Contains(t, out, "Web:")
	assert.Contains(t, out, "https://en.wikipedia.org/wiki/Quantum")
	assert.NotContains(t, out, "some sources failed")
}

func TestFormatTableEmptyAndDegraded(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(types.AggregateResult{Degraded: true, FailedSources: []string{"arxiv", "crossref"}}, &buf)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "No results found."))
	assert.Contains(t, out, "some sources failed: arxiv, crossref")
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(sampleAggregate(), &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "resources")
	assert.Contains(t, decoded, "sourceBreakdown")
	assert.Contains(t, decoded, "web")
	assert.Equal(t, false, decoded["degraded"])
	assert.NotContains(t, decoded, "failedSources")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ünïcö...", truncate("ünïcödé-text", 8))
}

func TestFormatAuthors(t *testing.T) {
	assert.Equal(t, "", formatAuthors(nil))
	assert.Equal(t, "Ada Lovelace", formatAuthors([]string{"Ada Lovelace"}))
	assert.Equal(t, "Ada Lovelace et al.", formatAuthors([]string{"Ada Lovelace", "Charles Babbage"}))
}

func TestHTMLText(t *testing.T) {
	assert.Equal(t, "plain text", htmlText("plain text"))
	assert.Equal(t, "We study open science.", htmlText("<jats:title>Abstract</jats:title><jats:p>We study <jats:italic>open</jats:italic> science.</jats:p>"))
	assert.Equal(t, "bold move", htmlText("<b>bold</b> move"))
}
