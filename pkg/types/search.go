// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the records exchanged between provider adapters,
// the federator, and the entry points.
package types

// Kind classifies the nature of a resource, independent of where it came from.
type Kind string

const (
	KindArticle   Kind = "article"
	KindPreprint  Kind = "preprint"
	KindMedical   Kind = "medical"
	KindReference Kind = "reference"
)

// Valid reports whether k is one of the closed set of kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindArticle, KindPreprint, KindMedical, KindReference:
		return true
	}
	return false
}

// Level is an optional reading-level hint.
type Level string

const (
	LevelEntry        Level = "entry"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelEntry, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Access describes how a resource can be read. Only open resources are surfaced.
type Access string

const AccessOpen Access = "open"

// CurationStatus records whether a resource has been checked by a person or policy.
type CurationStatus string

const (
	CurationAutomated CurationStatus = "automated-discovery"
	CurationReviewed  CurationStatus = "reviewed"
)

// Resource is the canonical record every scholarly provider result is
// converted into. Values are built by the normalize package and treated as
// immutable afterwards.
type Resource struct {
	// ID is unique within one aggregate response, namespaced by source
	// (e.g. "arxiv:2301.07041").
	ID string `json:"id" yaml:"id"`

	Title string `json:"title" yaml:"title"`
	Kind  Kind   `json:"kind" yaml:"kind"`

	// Source names the provider that produced the record (e.g. "openalex").
	Source string `json:"source" yaml:"source"`

	URL     string   `json:"url,omitempty" yaml:"url,omitempty"`
	Summary string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Year is zero when the provider gave no plausible publication year.
	Year  int    `json:"year,omitempty" yaml:"year,omitempty"`
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// ExternalID is a canonical DOI, lower-cased and without resolver prefix.
	ExternalID string `json:"externalId,omitempty" yaml:"external_id,omitempty"`

	Access         Access         `json:"access" yaml:"access"`
	Domain         string         `json:"domain,omitempty" yaml:"domain,omitempty"`
	Level          Level          `json:"level,omitempty" yaml:"level,omitempty"`
	License        string         `json:"license,omitempty" yaml:"license,omitempty"`
	CurationStatus CurationStatus `json:"curationStatus" yaml:"curation_status"`
}

// WebResult is a general web hit. It is kept apart from Resources and never
// deduplicated against them.
type WebResult struct {
	Title   string `json:"title" yaml:"title"`
	URL     string `json:"url" yaml:"url"`
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`
	Source  string `json:"source,omitempty" yaml:"source,omitempty"`
}

// AggregateResult is the merged output of one federated search.
type AggregateResult struct {
	Resources []Resource `json:"resources" yaml:"resources"`

	// SourceBreakdown counts surviving resources per source after dedup
	// and filtering.
	SourceBreakdown map[string]int `json:"sourceBreakdown" yaml:"source_breakdown"`

	// Web is populated only when web results were requested.
	Web []WebResult `json:"web,omitempty" yaml:"web,omitempty"`

	// Degraded is true when at least one invoked provider failed or timed out.
	Degraded bool `json:"degraded" yaml:"degraded"`

	// FailedSources lists the providers that contributed nothing because
	// they failed, sorted by name.
	FailedSources []string `json:"failedSources,omitempty" yaml:"failed_sources,omitempty"`
}
