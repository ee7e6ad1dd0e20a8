// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize coerces provider-specific records into canonical
// resources. It is the only place that sets Access and CurationStatus, so
// every resource that leaves a provider passes through Resource or Recheck.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/pdiddy/scholar-federator/pkg/types"
)

// MinYear is the earliest publication year accepted.
const MinYear = 1000

// now is the clock used for the far-future year check. Tests replace it.
var now = time.Now

// idNamespace seeds the name-based UUIDs synthesized for records without a
// stable identifier.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/pdiddy/scholar-federator/resource"))

// Record is a loosely typed provider record. Adapters copy whatever the
// source returned into it; Resource does all shape coercion.
type Record struct {
	// ID is the provider's native identifier, without the source prefix.
	ID string

	Title string

	// Kind is the provider's own type label ("journal-article", "preprint", ...).
	Kind string

	// KindHint is used when Kind is empty or unrecognized.
	KindHint types.Kind

	Source  string
	URL     string
	Summary string

	// Authors may be a []string, a single delimited string, or nil.
	Authors any

	// Year may be an int, float64, json.Number, a string like "2019" or
	// "2019-04-01", or nil.
	Year any

	Venue   string
	DOI     string
	Domain  string
	Level   string
	License string
}

// Resource converts rec into a canonical resource. It reports false when
// rec lacks a title, a source, or an inferable kind.
func Resource(rec Record) (types.Resource, bool) {
	title := CollapseSpace(rec.Title)
	source := strings.ToLower(strings.TrimSpace(rec.Source))
	if title == "" || source == "" {
		return types.Resource{}, false
	}

	kind, ok := ParseKind(rec.Kind)
	if !ok {
		kind = rec.KindHint
	}
	if !kind.Valid() {
		return types.Resource{}, false
	}

	r := types.Resource{
		Title:          title,
		Kind:           kind,
		Source:         source,
		URL:            strings.TrimSpace(rec.URL),
		Summary:        CollapseSpace(rec.Summary),
		Authors:        Authors(rec.Authors),
		Year:           Year(rec.Year),
		Venue:          CollapseSpace(rec.Venue),
		ExternalID:     DOI(rec.DOI),
		Domain:         CollapseSpace(rec.Domain),
		License:        CollapseSpace(rec.License),
		Access:         types.AccessOpen,
		CurationStatus: types.CurationAutomated,
	}
	if lvl, ok := ParseLevel(rec.Level); ok {
		r.Level = lvl
	}
	r.ID = resourceID(source, strings.TrimSpace(rec.ID), title)
	return r, true
}

// Recheck re-applies the canonical invariants to a resource that has
// already been built. The source is reset to provider, the name of the
// provider that returned r, whatever the record claims. Resources that can
// no longer satisfy the invariants are rejected.
func Recheck(r types.Resource, provider string) (types.Resource, bool) {
	id := r.ID
	if prefix := strings.ToLower(strings.TrimSpace(r.Source)) + ":"; strings.HasPrefix(id, prefix) {
		id = strings.TrimPrefix(id, prefix)
	}
	out, ok := Resource(Record{
		ID:       id,
		Title:    r.Title,
		KindHint: r.Kind,
		Source:   provider,
		URL:      r.URL,
		Summary:  r.Summary,
		Authors:  r.Authors,
		Year:     r.Year,
		Venue:    r.Venue,
		DOI:      r.ExternalID,
		Domain:   r.Domain,
		Level:    string(r.Level),
		License:  r.License,
	})
	if !ok {
		return types.Resource{}, false
	}
	if r.CurationStatus == types.CurationReviewed {
		out.CurationStatus = types.CurationReviewed
	}
	return out, true
}

// WebRecord is the raw form of a web hit.
type WebRecord struct {
	Title   string
	URL     string
	Snippet string
	Source  string
}

// WebResult trims a web hit. It reports false when the title or URL is missing.
func WebResult(rec WebRecord) (types.WebResult, bool) {
	title := CollapseSpace(rec.Title)
	u := strings.TrimSpace(rec.URL)
	if title == "" || u == "" {
		return types.WebResult{}, false
	}
	return types.WebResult{
		Title:   title,
		URL:     u,
		Snippet: CollapseSpace(rec.Snippet),
		Source:  CollapseSpace(rec.Source),
	}, true
}

func resourceID(source, nativeID, title string) string {
	if nativeID == "" {
		nativeID = uuid.NewSHA1(idNamespace, []byte(source+"\x00"+Title(title))).String()
	}
	return source + ":" + nativeID
}

// CollapseSpace trims s and replaces every whitespace run with one space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Title returns the dedup form of a title: case-folded, punctuation
// stripped, whitespace collapsed.
func Title(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// DOI returns the canonical form of a DOI, or "" when s does not look like one.
func DOI(s string) string {
	d := strings.ToLower(strings.TrimSpace(s))
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/", "doi:"} {
		d = strings.TrimPrefix(d, prefix)
	}
	d = strings.TrimSpace(d)
	if !strings.HasPrefix(d, "10.") || !strings.Contains(d, "/") {
		return ""
	}
	return d
}

// Year extracts a plausible publication year from v. Non-numeric values
// and years outside [MinYear, next year] yield 0.
func Year(v any) int {
	var y int
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		y = t
	case int64:
		y = int(t)
	case float64:
		if t != float64(int(t)) {
			return 0
		}
		y = int(t)
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0
		}
		y = int(n)
	case string:
		s := strings.TrimSpace(t)
		if len(s) > 4 && (s[4] == '-' || s[4] == '/') {
			s = s[:4]
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0
		}
		y = n
	default:
		return 0
	}
	if y < MinYear || y > now().Year()+1 {
		return 0
	}
	return y
}

// Authors coerces v into an ordered author list. A single string is split
// on ";" or "|" when present, otherwise on " and " and then on ",", keeping
// "Family, Given" pairs together.
func Authors(v any) []string {
	var raw []string
	switch t := v.(type) {
	case nil:
		return nil
	case []string:
		raw = t
	case []any:
		for _, a := range t {
			raw = append(raw, fmt.Sprint(a))
		}
	case string:
		raw = splitAuthors(t)
	default:
		return nil
	}

	var out []string
	for _, a := range raw {
		a = strings.TrimRight(CollapseSpace(a), ".")
		a = strings.TrimSpace(a)
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

func splitAuthors(s string) []string {
	switch {
	case strings.Contains(s, ";"):
		return strings.Split(s, ";")
	case strings.Contains(s, "|"):
		return strings.Split(s, "|")
	}
	var out []string
	for _, chunk := range strings.Split(s, " and ") {
		out = append(out, splitCommaNames(chunk)...)
	}
	return out
}

// splitCommaNames splits a comma list of names. When every part is a
// single word the parts pair up as "Family, Given", so "Curie, Marie" is
// one author while "Smith J, Doe A" is two.
func splitCommaNames(s string) []string {
	parts := strings.Split(s, ",")
	if len(parts)%2 != 0 {
		return parts
	}
	for _, p := range parts {
		if len(strings.Fields(p)) != 1 {
			return parts
		}
	}
	out := make([]string, 0, len(parts)/2)
	for i := 0; i < len(parts); i += 2 {
		out = append(out, strings.TrimSpace(parts[i])+", "+strings.TrimSpace(parts[i+1]))
	}
	return out
}

// ParseKind maps a provider's type label onto the closed set of kinds.
func ParseKind(label string) (types.Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "article", "journal-article", "proceedings-article", "book-chapter",
		"review", "paper", "letter", "editorial", "conference", "book":
		return types.KindArticle, true
	case "preprint", "posted-content", "eprint", "e-print":
		return types.KindPreprint, true
	case "medical", "clinical-trial", "case-report", "pubmed", "biomedical":
		return types.KindMedical, true
	case "reference", "reference-entry", "encyclopedia", "dictionary-entry", "standard":
		return types.KindReference, true
	}
	return "", false
}

// ParseLevel maps a reading-level label onto the known levels.
func ParseLevel(label string) (types.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "entry", "beginner", "introductory", "basic":
		return types.LevelEntry, true
	case "intermediate":
		return types.LevelIntermediate, true
	case "advanced", "expert":
		return types.LevelAdvanced, true
	}
	return "", false
}
