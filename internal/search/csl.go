package search

import (
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholar-federator/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
	License        string    `yaml:"license,omitempty"`
	Source         string    `yaml:"source,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// cslTypes maps resource kinds onto CSL item types.
var cslTypes = map[types.Kind]string{
	types.KindArticle:   "article-journal",
	types.KindPreprint:  "article",
	types.KindMedical:   "article-journal",
	types.KindReference: "entry-encyclopedia",
}

// FormatCSL writes the scholarly resources of res as a CSL-YAML list to w.
// Web hits are not bibliographic records and are left out.
func FormatCSL(res types.AggregateResult, w io.Writer) error {
	items := make([]CSLItem, len(res.Resources))
	for i, r := range res.Resources {
		items[i] = toCSLItem(r)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a Resource to a CSLItem.
func toCSLItem(r types.Resource) CSLItem {
	item := CSLItem{
		ID:             r.ID,
		Type:           cslTypes[r.Kind],
		Title:          r.Title,
		Abstract:       r.Summary,
		ContainerTitle: r.Venue,
		DOI:            r.ExternalID,
		URL:            r.URL,
		License:        r.License,
		Source:         r.Source,
	}
	if item.Type == "" {
		item.Type = "article"
	}

	for _, a := range r.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}

	if r.Year > 0 {
		item.Issued = &CSLDate{DateParts: [][]int{{r.Year}}}
	}
	return item
}

// parseAuthorName splits a full name string into CSL family/given parts.
// "Family, Given" is honoured, as is "Family Initials" ("Doe JA");
// otherwise the last token is the family name. Single-token names use the
// literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	if family, given, ok := strings.Cut(name, ", "); ok {
		return CSLName{Family: family, Given: given}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	if last := name[idx+1:]; isInitials(last) {
		return CSLName{Family: name[:idx], Given: last}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}

// isInitials reports whether s is one to three capital letters.
func isInitials(s string) bool {
	if len(s) == 0 || len(s) > 3 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
