package record

import "strings"

// Row is one raw input row, keyed by source column name. Rows are ephemeral:
// they are consumed by the Normalizer and not retained afterwards.
type Row map[string]string

// Normalized is the canonical record produced from a raw row. All textual
// fields default to the empty string, never to a null-like value, so
// downstream string operations are total.
type Normalized struct {
	PaperKey         string
	Title            string
	ItemType         string
	PublicationYear  string
	PublicationTitle string
	DOI              string
	URL              string
	Abstract         string
	Date             string
	DateAdded        string
	DateModified     string
	Pages            string
	HasAttachment    bool

	// Extra holds facts recognized in the free-text Extra column
	// (download_count, citation_count, major_field).
	Extra map[string]any

	// Raw keeps the original row so secondary-entity logic can probe
	// columns the canonical set does not cover (Publisher, Place, ISSN).
	Raw Row
}

// Properties returns the Paper node property map for this record,
// including any extracted extra-info facts.
func (r *Normalized) Properties() map[string]any {
	props := map[string]any{
		"paper_key":         r.PaperKey,
		"title":             r.Title,
		"item_type":         r.ItemType,
		"publication_year":  r.PublicationYear,
		"publication_title": r.PublicationTitle,
		"doi":               r.DOI,
		"url":               r.URL,
		"abstract":          r.Abstract,
		"date":              r.Date,
		"pages":             r.Pages,
		"has_attachment":    r.HasAttachment,
	}
	for k, v := range r.Extra {
		props[k] = v
	}
	return props
}

// FirstNonEmpty probes the raw row for an ordered list of candidate columns
// and returns the first non-empty trimmed value, or "" if none match.
func (r *Normalized) FirstNonEmpty(columns ...string) string {
	for _, col := range columns {
		if v, ok := r.Raw[col]; ok {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
