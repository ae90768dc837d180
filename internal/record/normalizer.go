package record

import (
	"go.uber.org/zap"

	"zotgraph/pkg/logger"
)

// MaxAbstractLen bounds the abstract property stored on a Paper node.
// Truncation is lossy and adds no indicator.
const MaxAbstractLen = 500

// columnAliases maps source column names onto the canonical field set.
// Unmapped columns are dropped from the canonical record but stay
// available through Normalized.Raw.
var columnAliases = map[string]string{
	"Key":               "paper_key",
	"Item Type":         "item_type",
	"Publication Year":  "publication_year",
	"Author":            "authors",
	"Title":             "title",
	"Publication Title": "publication_title",
	"DOI":               "doi",
	"Url":               "url",
	"Abstract Note":     "abstract",
	"Date":              "date",
	"Date Added":        "date_added",
	"Date Modified":     "date_modified",
	"Pages":             "pages",
	"Manual Tags":       "manual_tags",
	"Automatic Tags":    "auto_tags",
	"File Attachments":  "file_attachments",
	"Extra":             "extra_info",
}

// Normalizer converts raw rows into canonical records. It never fails:
// malformed individual fields degrade to defaults.
type Normalizer struct {
	logger *zap.Logger
}

// NewNormalizer creates a new Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{
		logger: logger.Get(),
	}
}

// Normalize maps a raw row onto a Normalized record, merging in any facts
// recognized in the Extra column.
func (n *Normalizer) Normalize(row Row) *Normalized {
	canonical := make(map[string]string, len(columnAliases))
	for source, name := range columnAliases {
		if v, ok := row[source]; ok {
			canonical[name] = v
		}
	}

	rec := &Normalized{
		PaperKey:         canonical["paper_key"],
		Title:            canonical["title"],
		ItemType:         canonical["item_type"],
		PublicationYear:  canonical["publication_year"],
		PublicationTitle: canonical["publication_title"],
		DOI:              canonical["doi"],
		URL:              canonical["url"],
		Abstract:         truncate(canonical["abstract"], MaxAbstractLen),
		Date:             canonical["date"],
		DateAdded:        canonical["date_added"],
		DateModified:     canonical["date_modified"],
		Pages:            canonical["pages"],
		HasAttachment:    canonical["file_attachments"] != "",
		Raw:              row,
	}

	rec.Extra = n.ParseExtra(canonical["extra_info"])

	if rec.PaperKey == "" {
		n.logger.Debug("record has no key, paper will merge under empty key",
			zap.String("title", rec.Title))
	}

	return rec
}

// Authors returns the record's deduplicated author list.
func (n *Normalizer) Authors(rec *Normalized) []string {
	return SplitList(rec.Raw["Author"])
}

// Tags returns the union of manual and automatic tags with duplicates
// removed. Order is not guaranteed.
func (n *Normalizer) Tags(rec *Normalized) []string {
	return MergeTags(rec.Raw["Manual Tags"], rec.Raw["Automatic Tags"])
}

// truncate bounds s to at most max runes.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
