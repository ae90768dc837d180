package importer

import (
	"context"

	"go.uber.org/zap"

	"zotgraph/internal/record"
)

// journalArticleType is the item type that carries a Journal node.
const journalArticleType = "journalArticle"

// publisherColumns is the ordered list of source columns probed for a
// publisher name; the first non-empty trimmed value wins.
var publisherColumns = []string{"Publisher", "publisher", "Place"}

// importRecord converts one raw row into its upsert sequence. Each upsert
// is an independently idempotent merge; there is no transaction spanning
// the whole record, so a failure leaves earlier upserts in place.
func (i *Importer) importRecord(ctx context.Context, row record.Row) error {
	rec := i.normalizer.Normalize(row)

	// 1. Paper node, keyed by paper_key.
	if err := i.store.UpsertPaper(ctx, rec.PaperKey, rec.Properties()); err != nil {
		return err
	}

	// 2. Author nodes and AUTHORED_BY edges.
	for _, author := range i.normalizer.Authors(rec) {
		if err := i.store.UpsertAuthor(ctx, author, rec.Title); err != nil {
			return err
		}
		if err := i.store.LinkAuthor(ctx, rec.PaperKey, author); err != nil {
			return err
		}
	}

	// 3. Keyword nodes and HAS_KEYWORD edges, manual and automatic tags
	// merged with duplicates removed.
	for _, tag := range i.normalizer.Tags(rec) {
		if err := i.store.UpsertKeyword(ctx, tag); err != nil {
			return err
		}
		if err := i.store.LinkKeyword(ctx, rec.PaperKey, tag); err != nil {
			return err
		}
	}

	// 4. Secondary entities, each only when a non-empty value is found.
	return i.importSecondary(ctx, rec)
}

func (i *Importer) importSecondary(ctx context.Context, rec *record.Normalized) error {
	if publisher := rec.FirstNonEmpty(publisherColumns...); publisher != "" {
		if err := i.store.UpsertPublisher(ctx, rec.PaperKey, publisher); err != nil {
			return err
		}
	} else {
		i.logger.Debug("No publisher information, skipping Publisher node",
			zap.String("paper_key", rec.PaperKey))
	}

	if rec.ItemType == journalArticleType && rec.PublicationTitle != "" {
		issn := rec.FirstNonEmpty("ISSN")
		if err := i.store.UpsertJournal(ctx, rec.PaperKey, rec.PublicationTitle, issn); err != nil {
			return err
		}
	}

	if major, ok := rec.Extra["major_field"].(string); ok && major != "" {
		if err := i.store.UpsertSubject(ctx, rec.PaperKey, major); err != nil {
			return err
		}
	}

	return nil
}
