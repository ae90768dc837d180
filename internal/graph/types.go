package graph

import (
	"fmt"
	"time"
)

// Node labels in the bibliographic graph.
const (
	LabelPaper     = "Paper"
	LabelAuthor    = "Author"
	LabelKeyword   = "Keyword"
	LabelPublisher = "Publisher"
	LabelJournal   = "Journal"
	LabelSubject   = "Subject"
)

// Relationship types, all directed from Paper outward.
const (
	RelAuthoredBy     = "AUTHORED_BY"
	RelHasKeyword     = "HAS_KEYWORD"
	RelPublishedBy    = "PUBLISHED_BY"
	RelPublishedIn    = "PUBLISHED_IN"
	RelBelongsSubject = "BELONGS_TO_SUBJECT"
)

// Paper is a Paper node as read back from the graph.
type Paper struct {
	PaperKey         string    `json:"paper_key"`
	Title            string    `json:"title"`
	ItemType         string    `json:"item_type"`
	PublicationYear  string    `json:"publication_year"`
	PublicationTitle string    `json:"publication_title"`
	DOI              string    `json:"doi"`
	URL              string    `json:"url"`
	Abstract         string    `json:"abstract"`
	Date             string    `json:"date"`
	Pages            string    `json:"pages"`
	HasAttachment    bool      `json:"has_attachment"`
	DownloadCount    int       `json:"download_count,omitempty"`
	CitationCount    int       `json:"citation_count,omitempty"`
	MajorField       string    `json:"major_field,omitempty"`
	ImportedAt       time.Time `json:"imported_at"`
}

// KeywordCount pairs a keyword with the number of papers carrying it.
type KeywordCount struct {
	Name   string `json:"name"`
	Papers int64  `json:"papers"`
}

// Stats summarizes the size of the imported graph.
type Stats struct {
	Papers        int64 `json:"papers"`
	Authors       int64 `json:"authors"`
	Keywords      int64 `json:"keywords"`
	Publishers    int64 `json:"publishers"`
	Journals      int64 `json:"journals"`
	Subjects      int64 `json:"subjects"`
	Relationships int64 `json:"relationships"`
}

// ErrPaperNotFound is returned when a paper key has no node in the graph
type ErrPaperNotFound struct {
	PaperKey string
}

func (e ErrPaperNotFound) Error() string {
	return fmt.Sprintf("paper not found: %s", e.PaperKey)
}
