package models

import "time"

// Report status values. Reports enter the store already published;
// DRAFT exists for content held back by an operator.
const (
	StatusPublished = "PUBLISHED"
	StatusDraft     = "DRAFT"
)

// Categories is the fixed taxonomy a report is classified into.
var Categories = []string{
	"Economics",
	"Demographics",
	"Real Estate",
	"Technology",
	"Cost of Living",
	"Quality of Life",
}

// Report represents one published market-intelligence report, the
// canonical structure persisted in the store snapshot.
type Report struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Topic       string    `json:"topic"`
	Title       string    `json:"title"`
	HTMLContent string    `json:"htmlContent"`
	Summary     string    `json:"summary"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"publishDate"`
	UpdatedAt   time.Time `json:"lastUpdated"`
	Category    string    `json:"category"`

	DataBox      TableData `json:"dataBox"`
	SidebarFacts []string  `json:"sidebarFacts"`
	FAQ          []FAQItem `json:"faq"`

	SEO    SEOMetadata   `json:"seo"`
	Schema ArticleSchema `json:"schema"`

	Status        string         `json:"status"`
	InternalLinks []InternalLink `json:"internalLinks"`
}

// TableData is the tabular data block embedded in a report.
type TableData struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
	Source  string     `json:"source"`
}

// FAQItem is one question/answer pair.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SEOMetadata carries the head-tag metadata for a report.
type SEOMetadata struct {
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	Keywords        []string `json:"keywords"`
	Slug            string   `json:"slug"`
}

// InternalLink points at another report by title and slug. Links are
// fixed at creation time and never revised.
type InternalLink struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// ArticleSchema is the schema.org Article record emitted for machine
// consumption.
type ArticleSchema struct {
	Context       string       `json:"@context"`
	Type          string       `json:"@type"`
	Headline      string       `json:"headline"`
	DatePublished string       `json:"datePublished"`
	DateModified  string       `json:"dateModified"`
	Author        SchemaEntity `json:"author"`
	Publisher     SchemaEntity `json:"publisher"`
}

// SchemaEntity names a person or organization inside ArticleSchema.
type SchemaEntity struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// ValidCategory reports whether cat is part of the taxonomy.
func ValidCategory(cat string) bool {
	for _, c := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}
