// Package gemini turns one topic keyword into one fully structured
// report via the Gemini structured-output API. The rest of the system
// treats it as an opaque generator with real latency and a real
// failure rate.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/equinoxlabs/content-engine/internal/models"
	"github.com/equinoxlabs/content-engine/internal/seo"
)

// Client wraps a Gemini generative model configured for JSON report
// output.
type Client struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	publisher string
	log       *slog.Logger
}

// rawReport is the shape Gemini is asked to return. Everything else
// on models.Report (identity, slug, timestamps, schema record) is
// derived locally.
type rawReport struct {
	Title           string           `json:"title"`
	MetaTitle       string           `json:"metaTitle"`
	MetaDescription string           `json:"metaDescription"`
	Keywords        []string         `json:"keywords"`
	Category        string           `json:"category"`
	HTMLContent     string           `json:"htmlContent"`
	Summary         string           `json:"summary"`
	AuthorName      string           `json:"authorName"`
	DataBox         models.TableData `json:"dataBox"`
	SidebarFacts    []string         `json:"sidebarFacts"`
	FAQ             []models.FAQItem `json:"faq"`
}

// New builds a report generator. publisher names the organization in
// the emitted schema.org records.
func New(ctx context.Context, apiKey, modelName, publisher string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key must not be empty")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = reportSchema()
	model.SetTemperature(0.3)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction(publisher))},
	}

	return &Client{client: client, model: model, publisher: publisher, log: logger}, nil
}

// Close releases the underlying API client.
func (c *Client) Close() error {
	return c.client.Close()
}

// Generate produces one report for the given topic keyword. The call
// blocks for the full round trip; callers bound it with ctx.
func (c *Client) Generate(ctx context.Context, topic string) (models.Report, error) {
	year := time.Now().Year()
	prompt := fmt.Sprintf(
		"Generate a comprehensive market analysis report for: %q.\n"+
			"Cover the latest %d statistics, trends and forecasts for %d, "+
			"and regional comparison data. Produce the full report JSON "+
			"including the article HTML, data table, FAQs, and optimized SEO metadata.",
		topic, year, year+1,
	)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return models.Report{}, fmt.Errorf("generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return models.Report{}, err
	}

	var raw rawReport
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return models.Report{}, fmt.Errorf("parse report payload: %w", err)
	}
	if err := raw.validate(); err != nil {
		return models.Report{}, fmt.Errorf("incomplete report payload: %w", err)
	}

	report := buildReport(raw, topic, c.publisher, time.Now().UTC())
	c.log.Debug("report generated",
		slog.String("topic", topic),
		slog.String("slug", report.Slug),
		slog.String("category", report.Category),
	)
	return report, nil
}

// responseText flattens the first candidate's text parts.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty gemini response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", errors.New("gemini response contained no text")
	}
	return b.String(), nil
}

func (r rawReport) validate() error {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return errors.New("missing title")
	case strings.TrimSpace(r.MetaTitle) == "":
		return errors.New("missing metaTitle")
	case strings.TrimSpace(r.HTMLContent) == "":
		return errors.New("missing htmlContent")
	case len(r.DataBox.Headers) == 0 || len(r.DataBox.Rows) == 0:
		return errors.New("missing data table")
	}
	return nil
}

// buildReport assembles the persisted report from the generated
// payload: fresh identity, slug derived from the meta title, and the
// schema.org record. Internal links are filled in later by the
// pipeline, against the store as it exists at publish time.
func buildReport(raw rawReport, topic, publisher string, now time.Time) models.Report {
	slug := seo.Slugify(raw.MetaTitle)
	stamp := now.Format(time.RFC3339)

	category := raw.Category
	if !models.ValidCategory(category) {
		category = models.Categories[0]
	}

	author := strings.TrimSpace(raw.AuthorName)
	if author == "" {
		author = publisher + " Research Desk"
	}

	return models.Report{
		ID:          uuid.NewString(),
		Slug:        slug,
		Topic:       topic,
		Title:       raw.Title,
		HTMLContent: raw.HTMLContent,
		Summary:     raw.Summary,
		Author:      author,
		PublishedAt: now,
		UpdatedAt:   now,
		Category:    category,

		DataBox:      raw.DataBox,
		SidebarFacts: raw.SidebarFacts,
		FAQ:          raw.FAQ,

		SEO: models.SEOMetadata{
			MetaTitle:       raw.MetaTitle,
			MetaDescription: raw.MetaDescription,
			Keywords:        raw.Keywords,
			Slug:            slug,
		},
		Schema: models.ArticleSchema{
			Context:       "https://schema.org",
			Type:          "Article",
			Headline:      raw.Title,
			DatePublished: stamp,
			DateModified:  stamp,
			Author:        models.SchemaEntity{Type: "Person", Name: author},
			Publisher:     models.SchemaEntity{Type: "Organization", Name: publisher},
		},

		Status:        models.StatusPublished,
		InternalLinks: nil,
	}
}

func systemInstruction(publisher string) string {
	return fmt.Sprintf(`You are the Chief Economist at %s.
Your job is to produce high-value, SEO-optimized market intelligence reports.

GUIDELINES:
1. Authority: write with absolute confidence, using professional financial terminology.
2. Formatting: use HTML tags <h2>, <h3>, <p>, <ul>, <li>; structure for readability and SEO scanning.
3. Data integrity: fill the data table with concrete current numbers and name the source.
4. No fluff: every sentence must convey information.
5. SEO: the keyword appears in the first 100 words and in at least one H2.
6. Category: one of %s.`, publisher, strings.Join(models.Categories, ", "))
}

// reportSchema constrains the model output to the rawReport shape.
func reportSchema() *genai.Schema {
	stringArray := &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": {
				Type:        genai.TypeString,
				Description: "Professional editorial title (H1). Focus on analysis, reports, data. No clickbait.",
			},
			"metaTitle": {
				Type:        genai.TypeString,
				Description: "SEO title tag: Primary Keyword | Region | Publisher.",
			},
			"metaDescription": {
				Type:        genai.TypeString,
				Description: "Compelling SEO description, max 155 characters, summarizing the report's key statistic.",
			},
			"keywords": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "8-12 specific long-tail keyword phrases extracted from the report content.",
			},
			"category": {
				Type:        genai.TypeString,
				Description: "Category: " + strings.Join(models.Categories, ", ") + ".",
			},
			"htmlContent": {
				Type: genai.TypeString,
				Description: "Full editorial report HTML: executive summary, market overview, " +
					"key data points, regional analysis, outlook. 1000+ words.",
			},
			"summary": {
				Type:        genai.TypeString,
				Description: "3-sentence executive summary highlighting the most important statistic.",
			},
			"authorName": {
				Type:        genai.TypeString,
				Description: "Plausible analyst byline.",
			},
			"dataBox": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title":   {Type: genai.TypeString},
					"headers": stringArray,
					"rows": {
						Type:  genai.TypeArray,
						Items: stringArray,
					},
					"source": {Type: genai.TypeString, Description: "Primary source of the table data."},
				},
				Required: []string{"title", "headers", "rows", "source"},
			},
			"sidebarFacts": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "5 hard statistics related to the topic.",
			},
			"faq": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"question": {Type: genai.TypeString},
						"answer":   {Type: genai.TypeString},
					},
					Required: []string{"question", "answer"},
				},
				Description: "5 SEO-optimized FAQs people actually ask.",
			},
		},
		Required: []string{
			"title", "metaTitle", "metaDescription", "keywords", "category",
			"htmlContent", "summary", "authorName", "dataBox", "sidebarFacts", "faq",
		},
	}
}
