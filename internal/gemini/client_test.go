package gemini

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/equinoxlabs/content-engine/internal/models"
)

const samplePayload = `{
	"title": "Software Engineer Salaries in Zurich: A Data-Driven Analysis",
	"metaTitle": "Software Engineer Salary | Zurich | Equinox Analytics",
	"metaDescription": "Zurich engineers earn a median CHF 120,000. Full breakdown inside.",
	"keywords": ["software engineer salary zurich", "zurich tech pay 2026"],
	"category": "Economics",
	"htmlContent": "<h2>Market Overview</h2><p>Zurich remains the highest-paying hub in Europe.</p>",
	"summary": "Zurich leads European engineering pay.",
	"authorName": "Dr. Elena Rostova",
	"dataBox": {
		"title": "Median Salaries",
		"headers": ["Level", "CHF"],
		"rows": [["Junior", "95000"], ["Senior", "145000"]],
		"source": "Swiss Federal Statistical Office"
	},
	"sidebarFacts": ["Median pay up 4.2% year over year"],
	"faq": [{"question": "Is Zurich pay high?", "answer": "Yes."}]
}`

func decodePayload(t *testing.T) rawReport {
	t.Helper()
	var raw rawReport
	require.NoError(t, json.Unmarshal([]byte(samplePayload), &raw))
	return raw
}

func TestBuildReport(t *testing.T) {
	raw := decodePayload(t)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	report := buildReport(raw, "Software Engineer Salary in Zurich 2026 Analysis", "Equinox Analytics", now)

	require.NotEmpty(t, report.ID)
	require.Equal(t, "software-engineer-salary-zurich-equinox-analytics", report.Slug)
	require.Equal(t, report.Slug, report.SEO.Slug)
	require.Equal(t, "Software Engineer Salary in Zurich 2026 Analysis", report.Topic)
	require.Equal(t, "Economics", report.Category)
	require.Equal(t, models.StatusPublished, report.Status)
	require.Equal(t, now, report.PublishedAt)
	require.Equal(t, now, report.UpdatedAt)
	require.Empty(t, report.InternalLinks)

	require.Equal(t, "https://schema.org", report.Schema.Context)
	require.Equal(t, "Article", report.Schema.Type)
	require.Equal(t, report.Title, report.Schema.Headline)
	require.Equal(t, "Dr. Elena Rostova", report.Schema.Author.Name)
	require.Equal(t, "Equinox Analytics", report.Schema.Publisher.Name)
	require.Equal(t, now.Format(time.RFC3339), report.Schema.DatePublished)
}

func TestBuildReportUniqueIdentity(t *testing.T) {
	raw := decodePayload(t)
	now := time.Now().UTC()

	a := buildReport(raw, "topic", "Equinox Analytics", now)
	b := buildReport(raw, "topic", "Equinox Analytics", now)
	require.NotEqual(t, a.ID, b.ID)
	// Slug derivation stays deterministic even as identity differs.
	require.Equal(t, a.Slug, b.Slug)
}

func TestBuildReportFallbacks(t *testing.T) {
	raw := decodePayload(t)
	raw.Category = "Astrology"
	raw.AuthorName = "  "

	report := buildReport(raw, "topic", "Equinox Analytics", time.Now().UTC())
	require.Equal(t, "Economics", report.Category)
	require.Equal(t, "Equinox Analytics Research Desk", report.Author)
	require.Equal(t, report.Author, report.Schema.Author.Name)
}

func TestValidateRejectsIncompletePayloads(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*rawReport)
	}{
		{name: "missing title", mutate: func(r *rawReport) { r.Title = " " }},
		{name: "missing meta title", mutate: func(r *rawReport) { r.MetaTitle = "" }},
		{name: "missing content", mutate: func(r *rawReport) { r.HTMLContent = "" }},
		{name: "empty table", mutate: func(r *rawReport) { r.DataBox.Rows = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := decodePayload(t)
			tt.mutate(&raw)
			require.Error(t, raw.validate())
		})
	}

	require.NoError(t, decodePayload(t).validate())
}
