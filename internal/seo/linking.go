package seo

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/equinoxlabs/content-engine/internal/models"
)

const (
	// maxInternalLinks caps the related-content list per report.
	maxInternalLinks = 5
	// minInternalLinks is the floor below which the fixed fallback
	// list replaces the scored one, so freshly seeded stores never
	// render an empty related panel.
	minInternalLinks = 3
	// categoryBoost dominates the random tie-break term, keeping
	// same-category candidates ahead of everything else.
	categoryBoost = 2.0
)

// LinkScorer selects the internal-link list for a new report from a
// pool of already published candidates.
type LinkScorer struct {
	rng *rand.Rand
}

// NewLinkScorer builds a scorer around the given random source. A nil
// rng gets a time-seeded one.
func NewLinkScorer(rng *rand.Rand) *LinkScorer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &LinkScorer{rng: rng}
}

// Select ranks pool candidates against report and returns at most
// five (title, slug) links, never including report itself. The random
// score component varies the ranking when many candidates share a
// category. Pools that leave fewer than three candidates fall back to
// a fixed generic list with placeholder slugs.
func (s *LinkScorer) Select(report models.Report, pool []models.Report) []models.InternalLink {
	type scored struct {
		report models.Report
		score  float64
	}

	candidates := make([]scored, 0, len(pool))
	for _, candidate := range pool {
		if candidate.ID == report.ID {
			continue
		}
		score := s.rng.Float64()
		if candidate.Category == report.Category {
			score += categoryBoost
		}
		candidates = append(candidates, scored{report: candidate, score: score})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > maxInternalLinks {
		candidates = candidates[:maxInternalLinks]
	}

	if len(candidates) < minInternalLinks {
		return fallbackLinks(report)
	}

	links := make([]models.InternalLink, 0, len(candidates))
	for _, c := range candidates {
		links = append(links, models.InternalLink{
			Title: c.report.Title,
			Slug:  c.report.Slug,
		})
	}
	return links
}

// fallbackLinks builds the fixed 3-item list used while the store is
// still too small to link against. The slugs are placeholders and do
// not resolve.
func fallbackLinks(report models.Report) []models.InternalLink {
	firstWord := report.Topic
	if i := strings.IndexByte(firstWord, ' '); i > 0 {
		firstWord = firstWord[:i]
	}

	return []models.InternalLink{
		{Title: fmt.Sprintf("Global Trends in %s", report.Category), Slug: "#"},
		{Title: fmt.Sprintf("Market Analysis: %s", firstWord), Slug: "#"},
		{Title: fmt.Sprintf("%d Economic Outlook", time.Now().Year()+1), Slug: "#"},
	}
}
