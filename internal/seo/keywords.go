package seo

import (
	"fmt"
	"math/rand"
	"time"
)

var targetCountries = []string{
	"United States", "United Kingdom", "Canada", "Australia",
	"Germany", "Switzerland", "United Arab Emirates", "Japan",
	"Singapore", "Netherlands", "Sweden", "Norway",
}

var targetCities = []string{
	"New York", "London", "San Francisco", "Zurich", "Singapore",
	"Dubai", "Sydney", "Toronto", "Berlin", "Tokyo", "Geneva",
}

var highValueTopics = []string{
	"Software Engineer Salary",
	"Cost of Living Breakdown",
	"Real Estate Price Trends",
	"Healthcare Costs",
	"Average Retirement Savings",
	"Tech Startup Funding",
	"Digital Marketing Rates",
	"Cybersecurity Analyst Pay",
}

// cityProbability is the chance a keyword targets a city rather than
// a country.
const cityProbability = 0.6

// KeywordGenerator produces topic keywords by combinatorial sampling
// of high-value subjects and locations.
type KeywordGenerator struct {
	rng *rand.Rand
}

// NewKeywordGenerator builds a generator around the given random
// source. A nil rng gets a time-seeded one.
func NewKeywordGenerator(rng *rand.Rand) *KeywordGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &KeywordGenerator{rng: rng}
}

// Queue returns exactly count topic strings of the form
// "{subject} in {location} {year} Analysis". Duplicates across slots
// are permitted.
func (g *KeywordGenerator) Queue(count int) []string {
	if count < 0 {
		count = 0
	}

	year := time.Now().Year()
	queue := make([]string, 0, count)

	for i := 0; i < count; i++ {
		topic := highValueTopics[g.rng.Intn(len(highValueTopics))]

		var location string
		if g.rng.Float64() < cityProbability {
			location = targetCities[g.rng.Intn(len(targetCities))]
		} else {
			location = targetCountries[g.rng.Intn(len(targetCountries))]
		}

		queue = append(queue, fmt.Sprintf("%s in %s %d Analysis", topic, location, year))
	}

	return queue
}
