package seo_test

import (
	"fmt"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/equinoxlabs/content-engine/internal/seo"
)

func TestQueueLengthAndShape(t *testing.T) {
	gen := seo.NewKeywordGenerator(nil)
	year := time.Now().Year()
	shape := regexp.MustCompile(fmt.Sprintf(`^.+ in .+ %d Analysis$`, year))

	for _, count := range []int{0, 1, 5, 50} {
		t.Run(fmt.Sprintf("count=%d", count), func(t *testing.T) {
			queue := gen.Queue(count)
			require.Len(t, queue, count)
			for _, keyword := range queue {
				require.Regexp(t, shape, keyword)
			}
		})
	}
}

func TestQueueDeterministicWithSeededSource(t *testing.T) {
	a := seo.NewKeywordGenerator(rand.New(rand.NewSource(42)))
	b := seo.NewKeywordGenerator(rand.New(rand.NewSource(42)))

	require.Equal(t, a.Queue(10), b.Queue(10))
}

func TestQueueAllowsDuplicates(t *testing.T) {
	// With a bounded keyword space, a large queue must repeat itself.
	gen := seo.NewKeywordGenerator(rand.New(rand.NewSource(1)))
	queue := gen.Queue(500)

	seen := make(map[string]int, len(queue))
	for _, keyword := range queue {
		seen[keyword]++
	}
	require.Less(t, len(seen), len(queue))
}
