// Package quota splits a page-size budget across heterogeneous feed sources
// and interleaves their results.
package quota

import (
	"math/rand"
)

// Weights are the proportional split per source kind. They are product
// tuning, not an invariant; callers load them from configuration.
type Weights map[string]int

// Allocate splits limit across the active sources proportionally to their
// weights. The sum of the returned quotas always equals limit (unless no
// source is active), so a source that exhausted in an earlier page
// automatically donates its share to the survivors. Remainder slots go to
// the earlier sources in the given order.
func Allocate(limit int, weights Weights, active []string) map[string]int {
	out := make(map[string]int, len(active))
	if limit <= 0 || len(active) == 0 {
		return out
	}

	total := 0
	for _, kind := range active {
		total += weights[kind]
	}
	weightOf := func(kind string) int {
		if total == 0 {
			// No weights configured for these sources; split evenly.
			return 1
		}
		return weights[kind]
	}
	if total == 0 {
		total = len(active)
	}

	assigned := 0
	for _, kind := range active {
		out[kind] = limit * weightOf(kind) / total
		assigned += out[kind]
	}
	for i := 0; assigned < limit; i = (i + 1) % len(active) {
		out[active[i]]++
		assigned++
	}

	return out
}

// Shuffle interleaves items uniformly at random (Fisher-Yates). Used in
// sample mode only; sorted feeds merge deterministically instead.
func Shuffle[T any](items []T, rng *rand.Rand) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
