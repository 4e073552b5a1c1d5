package tokencount

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func estimates(vals ...int) func(int) int {
	return func(i int) int { return vals[i] }
}

func TestSplitAll_ScenarioFromSpec(t *testing.T) {
	tokens := []int{800, 900, 900, 1100}
	items := []int{0, 1, 2, 3}

	batches := SplitAll(items, estimates(tokens...), 2000)

	require.Len(t, batches, 3)
	assert.Equal(t, []int{0, 1}, batches[0])
	assert.Equal(t, []int{2}, batches[1])
	assert.Equal(t, []int{3}, batches[2])
}

func TestSplitAll_NoSkipsDuplicatesOrReordering(t *testing.T) {
	tokens := make([]int, 37)
	items := make([]int, 37)
	for i := range items {
		items[i] = i
		tokens[i] = 100 + i%5
	}

	batches := SplitAll(items, estimates(tokens...), 250)

	var reconstructed []int
	for _, b := range batches {
		reconstructed = append(reconstructed, b...)
	}
	assert.Equal(t, items, reconstructed)
}

func TestSplit_SingleOversizedItemStillEmitted(t *testing.T) {
	items := []int{5000}
	batch, next, tokens := Split(items, func(int) int { return 5000 }, 2000, 0)

	assert.Equal(t, []int{5000}, batch)
	assert.Equal(t, 1, next)
	assert.Equal(t, 5000, tokens)
}

func TestSplit_PastEndReturnsEmpty(t *testing.T) {
	items := []int{1, 2}
	batch, next, tokens := Split(items, func(int) int { return 10 }, 100, 2)

	assert.Nil(t, batch)
	assert.Equal(t, 2, next)
	assert.Equal(t, 0, tokens)
}
