package rank

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/discovery"
)

func result(url string, priority int) discovery.Classification {
	return discovery.Classification{URL: url, Priority: priority}
}

func TestRankDropsExcludedAndBelowThreshold(t *testing.T) {
	t.Parallel()
	r := New(nil, nil)

	in := []discovery.Classification{
		result("https://diabetes.org/a", 70),
		{URL: "https://diabetes.org/login", Excluded: true},
		result("https://diabetes.org/b", 49),
		result("https://diabetes.org/c", 50),
	}
	out := r.Rank(in, 50, 500)

	require.Len(t, out, 2)
	assert.Equal(t, "https://diabetes.org/a", out[0].URL)
	assert.Equal(t, "https://diabetes.org/c", out[1].URL)
}

func TestRankOrdersByPriorityDescending(t *testing.T) {
	t.Parallel()
	r := New(nil, nil)

	in := []discovery.Classification{
		result("low", 60),
		result("high", 95),
		result("mid", 80),
	}
	out := r.Rank(in, 50, 500)

	require.Len(t, out, 3)
	assert.Equal(t, []string{"high", "mid", "low"}, []string{out[0].URL, out[1].URL, out[2].URL})
}

// Equal-priority URLs must keep their discovery order.
func TestRankStableOnTies(t *testing.T) {
	t.Parallel()
	r := New(nil, nil)

	var in []discovery.Classification
	for i := 0; i < 20; i++ {
		in = append(in, result(fmt.Sprintf("url-%02d", i), 85))
	}
	out := r.Rank(in, 50, 500)

	require.Len(t, out, 20)
	for i, res := range out {
		assert.Equal(t, fmt.Sprintf("url-%02d", i), res.URL)
	}
}

func TestRankAppliesCap(t *testing.T) {
	t.Parallel()
	r := New(nil, nil)

	var in []discovery.Classification
	for i := 0; i < 30; i++ {
		in = append(in, result(fmt.Sprintf("url-%d", i), 90))
	}
	out := r.Rank(in, 50, 10)
	assert.Len(t, out, 10)
}

func TestRankHonorsLoweredThreshold(t *testing.T) {
	t.Parallel()
	r := New(nil, nil)

	in := []discovery.Classification{
		result("a", 40),
		result("b", 29),
	}
	out := r.Rank(in, 30, 500)
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].URL)
}

func TestTierBoundaries(t *testing.T) {
	t.Parallel()

	assert.Equal(t, discovery.TierHigh, discovery.TierFor(70))
	assert.Equal(t, discovery.TierMedium, discovery.TierFor(69))
	assert.Equal(t, discovery.TierMedium, discovery.TierFor(50))
	assert.Equal(t, discovery.TierLow, discovery.TierFor(49))
}
