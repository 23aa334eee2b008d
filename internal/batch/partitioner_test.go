package batch

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ASUCICREPO/ADA-Clara-sub003/internal/discovery"
)

func ranked(n, priority int, prefix string) []discovery.Classification {
	out := make([]discovery.Classification, n)
	for i := range out {
		out[i] = discovery.Classification{
			URL:      fmt.Sprintf("https://diabetes.org/%s-%02d", prefix, i),
			Priority: priority,
		}
	}
	return out
}

func TestPartitionChunksWithinTier(t *testing.T) {
	t.Parallel()
	now := time.Now()

	// 33 high-tier URLs at batch size 15: 15 + 15 + 3.
	batches := Partition(ranked(33, 90, "high"), "run1", 15, now)
	require.Len(t, batches, 3)

	assert.Equal(t, 15, len(batches[0].URLs))
	assert.Equal(t, 15, len(batches[1].URLs))
	assert.Equal(t, 3, len(batches[2].URLs))

	assert.Equal(t, "run1-high-0", batches[0].BatchID)
	assert.Equal(t, "run1-high-1", batches[1].BatchID)
	assert.Equal(t, "run1-high-2", batches[2].BatchID)

	for _, b := range batches {
		assert.Equal(t, discovery.TierHigh, b.Tier)
		assert.Equal(t, 1, b.TierRank)
		assert.Equal(t, "run1", b.DiscoveryID)
		assert.Equal(t, now, b.CreatedAt)
	}
}

func TestPartitionExactMultiple(t *testing.T) {
	t.Parallel()

	batches := Partition(ranked(30, 90, "a"), "run1", 15, time.Now())
	require.Len(t, batches, 2)
	assert.Equal(t, 15, len(batches[0].URLs))
	assert.Equal(t, 15, len(batches[1].URLs))
}

func TestPartitionNeverMixesTiers(t *testing.T) {
	t.Parallel()

	var in []discovery.Classification
	in = append(in, ranked(16, 90, "h")...)
	in = append(in, ranked(16, 60, "m")...)
	in = append(in, ranked(2, 40, "l")...)

	batches := Partition(in, "run1", 15, time.Now())
	require.Len(t, batches, 5)

	expected := []struct {
		tier discovery.Tier
		rank int
		size int
		id   string
	}{
		{discovery.TierHigh, 1, 15, "run1-high-0"},
		{discovery.TierHigh, 1, 1, "run1-high-1"},
		{discovery.TierMedium, 2, 15, "run1-medium-0"},
		{discovery.TierMedium, 2, 1, "run1-medium-1"},
		{discovery.TierLow, 3, 2, "run1-low-0"},
	}
	for i, want := range expected {
		assert.Equal(t, want.tier, batches[i].Tier, "batch %d", i)
		assert.Equal(t, want.rank, batches[i].TierRank, "batch %d", i)
		assert.Len(t, batches[i].URLs, want.size, "batch %d", i)
		assert.Equal(t, want.id, batches[i].BatchID, "batch %d", i)
	}
}

func TestPartitionPreservesRankOrderWithinTier(t *testing.T) {
	t.Parallel()

	in := ranked(20, 90, "h")
	batches := Partition(in, "run1", 15, time.Now())

	var got []string
	for _, b := range batches {
		got = append(got, b.URLs...)
	}
	require.Len(t, got, 20)
	for i, url := range got {
		assert.Equal(t, in[i].URL, url)
	}
}

func TestPartitionEmptyInput(t *testing.T) {
	t.Parallel()
	assert.Empty(t, Partition(nil, "run1", 15, time.Now()))
}

func TestPartitionBatchSizeInvariant(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 7, 15, 16, 44, 45} {
		batches := Partition(ranked(n, 90, "x"), "run1", 15, time.Now())
		require.Len(t, batches, (n+14)/15, "n=%d", n)
		total := 0
		for _, b := range batches {
			require.GreaterOrEqual(t, len(b.URLs), 1, "n=%d", n)
			require.LessOrEqual(t, len(b.URLs), 15, "n=%d", n)
			total += len(b.URLs)
		}
		assert.Equal(t, n, total, "n=%d", n)
	}
}
