//go:build unit
// +build unit

package entropy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillCollector(c *Collector, n int) {
	start := time.Unix(0, 0)
	for i := 0; i < n; i++ {
		at := start.Add(time.Duration(i) * 20 * time.Millisecond)
		x, y := SimulatePosition(at)
		c.Add(x, y, at)
	}
}

func TestCollector_StagnantFiltering(t *testing.T) {
	c := NewCollector(5.0, 100)
	start := time.Unix(0, 0)

	assert.True(t, c.Add(100, 100, start))
	assert.False(t, c.Add(101, 100, start.Add(10*time.Millisecond)))
	assert.False(t, c.Add(102, 102, start.Add(20*time.Millisecond)))
	assert.True(t, c.Add(120, 120, start.Add(30*time.Millisecond)))

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 2, c.Stagnant())
	assert.Equal(t, 4, c.TotalSamples())
}

func TestCollector_MovementMetrics(t *testing.T) {
	c := NewCollector(1.0, 100)
	start := time.Unix(0, 0)

	c.Add(0, 0, start)
	c.Add(30, 40, start.Add(time.Second))

	last, ok := c.LastPoint()
	require.True(t, ok)
	assert.InDelta(t, 50.0, last.Distance, 0.001)
	assert.InDelta(t, 50.0, last.Speed, 0.001)
	assert.InDelta(t, 50.0, c.TotalDistance(), 0.001)
}

func TestCollector_BoundedCapacity(t *testing.T) {
	c := NewCollector(1.0, 32)
	fillCollector(c, 500)

	assert.Equal(t, 32, c.Len())
	assert.Len(t, c.Points(), 32)
}

func TestCollector_EntropyScore(t *testing.T) {
	t.Run("StraightLineScoresLow", func(t *testing.T) {
		c := NewCollector(1.0, 200)
		start := time.Unix(0, 0)
		for i := 0; i < 100; i++ {
			c.Add(i*10, 0, start.Add(time.Duration(i)*10*time.Millisecond))
		}
		assert.Less(t, c.EntropyScore(), 0.1)
	})

	t.Run("ChaoticMotionScoresHigher", func(t *testing.T) {
		straight := NewCollector(1.0, 200)
		start := time.Unix(0, 0)
		for i := 0; i < 100; i++ {
			straight.Add(i*10, 0, start.Add(time.Duration(i)*10*time.Millisecond))
		}

		chaotic := NewCollector(1.0, 200)
		fillCollector(chaotic, 100)

		assert.Greater(t, chaotic.EntropyScore(), straight.EntropyScore())
	})

	t.Run("BoundedToUnitInterval", func(t *testing.T) {
		c := NewCollector(1.0, 500)
		fillCollector(c, 400)
		score := c.EntropyScore()
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	})
}

func TestCollector_Seed(t *testing.T) {
	t.Run("RequiresMinimumTrail", func(t *testing.T) {
		c := NewCollector(1.0, 100)
		fillCollector(c, MinSamplesForSeed-1)

		_, err := c.Seed()
		assert.ErrorIs(t, err, ErrNotEnoughSamples)
	})

	t.Run("DeterministicForIdenticalTrails", func(t *testing.T) {
		first := NewCollector(1.0, 100)
		second := NewCollector(1.0, 100)
		fillCollector(first, 50)
		fillCollector(second, 50)

		firstSeed, err := first.Seed()
		require.NoError(t, err)
		secondSeed, err := second.Seed()
		require.NoError(t, err)
		assert.Equal(t, firstSeed.Seed, secondSeed.Seed)
		assert.Equal(t, firstSeed.Digest, secondSeed.Digest)
	})

	t.Run("TrailChangesTheSeed", func(t *testing.T) {
		first := NewCollector(1.0, 100)
		fillCollector(first, 50)

		second := NewCollector(1.0, 100)
		fillCollector(second, 50)
		second.Add(9999, 9999, time.Unix(10, 0))

		firstSeed, err := first.Seed()
		require.NoError(t, err)
		secondSeed, err := second.Seed()
		require.NoError(t, err)
		assert.NotEqual(t, firstSeed.Seed, secondSeed.Seed)
	})

	t.Run("ReportsTrailMetrics", func(t *testing.T) {
		c := NewCollector(1.0, 100)
		fillCollector(c, 64)

		result, err := c.Seed()
		require.NoError(t, err)
		assert.Equal(t, 64, result.DataPoints)
		assert.Greater(t, result.TotalDistance, 0.0)
		assert.Greater(t, result.AvgSpeed, 0.0)
		assert.Len(t, result.Digest, 64)
	})
}
