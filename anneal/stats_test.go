package anneal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStdDevEmptyAndSingleton(t *testing.T) {
	assert.Zero(t, StdDev(nil))
	assert.Zero(t, StdDev([]float64{42}))
}

func TestStdDevKnownSample(t *testing.T) {
	// Sample stddev of {2,4,4,4,5,5,7,9} is 2.138...
	xs := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	got := StdDev(xs)
	assert.InDelta(t, 2.1380899, got, 1e-6)
}

func TestStdDevIdenticalValuesClampsNonNegative(t *testing.T) {
	xs := []float64{3, 3, 3, 3}
	got := StdDev(xs)
	assert.False(t, math.IsNaN(got))
	assert.Zero(t, got)
}

func TestInnerLoopStatsAccumulation(t *testing.T) {
	var s innerLoopStats
	s.record(0, 1, 1, 1)   // rejected trial
	s.record(acceptedMark, 2, 0.5, 1.5)
	s.record(acceptedMark, 4, 1.5, 2.5)

	assert.Equal(t, 3, s.trials)
	assert.Equal(t, 2, s.accepted)
	assert.InDelta(t, 2.0/3.0, s.successRate(), 1e-9)
	assert.InDelta(t, 1.0, s.avgBB(), 1e-9)
	assert.InDelta(t, 2.0, s.avgTD(), 1e-9)
}

func TestInnerLoopStatsResetClearsAccumulators(t *testing.T) {
	var s innerLoopStats
	s.record(acceptedMark, 1, 1, 1)
	s.reset()

	assert.Zero(t, s.trials)
	assert.Zero(t, s.accepted)
	assert.Zero(t, s.successRate())
	assert.Empty(t, s.acceptedCost)
}
