package anneal

import "math"

// StdDev computes the sample standard deviation of xs using the
// single-pass sum and sum-of-squares formula, with guards: n<=1 returns 0,
// and a variance that rounds slightly negative (possible under finite
// precision when every value is nearly identical) is clamped to 0 before
// the square root.
func StdDev(xs []float64) float64 {
	n := len(xs)
	if n <= 1 {
		return 0
	}

	var sum, sumSq float64
	for _, x := range xs {
		sum += x
		sumSq += x * x
	}
	avg := sum / float64(n)

	variance := (sumSq - float64(n)*avg*avg) / float64(n-1)
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// innerLoopStats accumulates the running sums one inner loop needs to
// report a status line: accepted-move count and cost values for the
// success rate and standard deviation, plus absolute bb/timing cost sums
// for their averages.
type innerLoopStats struct {
	trials       int
	accepted     int
	acceptedCost []float64
	sumBB        float64
	sumTD        float64
}

func (s *innerLoopStats) reset() {
	s.trials = 0
	s.accepted = 0
	s.acceptedCost = s.acceptedCost[:0]
	s.sumBB = 0
	s.sumTD = 0
}

func (s *innerLoopStats) record(outcome int, cost, bbCost, tdCost float64) {
	s.trials++
	if outcome == acceptedMark {
		s.accepted++
		s.acceptedCost = append(s.acceptedCost, cost)
		s.sumBB += bbCost
		s.sumTD += tdCost
	}
}

const acceptedMark = 1

func (s *innerLoopStats) successRate() float64 {
	if s.trials == 0 {
		return 0
	}
	return float64(s.accepted) / float64(s.trials)
}

func (s *innerLoopStats) stdDev() float64 { return StdDev(s.acceptedCost) }

func (s *innerLoopStats) avgBB() float64 {
	if s.accepted == 0 {
		return 0
	}
	return s.sumBB / float64(s.accepted)
}

func (s *innerLoopStats) avgTD() float64 {
	if s.accepted == 0 {
		return 0
	}
	return s.sumTD / float64(s.accepted)
}
