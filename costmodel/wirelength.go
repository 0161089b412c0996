package costmodel

// SmallNet is the fanout threshold below which incremental bbox updates are
// skipped in favour of a from-scratch recompute.
const SmallNet = 4

// crossCount are the expected wire "crossing counts" for nets of 1..50 pins,
// from ICCAD '94 pp. 690-695 with linear interpolation. Index i holds the
// factor for nets of i+1 pins.
var crossCount = [50]float64{
	1.0, 1.0, 1.0, 1.0828, 1.1536, 1.2206, 1.2823, 1.3385, 1.3991, 1.4493, 1.4974,
	1.5455, 1.5937, 1.6418, 1.6899, 1.7304, 1.7709, 1.8114, 1.8519, 1.8924,
	1.9288, 1.9652, 2.0015, 2.0379, 2.0743, 2.1061, 2.1379, 2.1698, 2.2016,
	2.2334, 2.2646, 2.2958, 2.3271, 2.3583, 2.3895, 2.4187, 2.4479, 2.4772,
	2.5064, 2.5356, 2.5610, 2.5864, 2.6117, 2.6371, 2.6625, 2.6887, 2.7148,
	2.7410, 2.7671, 2.7933,
}

// CrossingCount returns the expected crossing count for a net with the given
// total pin count (driver + sinks), extrapolating linearly beyond 50 pins.
func CrossingCount(numPins int) float64 {
	if numPins > 50 {
		return 2.7933 + 0.02616*float64(numPins-50)
	}
	return crossCount[numPins-1]
}

// GetNetCost computes a net's wirelength cost from its bounding box, using
// the channel-cost factor tables.
func (cf *ChannelFactors) GetNetCost(numPins int, bb BB) float64 {
	crossing := CrossingCount(numPins)
	cost := float64(bb.XMax-bb.XMin+1) * crossing * cf.Fx[bb.YMax][bb.YMin-1]
	cost += float64(bb.YMax-bb.YMin+1) * crossing * cf.Fy[bb.XMax][bb.XMin-1]
	return cost
}

// GetNetWirelengthEstimate computes a net's raw wirelength estimate (no
// channel-width normalization), used for reporting rather than cost-driven
// search.
func GetNetWirelengthEstimate(numPins int, bb BB) float64 {
	crossing := CrossingCount(numPins)
	cost := float64(bb.XMax-bb.XMin+1) * crossing
	cost += float64(bb.YMax-bb.YMin+1) * crossing
	return cost
}
