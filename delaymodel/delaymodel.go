// Package delaymodel provides a reference DelayModel implementation: a
// deterministic linear function of Manhattan distance, standing in for a
// real lookup-table delay model (building or reading one is out of this
// module's scope).
package delaymodel

import (
	"math"

	"github.com/rw1nkler/vtr-verilog-to-routing/placererr"
)

// LinearDelta computes Delay = Intrinsic + PerX*|dx| + PerY*|dy| +
// PerPinOffset*|sinkIPin - srcIPin|: the last term adds a cost proportional
// to the distance between the source and sink pin indices, approximating
// carry-chain and pin-position effects in the absence of a full lookup
// table.
type LinearDelta struct {
	Intrinsic    float64
	PerX         float64
	PerY         float64
	PerPinOffset float64
}

// NewLinearDelta validates the coefficients (all must be non-negative, since
// a negative coefficient could make this reference model itself manufacture
// a NEGATIVE_DELAY) and returns a ready-to-use model.
func NewLinearDelta(intrinsic, perX, perY, perPinOffset float64) (*LinearDelta, error) {
	if intrinsic < 0 || perX < 0 || perY < 0 || perPinOffset < 0 {
		return nil, placererr.New(placererr.ConfigInvalid, "delay model coefficients must be non-negative")
	}
	return &LinearDelta{Intrinsic: intrinsic, PerX: perX, PerY: perY, PerPinOffset: perPinOffset}, nil
}

// Delay implements costmodel.DelayModel.
func (m *LinearDelta) Delay(srcX, srcY, srcIPin, sinkX, sinkY, sinkIPin int) float64 {
	dx := math.Abs(float64(sinkX - srcX))
	dy := math.Abs(float64(sinkY - srcY))
	pinSkew := math.Abs(float64(sinkIPin - srcIPin))
	return m.Intrinsic + m.PerX*dx + m.PerY*dy + m.PerPinOffset*pinSkew
}
