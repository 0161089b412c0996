package anneal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffortMoveLimCircuitScaling(t *testing.T) {
	c := NewController(Default())
	got := c.effortMoveLim(27, 0, 0)
	// 27^(4/3) is 81 in exact arithmetic, but math.Pow returns a value just
	// below 81 and int() truncates it to 80.
	assert.Equal(t, 80, got)
}

func TestEffortMoveLimDeviceCircuitScaling(t *testing.T) {
	opts := Default()
	opts.EffortScaling = DeviceCircuit
	c := NewController(opts)
	got := c.effortMoveLim(8, 10, 10)
	want := int(math.Pow(100, 2.0/3.0) * math.Pow(8, 2.0/3.0))
	assert.Equal(t, want, got)
}

func TestEffortMoveLimNeverZero(t *testing.T) {
	c := NewController(Default())
	got := c.effortMoveLim(0, 0, 0)
	assert.Equal(t, 1, got)
}

func TestRecomputeLimit(t *testing.T) {
	assert.Equal(t, 101, recomputeLimit(100, 0)) // divider 0: moveLim+1
	assert.Equal(t, 25, recomputeLimit(100, 4))
	assert.Equal(t, 13, recomputeLimit(100, 8))
}

func TestTExitFor(t *testing.T) {
	assert.InDelta(t, 0.005, tExitFor(10, 10), 1e-12)
	// numNets==0 is treated as 1, not a division by zero.
	assert.InDelta(t, 0.05, tExitFor(10, 0), 1e-12)
}

func TestUpdateAutoAlphaBySuccessRate(t *testing.T) {
	cases := []struct {
		successRat float64
		rlim       float64
		wantAlpha  float64
	}{
		{0.97, 5, 0.5},
		{0.85, 5, 0.9},
		{0.50, 5, 0.95},
		{0.50, 0.5, 0.95},
		{0.05, 0.5, 0.8},
	}
	for _, c := range cases {
		ctrl := NewController(Default())
		as := &annealState{t: 100, rlim: c.rlim, inverseDeltaRlim: 1}
		_, err := ctrl.updateAuto(as, c.successRat, 1000)
		require.NoError(t, err)
		assert.InDelta(t, c.wantAlpha, as.alpha, 1e-9)
	}
}

func TestUpdateAutoStopsBelowExitTemperature(t *testing.T) {
	ctrl := NewController(Default())
	ctrl.numNets = 10
	as := &annealState{t: 1e-9, rlim: 5, inverseDeltaRlim: 1}

	cont, err := ctrl.updateAuto(as, 0.5, 1000)
	require.NoError(t, err)
	assert.False(t, cont)
}

func TestUpdateRlimAndCritExpFloorsAtOne(t *testing.T) {
	ctrl := NewController(Default())
	as := &annealState{rlim: 1, inverseDeltaRlim: 1}
	ctrl.updateRlimAndCritExp(as, 0)
	assert.Equal(t, 1.0, as.rlim)
}

func TestUpdateRlimAndCritExpComputesCritExpForTimingDriven(t *testing.T) {
	opts := Default()
	opts.Algorithm = PathTimingDrivenPlace
	opts.TDPlaceExpFirst = 1.0
	opts.TDPlaceExpLast = 8.0
	ctrl := NewController(opts)

	as := &annealState{rlim: finalRlim, inverseDeltaRlim: 1.0 / 10.0}
	ctrl.updateRlimAndCritExp(as, 1.0) // success rate 1 -> rlim grows past 1 first

	// rlim == finalRlim implies the interpolation term is 1 -> critExp ==
	// TDPlaceExpLast before the multiplier from this call's own growth.
	assert.Greater(t, as.critExp, 0.0)
}

func TestUpdateDustyRestartsOnStall(t *testing.T) {
	opts := Default()
	opts.Schedule.Type = Dusty
	opts.Schedule.AlphaMax = 0.95
	ctrl := NewController(opts)
	ctrl.numNets = 10

	as := &annealState{t: 50, alpha: 0.5, restartT: 100, rlim: 5, inverseDeltaRlim: 1}
	cont, err := ctrl.updateDusty(as, 0.01, 1000) // below SuccessMin -> restart branch
	require.NoError(t, err)
	assert.True(t, cont)
	assert.InDelta(t, 100/math.Sqrt(0.5), as.t, 1e-9)
}

func TestUpdateDustyStopsWhenAlphaExceedsMax(t *testing.T) {
	opts := Default()
	opts.Schedule.Type = Dusty
	opts.Schedule.AlphaMax = 0.5
	ctrl := NewController(opts)
	ctrl.numNets = 10

	as := &annealState{t: 50, alpha: 0.6, restartT: 100, rlim: 5, inverseDeltaRlim: 1}
	cont, err := ctrl.updateDusty(as, 0.01, 1000)
	require.NoError(t, err)
	assert.False(t, cont)
}

func TestUpdateAnnealingStateUserSchedule(t *testing.T) {
	opts := Default()
	opts.Schedule.Type = User
	opts.Schedule.AlphaT = 0.9
	opts.Schedule.ExitT = 1.0
	ctrl := NewController(opts)

	as := &annealState{t: 10}
	cont, err := ctrl.updateAnnealingState(as, 0.5, 0)
	require.NoError(t, err)
	assert.True(t, cont)
	assert.InDelta(t, 9.0, as.t, 1e-9)
}

func TestMinMaxInt(t *testing.T) {
	assert.Equal(t, 5, maxInt(3, 5))
	assert.Equal(t, 3, maxInt(3, 1))
	assert.Equal(t, 1, minInt(3, 1))
	assert.Equal(t, 3, minInt(3, 5))
}
