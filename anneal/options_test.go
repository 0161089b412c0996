package anneal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rw1nkler/vtr-verilog-to-routing/anneal"
	"github.com/rw1nkler/vtr-verilog-to-routing/placererr"
)

func TestDefaultOptionsValidate(t *testing.T) {
	opts := anneal.Default()
	require.NoError(t, opts.Validate())
}

func TestValidateRejectsUnrecognizedAlgorithm(t *testing.T) {
	opts := anneal.Default()
	opts.Algorithm = anneal.Algorithm(99)

	err := opts.Validate()
	require.Error(t, err)
	perr, ok := err.(*placererr.Error)
	require.True(t, ok)
	assert.Equal(t, placererr.ConfigInvalid, perr.Kind)
}

func TestValidateRejectsUnrecognizedEffortScaling(t *testing.T) {
	opts := anneal.Default()
	opts.EffortScaling = anneal.EffortScaling(99)
	require.Error(t, opts.Validate())
}

func TestValidateRejectsUnrecognizedScheduleType(t *testing.T) {
	opts := anneal.Default()
	opts.Schedule.Type = anneal.ScheduleType(99)
	require.Error(t, opts.Validate())
}

func TestValidateRejectsOutOfRangeTimingTradeoff(t *testing.T) {
	opts := anneal.Default()
	opts.TimingTradeoff = 1.5
	require.Error(t, opts.Validate())

	opts.TimingTradeoff = -0.1
	require.Error(t, opts.Validate())
}

func TestValidateRejectsOutOfRangeRlimEscapeFraction(t *testing.T) {
	opts := anneal.Default()
	opts.RlimEscapeFraction = 1.1
	require.Error(t, opts.Validate())
}

func TestAlgorithmString(t *testing.T) {
	assert.Equal(t, "BOUNDING_BOX_PLACE", anneal.BoundingBoxPlace.String())
	assert.Equal(t, "PATH_TIMING_DRIVEN_PLACE", anneal.PathTimingDrivenPlace.String())
}
