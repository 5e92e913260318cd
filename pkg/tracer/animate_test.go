package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-optics-lab/pkg/core"
	"github.com/df07/go-optics-lab/pkg/dispersive"
	"github.com/df07/go-optics-lab/pkg/optics"
)

func rayWithIntensity(i float64) core.Ray {
	r := core.NewRay(core.NewRayParams{Origin: core.NewVector2(0, 0), Direction: core.NewVector2(1, 0), Intensity: i})
	return r
}

func TestPickAnimatedSuccessors_UnanimatedParentMarksNothing(t *testing.T) {
	block := dispersive.NewDielectricBlock("b", "Block", []core.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, 1.5)
	successors := []core.Ray{rayWithIntensity(1)}
	marks := pickAnimatedSuccessors(block, core.EndReason("tir"), false, 1, successors)
	require.Len(t, marks, 1)
	assert.False(t, marks[0])
}

func TestPickAnimatedSuccessors_DielectricBlockTIRAlwaysAnimatesSoleReflected(t *testing.T) {
	block := dispersive.NewDielectricBlock("b", "Block", []core.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, 1.5)
	successors := []core.Ray{rayWithIntensity(1)}
	marks := pickAnimatedSuccessors(block, core.EndReason("tir"), true, 1, successors)
	require.Len(t, marks, 1)
	assert.True(t, marks[0])
}

func TestPickAnimatedSuccessors_DielectricBlockRefraction_DominantTransmittedWins(t *testing.T) {
	block := dispersive.NewDielectricBlock("b", "Block", []core.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, 1.5)
	// reflected, transmitted order per DielectricBlock.Interact; transmitted
	// dominates by more than the 80% threshold.
	successors := []core.Ray{rayWithIntensity(0.1), rayWithIntensity(0.9)}
	marks := pickAnimatedSuccessors(block, core.EndReason("split"), true, 1, successors)
	require.Len(t, marks, 2)
	assert.False(t, marks[0])
	assert.True(t, marks[1])
}

func TestPickAnimatedSuccessors_DielectricBlockRefraction_DominantReflectedWins(t *testing.T) {
	block := dispersive.NewDielectricBlock("b", "Block", []core.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, 1.5)
	successors := []core.Ray{rayWithIntensity(0.9), rayWithIntensity(0.1)}
	marks := pickAnimatedSuccessors(block, core.EndReason("split"), true, 1, successors)
	require.Len(t, marks, 2)
	assert.True(t, marks[0])
	assert.False(t, marks[1])
}

func TestPickAnimatedSuccessors_DielectricBlockRefraction_EvenSplitDefaultsToTransmitted(t *testing.T) {
	block := dispersive.NewDielectricBlock("b", "Block", []core.Vector2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}, 1.5)
	// Reflected and transmitted both clear the 80% threshold of the other;
	// transmitted wins the tie by rule.
	successors := []core.Ray{rayWithIntensity(0.5), rayWithIntensity(0.5)}
	marks := pickAnimatedSuccessors(block, core.EndReason("split"), true, 1, successors)
	require.Len(t, marks, 2)
	assert.False(t, marks[0])
	assert.True(t, marks[1])
}

func TestPickAnimatedSuccessors_BeamSplitterBothAboveThirtyPercentAnimatesBoth(t *testing.T) {
	splitter := optics.NewBeamSplitter("bs", "Splitter", core.NewVector2(0, 0), 0, 10, 0.5)
	successors := []core.Ray{rayWithIntensity(0.5), rayWithIntensity(0.5)}
	marks := pickAnimatedSuccessors(splitter, core.EndReason("split"), true, 1, successors)
	require.Len(t, marks, 2)
	assert.True(t, marks[0])
	assert.True(t, marks[1])
}

func TestPickAnimatedSuccessors_BeamSplitterBelowThirtyPercentAnimatesStrongerOnly(t *testing.T) {
	splitter := optics.NewBeamSplitter("bs", "Splitter", core.NewVector2(0, 0), 0, 10, 0.9)
	successors := []core.Ray{rayWithIntensity(0.9), rayWithIntensity(0.1)}
	marks := pickAnimatedSuccessors(splitter, core.EndReason("split"), true, 1, successors)
	require.Len(t, marks, 2)
	assert.True(t, marks[0])
	assert.False(t, marks[1])
}

func TestPickAnimatedSuccessors_BeamSplitterWeakerBelowTenPercentStaysUnanimated(t *testing.T) {
	splitter := optics.NewBeamSplitter("bs", "Splitter", core.NewVector2(0, 0), 0, 10, 0.95)
	successors := []core.Ray{rayWithIntensity(0.95), rayWithIntensity(0.05)}
	marks := pickAnimatedSuccessors(splitter, core.EndReason("split"), true, 1, successors)
	require.Len(t, marks, 2)
	assert.True(t, marks[0])
	assert.False(t, marks[1])
}

func TestPickAnimatedSuccessors_DefaultRuleAppliesToOtherComponents(t *testing.T) {
	grating := dispersive.NewDiffractionGrating("g", "Grating", core.NewVector2(0, 0), 0, 10, 2.0, 2)
	successors := []core.Ray{rayWithIntensity(0.05), rayWithIntensity(0.6), rayWithIntensity(0.35)}
	marks := pickAnimatedSuccessors(grating, core.EndReason("diffracted"), true, 1, successors)
	require.Len(t, marks, 3)
	assert.False(t, marks[0])
	assert.True(t, marks[1])
	assert.False(t, marks[2])
}

func TestPickAnimatedSuccessors_DefaultRuleBelowTenPercentAnimatesNothing(t *testing.T) {
	grating := dispersive.NewDiffractionGrating("g", "Grating", core.NewVector2(0, 0), 0, 10, 2.0, 2)
	successors := []core.Ray{rayWithIntensity(0.05)}
	marks := pickAnimatedSuccessors(grating, core.EndReason("diffracted"), true, 1, successors)
	require.Len(t, marks, 1)
	assert.False(t, marks[0])
}
