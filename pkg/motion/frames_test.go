package motion_test

import (
	"testing"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/motion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrames_SpringSettlesOnTarget(t *testing.T) {
	spec := motion.Default().Plan(motion.PageChange, domain.Forward, false)

	frames := spec.Frames(spec.Offset, 0, 60)
	require.Greater(t, len(frames), 1)
	assert.Equal(t, 0.0, frames[len(frames)-1])
	assert.Less(t, frames[0], spec.Offset, "first frame moves towards the target")
	assert.LessOrEqual(t, len(frames), 181)
}

func TestFrames_EaseOut(t *testing.T) {
	spec := motion.Default().Plan(motion.Exit, domain.Forward, false)

	frames := spec.Frames(1, 0, 60)
	assert.InDelta(t, 18, len(frames), 1)
	assert.Equal(t, 0.0, frames[len(frames)-1])
	for i := 1; i < len(frames); i++ {
		assert.LessOrEqual(t, frames[i], frames[i-1])
	}
}

func TestFrames_Instant(t *testing.T) {
	spec := motion.Default().Plan(motion.PageChange, domain.Backward, true)
	assert.Equal(t, []float64{0}, spec.Frames(-10, 0, 60))
}
