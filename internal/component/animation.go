package component

import (
	"github.com/marines/sim/internal/anim"
	"github.com/marines/sim/internal/core/ecs"
)

// AnimationTrack is the playhead of an entity's active track.
// Timer is the time the current frame has been on screen.
type AnimationTrack struct {
	Track    anim.TrackID
	Frame    int
	Timer    float64
	Loop     bool
	Finished bool // one-shot track has shown its last frame for a full duration
}

// CameraTarget points the camera entity at the marine it follows. The
// reference does not keep the target alive.
type CameraTarget struct {
	Target ecs.EntityID
}
