package system

import (
	"github.com/marines/sim/internal/anim"
	"github.com/marines/sim/internal/component"
)

// advanceTrack steps a playhead by dt against its track definition and
// reports whether a one-shot track has finished.
func advanceTrack(tr *component.AnimationTrack, table *anim.Table, dt float64) bool {
	if tr.Finished {
		return true
	}
	def := table.Get(tr.Track)
	tr.Frame, tr.Timer, tr.Finished = def.Advance(tr.Frame, tr.Timer, dt, tr.Loop)
	return tr.Finished
}

// setTrack switches tr to id, rewinding the playhead. Re-selecting the
// active track leaves it untouched. Returns whether the track changed.
func setTrack(tr *component.AnimationTrack, table *anim.Table, id anim.TrackID) bool {
	if tr.Track == id {
		return false
	}
	tr.Track = id
	tr.Frame = 0
	tr.Timer = 0
	tr.Loop = table.Get(id).Loop
	tr.Finished = false
	return true
}
