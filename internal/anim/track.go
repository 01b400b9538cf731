// Package anim describes animation tracks: named frame sequences with a
// per-frame duration and loop or one-shot playback. The renderer owns the
// mapping from (track, frame) to sprite cells; this package only knows counts
// and timing.
package anim

import (
	"fmt"
	"strings"
)

// TrackID names an animation track.
type TrackID uint8

const (
	TrackNone TrackID = iota
	TrackIdle
	TrackWalking
	TrackAttacking
	TrackFalling
	TrackBulletFlying
	TrackBulletImpact
	trackCount
)

var trackNames = [trackCount]string{
	TrackNone:         "none",
	TrackIdle:         "idle",
	TrackWalking:      "walking",
	TrackAttacking:    "attacking",
	TrackFalling:      "falling",
	TrackBulletFlying: "flying",
	TrackBulletImpact: "impact",
}

func (id TrackID) String() string {
	if id < trackCount {
		return trackNames[id]
	}
	return fmt.Sprintf("track(%d)", uint8(id))
}

// ParseTrackID resolves a track name as written in track tables.
func ParseTrackID(name string) (TrackID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for id, n := range trackNames {
		if TrackID(id) != TrackNone && n == name {
			return TrackID(id), nil
		}
	}
	return TrackNone, fmt.Errorf("unknown track %q", name)
}

// Track is the timing definition of one track.
type Track struct {
	Frames        int
	FrameDuration float64 // seconds each frame stays on screen
	Loop          bool
}

// LastFrame returns the index of the final frame.
func (t Track) LastFrame() int { return t.Frames - 1 }

// Table maps every TrackID the simulation uses to its definition.
type Table struct {
	tracks [trackCount]Track
	set    [trackCount]bool
}

func NewTable() *Table {
	return &Table{}
}

// DefaultTable returns the built-in track timings used when no track file
// is supplied.
func DefaultTable() *Table {
	t := NewTable()
	t.Set(TrackIdle, Track{Frames: 4, FrameDuration: 0.25, Loop: true})
	t.Set(TrackWalking, Track{Frames: 6, FrameDuration: 0.1, Loop: true})
	t.Set(TrackAttacking, Track{Frames: 3, FrameDuration: 0.1, Loop: false})
	t.Set(TrackFalling, Track{Frames: 2, FrameDuration: 0.15, Loop: true})
	t.Set(TrackBulletFlying, Track{Frames: 4, FrameDuration: 0.05, Loop: true})
	t.Set(TrackBulletImpact, Track{Frames: 5, FrameDuration: 0.06, Loop: false})
	return t
}

// Set defines or replaces a track.
func (t *Table) Set(id TrackID, tr Track) {
	if id == TrackNone || id >= trackCount {
		return
	}
	t.tracks[id] = tr
	t.set[id] = true
}

// Get returns the definition of id. Undefined tracks come back as a single
// looping frame so frame indices stay in bounds.
func (t *Table) Get(id TrackID) Track {
	if id < trackCount && t.set[id] {
		return t.tracks[id]
	}
	return Track{Frames: 1, FrameDuration: 1, Loop: true}
}

// Count returns the number of defined tracks.
func (t *Table) Count() int {
	n := 0
	for _, ok := range t.set {
		if ok {
			n++
		}
	}
	return n
}

// Validate checks every defined track has frames and a positive duration,
// and that every track the simulation selects is present.
func (t *Table) Validate() error {
	for id := TrackIdle; id < trackCount; id++ {
		if !t.set[id] {
			return fmt.Errorf("track %s not defined", id)
		}
		tr := t.tracks[id]
		if tr.Frames <= 0 {
			return fmt.Errorf("track %s: frames must be > 0, got %d", id, tr.Frames)
		}
		if tr.FrameDuration <= 0 {
			return fmt.Errorf("track %s: frame_duration must be > 0, got %v", id, tr.FrameDuration)
		}
	}
	if t.tracks[TrackBulletImpact].Loop {
		return fmt.Errorf("track %s must be one-shot", TrackBulletImpact)
	}
	return nil
}

// Advance moves a playhead on track t forward by dt seconds and returns the
// new frame and timer. A frame steps once its timer has reached the frame
// duration, at most one step per call, so every frame stays on screen for at
// least one call. finished reports that a one-shot track has shown its last
// frame for a full duration; the playhead then stays on that frame.
func (t Track) Advance(frame int, timer, dt float64, loop bool) (next int, nextTimer float64, finished bool) {
	last := t.LastFrame()
	if frame > last {
		frame = last
	}
	if frame < 0 {
		frame = 0
	}
	if timer >= t.FrameDuration {
		timer = 0
		switch {
		case frame < last:
			frame++
		case loop:
			frame = 0
		default:
			return last, t.FrameDuration, true
		}
	}
	return frame, timer + dt, false
}
