// Package clock implements the playback clock driving the engine tick
// (spec.md §4.10): a fixed-timestep play/pause/loop state machine over a
// primary sequence's length. Its state is mutated only by the engine tick
// goroutine but read concurrently by the control-plane status handler, so
// access is mutex-guarded like the teacher's engine state.
package clock

import "sync"

// Snapshot is a point-in-time, lock-free copy of Clock's state, returned to
// callers that must not hold the clock's mutex (e.g. status handlers).
type Snapshot struct {
	CurrentTime float64
	IsPlaying   bool
	Bpm         float64
	BeatsPerBar uint32
}

// Clock is the engine's transport state.
type Clock struct {
	mutex sync.RWMutex

	currentTime float64
	isPlaying   bool
	bpm         float64
	beatsPerBar uint32
}

// New returns a stopped clock at time zero with the given tempo.
func New(bpm float64, beatsPerBar uint32) *Clock {
	return &Clock{bpm: bpm, beatsPerBar: beatsPerBar}
}

// Snapshot returns the clock's current state.
func (c *Clock) Snapshot() Snapshot {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return Snapshot{
		CurrentTime: c.currentTime,
		IsPlaying:   c.isPlaying,
		Bpm:         c.bpm,
		BeatsPerBar: c.beatsPerBar,
	}
}

// Play resumes playback if a primary sequence is present.
func (c *Clock) Play(hasPrimary bool) {
	if !hasPrimary {
		return
	}
	c.mutex.Lock()
	c.isPlaying = true
	c.mutex.Unlock()
}

// Pause halts playback without resetting the current time.
func (c *Clock) Pause() {
	c.mutex.Lock()
	c.isPlaying = false
	c.mutex.Unlock()
}

// Seek jumps to t without changing play state.
func (c *Clock) Seek(t float64) {
	c.mutex.Lock()
	c.currentTime = t
	c.mutex.Unlock()
}

// SetBpm changes the clock's tempo.
func (c *Clock) SetBpm(bpm float64) {
	c.mutex.Lock()
	c.bpm = bpm
	c.mutex.Unlock()
}

// SetBeatsPerBar changes the clock's time signature.
func (c *Clock) SetBeatsPerBar(beatsPerBar uint32) {
	c.mutex.Lock()
	c.beatsPerBar = beatsPerBar
	c.mutex.Unlock()
}

// Tick advances the clock by dt, looping back to zero if the primary
// sequence's length is exceeded. hasPrimary reports whether a primary
// sequence is currently set; sequenceLength is that sequence's length in
// seconds (ignored when hasPrimary is false). A zero dt leaves the clock
// unchanged (idempotent under zero dt, per spec.md §4.10). Only the engine
// tick goroutine calls Tick.
func (c *Clock) Tick(dt float64, hasPrimary bool, sequenceLength float64) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !hasPrimary {
		c.currentTime = 0
		c.isPlaying = false
		return
	}
	if !c.isPlaying {
		return
	}
	c.currentTime += dt
	if c.currentTime > sequenceLength {
		c.currentTime = 0
	}
}
