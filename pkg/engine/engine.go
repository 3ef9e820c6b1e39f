// Package engine implements the lighting show's tick-driven processing
// core (spec.md §5): a fixed-rate loop that advances the playback clock,
// drains the FFT pipeline, rebuilds the active tree, evaluates it against
// the fixture layout, and applies the result to fixture state. A Unix
// control socket carries playback and authoring commands in, funneled
// through a channel the tick drains once per cycle so every mutation of
// engine state happens on the tick goroutine.
package engine

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/dougsko/lumenshow/pkg/active"
	"github.com/dougsko/lumenshow/pkg/audioring"
	"github.com/dougsko/lumenshow/pkg/clock"
	"github.com/dougsko/lumenshow/pkg/colorspace"
	"github.com/dougsko/lumenshow/pkg/config"
	"github.com/dougsko/lumenshow/pkg/effect"
	"github.com/dougsko/lumenshow/pkg/eventlog"
	"github.com/dougsko/lumenshow/pkg/evaluator"
	"github.com/dougsko/lumenshow/pkg/fixture"
	"github.com/dougsko/lumenshow/pkg/handle"
	"github.com/dougsko/lumenshow/pkg/hardware"
	"github.com/dougsko/lumenshow/pkg/keyframe"
	"github.com/dougsko/lumenshow/pkg/protocol"
	"github.com/dougsko/lumenshow/pkg/spatial"
	"github.com/dougsko/lumenshow/pkg/spectrum"
	"github.com/dougsko/lumenshow/pkg/timeline"
)

// Version is reported by the STATUS command.
const Version = "0.1.0-dev"

// tickRate is the engine's fixed tick frequency (spec.md §5).
const tickRate = 44

// Engine is the show's processing core: the handle stores, active tree,
// playback clock, fixture layout and audio pipeline, all mutated only by
// the tick goroutine.
type Engine struct {
	config     *config.Config
	socketPath string

	mutex   sync.RWMutex
	running bool

	listener net.Listener

	sequences *handle.Store[timeline.Sequence]
	effects   *handle.Store[effect.Effect]

	hasPrimary bool
	primary    timeline.SequenceHandle

	tree  active.Tree
	clock *clock.Clock

	fixtures []fixture.Info
	states   []fixture.State

	capture     *hardware.CaptureManager
	ring        *audioring.Ring
	pipeline    *spectrum.Pipeline
	lastDropped uint64

	events *eventlog.Log

	commands chan command

	snapMutex sync.RWMutex
	snapshot  []fixture.Input
}

// command is one control-protocol request funneled onto the tick goroutine.
type command struct {
	cmd  *protocol.Command
	done chan *protocol.Response
}

// NewEngine constructs an Engine from cfg, wiring up the fixture layout,
// handle stores, capture ring and event log. socketPath is the control
// protocol's Unix socket path.
func NewEngine(cfg *config.Config, socketPath string) *Engine {
	events, err := eventlog.New(cfg.Storage.DatabasePath, cfg.Storage.MaxEvents)
	if err != nil {
		log.Printf("Warning: failed to initialize event log: %v", err)
		events = nil
	}

	fixtures := buildFixtures(cfg.Fixtures)

	ringCapacity := cfg.Audio.SampleRate * 2
	if ringCapacity <= 0 {
		ringCapacity = 1 << 16
	}

	return &Engine{
		config:     cfg,
		socketPath: socketPath,
		sequences:  handle.NewStore[timeline.Sequence](),
		effects:    handle.NewStore[effect.Effect](),
		clock:      clock.New(120, 4),
		fixtures:   fixtures,
		states:     make([]fixture.State, len(fixtures)),
		ring:       audioring.NewRing(ringCapacity),
		pipeline: spectrum.NewPipeline(spectrum.Config{
			SampleRate: cfg.Audio.SampleRate,
			WindowSize: cfg.Audio.Fft.WindowSize,
			HopSize:    cfg.Audio.Fft.HopSize,
		}),
		events:   events,
		commands: make(chan command, 32),
	}
}

func buildFixtures(cfgs []config.FixtureConfig) []fixture.Info {
	out := make([]fixture.Info, len(cfgs))
	for i, f := range cfgs {
		groups := make(map[uint32]struct{}, len(f.Groups))
		for _, g := range f.Groups {
			groups[g] = struct{}{}
		}
		out[i] = fixture.Info{
			Name:      f.Name,
			Groups:    groups,
			InputType: parseInputType(f.InputType),
			Position:  spatial.New(f.Position.X, f.Position.Y, f.Position.Z),
		}
	}
	return out
}

func parseInputType(s string) fixture.InputType {
	switch s {
	case "vec3":
		return fixture.Vec3
	case "combined":
		return fixture.Combined
	default:
		return fixture.Color
	}
}

// Start initializes audio capture, opens the control socket, and starts
// the tick loop and connection-accept goroutines.
func (e *Engine) Start() error {
	e.mutex.Lock()
	e.running = true
	e.mutex.Unlock()

	e.startCapture()

	os.Remove(e.socketPath)
	listener, err := net.Listen("unix", e.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create control socket: %w", err)
	}
	e.listener = listener
	if err := os.Chmod(e.socketPath, 0660); err != nil {
		log.Printf("Warning: failed to set control socket permissions: %v", err)
	}

	log.Printf("Engine: control socket listening on %s", e.socketPath)

	go e.acceptConnections()
	go e.run()

	return nil
}

// startCapture brings up the audio capture interface. Construction or
// start failure is recoverable per spec.md §7: the engine logs and
// continues with a permanently-empty ring, so audio-reactive effects see
// zero-length spectrum frames rather than blocking startup.
func (e *Engine) startCapture() {
	captureConfig := hardware.CaptureConfig{
		EnableAudio: e.config.Audio.InputDevice != "",
		AudioInput:  e.config.Audio.InputDevice,
		SampleRate:  e.config.Audio.SampleRate,
		BufferSize:  e.config.Audio.BufferSize,
	}
	e.capture = hardware.NewCaptureManager(captureConfig)

	if err := e.capture.Initialize(); err != nil {
		log.Printf("Warning: audio capture unavailable: %v", err)
		e.recordEvent(eventlog.KindAudioDeviceUnavailable, err.Error())
		return
	}
	if !captureConfig.EnableAudio {
		return
	}
	if err := e.capture.StartAudioInput(); err != nil {
		log.Printf("Warning: failed to start audio capture: %v", err)
		e.recordEvent(eventlog.KindAudioDeviceUnavailable, err.Error())
		return
	}

	go e.captureFeeder()
}

// captureFeeder converts the hardware layer's float32 samples to float64
// and pushes them into the ring. This is the only goroutine that writes
// to the ring; it never allocates in steady state beyond the conversion
// buffer, which it reuses across chunks.
func (e *Engine) captureFeeder() {
	samples := e.capture.GetAudioInputSamples()
	if samples == nil {
		return
	}

	var buf []float64
	for e.isRunning() {
		chunk, ok := <-samples
		if !ok {
			return
		}
		if cap(buf) < len(chunk) {
			buf = make([]float64, len(chunk))
		}
		buf = buf[:len(chunk)]
		for i, s := range chunk {
			buf[i] = float64(s)
		}
		e.ring.Push(buf)
	}
}

// run drives the fixed-rate engine tick (spec.md §5): clock advance, FFT
// drain, active-tree update, evaluation, output application, in that
// strict order every cycle.
func (e *Engine) run() {
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	last := time.Now()
	for e.isRunning() {
		<-ticker.C
		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now
		e.tick(dt)
	}
}

func (e *Engine) tick(dt float64) {
	e.drainCommands()

	hasPrimary, primary := e.primarySnapshot()
	length := 0.0
	if hasPrimary {
		if seq, ok := e.sequences.Get(primary); ok {
			length = seq.Length
		} else {
			hasPrimary = false
		}
	}
	prevTime := e.clock.Snapshot().CurrentTime
	e.clock.Tick(dt, hasPrimary, length)
	snap := e.clock.Snapshot()
	if hasPrimary && snap.CurrentTime < prevTime {
		e.recordEvent(eventlog.KindLoop, fmt.Sprintf("wrapped from %.3fs to %.3fs", prevTime, snap.CurrentTime))
	}

	e.pipeline.Drain(e.ring)
	e.checkDroppedSamples()

	audio := effect.AudioContext{NewFrames: e.pipeline.Recent().NewFromLastTick()}

	stores := active.Stores{Sequences: e.sequences, Effects: e.effects}
	if err := e.tree.Update(stores, primary, snap.CurrentTime, audio); err != nil {
		log.Printf("FATAL: active tree update: %v", err)
	}

	out, err := evaluator.Eval(e.tree.Root, e.fixtures)
	if err != nil {
		log.Printf("FATAL: evaluator type mismatch: %v", err)
	}

	for i := range out {
		fixture.Apply(&e.states[i], out[i])
	}

	e.pipeline.Recent().ResetTickCounter()

	e.snapMutex.Lock()
	e.snapshot = out
	e.snapMutex.Unlock()
}

func (e *Engine) checkDroppedSamples() {
	dropped := e.ring.Dropped()
	if dropped > e.lastDropped {
		e.recordEvent(eventlog.KindDroppedSamples, fmt.Sprintf("%d", dropped-e.lastDropped))
		e.lastDropped = dropped
	}
}

// drainCommands executes every command queued since the last tick. This
// is the only place engine state is mutated by a control-protocol
// request, preserving the "engine-tick exclusive" rule (spec.md §5).
func (e *Engine) drainCommands() {
	for {
		select {
		case c := <-e.commands:
			c.done <- e.handleCommand(c.cmd)
		default:
			return
		}
	}
}

func (e *Engine) primarySnapshot() (bool, timeline.SequenceHandle) {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.hasPrimary, e.primary
}

func (e *Engine) isRunning() bool {
	e.mutex.RLock()
	defer e.mutex.RUnlock()
	return e.running
}

func (e *Engine) recordEvent(kind eventlog.Kind, detail string) {
	if err := e.events.Record(kind, detail); err != nil {
		log.Printf("Warning: failed to record event: %v", err)
	}
}

// acceptConnections accepts control-socket connections, one goroutine per
// connection, until the engine stops.
func (e *Engine) acceptConnections() {
	for e.isRunning() {
		conn, err := e.listener.Accept()
		if err != nil {
			if e.isRunning() {
				log.Printf("Engine: socket accept error: %v", err)
			}
			continue
		}
		go e.handleConnection(conn)
	}
}

func (e *Engine) handleConnection(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		cmd, err := protocol.ParseCommand(line)
		if err != nil {
			resp := protocol.NewErrorResponse(fmt.Sprintf("parse error: %v", err))
			fmt.Fprintln(conn, resp.String())
			continue
		}

		resp := e.submit(cmd)
		fmt.Fprintln(conn, resp.String())
	}
}

// submit hands cmd to the tick goroutine and blocks for its response.
func (e *Engine) submit(cmd *protocol.Command) *protocol.Response {
	done := make(chan *protocol.Response, 1)
	e.commands <- command{cmd: cmd, done: done}
	return <-done
}

// handleCommand dispatches one parsed Command. It runs only on the tick
// goroutine, via drainCommands.
func (e *Engine) handleCommand(cmd *protocol.Command) *protocol.Response {
	switch cmd.Type {
	case protocol.CmdStatus:
		return e.handleStatus()
	case protocol.CmdPlay:
		return e.handlePlay()
	case protocol.CmdPause:
		return e.handlePause()
	case protocol.CmdSeek:
		return e.handleSeek(cmd)
	case protocol.CmdSetBpm:
		return e.handleSetBpm(cmd)
	case protocol.CmdSetBeatsPerBar:
		return e.handleSetBeatsPerBar(cmd)
	case protocol.CmdSetPrimary:
		return e.handleSetPrimary(cmd)
	case protocol.CmdAddEffect:
		return e.handleAddEffect(cmd)
	case protocol.CmdRemove:
		return e.handleRemove(cmd)
	default:
		return protocol.NewErrorResponse(fmt.Sprintf("unknown command: %s", cmd.Type))
	}
}

func (e *Engine) handleStatus() *protocol.Response {
	snap := e.clock.Snapshot()

	primaryName := ""
	if seq, ok := e.sequences.Get(e.primary); e.hasPrimary && ok {
		primaryName = seq.Name
	}

	status := protocol.Status{
		CurrentTime:     snap.CurrentTime,
		IsPlaying:       snap.IsPlaying,
		Bpm:             snap.Bpm,
		BeatsPerBar:     snap.BeatsPerBar,
		PrimarySequence: primaryName,
		Version:         Version,
	}
	return protocol.NewSuccessResponse(map[string]interface{}{"status": status})
}

func (e *Engine) handlePlay() *protocol.Response {
	e.clock.Play(e.hasPrimary)
	e.recordEvent(eventlog.KindPlay, "")
	return protocol.NewSuccessResponse(nil)
}

func (e *Engine) handlePause() *protocol.Response {
	e.clock.Pause()
	e.recordEvent(eventlog.KindPause, "")
	return protocol.NewSuccessResponse(nil)
}

func (e *Engine) handleSeek(cmd *protocol.Command) *protocol.Response {
	v, err := strconv.ParseFloat(cmd.Args["value"], 64)
	if err != nil {
		return protocol.NewErrorResponse(fmt.Sprintf("invalid seek value: %v", err))
	}
	e.clock.Seek(v)
	e.recordEvent(eventlog.KindSeek, fmt.Sprintf("%g", v))
	return protocol.NewSuccessResponse(nil)
}

func (e *Engine) handleSetBpm(cmd *protocol.Command) *protocol.Response {
	v, err := strconv.ParseFloat(cmd.Args["value"], 64)
	if err != nil {
		return protocol.NewErrorResponse(fmt.Sprintf("invalid bpm: %v", err))
	}
	e.clock.SetBpm(v)
	return protocol.NewSuccessResponse(nil)
}

func (e *Engine) handleSetBeatsPerBar(cmd *protocol.Command) *protocol.Response {
	v, err := strconv.ParseUint(cmd.Args["value"], 10, 32)
	if err != nil {
		return protocol.NewErrorResponse(fmt.Sprintf("invalid beats_per_bar: %v", err))
	}
	e.clock.SetBeatsPerBar(uint32(v))
	return protocol.NewSuccessResponse(nil)
}

func (e *Engine) handleSetPrimary(cmd *protocol.Command) *protocol.Response {
	h, err := handle.ParseHandle(cmd.Args["value"])
	if err != nil {
		return protocol.NewErrorResponse(err.Error())
	}
	if _, ok := e.sequences.Get(h); !ok {
		e.recordEvent(eventlog.KindStaleHandle, h.String())
		return protocol.NewErrorResponse("stale or unknown sequence handle")
	}

	e.hasPrimary = true
	e.primary = h
	return protocol.NewSuccessResponse(map[string]interface{}{"primary_sequence": h.String()})
}

// handleRemove deletes a handle-addressed sequence or effect. A handle may
// legally resolve in at most one store, since handle.Store generations are
// per-store.
func (e *Engine) handleRemove(cmd *protocol.Command) *protocol.Response {
	h, err := handle.ParseHandle(cmd.Args["value"])
	if err != nil {
		return protocol.NewErrorResponse(err.Error())
	}

	if err := e.sequences.Remove(h); err == nil {
		if e.hasPrimary && e.primary == h {
			e.hasPrimary = false
		}
		return protocol.NewSuccessResponse(map[string]interface{}{"removed": "sequence"})
	}
	if err := e.effects.Remove(h); err == nil {
		return protocol.NewSuccessResponse(map[string]interface{}{"removed": "effect"})
	}

	e.recordEvent(eventlog.KindStaleHandle, h.String())
	return protocol.NewErrorResponse("stale or unknown handle")
}

// handleAddEffect parses a JSON effectSpec and installs it in the effect
// store, returning its wire-form handle. Building Sequences/Tracks/Clips
// is not part of the wire protocol (spec.md §6) — this is the one
// authoring operation the control protocol exposes directly.
func (e *Engine) handleAddEffect(cmd *protocol.Command) *protocol.Response {
	h, err := e.AddEffectJSON([]byte(cmd.Args["value"]))
	if err != nil {
		return protocol.NewErrorResponse(err.Error())
	}
	return protocol.NewSuccessResponse(map[string]interface{}{"handle": h.String()})
}

// AddEffectJSON parses a JSON effectSpec payload and installs it in the
// effect store, returning its handle. This is the same parsing handleAddEffect
// uses for the wire protocol, exposed directly for programmatic authoring
// (cmd/lumenrender) that doesn't go through a running daemon's command channel.
func (e *Engine) AddEffectJSON(data []byte) (timeline.EffectHandle, error) {
	var spec effectSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return timeline.EffectHandle{}, fmt.Errorf("invalid effect payload: %w", err)
	}

	eff, err := spec.toEffect()
	if err != nil {
		return timeline.EffectHandle{}, err
	}

	return e.effects.Add(eff), nil
}

// AddSequence inserts seq into the sequence store. Sequences/tracks/clips
// are authored programmatically by an external loader collaborator
// (spec.md §6), not over the wire protocol; this is that collaborator's
// entry point.
func (e *Engine) AddSequence(seq timeline.Sequence) timeline.SequenceHandle {
	return e.sequences.Add(seq)
}

// AddEffect inserts eff into the effect store, for the same programmatic
// authoring path as AddSequence.
func (e *Engine) AddEffect(eff effect.Effect) timeline.EffectHandle {
	return e.effects.Add(eff)
}

// SetPrimary sets the sequence driving the playback clock.
func (e *Engine) SetPrimary(h timeline.SequenceHandle) {
	e.hasPrimary = true
	e.primary = h
}

// Fixtures returns the fixture layout the evaluator runs against.
func (e *Engine) Fixtures() []fixture.Info {
	return e.fixtures
}

// Snapshot returns the most recently evaluated per-fixture output.
func (e *Engine) Snapshot() []fixture.Input {
	e.snapMutex.RLock()
	defer e.snapMutex.RUnlock()
	return append([]fixture.Input(nil), e.snapshot...)
}

// ClockSnapshot returns the playback clock's current state.
func (e *Engine) ClockSnapshot() clock.Snapshot {
	return e.clock.Snapshot()
}

// EvalAt evaluates the sequence addressed by h at localTime, independent
// of the live active tree and clock. It is a debug-tool entry point
// (cmd/lumenrender) for inspecting the evaluator without running the
// daemon.
func (e *Engine) EvalAt(h timeline.SequenceHandle, localTime float64) ([]fixture.Input, error) {
	var tree active.Tree
	stores := active.Stores{Sequences: e.sequences, Effects: e.effects}
	if err := tree.Update(stores, h, localTime, effect.AudioContext{}); err != nil {
		return nil, err
	}
	return evaluator.Eval(tree.Root, e.fixtures)
}

// RecentEvents returns up to limit recent diagnostics entries.
func (e *Engine) RecentEvents(limit int) ([]eventlog.Event, error) {
	return e.events.Recent(limit)
}

// Stop tears down the engine: per spec.md §5's shutdown ordering, the
// capture stream is dropped first, then the control socket and event log.
func (e *Engine) Stop() error {
	log.Printf("Engine: stopping...")

	e.mutex.Lock()
	e.running = false
	e.mutex.Unlock()

	if e.capture != nil {
		if err := e.capture.Close(); err != nil {
			log.Printf("Engine: error closing audio capture: %v", err)
		}
	}
	if e.listener != nil {
		if err := e.listener.Close(); err != nil {
			log.Printf("Engine: error closing control socket: %v", err)
		}
	}
	if e.events != nil {
		if err := e.events.Close(); err != nil {
			log.Printf("Engine: error closing event log: %v", err)
		}
	}

	log.Printf("Engine: stopped")
	return nil
}

// effectSpec is the JSON wire shape ADD_EFFECT accepts: a variant name,
// its groups, variant-specific construction params, and the keyframes
// driving it.
type effectSpec struct {
	Variant   string          `json:"variant"`
	Groups    []uint32        `json:"groups"`
	Params    json.RawMessage `json:"params"`
	Keyframes []keyframeSpec  `json:"keyframes"`
}

type keyframeSpec struct {
	Time          float64    `json:"time"`
	Channel       string     `json:"channel"`
	Kind          string     `json:"kind"` // scalar|color|vec3
	Scalar        float64    `json:"scalar,omitempty"`
	Color         *colorSpec `json:"color,omitempty"`
	Vec3          *vec3Spec  `json:"vec3,omitempty"`
	Interpolation string     `json:"interpolation"` // linear|constant
}

type colorSpec struct {
	R, G, B, A float64
}

func (c colorSpec) toColor() colorspace.Color { return colorspace.New(c.R, c.G, c.B, c.A) }

type vec3Spec struct {
	X, Y, Z float64
}

func (v vec3Spec) toVec3() spatial.Vec3 { return spatial.New(v.X, v.Y, v.Z) }

type bandSpec struct {
	T     float64   `json:"t"`
	Color colorSpec `json:"color"`
}

func (spec effectSpec) toEffect() (effect.Effect, error) {
	variant, err := spec.buildVariant()
	if err != nil {
		return effect.Effect{}, err
	}

	kfs := keyframe.NewKeyframes()
	for _, kf := range spec.Keyframes {
		k, err := kf.toKeyframe()
		if err != nil {
			return effect.Effect{}, err
		}
		kfs.Add(k)
	}

	groups := make(map[uint32]struct{}, len(spec.Groups))
	for _, g := range spec.Groups {
		groups[g] = struct{}{}
	}

	return effect.Effect{Groups: groups, Info: variant, Keyframes: kfs}, nil
}

func (spec effectSpec) buildVariant() (effect.Variant, error) {
	switch spec.Variant {
	case "fill":
		var p struct {
			Color colorSpec `json:"color"`
		}
		if err := spec.unmarshalParams(&p); err != nil {
			return nil, err
		}
		return effect.NewFill(p.Color.toColor()), nil

	case "shockwave":
		var p struct {
			Color  colorSpec `json:"color"`
			Center vec3Spec  `json:"center"`
			Radius float64   `json:"radius"`
			Flat   float64   `json:"flat"`
			Head   float64   `json:"head"`
			Tail   float64   `json:"tail"`
		}
		if err := spec.unmarshalParams(&p); err != nil {
			return nil, err
		}
		return effect.NewShockwave(p.Color.toColor(), p.Center.toVec3(), p.Radius, p.Flat, p.Head, p.Tail), nil

	case "cascade":
		var p struct {
			BufferSize int        `json:"buffer_size"`
			Bands      []bandSpec `json:"bands"`
			Direction  vec3Spec   `json:"direction"`
			WindowSize float64    `json:"window_size"`
		}
		if err := spec.unmarshalParams(&p); err != nil {
			return nil, err
		}
		bands := make([]colorspace.Stop, len(p.Bands))
		for i, b := range p.Bands {
			bands[i] = colorspace.Stop{T: b.T, Color: b.Color.toColor()}
		}
		return effect.NewFrequencyCascade(p.BufferSize, bands, p.Direction.toVec3(), p.WindowSize), nil

	case "orbit":
		var p struct {
			Center      vec3Spec `json:"center"`
			Axis        vec3Spec `json:"axis"`
			Radius      float64  `json:"radius"`
			AngularRate float64  `json:"angular_rate"`
		}
		if err := spec.unmarshalParams(&p); err != nil {
			return nil, err
		}
		return effect.NewOrbit(p.Center.toVec3(), p.Axis.toVec3(), p.Radius, p.AngularRate), nil

	default:
		return nil, fmt.Errorf("unknown effect variant %q", spec.Variant)
	}
}

func (spec effectSpec) unmarshalParams(dst interface{}) error {
	if len(spec.Params) == 0 {
		return nil
	}
	if err := json.Unmarshal(spec.Params, dst); err != nil {
		return fmt.Errorf("invalid %s params: %w", spec.Variant, err)
	}
	return nil
}

func (k keyframeSpec) toKeyframe() (keyframe.Keyframe, error) {
	interp := keyframe.Linear
	if k.Interpolation == "constant" {
		interp = keyframe.Constant
	}

	var value keyframe.Value
	switch k.Kind {
	case "scalar":
		value = keyframe.ScalarValue(k.Scalar)
	case "color":
		if k.Color == nil {
			return keyframe.Keyframe{}, fmt.Errorf("keyframe %q missing color value", k.Channel)
		}
		value = keyframe.ColorValue(k.Color.toColor())
	case "vec3":
		if k.Vec3 == nil {
			return keyframe.Keyframe{}, fmt.Errorf("keyframe %q missing vec3 value", k.Channel)
		}
		value = keyframe.Vec3Value(k.Vec3.toVec3())
	default:
		return keyframe.Keyframe{}, fmt.Errorf("unknown keyframe kind %q", k.Kind)
	}

	return keyframe.Keyframe{Time: k.Time, Channel: k.Channel, Value: value, Interpolation: interp}, nil
}
