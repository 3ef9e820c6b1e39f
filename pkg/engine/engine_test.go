package engine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dougsko/lumenshow/pkg/blend"
	"github.com/dougsko/lumenshow/pkg/colorspace"
	"github.com/dougsko/lumenshow/pkg/config"
	"github.com/dougsko/lumenshow/pkg/effect"
	"github.com/dougsko/lumenshow/pkg/eventlog"
	"github.com/dougsko/lumenshow/pkg/handle"
	"github.com/dougsko/lumenshow/pkg/keyframe"
	"github.com/dougsko/lumenshow/pkg/protocol"
	"github.com/dougsko/lumenshow/pkg/timeline"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	var cfg config.Config
	cfg.Show.Name = "test show"
	cfg.Audio.SampleRate = 44100
	cfg.Audio.BufferSize = 1024
	cfg.Audio.Fft.WindowSize = 1024
	cfg.Audio.Fft.HopSize = 512
	cfg.Storage.DatabasePath = filepath.Join(t.TempDir(), "events.db")
	cfg.Storage.MaxEvents = 1000
	cfg.Fixtures = []config.FixtureConfig{
		{Name: "par1", InputType: "color"},
	}
	return &cfg
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(testConfig(t), filepath.Join(t.TempDir(), "control.sock"))
	t.Cleanup(func() { e.events.Close() })
	return e
}

func fillEffect(color colorspace.Color) effect.Effect {
	return effect.Effect{
		Groups:    map[uint32]struct{}{},
		Info:      effect.NewFill(color),
		Keyframes: keyframe.NewKeyframes(),
	}
}

func TestEngine_EvalAtAppliesEffectTrack(t *testing.T) {
	e := newTestEngine(t)

	effHandle := e.AddEffect(fillEffect(colorspace.New(1, 0, 0, 1)))
	seqHandle := e.AddSequence(timeline.Sequence{
		Name:   "main",
		Length: 10,
		Tracks: []timeline.Track{
			{
				Info: timeline.TrackInfo{BlendMode: blend.Mix, Opacity: 1},
				Contents: timeline.TrackContents{
					Kind:   timeline.KindEffectTrack,
					Effect: effHandle,
				},
			},
		},
	})

	out, err := e.EvalAt(seqHandle, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.True(t, out[0].HasColor)
	require.InDelta(t, 1.0, out[0].Color.R, 1e-9)
}

func TestEngine_EvalAtUnknownSequenceReturnsDefaults(t *testing.T) {
	e := newTestEngine(t)

	out, err := e.EvalAt(timeline.SequenceHandle{}, 0)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.True(t, out[0].HasColor)
	require.Equal(t, colorspace.None, out[0].Color)
}

func TestEngine_HandleStatusReportsPrimary(t *testing.T) {
	e := newTestEngine(t)

	seqHandle := e.AddSequence(timeline.Sequence{Name: "main", Length: 4})
	e.SetPrimary(seqHandle)

	resp := e.handleCommand(&protocol.Command{Type: protocol.CmdStatus})
	require.True(t, resp.Success)

	status := resp.Data["status"].(protocol.Status)
	require.Equal(t, "main", status.PrimarySequence)
	require.Equal(t, Version, status.Version)
}

func TestEngine_HandleSetPrimaryRejectsStaleHandle(t *testing.T) {
	e := newTestEngine(t)

	stale := e.AddSequence(timeline.Sequence{Name: "temp"})
	require.NoError(t, e.sequences.Remove(stale))

	resp := e.handleCommand(&protocol.Command{Type: protocol.CmdSetPrimary, Args: map[string]string{"value": stale.String()}})
	require.False(t, resp.Success)
	require.False(t, e.hasPrimary)
}

func TestEngine_HandlePlayPauseSeek(t *testing.T) {
	e := newTestEngine(t)

	seqHandle := e.AddSequence(timeline.Sequence{Name: "main", Length: 10})
	e.SetPrimary(seqHandle)

	resp := e.handleCommand(&protocol.Command{Type: protocol.CmdPlay})
	require.True(t, resp.Success)
	require.True(t, e.clock.Snapshot().IsPlaying)

	resp = e.handleCommand(&protocol.Command{Type: protocol.CmdSeek, Args: map[string]string{"value": "5"}})
	require.True(t, resp.Success)
	require.InDelta(t, 5.0, e.clock.Snapshot().CurrentTime, 1e-9)

	resp = e.handleCommand(&protocol.Command{Type: protocol.CmdPause})
	require.True(t, resp.Success)
	require.False(t, e.clock.Snapshot().IsPlaying)
}

func TestEngine_HandleSetBpmAndBeatsPerBar(t *testing.T) {
	e := newTestEngine(t)

	resp := e.handleCommand(&protocol.Command{Type: protocol.CmdSetBpm, Args: map[string]string{"value": "140"}})
	require.True(t, resp.Success)
	require.Equal(t, 140.0, e.clock.Snapshot().Bpm)

	resp = e.handleCommand(&protocol.Command{Type: protocol.CmdSetBeatsPerBar, Args: map[string]string{"value": "3"}})
	require.True(t, resp.Success)
	require.Equal(t, uint32(3), e.clock.Snapshot().BeatsPerBar)

	resp = e.handleCommand(&protocol.Command{Type: protocol.CmdSetBpm, Args: map[string]string{"value": "not-a-number"}})
	require.False(t, resp.Success)
}

func TestEngine_HandleAddEffectFill(t *testing.T) {
	e := newTestEngine(t)

	payload := `{"variant":"fill","groups":[1],"params":{"color":{"R":0.5,"G":0.25,"B":0,"A":1}},
		"keyframes":[{"time":0,"channel":"color","kind":"color","color":{"R":1,"G":0,"B":0,"A":1},"interpolation":"constant"}]}`

	resp := e.handleCommand(&protocol.Command{Type: protocol.CmdAddEffect, Args: map[string]string{"value": payload}})
	require.True(t, resp.Success, resp.Error)

	hStr, ok := resp.Data["handle"].(string)
	require.True(t, ok)
	h, err := handle.ParseHandle(hStr)
	require.NoError(t, err)

	eff, ok := e.effects.Get(h)
	require.True(t, ok)
	require.IsType(t, &effect.Fill{}, eff.Info)
	require.Contains(t, eff.Groups, uint32(1))
}

func TestEngine_HandleAddEffectUnknownVariant(t *testing.T) {
	e := newTestEngine(t)

	resp := e.handleCommand(&protocol.Command{Type: protocol.CmdAddEffect, Args: map[string]string{"value": `{"variant":"nonexistent"}`}})
	require.False(t, resp.Success)
}

func TestEngine_HandleRemoveSequenceAndEffect(t *testing.T) {
	e := newTestEngine(t)

	seqHandle := e.AddSequence(timeline.Sequence{Name: "main"})
	effHandle := e.AddEffect(fillEffect(colorspace.Black))

	resp := e.handleCommand(&protocol.Command{Type: protocol.CmdRemove, Args: map[string]string{"value": seqHandle.String()}})
	require.True(t, resp.Success)
	_, ok := e.sequences.Get(seqHandle)
	require.False(t, ok)

	resp = e.handleCommand(&protocol.Command{Type: protocol.CmdRemove, Args: map[string]string{"value": effHandle.String()}})
	require.True(t, resp.Success)
	_, ok = e.effects.Get(effHandle)
	require.False(t, ok)

	resp = e.handleCommand(&protocol.Command{Type: protocol.CmdRemove, Args: map[string]string{"value": seqHandle.String()}})
	require.False(t, resp.Success)
}

func TestEngine_HandleUnknownCommand(t *testing.T) {
	e := newTestEngine(t)
	resp := e.handleCommand(&protocol.Command{Type: "BOGUS"})
	require.False(t, resp.Success)
}

func TestEngine_TickAppliesEvaluatedOutputToSnapshot(t *testing.T) {
	e := newTestEngine(t)

	effHandle := e.AddEffect(fillEffect(colorspace.New(0, 1, 0, 1)))
	seqHandle := e.AddSequence(timeline.Sequence{
		Name:   "main",
		Length: 10,
		Tracks: []timeline.Track{
			{
				Info:     timeline.TrackInfo{BlendMode: blend.Mix, Opacity: 1},
				Contents: timeline.TrackContents{Kind: timeline.KindEffectTrack, Effect: effHandle},
			},
		},
	})
	e.SetPrimary(seqHandle)
	e.clock.Play(true)

	e.tick(1.0 / 44)

	snap := e.Snapshot()
	require.Len(t, snap, 1)
	require.True(t, snap[0].HasColor)
	require.Greater(t, snap[0].Color.G, 0.0)
}

func TestEngine_TickRecordsLoopEventOnWrap(t *testing.T) {
	e := newTestEngine(t)

	seqHandle := e.AddSequence(timeline.Sequence{Name: "main", Length: 1})
	e.SetPrimary(seqHandle)
	e.clock.Play(true)
	e.clock.Seek(0.9)

	e.tick(0.5)

	require.InDelta(t, 0, e.clock.Snapshot().CurrentTime, 1e-9)

	events, err := e.RecentEvents(10)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	require.Equal(t, eventlog.KindLoop, events[0].Kind)
}
