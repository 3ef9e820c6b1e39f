// Package spectrum implements the Hann-windowed, overlapped magnitude-
// spectrum FFT pipeline (spec.md §4.5) and the rolling window of recent
// frames audio-reactive effects consume.
package spectrum

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/window"
	"github.com/mjibson/go-dsp/fft"

	"github.com/dougsko/lumenshow/pkg/audioring"
)

// Config mirrors spec.md's FftConfig.
type Config struct {
	SampleRate int
	WindowSize int
	HopSize    int
}

// BinToFreq maps an FFT bin index to its center frequency in Hz.
func (c Config) BinToFreq(bin int) float64 {
	return float64(bin) * float64(c.SampleRate) / float64(c.WindowSize)
}

// FreqToBin maps a frequency in Hz to its nearest FFT bin index.
func (c Config) FreqToBin(freq float64) int {
	return int(math.Round(freq * float64(c.WindowSize) / float64(c.SampleRate)))
}

// Band is one of the fixed named frequency ranges spec.md §4.5 defines.
type Band struct {
	Min, Max float64
}

var (
	Bass    = Band{20, 150}
	LowMid  = Band{150, 500}
	Mid     = Band{500, 2000}
	HighMid = Band{2000, 4000}
	Treble  = Band{4000, 20000}
)

// Frame is one completed FFT window's magnitude spectrum.
type Frame struct {
	Magnitudes []float64
	Config     Config
}

// MagnitudeAt returns the magnitude of the bin nearest freq, clamped to the
// valid bin range.
func (f *Frame) MagnitudeAt(freq float64) float64 {
	bin := f.clampBin(f.Config.FreqToBin(freq))
	return f.Magnitudes[bin]
}

func (f *Frame) clampBin(bin int) int {
	if bin < 0 {
		return 0
	}
	if bin > len(f.Magnitudes)-1 {
		return len(f.Magnitudes) - 1
	}
	return bin
}

// AverageMagnitudeRange returns mean(magnitudes[freq_to_bin(fMin)..freq_to_bin(fMax)]),
// clamped to the valid bin range.
func (f *Frame) AverageMagnitudeRange(fMin, fMax float64) float64 {
	lo := f.clampBin(f.Config.FreqToBin(fMin))
	hi := f.clampBin(f.Config.FreqToBin(fMax))
	if hi < lo {
		lo, hi = hi, lo
	}
	sum := 0.0
	for i := lo; i <= hi; i++ {
		sum += f.Magnitudes[i]
	}
	return sum / float64(hi-lo+1)
}

// AverageBand is a convenience wrapper over AverageMagnitudeRange for a
// named Band.
func (f *Frame) AverageBand(b Band) float64 {
	return f.AverageMagnitudeRange(b.Min, b.Max)
}

// PeakFrequency returns the frequency of the highest-magnitude bin, ignoring
// bin 0 (DC).
func (f *Frame) PeakFrequency() float64 {
	peakBin := 1
	peakMag := -1.0
	for i := 1; i < len(f.Magnitudes); i++ {
		if f.Magnitudes[i] > peakMag {
			peakMag = f.Magnitudes[i]
			peakBin = i
		}
	}
	return f.Config.BinToFreq(peakBin)
}

// Recent is the rolling window of recent FFT frames, retaining enough
// frames to cover at least the last second of audio (spec.md §9's resolved
// retention formula: ceil(sample_rate/hop_size) + 1 frames).
type Recent struct {
	frames              []*Frame
	newFromLastTick     int
	retainedFrameCount  int
}

// NewRecent creates an empty rolling window sized for cfg.
func NewRecent(cfg Config) *Recent {
	retain := 1
	if cfg.HopSize > 0 {
		retain = int(math.Ceil(float64(cfg.SampleRate)/float64(cfg.HopSize))) + 1
	}
	return &Recent{retainedFrameCount: retain}
}

// Add appends a newly completed frame and trims the front to the retention
// window.
func (r *Recent) Add(f *Frame) {
	r.frames = append(r.frames, f)
	if len(r.frames) > r.retainedFrameCount {
		drop := len(r.frames) - r.retainedFrameCount
		r.frames = r.frames[drop:]
	}
	r.newFromLastTick++
}

// ResetTickCounter clears the new-frames-since-last-tick counter; the
// engine calls this once per tick after effects have consumed
// NewFromLastTick.
func (r *Recent) ResetTickCounter() {
	r.newFromLastTick = 0
}

// PastSecond returns all retained frames.
func (r *Recent) PastSecond() []*Frame {
	return r.frames
}

// NewFromLastTick returns only the frames appended since the last
// ResetTickCounter call.
func (r *Recent) NewFromLastTick() []*Frame {
	n := r.newFromLastTick
	if n > len(r.frames) {
		n = len(r.frames)
	}
	return r.frames[len(r.frames)-n:]
}

// Latest returns the most recently completed frame, or nil if none exist.
func (r *Recent) Latest() *Frame {
	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[len(r.frames)-1]
}

// Pipeline drains a capture ring into Hann-windowed, hop-stepped magnitude
// spectra (spec.md §4.5). It resolves spec.md §9's overlap-add Open
// Question with strategy (b): pop hop_size samples into a sliding buffer
// rather than popping window_size and rewinding.
type Pipeline struct {
	cfg    Config
	hann   []float64
	buffer []float64 // sliding window_size-length buffer, newest samples at the tail
	filled int       // how much of buffer holds valid samples so far
	recent *Recent

	fftIn []complex128
}

// NewPipeline builds a Pipeline for cfg.
func NewPipeline(cfg Config) *Pipeline {
	win := window.Generate(window.TypeHann, cfg.WindowSize, window.WithPeriodic())
	return &Pipeline{
		cfg:    cfg,
		hann:   win,
		buffer: make([]float64, cfg.WindowSize),
		recent: NewRecent(cfg),
		fftIn:  make([]complex128, cfg.WindowSize),
	}
}

// Recent exposes the rolling window this pipeline feeds.
func (p *Pipeline) Recent() *Recent { return p.recent }

// Drain pops every complete window_size-sample window currently available
// from ring (stepping by hop_size), producing one Frame per window, and
// returns the frames produced this call. It never blocks: an empty or
// insufficiently-full ring simply yields no frames (spec.md §4.9/§9).
func (p *Pipeline) Drain(ring *audioring.Ring) []*Frame {
	var produced []*Frame

	if p.filled < p.cfg.WindowSize {
		need := p.cfg.WindowSize - p.filled
		got := ring.Pop(p.buffer[p.filled : p.filled+need])
		p.filled += got
		if p.filled < p.cfg.WindowSize {
			return nil
		}
	}

	for {
		frame := p.transform(p.buffer)
		p.recent.Add(frame)
		produced = append(produced, frame)

		hop := p.cfg.HopSize
		if hop <= 0 || hop > p.cfg.WindowSize {
			hop = p.cfg.WindowSize
		}
		copy(p.buffer, p.buffer[hop:])

		got := ring.Pop(p.buffer[p.cfg.WindowSize-hop:])
		if got < hop {
			// not enough new samples yet for another full window; remember
			// how much of the tail is valid and wait for the next tick.
			p.filled = p.cfg.WindowSize - hop + got
			return produced
		}
	}
}

func (p *Pipeline) transform(samples []float64) *Frame {
	for i, s := range samples {
		p.fftIn[i] = complex(s*p.hann[i], 0)
	}

	out := fft.FFT(p.fftIn)

	mags := make([]float64, p.cfg.WindowSize/2+1)
	for i := range mags {
		re := real(out[i])
		im := imag(out[i])
		mags[i] = math.Sqrt(re*re + im*im)
	}

	return &Frame{Magnitudes: mags, Config: p.cfg}
}
