package effect

import (
	"math"

	"github.com/dougsko/lumenshow/pkg/blend"
	"github.com/dougsko/lumenshow/pkg/colorspace"
	"github.com/dougsko/lumenshow/pkg/keyframe"
	"github.com/dougsko/lumenshow/pkg/spatial"
	"github.com/dougsko/lumenshow/pkg/spectrum"
)

// cascadeSample is one (frequency, strength) entry in a FrequencyCascade's
// ring buffer.
type cascadeSample struct {
	Freq     float64
	Strength float64
}

// FrequencyCascade is the audio-reactive ColorEffect of spec.md §4.7: a
// ring of recent (frequency, strength) readings, projected along a
// direction and read back out as a triangle-wave-indexed color ramp.
type FrequencyCascade struct {
	PastValues      []cascadeSample
	ColorBands      []colorspace.Stop
	ScaledDirection spatial.Vec3
	WindowSize      float64
}

// NewFrequencyCascade constructs a cascade with a zeroed ring of the given
// length.
func NewFrequencyCascade(bufferSize int, bands []colorspace.Stop, direction spatial.Vec3, windowSize float64) *FrequencyCascade {
	return &FrequencyCascade{
		PastValues:      make([]cascadeSample, bufferSize),
		ColorBands:      bands,
		ScaledDirection: direction,
		WindowSize:      windowSize,
	}
}

func (c *FrequencyCascade) Update(keyframes *keyframe.Keyframes, t float64, audio AudioContext) error {
	var err error
	if c.ScaledDirection, err = keyframes.Vec3("scaled_direction", t, c.ScaledDirection); err != nil {
		return err
	}
	if c.WindowSize, err = keyframes.Scalar("window_size", t, c.WindowSize); err != nil {
		return err
	}

	if len(audio.NewFrames) == 0 {
		return nil
	}

	var lowsSum, midsSum, highsSum float64
	for _, f := range audio.NewFrames {
		lows := f.AverageBand(spectrum.Bass)
		mids := (f.AverageBand(spectrum.LowMid) + f.AverageBand(spectrum.Mid)) / 2
		highs := (f.AverageBand(spectrum.HighMid) + f.AverageBand(spectrum.Treble)) / 2
		lowsSum += lows
		midsSum += mids
		highsSum += highs
	}
	n := float64(len(audio.NewFrames))
	lows, mids, highs := lowsSum/n, midsSum/n, highsSum/n

	overallMean := (lows + mids + highs) / 3
	intensity := clamp01Scalar(overallMean / 15)

	wLows, wMids, wHighs := lows*0.4, mids*1.0, highs*3.0
	total := wLows + wMids + wHighs

	avgFreq := 0.5
	if total != 0 {
		avgFreq = (0.5*wMids + 1.0*wHighs) / total
	}

	if len(c.PastValues) > 0 {
		copy(c.PastValues, c.PastValues[1:])
		c.PastValues[len(c.PastValues)-1] = cascadeSample{Freq: avgFreq, Strength: intensity}
	}

	return nil
}

func (c *FrequencyCascade) Sample(pos spatial.Vec3) Output {
	dirLen := spatial.Distance(c.ScaledDirection, spatial.Zero)
	u := 0.0
	if dirLen != 0 {
		u = spatial.Dot(pos, c.ScaledDirection) / dirLen
	}
	tri := triangleWave(u)

	freqSeries := make([]float64, len(c.PastValues))
	strengthSeries := make([]float64, len(c.PastValues))
	for i, s := range c.PastValues {
		freqSeries[i] = s.Freq
		strengthSeries[i] = s.Strength
	}

	freqSample := blend.SampleWindowed(freqSeries, tri, c.WindowSize)
	strengthSample := blend.SampleWindowed(strengthSeries, tri, c.WindowSize)

	color := colorspace.InterpolateBands(c.ColorBands, freqSample)
	color.A *= strengthSample

	return Output{Kind: OutputColor, Color: color}
}

func (c *FrequencyCascade) Clone() Variant {
	clone := *c
	clone.PastValues = append([]cascadeSample(nil), c.PastValues...)
	clone.ColorBands = append([]colorspace.Stop(nil), c.ColorBands...)
	return &clone
}

func triangleWave(u float64) float64 {
	return 1 - math.Abs(math.Mod(math.Abs(u), 2)-1)
}

func clamp01Scalar(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
