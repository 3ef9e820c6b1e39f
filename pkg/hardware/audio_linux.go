//go:build linux

package hardware

// NewPlatformAudio creates the ALSA-backed capture implementation for Linux.
func NewPlatformAudio(config PlatformAudioConfig) AudioInterface {
	alsaConfig := ALSAAudioConfig{
		InputDevice: config.InputDevice,
		SampleRate:  config.SampleRate,
		BufferSize:  config.BufferSize,
		Channels:    config.Channels,
	}
	return NewALSAAudio(alsaConfig)
}
