//go:build darwin

package hardware

// NewPlatformAudio creates the Core Audio-backed capture implementation for macOS.
func NewPlatformAudio(config PlatformAudioConfig) AudioInterface {
	coreAudioConfig := CoreAudioConfig{
		InputDevice: config.InputDevice,
		SampleRate:  config.SampleRate,
		BufferSize:  config.BufferSize,
		Channels:    config.Channels,
	}
	return NewCoreAudio(coreAudioConfig)
}
