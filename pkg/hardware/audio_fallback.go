//go:build !darwin && !linux

package hardware

// NewPlatformAudio creates a mock capture implementation for unsupported platforms.
func NewPlatformAudio(config PlatformAudioConfig) AudioInterface {
	mockConfig := MockAudioConfig{
		InputDevice: config.InputDevice,
		SampleRate:  config.SampleRate,
		BufferSize:  config.BufferSize,
		Channels:    config.Channels,
	}
	return NewMockAudio(mockConfig)
}
