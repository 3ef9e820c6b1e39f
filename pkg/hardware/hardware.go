// Package hardware provides the platform audio capture layer feeding
// pkg/audioring (SPEC_FULL.md §4.16). It has no notion of fixtures, shows,
// or DMX output; its only job is handing float32 PCM frames to whatever
// reads the capture channel.
package hardware

import (
	"fmt"
	"log"
	"sync"
)

// CaptureConfig configures the audio capture manager.
type CaptureConfig struct {
	EnableAudio bool
	AudioInput  string
	SampleRate  int
	BufferSize  int
}

// CaptureManager owns the platform audio capture interface.
type CaptureManager struct {
	config CaptureConfig
	mutex  sync.RWMutex

	audio AudioInterface

	initialized bool
}

// AudioInterface defines platform audio capture operations. Every
// platform implementation (ALSA, Core Audio, the fallback mock) produces
// float32 samples; there is no playback path.
type AudioInterface interface {
	Initialize() error
	Close() error
	StartInput() error
	StopInput() error
	GetInputSamples() <-chan []float32
	GetSampleRate() int
	GetBufferSize() int
	IsRecording() bool
}

// NewCaptureManager creates a new capture manager.
func NewCaptureManager(config CaptureConfig) *CaptureManager {
	return &CaptureManager{
		config: config,
	}
}

// Initialize initializes the platform audio capture interface.
func (h *CaptureManager) Initialize() error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.initialized {
		return nil
	}

	log.Printf("Hardware: Initializing capture manager...")

	if h.config.EnableAudio {
		log.Printf("Hardware: Initializing audio capture...")

		audioConfig := PlatformAudioConfig{
			InputDevice: h.config.AudioInput,
			SampleRate:  h.config.SampleRate,
			BufferSize:  h.config.BufferSize,
			Channels:    1,
		}
		h.audio = NewPlatformAudio(audioConfig)
		if err := h.audio.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize audio capture: %w", err)
		}
		log.Printf("Hardware: Audio capture initialized (%s, %d Hz)",
			h.config.AudioInput, h.config.SampleRate)
	}

	h.initialized = true
	log.Printf("Hardware: Capture manager initialized successfully")
	return nil
}

// Close shuts down the audio capture interface.
func (h *CaptureManager) Close() error {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if !h.initialized {
		return nil
	}

	log.Printf("Hardware: Shutting down capture manager...")

	if h.audio != nil {
		if err := h.audio.Close(); err != nil {
			log.Printf("Hardware: Error closing audio capture: %v", err)
		}
	}

	h.initialized = false
	log.Printf("Hardware: Capture manager shut down")
	return nil
}

// IsInitialized returns whether capture is initialized.
func (h *CaptureManager) IsInitialized() bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.initialized
}

// GetConfig returns the capture configuration.
func (h *CaptureManager) GetConfig() CaptureConfig {
	return h.config
}

// StartAudioInput starts audio capture.
func (h *CaptureManager) StartAudioInput() error {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if !h.initialized || !h.config.EnableAudio || h.audio == nil {
		return fmt.Errorf("audio not initialized")
	}

	return h.audio.StartInput()
}

// StopAudioInput stops audio capture.
func (h *CaptureManager) StopAudioInput() error {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if !h.initialized || !h.config.EnableAudio || h.audio == nil {
		return fmt.Errorf("audio not initialized")
	}

	return h.audio.StopInput()
}

// GetAudioInputSamples returns the audio capture samples channel.
func (h *CaptureManager) GetAudioInputSamples() <-chan []float32 {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if !h.initialized || !h.config.EnableAudio || h.audio == nil {
		return nil
	}

	return h.audio.GetInputSamples()
}

// GetAudio returns the audio interface for direct access.
func (h *CaptureManager) GetAudio() AudioInterface {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.audio
}

// PlatformAudioConfig is the cross-platform audio capture configuration
// passed to NewPlatformAudio. Defined once here; platform files must not
// redeclare it.
type PlatformAudioConfig struct {
	InputDevice string
	SampleRate  int
	BufferSize  int
	Channels    int
}
