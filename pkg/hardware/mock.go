package hardware

import (
	"fmt"
	"log"
	"sync"
)

// MockAudio implements AudioInterface without a real capture device. It is
// used on platforms with no native backend and in tests, and additionally
// exposes PushSamples so tests can feed it synthetic capture data.
type MockAudio struct {
	config       MockAudioConfig
	recording    bool
	mutex        sync.RWMutex
	inputSamples chan []float32
	stopChan     chan struct{}
}

// MockAudioConfig represents mock audio configuration
type MockAudioConfig struct {
	InputDevice string
	SampleRate  int
	BufferSize  int
	Channels    int
}

// NewMockAudio creates a new mock audio interface
func NewMockAudio(config MockAudioConfig) *MockAudio {
	if config.SampleRate == 0 {
		config.SampleRate = 48000
	}
	if config.BufferSize == 0 {
		config.BufferSize = 1024
	}
	if config.Channels == 0 {
		config.Channels = 1
	}

	return &MockAudio{
		config:       config,
		inputSamples: make(chan []float32, 10),
		stopChan:     make(chan struct{}),
	}
}

// Initialize initializes the mock audio system
func (a *MockAudio) Initialize() error {
	log.Printf("MockAudio: Initialized - %d Hz, %d channels, %d buffer",
		a.config.SampleRate, a.config.Channels, a.config.BufferSize)
	return nil
}

// Close shuts down the mock audio system
func (a *MockAudio) Close() error {
	close(a.stopChan)
	a.StopInput()
	close(a.inputSamples)
	log.Printf("MockAudio: Closed")
	return nil
}

// StartInput starts mock audio input
func (a *MockAudio) StartInput() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.recording {
		return fmt.Errorf("audio input already started")
	}

	a.recording = true
	log.Printf("MockAudio: Input started")
	return nil
}

// StopInput stops mock audio input
func (a *MockAudio) StopInput() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.recording = false
	log.Printf("MockAudio: Input stopped")
	return nil
}

// PushSamples feeds a synthetic capture chunk onto the input channel. Used
// by tests to simulate real capture hardware.
func (a *MockAudio) PushSamples(samples []float32) {
	if !a.IsRecording() {
		return
	}

	select {
	case a.inputSamples <- samples:
	default:
		log.Printf("MockAudio: Dropped %d samples, input channel full", len(samples))
	}
}

// GetInputSamples returns mock input samples channel
func (a *MockAudio) GetInputSamples() <-chan []float32 {
	return a.inputSamples
}

// GetSampleRate returns mock sample rate
func (a *MockAudio) GetSampleRate() int {
	return a.config.SampleRate
}

// GetBufferSize returns mock buffer size
func (a *MockAudio) GetBufferSize() int {
	return a.config.BufferSize
}

// IsRecording returns mock recording state
func (a *MockAudio) IsRecording() bool {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.recording
}
