package hardware

import (
	"testing"
)

func TestNewCaptureManager(t *testing.T) {
	config := CaptureConfig{
		EnableAudio: true,
		AudioInput:  "default",
		SampleRate:  48000,
		BufferSize:  1024,
	}

	manager := NewCaptureManager(config)

	if manager == nil {
		t.Fatal("Expected non-nil capture manager")
	}

	if manager.config.EnableAudio != config.EnableAudio {
		t.Errorf("Expected EnableAudio %t, got %t", config.EnableAudio, manager.config.EnableAudio)
	}

	if manager.initialized {
		t.Error("Expected manager to not be initialized initially")
	}
}

func TestCaptureManagerDisabledAudio(t *testing.T) {
	config := CaptureConfig{EnableAudio: false}

	manager := NewCaptureManager(config)

	t.Run("Successful Initialization", func(t *testing.T) {
		err := manager.Initialize()
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if !manager.IsInitialized() {
			t.Error("Expected manager to be initialized")
		}
		defer manager.Close()
	})

	t.Run("Double Initialization", func(t *testing.T) {
		err := manager.Initialize()
		if err != nil {
			t.Errorf("Expected no error on double initialization, got: %v", err)
		}
	})

	t.Run("Audio Operations with Disabled Audio", func(t *testing.T) {
		err := manager.StartAudioInput()
		if err == nil {
			t.Error("Expected error when starting audio input with disabled audio")
		}

		samplesChan := manager.GetAudioInputSamples()
		if samplesChan != nil {
			t.Error("Expected nil samples channel with disabled audio")
		}
	})
}

func TestCaptureManagerAudio(t *testing.T) {
	config := CaptureConfig{
		EnableAudio: true,
		AudioInput:  "default",
		SampleRate:  48000,
		BufferSize:  1024,
	}

	manager := NewCaptureManager(config)

	mockAudioConfig := MockAudioConfig{
		InputDevice: config.AudioInput,
		SampleRate:  config.SampleRate,
		BufferSize:  config.BufferSize,
		Channels:    1,
	}
	manager.audio = NewMockAudio(mockAudioConfig)
	manager.audio.Initialize()
	manager.initialized = true

	defer manager.Close()

	t.Run("Start Audio Input", func(t *testing.T) {
		err := manager.StartAudioInput()
		if err != nil {
			t.Errorf("Failed to start audio input: %v", err)
		}

		if !manager.audio.IsRecording() {
			t.Error("Expected audio input to be recording")
		}
	})

	t.Run("Stop Audio Input", func(t *testing.T) {
		err := manager.StopAudioInput()
		if err != nil {
			t.Errorf("Failed to stop audio input: %v", err)
		}

		if manager.audio.IsRecording() {
			t.Error("Expected audio input to be stopped")
		}
	})

	t.Run("Get Audio Input Samples", func(t *testing.T) {
		samplesChan := manager.GetAudioInputSamples()
		if samplesChan == nil {
			t.Error("Expected non-nil samples channel")
		}
	})

	t.Run("Get Audio Interface", func(t *testing.T) {
		audio := manager.GetAudio()
		if audio == nil {
			t.Error("Expected non-nil audio interface")
		}

		if audio.GetSampleRate() != config.SampleRate {
			t.Errorf("Expected sample rate %d, got %d", config.SampleRate, audio.GetSampleRate())
		}

		if audio.GetBufferSize() != config.BufferSize {
			t.Errorf("Expected buffer size %d, got %d", config.BufferSize, audio.GetBufferSize())
		}
	})
}

func TestCaptureManagerClose(t *testing.T) {
	config := CaptureConfig{EnableAudio: false}

	manager := NewCaptureManager(config)
	err := manager.Initialize()
	if err != nil {
		t.Fatalf("Failed to initialize manager: %v", err)
	}

	t.Run("Successful Close", func(t *testing.T) {
		err := manager.Close()
		if err != nil {
			t.Errorf("Expected no error on close, got: %v", err)
		}

		if manager.IsInitialized() {
			t.Error("Expected manager to not be initialized after close")
		}
	})

	t.Run("Double Close", func(t *testing.T) {
		err := manager.Close()
		if err != nil {
			t.Errorf("Expected no error on double close, got: %v", err)
		}
	})
}

func TestCaptureManagerConcurrency(t *testing.T) {
	config := CaptureConfig{EnableAudio: false}

	manager := NewCaptureManager(config)
	err := manager.Initialize()
	if err != nil {
		t.Fatalf("Failed to initialize manager: %v", err)
	}
	defer manager.Close()

	t.Run("Concurrent Status Reads", func(t *testing.T) {
		done := make(chan bool, 10)

		for i := 0; i < 10; i++ {
			go func() {
				defer func() { done <- true }()
				manager.IsInitialized()
				manager.GetConfig()
			}()
		}

		for i := 0; i < 10; i++ {
			<-done
		}
	})
}
