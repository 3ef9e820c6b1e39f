package hardware

import (
	"testing"
)

func TestMockAudio(t *testing.T) {
	config := MockAudioConfig{
		InputDevice: "test_input",
		SampleRate:  48000,
		BufferSize:  1024,
		Channels:    1,
	}

	audio := NewMockAudio(config)

	t.Run("Initialize", func(t *testing.T) {
		err := audio.Initialize()
		if err != nil {
			t.Errorf("Expected no error, got: %v", err)
		}
	})

	t.Run("Configuration", func(t *testing.T) {
		if audio.GetSampleRate() != config.SampleRate {
			t.Errorf("Expected sample rate %d, got %d", config.SampleRate, audio.GetSampleRate())
		}
		if audio.GetBufferSize() != config.BufferSize {
			t.Errorf("Expected buffer size %d, got %d", config.BufferSize, audio.GetBufferSize())
		}
	})

	t.Run("Default Configuration", func(t *testing.T) {
		defaultConfig := MockAudioConfig{
			InputDevice: "default_input",
		}
		defaultAudio := NewMockAudio(defaultConfig)

		if defaultAudio.GetSampleRate() != 48000 {
			t.Errorf("Expected default sample rate 48000, got %d", defaultAudio.GetSampleRate())
		}
		if defaultAudio.GetBufferSize() != 1024 {
			t.Errorf("Expected default buffer size 1024, got %d", defaultAudio.GetBufferSize())
		}
	})

	t.Run("Initial State", func(t *testing.T) {
		if audio.IsRecording() {
			t.Error("Expected audio to not be recording initially")
		}
	})

	t.Run("Input Control", func(t *testing.T) {
		err := audio.StartInput()
		if err != nil {
			t.Errorf("Failed to start input: %v", err)
		}
		if !audio.IsRecording() {
			t.Error("Expected audio to be recording after start")
		}

		err = audio.StartInput()
		if err == nil {
			t.Error("Expected error when starting input twice")
		}

		err = audio.StopInput()
		if err != nil {
			t.Errorf("Failed to stop input: %v", err)
		}
		if audio.IsRecording() {
			t.Error("Expected audio to not be recording after stop")
		}
	})

	t.Run("Push Samples", func(t *testing.T) {
		if err := audio.StartInput(); err != nil {
			t.Fatalf("Failed to start input: %v", err)
		}
		defer audio.StopInput()

		samples := make([]float32, 256)
		for i := range samples {
			samples[i] = float32(i) / 256.0
		}
		audio.PushSamples(samples)

		select {
		case got := <-audio.GetInputSamples():
			if len(got) != len(samples) {
				t.Errorf("Expected %d samples, got %d", len(samples), len(got))
			}
		default:
			t.Error("Expected pushed samples on input channel")
		}
	})

	t.Run("Push While Stopped Is Discarded", func(t *testing.T) {
		audio.StopInput()
		audio.PushSamples(make([]float32, 64))

		select {
		case <-audio.GetInputSamples():
			t.Error("Expected no samples pushed while input is stopped")
		default:
		}
	})

	t.Run("Close", func(t *testing.T) {
		freshAudio := NewMockAudio(MockAudioConfig{SampleRate: 48000, BufferSize: 1024, Channels: 1})
		if err := freshAudio.StartInput(); err != nil {
			t.Fatalf("Failed to start input: %v", err)
		}

		err := freshAudio.Close()
		if err != nil {
			t.Errorf("Expected no error on close, got: %v", err)
		}
		if freshAudio.IsRecording() {
			t.Error("Expected recording to stop after close")
		}
	})
}

func TestMockAudioConcurrency(t *testing.T) {
	config := MockAudioConfig{
		SampleRate: 48000,
		BufferSize: 1024,
		Channels:   1,
	}

	audio := NewMockAudio(config)
	err := audio.Initialize()
	if err != nil {
		t.Fatalf("Failed to initialize audio: %v", err)
	}
	defer audio.Close()

	t.Run("Concurrent State Access", func(t *testing.T) {
		done := make(chan bool, 10)

		for i := 0; i < 10; i++ {
			go func() {
				defer func() { done <- true }()
				audio.StartInput()
				audio.IsRecording()
				audio.PushSamples(make([]float32, 32))
				audio.StopInput()
			}()
		}

		for i := 0; i < 10; i++ {
			<-done
		}
	})
}

func TestMockInterfaces(t *testing.T) {
	t.Run("Audio Interface Compliance", func(t *testing.T) {
		var _ AudioInterface = (*MockAudio)(nil)
	})
}
