//go:build darwin

package hardware

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AudioToolbox -framework CoreAudio -framework CoreFoundation

#include <AudioToolbox/AudioToolbox.h>
#include <CoreAudio/CoreAudio.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdlib.h>

// Helper structure for a circular buffer of float samples.
typedef struct {
    float* buffer;
    int capacity;
    int size;
    int readPos;
    int writePos;
} AudioRingBuffer;

static AudioRingBuffer inputBuffer = {0};
static AudioUnit inputAudioUnit = NULL;

int initAudioBuffer(AudioRingBuffer* buf, int capacity) {
    buf->buffer = malloc(capacity * sizeof(float));
    if (!buf->buffer) return -1;
    buf->capacity = capacity;
    buf->size = 0;
    buf->readPos = 0;
    buf->writePos = 0;
    return 0;
}

void freeAudioBuffer(AudioRingBuffer* buf) {
    if (buf->buffer) {
        free(buf->buffer);
        buf->buffer = NULL;
    }
    buf->capacity = 0;
    buf->size = 0;
    buf->readPos = 0;
    buf->writePos = 0;
}

int writeAudioBuffer(AudioRingBuffer* buf, float* data, int samples) {
    int available = buf->capacity - buf->size;
    if (samples > available) {
        samples = available;
    }

    for (int i = 0; i < samples; i++) {
        buf->buffer[buf->writePos] = data[i];
        buf->writePos = (buf->writePos + 1) % buf->capacity;
        buf->size++;
    }

    return samples;
}

int readAudioBuffer(AudioRingBuffer* buf, float* data, int samples) {
    if (samples > buf->size) {
        samples = buf->size;
    }

    for (int i = 0; i < samples; i++) {
        data[i] = buf->buffer[buf->readPos];
        buf->readPos = (buf->readPos + 1) % buf->capacity;
        buf->size--;
    }

    return samples;
}

// Input callback for Core Audio. Renders directly into our float ring
// buffer with no int16 intermediate, since AudioInterface hands out float32
// sample chunks.
OSStatus inputCallback(void* inRefCon,
                      AudioUnitRenderActionFlags* ioActionFlags,
                      const AudioTimeStamp* inTimeStamp,
                      UInt32 inBusNumber,
                      UInt32 inNumberFrames,
                      AudioBufferList* ioData) {

    AudioBufferList bufferList;
    bufferList.mNumberBuffers = 1;
    bufferList.mBuffers[0].mNumberChannels = 1;
    bufferList.mBuffers[0].mDataByteSize = inNumberFrames * sizeof(float);
    bufferList.mBuffers[0].mData = malloc(bufferList.mBuffers[0].mDataByteSize);

    OSStatus status = AudioUnitRender(inputAudioUnit, ioActionFlags, inTimeStamp,
                                    inBusNumber, inNumberFrames, &bufferList);

    if (status == noErr) {
        float* samples = (float*)bufferList.mBuffers[0].mData;
        writeAudioBuffer(&inputBuffer, samples, inNumberFrames);
    }

    free(bufferList.mBuffers[0].mData);
    return status;
}

// Initialize Core Audio capture.
OSStatus initCoreAudioInput(UInt32 sampleRate, UInt32 bufferSize) {
    AudioComponentDescription desc;
    desc.componentType = kAudioUnitType_Output;
    desc.componentSubType = kAudioUnitSubType_HALOutput;
    desc.componentManufacturer = kAudioUnitManufacturer_Apple;
    desc.componentFlags = 0;
    desc.componentFlagsMask = 0;

    AudioComponent component = AudioComponentFindNext(NULL, &desc);
    if (!component) return -1;

    OSStatus status = AudioComponentInstanceNew(component, &inputAudioUnit);
    if (status != noErr) return status;

    UInt32 enableInput = 1;
    status = AudioUnitSetProperty(inputAudioUnit, kAudioOutputUnitProperty_EnableIO,
                                kAudioUnitScope_Input, 1, &enableInput, sizeof(enableInput));
    if (status != noErr) return status;

    UInt32 disableOutput = 0;
    status = AudioUnitSetProperty(inputAudioUnit, kAudioOutputUnitProperty_EnableIO,
                                kAudioUnitScope_Output, 0, &disableOutput, sizeof(disableOutput));
    if (status != noErr) return status;

    AudioStreamBasicDescription format;
    format.mSampleRate = sampleRate;
    format.mFormatID = kAudioFormatLinearPCM;
    format.mFormatFlags = kAudioFormatFlagIsFloat | kAudioFormatFlagIsPacked;
    format.mBytesPerPacket = sizeof(float);
    format.mFramesPerPacket = 1;
    format.mBytesPerFrame = sizeof(float);
    format.mChannelsPerFrame = 1;
    format.mBitsPerChannel = 32;

    status = AudioUnitSetProperty(inputAudioUnit, kAudioUnitProperty_StreamFormat,
                                kAudioUnitScope_Output, 1, &format, sizeof(format));
    if (status != noErr) return status;

    status = AudioUnitSetProperty(inputAudioUnit, kAudioDevicePropertyBufferFrameSize,
                                kAudioUnitScope_Global, 0, &bufferSize, sizeof(bufferSize));
    if (status != noErr) return status;

    AURenderCallbackStruct callbackStruct;
    callbackStruct.inputProc = inputCallback;
    callbackStruct.inputProcRefCon = NULL;

    status = AudioUnitSetProperty(inputAudioUnit, kAudioOutputUnitProperty_SetInputCallback,
                                kAudioUnitScope_Global, 0, &callbackStruct, sizeof(callbackStruct));
    if (status != noErr) return status;

    if (initAudioBuffer(&inputBuffer, sampleRate * 2) != 0) return -1; // 2 second buffer

    return AudioUnitInitialize(inputAudioUnit);
}

OSStatus startCoreAudioInput() {
    if (inputAudioUnit == NULL) return -1;
    return AudioOutputUnitStart(inputAudioUnit);
}

OSStatus stopCoreAudioInput() {
    if (inputAudioUnit == NULL) return -1;
    return AudioOutputUnitStop(inputAudioUnit);
}

void cleanupCoreAudio() {
    if (inputAudioUnit) {
        AudioOutputUnitStop(inputAudioUnit);
        AudioUnitUninitialize(inputAudioUnit);
        AudioComponentInstanceDispose(inputAudioUnit);
        inputAudioUnit = NULL;
    }

    freeAudioBuffer(&inputBuffer);
}

int readInputSamples(float* buffer, int maxSamples) {
    return readAudioBuffer(&inputBuffer, buffer, maxSamples);
}

// Audio device enumeration.
typedef struct {
    AudioDeviceID deviceID;
    char name[256];
    int isInput;
    int isOutput;
} AudioDeviceInfo;

int getAudioDevices(AudioDeviceInfo* devices, int maxDevices) {
    AudioObjectPropertyAddress propertyAddress = {
        kAudioHardwarePropertyDevices,
        kAudioObjectPropertyScopeGlobal,
        kAudioObjectPropertyElementMain
    };

    UInt32 dataSize = 0;
    OSStatus status = AudioObjectGetPropertyDataSize(kAudioObjectSystemObject, &propertyAddress, 0, NULL, &dataSize);
    if (status != noErr) return -1;

    int deviceCount = dataSize / sizeof(AudioDeviceID);
    if (deviceCount > maxDevices) deviceCount = maxDevices;

    AudioDeviceID* deviceIDs = malloc(dataSize);
    status = AudioObjectGetPropertyData(kAudioObjectSystemObject, &propertyAddress, 0, NULL, &dataSize, deviceIDs);
    if (status != noErr) {
        free(deviceIDs);
        return -1;
    }

    int validDevices = 0;
    for (int i = 0; i < deviceCount && validDevices < maxDevices; i++) {
        AudioDeviceID deviceID = deviceIDs[i];

        propertyAddress.mSelector = kAudioDevicePropertyDeviceNameCFString;
        propertyAddress.mScope = kAudioObjectPropertyScopeGlobal;
        CFStringRef deviceName = NULL;
        dataSize = sizeof(CFStringRef);

        status = AudioObjectGetPropertyData(deviceID, &propertyAddress, 0, NULL, &dataSize, &deviceName);
        if (status != noErr) continue;

        if (!CFStringGetCString(deviceName, devices[validDevices].name, sizeof(devices[validDevices].name), kCFStringEncodingUTF8)) {
            CFRelease(deviceName);
            continue;
        }
        CFRelease(deviceName);

        devices[validDevices].isInput = 0;
        devices[validDevices].isOutput = 0;

        propertyAddress.mSelector = kAudioDevicePropertyStreamConfiguration;
        propertyAddress.mScope = kAudioDevicePropertyScopeInput;
        dataSize = 0;
        status = AudioObjectGetPropertyDataSize(deviceID, &propertyAddress, 0, NULL, &dataSize);
        if (status == noErr && dataSize > 0) {
            AudioBufferList* bufferList = (AudioBufferList*)malloc(dataSize);
            status = AudioObjectGetPropertyData(deviceID, &propertyAddress, 0, NULL, &dataSize, bufferList);
            if (status == noErr && bufferList->mNumberBuffers > 0) {
                for (UInt32 i = 0; i < bufferList->mNumberBuffers; i++) {
                    if (bufferList->mBuffers[i].mNumberChannels > 0) {
                        devices[validDevices].isInput = 1;
                        break;
                    }
                }
            }
            free(bufferList);
        }

        devices[validDevices].deviceID = deviceID;
        validDevices++;
    }

    free(deviceIDs);
    return validDevices;
}
*/
import "C"

import (
	"fmt"
	"log"
	"sync"
	"time"
	"unsafe"
)

// CoreAudioConfig configures a macOS capture device.
type CoreAudioConfig struct {
	InputDevice string
	SampleRate  int
	BufferSize  int
	Channels    int
}

// CoreAudio captures float32 PCM via Core Audio on macOS.
type CoreAudio struct {
	config CoreAudioConfig

	recording bool
	mutex     sync.RWMutex

	inputSamples chan []float32
	stopChan     chan struct{}
}

// NewCoreAudio creates a new Core Audio capture interface.
func NewCoreAudio(config CoreAudioConfig) *CoreAudio {
	if config.SampleRate == 0 {
		config.SampleRate = 44100
	}
	if config.BufferSize == 0 {
		config.BufferSize = 1024
	}
	if config.Channels == 0 {
		config.Channels = 1
	}

	return &CoreAudio{
		config:       config,
		inputSamples: make(chan []float32, 10),
		stopChan:     make(chan struct{}),
	}
}

// Initialize initializes the Core Audio capture system.
func (a *CoreAudio) Initialize() error {
	log.Printf("CoreAudio: Initializing capture - %d Hz, %d buffer", a.config.SampleRate, a.config.BufferSize)

	status := C.initCoreAudioInput(C.UInt32(a.config.SampleRate), C.UInt32(a.config.BufferSize))
	if status != 0 {
		return fmt.Errorf("failed to initialize Core Audio input: %d", int(status))
	}

	log.Printf("CoreAudio: Capture initialized successfully")
	return nil
}

// StartInput starts audio capture.
func (a *CoreAudio) StartInput() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if a.recording {
		return fmt.Errorf("audio input already started")
	}

	status := C.startCoreAudioInput()
	if status != 0 {
		return fmt.Errorf("failed to start Core Audio input: %d", int(status))
	}

	a.recording = true
	go a.inputReaderWorker()

	log.Printf("CoreAudio: Capture started")
	return nil
}

// StopInput stops audio capture.
func (a *CoreAudio) StopInput() error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	if !a.recording {
		return nil
	}
	a.recording = false

	status := C.stopCoreAudioInput()
	if status != 0 {
		log.Printf("CoreAudio: Warning - failed to stop input: %d", int(status))
	}

	log.Printf("CoreAudio: Capture stopped")
	return nil
}

// GetInputSamples returns a channel of captured float32 sample chunks.
func (a *CoreAudio) GetInputSamples() <-chan []float32 {
	return a.inputSamples
}

// Close shuts down the Core Audio capture system.
func (a *CoreAudio) Close() error {
	close(a.stopChan)
	a.StopInput()
	C.cleanupCoreAudio()
	close(a.inputSamples)

	log.Printf("CoreAudio: Closed")
	return nil
}

func (a *CoreAudio) inputReaderWorker() {
	buffer := make([]float32, a.config.BufferSize)

	for a.isRecording() {
		samplesRead := int(C.readInputSamples((*C.float)(unsafe.Pointer(&buffer[0])), C.int(len(buffer))))

		if samplesRead > 0 {
			samples := make([]float32, samplesRead)
			copy(samples, buffer[:samplesRead])

			select {
			case a.inputSamples <- samples:
			default:
				// Drop samples if buffer full.
			}
		}

		time.Sleep(10 * time.Millisecond)

		select {
		case <-a.stopChan:
			return
		default:
		}
	}
}

func (a *CoreAudio) isRecording() bool {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.recording
}

// GetSampleRate returns the current sample rate.
func (a *CoreAudio) GetSampleRate() int {
	return a.config.SampleRate
}

// GetBufferSize returns the current buffer size.
func (a *CoreAudio) GetBufferSize() int {
	return a.config.BufferSize
}

// IsRecording returns whether audio capture is active.
func (a *CoreAudio) IsRecording() bool {
	return a.isRecording()
}

// AudioDevice describes one enumerated audio device.
type AudioDevice struct {
	ID       uint32 `json:"id"`
	Name     string `json:"name"`
	IsInput  bool   `json:"is_input"`
	IsOutput bool   `json:"is_output"`
}

// GetAudioDevices returns a list of available audio devices.
func GetAudioDevices() ([]AudioDevice, error) {
	const maxDevices = 64
	devices := make([]C.AudioDeviceInfo, maxDevices)

	count := int(C.getAudioDevices(&devices[0], C.int(maxDevices)))
	if count < 0 {
		return nil, fmt.Errorf("failed to enumerate audio devices (returned %d)", count)
	}

	result := make([]AudioDevice, count)
	for i := 0; i < count; i++ {
		result[i] = AudioDevice{
			ID:       uint32(devices[i].deviceID),
			Name:     C.GoString(&devices[i].name[0]),
			IsInput:  devices[i].isInput != 0,
			IsOutput: devices[i].isOutput != 0,
		}
	}

	return result, nil
}
