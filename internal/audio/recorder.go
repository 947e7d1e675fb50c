// Package audio owns the microphone and the speaker: endpointed capture
// for the voice loop and blocking playback of synthesized speech.
package audio

import (
	"errors"
	"math"
	"time"

	"github.com/gordonklaus/portaudio"
)

// Capture is fixed at 16 kHz mono, what whisper expects.
const SampleRate = 16000

type Recorder struct {
	// RMS level above which a frame counts as speech.
	SilenceThreshold float64
	// How much trailing silence ends an utterance.
	SilenceDuration time.Duration
	// Hard cap on one utterance.
	MaxUtterance time.Duration
}

func NewRecorder() *Recorder {
	return &Recorder{
		SilenceThreshold: 0.015,
		SilenceDuration:  600 * time.Millisecond,
		MaxUtterance:     10 * time.Second,
	}
}

func (r *Recorder) Init() error {
	return portaudio.Initialize()
}

func (r *Recorder) Close() {
	portaudio.Terminate()
}

// RecordAuto captures one utterance: it waits for speech, then returns
// once the speaker has been silent for SilenceDuration or the utterance
// hits MaxUtterance.
func (r *Recorder) RecordAuto() ([]float32, error) {
	const frameSize = 320 // 20ms at 16 kHz
	frameMs := 1000 * frameSize / SampleRate

	buf := make([]float32, frameSize)
	out := make([]float32, 0, SampleRate*3)

	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, len(buf), buf)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, err
	}
	defer stream.Stop()

	var (
		speaking      bool
		silenceFrames int
	)

	maxFrames := int(r.MaxUtterance.Seconds()) * SampleRate / frameSize

	for i := 0; i < maxFrames; i++ {
		if err := stream.Read(); err != nil {
			return nil, err
		}

		if frameRMS(buf) > r.SilenceThreshold {
			speaking = true
			silenceFrames = 0
			out = append(out, buf...)
			continue
		}

		if speaking {
			silenceFrames++
			if time.Duration(silenceFrames*frameMs)*time.Millisecond >= r.SilenceDuration {
				break
			}
			out = append(out, buf...)
		}
	}

	return out, nil
}

// RecordUntil captures from the mic until stop fires or maxDur elapses.
// Used by the push-to-talk mode, where a second trigger ends the take.
func (r *Recorder) RecordUntil(stop <-chan struct{}, maxDur time.Duration) ([]float32, error) {
	if maxDur <= 0 {
		maxDur = 15 * time.Second
	}

	const frameSize = 1024
	buf := make([]float32, frameSize)

	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, len(buf), buf)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, err
	}
	defer stream.Stop()

	deadline := time.Now().Add(maxDur)
	out := make([]float32, 0, int(float64(SampleRate)*maxDur.Seconds()))

	for time.Now().Before(deadline) {
		select {
		case <-stop:
			if len(out) == 0 {
				return nil, errors.New("no audio recorded")
			}
			return out, nil
		default:
		}

		if err := stream.Read(); err != nil {
			return nil, err
		}
		out = append(out, buf...)
	}

	if len(out) == 0 {
		return nil, errors.New("no audio recorded")
	}
	return out, nil
}

func frameRMS(f []float32) float64 {
	var s float64
	for _, x := range f {
		s += float64(x * x)
	}
	return math.Sqrt(s / float64(len(f)))
}
