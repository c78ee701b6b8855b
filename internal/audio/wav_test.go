package audio

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

// sineWave generates a mono test tone.
func sineWave(freq float64, seconds float64, rate int) []int16 {
	n := int(seconds * float64(rate))
	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(rate)
		samples[i] = int16(16383.0 * math.Sin(2*math.Pi*freq*t))
	}
	return samples
}

func TestEncodeWAV(t *testing.T) {
	samples := sineWave(440, 0.1, 8000)
	d := &DecodedAudio{Samples: samples, SampleRate: 8000}

	data, err := d.EncodeWAV()
	if err != nil {
		t.Fatalf("EncodeWAV failed: %v", err)
	}

	expectedSize := 44 + len(samples)*2
	if len(data) != expectedSize {
		t.Errorf("expected WAV size %d, got %d", expectedSize, len(data))
	}

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE header")
	}
	if rate := binary.LittleEndian.Uint32(data[24:28]); rate != 8000 {
		t.Errorf("expected sample rate 8000 in header, got %d", rate)
	}
	if channels := binary.LittleEndian.Uint16(data[22:24]); channels != 1 {
		t.Errorf("expected 1 channel, got %d", channels)
	}
	if bits := binary.LittleEndian.Uint16(data[34:36]); bits != 16 {
		t.Errorf("expected 16 bits per sample, got %d", bits)
	}
	if dataSize := binary.LittleEndian.Uint32(data[40:44]); int(dataSize) != len(samples)*2 {
		t.Errorf("expected data size %d, got %d", len(samples)*2, dataSize)
	}
}

func TestEncodeWAVRoundTrip(t *testing.T) {
	original := &DecodedAudio{
		Samples:    []int16{100, -200, 300, -400, 500},
		SampleRate: 8000,
	}

	data, err := original.EncodeWAV()
	if err != nil {
		t.Fatalf("EncodeWAV failed: %v", err)
	}

	decoded, err := decodeWAV(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decodeWAV failed: %v", err)
	}

	if decoded.SampleRate != original.SampleRate {
		t.Errorf("expected sample rate %d, got %d", original.SampleRate, decoded.SampleRate)
	}
	if len(decoded.Samples) != len(original.Samples) {
		t.Fatalf("expected %d samples, got %d", len(original.Samples), len(decoded.Samples))
	}
	for i, want := range original.Samples {
		if decoded.Samples[i] != want {
			t.Errorf("sample %d: expected %d, got %d", i, want, decoded.Samples[i])
		}
	}
}

func TestEncodeWAVEmpty(t *testing.T) {
	d := &DecodedAudio{SampleRate: 8000}
	if _, err := d.EncodeWAV(); err == nil {
		t.Error("expected error for empty samples")
	}
}

func TestEncodeWAVInvalidSampleRate(t *testing.T) {
	d := &DecodedAudio{Samples: []int16{1, 2, 3}}
	if _, err := d.EncodeWAV(); err == nil {
		t.Error("expected error for zero sample rate")
	}
}

func TestDuration(t *testing.T) {
	d := &DecodedAudio{Samples: make([]int16, 8000*10), SampleRate: 8000}
	if got := d.Duration(); math.Abs(got-10.0) > 0.001 {
		t.Errorf("expected duration 10.0s, got %.3f", got)
	}

	empty := &DecodedAudio{}
	if got := empty.Duration(); got != 0 {
		t.Errorf("expected zero duration, got %.3f", got)
	}
}
