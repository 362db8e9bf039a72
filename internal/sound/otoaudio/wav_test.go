package otoaudio

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func buildWAV(t *testing.T, channels, rate int, samples []int16) []byte {
	t.Helper()
	var data bytes.Buffer
	for _, s := range samples {
		binary.Write(&data, binary.LittleEndian, s)
	}

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+data.Len()))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, wavFormat{
		AudioFormat:   1,
		Channels:      uint16(channels),
		SampleRate:    uint32(rate),
		ByteRate:      uint32(rate * channels * 2),
		BlockAlign:    uint16(channels * 2),
		BitsPerSample: 16,
	})
	buf.WriteString("LIST")
	binary.Write(&buf, binary.LittleEndian, uint32(3))
	buf.Write([]byte{0, 0, 0, 0}) // odd-sized chunk plus pad byte
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(data.Len()))
	buf.Write(data.Bytes())
	return buf.Bytes()
}

func frame(out []byte, i int) (float32, float32) {
	l := math.Float32frombits(binary.LittleEndian.Uint32(out[i*frameBytes:]))
	r := math.Float32frombits(binary.LittleEndian.Uint32(out[i*frameBytes+4:]))
	return l, r
}

func TestDecodeWAVStereo(t *testing.T) {
	wav := buildWAV(t, 2, SampleRate, []int16{16384, -16384, 0, 32767})

	out, err := decodeWAV(bytes.NewReader(wav))
	if err != nil {
		t.Fatalf("decodeWAV: %v", err)
	}
	if len(out) != 2*frameBytes {
		t.Fatalf("len = %d, want %d", len(out), 2*frameBytes)
	}
	l, r := frame(out, 0)
	if l != 0.5 || r != -0.5 {
		t.Errorf("frame 0 = (%v, %v), want (0.5, -0.5)", l, r)
	}
}

func TestDecodeWAVMonoResample(t *testing.T) {
	wav := buildWAV(t, 1, SampleRate/2, []int16{8192, 8192, 8192, 8192})

	out, err := decodeWAV(bytes.NewReader(wav))
	if err != nil {
		t.Fatalf("decodeWAV: %v", err)
	}
	if got := len(out) / frameBytes; got != 8 {
		t.Fatalf("frames = %d, want 8", got)
	}
	l, r := frame(out, 7)
	if l != 0.25 || r != 0.25 {
		t.Errorf("frame 7 = (%v, %v), want mono copied to both channels", l, r)
	}
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not riff", []byte("OggS0000WAVE")},
		{"no data chunk", []byte("RIFF\x04\x00\x00\x00WAVE")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodeWAV(bytes.NewReader(tt.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestEffectsRenderBoundedSamples(t *testing.T) {
	for name, gen := range effects {
		data := gen()
		if len(data) == 0 || len(data)%frameBytes != 0 {
			t.Errorf("%s: bad buffer length %d", name, len(data))
			continue
		}
		for i := 0; i < len(data)/frameBytes; i++ {
			l, _ := frame(data, i)
			if math.IsNaN(float64(l)) || l > 1 || l < -1 {
				t.Errorf("%s: sample %d out of range: %v", name, i, l)
				break
			}
		}
	}
}
