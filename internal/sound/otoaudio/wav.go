package otoaudio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

var errNotWAV = errors.New("not a RIFF/WAVE file")

type wavFormat struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// decodeWAV reads 16-bit PCM WAV and returns stereo float32 frames at
// SampleRate. Other rates are resampled by nearest neighbour.
func decodeWAV(r io.Reader) ([]byte, error) {
	var header [12]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, errNotWAV
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return nil, errNotWAV
	}

	var (
		format  wavFormat
		haveFmt bool
	)
	for {
		var chunk [8]byte
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			return nil, fmt.Errorf("missing data chunk: %w", err)
		}
		id := string(chunk[0:4])
		size := int64(binary.LittleEndian.Uint32(chunk[4:8]))

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("fmt chunk too short (%d bytes)", size)
			}
			if err := binary.Read(r, binary.LittleEndian, &format); err != nil {
				return nil, fmt.Errorf("read fmt chunk: %w", err)
			}
			if _, err := io.CopyN(io.Discard, r, size-16+size%2); err != nil {
				return nil, err
			}
			haveFmt = true
		case "data":
			if !haveFmt {
				return nil, errors.New("data chunk before fmt chunk")
			}
			if format.AudioFormat != 1 || format.BitsPerSample != 16 {
				return nil, fmt.Errorf("unsupported encoding (format %d, %d bits)", format.AudioFormat, format.BitsPerSample)
			}
			if format.Channels == 0 || format.Channels > 2 || format.SampleRate == 0 {
				return nil, fmt.Errorf("unsupported layout (%d channels, %d Hz)", format.Channels, format.SampleRate)
			}
			pcm := make([]byte, size)
			n, err := io.ReadFull(r, pcm)
			if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, fmt.Errorf("read data chunk: %w", err)
			}
			return convertPCM16(pcm[:n], int(format.Channels), int(format.SampleRate)), nil
		default:
			if _, err := io.CopyN(io.Discard, r, size+size%2); err != nil {
				return nil, fmt.Errorf("skip %q chunk: %w", id, err)
			}
		}
	}
}

func convertPCM16(pcm []byte, channels, rate int) []byte {
	inFrames := len(pcm) / (2 * channels)
	outFrames := int(int64(inFrames) * SampleRate / int64(rate))
	out := makeBuf(outFrames)

	sample := func(frame, ch int) float64 {
		off := (frame*channels + ch) * 2
		return float64(int16(binary.LittleEndian.Uint16(pcm[off:]))) / 32768
	}
	for i := 0; i < outFrames; i++ {
		src := min(int(int64(i)*int64(rate)/SampleRate), inFrames-1)
		left := sample(src, 0)
		right := left
		if channels == 2 {
			right = sample(src, 1)
		}
		binary.LittleEndian.PutUint32(out[i*frameBytes:], math.Float32bits(float32(left)))
		binary.LittleEndian.PutUint32(out[i*frameBytes+4:], math.Float32bits(float32(right)))
	}
	return out
}
