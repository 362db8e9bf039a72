package otoaudio

import (
	"bytes"
	"sync/atomic"

	"github.com/hajimehoshi/oto/v2"
)

// countingReader records how many bytes oto has pulled from the source.
type countingReader struct {
	r    *bytes.Reader
	read atomic.Int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.read.Add(int64(n))
	return n, err
}

type media struct {
	dev  *Device
	data []byte
	src  *countingReader
	p    oto.Player
}

func (m *media) Play() error {
	if m.p == nil {
		src := &countingReader{r: bytes.NewReader(m.data)}
		p, err := m.dev.newPlayer(src)
		if err != nil {
			return err
		}
		m.src = src
		m.p = p
	}
	m.p.Play()
	return nil
}

func (m *media) Pause() {
	if m.p != nil {
		m.p.Pause()
	}
}

func (m *media) Playing() bool {
	return m.p != nil && m.p.IsPlaying()
}

// Progress estimates the played fraction from the bytes consumed minus what
// is still buffered in the device.
func (m *media) Progress() float64 {
	if m.p == nil || len(m.data) == 0 {
		return 0
	}
	played := m.src.read.Load() - int64(m.p.UnplayedBufferSize())
	if played < 0 {
		played = 0
	}
	return min(float64(played)/float64(len(m.data)), 1)
}

func (m *media) Close() error {
	if m.p == nil {
		return nil
	}
	err := m.p.Close()
	m.p = nil
	return err
}
