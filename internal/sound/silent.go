package sound

import (
	"fmt"
	"os"
)

// Silent is a Device that produces no output. It is used when audio is muted,
// over SSH and in tests. Voices and media still track their play state.
type Silent struct{}

// Load returns a silent clip.
func (Silent) Load(name string) (Clip, error) {
	return silentClip{}, nil
}

// OpenMedia checks that path exists and returns silent media for it.
func (Silent) OpenMedia(path string) (Media, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("sound: open media: %w", err)
	}
	return &silentMedia{}, nil
}

// Ready always reports true.
func (Silent) Ready() bool { return true }

type silentClip struct{}

func (silentClip) NewVoice() (Voice, error) { return &SilentVoice{}, nil }

// SilentVoice is a Voice that only records its state.
type SilentVoice struct {
	playing bool
	pos     int
	volume  float64
}

func (v *SilentVoice) Play() error {
	v.playing = true
	v.pos++
	return nil
}
func (v *SilentVoice) Pause()              { v.playing = false }
func (v *SilentVoice) Rewind() error       { v.pos = 0; return nil }
func (v *SilentVoice) SetVolume(x float64) { v.volume = x }
func (v *SilentVoice) Playing() bool       { return v.playing }
func (v *SilentVoice) Close() error        { v.playing = false; return nil }

// Position returns how far the voice has advanced since the last rewind.
func (v *SilentVoice) Position() int { return v.pos }

type silentMedia struct {
	playing bool
}

func (m *silentMedia) Play() error       { m.playing = true; return nil }
func (m *silentMedia) Pause()            { m.playing = false }
func (m *silentMedia) Playing() bool     { return m.playing }
func (m *silentMedia) Progress() float64 { return 0 }
func (m *silentMedia) Close() error      { m.playing = false; return nil }
