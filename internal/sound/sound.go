// Package sound tracks every playing voice so that a mode switch can silence
// all of them at once.
package sound

import "errors"

// ErrGestureRequired is returned by Media.Play when output is not allowed to
// start yet, typically because the audio device is still opening. Callers
// retry after the next user gesture.
var ErrGestureRequired = errors.New("sound: playback needs a user gesture")

// Voice is one playing instance of a sound.
type Voice interface {
	Play() error
	Pause()
	// Rewind seeks back to the start.
	Rewind() error
	SetVolume(v float64)
	Playing() bool
	Close() error
}

// Clip is a loaded sound that can be played many times at once.
type Clip interface {
	NewVoice() (Voice, error)
}

// Media is a long-running track such as a user-supplied song.
type Media interface {
	Play() error
	Pause()
	Playing() bool
	// Progress returns the played fraction in [0, 1].
	Progress() float64
	Close() error
}

// Device loads clips and opens media files.
type Device interface {
	Load(name string) (Clip, error)
	OpenMedia(path string) (Media, error)
	// Ready reports whether output has started.
	Ready() bool
}
