package sound

import "sync"

type entry struct {
	voice Voice
	owned bool // created by PlayClone, closed once finished or stopped
}

// Registry is the ordered set of voices that are currently playing.
// It never returns errors and never panics: every failure from a voice is
// swallowed.
type Registry struct {
	mu     sync.Mutex
	voices []entry
	volume float64
	muted  bool
}

// NewRegistry returns an empty registry. master scales every clone's volume.
func NewRegistry(master float64, muted bool) *Registry {
	return &Registry{volume: master, muted: muted}
}

// PlayClone starts a new voice of clip at the given volume and tracks it.
func (r *Registry) PlayClone(clip Clip, volume float64) {
	if clip == nil {
		return
	}
	var v Voice
	safely(func() {
		var err error
		v, err = clip.NewVoice()
		if err != nil {
			v = nil
		}
	})
	if v == nil {
		return
	}

	gain := r.Gain(volume)
	safely(func() { v.SetVolume(gain) })
	safely(func() { _ = v.Play() })
	r.insert(entry{voice: v, owned: true})
}

// Gain scales volume by the master volume. It is 0 while muted.
func (r *Registry) Gain(volume float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.muted {
		return 0
	}
	return volume * r.volume
}

// Register tracks a voice the caller created and keeps owning.
func (r *Registry) Register(v Voice) {
	if v == nil {
		return
	}
	r.insert(entry{voice: v})
}

func (r *Registry) insert(e entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// drop finished clones so the list does not grow without bound
	kept := r.voices[:0]
	for _, old := range r.voices {
		if old.owned && !isPlaying(old.voice) {
			safely(func() { _ = old.voice.Close() })
			continue
		}
		kept = append(kept, old)
	}
	r.voices = append(kept, e)
}

// StopAll pauses every voice, rewinds it to zero and empties the registry.
func (r *Registry) StopAll() {
	r.mu.Lock()
	voices := r.voices
	r.voices = nil
	r.mu.Unlock()

	for _, e := range voices {
		safely(e.voice.Pause)
		safely(func() { _ = e.voice.Rewind() })
		if e.owned {
			safely(func() { _ = e.voice.Close() })
		}
	}
}

// Len returns the number of tracked voices.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.voices)
}

// SetMuted silences future clones.
func (r *Registry) SetMuted(m bool) {
	r.mu.Lock()
	r.muted = m
	r.mu.Unlock()
}

func isPlaying(v Voice) (playing bool) {
	safely(func() { playing = v.Playing() })
	return playing
}

func safely(fn func()) {
	defer func() {
		//nolint:errcheck // Voices are best effort
		recover()
	}()
	fn()
}
