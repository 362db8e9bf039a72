// Package otoaudio plays sound through the system audio device using oto.
// Effects are synthesized from their name; media files are 16-bit PCM WAV.
package otoaudio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/oto/v2"
	"github.com/sony/gobreaker"

	"github.com/Mygameindie/Zombiepet/internal/sound"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)

	frameBytes = 8 // stereo float32
)

// ErrUnknownSound is returned by Load for names with no synthesizer.
var ErrUnknownSound = errors.New("otoaudio: unknown sound")

// Device is a sound.Device backed by an oto context.
type Device struct {
	ctx     *oto.Context
	ready   chan struct{}
	breaker *gobreaker.CircuitBreaker
	logger  *log.Logger

	mu    sync.Mutex
	cache map[string][]byte
}

var _ sound.Device = (*Device)(nil)

// New opens the audio device. The device keeps starting up in the
// background; until it is ready every Play returns sound.ErrGestureRequired.
func New(logger *log.Logger) (*Device, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, fmt.Errorf("otoaudio: cannot open audio device: %w", err)
	}

	d := &Device{
		ctx:    ctx,
		ready:  ready,
		logger: logger,
		cache:  make(map[string][]byte),
	}
	d.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "audio-output",
		MaxRequests: 1,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("audio breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
	return d, nil
}

// Ready reports whether the output stream has started.
func (d *Device) Ready() bool {
	select {
	case <-d.ready:
		return true
	default:
		return false
	}
}

// Load synthesizes the named effect. Results are cached by name.
func (d *Device) Load(name string) (sound.Clip, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if data, ok := d.cache[name]; ok {
		return &clip{dev: d, data: data}, nil
	}
	gen, ok := effects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}
	data := gen()
	d.cache[name] = data
	return &clip{dev: d, data: data}, nil
}

// OpenMedia decodes a WAV file into memory.
func (d *Device) OpenMedia(path string) (sound.Media, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("otoaudio: open media: %w", err)
	}
	defer f.Close()

	data, err := decodeWAV(f)
	if err != nil {
		return nil, fmt.Errorf("otoaudio: decode %s: %w", path, err)
	}
	return &media{dev: d, data: data}, nil
}

// newPlayer creates an oto player through the breaker.
func (d *Device) newPlayer(src io.Reader) (oto.Player, error) {
	if !d.Ready() {
		return nil, sound.ErrGestureRequired
	}
	res, err := d.breaker.Execute(func() (interface{}, error) {
		p := d.ctx.NewPlayer(src)
		if err := p.Err(); err != nil {
			p.Close()
			return nil, err
		}
		return p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("otoaudio: new player: %w", err)
	}
	return res.(oto.Player), nil
}

type clip struct {
	dev  *Device
	data []byte
}

func (c *clip) NewVoice() (sound.Voice, error) {
	return &voice{dev: c.dev, src: bytes.NewReader(c.data)}, nil
}

// voice creates its player lazily on the first Play, so a voice made before
// the device is ready can still be played later.
type voice struct {
	dev    *Device
	src    *bytes.Reader
	player oto.Player
	volume float64
}

func (v *voice) Play() error {
	if v.player == nil {
		p, err := v.dev.newPlayer(v.src)
		if err != nil {
			return err
		}
		p.SetVolume(v.volume)
		v.player = p
	}
	v.player.Play()
	return nil
}

func (v *voice) Pause() {
	if v.player != nil {
		v.player.Pause()
	}
}

func (v *voice) Rewind() error {
	if v.player == nil {
		_, err := v.src.Seek(0, io.SeekStart)
		return err
	}
	if s, ok := v.player.(io.Seeker); ok {
		_, err := s.Seek(0, io.SeekStart)
		return err
	}
	// player cannot seek: drop it and start over on the next Play
	err := v.player.Close()
	v.player = nil
	if _, seekErr := v.src.Seek(0, io.SeekStart); seekErr != nil {
		return seekErr
	}
	return err
}

func (v *voice) SetVolume(x float64) {
	v.volume = x
	if v.player != nil {
		v.player.SetVolume(x)
	}
}

func (v *voice) Playing() bool {
	return v.player != nil && v.player.IsPlaying()
}

func (v *voice) Close() error {
	if v.player == nil {
		return nil
	}
	err := v.player.Close()
	v.player = nil
	return err
}
