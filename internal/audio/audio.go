// Package audio plays the editor's sound effects.
package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the speaker rate; loaded sounds are resampled to it.
const DefaultSampleRate = beep.SampleRate(44100)

var (
	ErrNotInitialized = errors.New("audio not initialized")
	ErrUnknownSound   = errors.New("unknown sound")
)

// Manager holds decoded sound effects and mixes them onto the speaker. All
// methods are safe for concurrent use; the speaker calls back on its own
// goroutine.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	mixer       *beep.Mixer
	sounds      map[string]*beep.Buffer

	masterVolume float64
	sfxVolume    float64
	muted        bool
}

// New creates a manager. Sounds can be loaded before Init.
func New() *Manager {
	return &Manager{
		mixer:        &beep.Mixer{},
		sounds:       make(map[string]*beep.Buffer),
		masterVolume: 1.0,
		sfxVolume:    1.0,
	}
}

// Init opens the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(DefaultSampleRate, DefaultSampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close stops playback. Loaded sounds are kept.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	m.initialized = false
}

// IsInitialized reports whether the speaker is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// Load decodes WAV data and stores it under name.
func (m *Manager) Load(name string, r io.Reader) error {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return fmt.Errorf("decode wav %s: %w", name, err)
	}
	defer streamer.Close()

	m.store(name, streamer, format.SampleRate)
	return nil
}

// LoadFile decodes a WAV file and stores it under name.
func (m *Manager) LoadFile(name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return m.Load(name, f)
}

// LoadTone stores a sine tone, used when a sound file is missing.
func (m *Manager) LoadTone(name string, freq float64, d time.Duration) error {
	tone, err := generators.SineTone(DefaultSampleRate, freq)
	if err != nil {
		return fmt.Errorf("tone %s: %w", name, err)
	}
	m.store(name, beep.Take(DefaultSampleRate.N(d), tone), DefaultSampleRate)
	return nil
}

func (m *Manager) store(name string, s beep.Streamer, rate beep.SampleRate) {
	if rate != DefaultSampleRate {
		s = beep.Resample(4, rate, DefaultSampleRate, s)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: DefaultSampleRate, NumChannels: 2, Precision: 2})
	buf.Append(s)

	m.mu.Lock()
	m.sounds[name] = buf
	m.mu.Unlock()
}

// Has reports whether a sound is loaded.
func (m *Manager) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sounds[name]
	return ok
}

// Duration returns the length of a loaded sound.
func (m *Manager) Duration(name string) (time.Duration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	buf, ok := m.sounds[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownSound, name)
	}
	return DefaultSampleRate.D(buf.Len()), nil
}

// Play starts a loaded sound. Overlapping plays mix.
func (m *Manager) Play(name string) error {
	m.mu.RLock()
	initialized := m.initialized
	buf, ok := m.sounds[name]
	vol := m.effectiveVolume()
	m.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSound, name)
	}
	if !initialized {
		return ErrNotInitialized
	}

	speaker.Lock()
	m.mixer.Add(&effects.Volume{
		Streamer: buf.Streamer(0, buf.Len()),
		Base:     2,
		Volume:   gainExponent(vol),
		Silent:   vol <= 0,
	})
	speaker.Unlock()
	return nil
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the effect volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolume = clamp(vol, 0, 1)
}

// SetMuted silences playback without forgetting the volume levels.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

func (m *Manager) MasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

func (m *Manager) SFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolume
}

func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// effectiveVolume must be called with mu held.
func (m *Manager) effectiveVolume() float64 {
	if m.muted {
		return 0
	}
	return m.masterVolume * m.sfxVolume
}

// gainExponent maps a 0-1 level onto the base-2 exponent effects.Volume uses:
// 1 -> 0, 0.5 -> -1, silence -> -100.
func gainExponent(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return math.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
