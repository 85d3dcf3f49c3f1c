package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"cruise/internal/logging"
)

// LoadError reports a sound file that could not be opened or decoded.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("audio %s: %v", e.Name, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

var ErrNoAmbient = errors.New("ambient track failed to load")

// Player owns the looping ambient track and the accelerate cue. Tracks
// load in the background; requests made before a track is ready are
// remembered and applied once it attaches.
type Player struct {
	mixer *Mixer
	log   logging.Logger

	mu          sync.Mutex
	ambient     *Track
	cue         *Track
	ambientErr  error
	wantAmbient bool
	muted       bool

	failures chan *LoadError
}

func NewPlayer(mixer *Mixer, log logging.Logger) *Player {
	if log == nil {
		log = logging.NoopLogger{}
	}
	return &Player{
		mixer:    mixer,
		log:      log,
		failures: make(chan *LoadError, 4),
	}
}

// LoadAmbient opens the looping background track in the background.
func (p *Player) LoadAmbient(fsys fs.FS, name string, volume float64) {
	go p.load(fsys, name, true, volume, func(t *Track, err error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			p.ambientErr = err
			return
		}
		t.SetMuted(p.muted)
		p.ambient = t
		if p.wantAmbient {
			t.Play()
		}
	})
}

// LoadCue opens the accelerate effect in the background. The cue loops
// for as long as the accelerator is held; StopCue ends it.
func (p *Player) LoadCue(fsys fs.FS, name string, volume float64) {
	go p.load(fsys, name, true, volume, func(t *Track, err error) {
		if err != nil {
			return
		}
		p.mu.Lock()
		p.cue = t
		p.mu.Unlock()
	})
}

func (p *Player) load(fsys fs.FS, name string, loop bool, volume float64, attach func(*Track, error)) {
	s, format, err := Open(fsys, name)
	if err != nil {
		p.log.Errorf("audio", "%v", err)
		attach(nil, err)
		p.failures <- &LoadError{Name: name, Err: err}
		return
	}
	p.log.Infof("audio", "loaded %s (%d Hz)", name, format.SampleRate)
	attach(p.mixer.Attach(name, s, format, loop, volume), nil)
}

// Failures drains load errors without blocking.
func (p *Player) Failures() []*LoadError {
	var out []*LoadError
	for {
		select {
		case f := <-p.failures:
			out = append(out, f)
		default:
			return out
		}
	}
}

// StartAmbient begins the background loop. Before the track has loaded
// the request is queued; after a failed load it returns ErrNoAmbient.
func (p *Player) StartAmbient() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wantAmbient = true
	if p.ambientErr != nil {
		return fmt.Errorf("%w: %v", ErrNoAmbient, p.ambientErr)
	}
	if p.ambient != nil {
		p.ambient.Play()
	}
	return nil
}

// StartCue plays the accelerate effect from the start.
func (p *Player) StartCue() {
	p.mu.Lock()
	cue := p.cue
	p.mu.Unlock()
	if cue == nil {
		return
	}
	if err := cue.Rewind(); err != nil {
		p.log.Errorf("audio", "rewind %s: %v", cue.Name, err)
	}
	cue.Play()
}

// StopCue pauses the accelerate loop and rewinds it for the next press.
func (p *Player) StopCue() {
	p.mu.Lock()
	cue := p.cue
	p.mu.Unlock()
	if cue == nil {
		return
	}
	cue.Pause()
	if err := cue.Rewind(); err != nil {
		p.log.Errorf("audio", "rewind %s: %v", cue.Name, err)
	}
}

// SetMuted mutes the ambient track only; the cue is unaffected.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	if p.ambient != nil {
		p.ambient.SetMuted(muted)
	}
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}
