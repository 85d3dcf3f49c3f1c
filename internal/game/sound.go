package game

import (
	"fmt"
	"io/fs"
	"sync"

	"github.com/hajimehoshi/oto/v2"

	"cruise/internal/audio"
	"cruise/internal/drive"
	"cruise/internal/logging"
)

// Sound connects the track mixer to the output device. One oto player
// streams the mixer for the life of the program; tracks start and stop
// inside the mix.
type Sound struct {
	ctx   *oto.Context
	ready chan struct{}
	log   logging.Logger

	mu     sync.Mutex
	output oto.Player

	*audio.Player
}

// InitSound opens the audio device and begins loading both tracks.
func InitSound(fsys fs.FS, muted bool, log logging.Logger) (*Sound, error) {
	ctx, ready, err := oto.NewContext(int(audio.SampleRate), audio.ChannelCount, audio.BitDepth)
	if err != nil {
		return nil, fmt.Errorf("audio device: %w", err)
	}
	mixer := audio.NewMixer()
	s := &Sound{
		ctx:    ctx,
		ready:  ready,
		log:    log,
		Player: audio.NewPlayer(mixer, log),
	}
	s.SetMuted(muted)
	s.LoadAmbient(fsys, drive.AmbientAsset, drive.AmbientVolume)
	s.LoadCue(fsys, drive.AccelAsset, drive.AccelVolume)

	go func() {
		<-ready
		p := ctx.NewPlayer(mixer)
		p.Play()
		s.mu.Lock()
		s.output = p
		s.mu.Unlock()
		log.Infof("audio", "output started at %d Hz", int(audio.SampleRate))
	}()
	return s, nil
}

// PollFailures turns tracks that failed to load into audio error events.
func (s *Sound) PollFailures(bus *drive.EventBus) {
	for _, f := range s.Failures() {
		bus.Emit(drive.Event{
			Type: drive.EventAudioError,
			Name: f.Name,
			Msg:  "Audio file not found or cannot be played: " + f.Name,
			Err:  f,
		})
	}
}

// Close stops the device stream.
func (s *Sound) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.output != nil {
		if err := s.output.Close(); err != nil {
			s.log.Errorf("audio", "close output: %v", err)
		}
		s.output = nil
	}
}
