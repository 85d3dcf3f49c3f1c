package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gopxl/beep"
)

// constSource yields n frames of value v on both channels.
type constSource struct {
	v   float64
	n   int
	pos int
}

func (c *constSource) Stream(samples [][2]float64) (int, bool) {
	if c.pos >= c.n {
		return 0, false
	}
	k := min(len(samples), c.n-c.pos)
	for i := 0; i < k; i++ {
		samples[i] = [2]float64{c.v, c.v}
	}
	c.pos += k
	return k, true
}

func (c *constSource) Err() error    { return nil }
func (c *constSource) Len() int      { return c.n }
func (c *constSource) Position() int { return c.pos }
func (c *constSource) Seek(p int) error {
	if p < 0 || p > c.n {
		return errors.New("seek out of range")
	}
	c.pos = p
	return nil
}

var testFormat = beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

func readFrames(t *testing.T, m *Mixer, frames int) [][2]float32 {
	t.Helper()
	p := make([]byte, frames*8)
	n, err := m.Read(p)
	if err != nil || n != len(p) {
		t.Fatalf("Read = %d, %v", n, err)
	}
	out := make([][2]float32, frames)
	for i := range out {
		out[i][0] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*8:]))
		out[i][1] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*8+4:]))
	}
	return out
}

func assertFrames(t *testing.T, got [][2]float32, want ...float32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d frames, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(float64(got[i][0]-want[i])) > 1e-6 || math.Abs(float64(got[i][1]-want[i])) > 1e-6 {
			t.Errorf("frame %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTrackStartsPaused(t *testing.T) {
	m := NewMixer()
	tr := m.Attach("cue", &constSource{v: 0.25, n: 10}, testFormat, false, 1)
	if tr.Playing() {
		t.Fatal("new track should be paused")
	}
	assertFrames(t, readFrames(t, m, 3), 0, 0, 0)
}

func TestTrackPlaysThenHolds(t *testing.T) {
	m := NewMixer()
	tr := m.Attach("cue", &constSource{v: 0.25, n: 3}, testFormat, false, 1)
	tr.Play()
	assertFrames(t, readFrames(t, m, 5), 0.25, 0.25, 0.25, 0, 0)
	if tr.Playing() {
		t.Error("finished one-shot should not report playing")
	}
	if m.Len() != 1 {
		t.Errorf("finished track was dropped from the mixer")
	}

	if err := tr.Rewind(); err != nil {
		t.Fatalf("rewind: %v", err)
	}
	tr.Play()
	assertFrames(t, readFrames(t, m, 2), 0.25, 0.25)
}

func TestTrackPauseRewind(t *testing.T) {
	m := NewMixer()
	src := &constSource{v: 0.5, n: 100}
	tr := m.Attach("cue", src, testFormat, false, 1)
	tr.Play()
	readFrames(t, m, 10)
	tr.Pause()
	if err := tr.Rewind(); err != nil {
		t.Fatalf("rewind: %v", err)
	}
	if src.Position() != 0 {
		t.Errorf("position after rewind = %d", src.Position())
	}
	assertFrames(t, readFrames(t, m, 2), 0, 0)
}

func TestTrackLoops(t *testing.T) {
	m := NewMixer()
	tr := m.Attach("ambient", &constSource{v: 0.1, n: 3}, testFormat, true, 1)
	tr.Play()
	got := readFrames(t, m, 8)
	assertFrames(t, got, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1)
	if !tr.Playing() {
		t.Error("looping track stopped")
	}
}

func TestTrackVolumeAndMute(t *testing.T) {
	m := NewMixer()
	tr := m.Attach("ambient", &constSource{v: 0.8, n: 100}, testFormat, true, 0.5)
	tr.Play()
	assertFrames(t, readFrames(t, m, 1), 0.4)

	tr.SetMuted(true)
	if !tr.Muted() {
		t.Fatal("Muted() = false after SetMuted(true)")
	}
	assertFrames(t, readFrames(t, m, 1), 0)

	tr.SetMuted(false)
	assertFrames(t, readFrames(t, m, 1), 0.4)

	tr.SetVolume(0)
	assertFrames(t, readFrames(t, m, 1), 0)
	if tr.Volume() != 0 {
		t.Errorf("Volume() = %v", tr.Volume())
	}
}

func TestMixerSumsAndClamps(t *testing.T) {
	m := NewMixer()
	a := m.Attach("a", &constSource{v: 0.75, n: 10}, testFormat, false, 1)
	b := m.Attach("b", &constSource{v: 0.75, n: 10}, testFormat, false, 1)
	a.Play()
	b.Play()
	assertFrames(t, readFrames(t, m, 1), 1)
}

func TestMixerShortBuffer(t *testing.T) {
	m := NewMixer()
	if n, err := m.Read(make([]byte, 7)); n != 0 || err != nil {
		t.Errorf("Read(7 bytes) = %d, %v", n, err)
	}
}

// pcmWAV returns a 16-bit mono PCM WAV holding n samples of value v.
func pcmWAV(n int, v int16) []byte {
	var buf bytes.Buffer
	dataLen := uint32(n * 2)
	w := func(x any) { _ = binary.Write(&buf, binary.LittleEndian, x) }
	buf.WriteString("RIFF")
	w(36 + dataLen)
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	w(uint32(16))
	w(uint16(1)) // PCM
	w(uint16(1)) // mono
	w(uint32(SampleRate))
	w(uint32(SampleRate) * 2)
	w(uint16(2))
	w(uint16(16))
	buf.WriteString("data")
	w(dataLen)
	for i := 0; i < n; i++ {
		w(v)
	}
	return buf.Bytes()
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestOpenUnsupported(t *testing.T) {
	fsys := fstest.MapFS{"music.ogg": {Data: []byte("OggS")}}
	if _, _, err := Open(fsys, "music.ogg"); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestPlayerQueuesAmbientUntilLoaded(t *testing.T) {
	fsys := fstest.MapFS{"bgmusic.wav": {Data: pcmWAV(64, 8192)}}
	m := NewMixer()
	p := NewPlayer(m, nil)
	p.SetMuted(true)
	if err := p.StartAmbient(); err != nil {
		t.Fatalf("StartAmbient before load: %v", err)
	}
	p.LoadAmbient(fsys, "bgmusic.wav", 0.5)

	waitFor(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.ambient != nil
	})
	p.mu.Lock()
	amb := p.ambient
	p.mu.Unlock()
	if !amb.Playing() {
		t.Error("queued ambient start was not applied")
	}
	if !amb.Muted() {
		t.Error("mute state was not applied on attach")
	}
	if len(p.Failures()) != 0 {
		t.Error("unexpected load failure")
	}
}

func TestPlayerLoadFailure(t *testing.T) {
	fsys := fstest.MapFS{"bgmusic.wav": {Data: []byte("garbage")}}
	p := NewPlayer(NewMixer(), nil)
	p.LoadAmbient(fsys, "bgmusic.wav", 0.5)
	p.LoadCue(fsys, "sound.mp3", 0.7)

	var failures []*LoadError
	waitFor(t, func() bool {
		failures = append(failures, p.Failures()...)
		return len(failures) == 2
	})
	names := map[string]bool{}
	for _, f := range failures {
		names[f.Name] = true
	}
	if !names["bgmusic.wav"] || !names["sound.mp3"] {
		t.Errorf("failures = %v", names)
	}

	if err := p.StartAmbient(); !errors.Is(err, ErrNoAmbient) {
		t.Errorf("StartAmbient err = %v, want ErrNoAmbient", err)
	}
	// Missing cue degrades to silence.
	p.StartCue()
	p.StopCue()
}

func TestPlayerCueRestartsOnEachPress(t *testing.T) {
	m := NewMixer()
	p := NewPlayer(m, nil)
	src := &constSource{v: 0.5, n: 50}
	p.cue = m.Attach("sound.mp3", src, testFormat, false, 1)

	p.StartCue()
	readFrames(t, m, 20)
	p.StopCue()
	if src.Position() != 0 {
		t.Errorf("cue not rewound on release, position %d", src.Position())
	}
	if p.cue.Playing() {
		t.Error("cue still playing after release")
	}
	p.StartCue()
	assertFrames(t, readFrames(t, m, 1), 0.5)
}

func TestPlayerCueLoopsWhileHeld(t *testing.T) {
	fsys := fstest.MapFS{"cue.wav": {Data: pcmWAV(256, 8192)}}
	m := NewMixer()
	p := NewPlayer(m, nil)
	p.LoadCue(fsys, "cue.wav", 1)

	waitFor(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.cue != nil
	})

	p.StartCue()
	got := readFrames(t, m, 4096)
	if !p.cue.Playing() {
		t.Fatal("held cue stopped after its length")
	}
	for _, i := range []int{255, 256, 1000, 4095} {
		if got[i][0] == 0 {
			t.Errorf("frame %d silent while the cue is held", i)
		}
	}

	p.StopCue()
	if p.cue.Playing() {
		t.Error("cue still playing after release")
	}
	assertFrames(t, readFrames(t, m, 2), 0, 0)
}
