package audio

import (
	"io"
	"math"
	"sync"

	"github.com/gopxl/beep"
)

const (
	SampleRate   = beep.SampleRate(44100)
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// Mixer sums every attached Track and serves the result as interleaved
// stereo float32 little-endian frames, the format the oto device reads.
type Mixer struct {
	mu  sync.Mutex
	mix beep.Mixer
	buf [][2]float64
}

var _ io.Reader = (*Mixer)(nil)

func NewMixer() *Mixer {
	return &Mixer{}
}

// Attach adds a paused track built from source. The mixer takes ownership
// of the stream.
func (m *Mixer) Attach(name string, source beep.StreamSeeker, format beep.Format, loop bool, volume float64) *Track {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := newTrack(name, &m.mu, source, format, loop, volume)
	m.mix.Add(t.tail)
	return t
}

// Len is the number of attached tracks.
func (m *Mixer) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mix.Len()
}

func (m *Mixer) Read(p []byte) (int, error) {
	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	if cap(m.buf) < frames {
		m.buf = make([][2]float64, frames)
	}
	buf := m.buf[:frames]

	m.mu.Lock()
	n, ok := m.mix.Stream(buf)
	m.mu.Unlock()
	if !ok {
		n = 0
	}
	for i := n; i < frames; i++ {
		buf[i] = [2]float64{}
	}
	for i, s := range buf {
		putStereoF32LR(p, i, clampSample(s[0]), clampSample(s[1]))
	}
	return frames * 8, nil
}

func clampSample(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// putStereoF32LR writes independent left/right samples in [-1,1].
func putStereoF32LR(buf []byte, i int, left, right float64) {
	lv := math.Float32bits(float32(left))
	rv := math.Float32bits(float32(right))
	buf[i*8] = byte(lv)
	buf[i*8+1] = byte(lv >> 8)
	buf[i*8+2] = byte(lv >> 16)
	buf[i*8+3] = byte(lv >> 24)
	buf[i*8+4] = byte(rv)
	buf[i*8+5] = byte(rv >> 8)
	buf[i*8+6] = byte(rv >> 16)
	buf[i*8+7] = byte(rv >> 24)
}
