package assets

import (
	"fmt"
	"io/fs"

	"cruise/internal/logging"
)

// Result is delivered once per Load call.
type Result struct {
	Name string
	Anim *Animation
	Err  error
}

// Loader decodes images off the loop thread. Loads are fire-and-forget:
// the loop polls Results between frames and never waits on them.
type Loader struct {
	fsys    fs.FS
	log     logging.Logger
	results chan Result
}

func NewLoader(fsys fs.FS, log logging.Logger) *Loader {
	if log == nil {
		log = logging.NoopLogger{}
	}
	return &Loader{
		fsys:    fsys,
		log:     log,
		results: make(chan Result, 16),
	}
}

// Load starts decoding name in the background.
func (l *Loader) Load(name string) {
	go func() {
		anim, err := l.decode(name)
		if err != nil {
			l.log.Errorf("assets", "%v", err)
		} else {
			l.log.Infof("assets", "loaded %s (%dx%d, %d frames)", name, anim.Width, anim.Height, len(anim.Frames))
		}
		l.results <- Result{Name: name, Anim: anim, Err: err}
	}()
}

func (l *Loader) decode(name string) (*Animation, error) {
	f, err := l.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	return Decode(name, f)
}

// Poll returns every result that is ready without blocking.
func (l *Loader) Poll() []Result {
	var out []Result
	for {
		select {
		case r := <-l.results:
			out = append(out, r)
		default:
			return out
		}
	}
}
