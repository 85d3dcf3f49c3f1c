package audio

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
)

// Open decodes a WAV or MP3 file from fsys. The returned stream owns the
// file and closes it on Close.
func Open(fsys fs.FS, name string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("open %s: %w", name, err)
	}

	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)
	switch ext := strings.ToLower(path.Ext(name)); ext {
	case ".wav":
		s, format, err = wav.Decode(f)
	case ".mp3":
		s, format, err = mp3.Decode(f)
	default:
		err = fmt.Errorf("unsupported audio format %q", ext)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return s, format, nil
}
