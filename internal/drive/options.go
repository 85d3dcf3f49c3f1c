package drive

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Options are the runtime knobs of the desktop host.
type Options struct {
	AssetDir string
	Cycle    time.Duration // full day/night cycle
	Seed     uint64        // star field layout
	Width    int
	Height   int
	Muted    bool // start with ambient audio muted
	Debug    bool
	LogPath  string
}

func DefaultOptions() Options {
	return Options{
		AssetDir: "assets",
		Cycle:    time.Duration(DayNightDuration * float64(time.Second)),
		Seed:     uint64(time.Now().UnixNano()),
		Width:    WindowWidth,
		Height:   WindowHeight,
	}
}

// ApplyEnv overrides options from CRUISE_* environment variables.
// lookup is os.LookupEnv outside tests.
func (o *Options) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup("CRUISE_ASSETS"); ok && v != "" {
		o.AssetDir = v
	}
	if v, ok := lookup("CRUISE_LOG"); ok && v != "" {
		o.LogPath = v
	}
	if v, ok := lookup("CRUISE_SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("CRUISE_SEED: %w", err)
		}
		o.Seed = seed
	}
	return nil
}

func (o Options) Validate() error {
	var errs []error
	if o.AssetDir == "" {
		errs = append(errs, errors.New("asset dir is empty"))
	}
	if o.Cycle <= 0 {
		errs = append(errs, fmt.Errorf("cycle must be positive, got %v", o.Cycle))
	}
	if o.Width <= 0 || o.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", o.Width, o.Height))
	}
	return errors.Join(errs...)
}

// CycleSeconds is the cycle length as used by Phase.
func (o Options) CycleSeconds() float64 { return o.Cycle.Seconds() }

// ParseOptions reads command-line flags from args, then applies CRUISE_*
// environment overrides and validates the result.
func ParseOptions(args []string, lookup func(string) (string, bool)) (Options, error) {
	o := DefaultOptions()

	fs := flag.NewFlagSet("cruise", flag.ContinueOnError)
	fs.StringVar(&o.AssetDir, "assets", o.AssetDir, "directory holding "+RoadAsset+", "+CarAsset+", "+BackgroundAsset+", "+AmbientAsset+" and "+AccelAsset+"; also CRUISE_ASSETS")
	fs.DurationVar(&o.Cycle, "cycle", o.Cycle, "length of one full day/night cycle")
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "star field seed; also CRUISE_SEED")
	fs.IntVar(&o.Width, "width", o.Width, "initial window width")
	fs.IntVar(&o.Height, "height", o.Height, "initial window height")
	fs.BoolVar(&o.Muted, "muted", false, "start with the background music muted")
	fs.BoolVar(&o.Debug, "debug", false, "log informational messages, not only errors")
	fs.StringVar(&o.LogPath, "log", "", "append log output to this file instead of stderr; also CRUISE_LOG")
	if err := fs.Parse(args); err != nil {
		return o, err
	}

	if err := o.ApplyEnv(lookup); err != nil {
		return o, err
	}
	return o, o.Validate()
}
