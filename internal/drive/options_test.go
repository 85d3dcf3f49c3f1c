package drive

import (
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaultOptionsValid(t *testing.T) {
	o := DefaultOptions()
	if err := o.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if o.CycleSeconds() != DayNightDuration {
		t.Errorf("cycle = %v s", o.CycleSeconds())
	}
}

func TestApplyEnv(t *testing.T) {
	o := DefaultOptions()
	err := o.ApplyEnv(envMap(map[string]string{
		"CRUISE_ASSETS": "/srv/cruise",
		"CRUISE_SEED":   "1234",
		"CRUISE_LOG":    "cruise.log",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if o.AssetDir != "/srv/cruise" || o.Seed != 1234 || o.LogPath != "cruise.log" {
		t.Errorf("options = %+v", o)
	}
}

func TestApplyEnvBadSeed(t *testing.T) {
	o := DefaultOptions()
	if err := o.ApplyEnv(envMap(map[string]string{"CRUISE_SEED": "soon"})); err == nil {
		t.Fatal("expected error for non-numeric seed")
	}
}

func TestValidate(t *testing.T) {
	o := DefaultOptions()
	o.AssetDir = ""
	o.Cycle = -time.Second
	o.Width = 0
	if err := o.Validate(); err == nil {
		t.Fatal("expected validation errors")
	}
}

func TestParseOptionsFlags(t *testing.T) {
	o, err := ParseOptions([]string{
		"-assets", "/data/cruise",
		"-cycle", "2m",
		"-seed", "9",
		"-width", "800",
		"-height", "450",
		"-muted",
	}, envMap(nil))
	if err != nil {
		t.Fatalf("ParseOptions: %v", err)
	}
	if o.AssetDir != "/data/cruise" || o.Cycle != 2*time.Minute || o.Seed != 9 {
		t.Errorf("options = %+v", o)
	}
	if o.Width != 800 || o.Height != 450 || !o.Muted || o.CycleSeconds() != 120 {
		t.Errorf("options = %+v", o)
	}
}

func TestParseOptionsEnvOverridesFlags(t *testing.T) {
	o, err := ParseOptions([]string{"-seed", "9"}, envMap(map[string]string{
		"CRUISE_SEED":   "77",
		"CRUISE_ASSETS": "env-assets",
	}))
	if err != nil {
		t.Fatalf("ParseOptions: %v", err)
	}
	if o.Seed != 77 || o.AssetDir != "env-assets" {
		t.Errorf("options = %+v", o)
	}
}

func TestParseOptionsRejectsBadValues(t *testing.T) {
	if _, err := ParseOptions([]string{"-cycle", "0s"}, envMap(nil)); err == nil {
		t.Error("zero cycle accepted")
	}
	if _, err := ParseOptions([]string{"-width", "-1"}, envMap(nil)); err == nil {
		t.Error("negative width accepted")
	}
}
