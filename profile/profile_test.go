package profile

import (
	"slices"
	"testing"
)

func TestConfig_Start_EmptyMode(t *testing.T) {
	s := Config{}.Start()
	if _, ok := s.(ignore); !ok {
		t.Errorf("Start() with empty mode = %T, want no-op", s)
	}

	s.Stop()
}

func TestConfig_Start_UnknownMode(t *testing.T) {
	s := Config{Mode: "nonexistent", Path: t.TempDir(), Quiet: true}.Start()
	if _, ok := s.(ignore); !ok {
		t.Errorf("Start() with unknown mode = %T, want no-op", s)
	}

	s.Stop()
}

func TestModes(t *testing.T) {
	modes := Modes()

	if Enabled() != (len(modes) > 0) {
		t.Errorf("Enabled() = %v with %d modes", Enabled(), len(modes))
	}

	if !slices.IsSorted(modes) {
		t.Errorf("Modes() = %v, not sorted", modes)
	}

	if Enabled() && !slices.Contains(modes, "cpu") {
		t.Errorf("Modes() = %v, missing cpu", modes)
	}
}
