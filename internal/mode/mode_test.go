package mode

import (
	"errors"
	"testing"
)

func TestPoseSlot(t *testing.T) {
	var slot PoseSlot
	if _, ok := slot.Current(); ok {
		t.Fatal("empty slot returned a pose")
	}

	slot.Set(func() (Pose, bool) { return Pose{Art: []string{"x"}}, true })
	if !slot.Installed() {
		t.Fatal("Installed() = false after Set")
	}
	if p, ok := slot.Current(); !ok || len(p.Art) != 1 {
		t.Errorf("Current() = %v, %v", p, ok)
	}

	slot.Clear()
	if _, ok := slot.Current(); ok || slot.Installed() {
		t.Error("pose still installed after Clear")
	}

	var nilSlot *PoseSlot
	if _, ok := nilSlot.Current(); ok {
		t.Error("nil slot returned a pose")
	}
}

func TestHandle(t *testing.T) {
	var zero Handle
	if zero.Active() || zero.Name() != "" || zero.Teardown() != nil {
		t.Error("zero handle should be inactive")
	}

	h := NewHandle("feed", func() error { return nil })
	if !h.Active() || h.Name() != "feed" || h.Teardown() == nil {
		t.Errorf("handle = %+v", h)
	}
}

func TestFuncAdapter(t *testing.T) {
	want := errors.New("no surface")
	var m Mode = Func(func(*Context) (Teardown, error) { return nil, want })
	if _, err := m.Start(&Context{}); !errors.Is(err, want) {
		t.Errorf("Start() error = %v, want %v", err, want)
	}
}
