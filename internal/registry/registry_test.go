package registry

import (
	"testing"

	"github.com/Mygameindie/Zombiepet/internal/mode"
)

func noop() mode.Mode {
	return mode.Func(func(*mode.Context) (mode.Teardown, error) { return nil, nil })
}

func TestRegisterAndList(t *testing.T) {
	r := New()
	r.Register(mode.Descriptor{ID: "feed", Label: "Feeding Mode", Key: "2", Factory: noop})
	r.Register(mode.Descriptor{ID: "normal", Label: "Normal Mode", Key: "1", Factory: noop})
	r.Register(mode.Descriptor{ID: "swing", Key: "8", Factory: noop})

	list := r.List()
	want := []string{"normal", "feed", "swing"}
	if len(list) != len(want) {
		t.Fatalf("List() len = %d, want %d", len(list), len(want))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("List()[%d] = %q, want %q", i, list[i].ID, id)
		}
	}
	if list[2].Label != "swing" {
		t.Errorf("empty label should default to the id, got %q", list[2].Label)
	}

	d, err := r.Get("feed")
	if err != nil || d.Label != "Feeding Mode" {
		t.Errorf("Get(feed) = %+v, %v", d, err)
	}
	if _, err := r.Get("trolling"); err == nil {
		t.Error("Get of unknown mode should fail")
	}
	if d, ok := r.ByKey("1"); !ok || d.ID != "normal" {
		t.Errorf("ByKey(1) = %+v, %v", d, ok)
	}
	if !r.Exists("normal") || r.Exists("ghost") {
		t.Error("Exists mismatch")
	}
}

func TestRegisterPanics(t *testing.T) {
	tests := []struct {
		name string
		d    mode.Descriptor
	}{
		{"duplicate id", mode.Descriptor{ID: "normal", Key: "9", Factory: noop}},
		{"duplicate key", mode.Descriptor{ID: "other", Key: "1", Factory: noop}},
		{"nil factory", mode.Descriptor{ID: "broken", Key: "7"}},
		{"empty id", mode.Descriptor{Key: "6", Factory: noop}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			r.Register(mode.Descriptor{ID: "normal", Key: "1", Factory: noop})
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			r.Register(tt.d)
		})
	}
}
