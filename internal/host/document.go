package host

import (
	"errors"
	"fmt"
)

// ErrDuplicateControl is returned when a control ID is already in the
// document.
var ErrDuplicateControl = errors.New("host: duplicate control id")

// ControlKind selects how a control is drawn and what input it accepts.
type ControlKind int

const (
	// Button is a clickable toolbar entry.
	Button ControlKind = iota
	// Label is non-interactive text, e.g. a speech bubble.
	Label
	// Input accepts a line of text and submits it on enter.
	Input
	// Progress shows Value in [0, 1] as a bar.
	Progress
)

// Control is a transient UI element injected into the document.
type Control struct {
	ID    string
	Kind  ControlKind
	Text  string  // button caption, label text or input placeholder
	Value float64 // progress fraction

	// Hidden controls stay in the document but are not drawn.
	Hidden bool
	// Active highlights a button, e.g. the trigger of the running mode.
	Active bool

	// Anchored controls are drawn over the surface at (AtX, AtY) instead of
	// in the toolbar.
	Anchored bool
	AtX, AtY int

	OnClick  func()
	OnSubmit func(value string)
}

// Document holds the injected controls in insertion order.
type Document struct {
	controls []*Control
	scroll   int
}

// Append adds a control. IDs must be unique within the document.
func (d *Document) Append(c *Control) error {
	if c == nil || c.ID == "" {
		return errors.New("host: control needs an id")
	}
	if d.Get(c.ID) != nil {
		return fmt.Errorf("%w: %q", ErrDuplicateControl, c.ID)
	}
	d.controls = append(d.controls, c)
	return nil
}

// Remove deletes a control by ID and reports whether it was present.
func (d *Document) Remove(id string) bool {
	for i, c := range d.controls {
		if c.ID == id {
			d.controls = append(d.controls[:i], d.controls[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the control with the given ID, or nil.
func (d *Document) Get(id string) *Control {
	for _, c := range d.controls {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Controls returns the controls in insertion order.
func (d *Document) Controls() []*Control {
	out := make([]*Control, len(d.controls))
	copy(out, d.controls)
	return out
}

// Len returns the number of controls.
func (d *Document) Len() int {
	return len(d.controls)
}

// Click activates a visible button. It reports whether a handler ran.
func (d *Document) Click(id string) bool {
	c := d.Get(id)
	if c == nil || c.Hidden || c.Kind != Button || c.OnClick == nil {
		return false
	}
	c.OnClick()
	return true
}

// Submit delivers text to an input control.
func (d *Document) Submit(id, value string) bool {
	c := d.Get(id)
	if c == nil || c.Kind != Input || c.OnSubmit == nil {
		return false
	}
	c.OnSubmit(value)
	return true
}

// Scroll shifts the toolbar by delta entries.
func (d *Document) Scroll(delta int) {
	d.scroll += delta
	if d.scroll < 0 {
		d.scroll = 0
	}
	if maxScroll := len(d.controls) - 1; d.scroll > maxScroll {
		d.scroll = max(maxScroll, 0)
	}
}

// ScrollOffset returns the index of the first toolbar entry to draw.
func (d *Document) ScrollOffset() int {
	return d.scroll
}
