package lightlab

import (
	"fmt"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// ControlTag says who owns a control. Dynamic controls are rebuilt by their
// owner; static ones stay for the panel's lifetime.
type ControlTag int

const (
	TagStatic ControlTag = iota
	TagDynamic
)

type Control interface {
	Label() string
	Tag() ControlTag
	// Display is the value column text.
	Display() string
	// Press handles a pointer press at fraction fx (0..1) across the value column.
	Press(fx float32)
}

// Slider is bound to a float attribute; writes go straight to Target.
type Slider struct {
	label    string
	tag      ControlTag
	Target   *float32
	Min, Max float32
	Step     float32
	OnChange func(float32)
}

func NewSlider(label string, target *float32, min, max float32) *Slider {
	return &Slider{label: label, Target: target, Min: min, Max: max}
}

func (s *Slider) Label() string   { return s.label }
func (s *Slider) Tag() ControlTag { return s.tag }

func (s *Slider) Get() float32 { return *s.Target }

// Set clamps v to the range, snaps it to Step and writes it to the target.
func (s *Slider) Set(v float32) {
	v = mgl32.Clamp(v, s.Min, s.Max)
	if s.Step > 0 {
		v = s.Min + float32(math.Round(float64((v-s.Min)/s.Step)))*s.Step
		v = mgl32.Clamp(v, s.Min, s.Max)
	}
	*s.Target = v
	if s.OnChange != nil {
		s.OnChange(v)
	}
}

// Fraction is the target's position across the range.
func (s *Slider) Fraction() float32 {
	if s.Max <= s.Min {
		return 0
	}
	return mgl32.Clamp((*s.Target-s.Min)/(s.Max-s.Min), 0, 1)
}

const sliderCells = 10

func (s *Slider) Display() string {
	filled := int(math.Round(float64(s.Fraction() * sliderCells)))
	bar := make([]byte, sliderCells)
	for i := range bar {
		if i < filled {
			bar[i] = '#'
		} else {
			bar[i] = '-'
		}
	}
	return fmt.Sprintf("[%s] %.2f", bar, *s.Target)
}

func (s *Slider) Press(fx float32) {
	s.Set(s.Min + mgl32.Clamp(fx, 0, 1)*(s.Max-s.Min))
}

// ColorPalette is cycled by pressing a ColorPicker.
var ColorPalette = []Color{
	ColorHex(0xffffff),
	ColorHex(0xaaaaaa),
	ColorHex(0x404040),
	ColorHex(0x000000),
	ColorHex(0xff6040),
	ColorHex(0xffd070),
	ColorHex(0x60c0ff),
	ColorHex(0x80ff80),
}

// ColorPicker edits a color. With a Target it writes through to it; either
// way OnChange is told about every edit.
type ColorPicker struct {
	label    string
	tag      ControlTag
	value    Color
	Target   *Color
	OnChange func(Color)
}

func NewColorPicker(label string, initial Color, onChange func(Color)) *ColorPicker {
	return &ColorPicker{label: label, value: initial, OnChange: onChange}
}

// NewBoundColorPicker starts from *target and writes edits back to it.
func NewBoundColorPicker(label string, target *Color) *ColorPicker {
	return &ColorPicker{label: label, value: *target, Target: target}
}

func (c *ColorPicker) Label() string   { return c.label }
func (c *ColorPicker) Tag() ControlTag { return c.tag }
func (c *ColorPicker) Value() Color    { return c.value }
func (c *ColorPicker) Display() string { return c.value.Hex() }

func (c *ColorPicker) Set(v Color) {
	c.value = v
	if c.Target != nil {
		*c.Target = v
	}
	if c.OnChange != nil {
		c.OnChange(v)
	}
}

func (c *ColorPicker) SetHex(s string) error {
	v, err := ParseColor(s)
	if err != nil {
		return err
	}
	c.Set(v)
	return nil
}

func (c *ColorPicker) Press(float32) {
	idx := slices.Index(ColorPalette, c.value)
	c.Set(ColorPalette[(idx+1)%len(ColorPalette)])
}

// Dropdown is an enumerated control; OnChange fires on every SetValue.
type Dropdown struct {
	label    string
	tag      ControlTag
	Options  []string
	value    string
	OnChange func(string)
}

func NewDropdown(label string, options []string, initial string) *Dropdown {
	return &Dropdown{label: label, Options: options, value: initial}
}

func (d *Dropdown) Label() string   { return d.label }
func (d *Dropdown) Tag() ControlTag { return d.tag }
func (d *Dropdown) Value() string   { return d.value }
func (d *Dropdown) Display() string { return "< " + d.value + " >" }

func (d *Dropdown) SetValue(v string) {
	d.value = v
	if d.OnChange != nil {
		d.OnChange(v)
	}
}

// Press steps backward on the left half of the value column and forward on
// the right half.
func (d *Dropdown) Press(fx float32) {
	if len(d.Options) == 0 {
		return
	}
	idx := slices.Index(d.Options, d.value)
	if fx < 0.5 {
		idx = (idx - 1 + len(d.Options)) % len(d.Options)
	} else {
		idx = (idx + 1) % len(d.Options)
	}
	d.SetValue(d.Options[idx])
}

// Folder is a named, collapsible group of controls.
type Folder struct {
	Name     string
	Open     bool
	controls []Control
	panel    *Panel
}

func (f *Folder) touch() {
	if f.panel != nil {
		f.panel.Dirty = true
	}
}

// Add appends c with the given tag.
func (f *Folder) Add(c Control, tag ControlTag) Control {
	switch ctl := c.(type) {
	case *Slider:
		ctl.tag = tag
	case *ColorPicker:
		ctl.tag = tag
	case *Dropdown:
		ctl.tag = tag
	}
	f.controls = append(f.controls, c)
	f.touch()
	return c
}

func (f *Folder) AddSlider(label string, target *float32, min, max float32, tag ControlTag) *Slider {
	s := NewSlider(label, target, min, max)
	f.Add(s, tag)
	return s
}

func (f *Folder) AddColor(label string, initial Color, onChange func(Color), tag ControlTag) *ColorPicker {
	c := NewColorPicker(label, initial, onChange)
	f.Add(c, tag)
	return c
}

func (f *Folder) AddDropdown(label string, options []string, initial string, tag ControlTag) *Dropdown {
	d := NewDropdown(label, options, initial)
	f.Add(d, tag)
	return d
}

func (f *Folder) Remove(c Control) bool {
	idx := slices.Index(f.controls, c)
	if idx < 0 {
		return false
	}
	f.controls = slices.Delete(f.controls, idx, idx+1)
	f.touch()
	return true
}

// RemoveTagged drops every control carrying tag and reports how many went.
func (f *Folder) RemoveTagged(tag ControlTag) int {
	before := len(f.controls)
	f.controls = slices.DeleteFunc(f.controls, func(c Control) bool { return c.Tag() == tag })
	removed := before - len(f.controls)
	if removed > 0 {
		f.touch()
	}
	return removed
}

func (f *Folder) Controls() []Control {
	return slices.Clone(f.controls)
}

func (f *Folder) Tagged(tag ControlTag) []Control {
	var res []Control
	for _, c := range f.controls {
		if c.Tag() == tag {
			res = append(res, c)
		}
	}
	return res
}

func (f *Folder) Find(label string) Control {
	for _, c := range f.controls {
		if c.Label() == label {
			return c
		}
	}
	return nil
}
