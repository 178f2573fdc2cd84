package lightlab

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridCanvas is a fixed-pitch canvas that records drawn lines.
type gridCanvas struct {
	lines []string
}

func (c *gridCanvas) DrawText(text string, x, y float32, scale float32, color [4]float32) {
	c.lines = append(c.lines, text)
}

func (c *gridCanvas) MeasureText(text string, scale float32) (float32, float32) {
	return float32(len(text)) * 8 * scale, 10 * scale
}

func (c *gridCanvas) LineHeight(scale float32) float32 { return 10 * scale }

func TestSlider_SetClampsAndSteps(t *testing.T) {
	v := float32(1)
	s := NewSlider("Intensity", &v, 0, 2)

	s.Set(3)
	assert.Equal(t, float32(2), v)
	s.Set(-1)
	assert.Equal(t, float32(0), v)

	s.Step = 0.5
	s.Set(1.3)
	assert.Equal(t, float32(1.5), v)

	var changed float32
	s.OnChange = func(f float32) { changed = f }
	s.Set(0.5)
	assert.Equal(t, float32(0.5), changed)
}

func TestSlider_DisplayAndPress(t *testing.T) {
	v := float32(1)
	s := NewSlider("Intensity", &v, 0, 2)
	assert.Equal(t, "[#####-----] 1.00", s.Display())

	s.Press(1)
	assert.Equal(t, float32(2), v)
	assert.Equal(t, "[##########] 2.00", s.Display())

	s.Press(-3)
	assert.Equal(t, float32(0), v)
}

func TestColorPicker_CyclesPalette(t *testing.T) {
	target := ColorHex(0xffffff)
	c := NewBoundColorPicker("Sky Color", &target)

	c.Press(0)
	assert.Equal(t, ColorPalette[1], target)
	assert.Equal(t, ColorPalette[1].Hex(), c.Display())

	assert.Error(t, c.SetHex("nope"))
	assert.Equal(t, ColorPalette[1], target)

	var got Color
	unbound := NewColorPicker("x", ColorHex(0x123456), func(v Color) { got = v })
	unbound.Press(0) // not in the palette: starts from the first entry
	assert.Equal(t, ColorPalette[0], got)
}

func TestDropdown_WrapsAround(t *testing.T) {
	var seen []string
	d := NewDropdown("Pick", []string{"a", "b", "c"}, "a")
	d.OnChange = func(v string) { seen = append(seen, v) }

	d.Press(0.1)
	assert.Equal(t, "c", d.Value())
	d.Press(0.9)
	assert.Equal(t, "a", d.Value())
	d.SetValue("a")
	assert.Equal(t, []string{"c", "a", "a"}, seen)
	assert.Equal(t, "< a >", d.Display())
}

func TestFolder_RemoveTagged(t *testing.T) {
	panel := NewPanel("p")
	f := panel.AddFolder("f")
	var a, b float32

	f.AddDropdown("keep", []string{"x"}, "x", TagStatic)
	f.AddSlider("a", &a, 0, 1, TagDynamic)
	f.AddSlider("b", &b, 0, 1, TagDynamic)
	panel.Dirty = false

	assert.Equal(t, 2, f.RemoveTagged(TagDynamic))
	assert.True(t, panel.Dirty)
	require.Len(t, f.Controls(), 1)
	assert.Equal(t, "keep", f.Controls()[0].Label())

	panel.Dirty = false
	assert.Equal(t, 0, f.RemoveTagged(TagDynamic))
	assert.False(t, panel.Dirty)

	keep := f.Find("keep")
	assert.True(t, f.Remove(keep))
	assert.False(t, f.Remove(keep))
	assert.Nil(t, f.Find("keep"))
}

func TestPanel_Draw(t *testing.T) {
	panel := NewPanel("lightlab")
	panel.Status = "light: All"
	f := panel.AddFolder("Light Controls")
	f.Open = true
	v := float32(0.5)
	f.AddSlider("Intensity", &v, 0, 1, TagDynamic)

	canvas := &gridCanvas{}
	panel.Draw(canvas)

	joined := strings.Join(canvas.lines, "\n")
	assert.Contains(t, joined, "| lightlab  (light: All)")
	assert.Contains(t, joined, "| [-] Light Controls")
	assert.Contains(t, joined, "|   Intensity")
	assert.Contains(t, joined, "[#####-----] 0.50")
	assert.False(t, panel.Dirty)

	f.Open = false
	canvas.lines = nil
	panel.Draw(canvas)
	joined = strings.Join(canvas.lines, "\n")
	assert.Contains(t, joined, "| [+] Light Controls")
	assert.NotContains(t, joined, "Intensity")

	panel.Hidden = true
	canvas.lines = nil
	panel.Draw(canvas)
	assert.Empty(t, canvas.lines)
}

func TestPanel_HandleClick(t *testing.T) {
	panel := NewPanel("p")
	f := panel.AddFolder("f")
	f.Open = true
	v := float32(0)
	s := f.AddSlider("s", &v, 0, 10, TagDynamic)

	canvas := &gridCanvas{}
	panel.Layout(canvas)
	require.Len(t, panel.rows, 2)
	row := panel.rows[1]
	require.Same(t, s, row.control)

	// click at the end of the value column
	assert.True(t, panel.HandleClick(row.valueEnd, row.y+1))
	assert.Equal(t, float32(10), v)

	// label column is consumed but does nothing
	assert.True(t, panel.HandleClick(panel.Position[0]+1, row.y+1))
	assert.Equal(t, float32(10), v)

	// folder header toggles
	header := panel.rows[0]
	assert.True(t, panel.HandleClick(panel.Position[0]+1, header.y+1))
	assert.False(t, f.Open)

	assert.False(t, panel.HandleClick(2000, 2000))
}

func TestUiInputSystem_CapturesPointer(t *testing.T) {
	panel := NewPanel("p")
	f := panel.AddFolder("f")
	f.Open = true
	panel.Layout(&gridCanvas{})

	input := &Input{}
	input.MouseX = float64(panel.Position[0] + 1)
	input.MouseY = float64(panel.rows[0].y + 1)
	input.JustPressed[MouseButtonLeft] = true

	uiInputSystem(input, panel)
	assert.True(t, input.PointerCaptured)
	assert.False(t, f.Open)

	input.JustPressed[MouseButtonLeft] = false
	input.JustReleased[MouseButtonLeft] = true
	uiInputSystem(input, panel)
	assert.False(t, input.PointerCaptured)

	// presses away from the panel are left to the camera
	input.JustReleased[MouseButtonLeft] = false
	input.JustPressed[MouseButtonLeft] = true
	input.MouseX, input.MouseY = 3000, 3000
	uiInputSystem(input, panel)
	assert.False(t, input.PointerCaptured)
}
