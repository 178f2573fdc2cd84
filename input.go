package lightlab

const (
	Key0 int = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	KeyH
	KeyR
	KeyP
	KeyEscape
	KeySpace
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

// Input is the per-frame snapshot of keyboard, pointer and window state.
type Input struct {
	Pressed [256]bool

	JustPressed  [256]bool
	JustReleased [256]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	ScrollY                  float64

	// PointerCaptured is set while a press that started on the panel is held.
	PointerCaptured bool

	WindowWidth, WindowHeight int
	FramebufferWidth          int
	FramebufferHeight         int
}

// PixelRatio converts window coordinates to framebuffer pixels.
func (in *Input) PixelRatio() float32 {
	if in.WindowWidth <= 0 || in.FramebufferWidth <= 0 {
		return 1
	}
	return float32(in.FramebufferWidth) / float32(in.WindowWidth)
}

// press records a button or key state transition.
func (in *Input) press(key int, down bool) {
	in.JustPressed[key] = false
	in.JustReleased[key] = false
	if down {
		if !in.Pressed[key] {
			in.JustPressed[key] = true
		}
		in.Pressed[key] = true
	} else {
		if in.Pressed[key] {
			in.JustReleased[key] = true
		}
		in.Pressed[key] = false
	}
}

// moveMouse updates the pointer position and the per-frame delta.
func (in *Input) moveMouse(x, y float64) {
	in.MouseDeltaX = x - in.MouseX
	in.MouseDeltaY = y - in.MouseY
	in.MouseX = x
	in.MouseY = y
}
