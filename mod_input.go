package lightlab

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

type InputModule struct{}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(System(inputSystem).InStage(Prelude))
	app.UseSystem(System(quitKeySystem).InStage(PreUpdate))
}

func quitKeySystem(input *Input, cmd *Commands) {
	if input.JustPressed[KeyEscape] {
		cmd.Logger().Infof("Escape pressed, quitting")
		cmd.Quit()
	}
}

func inputSystem(s *WindowState, input *Input, resize *ResizeEvent) {
	glfw.PollEvents()
	win := s.windowGlfw

	for key, glfwKey := range keyToGlfw {
		input.press(key, win.GetKey(glfwKey) == glfw.Press)
	}
	for btn, glfwBtn := range buttonToGlfw {
		input.press(btn, win.GetMouseButton(glfwBtn) == glfw.Press)
	}

	input.moveMouse(win.GetCursorPos())
	input.ScrollY = s.scrollY
	s.scrollY = 0

	input.WindowWidth, input.WindowHeight = win.GetSize()
	s.WindowWidth, s.WindowHeight = input.WindowWidth, input.WindowHeight
	input.FramebufferWidth, input.FramebufferHeight = s.fbWidth, s.fbHeight

	resize.Pending = s.resizePending
	resize.Width, resize.Height = s.fbWidth, s.fbHeight
	s.resizePending = false
}

var keyToGlfw = map[int]glfw.Key{
	Key0:      glfw.Key0,
	Key1:      glfw.Key1,
	Key2:      glfw.Key2,
	Key3:      glfw.Key3,
	Key4:      glfw.Key4,
	Key5:      glfw.Key5,
	KeyH:      glfw.KeyH,
	KeyR:      glfw.KeyR,
	KeyP:      glfw.KeyP,
	KeyEscape: glfw.KeyEscape,
	KeySpace:  glfw.KeySpace,
}

var buttonToGlfw = map[int]glfw.MouseButton{
	MouseButtonLeft:   glfw.MouseButtonLeft,
	MouseButtonRight:  glfw.MouseButtonRight,
	MouseButtonMiddle: glfw.MouseButtonMiddle,
}
