package lightlab

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState is the shared GLFW window. Callbacks only record events; the
// frame loop consumes them in order.
type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string

	scrollY       float64
	resizePending bool
	fbWidth       int
	fbHeight      int
}

// ResizeEvent carries the new framebuffer size for one frame.
type ResizeEvent struct {
	Pending bool
	Width   int
	Height  int
}

// PlatformWindowModule creates the window and the resize event resource.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "lightlab"
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[WindowState](app); ok {
		return
	}
	ws, err := createWindowState(m.Width, m.Height, m.Title)
	if err != nil {
		app.Logger().Errorf("window: %v", err)
		panic(err)
	}
	app.Logger().Infof("Created window (%dx%d) '%s'", m.Width, m.Height, m.Title)
	cmd.AddResources(ws, &ResizeEvent{})
	app.UseSystem(System(windowCloseSystem).InStage(Finale))
}

func createWindowState(width, height int, title string) (*WindowState, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // surface comes from wgpu, not OpenGL
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	ws := &WindowState{
		windowGlfw:   win,
		WindowWidth:  width,
		WindowHeight: height,
		windowTitle:  title,
	}
	ws.fbWidth, ws.fbHeight = win.GetFramebufferSize()

	win.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		ws.scrollY += yoff
	})
	win.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		ws.fbWidth, ws.fbHeight = width, height
		ws.resizePending = true
	})
	return ws, nil
}

func (ws *WindowState) Glfw() *glfw.Window {
	return ws.windowGlfw
}

func (ws *WindowState) FramebufferSize() (int, int) {
	return ws.fbWidth, ws.fbHeight
}

func (ws *WindowState) Destroy() {
	if ws.windowGlfw != nil {
		ws.windowGlfw.Destroy()
		ws.windowGlfw = nil
	}
	glfw.Terminate()
}

func windowCloseSystem(ws *WindowState, cmd *Commands) {
	if ws.windowGlfw.ShouldClose() {
		cmd.Quit()
	}
}
