package lightlab

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
)

// HeadlessModule stands in for the window and input modules: it provides an
// idle Input, writes each rendered frame to OutDir as a PNG and quits after
// Frames frames. With Cycle set, frame i shows Selections[i % 6].
type HeadlessModule struct {
	Width  int
	Height int
	Frames int
	OutDir string
	Cycle  bool
}

type headlessState struct {
	frames  int
	outDir  string
	cycle   bool
	written int
}

func (m HeadlessModule) Install(app *App, cmd *Commands) {
	if m.OutDir != "" {
		if err := os.MkdirAll(m.OutDir, 0o755); err != nil {
			app.Logger().Errorf("headless output: %v", err)
			panic(err)
		}
	}
	cmd.AddResources(
		&Input{
			WindowWidth:       m.Width,
			WindowHeight:      m.Height,
			FramebufferWidth:  m.Width,
			FramebufferHeight: m.Height,
		},
		&headlessState{frames: max(m.Frames, 1), outDir: m.OutDir, cycle: m.Cycle},
	)
	app.UseSystem(System(headlessCycleSystem).InStage(PreUpdate))
	app.UseSystem(System(headlessCaptureSystem).InStage(PostRender))
	app.Logger().Infof("Headless: %d frames of %dx%d into %q", m.Frames, m.Width, m.Height, m.OutDir)
}

func headlessCycleSystem(state *headlessState, ls *LightSelector) {
	if !state.cycle {
		return
	}
	ls.Select(Selections[state.written%len(Selections)])
}

func headlessCaptureSystem(state *headlessState, r *Renderer, ls *LightSelector, cmd *Commands) {
	if state.outDir != "" {
		name := fmt.Sprintf("frame_%04d_%s.png", state.written, ls.Selection())
		if err := writePNG(filepath.Join(state.outDir, name), r); err != nil {
			cmd.Logger().Errorf("capture: %v", err)
			cmd.Quit()
			return
		}
		cmd.Logger().Debugf("Wrote %s (%d pixels)", name, r.Pixels)
	}
	state.written++
	if state.written >= state.frames {
		cmd.Quit()
	}
}

func writePNG(path string, r *Renderer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	if err := png.Encode(f, r.Frame.Image); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
