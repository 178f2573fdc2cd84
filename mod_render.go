package lightlab

import (
	"fmt"
	"image/color"

	"github.com/gekko3d/lightlab/present"
	"github.com/gekko3d/lightlab/raster"
)

// Renderer owns the CPU frame and, when a window exists, the presenter.
type Renderer struct {
	Frame      *raster.Frame
	Text       *raster.TextRenderer
	Background color.RGBA

	presenter *present.Presenter
	lights    []raster.Light

	// Pixels is how many mesh pixels the last frame wrote.
	Pixels int
}

func NewRenderer(width, height int, text *raster.TextRenderer) *Renderer {
	if text == nil {
		text = raster.NewDefaultTextRenderer()
	}
	return &Renderer{
		Frame:      raster.NewFrame(width, height),
		Text:       text,
		Background: color.RGBA{0, 0, 0, 255},
	}
}

// Resize reallocates the frame and reconfigures the presenter.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.Frame.Resize(width, height)
	r.presenter.Resize(width, height)
}

func rasterLight(l *LightComponent) raster.Light {
	out := raster.Light{
		Color:     l.Color.Vec3(),
		Ground:    l.Ground.Vec3(),
		Intensity: l.Intensity,
		Position:  l.Position,
		Direction: l.Direction(),
		Distance:  l.Distance,
		Decay:     l.Decay,
		Angle:     l.Angle,
		Penumbra:  l.Penumbra,
	}
	switch l.Kind {
	case LightAmbient:
		out.Kind = raster.Ambient
	case LightDirectional:
		out.Kind = raster.Directional
	case LightPoint:
		out.Kind = raster.Point
	case LightSpot:
		out.Kind = raster.Spot
	case LightHemisphere:
		out.Kind = raster.Hemisphere
	}
	return out
}

func rasterMaterial(m *MaterialComponent) raster.Material {
	return raster.Material{
		Color:       m.Color.Vec3(),
		Specular:    m.Specular,
		Shininess:   m.Shininess,
		DoubleSided: m.DoubleSided,
	}
}

// RenderScene clears the frame and draws every mesh entity lit by the
// visible lights, seen from the first camera.
func (r *Renderer) RenderScene(cmd *Commands, assets *AssetServer, lights LightSet) error {
	r.Frame.Clear(r.Background)
	r.Pixels = 0

	_, cam, ok := MakeQuery1[CameraComponent](cmd).First()
	if !ok {
		return fmt.Errorf("no camera in scene")
	}

	r.lights = r.lights[:0]
	for _, kind := range lights.Visible() {
		r.lights = append(r.lights, rasterLight(lights[kind]))
	}
	scene := raster.Scene{
		ViewProj: cam.ViewProjection(),
		Eye:      cam.Position,
		Lights:   r.lights,
	}

	var missing []AssetId
	MakeQuery3[TransformComponent, MeshComponent, MaterialComponent](cmd).Map(
		func(eid EntityId, tr *TransformComponent, mc *MeshComponent, mat *MaterialComponent) bool {
			mesh, ok := assets.Mesh(mc.Mesh)
			if !ok {
				missing = append(missing, mc.Mesh)
				return true
			}
			r.Pixels += r.Frame.Draw(raster.DrawCall{
				Mesh: raster.Mesh{
					Positions: mesh.Positions,
					Normals:   mesh.Normals,
					Indices:   mesh.Indices,
				},
				Model:    tr.Model(),
				Material: rasterMaterial(mat),
			}, &scene)
			return true
		})
	if len(missing) > 0 {
		return fmt.Errorf("meshes not in asset server: %v", missing)
	}
	return nil
}

// DrawPanel overlays the panel on the frame.
func (r *Renderer) DrawPanel(panel *Panel) {
	r.Text.Bind(r.Frame)
	panel.Draw(r.Text)
}

type RenderModule struct {
	// Headless renders without a window at Width x Height.
	Headless bool
	Width    int
	Height   int
	FontPath string
	FontSize float64
}

func (m RenderModule) Install(app *App, cmd *Commands) {
	text := raster.NewDefaultTextRenderer()
	if m.FontPath != "" {
		size := m.FontSize
		if size <= 0 {
			size = 16
		}
		t, err := raster.NewTextRenderer(m.FontPath, size)
		if err != nil {
			app.Logger().Warnf("font %s: %v; using built-in face", m.FontPath, err)
		} else {
			text = t
		}
	}

	w, h := m.Width, m.Height
	var presenter *present.Presenter
	if !m.Headless {
		ws, ok := Resource[WindowState](app)
		if !ok {
			panic("RenderModule requires PlatformWindowModule unless headless")
		}
		w, h = ws.FramebufferSize()
		var err error
		presenter, err = present.New(ws.Glfw())
		if err != nil {
			app.Logger().Errorf("presenter: %v", err)
			panic(err)
		}
		app.Logger().Infof("Presenting %dx%d through %v", w, h, presenter.Config.Format)
	} else {
		// first frame fits the camera to the offscreen size
		cmd.AddResources(&ResizeEvent{Pending: true, Width: w, Height: h})
	}

	r := NewRenderer(w, h, text)
	r.presenter = presenter
	cmd.AddResources(r)
	app.UseSystem(System(renderResizeSystem).InStage(PreRender))
	app.UseSystem(System(renderSystem).InStage(Render))
	if presenter != nil {
		app.UseSystem(System(presentSystem).InStage(PostRender))
	}
}

func renderResizeSystem(resize *ResizeEvent, r *Renderer, cmd *Commands) {
	if !resize.Pending {
		return
	}
	resize.Pending = false
	r.Resize(resize.Width, resize.Height)
	MakeQuery1[CameraComponent](cmd).Map(func(eid EntityId, cam *CameraComponent) bool {
		cam.Resize(resize.Width, resize.Height)
		return true
	})
	cmd.Logger().Debugf("Resized to %dx%d", resize.Width, resize.Height)
}

func renderSystem(r *Renderer, assets *AssetServer, scene *SceneLights, panel *Panel, profiler *Profiler, cmd *Commands) {
	profiler.BeginScope("Raster")
	if err := r.RenderScene(cmd, assets, scene.Lights); err != nil {
		cmd.Logger().Errorf("render: %v", err)
	}
	profiler.EndScope("Raster")
	profiler.SetCount("Pixels", r.Pixels)
	profiler.SetCount("Lights", len(r.lights))

	profiler.BeginScope("Panel")
	r.DrawPanel(panel)
	profiler.EndScope("Panel")
}

func presentSystem(r *Renderer, profiler *Profiler, cmd *Commands) {
	profiler.BeginScope("Present")
	defer profiler.EndScope("Present")
	if err := r.presenter.Present(r.Frame.Image); err != nil {
		cmd.Logger().Errorf("present: %v", err)
	}
}

// Release frees the presenter, if any.
func (r *Renderer) Release() {
	r.presenter.Release()
	r.presenter = nil
}
