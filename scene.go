package lightlab

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SceneDef defines the initial state of a scene.
type SceneDef struct {
	Meshes []MeshDef
	Lights []LightComponent
	Camera CameraDef
}

// MeshDef defines a procedural mesh instantiation.
type MeshDef struct {
	Name      string
	Shape     string    // "plane" or "sphere"
	Params    []float32 // plane: [width, height]; sphere: [radius, widthSegments, heightSegments]
	Transform TransformComponent
	Material  MaterialComponent
	Shadow    ShadowComponent
}

type CameraDef struct {
	Fov      float32
	Near     float32
	Far      float32
	Position mgl32.Vec3
	Target   mgl32.Vec3
}

// DefaultSceneDef is the demo scene: a grey floor, a white ball and one
// light of each kind.
func DefaultSceneDef() SceneDef {
	floor := NewTransform(mgl32.Vec3{})
	floor.Rotation = mgl32.QuatRotate(-math.Pi/2, mgl32.Vec3{1, 0, 0})
	floorMat := NewStandardMaterial(ColorHex(0x808080))
	floorMat.DoubleSided = true

	hemi := NewHemisphereLight(ColorHex(0xaaaaaa), ColorHex(0x000000), 0.5)
	hemi.Position = mgl32.Vec3{0, 10, 0}

	dir := NewDirectionalLight(ColorHex(0xffffff), 0.5, mgl32.Vec3{-5, 10, 5})
	dir.CastShadow = true
	point := NewPointLight(ColorHex(0xffffff), 1, 50, mgl32.Vec3{5, 10, 5})
	point.CastShadow = true
	spot := NewSpotLight(ColorHex(0xffffff), 1, mgl32.Vec3{0, 10, 0}, math.Pi/6)
	spot.CastShadow = true

	return SceneDef{
		Meshes: []MeshDef{
			{
				Name:      "plane",
				Shape:     "plane",
				Params:    []float32{20, 20},
				Transform: floor,
				Material:  floorMat,
				Shadow:    ShadowComponent{Receive: true},
			},
			{
				Name:      "sphere",
				Shape:     "sphere",
				Params:    []float32{1, 32, 32},
				Transform: NewTransform(mgl32.Vec3{0, 1, 0}),
				Material:  NewStandardMaterial(ColorHex(0xffffff)),
				Shadow:    ShadowComponent{Cast: true},
			},
		},
		Lights: []LightComponent{
			NewAmbientLight(ColorHex(0x404040), 0.5),
			dir,
			point,
			spot,
			hemi,
		},
		Camera: CameraDef{Fov: 75, Near: 0.1, Far: 1000, Position: mgl32.Vec3{0, 5, 10}},
	}
}

// SceneLights indexes the scene's light components by kind. The pointers
// are the components stored on the light entities.
type SceneLights struct {
	Lights LightSet
}

// LoadScene iterates through the SceneDef and spawns entities.
func LoadScene(cmd *Commands, assets *AssetServer, scene *SceneDef, orbit OrbitControls, aspect float32) (*SceneLights, error) {
	for _, def := range scene.Meshes {
		if err := spawnMesh(cmd, assets, def); err != nil {
			return nil, err
		}
	}

	lights := &SceneLights{Lights: make(LightSet, len(scene.Lights))}
	for i := range scene.Lights {
		light := scene.Lights[i]
		if _, dup := lights.Lights[light.Kind]; dup {
			return nil, fmt.Errorf("scene has two %s lights", light.Kind)
		}
		lights.Lights[light.Kind] = spawnLight(cmd, light)
	}

	spawnCamera(cmd, scene.Camera, orbit, aspect)
	return lights, nil
}

func buildMesh(def MeshDef) (*MeshAsset, error) {
	param := func(i int, fallback float32) float32 {
		if i < len(def.Params) {
			return def.Params[i]
		}
		return fallback
	}
	switch def.Shape {
	case "plane":
		return NewPlaneGeometry(param(0, 1), param(1, 1)), nil
	case "sphere":
		return NewSphereGeometry(param(0, 1), int(param(1, 32)), int(param(2, 16))), nil
	}
	return nil, fmt.Errorf("mesh %q: unknown shape %q", def.Name, def.Shape)
}

func spawnMesh(cmd *Commands, assets *AssetServer, def MeshDef) error {
	mesh, err := buildMesh(def)
	if err != nil {
		return err
	}
	id, err := assets.CreateMesh(mesh)
	if err != nil {
		return fmt.Errorf("mesh %q: %w", def.Name, err)
	}

	transform := def.Transform
	material := def.Material
	shadow := def.Shadow
	cmd.AddEntity(
		&NameComponent{Name: def.Name},
		&transform,
		&MeshComponent{Mesh: id},
		&material,
		&shadow,
	)
	return nil
}

func spawnLight(cmd *Commands, light LightComponent) *LightComponent {
	comp := &light
	cmd.AddEntity(
		&NameComponent{Name: light.Kind.String() + " light"},
		comp,
	)
	return comp
}

func spawnCamera(cmd *Commands, def CameraDef, orbit OrbitControls, aspect float32) {
	cam := NewPerspectiveCamera(def.Fov, aspect, def.Near, def.Far)
	cam.Position = def.Position
	cam.Target = def.Target
	orbit.Target = def.Target
	cmd.AddEntity(
		&NameComponent{Name: "camera"},
		&cam,
		&orbit,
	)
}

// SceneModule spawns the scene and publishes its lights. AssetServerModule
// must be installed first.
type SceneModule struct {
	Def   SceneDef
	Orbit OrbitControls
}

func (m SceneModule) Install(app *App, cmd *Commands) {
	assets, ok := Resource[AssetServer](app)
	if !ok {
		panic("SceneModule requires AssetServerModule")
	}
	def := m.Def
	if len(def.Meshes) == 0 && len(def.Lights) == 0 {
		def = DefaultSceneDef()
	}
	orbit := m.Orbit
	if orbit.MaxDistance == 0 {
		orbit = NewOrbitControls(def.Camera.Target)
	}

	aspect := float32(16) / 9
	if ws, ok := Resource[WindowState](app); ok {
		if w, h := ws.FramebufferSize(); w > 0 && h > 0 {
			aspect = float32(w) / float32(h)
		}
	}

	lights, err := LoadScene(cmd, assets, &def, orbit, aspect)
	if err != nil {
		panic(fmt.Sprintf("load scene: %v", err))
	}
	cmd.AddResources(lights)
	app.Logger().Infof("Scene: %d meshes, lights %v", len(def.Meshes), lights.Lights.Visible())
}
