package lightlab

import (
	"github.com/go-gl/mathgl/mgl32"
)

type TransformComponent struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform(position mgl32.Vec3) TransformComponent {
	return TransformComponent{
		Position: position,
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func (t *TransformComponent) Model() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(t.Rotation.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z()))
}

// MeshComponent points a renderable entity at a mesh asset.
type MeshComponent struct {
	Mesh AssetId
}

// MaterialComponent is a Blinn-Phong surface.
type MaterialComponent struct {
	Color       Color
	Shininess   float32
	Specular    float32
	DoubleSided bool
}

func NewStandardMaterial(color Color) MaterialComponent {
	return MaterialComponent{Color: color, Shininess: 30, Specular: 0.25}
}

// ShadowComponent records shadow participation. The rasterizer does not
// draw shadows; the flags are kept with the scene description.
type ShadowComponent struct {
	Cast    bool
	Receive bool
}

// NameComponent labels an entity for logs.
type NameComponent struct {
	Name string
}
