package raster

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is an indexed triangle list with per-vertex normals in model space.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint32
}

// DrawCall is one mesh instance with its placement and surface.
type DrawCall struct {
	Mesh     Mesh
	Model    mgl32.Mat4
	Material Material
}

// Scene is everything one frame needs besides the draw calls.
type Scene struct {
	ViewProj mgl32.Mat4
	Eye      mgl32.Vec3
	Lights   []Light
}

// vertex is a clip-space position carrying world attributes.
type vertex struct {
	clip   mgl32.Vec4
	world  mgl32.Vec3
	normal mgl32.Vec3
}

func lerpVertex(a, b vertex, t float32) vertex {
	return vertex{
		clip:   a.clip.Add(b.clip.Sub(a.clip).Mul(t)),
		world:  a.world.Add(b.world.Sub(a.world).Mul(t)),
		normal: a.normal.Add(b.normal.Sub(a.normal).Mul(t)),
	}
}

const nearEpsilon = 1e-5

// clipNear keeps the part of poly in front of the near plane (z >= -w).
func clipNear(poly []vertex, out []vertex) []vertex {
	out = out[:0]
	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		da := a.clip.Z() + a.clip.W()
		db := b.clip.Z() + b.clip.W()
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			out = append(out, lerpVertex(a, b, da/(da-db)))
		}
	}
	return out
}

// Draw rasterizes call into f and returns the number of pixels written.
func (f *Frame) Draw(call DrawCall, scene *Scene) int {
	mesh := &call.Mesh
	if len(mesh.Positions) == 0 || len(mesh.Indices) < 3 {
		return 0
	}
	normalMat := call.Model.Mat3().Inv().Transpose()

	verts := make([]vertex, len(mesh.Positions))
	for i, p := range mesh.Positions {
		w := call.Model.Mul4x1(p.Vec4(1))
		var n mgl32.Vec3
		if i < len(mesh.Normals) {
			n = normalMat.Mul3x1(mesh.Normals[i])
		}
		verts[i] = vertex{
			clip:   scene.ViewProj.Mul4x1(w),
			world:  w.Vec3(),
			normal: n,
		}
	}

	written := 0
	poly := make([]vertex, 0, 4)
	clipped := make([]vertex, 0, 8)
	for t := 0; t+2 < len(mesh.Indices); t += 3 {
		poly = append(poly[:0], verts[mesh.Indices[t]], verts[mesh.Indices[t+1]], verts[mesh.Indices[t+2]])
		clipped = clipNear(poly, clipped)
		for k := 1; k+1 < len(clipped); k++ {
			written += f.triangle(clipped[0], clipped[k], clipped[k+1], call.Material, scene)
		}
	}
	return written
}

// screenVertex is a vertex after the perspective divide.
type screenVertex struct {
	x, y, z float32
	invW    float32
	v       *vertex
}

func (f *Frame) toScreen(v *vertex) screenVertex {
	w := v.clip.W()
	if w < nearEpsilon {
		w = nearEpsilon
	}
	inv := 1 / w
	return screenVertex{
		x:    (v.clip.X()*inv*0.5 + 0.5) * float32(f.Width()),
		y:    (0.5 - v.clip.Y()*inv*0.5) * float32(f.Height()),
		z:    v.clip.Z()*inv*0.5 + 0.5,
		invW: inv,
		v:    v,
	}
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

func (f *Frame) triangle(a, b, c vertex, mat Material, scene *Scene) int {
	s0, s1, s2 := f.toScreen(&a), f.toScreen(&b), f.toScreen(&c)
	area := edge(s0.x, s0.y, s1.x, s1.y, s2.x, s2.y)
	if math32.Abs(area) < 1e-8 {
		return 0
	}

	minX := max(int(math32.Floor(min(s0.x, s1.x, s2.x))), 0)
	maxX := min(int(math32.Ceil(max(s0.x, s1.x, s2.x))), f.Width()-1)
	minY := max(int(math32.Floor(min(s0.y, s1.y, s2.y))), 0)
	maxY := min(int(math32.Ceil(max(s0.y, s1.y, s2.y))), f.Height()-1)
	if minX > maxX || minY > maxY {
		return 0
	}

	written := 0
	invArea := 1 / area
	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(s1.x, s1.y, s2.x, s2.y, px, py) * invArea
			w1 := edge(s2.x, s2.y, s0.x, s0.y, px, py) * invArea
			w2 := edge(s0.x, s0.y, s1.x, s1.y, px, py) * invArea
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*s0.z + w1*s1.z + w2*s2.z
			if z < 0 || z > 1 || !f.depthTest(x, y, z) {
				continue
			}

			// perspective-correct weights
			p0, p1, p2 := w0*s0.invW, w1*s1.invW, w2*s2.invW
			norm := 1 / (p0 + p1 + p2)
			p0, p1, p2 = p0*norm, p1*norm, p2*norm

			world := a.world.Mul(p0).Add(b.world.Mul(p1)).Add(c.world.Mul(p2))
			normal := a.normal.Mul(p0).Add(b.normal.Mul(p1)).Add(c.normal.Mul(p2))
			rgb := ToneMap(Shade(world, normal, scene.Eye, mat, scene.Lights))
			f.setPixel(x, y, color.RGBA{toByte(rgb[0]), toByte(rgb[1]), toByte(rgb[2]), 255})
			written++
		}
	}
	return written
}
