package raster

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

var (
	white = mgl32.Vec3{1, 1, 1}
	matte = Material{Color: white}
	up    = mgl32.Vec3{0, 1, 0}
	eye   = mgl32.Vec3{0, 10, 0}
)

func TestShade_NoLightsIsBlack(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{}, Shade(mgl32.Vec3{}, up, eye, matte, nil))
}

func TestShade_Ambient(t *testing.T) {
	c := Shade(mgl32.Vec3{}, up, eye, matte, []Light{{Kind: Ambient, Color: white, Intensity: 0.5}})
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, c)
}

func TestShade_HemisphereMixesByNormal(t *testing.T) {
	sky := mgl32.Vec3{0, 0, 1}
	ground := mgl32.Vec3{1, 0, 0}
	l := []Light{{Kind: Hemisphere, Color: sky, Ground: ground, Intensity: 1, Position: mgl32.Vec3{0, 10, 0}}}

	top := Shade(mgl32.Vec3{}, up, eye, matte, l)
	assert.InDelta(t, 1, top.Z(), 1e-6)
	assert.InDelta(t, 0, top.X(), 1e-6)

	side := Shade(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{10, 0, 0}, matte, l)
	assert.InDelta(t, 0.5, side.X(), 1e-6)
	assert.InDelta(t, 0.5, side.Z(), 1e-6)
}

func TestShade_DirectionalLambert(t *testing.T) {
	l := []Light{{Kind: Directional, Color: white, Intensity: 1, Direction: mgl32.Vec3{0, -1, 0}}}

	lit := Shade(mgl32.Vec3{}, up, eye, matte, l)
	assert.InDelta(t, 1, lit.X(), 1e-6)

	// facing away
	back := Shade(mgl32.Vec3{}, mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, -10, 0}, matte, l)
	assert.Equal(t, mgl32.Vec3{}, back)

	// double sided surfaces flip toward the viewer
	two := matte
	two.DoubleSided = true
	flipped := Shade(mgl32.Vec3{}, mgl32.Vec3{0, -1, 0}, eye, two, l)
	assert.InDelta(t, 1, flipped.X(), 1e-6)
}

func TestShade_Specular(t *testing.T) {
	l := []Light{{Kind: Directional, Color: white, Intensity: 1, Direction: mgl32.Vec3{0, -1, 0}}}
	shiny := Material{Color: white, Specular: 0.5, Shininess: 30}

	c := Shade(mgl32.Vec3{}, up, eye, shiny, l)
	assert.InDelta(t, 1.5, c.X(), 1e-5)
}

func TestShade_PointFalloff(t *testing.T) {
	light := Light{Kind: Point, Color: white, Intensity: 1, Position: mgl32.Vec3{0, 2, 0}, Decay: 2}

	near := Shade(mgl32.Vec3{}, up, eye, matte, []Light{light})
	assert.InDelta(t, 0.25, near.X(), 1e-6)

	light.Position = mgl32.Vec3{0, 4, 0}
	far := Shade(mgl32.Vec3{}, up, eye, matte, []Light{light})
	assert.InDelta(t, 1.0/16, far.X(), 1e-6)

	light.Distance = 3
	cut := Shade(mgl32.Vec3{}, up, eye, matte, []Light{light})
	assert.Equal(t, mgl32.Vec3{}, cut)
}

func TestShade_SpotCone(t *testing.T) {
	light := Light{
		Kind:      Spot,
		Color:     white,
		Intensity: 1,
		Position:  mgl32.Vec3{0, 1, 0},
		Direction: mgl32.Vec3{0, -1, 0},
		Angle:     math.Pi / 6,
		Decay:     0,
	}

	inside := Shade(mgl32.Vec3{}, up, eye, matte, []Light{light})
	assert.InDelta(t, 1, inside.X(), 1e-6)

	outside := Shade(mgl32.Vec3{2, 0, 0}, up, eye, matte, []Light{light})
	assert.Equal(t, mgl32.Vec3{}, outside)

	light.Penumbra = 1
	soft := Shade(mgl32.Vec3{0.3, 0, 0}, up, eye, matte, []Light{light})
	assert.Greater(t, soft.X(), float32(0))
	hard := light
	hard.Penumbra = 0
	sharp := Shade(mgl32.Vec3{0.3, 0, 0}, up, eye, matte, []Light{hard})
	assert.Greater(t, sharp.X(), soft.X())
}

func TestSmoothstep(t *testing.T) {
	assert.Equal(t, float32(0), smoothstep(0, 1, -1))
	assert.Equal(t, float32(1), smoothstep(0, 1, 2))
	assert.Equal(t, float32(0.5), smoothstep(0, 1, 0.5))
	assert.Equal(t, float32(1), smoothstep(0.5, 0.5, 0.5))
	assert.Equal(t, float32(0), smoothstep(0.5, 0.5, 0.4))
}

func TestToneMap(t *testing.T) {
	clamped := ToneMap(mgl32.Vec3{-1, 0, 5})
	assert.Zero(t, clamped[0])
	assert.Zero(t, clamped[1])
	assert.InDelta(t, 1, clamped[2], 1e-6)
	mid := ToneMap(mgl32.Vec3{0.5, 0.5, 0.5})
	assert.InDelta(t, 0.7354, mid[0], 1e-3)
}
