package lightlab

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCamera() CameraComponent {
	cam := NewPerspectiveCamera(75, 16.0/9, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 5, 10}
	return cam
}

func TestOrbitControls_UpdateKeepsRadius(t *testing.T) {
	cam := newTestCamera()
	orbit := NewOrbitControls(mgl32.Vec3{})
	radius := cam.Position.Len()

	orbit.Rotate(0.7, -0.2)
	orbit.Update(&cam)

	assert.InDelta(t, radius, cam.Position.Len(), 1e-4)
	assert.Equal(t, mgl32.Vec3{}, cam.Target)
	assert.NotEqual(t, mgl32.Vec3{0, 5, 10}, cam.Position)
}

func TestOrbitControls_ZoomClamped(t *testing.T) {
	cam := newTestCamera()
	orbit := NewOrbitControls(mgl32.Vec3{})
	orbit.MinDistance = 2
	orbit.MaxDistance = 20

	orbit.Zoom(1000)
	orbit.Update(&cam)
	assert.InDelta(t, 2, cam.Position.Len(), 1e-4)

	orbit.Zoom(-1000)
	orbit.Update(&cam)
	assert.InDelta(t, 20, cam.Position.Len(), 1e-4)
}

func TestOrbitControls_PolarAngleClamped(t *testing.T) {
	cam := newTestCamera()
	orbit := NewOrbitControls(mgl32.Vec3{})

	orbit.Rotate(0, -10)
	orbit.Update(&cam)

	// never flips over the pole
	assert.Greater(t, cam.Position.Y(), float32(0))
	horizontal := mgl32.Vec2{cam.Position.X(), cam.Position.Z()}.Len()
	assert.Greater(t, horizontal, float32(0))
	assert.InDelta(t, cam.Position.Len(), cam.Position.Y(), 1e-3)

	orbit.Rotate(0, 10)
	orbit.Update(&cam)
	assert.Less(t, cam.Position.Y(), float32(0))
	assert.InDelta(t, -cam.Position.Len(), cam.Position.Y(), 1e-3)
}

func TestOrbitControls_Damping(t *testing.T) {
	cam := newTestCamera()
	orbit := NewOrbitControls(mgl32.Vec3{})
	orbit.DampingFactor = 0.5

	orbit.Rotate(1, 0)
	orbit.Update(&cam)
	first := cam.Position

	orbit.Update(&cam)
	assert.NotEqual(t, first, cam.Position, "damped rotation keeps moving")
	assert.InDelta(t, 0.25, orbit.deltaTheta, 1e-6)
}

func TestOrbitControls_Reset(t *testing.T) {
	cam := newTestCamera()
	orbit := NewOrbitControls(mgl32.Vec3{})
	orbit.Update(&cam)

	orbit.Rotate(1, 0.3)
	orbit.Zoom(3)
	orbit.Update(&cam)
	orbit.Reset(&cam)
	assert.Equal(t, mgl32.Vec3{0, 5, 10}, cam.Position)
	assert.Equal(t, mgl32.Vec3{}, cam.Target)
}

func TestOrbitCameraControlSystem(t *testing.T) {
	app := NewApp()
	input := &Input{WindowHeight: 100}
	app.addResources(input)
	app.UseModules(OrbitCameraModule{})

	cam := newTestCamera()
	orbit := NewOrbitControls(mgl32.Vec3{})
	app.Commands().AddEntity(&cam, &orbit)
	app.FlushCommands()

	input.Pressed[MouseButtonLeft] = true
	input.MouseDeltaX = 10
	input.PointerCaptured = true
	app.Step()
	assert.InDelta(t, 0, cam.Position.X(), 1e-4, "captured pointer does not orbit")

	input.PointerCaptured = false
	app.Step()
	assert.NotZero(t, cam.Position.X())

	input.Pressed[MouseButtonLeft] = false
	input.ScrollY = 5
	before := cam.Position.Len()
	app.Step()
	assert.Less(t, cam.Position.Len(), before)
}

func TestCamera_Resize(t *testing.T) {
	cam := newTestCamera()

	cam.Resize(800, 400)
	assert.Equal(t, float32(2), cam.Aspect)

	cam.Resize(800, 400)
	assert.Equal(t, float32(2), cam.Aspect)

	cam.Resize(0, 400)
	assert.Equal(t, float32(2), cam.Aspect)

	proj := cam.Projection()
	require.NotEqual(t, mgl32.Mat4{}, proj)
	assert.InDelta(t, proj[5]/proj[0], 2, 1e-5)
}

func TestCamera_ViewProjectionLooksAtTarget(t *testing.T) {
	cam := newTestCamera()
	clip := cam.ViewProjection().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	ndc := clip.Vec3().Mul(1 / clip.W())

	assert.InDelta(t, 0, ndc.X(), 1e-5)
	assert.InDelta(t, 0, ndc.Y(), 1e-5)
	assert.True(t, ndc.Z() > -1 && ndc.Z() < 1)
}
