package lightlab

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type OrbitCameraModule struct{}

func (m OrbitCameraModule) Install(app *App, cmd *Commands) {
	app.UseSystem(System(OrbitCameraControlSystem).InStage(Update))
}

// OrbitControls keeps a camera on a sphere around Target. Pointer drags
// change the azimuth (theta) and polar angle (phi); scrolling changes the
// radius.
type OrbitControls struct {
	Target        mgl32.Vec3
	RotateSpeed   float32
	ZoomSpeed     float32
	MinDistance   float32
	MaxDistance   float32
	DampingFactor float32 // 0 applies input immediately

	deltaTheta float32
	deltaPhi   float32
	zoomSteps  float32

	home    mgl32.Vec3
	hasHome bool
}

const orbitPolarEpsilon = 1e-3

func NewOrbitControls(target mgl32.Vec3) OrbitControls {
	return OrbitControls{
		Target:        target,
		RotateSpeed:   1,
		ZoomSpeed:     1,
		MinDistance:   1,
		MaxDistance:   200,
		DampingFactor: 0,
	}
}

// Rotate queues an azimuth and polar change in radians.
func (o *OrbitControls) Rotate(dTheta, dPhi float32) {
	o.deltaTheta += dTheta
	o.deltaPhi += dPhi
}

// Zoom queues scroll steps; positive steps move toward the target.
func (o *OrbitControls) Zoom(steps float32) {
	o.zoomSteps += steps
}

// Reset moves the camera back to where the first Update found it.
func (o *OrbitControls) Reset(cam *CameraComponent) {
	if o.hasHome {
		cam.Position = o.home
	}
	o.deltaTheta, o.deltaPhi, o.zoomSteps = 0, 0, 0
	cam.Target = o.Target
}

// Update applies queued input to cam. It must run once per frame.
func (o *OrbitControls) Update(cam *CameraComponent) {
	if !o.hasHome {
		o.home = cam.Position
		o.hasHome = true
	}

	offset := cam.Position.Sub(o.Target)
	radius := offset.Len()
	if radius == 0 {
		radius = o.MinDistance
		offset = mgl32.Vec3{0, 0, radius}
	}
	theta := float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	phi := float32(math.Acos(float64(mgl32.Clamp(offset.Y()/radius, -1, 1))))

	step := float32(1)
	if o.DampingFactor > 0 {
		step = o.DampingFactor
	}
	theta += o.deltaTheta * step
	phi += o.deltaPhi * step
	phi = mgl32.Clamp(phi, orbitPolarEpsilon, math.Pi-orbitPolarEpsilon)

	if o.zoomSteps != 0 {
		scale := float32(math.Pow(0.95, float64(o.zoomSteps*o.ZoomSpeed)))
		radius *= scale
		o.zoomSteps = 0
	}
	radius = mgl32.Clamp(radius, o.MinDistance, o.MaxDistance)

	sinPhi := float32(math.Sin(float64(phi)))
	offset = mgl32.Vec3{
		radius * sinPhi * float32(math.Sin(float64(theta))),
		radius * float32(math.Cos(float64(phi))),
		radius * sinPhi * float32(math.Cos(float64(theta))),
	}
	cam.Position = o.Target.Add(offset)
	cam.Target = o.Target
	cam.Up = mgl32.Vec3{0, 1, 0}

	if o.DampingFactor > 0 {
		o.deltaTheta *= 1 - o.DampingFactor
		o.deltaPhi *= 1 - o.DampingFactor
	} else {
		o.deltaTheta, o.deltaPhi = 0, 0
	}
}

func OrbitCameraControlSystem(input *Input, cmd *Commands) {
	MakeQuery2[CameraComponent, OrbitControls](cmd).Map(func(eid EntityId, cam *CameraComponent, orbit *OrbitControls) bool {
		if input.JustPressed[KeyR] {
			orbit.Reset(cam)
		}

		h := float32(input.WindowHeight)
		if h <= 0 {
			h = 1
		}
		if input.Pressed[MouseButtonLeft] && !input.PointerCaptured {
			k := 2 * math.Pi / h * orbit.RotateSpeed
			orbit.Rotate(-float32(input.MouseDeltaX)*k, -float32(input.MouseDeltaY)*k)
		}
		if input.ScrollY != 0 && !input.PointerCaptured {
			orbit.Zoom(float32(input.ScrollY))
		}

		orbit.Update(cam)
		return true
	})
}
