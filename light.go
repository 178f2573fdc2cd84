package lightlab

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

type LightKind uint32

const (
	LightAmbient LightKind = iota
	LightDirectional
	LightPoint
	LightSpot
	LightHemisphere
)

// LightKinds lists every kind in panel order.
var LightKinds = []LightKind{LightAmbient, LightDirectional, LightPoint, LightSpot, LightHemisphere}

func (k LightKind) String() string {
	switch k {
	case LightAmbient:
		return "Ambient"
	case LightDirectional:
		return "Directional"
	case LightPoint:
		return "Point"
	case LightSpot:
		return "Spot"
	case LightHemisphere:
		return "Hemisphere"
	}
	return fmt.Sprintf("LightKind(%d)", uint32(k))
}

// Color is linear RGB in 0..1.
type Color [3]float32

// ColorHex converts 0xRRGGBB.
func ColorHex(hex uint32) Color {
	return Color{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

// ParseColor accepts "#rrggbb", "rrggbb" or "0xrrggbb".
func ParseColor(s string) (Color, error) {
	t := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "#"), "0x")
	if len(t) != 6 {
		return Color{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(t, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return ColorHex(uint32(v)), nil
}

func (c Color) Hex() string {
	to8 := func(f float32) uint32 {
		return uint32(math.Round(float64(mgl32.Clamp(f, 0, 1)) * 255))
	}
	return fmt.Sprintf("#%02x%02x%02x", to8(c[0]), to8(c[1]), to8(c[2]))
}

func (c Color) Vec3() mgl32.Vec3 { return mgl32.Vec3(c) }

// LightComponent is the ECS component for lights. Attributes that a kind
// does not use are left at zero.
type LightComponent struct {
	Kind       LightKind
	Visible    bool
	Color      Color // sky color for hemisphere lights
	Intensity  float32
	Position   mgl32.Vec3
	Distance   float32 // 0 means unlimited range
	Decay      float32
	Angle      float32 // cone half-angle in radians
	Penumbra   float32
	Ground     Color
	CastShadow bool
}

// Direction is the unit vector from the light toward its target, the origin.
func (l *LightComponent) Direction() mgl32.Vec3 {
	d := l.Position.Mul(-1)
	if d.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return d.Normalize()
}

func NewAmbientLight(color Color, intensity float32) LightComponent {
	return LightComponent{Kind: LightAmbient, Visible: true, Color: color, Intensity: intensity}
}

func NewDirectionalLight(color Color, intensity float32, position mgl32.Vec3) LightComponent {
	return LightComponent{
		Kind:      LightDirectional,
		Visible:   true,
		Color:     color,
		Intensity: intensity,
		Position:  position,
	}
}

func NewPointLight(color Color, intensity, distance float32, position mgl32.Vec3) LightComponent {
	return LightComponent{
		Kind:      LightPoint,
		Visible:   true,
		Color:     color,
		Intensity: intensity,
		Position:  position,
		Distance:  distance,
		Decay:     2,
	}
}

func NewSpotLight(color Color, intensity float32, position mgl32.Vec3, angle float32) LightComponent {
	return LightComponent{
		Kind:      LightSpot,
		Visible:   true,
		Color:     color,
		Intensity: intensity,
		Position:  position,
		Angle:     angle,
		Decay:     2,
	}
}

func NewHemisphereLight(sky, ground Color, intensity float32) LightComponent {
	return LightComponent{
		Kind:      LightHemisphere,
		Visible:   true,
		Color:     sky,
		Ground:    ground,
		Intensity: intensity,
		Position:  mgl32.Vec3{0, 1, 0},
	}
}

// LightSet holds the five scene lights by kind.
type LightSet map[LightKind]*LightComponent

// Visible returns the kinds whose light is on, in panel order.
func (s LightSet) Visible() []LightKind {
	var res []LightKind
	for _, k := range LightKinds {
		if l, ok := s[k]; ok && l.Visible {
			res = append(res, k)
		}
	}
	return res
}
