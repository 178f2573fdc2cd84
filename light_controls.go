package lightlab

import (
	"math"
	"slices"
)

// ControlSpec describes one tuning control exposed for a light kind.
// Exactly one of Float and Color is set.
type ControlSpec struct {
	Label    string
	Min, Max float32
	Float    func(*LightComponent) *float32
	Color    func(*LightComponent) *Color
}

func (s ControlSpec) IsColor() bool { return s.Color != nil }

var (
	intensitySpec = ControlSpec{Label: "Intensity", Min: 0, Max: 2,
		Float: func(l *LightComponent) *float32 { return &l.Intensity }}
	positionXSpec = ControlSpec{Label: "Position X", Min: -20, Max: 20,
		Float: func(l *LightComponent) *float32 { return &l.Position[0] }}
	positionYSpec = ControlSpec{Label: "Position Y", Min: -20, Max: 20,
		Float: func(l *LightComponent) *float32 { return &l.Position[1] }}
	positionZSpec = ControlSpec{Label: "Position Z", Min: -20, Max: 20,
		Float: func(l *LightComponent) *float32 { return &l.Position[2] }}
	distanceSpec = ControlSpec{Label: "Distance", Min: 0, Max: 100,
		Float: func(l *LightComponent) *float32 { return &l.Distance }}
	decaySpec = ControlSpec{Label: "Decay", Min: 0, Max: 10,
		Float: func(l *LightComponent) *float32 { return &l.Decay }}
	angleSpec = ControlSpec{Label: "Angle", Min: 0, Max: math.Pi / 2,
		Float: func(l *LightComponent) *float32 { return &l.Angle }}
	penumbraSpec = ControlSpec{Label: "Penumbra", Min: 0, Max: 1,
		Float: func(l *LightComponent) *float32 { return &l.Penumbra }}
	skyColorSpec = ControlSpec{Label: "Sky Color",
		Color: func(l *LightComponent) *Color { return &l.Color }}
	groundColorSpec = ControlSpec{Label: "Ground Color",
		Color: func(l *LightComponent) *Color { return &l.Ground }}
)

var lightControlTable = map[LightKind][]ControlSpec{
	LightAmbient:     {intensitySpec},
	LightDirectional: {intensitySpec, positionXSpec, positionYSpec, positionZSpec},
	LightPoint:       {intensitySpec, positionXSpec, positionYSpec, positionZSpec, distanceSpec, decaySpec},
	LightSpot: {intensitySpec, positionXSpec, positionYSpec, positionZSpec,
		angleSpec, penumbraSpec, distanceSpec, decaySpec},
	LightHemisphere: {intensitySpec, skyColorSpec, groundColorSpec},
}

// ControlSpecs returns the tuning controls for kind, in panel order.
func ControlSpecs(kind LightKind) []ControlSpec {
	return slices.Clone(lightControlTable[kind])
}

// Build creates the control bound to light's attribute.
func (s ControlSpec) Build(light *LightComponent) Control {
	if s.Color != nil {
		return NewBoundColorPicker(s.Label, s.Color(light))
	}
	return NewSlider(s.Label, s.Float(light), s.Min, s.Max)
}
