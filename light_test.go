package lightlab

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	for _, s := range []string{"#aaaaaa", "aaaaaa", "0xAAAAAA", "  #AaAaAa "} {
		c, err := ParseColor(s)
		require.NoError(t, err, s)
		assert.Equal(t, ColorHex(0xaaaaaa), c, s)
	}

	for _, s := range []string{"", "#fff", "#gggggg", "#1234567"} {
		_, err := ParseColor(s)
		assert.Error(t, err, s)
	}
}

func TestColor_Hex(t *testing.T) {
	assert.Equal(t, "#404040", ColorHex(0x404040).Hex())
	assert.Equal(t, "#ff0000", Color{2, -1, 0}.Hex())
}

func TestLightComponent_Direction(t *testing.T) {
	l := NewDirectionalLight(ColorHex(0xffffff), 1, mgl32.Vec3{0, 10, 0})
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, l.Direction())

	l.Position = mgl32.Vec3{}
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, l.Direction())
}

func TestLightSet_Visible(t *testing.T) {
	set := newTestLights()
	assert.Equal(t, LightKinds, set.Visible())

	set[LightPoint].Visible = false
	set[LightAmbient].Visible = false
	assert.Equal(t, []LightKind{LightDirectional, LightSpot, LightHemisphere}, set.Visible())
}

func TestControlSpecs(t *testing.T) {
	counts := map[LightKind]int{
		LightAmbient:     1,
		LightDirectional: 4,
		LightPoint:       6,
		LightSpot:        8,
		LightHemisphere:  3,
	}
	for kind, n := range counts {
		specs := ControlSpecs(kind)
		assert.Len(t, specs, n, kind)
		assert.Equal(t, "Intensity", specs[0].Label, kind)
	}

	// callers get a copy
	specs := ControlSpecs(LightSpot)
	specs[0].Label = "changed"
	assert.Equal(t, "Intensity", ControlSpecs(LightSpot)[0].Label)

	angle := ControlSpecs(LightSpot)[4]
	assert.Equal(t, "Angle", angle.Label)
	assert.InDelta(t, 1.5707963, angle.Max, 1e-6)
}
