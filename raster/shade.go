package raster

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type LightKind int

const (
	Ambient LightKind = iota
	Directional
	Point
	Spot
	Hemisphere
)

// Light is one light as the shader sees it. Direction is the unit vector the
// light points along (directional and spot). For hemisphere lights Color is
// the sky color and Position the up direction.
type Light struct {
	Kind      LightKind
	Color     mgl32.Vec3
	Ground    mgl32.Vec3
	Intensity float32
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Distance  float32
	Decay     float32
	Angle     float32
	Penumbra  float32
}

// Material is a Blinn-Phong surface.
type Material struct {
	Color       mgl32.Vec3
	Specular    float32
	Shininess   float32
	DoubleSided bool
}

// Shade returns the linear radiance leaving point p with normal n toward eye.
func Shade(p, n, eye mgl32.Vec3, mat Material, lights []Light) mgl32.Vec3 {
	n = safeNormalize(n, mgl32.Vec3{0, 1, 0})
	v := safeNormalize(eye.Sub(p), n)
	if mat.DoubleSided && n.Dot(v) < 0 {
		n = n.Mul(-1)
	}

	var out mgl32.Vec3
	for i := range lights {
		l := &lights[i]
		switch l.Kind {
		case Ambient:
			out = out.Add(mulVec(mat.Color, l.Color).Mul(l.Intensity))
		case Hemisphere:
			up := safeNormalize(l.Position, mgl32.Vec3{0, 1, 0})
			w := 0.5*n.Dot(up) + 0.5
			irr := l.Ground.Mul(1 - w).Add(l.Color.Mul(w))
			out = out.Add(mulVec(mat.Color, irr).Mul(l.Intensity))
		case Directional:
			dir := safeNormalize(l.Direction, mgl32.Vec3{0, -1, 0}).Mul(-1)
			out = out.Add(blinnPhong(n, v, dir, mat, l.Color.Mul(l.Intensity)))
		case Point:
			toLight := l.Position.Sub(p)
			d := toLight.Len()
			att := distanceAttenuation(d, l.Distance, l.Decay)
			if att <= 0 {
				continue
			}
			out = out.Add(blinnPhong(n, v, safeNormalize(toLight, n), mat, l.Color.Mul(l.Intensity*att)))
		case Spot:
			toLight := l.Position.Sub(p)
			d := toLight.Len()
			dir := safeNormalize(toLight, n)
			cone := spotAttenuation(dir.Mul(-1).Dot(safeNormalize(l.Direction, mgl32.Vec3{0, -1, 0})), l.Angle, l.Penumbra)
			att := distanceAttenuation(d, l.Distance, l.Decay) * cone
			if att <= 0 {
				continue
			}
			out = out.Add(blinnPhong(n, v, dir, mat, l.Color.Mul(l.Intensity*att)))
		}
	}
	return out
}

func blinnPhong(n, v, l mgl32.Vec3, mat Material, radiance mgl32.Vec3) mgl32.Vec3 {
	ndl := n.Dot(l)
	if ndl <= 0 {
		return mgl32.Vec3{}
	}
	diffuse := mat.Color.Mul(ndl)
	h := safeNormalize(l.Add(v), n)
	spec := mat.Specular * math32.Pow(math32.Max(n.Dot(h), 0), math32.Max(mat.Shininess, 1)) * ndl
	return mulVec(diffuse.Add(mgl32.Vec3{spec, spec, spec}), radiance)
}

// distanceAttenuation is inverse-power falloff, windowed to zero at cutoff
// when cutoff is positive.
func distanceAttenuation(d, cutoff, decay float32) float32 {
	att := 1 / math32.Max(math32.Pow(d, decay), 0.01)
	if cutoff > 0 {
		r := d / cutoff
		w := mgl32.Clamp(1-r*r*r*r, 0, 1)
		att *= w * w
	}
	return att
}

// spotAttenuation fades from the cone edge inward over the penumbra.
// cosTheta is the cosine between the spot axis and the direction to p.
func spotAttenuation(cosTheta, angle, penumbra float32) float32 {
	cone := math32.Cos(angle)
	inner := math32.Cos(angle * (1 - mgl32.Clamp(penumbra, 0, 1)))
	return smoothstep(cone, inner, cosTheta)
}

func smoothstep(e0, e1, x float32) float32 {
	if e1 <= e0 {
		if x >= e0 {
			return 1
		}
		return 0
	}
	t := mgl32.Clamp((x-e0)/(e1-e0), 0, 1)
	return t * t * (3 - 2*t)
}

// ToneMap clamps linear radiance to 0..1 and encodes it as sRGB.
func ToneMap(c mgl32.Vec3) [3]float32 {
	var out [3]float32
	for i := range out {
		v := mgl32.Clamp(c[i], 0, 1)
		if v <= 0.0031308 {
			out[i] = v * 12.92
		} else {
			out[i] = 1.055*math32.Pow(v, 1/2.4) - 0.055
		}
	}
	return out
}

func mulVec(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func safeNormalize(v, fallback mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < 1e-8 {
		return fallback
	}
	return v.Mul(1 / l)
}
