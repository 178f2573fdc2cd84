// Package raster draws lit triangle meshes and text into a CPU frame.
package raster

import (
	"image"
	"image/color"
	"math"
)

// Frame is a color image with a matching depth buffer. Depth is in 0..1,
// smaller is nearer.
type Frame struct {
	Image *image.RGBA
	Depth []float32
}

func NewFrame(width, height int) *Frame {
	f := &Frame{}
	f.Resize(width, height)
	return f
}

func (f *Frame) Width() int  { return f.Image.Rect.Dx() }
func (f *Frame) Height() int { return f.Image.Rect.Dy() }

// Resize reallocates the buffers when the size changes and reports whether
// it did. Sizes below 1 are raised to 1.
func (f *Frame) Resize(width, height int) bool {
	width, height = max(width, 1), max(height, 1)
	if f.Image != nil && f.Width() == width && f.Height() == height {
		return false
	}
	f.Image = image.NewRGBA(image.Rect(0, 0, width, height))
	f.Depth = make([]float32, width*height)
	return true
}

// Clear fills the image with c and resets depth to the far plane.
func (f *Frame) Clear(c color.RGBA) {
	pix := f.Image.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
	for i := range f.Depth {
		f.Depth[i] = math.MaxFloat32
	}
}

// depthTest writes z at (x, y) if it is nearer than what is stored.
func (f *Frame) depthTest(x, y int, z float32) bool {
	i := y*f.Width() + x
	if z >= f.Depth[i] {
		return false
	}
	f.Depth[i] = z
	return true
}

func (f *Frame) setPixel(x, y int, c color.RGBA) {
	i := f.Image.PixOffset(x, y)
	f.Image.Pix[i] = c.R
	f.Image.Pix[i+1] = c.G
	f.Image.Pix[i+2] = c.B
	f.Image.Pix[i+3] = c.A
}

// blendPixel composites c over (x, y) with coverage a in 0..1.
func (f *Frame) blendPixel(x, y int, c [4]float32, a float32) {
	if x < 0 || y < 0 || x >= f.Width() || y >= f.Height() {
		return
	}
	a *= c[3]
	if a <= 0 {
		return
	}
	i := f.Image.PixOffset(x, y)
	p := f.Image.Pix[i : i+4 : i+4]
	for k := 0; k < 3; k++ {
		dst := float32(p[k]) / 255
		p[k] = toByte(dst*(1-a) + c[k]*a)
	}
	p[3] = 255
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
