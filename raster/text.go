package raster

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/chewxy/math32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type glyphInfo struct {
	rect image.Rectangle // in the atlas
	off  image.Point     // from the pen position at the baseline
	adv  float32
}

// TextRenderer draws ASCII text from a glyph atlas onto a Frame.
type TextRenderer struct {
	Atlas  *image.Alpha
	Face   font.Face
	glyphs map[rune]glyphInfo
	ascent float32
	lineH  float32
	target *Frame
}

// NewDefaultTextRenderer uses the built-in 7x13 bitmap face.
func NewDefaultTextRenderer() *TextRenderer {
	return newTextRenderer(basicfont.Face7x13)
}

// NewTextRenderer loads a TrueType/OpenType font file.
func NewTextRenderer(fontPath string, fontSize float64) (*TextRenderer, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}

	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	return newTextRenderer(face), nil
}

func newTextRenderer(face font.Face) *TextRenderer {
	const atlasSize = 512
	atlas := image.NewAlpha(image.Rect(0, 0, atlasSize, atlasSize))
	glyphs := make(map[rune]glyphInfo)

	x, y := 2, 2
	rowHeight := 0
	for r := rune(32); r < 127; r++ {
		bounds, mask, maskp, adv, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}
		w, h := bounds.Dx(), bounds.Dy()
		if x+w >= atlasSize {
			x = 2
			y += rowHeight + 4
			rowHeight = 0
		}
		if y+h >= atlasSize {
			break
		}

		dst := image.Rect(x, y, x+w, y+h)
		draw.Draw(atlas, dst, mask, maskp, draw.Src)
		glyphs[r] = glyphInfo{
			rect: dst,
			off:  bounds.Min,
			adv:  float32(adv) / 64.0,
		}

		x += w + 4
		rowHeight = max(rowHeight, h)
	}

	metrics := face.Metrics()
	return &TextRenderer{
		Atlas:  atlas,
		Face:   face,
		glyphs: glyphs,
		ascent: float32(metrics.Ascent.Ceil()),
		lineH:  float32(metrics.Height.Ceil()),
	}
}

// Bind selects the frame DrawText writes to.
func (tr *TextRenderer) Bind(f *Frame) {
	tr.target = f
}

// DrawText draws text with its top-left at (x, y). Glyphs are scaled with
// nearest sampling.
func (tr *TextRenderer) DrawText(text string, x, y float32, scale float32, color [4]float32) {
	f := tr.target
	if f == nil {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	penX := x
	baseY := y + tr.ascent*scale
	for _, r := range text {
		if r == '\n' {
			penX = x
			baseY += tr.lineH * scale
			continue
		}
		g, ok := tr.glyphs[r]
		if !ok {
			continue
		}
		x0 := penX + float32(g.off.X)*scale
		y0 := baseY + float32(g.off.Y)*scale
		w := int(math32.Ceil(float32(g.rect.Dx()) * scale))
		h := int(math32.Ceil(float32(g.rect.Dy()) * scale))
		for dy := 0; dy < h; dy++ {
			sy := g.rect.Min.Y + min(int(float32(dy)/scale), g.rect.Dy()-1)
			for dx := 0; dx < w; dx++ {
				sx := g.rect.Min.X + min(int(float32(dx)/scale), g.rect.Dx()-1)
				a := tr.Atlas.AlphaAt(sx, sy).A
				if a == 0 {
					continue
				}
				f.blendPixel(int(x0)+dx, int(y0)+dy, color, float32(a)/255)
			}
		}
		penX += g.adv * scale
	}
}

func (tr *TextRenderer) MeasureText(text string, scale float32) (float32, float32) {
	maxW := float32(0)
	currentW := float32(0)
	lines := 1

	for _, r := range text {
		if r == '\n' {
			maxW = max(maxW, currentW)
			currentW = 0
			lines++
			continue
		}
		if g, ok := tr.glyphs[r]; ok {
			currentW += g.adv * scale
		}
	}
	maxW = max(maxW, currentW)
	return maxW, tr.lineH * scale * float32(lines)
}

func (tr *TextRenderer) LineHeight(scale float32) float32 {
	return tr.lineH * scale
}
