package lightlab

import (
	"strings"
)

// TextCanvas is what the panel draws onto. Coordinates are pixels with the
// origin at the top-left; y is the top of the text line.
type TextCanvas interface {
	DrawText(text string, x, y float32, scale float32, color [4]float32)
	MeasureText(text string, scale float32) (float32, float32)
	LineHeight(scale float32) float32
}

type Panel struct {
	Title    string
	Status   string // shown after the title
	Position [2]float32 // Screen pixels, top-left
	Scale    float32
	Dirty    bool
	Hidden   bool

	folders []*Folder
	rows    []panelRow
	width   float32
}

type panelRow struct {
	y, h     float32
	folder   *Folder
	control  Control
	valueX   float32 // where the value column starts
	valueEnd float32
}

func NewPanel(title string) *Panel {
	return &Panel{Title: title, Position: [2]float32{16, 32}, Scale: 1, Dirty: true}
}

func (p *Panel) AddFolder(name string) *Folder {
	f := &Folder{Name: name, panel: p}
	p.folders = append(p.folders, f)
	p.Dirty = true
	return f
}

func (p *Panel) Folders() []*Folder {
	return p.folders
}

const (
	uiPaddingX   = 8.0
	uiLabelCells = 14
	uiValueCells = 20
)

var (
	uiFrameColor     = [4]float32{1, 1, 1, 1}
	uiHeaderColor    = [4]float32{1, 1, 0, 1}
	uiTextColor      = [4]float32{1, 1, 1, 1}
	uiValueColor     = [4]float32{0.6, 0.9, 1, 1}
	uiCollapsedColor = [4]float32{0.7, 0.7, 0.7, 1}
)

func (p *Panel) scale() float32 {
	if p.Scale <= 0 {
		return 1
	}
	return p.Scale
}

// Layout recomputes row geometry. Draw and HandleClick both rely on it.
func (p *Panel) Layout(canvas TextCanvas) {
	scale := p.scale()
	lineH := canvas.LineHeight(scale)
	cellW, _ := canvas.MeasureText("M", scale)
	if cellW <= 0 {
		cellW = 8 * scale
	}

	labelW := cellW * uiLabelCells
	valueW := cellW * uiValueCells
	p.width = labelW + valueW + 2*uiPaddingX*scale

	x := p.Position[0]
	y := p.Position[1] + lineH // below the title line
	p.rows = p.rows[:0]
	for _, f := range p.folders {
		p.rows = append(p.rows, panelRow{y: y, h: lineH, folder: f})
		y += lineH
		if !f.Open {
			continue
		}
		for _, c := range f.controls {
			valueX := x + uiPaddingX*scale + labelW
			p.rows = append(p.rows, panelRow{
				y: y, h: lineH, folder: f, control: c,
				valueX: valueX, valueEnd: valueX + valueW,
			})
			y += lineH
		}
	}
}

// Draw renders the panel as ASCII boxes and clears Dirty.
func (p *Panel) Draw(canvas TextCanvas) {
	if p.Hidden {
		return
	}
	p.Layout(canvas)
	scale := p.scale()
	lineH := canvas.LineHeight(scale)
	x := p.Position[0]

	drawHLine := func(y float32) {
		dashW, _ := canvas.MeasureText("-", scale)
		if dashW <= 0 {
			dashW = 8 * scale
		}
		count := int(p.width/dashW) + 1
		canvas.DrawText("+"+strings.Repeat("-", count)+"+", x, y, scale, uiFrameColor)
	}

	drawHLine(p.Position[1] - lineH)
	title := "| " + p.Title
	if p.Status != "" {
		title += "  (" + p.Status + ")"
	}
	canvas.DrawText(title, x, p.Position[1], scale, uiHeaderColor)
	for _, row := range p.rows {
		if row.control == nil {
			marker := "[-] "
			color := uiHeaderColor
			if !row.folder.Open {
				marker = "[+] "
				color = uiCollapsedColor
			}
			canvas.DrawText("| "+marker+row.folder.Name, x, row.y, scale, color)
			continue
		}
		canvas.DrawText("|   "+row.control.Label(), x, row.y, scale, uiTextColor)
		canvas.DrawText(row.control.Display(), row.valueX, row.y, scale, uiValueColor)
	}
	end := p.Position[1] + lineH
	if n := len(p.rows); n > 0 {
		end = p.rows[n-1].y + lineH
	}
	drawHLine(end)
	p.Dirty = false
}

// HandleClick routes a press at (mx, my) to a folder header or control and
// reports whether the panel consumed it.
func (p *Panel) HandleClick(mx, my float32) bool {
	if p.Hidden {
		return false
	}
	for _, row := range p.rows {
		if my < row.y || my >= row.y+row.h {
			continue
		}
		if mx < p.Position[0] || mx > p.Position[0]+p.width {
			return false
		}
		if row.control == nil {
			row.folder.Open = !row.folder.Open
			p.Dirty = true
			return true
		}
		if mx < row.valueX {
			return true
		}
		fx := (mx - row.valueX) / (row.valueEnd - row.valueX)
		row.control.Press(fx)
		p.Dirty = true
		return true
	}
	return false
}

// Contains reports whether (mx, my) falls inside the last laid out panel.
func (p *Panel) Contains(mx, my float32) bool {
	if p.Hidden || len(p.rows) == 0 {
		return false
	}
	last := p.rows[len(p.rows)-1]
	return mx >= p.Position[0] && mx <= p.Position[0]+p.width &&
		my >= p.Position[1] && my < last.y+last.h
}

type UiModule struct {
	Title string
	Scale float32
}

func (m UiModule) Install(app *App, cmd *Commands) {
	title := m.Title
	if title == "" {
		title = "Controls"
	}
	panel := NewPanel(title)
	if m.Scale > 0 {
		panel.Scale = m.Scale
	}
	cmd.AddResources(panel)
	app.UseSystem(System(uiInputSystem).InStage(PreUpdate))
}

// uiInputSystem feeds presses to the panel before camera controls run, so a
// press on the panel never starts an orbit drag.
func uiInputSystem(input *Input, panel *Panel) {
	if input.JustReleased[MouseButtonLeft] {
		input.PointerCaptured = false
	}
	if !input.JustPressed[MouseButtonLeft] {
		return
	}
	ratio := input.PixelRatio()
	mx, my := float32(input.MouseX)*ratio, float32(input.MouseY)*ratio
	if panel.HandleClick(mx, my) || panel.Contains(mx, my) {
		input.PointerCaptured = true
	}
}
