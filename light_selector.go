package lightlab

import (
	"fmt"
)

// Selection names which lights are on: one kind, or all of them.
type Selection string

const (
	SelectAll         Selection = "All"
	SelectAmbient     Selection = "Ambient"
	SelectDirectional Selection = "Directional"
	SelectPoint       Selection = "Point"
	SelectSpot        Selection = "Spot"
	SelectHemisphere  Selection = "Hemisphere"
)

// Selections lists the dropdown entries in order.
var Selections = []Selection{SelectAll, SelectAmbient, SelectDirectional, SelectPoint, SelectSpot, SelectHemisphere}

var selectionKinds = map[Selection]LightKind{
	SelectAmbient:     LightAmbient,
	SelectDirectional: LightDirectional,
	SelectPoint:       LightPoint,
	SelectSpot:        LightSpot,
	SelectHemisphere:  LightHemisphere,
}

// Kind reports the light kind a specific selection refers to.
func (s Selection) Kind() (LightKind, bool) {
	k, ok := selectionKinds[s]
	return k, ok
}

func ParseSelection(v string) (Selection, error) {
	for _, s := range Selections {
		if string(s) == v {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown light selection %q", v)
}

func selectionOptions() []string {
	opts := make([]string, len(Selections))
	for i, s := range Selections {
		opts[i] = string(s)
	}
	return opts
}

const lightFolderName = "Light Controls"

// LightSelector owns the selection and keeps light visibility and the
// panel's tuning controls in step with it.
type LightSelector struct {
	lights    LightSet
	panel     *Panel
	folder    *Folder
	selector  *Dropdown
	selection Selection
	logger    Logger
}

func NewLightSelector(lights LightSet, panel *Panel, logger Logger) *LightSelector {
	if logger == nil {
		logger = NewNopLogger()
	}
	ls := &LightSelector{
		lights: lights,
		panel:  panel,
		logger: logger,
	}
	ls.folder = panel.AddFolder(lightFolderName)
	ls.folder.Open = true
	ls.selector = ls.folder.AddDropdown("Select Light", selectionOptions(), string(SelectAll), TagStatic)
	ls.selector.OnChange = ls.OnSelectionChanged
	ls.OnSelectionChanged(string(SelectAll))
	return ls
}

func (ls *LightSelector) Selection() Selection { return ls.selection }
func (ls *LightSelector) Folder() *Folder      { return ls.folder }
func (ls *LightSelector) Selector() *Dropdown  { return ls.selector }

// DynamicControls returns the controls exposed for the current selection.
func (ls *LightSelector) DynamicControls() []Control {
	return ls.folder.Tagged(TagDynamic)
}

// Select is OnSelectionChanged for callers outside the dropdown; the
// dropdown's shown value follows.
func (ls *LightSelector) Select(s Selection) {
	ls.selector.value = string(s)
	ls.OnSelectionChanged(string(s))
}

// OnSelectionChanged rebuilds visibility and controls from scratch. Values
// outside Selections leave every light off and no controls exposed.
func (ls *LightSelector) OnSelectionChanged(value string) {
	for _, l := range ls.lights {
		l.Visible = false
	}

	ls.folder.RemoveTagged(TagDynamic)

	ls.selection = Selection(value)
	switch sel := Selection(value); sel {
	case SelectAll:
		for _, l := range ls.lights {
			l.Visible = true
		}
	case SelectAmbient, SelectDirectional, SelectPoint, SelectSpot, SelectHemisphere:
		kind, _ := sel.Kind()
		light, ok := ls.lights[kind]
		if !ok {
			ls.logger.Warnf("no %s light in scene", kind)
			break
		}
		light.Visible = true
		for _, spec := range ControlSpecs(kind) {
			ls.folder.Add(spec.Build(light), TagDynamic)
		}
	default:
		ls.logger.Warnf("unknown light selection %q; all lights off", value)
	}

	ls.panel.Status = "light: " + value
	ls.panel.Dirty = true
	ls.logger.Debugf("selection %s: visible %v, %d controls", value, ls.lights.Visible(), len(ls.DynamicControls()))
}

// LightSelectorModule binds the scene's lights to the panel. It needs the
// SceneModule and UiModule installed first.
type LightSelectorModule struct {
	Initial Selection
}

func (m LightSelectorModule) Install(app *App, cmd *Commands) {
	scene, ok := Resource[SceneLights](app)
	if !ok {
		panic("LightSelectorModule requires SceneModule")
	}
	panel, ok := Resource[Panel](app)
	if !ok {
		panic("LightSelectorModule requires UiModule")
	}

	ls := NewLightSelector(scene.Lights, panel, app.Logger())
	if m.Initial != "" && m.Initial != SelectAll {
		ls.Select(m.Initial)
	}
	cmd.AddResources(ls)
	app.UseSystem(System(lightSelectorKeySystem).InStage(PreUpdate))
}

// lightSelectorKeySystem maps keys 0..5 to the dropdown entries and H to
// hiding the panel.
func lightSelectorKeySystem(input *Input, ls *LightSelector) {
	for i, s := range Selections {
		if input.JustPressed[Key0+i] {
			ls.Select(s)
		}
	}
	if input.JustPressed[KeyH] {
		ls.panel.Hidden = !ls.panel.Hidden
		ls.panel.Dirty = true
	}
}
