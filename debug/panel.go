// Package debug provides an on-screen panel for tweaking named parameters while the program runs.
package debug

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/solarlune/globe"
	"github.com/solarlune/globe/colors"
	"golang.org/x/image/font/basicfont"
)

// Input reports which keys were pressed this frame.
type Input interface {
	JustPressed(key ebiten.Key) bool
}

// EbitenInput reads key presses through Ebitengine.
type EbitenInput struct{}

func (EbitenInput) JustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

// Param is a single named, displayable entry in a Panel.
type Param interface {
	Name() string
	// Value returns the parameter's current value as text.
	Value() string
	// Adjust changes the parameter by the number of steps given; negative steps decrease it.
	Adjust(steps int)
	// Toggle flips a boolean parameter.
	Toggle()
}

// FloatParam is a number that can be adjusted in steps between a minimum and maximum.
type FloatParam struct {
	name          string
	value         *float64
	min, max      float64
	step          float64
	OnChange      func(value float64) // Called after the value changes, if set.
	decimalPlaces int
}

func (param *FloatParam) Name() string { return param.name }

func (param *FloatParam) Value() string {
	return strconv.FormatFloat(*param.value, 'f', param.decimalPlaces, 64)
}

func (param *FloatParam) Adjust(steps int) {
	value := *param.value + float64(steps)*param.step
	// Snap to the step grid so repeated adjustments don't drift.
	value = math.Round(value/param.step) * param.step
	value = math.Max(param.min, math.Min(param.max, value))
	if value == *param.value {
		return
	}
	*param.value = value
	if param.OnChange != nil {
		param.OnChange(value)
	}
}

func (param *FloatParam) Toggle() {}

// BoolParam is an on / off switch.
type BoolParam struct {
	name     string
	value    *bool
	OnChange func(value bool) // Called after the value changes, if set.
}

func (param *BoolParam) Name() string { return param.name }

func (param *BoolParam) Value() string {
	if *param.value {
		return "on"
	}
	return "off"
}

func (param *BoolParam) Adjust(steps int) {
	if steps != 0 {
		param.Toggle()
	}
}

func (param *BoolParam) Toggle() {
	*param.value = !*param.value
	if param.OnChange != nil {
		param.OnChange(*param.value)
	}
}

// InfoParam is a read-only readout.
type InfoParam struct {
	name  string
	value func() string
}

func (param *InfoParam) Name() string  { return param.name }
func (param *InfoParam) Value() string { return param.value() }
func (param *InfoParam) Adjust(int)    {}
func (param *InfoParam) Toggle()       {}

// Folder groups Params under a heading.
type Folder struct {
	Name   string
	params []Param
}

// AddFloat adds a FloatParam bound to value, adjustable between min and max by step.
func (folder *Folder) AddFloat(name string, value *float64, min, max, step float64) *FloatParam {
	decimals := 0
	if step > 0 && step < 1 {
		decimals = int(math.Ceil(-math.Log10(step)))
	}
	if step <= 0 {
		step = (max - min) / 100
	}
	param := &FloatParam{name: name, value: value, min: min, max: max, step: step, decimalPlaces: decimals}
	folder.params = append(folder.params, param)
	return param
}

// AddBool adds a BoolParam bound to value.
func (folder *Folder) AddBool(name string, value *bool) *BoolParam {
	param := &BoolParam{name: name, value: value}
	folder.params = append(folder.params, param)
	return param
}

// AddInfo adds a read-only InfoParam showing the result of value.
func (folder *Folder) AddInfo(name string, value func() string) *InfoParam {
	param := &InfoParam{name: name, value: value}
	folder.params = append(folder.params, param)
	return param
}

// Panel is a list of Params, grouped in Folders, that can be shown on screen and navigated with the keyboard:
// Up / Down select a Param, Left / Right adjust it, Space toggles it, and ToggleKey shows or hides the Panel.
type Panel struct {
	Visible   bool
	ToggleKey ebiten.Key

	TextColor      globe.Color
	HighlightColor globe.Color
	BackdropColor  color.Color

	root     *Folder
	folders  []*Folder
	selected int
	input    Input
	face     text.Face
}

// NewPanel creates a new, hidden Panel reading keys from the Input given.
func NewPanel(input Input) *Panel {
	root := &Folder{}
	return &Panel{
		ToggleKey:      ebiten.KeyF1,
		TextColor:      colors.White(),
		HighlightColor: colors.Yellow(),
		BackdropColor:  color.NRGBA{0, 0, 0, 160},
		root:           root,
		folders:        []*Folder{root},
		input:          input,
	}
}

// Folder returns the Folder with the name given, creating it if it doesn't exist yet.
func (panel *Panel) Folder(name string) *Folder {
	for _, folder := range panel.folders {
		if folder.Name == name {
			return folder
		}
	}
	folder := &Folder{Name: name}
	panel.folders = append(panel.folders, folder)
	return folder
}

// AddFloat adds a FloatParam outside of any Folder.
func (panel *Panel) AddFloat(name string, value *float64, min, max, step float64) *FloatParam {
	return panel.root.AddFloat(name, value, min, max, step)
}

// AddBool adds a BoolParam outside of any Folder.
func (panel *Panel) AddBool(name string, value *bool) *BoolParam {
	return panel.root.AddBool(name, value)
}

// AddInfo adds an InfoParam outside of any Folder.
func (panel *Panel) AddInfo(name string, value func() string) *InfoParam {
	return panel.root.AddInfo(name, value)
}

// Params returns every Param in display order.
func (panel *Panel) Params() []Param {
	params := []Param{}
	for _, folder := range panel.folders {
		params = append(params, folder.params...)
	}
	return params
}

// Selected returns the currently selected Param, or nil if the Panel is empty.
func (panel *Panel) Selected() Param {
	params := panel.Params()
	if len(params) == 0 {
		return nil
	}
	return params[panel.selected]
}

// Update handles the Panel's keyboard input; it should be called once per game update.
func (panel *Panel) Update() {

	if panel.input == nil {
		return
	}

	if panel.input.JustPressed(panel.ToggleKey) {
		panel.Visible = !panel.Visible
	}

	if !panel.Visible {
		return
	}

	params := panel.Params()
	if len(params) == 0 {
		return
	}

	if panel.input.JustPressed(ebiten.KeyDown) {
		panel.selected = (panel.selected + 1) % len(params)
	}
	if panel.input.JustPressed(ebiten.KeyUp) {
		panel.selected = (panel.selected - 1 + len(params)) % len(params)
	}

	selected := params[panel.selected]

	if panel.input.JustPressed(ebiten.KeyRight) {
		selected.Adjust(1)
	}
	if panel.input.JustPressed(ebiten.KeyLeft) {
		selected.Adjust(-1)
	}
	if panel.input.JustPressed(ebiten.KeySpace) {
		selected.Toggle()
	}

}

// Lines returns the Panel's contents as the lines of text it draws.
func (panel *Panel) Lines() []string {

	lines := []string{}
	index := 0

	for _, folder := range panel.folders {

		indent := ""
		if folder.Name != "" {
			if len(folder.params) == 0 {
				continue
			}
			lines = append(lines, "["+folder.Name+"]")
			indent = "  "
		}

		for _, param := range folder.params {
			cursor := "  "
			if index == panel.selected {
				cursor = "> "
			}
			lines = append(lines, fmt.Sprintf("%s%s%s: %s", cursor, indent, param.Name(), param.Value()))
			index++
		}

	}

	return lines

}

// Draw draws the Panel onto the screen given, if it's visible.
func (panel *Panel) Draw(screen *ebiten.Image) {

	if !panel.Visible {
		return
	}

	if panel.face == nil {
		panel.face = text.NewGoXFace(basicfont.Face7x13)
	}

	lines := panel.Lines()

	lineHeight := 16.0
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}

	vector.DrawFilledRect(screen, 4, 4, float32(width*7+16), float32(float64(len(lines))*lineHeight+12), panel.BackdropColor, false)

	for i, line := range lines {
		opt := &text.DrawOptions{}
		opt.GeoM.Translate(12, 10+float64(i)*lineHeight)
		clr := panel.TextColor
		if strings.HasPrefix(line, "> ") {
			clr = panel.HighlightColor
		}
		opt.ColorScale.ScaleWithColor(clr.ToNRGBA64())
		text.Draw(screen, line, panel.face, opt)
	}

}
