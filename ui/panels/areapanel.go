// Package panels provides the side panels of the editor window.
package panels

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"print-studio/internal/app"
	"print-studio/internal/editor"
	"print-studio/internal/scene"
)

// AreaPanel shows and edits the properties of the selected print area.
type AreaPanel struct {
	state    *app.State
	onUpdate func()

	box *fyne.Container

	nameEntry   *widget.Entry
	descEntry   *widget.Entry
	shapeLabel  *widget.Label
	pixelLabel  *widget.Label
	widthEntry  *widget.Entry
	heightEntry *widget.Entry
	propCheck   *widget.Check
	sizeSelect  *widget.Select
	opacity     *widget.Slider
	colorEntry  *widget.Entry
	deleteBtn   *widget.Button

	refreshing bool
}

// NewAreaPanel creates the print-area properties panel.
func NewAreaPanel(state *app.State, onUpdate func()) *AreaPanel {
	p := &AreaPanel{
		state:    state,
		onUpdate: onUpdate,
	}

	p.buildUI()
	p.Refresh()

	state.On(app.EventSceneChanged, func(_ interface{}) { p.Refresh() })
	state.On(app.EventDocumentLoaded, func(_ interface{}) { p.Refresh() })

	return p
}

// Widget returns the panel for embedding.
func (p *AreaPanel) Widget() fyne.CanvasObject {
	return container.NewVScroll(p.box)
}

func (p *AreaPanel) buildUI() {
	p.nameEntry = widget.NewEntry()
	p.nameEntry.OnChanged = func(s string) {
		p.updateSelected(func(a *scene.PrintArea) { a.Name = s })
	}

	p.descEntry = widget.NewEntry()
	p.descEntry.OnChanged = func(s string) {
		p.updateSelected(func(a *scene.PrintArea) { a.Description = s })
	}

	p.shapeLabel = widget.NewLabel("")
	p.pixelLabel = widget.NewLabel("")

	p.widthEntry = widget.NewEntry()
	p.widthEntry.OnSubmitted = func(s string) { p.onRealSize(s, p.heightEntry.Text) }
	p.heightEntry = widget.NewEntry()
	p.heightEntry.OnSubmitted = func(s string) { p.onRealSize(p.widthEntry.Text, s) }

	p.propCheck = widget.NewCheck("Keep proportions", nil)
	p.propCheck.SetChecked(true)

	names := make([]string, len(editor.StandardSizes))
	for i, s := range editor.StandardSizes {
		names[i] = fmt.Sprintf("%s (%g x %g cm)", s.Name, s.Width, s.Height)
	}
	p.sizeSelect = widget.NewSelect(names, func(_ string) {
		idx := p.sizeSelect.SelectedIndex()
		if idx < 0 || idx >= len(editor.StandardSizes) {
			return
		}
		sel := p.state.Areas.Scene.Selected()
		if sel == nil {
			return
		}
		if p.state.Areas.ApplyStandardSize(sel.ID, editor.StandardSizes[idx].Name) {
			p.changed()
		}
	})
	p.sizeSelect.PlaceHolder = "Standard size..."

	p.opacity = widget.NewSlider(0, 1)
	p.opacity.Step = 0.05
	p.opacity.OnChanged = func(v float64) {
		p.updateSelected(func(a *scene.PrintArea) { a.Opacity = v })
	}

	p.colorEntry = widget.NewEntry()
	p.colorEntry.OnSubmitted = func(s string) {
		p.updateSelected(func(a *scene.PrintArea) { a.Color = s })
	}

	p.deleteBtn = widget.NewButton("Delete Area", func() {
		if sel := p.state.Areas.Scene.Selected(); sel != nil {
			p.state.Areas.DeleteArea(sel.ID)
			p.changed()
		}
	})

	p.box = container.NewVBox(
		widget.NewCard("Area", "", container.NewVBox(
			widget.NewForm(
				widget.NewFormItem("Name", p.nameEntry),
				widget.NewFormItem("Description", p.descEntry),
			),
			p.shapeLabel,
			p.pixelLabel,
		)),
		widget.NewCard("Physical size", "", container.NewVBox(
			widget.NewForm(
				widget.NewFormItem("Width (cm)", p.widthEntry),
				widget.NewFormItem("Height (cm)", p.heightEntry),
			),
			p.propCheck,
			p.sizeSelect,
		)),
		widget.NewCard("Appearance", "", container.NewVBox(
			widget.NewLabel("Opacity"),
			p.opacity,
			widget.NewForm(widget.NewFormItem("Color", p.colorEntry)),
		)),
		p.deleteBtn,
	)
}

func (p *AreaPanel) updateSelected(mutate func(*scene.PrintArea)) {
	if p.refreshing {
		return
	}
	sel := p.state.Areas.Scene.Selected()
	if sel == nil {
		return
	}
	p.state.Areas.Scene.UpdateArea(sel.ID, mutate)
	if p.onUpdate != nil {
		p.onUpdate()
	}
}

func (p *AreaPanel) changed() {
	if p.onUpdate != nil {
		p.onUpdate()
	}
}

func (p *AreaPanel) onRealSize(ws, hs string) {
	sel := p.state.Areas.Scene.Selected()
	if sel == nil {
		return
	}
	w, errW := strconv.ParseFloat(ws, 64)
	h, errH := strconv.ParseFloat(hs, 64)
	if errW != nil {
		w = 0
	}
	if errH != nil {
		h = 0
	}
	if p.state.Areas.SetRealSize(sel.ID, w, h, p.propCheck.Checked) {
		p.changed()
	}
}

// Refresh re-reads the selected area.
func (p *AreaPanel) Refresh() {
	p.refreshing = true
	defer func() { p.refreshing = false }()

	sel := p.state.Areas.Scene.Selected()
	if sel == nil {
		p.nameEntry.SetText("")
		p.descEntry.SetText("")
		p.shapeLabel.SetText("No area selected")
		p.pixelLabel.SetText("")
		p.widthEntry.SetText("")
		p.heightEntry.SetText("")
		p.colorEntry.SetText("")
		return
	}

	p.nameEntry.SetText(sel.Name)
	p.descEntry.SetText(sel.Description)
	p.shapeLabel.SetText("Shape: " + string(sel.Shape))
	b := sel.Bounds()
	p.pixelLabel.SetText(fmt.Sprintf("%.0f x %.0f px at (%.0f, %.0f)", b.Width, b.Height, b.X, b.Y))

	if sel.RealWidth > 0 {
		p.widthEntry.SetText(fmt.Sprintf("%.2f", sel.RealWidth))
	} else {
		p.widthEntry.SetText("")
	}
	if sel.RealHeight > 0 {
		p.heightEntry.SetText(fmt.Sprintf("%.2f", sel.RealHeight))
	} else {
		p.heightEntry.SetText("")
	}
	p.opacity.SetValue(sel.Opacity)
	p.colorEntry.SetText(sel.Color)
}
