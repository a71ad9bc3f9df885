package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"print-studio/internal/app"
	"print-studio/internal/scene"
)

// LayersPanel lists the template's elements top-down by stacking order
// with visibility and lock toggles per row.
type LayersPanel struct {
	state    *app.State
	onUpdate func()

	box  *fyne.Container
	list *widget.List

	// Snapshot taken on refresh so list callbacks index a stable slice.
	rows []*scene.Element
}

// NewLayersPanel creates the layers list panel.
func NewLayersPanel(state *app.State, onUpdate func()) *LayersPanel {
	p := &LayersPanel{
		state:    state,
		onUpdate: onUpdate,
	}

	p.list = widget.NewList(
		func() int { return len(p.rows) },
		func() fyne.CanvasObject {
			name := widget.NewLabel("element")
			name.Truncation = fyne.TextTruncateEllipsis
			visBtn := widget.NewButtonWithIcon("", theme.VisibilityIcon(), nil)
			lockCheck := widget.NewCheck("Lock", nil)
			return container.NewBorder(nil, nil, nil, container.NewHBox(visBtn, lockCheck), name)
		},
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			if i < 0 || i >= len(p.rows) {
				return
			}
			el := p.rows[i]
			row := obj.(*fyne.Container)
			name := row.Objects[0].(*widget.Label)
			btns := row.Objects[1].(*fyne.Container)
			visBtn := btns.Objects[0].(*widget.Button)
			lockCheck := btns.Objects[1].(*widget.Check)

			name.SetText(layerTitle(el))

			if el.IsVisible {
				visBtn.SetIcon(theme.VisibilityIcon())
			} else {
				visBtn.SetIcon(theme.VisibilityOffIcon())
			}
			id := el.ID
			visBtn.OnTapped = func() {
				p.state.Template.UpdateElement(id, func(e *scene.Element) {
					e.IsVisible = !e.IsVisible
				})
				p.changed()
			}

			lockCheck.OnChanged = nil
			lockCheck.SetChecked(el.IsLocked)
			lockCheck.OnChanged = func(v bool) {
				p.state.Template.UpdateElement(id, func(e *scene.Element) {
					e.IsLocked = v
				})
				p.changed()
			}
		},
	)

	p.list.OnSelected = func(i widget.ListItemID) {
		if i >= 0 && i < len(p.rows) {
			p.state.Template.Scene.Select(p.rows[i].ID)
			p.changed()
		}
	}

	dupBtn := widget.NewButtonWithIcon("Duplicate", theme.ContentCopyIcon(), func() {
		if sel := p.selectedElement(); sel != nil {
			p.state.Template.DuplicateElement(sel.ID)
			p.changed()
		}
	})
	delBtn := widget.NewButtonWithIcon("Delete", theme.DeleteIcon(), func() {
		p.state.Template.DeleteSelected()
		p.changed()
	})

	p.box = container.NewBorder(
		widget.NewLabel("Layers"),
		container.NewHBox(dupBtn, delBtn),
		nil, nil,
		p.list,
	)

	p.Refresh()

	state.On(app.EventSceneChanged, func(_ interface{}) { p.Refresh() })
	state.On(app.EventDocumentLoaded, func(_ interface{}) { p.Refresh() })

	return p
}

// Widget returns the panel for embedding.
func (p *LayersPanel) Widget() fyne.CanvasObject {
	return p.box
}

func (p *LayersPanel) selectedElement() *scene.Element {
	sel := p.state.Template.Scene.Selected()
	if len(sel) == 0 {
		return nil
	}
	return sel[0]
}

func (p *LayersPanel) changed() {
	p.Refresh()
	if p.onUpdate != nil {
		p.onUpdate()
	}
}

// Refresh rebuilds the row snapshot, topmost element first.
func (p *LayersPanel) Refresh() {
	byZ := p.state.Template.Scene.SortedByZ()
	p.rows = p.rows[:0]
	for i := len(byZ) - 1; i >= 0; i-- {
		p.rows = append(p.rows, byZ[i])
	}
	p.list.Refresh()

	if sel := p.selectedElement(); sel != nil {
		for i, el := range p.rows {
			if el.ID == sel.ID {
				p.list.Select(i)
				return
			}
		}
	}
	p.list.UnselectAll()
}

func layerTitle(el *scene.Element) string {
	switch el.Type {
	case scene.ElementText:
		if el.Text != nil && el.Text.Content != "" {
			return el.Text.Content
		}
		return "Text"
	case scene.ElementImage:
		return "Image"
	case scene.ElementShape:
		if el.Shape != nil && el.Shape.ShapeType != "" {
			return "Shape: " + el.Shape.ShapeType
		}
		return "Shape"
	}
	return string(el.Type)
}
