package panels

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"print-studio/internal/app"
	"print-studio/internal/scene"
)

// ElementPanel shows and edits the properties of the selected template
// element. The visible fields follow the element's variant.
type ElementPanel struct {
	state    *app.State
	onUpdate func()

	box *fyne.Container

	typeLabel *widget.Label
	xEntry    *widget.Entry
	yEntry    *widget.Entry
	wEntry    *widget.Entry
	hEntry    *widget.Entry
	opacity   *widget.Slider
	lockCheck *widget.Check
	showCheck *widget.Check

	textCard    *widget.Card
	textContent *widget.Entry
	textSize    *widget.Entry
	textFont    *widget.Entry
	textFill    *widget.Entry

	shapeCard   *widget.Card
	shapeType   *widget.Select
	shapeFill   *widget.Entry
	shapeStroke *widget.Entry

	imageCard  *widget.Card
	imageLabel *widget.Label
	pickBtn    *widget.Button

	refreshing bool
}

// NewElementPanel creates the element properties panel. onPickImage is
// invoked when the user asks to replace an image element's file.
func NewElementPanel(state *app.State, onUpdate func(), onPickImage func(elementID string)) *ElementPanel {
	p := &ElementPanel{
		state:    state,
		onUpdate: onUpdate,
	}

	p.buildUI(onPickImage)
	p.Refresh()

	state.On(app.EventSceneChanged, func(_ interface{}) { p.Refresh() })
	state.On(app.EventDocumentLoaded, func(_ interface{}) { p.Refresh() })

	return p
}

// Widget returns the panel for embedding.
func (p *ElementPanel) Widget() fyne.CanvasObject {
	return container.NewVScroll(p.box)
}

func (p *ElementPanel) buildUI(onPickImage func(elementID string)) {
	p.typeLabel = widget.NewLabel("No element selected")

	numEntry := func(apply func(el *scene.Element, v float64)) *widget.Entry {
		e := widget.NewEntry()
		e.OnSubmitted = func(s string) {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return
			}
			p.updateSelected(func(el *scene.Element) { apply(el, v) })
		}
		return e
	}

	p.xEntry = numEntry(func(el *scene.Element, v float64) { el.X = v })
	p.yEntry = numEntry(func(el *scene.Element, v float64) { el.Y = v })
	p.wEntry = numEntry(func(el *scene.Element, v float64) {
		if v > 0 {
			el.Width = v
		}
	})
	p.hEntry = numEntry(func(el *scene.Element, v float64) {
		if v > 0 {
			el.Height = v
		}
	})

	p.opacity = widget.NewSlider(0, 1)
	p.opacity.Step = 0.05
	p.opacity.OnChangeEnded = func(v float64) {
		p.updateSelected(func(el *scene.Element) { el.Opacity = v })
	}

	p.lockCheck = widget.NewCheck("Locked", func(v bool) {
		p.updateSelected(func(el *scene.Element) { el.IsLocked = v })
	})
	p.showCheck = widget.NewCheck("Visible", func(v bool) {
		p.updateSelected(func(el *scene.Element) { el.IsVisible = v })
	})

	// Text fields
	p.textContent = widget.NewEntry()
	p.textContent.OnSubmitted = func(s string) {
		p.updateSelected(func(el *scene.Element) {
			if el.Text != nil {
				el.Text.Content = s
			}
		})
	}
	p.textSize = numEntry(func(el *scene.Element, v float64) {
		if el.Text != nil && v > 0 {
			el.Text.FontSize = v
		}
	})
	p.textFont = widget.NewEntry()
	p.textFont.OnSubmitted = func(s string) {
		p.updateSelected(func(el *scene.Element) {
			if el.Text != nil {
				el.Text.FontFamily = s
			}
		})
	}
	p.textFill = widget.NewEntry()
	p.textFill.OnSubmitted = func(s string) {
		p.updateSelected(func(el *scene.Element) {
			if el.Text != nil {
				el.Text.Fill = s
			}
		})
	}
	p.textCard = widget.NewCard("Text", "", widget.NewForm(
		widget.NewFormItem("Content", p.textContent),
		widget.NewFormItem("Size", p.textSize),
		widget.NewFormItem("Font", p.textFont),
		widget.NewFormItem("Color", p.textFill),
	))

	// Shape fields
	p.shapeType = widget.NewSelect([]string{"rectangle", "circle", "ellipse"}, func(s string) {
		p.updateSelected(func(el *scene.Element) {
			if el.Shape != nil {
				el.Shape.ShapeType = s
			}
		})
	})
	p.shapeFill = widget.NewEntry()
	p.shapeFill.OnSubmitted = func(s string) {
		p.updateSelected(func(el *scene.Element) {
			if el.Shape != nil {
				el.Shape.FillColor = s
			}
		})
	}
	p.shapeStroke = widget.NewEntry()
	p.shapeStroke.OnSubmitted = func(s string) {
		p.updateSelected(func(el *scene.Element) {
			if el.Shape != nil {
				el.Shape.StrokeColor = s
			}
		})
	}
	p.shapeCard = widget.NewCard("Shape", "", widget.NewForm(
		widget.NewFormItem("Type", p.shapeType),
		widget.NewFormItem("Fill", p.shapeFill),
		widget.NewFormItem("Stroke", p.shapeStroke),
	))

	// Image fields
	p.imageLabel = widget.NewLabel("")
	p.imageLabel.Truncation = fyne.TextTruncateEllipsis
	p.pickBtn = widget.NewButton("Choose File...", func() {
		if sel := p.selected(); sel != nil && onPickImage != nil {
			onPickImage(sel.ID)
		}
	})
	p.imageCard = widget.NewCard("Image", "", container.NewVBox(p.imageLabel, p.pickBtn))

	p.box = container.NewVBox(
		p.typeLabel,
		widget.NewCard("Layout", "", widget.NewForm(
			widget.NewFormItem("X", p.xEntry),
			widget.NewFormItem("Y", p.yEntry),
			widget.NewFormItem("Width", p.wEntry),
			widget.NewFormItem("Height", p.hEntry),
		)),
		p.textCard,
		p.shapeCard,
		p.imageCard,
		widget.NewCard("", "", container.NewVBox(
			widget.NewLabel("Opacity"),
			p.opacity,
			p.lockCheck,
			p.showCheck,
		)),
	)
}

func (p *ElementPanel) selected() *scene.Element {
	sel := p.state.Template.Scene.Selected()
	if len(sel) == 0 {
		return nil
	}
	return sel[0]
}

func (p *ElementPanel) updateSelected(mutate func(*scene.Element)) {
	if p.refreshing {
		return
	}
	sel := p.selected()
	if sel == nil {
		return
	}
	p.state.Template.UpdateElement(sel.ID, mutate)
	if p.onUpdate != nil {
		p.onUpdate()
	}
}

// Refresh re-reads the selected element and shows the variant's fields.
func (p *ElementPanel) Refresh() {
	p.refreshing = true
	defer func() { p.refreshing = false }()

	sel := p.selected()
	if sel == nil {
		p.typeLabel.SetText("No element selected")
		p.textCard.Hide()
		p.shapeCard.Hide()
		p.imageCard.Hide()
		return
	}

	p.typeLabel.SetText("Selected: " + string(sel.Type))
	p.xEntry.SetText(fmt.Sprintf("%.0f", sel.X))
	p.yEntry.SetText(fmt.Sprintf("%.0f", sel.Y))
	p.wEntry.SetText(fmt.Sprintf("%.0f", sel.Width))
	p.hEntry.SetText(fmt.Sprintf("%.0f", sel.Height))
	p.opacity.SetValue(sel.Opacity)
	p.lockCheck.SetChecked(sel.IsLocked)
	p.showCheck.SetChecked(sel.IsVisible)

	p.textCard.Hide()
	p.shapeCard.Hide()
	p.imageCard.Hide()

	switch sel.Type {
	case scene.ElementText:
		if sel.Text != nil {
			p.textContent.SetText(sel.Text.Content)
			p.textSize.SetText(fmt.Sprintf("%.0f", sel.Text.FontSize))
			p.textFont.SetText(sel.Text.FontFamily)
			p.textFill.SetText(sel.Text.Fill)
		}
		p.textCard.Show()

	case scene.ElementShape:
		if sel.Shape != nil {
			p.shapeType.SetSelected(sel.Shape.ShapeType)
			p.shapeFill.SetText(sel.Shape.FillColor)
			p.shapeStroke.SetText(sel.Shape.StrokeColor)
		}
		p.shapeCard.Show()

	case scene.ElementImage:
		if sel.Image != nil {
			if sel.Image.Source == "" {
				p.imageLabel.SetText("(no file selected)")
			} else if len(sel.Image.Source) > 48 {
				p.imageLabel.SetText(sel.Image.Source[:48] + "...")
			} else {
				p.imageLabel.SetText(sel.Image.Source)
			}
		}
		p.imageCard.Show()
	}
}
