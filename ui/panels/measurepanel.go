package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"print-studio/internal/app"
	"print-studio/internal/measure"
)

// MeasurePanel lists measurement lines and the calibration they imply.
type MeasurePanel struct {
	state    *app.State
	onUpdate func()

	box        *fyne.Container
	scaleLabel *widget.Label
	statsLabel *widget.Label
	hintLabel  *widget.Label
	lineList   *widget.List
}

// NewMeasurePanel creates the calibration panel.
func NewMeasurePanel(state *app.State, onUpdate func()) *MeasurePanel {
	p := &MeasurePanel{
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
func (p *MeasurePanel) Widget() fyne.CanvasObject {
	return p.box
}

func (p *MeasurePanel) buildUI() {
	p.scaleLabel = widget.NewLabel("Not calibrated")
	p.statsLabel = widget.NewLabel("")
	p.hintLabel = widget.NewLabel("Draw a line over a known distance to calibrate.")
	p.hintLabel.Wrapping = fyne.TextWrapWord

	p.lineList = widget.NewList(
		func() int { return len(p.state.Areas.Scene.Lines) },
		func() fyne.CanvasObject {
			return container.NewBorder(nil, nil, nil,
				widget.NewButton("Remove", nil),
				widget.NewLabel(""),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			lines := p.state.Areas.Scene.Lines
			if id >= len(lines) {
				return
			}
			line := lines[id]
			row := obj.(*fyne.Container)
			label := row.Objects[0].(*widget.Label)
			btn := row.Objects[1].(*widget.Button)

			label.SetText(fmt.Sprintf("%.0f px = %.1f cm", line.PixelLength(), line.RealDistance))
			lineID := line.ID
			btn.OnTapped = func() {
				p.state.Areas.RemoveMeasurementLine(lineID)
				p.Refresh()
				if p.onUpdate != nil {
					p.onUpdate()
				}
			}
		},
	)

	p.box = container.NewBorder(
		container.NewVBox(
			widget.NewCard("Calibration", "", container.NewVBox(p.scaleLabel, p.statsLabel)),
			p.hintLabel,
		),
		nil, nil, nil,
		p.lineList,
	)
}

// Refresh re-reads the calibration state.
func (p *MeasurePanel) Refresh() {
	cal := p.state.Areas.Calibration
	if cal.Valid() {
		p.scaleLabel.SetText(fmt.Sprintf("%.2f px/cm", cal.PixelsPerCm()))
		p.hintLabel.Hide()
	} else {
		p.scaleLabel.SetText("Not calibrated")
		p.hintLabel.Show()
	}

	stats := measure.LineConsistency(p.state.Areas.Scene.Lines)
	if stats.Count >= 2 {
		p.statsLabel.SetText(fmt.Sprintf("%d lines, mean %.2f px/cm, spread %.2f", stats.Count, stats.Mean, stats.StdDev))
		p.statsLabel.Show()
	} else {
		p.statsLabel.Hide()
	}

	p.lineList.Refresh()
}
