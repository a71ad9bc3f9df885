// Package dialogs holds the editor's modal prompts.
package dialogs

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"print-studio/internal/editor"
)

// ShowMeasurement prompts for the real-world distance of a just-drawn
// measurement line. The prompt does not block input elsewhere; the
// session keeps the pending line until the user confirms or cancels.
func ShowMeasurement(win fyne.Window, session *editor.AreaSession, done func()) {
	pending := session.PendingMeasurement()
	if pending == nil {
		return
	}

	entry := widget.NewEntry()
	entry.SetPlaceHolder("e.g. 21.0")

	pixels := widget.NewLabel(fmt.Sprintf("Line length: %.0f px", pending.PixelLength()))

	items := []*widget.FormItem{
		widget.NewFormItem("", pixels),
		widget.NewFormItem("Distance (cm)", entry),
	}

	d := dialog.NewForm("Calibrate Scale", "Confirm", "Cancel", items,
		func(confirmed bool) {
			if !confirmed {
				session.CancelMeasurement()
			} else {
				v, err := strconv.ParseFloat(entry.Text, 64)
				if err != nil {
					v = 0
				}
				session.ConfirmMeasurement(v)
			}
			if done != nil {
				done()
			}
		}, win)
	d.Resize(fyne.NewSize(320, 180))
	d.Show()
	win.Canvas().Focus(entry)
}
