// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"image"
	"path/filepath"

	"print-studio/internal/app"
	"print-studio/internal/editor"
	"print-studio/internal/export"
	"print-studio/internal/imageio"
	"print-studio/internal/render"
	"print-studio/internal/version"
	"print-studio/pkg/geometry"
	"print-studio/ui/canvas"
	"print-studio/ui/dialogs"
	"print-studio/ui/panels"
	"print-studio/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"golang.org/x/image/font/gofont/goregular"
)

const (
	areaDocExt     = ".psarea"
	templateDocExt = ".pstmpl"
)

// MainWindow is the primary application window. It hosts one tab per
// editor, each with its own toolbar, side panel, and drawing surface.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	tabs           *container.AppTabs
	areaCanvas     *canvas.EditorCanvas
	templateCanvas *canvas.EditorCanvas
	statusBar      *widget.Label
	gridCheck      *widget.Check
	snapCheck      *widget.Check

	areaPanel    *panels.AreaPanel
	measurePanel *panels.MeasurePanel
	elementPanel *panels.ElementPanel
	layersPanel  *panels.LayersPanel

	text *render.TextRenderer

	// Decoded element images keyed by element id.
	imageCache map[string]image.Image

	areaToolBtns     map[editor.AreaTool]*widget.Button
	templateToolBtns map[editor.TemplateTool]*widget.Button

	measurePromptOpen bool
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State) *MainWindow {
	win := fyneApp.NewWindow("Print Studio")

	mw := &MainWindow{
		Window:           win,
		app:              fyneApp,
		state:            state,
		prefs:            prefs.Load(),
		imageCache:       make(map[string]image.Image),
		areaToolBtns:     make(map[editor.AreaTool]*widget.Button),
		templateToolBtns: make(map[editor.TemplateTool]*widget.Button),
	}

	text, err := render.NewTextRenderer(goregular.TTF)
	if err == nil {
		mw.text = text
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restoreSession()

	win.SetCloseIntercept(mw.onCloseRequested)

	return mw
}

// onCloseRequested runs when the user tries to close the window. Unsaved
// changes get a confirmation prompt before the window goes away.
func (mw *MainWindow) onCloseRequested() {
	mw.savePrefs()
	if mw.state.Saving() {
		mw.updateStatus("Save in progress, waiting before closing")
		return
	}
	if mw.state.Modified() {
		dialog.ShowConfirm("Unsaved Changes",
			"There are unsaved changes. Close without saving?",
			func(confirmed bool) {
				if confirmed {
					mw.Window.Close()
				}
			}, mw.Window)
		return
	}
	mw.Window.Close()
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.areaCanvas = canvas.NewEditorCanvas(mw.state.Areas, mw.paintAreaFrame)
	mw.areaCanvas.OnZoom(
		func() { mw.state.Areas.Viewport.ZoomIn(); mw.refreshCanvases() },
		func() { mw.state.Areas.Viewport.ZoomOut(); mw.refreshCanvases() },
	)

	mw.templateCanvas = canvas.NewEditorCanvas(mw.state.Template, mw.paintTemplateFrame)
	mw.templateCanvas.OnZoom(
		func() { mw.state.Template.Viewport.ZoomIn(); mw.refreshCanvases() },
		func() { mw.state.Template.Viewport.ZoomOut(); mw.refreshCanvases() },
	)

	mw.areaPanel = panels.NewAreaPanel(mw.state, mw.refreshCanvases)
	mw.measurePanel = panels.NewMeasurePanel(mw.state, mw.refreshCanvases)
	mw.elementPanel = panels.NewElementPanel(mw.state, mw.refreshCanvases, mw.pickElementImage)
	mw.layersPanel = panels.NewLayersPanel(mw.state, mw.refreshCanvases)

	mw.statusBar = widget.NewLabel("Ready")

	areaSide := container.NewAppTabs(
		container.NewTabItem("Area", mw.areaPanel.Widget()),
		container.NewTabItem("Measure", mw.measurePanel.Widget()),
	)
	areaContent := container.NewBorder(
		mw.createAreaToolbar(), nil, nil, nil,
		mw.areaCanvas,
	)
	areaSplit := container.NewHSplit(areaSide, areaContent)
	areaSplit.SetOffset(0.25)

	templateSide := container.NewAppTabs(
		container.NewTabItem("Element", mw.elementPanel.Widget()),
		container.NewTabItem("Layers", mw.layersPanel.Widget()),
	)
	templateContent := container.NewBorder(
		mw.createTemplateToolbar(), nil, nil, nil,
		mw.templateCanvas,
	)
	templateSplit := container.NewHSplit(templateSide, templateContent)
	templateSplit.SetOffset(0.25)

	mw.tabs = container.NewAppTabs(
		container.NewTabItem("Print Areas", areaSplit),
		container.NewTabItem("Template", templateSplit),
	)
	mw.tabs.OnSelected = func(_ *container.TabItem) {
		mw.refreshCanvases()
	}

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil, nil,
		mw.tabs,
	)

	mw.SetContent(content)
	w, h := mw.prefs.WindowSize(1280, 800)
	mw.Resize(fyne.NewSize(float32(w), float32(h)))
}

// createAreaToolbar builds the tool and zoom strip for the area editor.
func (mw *MainWindow) createAreaToolbar() fyne.CanvasObject {
	toolBtn := func(label string, tool editor.AreaTool) *widget.Button {
		btn := widget.NewButton(label, func() {
			mw.state.Areas.SetTool(tool)
			mw.refreshAreaToolButtons()
			mw.refreshCanvases()
		})
		mw.areaToolBtns[tool] = btn
		return btn
	}

	tools := container.NewHBox(
		toolBtn("Select", editor.AreaToolSelect),
		toolBtn("Rectangle", editor.AreaToolRectangle),
		toolBtn("Circle", editor.AreaToolCircle),
		toolBtn("Measure", editor.AreaToolMeasure),
		toolBtn("Pan", editor.AreaToolPan),
	)
	mw.refreshAreaToolButtons()

	zoom := container.NewHBox(
		widget.NewButton("-", func() { mw.state.Areas.Viewport.ZoomOut(); mw.refreshCanvases() }),
		widget.NewButton("+", func() { mw.state.Areas.Viewport.ZoomIn(); mw.refreshCanvases() }),
		widget.NewButton("1:1", func() { mw.state.Areas.Viewport.Reset(); mw.refreshCanvases() }),
	)

	history := container.NewHBox(
		widget.NewButton("Undo", func() { mw.state.Areas.Undo(); mw.refreshAll() }),
		widget.NewButton("Redo", func() { mw.state.Areas.Redo(); mw.refreshAll() }),
	)

	return container.NewHBox(tools, widget.NewSeparator(), zoom, widget.NewSeparator(), history)
}

// createTemplateToolbar builds the tool and zoom strip for the template
// editor.
func (mw *MainWindow) createTemplateToolbar() fyne.CanvasObject {
	toolBtn := func(label string, tool editor.TemplateTool) *widget.Button {
		btn := widget.NewButton(label, func() {
			mw.state.Template.ActivateTool(tool)
			mw.refreshTemplateToolButtons()
			mw.refreshAll()
		})
		mw.templateToolBtns[tool] = btn
		return btn
	}

	tools := container.NewHBox(
		toolBtn("Select", editor.TemplateToolSelect),
		toolBtn("Text", editor.TemplateToolText),
		toolBtn("Image", editor.TemplateToolImage),
		toolBtn("Shape", editor.TemplateToolShape),
		toolBtn("Draw", editor.TemplateToolDraw),
	)
	mw.refreshTemplateToolButtons()

	mw.gridCheck = widget.NewCheck("Grid", func(on bool) {
		mw.state.Template.SetShowGrid(on)
		mw.prefs.SetBool(prefs.KeyShowGrid, on)
		mw.refreshCanvases()
	})
	mw.gridCheck.SetChecked(mw.state.Template.ShowGrid)
	mw.snapCheck = widget.NewCheck("Snap", func(on bool) {
		mw.state.Template.SetSnapToGrid(on)
		mw.prefs.SetBool(prefs.KeySnapToGrid, on)
	})
	mw.snapCheck.SetChecked(mw.state.Template.SnapToGrid)

	zoom := container.NewHBox(
		widget.NewButton("-", func() { mw.state.Template.Viewport.ZoomOut(); mw.refreshCanvases() }),
		widget.NewButton("+", func() { mw.state.Template.Viewport.ZoomIn(); mw.refreshCanvases() }),
		widget.NewButton("1:1", func() { mw.state.Template.Viewport.Reset(); mw.refreshCanvases() }),
	)

	history := container.NewHBox(
		widget.NewButton("Undo", func() { mw.state.Template.Undo(); mw.refreshAll() }),
		widget.NewButton("Redo", func() { mw.state.Template.Redo(); mw.refreshAll() }),
	)

	return container.NewHBox(
		tools,
		widget.NewSeparator(), mw.gridCheck, mw.snapCheck,
		widget.NewSeparator(), zoom,
		widget.NewSeparator(), history,
	)
}

func (mw *MainWindow) refreshAreaToolButtons() {
	active := mw.state.Areas.Tool()
	for tool, btn := range mw.areaToolBtns {
		if tool == active {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
}

func (mw *MainWindow) refreshTemplateToolButtons() {
	active := mw.state.Template.Tool()
	for tool, btn := range mw.templateToolBtns {
		if tool == active {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
}

// paintAreaFrame produces the area editor's frame at the surface size.
func (mw *MainWindow) paintAreaFrame(w, h int) image.Image {
	session := mw.state.Areas
	frame := render.AreaFrame{
		Width:      w,
		Height:     h,
		Viewport:   session.Viewport,
		Areas:      session.Scene.SortedByZ(),
		SelectedID: session.Scene.SelectedID(),
		Lines:      session.Scene.Lines,
		Text:       mw.text,
	}
	if img := mw.state.Image(); img != nil {
		frame.Background = img.Image
	}
	if shape, rect, ok := session.Preview(); ok {
		frame.Preview = &rect
		frame.PreviewShape = shape
	}
	if start, end, ok := session.MeasurePreview(); ok {
		line := [2]geometry.Point2D{start, end}
		if session.PendingMeasurement() != nil {
			frame.Pending = &line
		} else {
			frame.MeasurePreview = &line
		}
	}
	return render.PaintAreaFrame(frame)
}

// paintTemplateFrame produces the template editor's frame.
func (mw *MainWindow) paintTemplateFrame(w, h int) image.Image {
	session := mw.state.Template
	mw.syncImageCache()
	frame := render.TemplateFrame{
		Width:       w,
		Height:      h,
		Viewport:    session.Viewport,
		Canvas:      session.Canvas,
		Elements:    session.Scene.SortedByZ(),
		SelectedIDs: session.Scene.SelectedIDs(),
		ShowGrid:    session.ShowGrid,
		GridSize:    editor.GridDisplaySize,
		Images:      mw.imageCache,
		Text:        mw.text,
	}
	return render.PaintTemplateFrame(frame)
}

// syncImageCache decodes any image element sources not yet cached and
// drops cache entries for deleted elements.
func (mw *MainWindow) syncImageCache() {
	live := make(map[string]bool)
	for _, el := range mw.state.Template.Scene.Elements {
		if el.Image == nil {
			continue
		}
		live[el.ID] = true
		if el.Image.Source == "" {
			continue
		}
		if _, ok := mw.imageCache[el.ID]; ok {
			continue
		}
		if img, err := imageio.DecodeDataURI(el.Image.Source); err == nil {
			mw.imageCache[el.ID] = img
		}
	}
	for id := range mw.imageCache {
		if !live[id] {
			delete(mw.imageCache, id)
		}
	}
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Area Document", mw.onNewAreaDoc),
		fyne.NewMenuItem("Open Area Document...", mw.onOpenAreaDoc),
		fyne.NewMenuItem("Save Area Document", mw.onSaveAreaDoc),
		fyne.NewMenuItem("Save Area Document As...", mw.onSaveAreaDocAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("New Template", mw.onNewTemplate),
		fyne.NewMenuItem("Open Template...", mw.onOpenTemplate),
		fyne.NewMenuItem("Save Template", mw.onSaveTemplate),
		fyne.NewMenuItem("Save Template As...", mw.onSaveTemplateAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Load Product Image...", mw.onLoadImage),
		fyne.NewMenuItem("Export Template PNG...", mw.onExportPNG),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			mw.savePrefs()
			mw.app.Quit()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.onUndo),
		fyne.NewMenuItem("Redo", mw.onRedo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Copy", mw.onCopy),
		fyne.NewMenuItem("Paste", mw.onPaste),
		fyne.NewMenuItem("Duplicate", mw.onDuplicate),
		fyne.NewMenuItem("Delete", mw.onDelete),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", func() { mw.activeViewportZoom(true) }),
		fyne.NewMenuItem("Zoom Out", func() { mw.activeViewportZoom(false) }),
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Toggle Grid", func() {
			mw.gridCheck.SetChecked(!mw.gridCheck.Checked)
		}),
		fyne.NewMenuItem("Toggle Snap", func() {
			mw.snapCheck.SetChecked(!mw.snapCheck.Checked)
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventDocumentLoaded, func(data interface{}) {
		mw.areaCanvas.SetSession(mw.state.Areas)
		mw.templateCanvas.SetSession(mw.state.Template)
		mw.wireImagePick()
		mw.applyViewPrefs()
		if path, ok := data.(string); ok {
			mw.SetTitle("Print Studio - " + filepath.Base(path))
			mw.updateStatus("Opened " + path)
		}
		mw.refreshAll()
	})

	mw.state.On(app.EventDocumentSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Print Studio - " + filepath.Base(path))
			mw.updateStatus("Saved " + path)
		}
	})

	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		if err, ok := data.(error); ok {
			mw.updateStatus("Image load failed: " + err.Error())
			return
		}
		mw.refreshCanvases()
		mw.updateStatus("Product image loaded")
	})

	mw.state.On(app.EventSceneChanged, func(_ interface{}) {
		mw.refreshCanvases()
		mw.maybePromptMeasurement()
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})

	mw.wireImagePick()
}

// wireImagePick points the template session's image requests at a file
// dialog. Re-run whenever the session is rebuilt.
func (mw *MainWindow) wireImagePick() {
	mw.state.Template.OnImagePick(mw.pickElementImage)
}

// pickElementImage asks for an image file and stores it on the element
// as a data URI.
func (mw *MainWindow) pickElementImage(elementID string) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)

		uri, err := imageio.FileToDataURI(path)
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		delete(mw.imageCache, elementID)
		mw.state.Template.SetElementImageSource(elementID, uri)
		mw.state.Template.SaveToHistory()
		mw.refreshAll()
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(imageio.SupportedFormats()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

// maybePromptMeasurement opens the distance prompt when a measure
// gesture has just completed. The prompt is modeless on the session
// side; only one is shown at a time.
func (mw *MainWindow) maybePromptMeasurement() {
	if mw.measurePromptOpen || mw.state.Areas.PendingMeasurement() == nil {
		return
	}
	mw.measurePromptOpen = true
	dialogs.ShowMeasurement(mw.Window, mw.state.Areas, func() {
		mw.measurePromptOpen = false
		mw.refreshAll()
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) refreshCanvases() {
	mw.areaCanvas.Refresh()
	mw.templateCanvas.Refresh()
	vp := mw.state.Areas.Viewport
	if mw.templateTabActive() {
		vp = mw.state.Template.Viewport
	}
	mw.updateStatus(fmt.Sprintf("Zoom: %.0f%%", vp.Zoom()*100))
}

func (mw *MainWindow) refreshAll() {
	mw.refreshCanvases()
	mw.areaPanel.Refresh()
	mw.measurePanel.Refresh()
	mw.elementPanel.Refresh()
	mw.layersPanel.Refresh()
	mw.refreshAreaToolButtons()
	mw.refreshTemplateToolButtons()
}

// templateTabActive reports whether the template editor has focus.
func (mw *MainWindow) templateTabActive() bool {
	return mw.tabs.SelectedIndex() == 1
}

func (mw *MainWindow) activeViewportZoom(in bool) {
	vp := mw.state.Areas.Viewport
	if mw.templateTabActive() {
		vp = mw.state.Template.Viewport
	}
	if in {
		vp.ZoomIn()
	} else {
		vp.ZoomOut()
	}
	mw.refreshCanvases()
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastImageDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefs.KeyLastImageDir, filepath.Dir(filePath))
}

// restoreSession reopens the documents from the previous run.
func (mw *MainWindow) restoreSession() {
	if path := mw.prefs.String(prefs.KeyLastAreaDoc); path != "" {
		if err := mw.state.LoadAreaDocument(path); err != nil {
			mw.updateStatus("Could not reopen " + path)
		}
	}
	if path := mw.prefs.String(prefs.KeyLastTemplateDoc); path != "" {
		if err := mw.state.LoadTemplateDocument(path); err != nil {
			mw.updateStatus("Could not reopen " + path)
		}
	}
	mw.applyViewPrefs()
}

// applyViewPrefs pushes the persisted grid and snap settings into the
// template session and the toolbar checkboxes. Needed after any load
// that replaces the session, which resets those flags.
func (mw *MainWindow) applyViewPrefs() {
	showGrid := mw.prefs.Bool(prefs.KeyShowGrid, false)
	snap := mw.prefs.Bool(prefs.KeySnapToGrid, true)
	mw.state.Template.SetShowGrid(showGrid)
	mw.state.Template.SetSnapToGrid(snap)
	mw.gridCheck.SetChecked(showGrid)
	mw.snapCheck.SetChecked(snap)
}

func (mw *MainWindow) savePrefs() {
	size := mw.Canvas().Size()
	mw.prefs.SetWindowSize(float64(size.Width), float64(size.Height))
	if err := mw.prefs.Save(); err != nil {
		mw.updateStatus("Could not save preferences: " + err.Error())
	}
}

// Menu action handlers

func (mw *MainWindow) onNewAreaDoc() {
	mw.state.NewAreaDocument()
	mw.areaCanvas.SetSession(mw.state.Areas)
	mw.SetTitle("Print Studio - New Area Document")
	mw.refreshAll()
}

func (mw *MainWindow) onOpenAreaDoc() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadAreaDocument(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastAreaDoc, path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{areaDocExt}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveAreaDoc() {
	if mw.state.AreaDocPath == "" {
		mw.onSaveAreaDocAs()
		return
	}
	if err := mw.state.SaveAreaDocument(mw.state.AreaDocPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveAreaDocAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != areaDocExt {
			path += areaDocExt
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveAreaDocument(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastAreaDoc, path)
	}, mw.Window)
	fd.SetFileName("areas" + areaDocExt)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onNewTemplate() {
	mw.state.NewTemplateDocument()
	mw.templateCanvas.SetSession(mw.state.Template)
	mw.wireImagePick()
	mw.SetTitle("Print Studio - New Template")
	mw.refreshAll()
}

func (mw *MainWindow) onOpenTemplate() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadTemplateDocument(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastTemplateDoc, path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{templateDocExt}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveTemplate() {
	if mw.state.TemplateDocPath == "" {
		mw.onSaveTemplateAs()
		return
	}
	if err := mw.state.SaveTemplateDocument(mw.state.TemplateDocPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveTemplateAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != templateDocExt {
			path += templateDocExt
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveTemplateDocument(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.prefs.SetString(prefs.KeyLastTemplateDoc, path)
	}, mw.Window)
	fd.SetFileName("template" + templateDocExt)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onLoadImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		mw.state.LoadProductImage(path)
		mw.updateStatus("Loading " + filepath.Base(path) + "...")
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(imageio.SupportedFormats()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportPNG() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".png" {
			path += ".png"
		}
		session := mw.state.Template
		opts := export.Options{
			CanvasWidth:  session.Canvas.Width,
			CanvasHeight: session.Canvas.Height,
			Scale:        1.0,
		}
		if err := export.TemplatePNG(path, session.Scene.Elements, opts); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported " + path)
	}, mw.Window)
	fd.SetFileName("template.png")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onUndo() {
	if mw.templateTabActive() {
		mw.state.Template.Undo()
	} else {
		mw.state.Areas.Undo()
	}
	mw.refreshAll()
}

func (mw *MainWindow) onRedo() {
	if mw.templateTabActive() {
		mw.state.Template.Redo()
	} else {
		mw.state.Areas.Redo()
	}
	mw.refreshAll()
}

func (mw *MainWindow) onCopy() {
	if !mw.templateTabActive() {
		return
	}
	if err := mw.state.Template.CopySelected(); err != nil {
		mw.updateStatus("Copy failed: " + err.Error())
	}
}

func (mw *MainWindow) onPaste() {
	if !mw.templateTabActive() {
		return
	}
	if err := mw.state.Template.Paste(); err != nil {
		mw.updateStatus("Paste failed: " + err.Error())
		return
	}
	mw.refreshAll()
}

func (mw *MainWindow) onDuplicate() {
	if !mw.templateTabActive() {
		return
	}
	sel := mw.state.Template.Scene.Selected()
	if len(sel) == 0 {
		return
	}
	mw.state.Template.DuplicateElement(sel[0].ID)
	mw.refreshAll()
}

func (mw *MainWindow) onDelete() {
	if mw.templateTabActive() {
		mw.state.Template.DeleteSelected()
	} else if id := mw.state.Areas.Scene.SelectedID(); id != "" {
		mw.state.Areas.DeleteArea(id)
	}
	mw.refreshAll()
}

func (mw *MainWindow) onActualSize() {
	if mw.templateTabActive() {
		mw.state.Template.Viewport.Reset()
	} else {
		mw.state.Areas.Viewport.Reset()
	}
	mw.refreshCanvases()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Print Studio",
		fmt.Sprintf("Print Studio v%s\n\n"+
			"Print area and template design tool for\n"+
			"print-on-demand products.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
