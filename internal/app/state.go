// Package app provides application lifecycle management, configuration, and events.
package app

import (
	"sync"

	"print-studio/internal/editor"
	"print-studio/internal/imageio"
	"print-studio/internal/persist"
)

// State holds the application state: open documents, editing sessions,
// the product image, and event listeners.
type State struct {
	mu sync.RWMutex

	// Open document paths, empty until first save.
	AreaDocPath     string
	TemplateDocPath string

	AreaDoc     *persist.AreaDocument
	TemplateDoc *persist.TemplateDocument

	// Editing sessions
	Areas    *editor.AreaSession
	Template *editor.TemplateSession

	// Product image, nil until loaded
	ProductImage *imageio.ProductImage

	areaGuard     persist.SaveGuard
	templateGuard persist.SaveGuard

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventDocumentLoaded EventType = iota
	EventDocumentSaved
	EventImageLoaded
	EventSceneChanged
	EventCalibrationChanged
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state with empty documents.
func NewState() *State {
	s := &State{
		AreaDoc:     persist.NewAreaDocument("Untitled"),
		TemplateDoc: persist.NewTemplateDocument("Untitled", editor.DefaultCanvasWidth, editor.DefaultCanvasHeight),
		listeners:   make(map[EventType][]EventListener),
	}
	s.Areas = editor.NewAreaSession(nil, nil, 0, false)
	s.Template = editor.NewTemplateSession(nil)
	s.wireSessions()
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

func (s *State) wireSessions() {
	s.Areas.OnChange(func() {
		s.Emit(EventSceneChanged, nil)
		if s.Areas.Dirty() {
			s.Emit(EventModified, true)
		}
	})
	s.Template.OnChange(func() {
		s.Emit(EventSceneChanged, nil)
		if s.Template.Dirty() {
			s.Emit(EventModified, true)
		}
	})
}

// Modified reports whether either open document has unsaved changes.
func (s *State) Modified() bool {
	return s.Areas.Dirty() || s.Template.Dirty()
}

// Saving reports whether a document save is currently in flight.
func (s *State) Saving() bool {
	return s.areaGuard.Saving() || s.templateGuard.Saving()
}

// NewAreaDocument discards the open area document and starts a blank
// one.
func (s *State) NewAreaDocument() {
	s.mu.Lock()
	s.AreaDocPath = ""
	s.AreaDoc = persist.NewAreaDocument("Untitled")
	s.ProductImage = nil
	s.mu.Unlock()

	s.Areas = editor.NewAreaSession(nil, nil, 0, false)
	s.wireSessions()
	s.Emit(EventSceneChanged, nil)
}

// NewTemplateDocument discards the open template and starts a blank
// one.
func (s *State) NewTemplateDocument() {
	s.mu.Lock()
	s.TemplateDocPath = ""
	s.TemplateDoc = persist.NewTemplateDocument("Untitled", editor.DefaultCanvasWidth, editor.DefaultCanvasHeight)
	s.mu.Unlock()

	s.Template = editor.NewTemplateSession(nil)
	s.wireSessions()
	s.Emit(EventSceneChanged, nil)
}

// LoadAreaDocument opens an area document and rebuilds the area session
// around it. The product image, if any, loads in the background and
// arrives through EventImageLoaded.
func (s *State) LoadAreaDocument(path string) error {
	doc, err := persist.LoadAreaDocument(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.AreaDocPath = path
	s.AreaDoc = doc
	s.ProductImage = nil
	s.mu.Unlock()

	s.Areas = editor.NewAreaSession(doc.Areas, doc.Lines, doc.PixelsPerCm, doc.PixelsPerCm > 0)
	s.wireSessions()

	if imgPath := doc.GetImagePath(path); imgPath != "" {
		s.loadImageAsync(imgPath)
	}

	s.Emit(EventDocumentLoaded, path)
	return nil
}

// SaveAreaDocument writes the area session back to its document. Returns
// persist.ErrSaveInFlight when a save is already running.
func (s *State) SaveAreaDocument(path string) error {
	return s.areaGuard.Do(func() error {
		s.mu.Lock()
		doc := s.AreaDoc
		doc.Areas = s.Areas.Scene.Areas
		doc.Lines = s.Areas.Scene.Lines
		doc.PixelsPerCm = s.Areas.Calibration.PixelsPerCm()
		if s.ProductImage != nil {
			sz := s.ProductImage.Size()
			doc.ImageWidth = sz.Width
			doc.ImageHeight = sz.Height
		}
		s.AreaDocPath = path
		s.mu.Unlock()

		return doc.Save(path)
	}, func() {
		s.Areas.ClearDirty()
		s.Emit(EventDocumentSaved, path)
	})
}

// LoadTemplateDocument opens a template document and rebuilds the
// template session around it.
func (s *State) LoadTemplateDocument(path string) error {
	doc, err := persist.LoadTemplateDocument(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.TemplateDocPath = path
	s.TemplateDoc = doc
	s.mu.Unlock()

	s.Template = editor.NewTemplateSession(doc.Elements)
	s.Template.Canvas.Width = doc.CanvasWidth
	s.Template.Canvas.Height = doc.CanvasHeight
	s.wireSessions()

	s.Emit(EventDocumentLoaded, path)
	return nil
}

// SaveTemplateDocument writes the template session back to its document.
func (s *State) SaveTemplateDocument(path string) error {
	return s.templateGuard.Do(func() error {
		s.mu.Lock()
		doc := s.TemplateDoc
		doc.Elements = s.Template.Scene.Elements
		doc.CanvasWidth = s.Template.Canvas.Width
		doc.CanvasHeight = s.Template.Canvas.Height
		s.TemplateDocPath = path
		s.mu.Unlock()

		return doc.Save(path)
	}, func() {
		s.Template.ClearDirty()
		s.Emit(EventDocumentSaved, path)
	})
}

// LoadProductImage starts a background load of the product image for the
// area editor.
func (s *State) LoadProductImage(path string) {
	s.loadImageAsync(path)
}

func (s *State) loadImageAsync(path string) {
	imageio.LoadAsync(path, func(img *imageio.ProductImage, err error) {
		if err != nil {
			s.Emit(EventImageLoaded, err)
			return
		}

		s.mu.Lock()
		s.ProductImage = img
		s.mu.Unlock()

		s.Areas.SetImageSize(img.Size())
		s.mu.Lock()
		s.AreaDoc.SetImage(s.AreaDocPath, path, img.Size().Width, img.Size().Height)
		s.mu.Unlock()

		s.Emit(EventImageLoaded, img)
	})
}

// Image returns the loaded product image, or nil.
func (s *State) Image() *imageio.ProductImage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ProductImage
}
