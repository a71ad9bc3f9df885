package scene

import (
	"print-studio/pkg/geometry"
)

// ElementType identifies the variant of a template element.
type ElementType string

const (
	ElementText  ElementType = "text"
	ElementImage ElementType = "image"
	ElementShape ElementType = "shape"
)

// TextProps holds the text-variant attributes of an element.
type TextProps struct {
	Content    string  `json:"text"`
	FontSize   float64 `json:"fontSize"`
	FontFamily string  `json:"fontFamily"`
	FontWeight string  `json:"fontWeight,omitempty"`
	FontStyle  string  `json:"fontStyle,omitempty"`
	Fill       string  `json:"fill"`
	TextAlign  string  `json:"textAlign,omitempty"`
}

// ImageProps holds the image-variant attributes of an element. Source is
// a URL or data URI; a pending element has an empty Source until its file
// read completes.
type ImageProps struct {
	Source      string `json:"src"`
	CrossOrigin string `json:"crossOrigin,omitempty"`
}

// ShapeProps holds the shape-variant attributes of an element.
type ShapeProps struct {
	ShapeType   string  `json:"shapeType"`
	FillColor   string  `json:"fillColor"`
	StrokeColor string  `json:"strokeColor,omitempty"`
	StrokeWidth float64 `json:"strokeWidth,omitempty"`
}

// Element is a positionable design element on a template canvas. Exactly
// one of Text, Image, Shape is non-nil, matching Type.
type Element struct {
	ID        string      `json:"id"`
	Type      ElementType `json:"type"`
	X         float64     `json:"x"`
	Y         float64     `json:"y"`
	Width     float64     `json:"width"`
	Height    float64     `json:"height"`
	Rotation  float64     `json:"rotation"`
	ScaleX    float64     `json:"scaleX"`
	ScaleY    float64     `json:"scaleY"`
	Opacity   float64     `json:"opacity"`
	ZIndex    int         `json:"zIndex"`
	IsLocked  bool        `json:"isLocked"`
	IsVisible bool        `json:"isVisible"`

	Text  *TextProps  `json:"textProps,omitempty"`
	Image *ImageProps `json:"imageProps,omitempty"`
	Shape *ShapeProps `json:"shapeProps,omitempty"`
}

// Bounds returns the element's axis-aligned bounding box.
func (e *Element) Bounds() geometry.Rect {
	return geometry.NewRect(e.X, e.Y, e.Width, e.Height)
}

// Clone returns a deep copy of the element.
func (e *Element) Clone() *Element {
	c := *e
	if e.Text != nil {
		t := *e.Text
		c.Text = &t
	}
	if e.Image != nil {
		i := *e.Image
		c.Image = &i
	}
	if e.Shape != nil {
		s := *e.Shape
		c.Shape = &s
	}
	return &c
}

// NewTextElement returns a text element with the editor defaults.
func NewTextElement() *Element {
	el := newElementDefaults(ElementText)
	el.Text = &TextProps{
		Content:    "New text",
		FontSize:   24,
		FontFamily: "Arial",
		Fill:       "#000000",
	}
	return el
}

// NewImageElement returns an image element in its pending state: the
// source is filled in once the file read completes.
func NewImageElement() *Element {
	el := newElementDefaults(ElementImage)
	el.Image = &ImageProps{}
	return el
}

// NewShapeElement returns a shape element with the editor defaults.
func NewShapeElement(shapeType string) *Element {
	el := newElementDefaults(ElementShape)
	if shapeType == "" {
		shapeType = "rectangle"
	}
	el.Shape = &ShapeProps{
		ShapeType: shapeType,
		FillColor: "#3B82F6",
	}
	return el
}

func newElementDefaults(t ElementType) *Element {
	return &Element{
		ID:        NewID("element"),
		Type:      t,
		X:         100,
		Y:         100,
		Width:     100,
		Height:    100,
		ScaleX:    1,
		ScaleY:    1,
		Opacity:   1,
		IsVisible: true,
	}
}
