// Package editor implements the interaction state machines of the two
// editor surfaces: the print-area editor and the template editor. A
// session owns the scene, viewport, calibration, and history of one
// editing surface and interprets pointer events according to the active
// tool. Exactly one gesture is in flight at a time; switching tools
// cancels any in-progress gesture without committing a partial entity.
package editor

// AreaTool is the active interaction mode of the print-area editor.
type AreaTool int

const (
	AreaToolSelect AreaTool = iota
	AreaToolRectangle
	AreaToolCircle
	AreaToolMeasure
	AreaToolPan
)

func (t AreaTool) String() string {
	switch t {
	case AreaToolSelect:
		return "select"
	case AreaToolRectangle:
		return "rectangle"
	case AreaToolCircle:
		return "circle"
	case AreaToolMeasure:
		return "measure"
	case AreaToolPan:
		return "pan"
	default:
		return "unknown"
	}
}

// TemplateTool is the active interaction mode of the template editor.
type TemplateTool int

const (
	TemplateToolSelect TemplateTool = iota
	TemplateToolText
	TemplateToolImage
	TemplateToolShape
	TemplateToolDraw
)

func (t TemplateTool) String() string {
	switch t {
	case TemplateToolSelect:
		return "select"
	case TemplateToolText:
		return "text"
	case TemplateToolImage:
		return "image"
	case TemplateToolShape:
		return "shape"
	case TemplateToolDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// StandardSize is a common print format applied to a selected area when
// calibration is available.
type StandardSize struct {
	Name   string
	Width  float64 // cm
	Height float64 // cm
}

// StandardSizes lists the supported print formats.
var StandardSizes = []StandardSize{
	{Name: "A2", Width: 42.0, Height: 59.4},
	{Name: "A3", Width: 29.7, Height: 42.0},
	{Name: "A4", Width: 21.0, Height: 29.7},
	{Name: "A5", Width: 14.8, Height: 21.0},
}

// StandardSizeByName looks up a print format by name.
func StandardSizeByName(name string) (StandardSize, bool) {
	for _, s := range StandardSizes {
		if s.Name == name {
			return s, true
		}
	}
	return StandardSize{}, false
}
