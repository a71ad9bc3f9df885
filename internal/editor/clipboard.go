package editor

import (
	"encoding/json"
	"fmt"

	"github.com/atotto/clipboard"

	"print-studio/internal/scene"
)

// clipboardPayload wraps copied elements so paste can tell our data
// apart from arbitrary clipboard text.
type clipboardPayload struct {
	Kind     string           `json:"kind"`
	Elements []*scene.Element `json:"elements"`
}

const clipboardKind = "print-studio/elements"

// CopySelected serializes the selected elements to the system clipboard.
// Copying an empty selection is a no-op.
func (s *TemplateSession) CopySelected() error {
	selected := s.Scene.Selected()
	if len(selected) == 0 {
		return nil
	}

	payload := clipboardPayload{Kind: clipboardKind}
	for _, el := range selected {
		payload.Elements = append(payload.Elements, el.Clone())
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding clipboard payload: %w", err)
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// Paste inserts elements previously copied with CopySelected, offset
// down-right like duplication, and selects the pasted copies. Clipboard
// content that is not ours is ignored.
func (s *TemplateSession) Paste() error {
	data, err := clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("reading clipboard: %w", err)
	}

	var payload clipboardPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil || payload.Kind != clipboardKind {
		return nil
	}
	if len(payload.Elements) == 0 {
		return nil
	}

	var ids []string
	for _, el := range payload.Elements {
		pasted := el.Clone()
		pasted.ID = ""
		pasted.X += scene.DuplicateOffset
		pasted.Y += scene.DuplicateOffset
		added := s.Scene.AddElement(pasted)
		ids = append(ids, added.ID)
	}
	s.Scene.Select(ids...)
	s.SaveToHistory()
	s.changed()
	return nil
}
