package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ElementKey is the W3C "web element identifier" property name used to
// carry an opaque element handle inside a JSON object.
const ElementKey = "element-6066-11e4-a52e-4f735466cecf"

// UnmarshalJSON decodes an ActionItem, resolving the polymorphic
// `origin` field (absent, "viewport"/"pointer" string, or a web element
// reference object) into an *Origin.
func (a *ActionItem) UnmarshalJSON(data []byte) error {
	type alias ActionItem
	var raw struct {
		alias
		Origin json.RawMessage `json:"origin"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = ActionItem(raw.alias)
	a.Origin = nil
	if len(raw.Origin) == 0 || bytes.Equal(bytes.TrimSpace(raw.Origin), []byte("null")) {
		return nil
	}
	trimmed := bytes.TrimSpace(raw.Origin)
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(raw.Origin, &s); err != nil {
			return err
		}
		switch s {
		case "viewport":
			a.Origin = &Origin{Kind: OriginViewport}
		case "pointer":
			a.Origin = &Origin{Kind: OriginPointer}
		default:
			return fmt.Errorf("wire: unrecognized pointer origin %q", s)
		}
		return nil
	}
	var obj map[string]string
	if err := json.Unmarshal(raw.Origin, &obj); err != nil {
		return err
	}
	elem, ok := obj[ElementKey]
	if !ok {
		return fmt.Errorf("wire: origin object missing %q", ElementKey)
	}
	a.Origin = &Origin{Kind: OriginElement, Element: elem}
	return nil
}

// UnmarshalJSON decodes a SwitchToFrameParameters id field: null selects
// the top-level context; a web element reference selects by element.
// Selection by numeric short id is recognized but rejected downstream
// with UnsupportedOperation, per spec.md's Non-goals.
func (p *SwitchToFrameParameters) UnmarshalJSON(data []byte) error {
	var envelope struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	if len(envelope.ID) == 0 || bytes.Equal(bytes.TrimSpace(envelope.ID), []byte("null")) {
		p.ID = nil
		return nil
	}
	trimmed := bytes.TrimSpace(envelope.ID)
	if trimmed[0] == '{' {
		var obj map[string]string
		if err := json.Unmarshal(envelope.ID, &obj); err != nil {
			return err
		}
		if elem, ok := obj[ElementKey]; ok {
			p.ID = &FrameID{Element: &elem}
			return nil
		}
		return fmt.Errorf("wire: frame id object missing %q", ElementKey)
	}
	// Numeric short id: represented as a FrameID with no Element set, so
	// callers can distinguish it from "no id" and reject it explicitly.
	p.ID = &FrameID{}
	return nil
}

// ElementObject encodes an element handle using the standard web element
// identifier key, as required by the WebDriver wire protocol.
func ElementObject(handle string) map[string]string {
	return map[string]string{ElementKey: handle}
}
