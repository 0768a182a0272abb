package xml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Style types
const (
	StyleTypeTable     = "table"
	StyleTypeParagraph = "paragraph"
)

// Styles is the parsed content of word/styles.xml. Only the style
// identity fields are read; definitions stay in the original part.
type Styles struct {
	XMLName xml.Name   `xml:"styles"`
	Styles  []StyleDef `xml:"style"`
}

// StyleDef is a single w:style entry
type StyleDef struct {
	Type    string `xml:"type,attr"`
	Default string `xml:"default,attr"`
	StyleID string `xml:"styleId,attr"`
	Name    *Style `xml:"name"`
}

// DisplayName returns the UI name of the style, or its id when unnamed
func (s *StyleDef) DisplayName() string {
	if s.Name != nil && s.Name.Val != "" {
		return s.Name.Val
	}
	return s.StyleID
}

// IsDefault reports whether the style is the default for its type
func (s *StyleDef) IsDefault() bool {
	switch strings.ToLower(s.Default) {
	case "1", "true", "on":
		return true
	}
	return false
}

// ParseStyles parses a styles part
func ParseStyles(r io.Reader) (*Styles, error) {
	var styles Styles
	if err := xml.NewDecoder(r).Decode(&styles); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}
	return &styles, nil
}

// Default returns the default style of the given type, or nil
func (s *Styles) Default(styleType string) *StyleDef {
	if s == nil {
		return nil
	}
	for i := range s.Styles {
		if s.Styles[i].Type == styleType && s.Styles[i].IsDefault() {
			return &s.Styles[i]
		}
	}
	return nil
}

// Find looks a style of the given type up by id or UI name. UI names are
// compared case-insensitively, ignoring spaces and hyphens, so
// "Light Shading Accent 1" matches "LightShading-Accent1".
func (s *Styles) Find(styleType, nameOrID string) *StyleDef {
	if s == nil {
		return nil
	}
	for i := range s.Styles {
		if s.Styles[i].Type == styleType && s.Styles[i].StyleID == nameOrID {
			return &s.Styles[i]
		}
	}
	key := normalizeStyleName(nameOrID)
	for i := range s.Styles {
		def := &s.Styles[i]
		if def.Type != styleType {
			continue
		}
		if normalizeStyleName(def.DisplayName()) == key || normalizeStyleName(def.StyleID) == key {
			return def
		}
	}
	return nil
}

func normalizeStyleName(name string) string {
	name = strings.ToLower(name)
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(name)
}
