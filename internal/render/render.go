// Package render formats an extracted diagram for terminals and text-based
// diagram tools.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shahar-caura/textuml/internal/diagram"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMermaid  Format = "mermaid"
	FormatPlantUML Format = "plantuml"
)

// Formats lists every supported format, in help-text order.
var Formats = []Format{FormatJSON, FormatYAML, FormatMermaid, FormatPlantUML}

// ErrUnknownFormat is returned for a format outside Formats.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q (want one of %s)", ErrUnknownFormat, s, formatList())
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// arrows maps each relationship kind to its class-diagram arrow, shared by
// Mermaid and PlantUML.
var arrows = map[diagram.Kind]string{
	diagram.Inheritance: "--|>",
	diagram.Composition: "*--",
	diagram.Aggregation: "o--",
	diagram.Association: "-->",
}

// Write renders result to w. JSON renders failures as the wire payload; every
// other format returns the failure as an error.
func Write(w io.Writer, result diagram.Result, format Format) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	switch res := result.(type) {
	case *diagram.Success:
		switch format {
		case FormatYAML:
			enc := yaml.NewEncoder(w)
			enc.SetIndent(2)
			if err := enc.Encode(res); err != nil {
				return err
			}
			return enc.Close()
		case FormatMermaid:
			_, err := io.WriteString(w, Mermaid(res))
			return err
		case FormatPlantUML:
			_, err := io.WriteString(w, PlantUML(res))
			return err
		default:
			return fmt.Errorf("%w %q", ErrUnknownFormat, format)
		}
	case *diagram.Failure:
		return res
	default:
		return fmt.Errorf("unexpected result type %T", result)
	}
}

// Mermaid renders a classDiagram block.
func Mermaid(s *diagram.Success) string {
	var sb strings.Builder
	sb.WriteString("classDiagram\n")
	for _, class := range s.Classes {
		attrs := s.Attributes[class]
		if len(attrs) == 0 {
			fmt.Fprintf(&sb, "    class %s\n", class)
			continue
		}
		fmt.Fprintf(&sb, "    class %s {\n", class)
		for _, a := range attrs {
			fmt.Fprintf(&sb, "        %s\n", a)
		}
		sb.WriteString("    }\n")
	}
	for _, rel := range s.Relationships {
		fmt.Fprintf(&sb, "    %s %s %s : %s\n", rel.Source, arrows[rel.Kind], rel.Target, rel.Label)
	}
	return sb.String()
}

// PlantUML renders an @startuml document with one class block per class.
func PlantUML(s *diagram.Success) string {
	var sb strings.Builder
	sb.WriteString("@startuml\n")
	for _, class := range s.Classes {
		fmt.Fprintf(&sb, "class %s {\n", class)
		for _, a := range s.Attributes[class] {
			fmt.Fprintf(&sb, "  %s\n", a)
		}
		sb.WriteString("}\n")
	}
	for _, rel := range s.Relationships {
		fmt.Fprintf(&sb, "%s %s %s : %s\n", rel.Source, arrows[rel.Kind], rel.Target, rel.Label)
	}
	sb.WriteString("@enduml\n")
	return sb.String()
}
