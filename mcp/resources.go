package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/lvillar/badgekit"
	"github.com/lvillar/badgekit/fields"
)

// RegisterDefaultResources adds the reference resources under the
// badgekit:// scheme.
func RegisterDefaultResources(s *Server) {
	s.AddResource(Resource{
		URI:         "badgekit://template/sample",
		Name:        "Sample Badge Template",
		Description: "A 4x6 in fold-over attendee badge using every element type. Start new templates from it.",
		MIMEType:    "application/json",
		Handler:     handleSampleTemplateResource,
	})

	s.AddResource(Resource{
		URI:         "badgekit://fields/synonyms",
		Name:        "Field Synonyms",
		Description: "Standard contact fields that resolve under both camelCase and snake_case names, and the lookup order for placeholders.",
		MIMEType:    "application/json",
		Handler:     handleSynonymsResource,
	})
}

// SampleTemplate returns the template served as badgekit://template/sample.
func SampleTemplate() *badgekit.Template {
	t := &badgekit.Template{
		Name:        "Attendee",
		Description: "Fold-over attendee badge: name on the front, contact details on the back",
		Page:        badgekit.BadgePage(),
	}
	t.AddElement(badgekit.TextElement{
		Frame:     badgekit.Frame{ID: "name", X: 0.25, Y: 0.75, Width: 3.5, Height: 0.5},
		TextStyle: badgekit.TextStyle{Content: "{{firstName}} {{lastName}}", FontSize: 24, Bold: true, Align: badgekit.AlignCenter},
	})
	t.AddElement(badgekit.TextElement{
		Frame:     badgekit.Frame{ID: "company", X: 0.25, Y: 1.35, Width: 3.5, Height: 0.35},
		TextStyle: badgekit.TextStyle{Content: "{{company}}", FontSize: 14, Align: badgekit.AlignCenter, Color: "#336699"},
	})
	t.AddElement(badgekit.BarcodeElement{
		Frame:     badgekit.Frame{ID: "checkin", X: 1.5, Y: 1.9, Width: 1, Height: 1},
		Content:   "{{contactId}}",
		Symbology: badgekit.SymbologyQR,
	})
	t.AddElement(badgekit.LineElement{
		Frame: badgekit.Frame{ID: "fold", Y: 2.95, Width: 4, Height: 0.1},
		Style: badgekit.StrokeDotted, Color: "silver",
	})
	t.AddElement(badgekit.TextAreaElement{
		Frame:     badgekit.Frame{ID: "details", X: 0.25, Y: 3.4, Width: 3.5, Height: 1.4},
		TextStyle: badgekit.TextStyle{Content: "{{email}}\n{{phone_number}}", FontSize: 11},
	})
	t.AddElement(badgekit.CheckboxElement{
		Frame: badgekit.Frame{ID: "dinner", X: 0.25, Y: 5, Width: 2, Height: 0.3},
		Label: "Dinner", Checked: true,
	})
	t.AddElement(badgekit.SquareElement{
		Frame:       badgekit.Frame{ID: "frame", X: 0.1, Y: 3.1, Width: 3.8, Height: 2.8},
		BorderWidth: 1, BorderStyle: badgekit.StrokeSolid, BorderColor: "gray",
	})
	return t
}

func handleSampleTemplateResource(uri string) ([]ResourceContent, error) {
	data, err := badgekit.MarshalTemplate(SampleTemplate())
	if err != nil {
		return nil, fmt.Errorf("encoding sample template: %w", err)
	}
	return []ResourceContent{{
		URI:      uri,
		MIMEType: "application/json",
		Text:     string(data),
	}}, nil
}

func handleSynonymsResource(uri string) ([]ResourceContent, error) {
	strategies := make([]string, len(fields.DefaultChain))
	for i, s := range fields.DefaultChain {
		strategies[i] = s.Name()
	}
	info := map[string]any{
		"synonyms":    fields.DefaultSynonyms,
		"lookupOrder": strategies,
	}

	jsonBytes, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding synonyms: %w", err)
	}
	return []ResourceContent{{
		URI:      uri,
		MIMEType: "application/json",
		Text:     string(jsonBytes),
	}}, nil
}
