package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lvillar/badgekit"
	"github.com/lvillar/badgekit/fields"
	"github.com/lvillar/badgekit/geometry"
	"github.com/lvillar/badgekit/pageops"
)

// RegisterDefaultTools adds the badge tools to the server. Every tool
// renders with c.
func RegisterDefaultTools(s *Server, c *badgekit.Composer) {
	s.AddTool(renderBadgeTool(c))
	s.AddTool(previewBadgeTool(c))
	s.AddTool(validateTemplateTool())
	s.AddTool(renderBatchTool(c))
	s.AddTool(resolveFieldTool())
}

var templateSchema = map[string]any{
	"description": "Badge template, either as an object or as a JSON or YAML string",
}

var recordSchema = map[string]any{
	"type":        "object",
	"description": "Contact record: flat string fields plus an optional customFields object",
}

func renderBadgeTool(c *badgekit.Composer) Tool {
	return Tool{
		Name:        "render_badge",
		Description: "Render a badge template for one contact record. Returns the PDF as base64, or saves it when outputPath is set. Elements that failed to draw are listed in the result.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"template": templateSchema,
				"record":   recordSchema,
				"outputPath": map[string]any{
					"type":        "string",
					"description": "Optional file path to save the PDF. If omitted, returns base64.",
				},
			},
			"required": []string{"template"},
		},
		Handler: func(ctx context.Context, args map[string]any) (ToolResult, error) {
			t, err := parseTemplateArg(args)
			if err != nil {
				return ToolResult{}, err
			}
			var rec fields.Record
			if err := decodeArg(args, "record", &rec); err != nil {
				return ToolResult{}, err
			}
			a, err := c.Render(t, rec)
			if err != nil {
				return ToolResult{}, fmt.Errorf("rendering badge: %w", err)
			}
			return pdfResult(args, a.PDF, problemText(a.Problems))
		},
	}
}

func previewBadgeTool(c *badgekit.Composer) Tool {
	return Tool{
		Name:        "preview_badge",
		Description: "Resolve a badge template against a record without rendering. Returns each element's resolved content and its box on the page in points.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"template": templateSchema,
				"record":   recordSchema,
				"mode": map[string]any{
					"type":        "string",
					"enum":        []string{"print", "design", "fold-preview"},
					"description": "Placement mode (default: print)",
				},
			},
			"required": []string{"template"},
		},
		Handler: func(ctx context.Context, args map[string]any) (ToolResult, error) {
			t, err := parseTemplateArg(args)
			if err != nil {
				return ToolResult{}, err
			}
			var rec fields.Record
			if err := decodeArg(args, "record", &rec); err != nil {
				return ToolResult{}, err
			}
			name, _ := args["mode"].(string)
			mode, err := geometry.ParseMode(name)
			if err != nil {
				return ToolResult{}, err
			}
			p, err := c.PreviewMode(t, rec, mode)
			if err != nil {
				return ToolResult{}, err
			}
			return jsonResult(p)
		},
	}
}

func validateTemplateTool() Tool {
	return Tool{
		Name:        "validate_template",
		Description: "Check a badge template. Reports every violation with its element index, plus elements that extend past the page.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"template": templateSchema,
			},
			"required": []string{"template"},
		},
		Handler: func(ctx context.Context, args map[string]any) (ToolResult, error) {
			t, err := parseTemplateArg(args)
			if err == nil {
				err = badgekit.Validate(t)
			}
			var verrs badgekit.ValidationErrors
			if err != nil && !errors.As(err, &verrs) {
				return ToolResult{}, err
			}
			report := map[string]any{"valid": len(verrs) == 0}
			if len(verrs) > 0 {
				report["violations"] = verrs
			}
			if t == nil {
				return jsonResult(report)
			}
			if warnings := badgekit.BoundsWarnings(t); len(warnings) > 0 {
				report["warnings"] = warnings
			}
			return jsonResult(report)
		},
	}
}

func renderBatchTool(c *badgekit.Composer) Tool {
	return Tool{
		Name:        "render_batch",
		Description: "Render one badge per record into a single print job. With a layout, badges are imposed several to a sheet. A watermark stamps every page, for proofs.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"template": templateSchema,
				"records": map[string]any{
					"type":        "array",
					"items":       recordSchema,
					"description": "Contact records, one badge each",
				},
				"outputPath": map[string]any{
					"type":        "string",
					"description": "Optional file path to save the PDF. If omitted, returns base64.",
				},
				"layout": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"sheet":     map[string]any{"type": "string", "enum": []string{"letter", "a4"}},
						"cols":      map[string]any{"type": "number"},
						"rows":      map[string]any{"type": "number"},
						"gutter":    map[string]any{"type": "number", "description": "Space between badges in points"},
						"cropMarks": map[string]any{"type": "boolean"},
					},
					"description": "Optional sheet imposition",
				},
				"watermark": map[string]any{
					"type":        "string",
					"description": "Optional text stamped across every page, e.g. PROOF",
				},
			},
			"required": []string{"template", "records"},
		},
		Handler: func(ctx context.Context, args map[string]any) (ToolResult, error) {
			t, err := parseTemplateArg(args)
			if err != nil {
				return ToolResult{}, err
			}
			var records []fields.Record
			if err := decodeArg(args, "records", &records); err != nil {
				return ToolResult{}, err
			}
			if len(records) == 0 {
				return ToolResult{}, fmt.Errorf("'records' must not be empty")
			}

			var buf bytes.Buffer
			var arts []*badgekit.Artifact
			if _, ok := args["layout"]; ok {
				layout, err := parseLayout(args)
				if err != nil {
					return ToolResult{}, err
				}
				arts, err = c.RenderBatchSheets(ctx, &buf, layout, t, records)
				if err != nil {
					return ToolResult{}, err
				}
			} else {
				arts, err = c.RenderBatchPDF(ctx, &buf, t, records)
				if err != nil {
					return ToolResult{}, err
				}
			}

			data := buf.Bytes()
			if text, _ := args["watermark"].(string); text != "" {
				var stamped bytes.Buffer
				if err := pageops.AddTextWatermark(&stamped, data, pageops.TextWatermark{Text: text}); err != nil {
					return ToolResult{}, fmt.Errorf("stamping watermark: %w", err)
				}
				data = stamped.Bytes()
			}

			var notes []string
			for i, a := range arts {
				if len(a.Problems) > 0 {
					notes = append(notes, fmt.Sprintf("record %d: %s", i, problemText(a.Problems)))
				}
			}
			return pdfResult(args, data, strings.Join(notes, "\n"))
		},
	}
}

func resolveFieldTool() Tool {
	return Tool{
		Name:        "resolve_field",
		Description: "Look up a placeholder field name in a record and report which lookup strategy matched.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name": map[string]any{
					"type":        "string",
					"description": "Field name as written inside {{ }}",
				},
				"record": recordSchema,
			},
			"required": []string{"name", "record"},
		},
		Handler: func(ctx context.Context, args map[string]any) (ToolResult, error) {
			name, ok := args["name"].(string)
			if !ok {
				return ToolResult{}, fmt.Errorf("missing 'name' argument")
			}
			var rec fields.Record
			if err := decodeArg(args, "record", &rec); err != nil {
				return ToolResult{}, err
			}
			value, strategy, found := fields.DefaultChain.ResolveWith(strings.TrimSpace(name), rec)
			return jsonResult(map[string]any{
				"name":     name,
				"found":    found,
				"value":    value,
				"strategy": strategy,
			})
		},
	}
}

// parseTemplateArg reads the "template" argument. Objects are re-encoded as
// JSON; strings may hold JSON or YAML.
func parseTemplateArg(args map[string]any) (*badgekit.Template, error) {
	raw, ok := args["template"]
	if !ok {
		return nil, fmt.Errorf("missing 'template' argument")
	}
	var data []byte
	if s, ok := raw.(string); ok {
		data = []byte(s)
	} else {
		var err error
		if data, err = json.Marshal(raw); err != nil {
			return nil, fmt.Errorf("encoding template: %w", err)
		}
	}
	return badgekit.ParseTemplate(data)
}

// decodeArg decodes an optional argument into v by way of JSON.
func decodeArg(args map[string]any, key string, v any) error {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encoding '%s': %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid '%s' argument: %w", key, err)
	}
	return nil
}

func parseLayout(args map[string]any) (pageops.Layout, error) {
	var req struct {
		Sheet     string  `json:"sheet"`
		Cols      int     `json:"cols"`
		Rows      int     `json:"rows"`
		Gutter    float64 `json:"gutter"`
		CropMarks bool    `json:"cropMarks"`
	}
	if err := decodeArg(args, "layout", &req); err != nil {
		return pageops.Layout{}, err
	}
	layout := pageops.Layout{Cols: req.Cols, Rows: req.Rows, Gutter: req.Gutter, CropMarks: req.CropMarks}
	switch strings.ToLower(req.Sheet) {
	case "", "letter":
		layout.Sheet = pageops.Letter
	case "a4":
		layout.Sheet = pageops.A4
	default:
		return pageops.Layout{}, fmt.Errorf("unknown sheet %q", req.Sheet)
	}
	return layout, nil
}

func problemText(problems []*badgekit.ElementError) string {
	msgs := make([]string, len(problems))
	for i, p := range problems {
		msgs[i] = p.Error()
	}
	return strings.Join(msgs, "; ")
}

func pdfResult(args map[string]any, data []byte, problems string) (ToolResult, error) {
	var note string
	if problems != "" {
		note = "\nProblems: " + problems
	}

	if outputPath, ok := args["outputPath"].(string); ok && outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return ToolResult{}, fmt.Errorf("writing file: %w", err)
		}
		return ToolResult{
			Content: []ContentBlock{{
				Type: "text",
				Text: fmt.Sprintf("PDF created successfully: %s (%d bytes)%s", outputPath, len(data), note),
			}},
		}, nil
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	return ToolResult{
		Content: []ContentBlock{{
			Type: "text",
			Text: fmt.Sprintf("PDF created successfully (%d bytes)%s\nBase64 data:\n%s", len(data), note, encoded),
		}},
	}, nil
}

func jsonResult(v any) (ToolResult, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ToolResult{}, fmt.Errorf("encoding result: %w", err)
	}
	return ToolResult{
		Content: []ContentBlock{{Type: "text", Text: string(jsonBytes)}},
	}, nil
}
