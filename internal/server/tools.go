package server

// Tool represents a tool definition exposed over tools/list.
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the shared schema for the image path argument; every
// file-based tool also accepts an http(s) URL here.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Path to the image file, or an http(s) URL",
	}
}

// colorProperty is the shared schema for loosely typed color arguments.
func colorProperty(desc string) map[string]interface{} {
	return map[string]interface{}{
		"description": desc,
		"oneOf": []map[string]interface{}{
			{"type": "string"},
			{"type": "array", "items": map[string]interface{}{"type": "integer"}},
		},
	}
}

// ngonProperties are the crop parameters shared by make_hexicon and
// ngon_crop.
func ngonProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"width": map[string]interface{}{
			"type":        "integer",
			"description": "Output canvas width. Omit for a square sized to the source's smaller dimension",
		},
		"height": map[string]interface{}{
			"type":        "integer",
			"description": "Output canvas height. Must be set together with width",
		},
		"rotation": map[string]interface{}{
			"type":        "number",
			"description": "Clockwise polygon rotation in degrees. Default 0 (first vertex at top)",
		},
		"shift_x": map[string]interface{}{
			"type":        "integer",
			"description": "Horizontal polygon center shift in pixels. Positive shifts right",
		},
		"shift_y": map[string]interface{}{
			"type":        "integer",
			"description": "Vertical polygon center shift in pixels. Positive shifts down",
		},
		"border_width": map[string]interface{}{
			"type":        "integer",
			"description": "Border ring width in pixels. 0 disables the border",
		},
		"border_color": colorProperty("Border color: \"auto\", a color name, \"#RRGGBB\", or an [r,g,b] tuple. Default auto"),
		"padding": map[string]interface{}{
			"type":        "integer",
			"description": "Pixels of breathing room between the polygon and the canvas edge",
		},
		"prefer_dark": map[string]interface{}{
			"type":        "boolean",
			"description": "Break exact contrast ties toward black when border_color is auto",
		},
	}
}

// GetToolDefinitions returns all available tools.
func GetToolDefinitions() []Tool {
	ngonProps := ngonProperties()
	ngonProps["sides"] = map[string]interface{}{
		"type":        "integer",
		"description": "Number of polygon sides, 3 or more",
	}

	return []Tool{
		// Icon creation
		{
			Name:        "make_hexicon",
			Description: "Crop an image to a bordered hexagon icon, returned as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": ngonProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "ngon_crop",
			Description: "Crop an image to a regular n-sided polygon with optional border ring, returned as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": ngonProps,
				"required":   []string{"path", "sides"},
			},
		},

		// Image modification
		{
			Name:        "make_opaque",
			Description: "Flatten an image's transparency over a solid background color and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":     pathProperty(),
					"bg_color": colorProperty("Background color. Default white"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "convert_image",
			Description: "Convert an image file to another raster format (png, jpg, gif, tif, bmp), writing a sibling file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"format": map[string]interface{}{
						"type":        "string",
						"description": "Target format extension, with or without the leading dot",
					},
					"remove_original": map[string]interface{}{
						"type":        "boolean",
						"description": "Delete the source file after a successful conversion",
					},
				},
				"required": []string{"path", "format"},
			},
		},
		{
			Name:        "image_info",
			Description: "Get the dimensions and alpha mode of an image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Color utilities
		{
			Name:        "parse_color",
			Description: "Normalize a color value (hex string, color name, or channel tuple) into hex, RGBA, and HSL forms.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"value": colorProperty("Color value to parse"),
				},
				"required": []string{"value"},
			},
		},
		{
			Name:        "dominant_color",
			Description: "Extract the most visually representative color of an image, ignoring transparent pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "contrasting_color",
			Description: "Pick the legible extreme (black or white) against a reference color, with its WCAG contrast ratio.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"value": colorProperty("Reference color"),
					"prefer_dark": map[string]interface{}{
						"type":        "boolean",
						"description": "Break exact contrast ties toward black",
					},
				},
				"required": []string{"value"},
			},
		},
	}
}
