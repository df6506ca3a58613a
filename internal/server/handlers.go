package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"

	"github.com/figprep/figprep/internal/colors"
	"github.com/figprep/figprep/internal/compose"
	"github.com/figprep/figprep/internal/convert"
	"github.com/figprep/figprep/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "make_hexicon", "parse_color").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the tool.
//
// The response wraps the tool result in the protocol's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *Request) *Response {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Icon creation
	case "make_hexicon":
		return s.handleMakeHexicon(args)
	case "ngon_crop":
		return s.handleNgonCrop(args)

	// Image modification
	case "make_opaque":
		return s.handleMakeOpaque(args)
	case "convert_image":
		return s.handleConvertImage(args)
	case "image_info":
		return s.handleImageInfo(args)

	// Color utilities
	case "parse_color":
		return s.handleParseColor(args)
	case "dominant_color":
		return s.handleDominantColor(args)
	case "contrasting_color":
		return s.handleContrastingColor(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error: &RPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to a pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// IconResult carries a composited image back to the client.
type IconResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// iconResult encodes a bitmap as base64 PNG for transport.
func iconResult(bmp *imaging.Bitmap) (*IconResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, bmp.NRGBA()); err != nil {
		return nil, fmt.Errorf("encode result image: %w", err)
	}
	return &IconResult{
		Width:       bmp.Width(),
		Height:      bmp.Height(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// ColorInfo is a color value in the formats clients consume.
type ColorInfo struct {
	Hex  string       `json:"hex"`  // "#RRGGBB", alpha excluded
	RGBA colors.Color `json:"rgba"` // 8-bit components with alpha
	HSL  colors.HSL   `json:"hsl"`  // perceptual representation
}

func colorInfo(c colors.Color) ColorInfo {
	return ColorInfo{Hex: c.Hex(), RGBA: c, HSL: c.ToHSL()}
}

// resolveBorderColor interprets the loosely typed border_color argument:
// absent or "auto" selects automatic contrast, a string parses as hex or
// name, a numeric array as a channel tuple.
func resolveBorderColor(v interface{}) (compose.BorderColor, error) {
	switch value := v.(type) {
	case nil:
		return compose.AutoColor(), nil
	case string:
		return compose.ParseBorderColor(value)
	default:
		c, err := colors.ParseValue(v)
		if err != nil {
			return compose.BorderColor{}, err
		}
		return compose.FixedColor(c), nil
	}
}

// === Icon Creation Handlers ===

type ngonCropArgs struct {
	Path        string      `json:"path"`
	Sides       int         `json:"sides"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	Rotation    float64     `json:"rotation"`
	ShiftX      int         `json:"shift_x"`
	ShiftY      int         `json:"shift_y"`
	BorderWidth int         `json:"border_width"`
	BorderColor interface{} `json:"border_color"`
	Padding     int         `json:"padding"`
	PreferDark  bool        `json:"prefer_dark"`
}

func (a *ngonCropArgs) request() (compose.CropRequest, error) {
	border, err := resolveBorderColor(a.BorderColor)
	if err != nil {
		return compose.CropRequest{}, err
	}
	return compose.CropRequest{
		Source:       imaging.FromString(a.Path),
		CanvasWidth:  a.Width,
		CanvasHeight: a.Height,
		Sides:        a.Sides,
		RotationDeg:  a.Rotation,
		ShiftX:       a.ShiftX,
		ShiftY:       a.ShiftY,
		Border:       compose.BorderSpec{Width: a.BorderWidth, Color: border},
		Padding:      a.Padding,
		PreferDark:   a.PreferDark,
	}, nil
}

func (s *Server) handleMakeHexicon(args json.RawMessage) (interface{}, error) {
	var a ngonCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	req, err := a.request()
	if err != nil {
		return nil, err
	}
	bmp, err := s.compositor.MakeHexicon(context.Background(), req)
	if err != nil {
		return nil, err
	}
	return iconResult(bmp)
}

func (s *Server) handleNgonCrop(args json.RawMessage) (interface{}, error) {
	var a ngonCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	req, err := a.request()
	if err != nil {
		return nil, err
	}
	bmp, err := s.compositor.Crop(context.Background(), req)
	if err != nil {
		return nil, err
	}
	return iconResult(bmp)
}

// === Image Modification Handlers ===

type makeOpaqueArgs struct {
	Path    string      `json:"path"`
	BgColor interface{} `json:"bg_color"`
}

func (s *Server) handleMakeOpaque(args json.RawMessage) (interface{}, error) {
	var a makeOpaqueArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	bg := colors.White
	if a.BgColor != nil {
		parsed, err := colors.ParseValue(a.BgColor)
		if err != nil {
			return nil, err
		}
		bg = parsed
	}

	bmp, err := s.cache.Load(context.Background(), a.Path)
	if err != nil {
		return nil, err
	}
	return iconResult(imaging.MakeOpaque(bmp, bg.NRGBA()))
}

type convertImageArgs struct {
	Path           string `json:"path"`
	Format         string `json:"format"`
	RemoveOriginal bool   `json:"remove_original"`
}

// ConvertResult reports where the converted file was written.
type ConvertResult struct {
	Path string `json:"path"`
}

func (s *Server) handleConvertImage(args json.RawMessage) (interface{}, error) {
	var a convertImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	path, err := convert.File(a.Path, a.Format, convert.Options{RemoveOriginal: a.RemoveOriginal})
	if err != nil {
		return nil, err
	}
	// The source file changed on disk; do not serve a stale bitmap.
	s.cache.Evict(a.Path)
	return &ConvertResult{Path: path}, nil
}

type imageInfoArgs struct {
	Path string `json:"path"`
}

// ImageInfo describes an ingested image.
type ImageInfo struct {
	Width  int  `json:"width"`
	Height int  `json:"height"`
	Opaque bool `json:"opaque"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imageInfoArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	bmp, err := s.cache.Load(context.Background(), a.Path)
	if err != nil {
		return nil, err
	}
	return &ImageInfo{Width: bmp.Width(), Height: bmp.Height(), Opaque: bmp.Opaque()}, nil
}

// === Color Utility Handlers ===

type parseColorArgs struct {
	Value interface{} `json:"value"`
}

func (s *Server) handleParseColor(args json.RawMessage) (interface{}, error) {
	var a parseColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	c, err := colors.ParseValue(a.Value)
	if err != nil {
		return nil, err
	}
	return colorInfo(c), nil
}

type dominantColorArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleDominantColor(args json.RawMessage) (interface{}, error) {
	var a dominantColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	bmp, err := s.cache.Load(context.Background(), a.Path)
	if err != nil {
		return nil, err
	}
	c, err := colors.ExtractDominantColor(bmp)
	if err != nil {
		return nil, err
	}
	return colorInfo(c), nil
}

type contrastingColorArgs struct {
	Value      interface{} `json:"value"`
	PreferDark bool        `json:"prefer_dark"`
}

// ContrastResult pairs the chosen color with its contrast ratio against
// the reference.
type ContrastResult struct {
	Color ColorInfo `json:"color"`
	Ratio float64   `json:"ratio"`
}

func (s *Server) handleContrastingColor(args json.RawMessage) (interface{}, error) {
	var a contrastingColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	reference, err := colors.ParseValue(a.Value)
	if err != nil {
		return nil, err
	}
	chosen := colors.ContrastingColor(reference, a.PreferDark)
	return &ContrastResult{
		Color: colorInfo(chosen),
		Ratio: colors.ContrastRatio(reference, chosen),
	}, nil
}
