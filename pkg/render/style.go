package render

// Style holds the presentation details surfaces apply when drawing.
type Style struct {
	RedFill      string  `json:"red_fill" toml:"red"`
	BlackFill    string  `json:"black_fill" toml:"black"`
	EdgeColor    string  `json:"edge_color" toml:"edge"`
	TextColor    string  `json:"text_color" toml:"text"`
	EdgeWidth    float64 `json:"edge_width" toml:"edge_width"`
	OutlineWidth float64 `json:"outline_width" toml:"outline_width"`
	FontFamily   string  `json:"font_family" toml:"font_family"`
	FontSize     float64 `json:"font_size" toml:"font_size"`
}

// DefaultStyle returns the classic red-black palette: red #d93232, black
// #444444, black 2px edges and white 16px monospace labels.
func DefaultStyle() Style {
	return Style{
		RedFill:      "#d93232",
		BlackFill:    "#444444",
		EdgeColor:    "#000000",
		TextColor:    "#ffffff",
		EdgeWidth:    2,
		OutlineWidth: 3,
		FontFamily:   "monospace",
		FontSize:     16,
	}
}

// Fill returns the fill color for a node color. Anything other than red is
// drawn black.
func (s Style) Fill(color string) string {
	if color == Red {
		return s.RedFill
	}
	return s.BlackFill
}

// WithDefaults returns s with every zero field replaced by the default.
func (s Style) WithDefaults() Style {
	d := DefaultStyle()
	if s.RedFill == "" {
		s.RedFill = d.RedFill
	}
	if s.BlackFill == "" {
		s.BlackFill = d.BlackFill
	}
	if s.EdgeColor == "" {
		s.EdgeColor = d.EdgeColor
	}
	if s.TextColor == "" {
		s.TextColor = d.TextColor
	}
	if s.EdgeWidth == 0 {
		s.EdgeWidth = d.EdgeWidth
	}
	if s.OutlineWidth == 0 {
		s.OutlineWidth = d.OutlineWidth
	}
	if s.FontFamily == "" {
		s.FontFamily = d.FontFamily
	}
	if s.FontSize == 0 {
		s.FontSize = d.FontSize
	}
	return s
}
