// Package tailwind turns Tailwind utility class strings into structured
// geometry and colour records. Only the base state is modelled: classes with
// hover:, dark:, sm: and similar prefixes are skipped.
package tailwind

// ParsedStyle is the structured form of a class string. Unset fields stay nil
// (or empty) and are omitted from JSON.
type ParsedStyle struct {
	Height       *float64 `json:"height,omitempty"`
	Width        *float64 `json:"width,omitempty"`
	MinHeight    *float64 `json:"minHeight,omitempty"`
	PaddingX     *float64 `json:"paddingX,omitempty"`
	PaddingY     *float64 `json:"paddingY,omitempty"`
	BorderRadius *float64 `json:"borderRadius,omitempty"`
	FontSize     *float64 `json:"fontSize,omitempty"`
	FontWeight   *float64 `json:"fontWeight,omitempty"`
	Gap          *float64 `json:"gap,omitempty"`
	BorderWidth  *float64 `json:"borderWidth,omitempty"`
	RingWidth    *float64 `json:"ringWidth,omitempty"`
	Opacity      *float64 `json:"opacity,omitempty"`

	FillVariable string   `json:"fillVariable,omitempty"`
	FillColor    string   `json:"fillColor,omitempty"`
	FillOpacity  *float64 `json:"fillOpacity,omitempty"`

	TextVariable string   `json:"textVariable,omitempty"`
	TextColor    string   `json:"textColor,omitempty"`
	TextOpacity  *float64 `json:"textOpacity,omitempty"`

	StrokeVariable string   `json:"strokeVariable,omitempty"`
	StrokeColor    string   `json:"strokeColor,omitempty"`
	StrokeOpacity  *float64 `json:"strokeOpacity,omitempty"`

	RingVariable string   `json:"ringVariable,omitempty"`
	RingColor    string   `json:"ringColor,omitempty"`
	RingOpacity  *float64 `json:"ringOpacity,omitempty"`

	IsWhiteText bool `json:"isWhiteText,omitempty"`
}

// Clone returns a deep copy so cached results are never shared.
func (s ParsedStyle) Clone() ParsedStyle {
	out := s
	for _, f := range []struct {
		dst **float64
		src *float64
	}{
		{&out.Height, s.Height},
		{&out.Width, s.Width},
		{&out.MinHeight, s.MinHeight},
		{&out.PaddingX, s.PaddingX},
		{&out.PaddingY, s.PaddingY},
		{&out.BorderRadius, s.BorderRadius},
		{&out.FontSize, s.FontSize},
		{&out.FontWeight, s.FontWeight},
		{&out.Gap, s.Gap},
		{&out.BorderWidth, s.BorderWidth},
		{&out.RingWidth, s.RingWidth},
		{&out.Opacity, s.Opacity},
		{&out.FillOpacity, s.FillOpacity},
		{&out.TextOpacity, s.TextOpacity},
		{&out.StrokeOpacity, s.StrokeOpacity},
		{&out.RingOpacity, s.RingOpacity},
	} {
		if f.src != nil {
			v := *f.src
			*f.dst = &v
		}
	}
	return out
}

// Merge overlays the set fields of other onto s. Later classes win, the same
// way they do in a combined class string.
func (s ParsedStyle) Merge(other ParsedStyle) ParsedStyle {
	out := s.Clone()
	o := other.Clone()
	setF := func(dst **float64, src *float64) {
		if src != nil {
			*dst = src
		}
	}
	setF(&out.Height, o.Height)
	setF(&out.Width, o.Width)
	setF(&out.MinHeight, o.MinHeight)
	setF(&out.PaddingX, o.PaddingX)
	setF(&out.PaddingY, o.PaddingY)
	setF(&out.BorderRadius, o.BorderRadius)
	setF(&out.FontSize, o.FontSize)
	setF(&out.FontWeight, o.FontWeight)
	setF(&out.Gap, o.Gap)
	setF(&out.BorderWidth, o.BorderWidth)
	setF(&out.RingWidth, o.RingWidth)
	setF(&out.Opacity, o.Opacity)

	if o.FillVariable != "" || o.FillColor != "" {
		out.FillVariable, out.FillColor, out.FillOpacity = o.FillVariable, o.FillColor, o.FillOpacity
	}
	if o.TextVariable != "" || o.TextColor != "" {
		out.TextVariable, out.TextColor, out.TextOpacity = o.TextVariable, o.TextColor, o.TextOpacity
		out.IsWhiteText = o.IsWhiteText
	}
	if o.StrokeVariable != "" || o.StrokeColor != "" {
		out.StrokeVariable, out.StrokeColor, out.StrokeOpacity = o.StrokeVariable, o.StrokeColor, o.StrokeOpacity
	}
	if o.RingVariable != "" || o.RingColor != "" {
		out.RingVariable, out.RingColor, out.RingOpacity = o.RingVariable, o.RingColor, o.RingOpacity
	}
	return out
}

// Value returns *p, or fallback when p is nil.
func Value(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

func ptr(v float64) *float64 {
	return &v
}
