package block

import (
	"github.com/matzehuels/blockcanvas/pkg/errors"
)

// HorizontalAlign places text horizontally inside the box.
type HorizontalAlign string

const (
	AlignLeft   HorizontalAlign = "left"
	AlignCenter HorizontalAlign = "center"
	AlignRight  HorizontalAlign = "right"
)

// VerticalAlign places text vertically inside the box.
//
// VAlignHanging puts the alphabetic baseline on the bottom edge so that
// descenders hang below the box.
type VerticalAlign string

const (
	VAlignTop     VerticalAlign = "top"
	VAlignBottom  VerticalAlign = "bottom"
	VAlignCenter  VerticalAlign = "center"
	VAlignHanging VerticalAlign = "hanging"
)

// Default style values for newly created blocks.
const (
	DefaultFontSize   = 24.0
	DefaultFontFamily = "Go"
	DefaultColor      = "#000000"
)

// Style holds the text attributes of a block. FontSize is the ideal size;
// the rendered size may be smaller when the text does not fit the box.
type Style struct {
	FontSize      float64         `json:"fontSize"`
	FontFamily    string          `json:"fontFamily"`
	Color         string          `json:"color"`
	Align         HorizontalAlign `json:"align"`
	VerticalAlign VerticalAlign   `json:"verticalAlign"`
}

// DefaultStyle returns the style given to new blocks.
func DefaultStyle() Style {
	return Style{
		FontSize:      DefaultFontSize,
		FontFamily:    DefaultFontFamily,
		Color:         DefaultColor,
		Align:         AlignLeft,
		VerticalAlign: VAlignTop,
	}
}

// Validate checks every style attribute.
func (s Style) Validate() error {
	if err := errors.ValidateFontSize(s.FontSize); err != nil {
		return err
	}
	if err := errors.ValidateFontFamily(s.FontFamily); err != nil {
		return err
	}
	if err := errors.ValidateHexColor(s.Color); err != nil {
		return err
	}
	switch s.Align {
	case AlignLeft, AlignCenter, AlignRight:
	default:
		return errors.New(errors.ErrCodeInvalidStyle, "invalid horizontal align %q", s.Align)
	}
	switch s.VerticalAlign {
	case VAlignTop, VAlignBottom, VAlignCenter, VAlignHanging:
	default:
		return errors.New(errors.ErrCodeInvalidStyle, "invalid vertical align %q", s.VerticalAlign)
	}
	return nil
}
