package plot

import "image/color"

// Attribute type colors, kept stable across all figures so the same group
// reads the same way in every panel.
var attributeColors = map[string]color.RGBA{
	"age":        {R: 0xFF, G: 0x6B, B: 0x6B, A: 0xFF},
	"disability": {R: 0x4E, G: 0xCD, B: 0xC4, A: 0xFF},
	"gender":     {R: 0x45, G: 0xB7, B: 0xD1, A: 0xFF},
	"look":       {R: 0x96, G: 0xCE, B: 0xB4, A: 0xFF},
}

// Empathy type colors.
var empathyColors = map[string]color.RGBA{
	"cognitive":    {R: 0x2E, G: 0x86, B: 0xAB, A: 0xFF},
	"affective":    {R: 0xA2, G: 0x3B, B: 0x72, A: 0xFF},
	"motivational": {R: 0xF1, G: 0x8F, B: 0x01, A: 0xFF},
}

var defaultColor = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xFF}

// AttributeColor returns the palette color for an attribute type
func AttributeColor(attributeType string) color.RGBA {
	if c, ok := attributeColors[attributeType]; ok {
		return c
	}
	return defaultColor
}

// EmpathyColor returns the palette color for an empathy type
func EmpathyColor(empathyType string) color.RGBA {
	if c, ok := empathyColors[empathyType]; ok {
		return c
	}
	return defaultColor
}

// Translucent returns the color at the given alpha, for violin bodies and
// histogram fills that overlap.
func Translucent(c color.RGBA, alpha uint8) color.RGBA {
	c.A = alpha
	return c
}
