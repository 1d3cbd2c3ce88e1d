package admonition

import (
	"fmt"
	"strconv"
)

// Color is an RGB tint assigned to a directive. It round-trips through
// configuration files as a hex string with optional leading '#'.
type Color struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

func HexColor(hex uint32) Color {
	return Color{Red: uint8(hex >> 16), Green: uint8(hex >> 8), Blue: uint8(hex)}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.Red, c.Green, c.Blue)
}

// RGB returns the CSS functional notation at full opacity.
func (c Color) RGB() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.Red, c.Green, c.Blue)
}

// RGBA returns the CSS functional notation with the given alpha.
func (c Color) RGBA(alpha float64) string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.Red, c.Green, c.Blue, strconv.FormatFloat(alpha, 'g', -1, 64))
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	s := string(text)
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return fmt.Errorf("invalid color '%s': expected 6 hex digits", text)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("invalid color '%s': %w", text, err)
	}
	*c = HexColor(uint32(v))
	return nil
}
