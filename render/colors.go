package render

import "github.com/gdamore/tcell/v2"

// Palette
var (
	RgbSea       = tcell.NewRGBColor(10, 24, 48)    // Deep navy
	RgbSeaRipple = tcell.NewRGBColor(28, 52, 92)    // Wave marks
	RgbHUD       = tcell.NewRGBColor(230, 230, 230) // Near white
	RgbHUDBar    = tcell.NewRGBColor(30, 34, 46)    // Status strip
	RgbHealthLow = tcell.NewRGBColor(255, 80, 80)   // Red
	RgbGameOver  = tcell.NewRGBColor(255, 200, 40)  // Amber
	RgbDebug     = tcell.NewRGBColor(140, 140, 140) // Gray
	RgbHeading   = tcell.NewRGBColor(120, 200, 255) // Nose marker
	RgbDefaultFG = tcell.NewRGBColor(255, 255, 255) // White
)

// colorOf converts a 0xRRGGBB visual color, 0 falls back to white
func colorOf(c uint32) tcell.Color {
	if c == 0 {
		return RgbDefaultFG
	}
	return tcell.NewHexColor(int32(c))
}
