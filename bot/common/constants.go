package common

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorError   = 0xED4245 // Red (alias for ColorDanger)
	ColorWarning = 0xFEE75C // Yellow
	ColorInfo    = 0x3498DB // Blue
	ColorNeutral = 0x95A5A6 // Grey
)

// UI constants
const (
	MaxButtonsPerRow = 5
	MaxActionRows    = 5
	MaxSelectOptions = 25
)

// ComponentPrefix marks custom IDs owned by the interaction router
const ComponentPrefix = "arcade:"
