package main

// Theme defines all colors used throughout the application with semantic naming.
// All ANSI color codes have been converted to hex equivalents for consistency.
var (
	// Brand colors
	landtalkColor = "#87ae9d" // LandTalk green for branding and active elements

	// Text colors
	textPrimary     = "#ffffff" // 255 - white text for focused/active elements
	textDescription = "#c9c9c9" // 250 - light gray for descriptions and help text
	textMuted       = "#7a7a7a" // 240 - dark gray for very subtle text like file paths

	// Border colors
	borderActive = "#c9c9c9" // 250 - brighter gray for active pane borders
	borderMuted  = "#7a7a7a" // 240 - standard border color

	// Status/semantic colors (reused for borders when needed)
	successStatus = "#50fa7b" // 83 - green for clean status, success states
	warningStatus = "#ffb86c" // 214 - orange for warnings, filtered detections
	errorStatus   = "#ff5555" // 196 - red for errors, failed requests
	infoStatus    = "#8be9fd" // 86 - cyan for info, buttons, section headers

	// UI colors
	separatorColor = "#4a4a4a" // 238 - very dark gray for separators
	warningYellow  = "#f1fa8c" // 220 - yellow for warnings/highlights
	selection      = "#dfcfae" // warm beige for selected items
)
