package cmd

import "github.com/fatih/color"

// applyColorMode sets fatih/color's global enable switch from the
// --color flag shared by every subcommand.
func applyColorMode(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		// "auto": leave fatih/color's own terminal detection in place.
	}
}
