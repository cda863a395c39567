package style

import "github.com/pterm/pterm"

func stripANSI(s string) string {
	return pterm.RemoveColorFromString(s)
}
