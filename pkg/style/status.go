package style

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Status of a cached or produced file
type Status string

const (
	StatusOK      Status = "ok"      // Present and verified
	StatusCorrupt Status = "corrupt" // Present but fails hash or size
	StatusMissing Status = "missing" // Not in the cache
	StatusPlanned Status = "planned" // Will be built
	StatusFailed  Status = "failed"  // Download or build failed

	StatusUnverified Status = "unverified" // Present, no published hash
)

// StatusStyle returns the appropriate pterm style for a status
func StatusStyle(status Status) *pterm.Style {
	switch status {
	case StatusOK:
		return pterm.NewStyle(pterm.FgGreen)
	case StatusCorrupt:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	case StatusMissing:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	case StatusFailed:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	case StatusPlanned:
		return pterm.NewStyle(pterm.FgCyan)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// FileStatus is one line of a verify or plan report
type FileStatus struct {
	Kind   string // rom, mra or arc
	Name   string
	Status Status
	Detail string
}

// RenderFileStatus renders a single file status line
func RenderFileStatus(fs FileStatus) string {
	kind := fmt.Sprintf("%-4s", fs.Kind)
	status := StatusStyle(fs.Status).Sprint(fmt.Sprintf("%-8s", fs.Status))
	line := fmt.Sprintf("    %s : %s : %s", kind, status, fs.Name)
	if fs.Detail != "" {
		line += " (" + fs.Detail + ")"
	}
	return line
}

// CountStatus tallies statuses
func CountStatus(files []FileStatus) map[Status]int {
	counts := make(map[Status]int)
	for _, f := range files {
		counts[f.Status]++
	}
	return counts
}
