package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. AdaptiveColor picks the variant for light or dark terminals.
var (
	secondaryColor = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#A0A8B0"}
	successColor   = lipgloss.AdaptiveColor{Light: "#28A745", Dark: "#4CDD76"}
	errorColor     = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	warningColor   = lipgloss.AdaptiveColor{Light: "#FFC107", Dark: "#FFD54F"}
	infoColor      = lipgloss.AdaptiveColor{Light: "#17A2B8", Dark: "#4DD0E1"}
	headingColor   = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
	mutedColor     = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
	borderColor    = lipgloss.AdaptiveColor{Light: "#DEE2E6", Dark: "#3B3C4F"}

	romColor = lipgloss.AdaptiveColor{Light: "#0EA5E9", Dark: "#38BDF8"}
	mraColor = lipgloss.AdaptiveColor{Light: "#8B5CF6", Dark: "#A78BFA"}
	arcColor = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
)

var (
	TitleStyle   = lipgloss.NewStyle().Foreground(headingColor).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(successColor).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(warningColor).Bold(true)
	InfoStyle    = lipgloss.NewStyle().Foreground(infoColor)
	PathStyle    = lipgloss.NewStyle().Foreground(secondaryColor).Italic(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	// One style per cached or produced file kind.
	ROMStyle = lipgloss.NewStyle().Foreground(romColor).Bold(true)
	MRAStyle = lipgloss.NewStyle().Foreground(mraColor).Bold(true)
	ARCStyle = lipgloss.NewStyle().Foreground(arcColor).Bold(true)
)

var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	WarningIndicator = WarningStyle.Render("!")
)
