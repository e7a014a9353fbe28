package ui

import "github.com/charmbracelet/lipgloss"

// Semantic color palette.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // Cyan — headings, family names
	colorAccent  = lipgloss.Color("#FFD700") // Gold — dimensions
	colorSuccess = lipgloss.Color("#00E676") // Green — success marks
	colorDanger  = lipgloss.Color("#FF5252") // Red — errors
	colorMuted   = lipgloss.Color("#636363") // Gray — generated units, hints
	colorWhite   = lipgloss.Color("#EEEEEE") // Off-white — values
)

// Status icons.
const (
	iconOK     = "✓"
	iconFailed = "✗"
	iconBullet = "•"
	iconArrow  = "→"
)

var (
	styleHeading = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleFamily = lipgloss.NewStyle().
			Foreground(colorPrimary)

	styleDimension = lipgloss.NewStyle().
			Foreground(colorAccent)

	styleValue = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	styleError = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true)
)
