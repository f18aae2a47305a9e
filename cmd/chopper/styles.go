// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette - shared hex colors for consistent theming across all CLI
// output, designed for dark terminal backgrounds.
const (
	// ColorPrimary is orange - titles and primary emphasis.
	ColorPrimary = lipgloss.Color("#E8590C")

	// ColorMuted is gray - secondary text and de-emphasized content.
	ColorMuted = lipgloss.Color("#868E96")

	// ColorSuccess is green - success states and positive outcomes.
	ColorSuccess = lipgloss.Color("#2F9E44")

	// ColorError is red - errors and failures.
	ColorError = lipgloss.Color("#E03131")

	// ColorWarning is yellow - warnings and attention-needed items.
	ColorWarning = lipgloss.Color("#F08C00")

	// ColorHighlight is cyan - commands, paths, and interactive elements.
	ColorHighlight = lipgloss.Color("#1098AD")
)

var (
	// TitleStyle is for primary headers.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// CmdStyle is for command lines and executable paths.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)
)
