// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Color palette shared by launcher output.
const (
	// ColorPrimary is purple - used for the command title.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for subtitles.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorError is red - used for launcher errors.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for configuration warnings.
	ColorWarning = lipgloss.Color("#F59E0B")
)

var (
	// TitleStyle is for the command title in help text.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// ErrorStyle prefixes launcher errors.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle prefixes recoverable problems such as a bad config file.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)
