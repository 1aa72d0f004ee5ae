// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#CCCCCC"} // Main/primary text
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#636E72", Dark: "#BBBBBB"} // URLs, timestamps
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#696969"} // Hints, help text, footers
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#777777"} // Omnibox placeholder

	// Semantic color names - Border
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"} // Focused omnibox, active pane

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Completed downloads, saved toasts
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // In-progress downloads
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Failed loads

	// Tab strip
	TabActiveColor      = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	TabActiveBgColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#1A5276"}
	TabInactiveColor    = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}
	TabLoadingColor     = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	GroupHeaderColor    = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	BookmarkedStarColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#F9E2AF"}

	// Selection indicator color (used for ">" prefix in lists)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}

	// Overlay colors
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#8C8C8C", Dark: "#8C8C8C"}

	// Toast notification colors
	ToastBorderSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	ToastBorderErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	ToastBorderInfoColor    = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	ToastBorderWarnColor    = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}

	// Loading spinner color
	SpinnerColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#FFF"}

	// Selection indicator style (used for ">" prefix in panels and suggestions)
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	// Tab styles
	TabActiveStyle = lipgloss.NewStyle().
			Foreground(TabActiveColor).
			Background(TabActiveBgColor).
			Padding(0, 1).
			Bold(true)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(TabInactiveColor).
				Padding(0, 1)

	// Omnibox styles
	OmniboxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderDefaultColor).
			Padding(0, 1)

	OmniboxFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(BorderFocusColor).
				Padding(0, 1)

	SuggestionStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 2)

	SuggestionSelectedStyle = lipgloss.NewStyle().
				Foreground(TabActiveColor).
				Background(TabActiveBgColor).
				Padding(0, 2)

	// Panel styles (internal pages)
	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(OverlayTitleColor).
			Bold(true).
			Padding(0, 1)

	PanelEntryStyle = lipgloss.NewStyle().
			Foreground(TextPrimaryColor).
			Padding(0, 1)

	PanelEntrySelectedStyle = lipgloss.NewStyle().
				Foreground(TabActiveColor).
				Background(TabActiveBgColor).
				Padding(0, 1)

	PanelMetaStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)

	// Source footer on generated pages
	SourceStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor).
			Padding(0, 1)
)

// GroupHeaderStyle returns the style for a tab group header chip in the
// group's color.
func GroupHeaderStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(GroupHeaderColor).
		Background(lipgloss.Color(color)).
		Padding(0, 1).
		Bold(true)
}

// GroupedTabStyle returns the inactive tab style underlined in the
// group's color.
func GroupedTabStyle(color string) lipgloss.Style {
	return TabInactiveStyle.
		Foreground(lipgloss.Color(color))
}
