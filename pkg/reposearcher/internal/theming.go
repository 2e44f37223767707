package internal

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual appearance of the terminal surface.
type Theme struct {
	HighlightColor       lipgloss.Color // Selected row background
	AccentColor          lipgloss.Color // Titles, borders, key hints
	TextColor            lipgloss.Color // Default text color
	HighlightedTextColor lipgloss.Color // Text on highlighted rows
	HintColor            lipgloss.Color // Help text, status line
	ErrorColor           lipgloss.Color // Alert borders and messages
}

// DefaultTheme is a teal accent on the terminal's own background.
func DefaultTheme() Theme {
	return Theme{
		HighlightColor:       HexToColor(0x008080),
		AccentColor:          HexToColor(0x008080),
		TextColor:            HexToColor(0xFFFFFF),
		HighlightedTextColor: HexToColor(0x000000),
		HintColor:            HexToColor(0x7F849C),
		ErrorColor:           HexToColor(0xF38BA8),
	}
}

var (
	themeMu      sync.RWMutex
	currentTheme = DefaultTheme()
)

// SetTheme sets the active theme.
func SetTheme(theme Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	currentTheme = theme
}

// GetTheme returns the currently active theme.
func GetTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// HexToColor converts 0xRRGGBB to a lipgloss color.
func HexToColor(hex uint32) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%06X", hex&0xFFFFFF))
}
