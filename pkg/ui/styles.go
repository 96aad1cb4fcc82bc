package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/filetree/pkg/explorer"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Adaptive colors for light and dark terminals
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBgSubtle    = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#363949"}
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#D0D0D0", Dark: "#44475A"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}
	ColorPrimary     = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
)

// ══════════════════════════════════════════════════════════════════════════════
// PANEL STYLES - For split view layouts
// ══════════════════════════════════════════════════════════════════════════════

var (
	// PanelStyle is the default style for unfocused panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBgHighlight)

	// FocusedPanelStyle is the style for focused panels
	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)
)

// ══════════════════════════════════════════════════════════════════════════════
// BADGES
// ══════════════════════════════════════════════════════════════════════════════

// RenderClipboardBadge shows the pending clipboard operation, or nothing.
func RenderClipboardBadge(c explorer.ClipboardStatus, t Theme) string {
	if !c.Present {
		return ""
	}
	label := "COPY"
	if c.Op == explorer.OpCut {
		label = "CUT"
	}
	return t.Renderer.NewStyle().
		Foreground(ColorText).
		Background(ColorBgSubtle).
		Padding(0, 1).
		Render(label)
}

// RenderNotice renders a notification line colored by level.
func RenderNotice(n explorer.Notification, t Theme) string {
	return t.Renderer.NewStyle().
		Foreground(t.NoticeColor(n.Level)).
		Bold(n.Level == explorer.LevelError).
		Render(fmt.Sprintf("%s %s", t.NoticeIcon(n.Level), n.Message))
}

// RenderKeyHints renders "key desc" pairs separated by dots.
func RenderKeyHints(t Theme, pairs ...[2]string) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, t.PrimaryBold.Render(p[0])+" "+t.MutedText.Render(p[1]))
	}
	return strings.Join(parts, t.MutedText.Render(" · "))
}

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS AND SEPARATORS
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(ColorBgHighlight).
		Render(strings.Repeat("─", width))
}
