package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examlens/internal/ui/theme"
)

const bannerArt = `
 ███████╗██╗  ██╗ █████╗ ███╗   ███╗██╗     ███████╗███╗   ██╗███████╗
 ██╔════╝╚██╗██╔╝██╔══██╗████╗ ████║██║     ██╔════╝████╗  ██║██╔════╝
 █████╗   ╚███╔╝ ███████║██╔████╔██║██║     █████╗  ██╔██╗ ██║███████╗
 ██╔══╝   ██╔██╗ ██╔══██║██║╚██╔╝██║██║     ██╔══╝  ██║╚██╗██║╚════██║
 ███████╗██╔╝ ██╗██║  ██║██║ ╚═╝ ██║███████╗███████╗██║ ╚████║███████║
 ╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝     ╚═╝╚══════╝╚══════╝╚═╝  ╚═══╝╚══════╝`

const bannerCompact = "E X A M L E N S"

// bannerMinWidth is the narrowest terminal the full art fits in.
const bannerMinWidth = 80

// RenderBanner returns the banner styled in the primary color, falling
// back to a compact label on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
