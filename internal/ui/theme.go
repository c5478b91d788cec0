package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/tagline/internal/badge"
	"github.com/oakwood-commons/tagline/internal/config"
)

// Theme defines the card colors. Label colors live in Palette.
type Theme struct {
	Palette    badge.Palette
	TitleFG    color.Color
	MutedFG    color.Color
	BorderFG   color.Color
	SelectedFG color.Color
}

// ThemeFromConfig converts configured theme colors.
func ThemeFromConfig(tc config.ThemeColors) Theme {
	return Theme{
		Palette:    tc.Palette(),
		TitleFG:    config.Color(tc.TitleFG),
		MutedFG:    config.Color(tc.MutedFG),
		BorderFG:   config.Color(tc.BorderFG),
		SelectedFG: config.Color(tc.SelectedFG),
	}
}

type styles struct {
	card     lipgloss.Style
	selected lipgloss.Style
	title    lipgloss.Style
	muted    lipgloss.Style
	status   lipgloss.Style
}

// cardFrame is the horizontal space a card border and padding take.
const cardFrame = 4

func newStyles(th Theme, noColor bool) styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	s := styles{
		card:     card,
		selected: card.Border(lipgloss.ThickBorder()),
		title:    lipgloss.NewStyle(),
		muted:    lipgloss.NewStyle(),
		status:   lipgloss.NewStyle(),
	}
	if noColor {
		return s
	}
	if th.BorderFG != nil {
		s.card = s.card.BorderForeground(th.BorderFG)
	}
	if th.SelectedFG != nil {
		s.selected = s.selected.BorderForeground(th.SelectedFG)
	}
	s.title = s.title.Bold(true)
	if th.TitleFG != nil {
		s.title = s.title.Foreground(th.TitleFG)
	}
	if th.MutedFG != nil {
		s.muted = s.muted.Foreground(th.MutedFG)
		s.status = s.status.Foreground(th.MutedFG)
	}
	return s
}
