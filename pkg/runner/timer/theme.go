package timer

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
)

// palettes maps a theme name to the two ends of its focus gradient.
var palettes = map[string][2]string{
	"animated-gradient": {"#5A56E0", "#EE6FF8"},
	"ocean":             {"#1E3C72", "#2A9DF4"},
	"forest":            {"#134E5E", "#71B280"},
	"sunset":            {"#FF512F", "#F09819"},
	"midnight":          {"#232526", "#7F7FD5"},
}

// restTint is blended into the palette while on a break.
var restTint, _ = colorful.Hex("#3DDC97")

type style struct {
	from, to string
	accent   lipgloss.Color
	title    lipgloss.Style
	clock    lipgloss.Style
	faint    lipgloss.Style
	status   lipgloss.Style
}

func themeFor(name string, mode session.Mode) style {
	p, ok := palettes[name]
	if !ok {
		p = palettes["animated-gradient"]
	}
	from, err1 := colorful.Hex(p[0])
	to, err2 := colorful.Hex(p[1])
	if err1 != nil || err2 != nil {
		from, to = colorful.Color{R: 0.35, G: 0.34, B: 0.88}, colorful.Color{R: 0.93, G: 0.44, B: 0.97}
	}

	switch mode {
	case session.ShortBreak:
		from, to = from.BlendLab(restTint, 0.5), to.BlendLab(restTint, 0.5)
	case session.LongBreak:
		from, to = from.BlendLab(restTint, 0.8), to.BlendLab(restTint, 0.8)
	}

	accent := lipgloss.Color(from.BlendLab(to, 0.5).Clamped().Hex())
	return style{
		from:   from.Clamped().Hex(),
		to:     to.Clamped().Hex(),
		accent: accent,
		title:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		clock:  lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#FFFFFF")).Background(accent),
		faint:  lipgloss.NewStyle().Faint(true),
		status: lipgloss.NewStyle().Italic(true).Foreground(accent),
	}
}
