package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	Playing rune // ▶ transport running
	Stopped rune // ■ transport stopped
	Pulse   rune // ● beat flash
	Tick    rune // · between beats
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Playing: '▶',
			Stopped: '■',
			Pulse:   '●',
			Tick:    '·',
		},
	}
}

// Load builds a theme from ~/.config/midisync/palette.gpl when present,
// falling back to the built-in ramp.
func Load() *Theme {
	home, err := os.UserHomeDir()
	if err == nil {
		path := filepath.Join(home, ".config", "midisync", "palette.gpl")
		if p, err := LoadGPL(path); err == nil {
			return New(p)
		}
	}
	return New(DefaultPalette())
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0 // background
	RoleMuted   = 0.2 // labels, help line
	RoleFG      = 0.5 // body text
	RoleAccent  = 0.6 // header, timecode
	RoleRunning = 0.7 // transport running
	RoleWarning = 0.9 // overflow, decode errors
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Running() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleRunning))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
