// Package theme provides color themes for the diffstatus report.
package theme

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors used to decorate report output. Colors only ever
// decorate; report content is identical with decoration disabled.
type Theme struct {
	HeaderFg lipgloss.Color // table header row
	PromptFg lipgloss.Color // interactive prompts
	HelpFg   lipgloss.Color // help text
	ErrorFg  lipgloss.Color // error messages
}

// Theme names.
const (
	DraculaName         = "dracula"
	NarnaName           = "narna"
	CleanLightName      = "clean-light"
	SolarizedDarkName   = "solarized-dark"
	GruvboxDarkName     = "gruvbox-dark"
	NordName            = "nord"
	CatppuccinMochaName = "catppuccin-mocha"
)

// Dracula returns the Dracula theme (dark background, vibrant colors).
func Dracula() *Theme {
	return &Theme{
		HeaderFg: lipgloss.Color("#F8F8F2"),
		PromptFg: lipgloss.Color("#BD93F9"),
		HelpFg:   lipgloss.Color("#FF5555"),
		ErrorFg:  lipgloss.Color("#FF5555"),
	}
}

// Narna returns a balanced dark theme with blue accents.
func Narna() *Theme {
	return &Theme{
		HeaderFg: lipgloss.Color("#E6EDF3"),
		PromptFg: lipgloss.Color("#41ADFF"),
		HelpFg:   lipgloss.Color("#F47067"),
		ErrorFg:  lipgloss.Color("#F47067"),
	}
}

// CleanLight returns a theme optimized for light terminal backgrounds.
func CleanLight() *Theme {
	return &Theme{
		HeaderFg: lipgloss.Color("#24292F"),
		PromptFg: lipgloss.Color("#0598BC"),
		HelpFg:   lipgloss.Color("#CF222E"),
		ErrorFg:  lipgloss.Color("#CF222E"),
	}
}

// SolarizedDark returns the Solarized Dark theme.
func SolarizedDark() *Theme {
	return &Theme{
		HeaderFg: lipgloss.Color("#839496"),
		PromptFg: lipgloss.Color("#268BD2"),
		HelpFg:   lipgloss.Color("#DC322F"),
		ErrorFg:  lipgloss.Color("#DC322F"),
	}
}

// GruvboxDark returns the Gruvbox Dark theme.
func GruvboxDark() *Theme {
	return &Theme{
		HeaderFg: lipgloss.Color("#EBDBB2"),
		PromptFg: lipgloss.Color("#83A598"),
		HelpFg:   lipgloss.Color("#FB4934"),
		ErrorFg:  lipgloss.Color("#FB4934"),
	}
}

// Nord returns the Nord theme.
func Nord() *Theme {
	return &Theme{
		HeaderFg: lipgloss.Color("#ECEFF4"),
		PromptFg: lipgloss.Color("#88C0D0"),
		HelpFg:   lipgloss.Color("#BF616A"),
		ErrorFg:  lipgloss.Color("#BF616A"),
	}
}

// CatppuccinMocha returns the Catppuccin Mocha theme.
func CatppuccinMocha() *Theme {
	return &Theme{
		HeaderFg: lipgloss.Color("#CDD6F4"),
		PromptFg: lipgloss.Color("#CBA6F7"),
		HelpFg:   lipgloss.Color("#F38BA8"),
		ErrorFg:  lipgloss.Color("#F38BA8"),
	}
}

// GetTheme returns the theme for name, defaulting to Dracula.
func GetTheme(name string) *Theme {
	switch name {
	case NarnaName:
		return Narna()
	case CleanLightName:
		return CleanLight()
	case SolarizedDarkName:
		return SolarizedDark()
	case GruvboxDarkName:
		return GruvboxDark()
	case NordName:
		return Nord()
	case CatppuccinMochaName:
		return CatppuccinMocha()
	default:
		return Dracula()
	}
}

// AvailableThemes returns a list of available theme names.
func AvailableThemes() []string {
	return []string{
		DraculaName,
		NarnaName,
		CleanLightName,
		SolarizedDarkName,
		GruvboxDarkName,
		NordName,
		CatppuccinMochaName,
	}
}

// IsKnown reports whether name is one of the shipped themes.
func IsKnown(name string) bool {
	for _, n := range AvailableThemes() {
		if n == name {
			return true
		}
	}
	return false
}

// Color slot names recognised in color overrides.
const (
	SlotHeader = "header"
	SlotPrompt = "prompt"
	SlotHelp   = "help"
	SlotError  = "error"
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ParseColor validates a user-supplied hex color and returns it as a
// lipgloss color. Malformed values are configuration errors.
func ParseColor(value string) (lipgloss.Color, error) {
	if !hexColorRe.MatchString(value) {
		return "", fmt.Errorf("invalid color %q: expected #rrggbb", value)
	}
	return lipgloss.Color(value), nil
}

// ApplySlot overrides one color slot on the theme. Unknown slots are
// configuration errors.
func (t *Theme) ApplySlot(slot, value string) error {
	color, err := ParseColor(value)
	if err != nil {
		return err
	}
	switch slot {
	case SlotHeader:
		t.HeaderFg = color
	case SlotPrompt:
		t.PromptFg = color
	case SlotHelp:
		t.HelpFg = color
	case SlotError:
		t.ErrorFg = color
	default:
		return fmt.Errorf("unknown color slot %q", slot)
	}
	return nil
}

// HeaderStyle returns the lipgloss style used for the report header.
// When decorate is false the style is a no-op and output is plain text.
func (t *Theme) HeaderStyle(decorate bool) lipgloss.Style {
	if !decorate {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Bold(true).Foreground(t.HeaderFg)
}
