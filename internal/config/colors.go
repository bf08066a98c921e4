package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Style is one themed element: foreground, background and a text modifier.
type Style struct {
	Fg       string `json:"fg"`
	Bg       string `json:"bg"`
	Modifier string `json:"modifier"`
}

// ColorCfg groups the styles the interface draws with.
type ColorCfg struct {
	Normal    Style `json:"normal"`
	Highlight Style `json:"highlight"`
	Tabs      Style `json:"tabs"`
	Titles    Style `json:"titles"`
	Text      Style `json:"text"`
}

func DefaultColors() ColorCfg {
	return ColorCfg{
		Normal:    Style{Fg: "White", Bg: "Reset", Modifier: "RESET"},
		Highlight: Style{Fg: "Yellow", Bg: "Reset", Modifier: "BOLD"},
		Tabs:      Style{Fg: "Cyan", Bg: "Reset", Modifier: "BOLD"},
		Titles:    Style{Fg: "Red", Bg: "Reset", Modifier: "BOLD"},
		Text:      Style{Fg: "Green", Bg: "Reset", Modifier: "ITALIC"},
	}
}

// Modifier names accepted in config.json.
const (
	ModReset      = "RESET"
	ModBold       = "BOLD"
	ModDim        = "DIM"
	ModItalic     = "ITALIC"
	ModUnderlined = "UNDERLINED"
	ModSlowBlink  = "SLOW_BLINK"
	ModRapidBlink = "RAPID_BLINK"
	ModReversed   = "REVERSED"
	ModHidden     = "HIDDEN"
	ModCrossedOut = "CROSSED_OUT"
)

var modifiers = map[string]bool{
	ModReset: true, ModBold: true, ModDim: true, ModItalic: true, ModUnderlined: true,
	ModSlowBlink: true, ModRapidBlink: true, ModReversed: true, ModHidden: true, ModCrossedOut: true,
}

// named maps terminal color names onto the 16 ANSI slots.
var named = map[string]string{
	"black": "0", "red": "1", "green": "2", "yellow": "3",
	"blue": "4", "magenta": "5", "cyan": "6", "gray": "7",
	"darkgray": "8", "lightred": "9", "lightgreen": "10", "lightyellow": "11",
	"lightblue": "12", "lightmagenta": "13", "lightcyan": "14", "white": "15",
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ParseColor turns a config color into an ANSI index or hex string.
// "Reset" and "" mean the terminal default and return "".
func ParseColor(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "reset") {
		return "", nil
	}
	if c, ok := named[strings.ToLower(s)]; ok {
		return c, nil
	}
	if hexColor.MatchString(s) {
		return s, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 255 {
		return s, nil
	}
	return "", fmt.Errorf("unknown color %q", s)
}

// NormalizeModifier upper-cases a modifier; "" means RESET.
func NormalizeModifier(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return ModReset, nil
	}
	if !modifiers[s] {
		return "", fmt.Errorf("unknown modifier %q", s)
	}
	return s, nil
}

func (s Style) Validate() error {
	if _, err := ParseColor(s.Fg); err != nil {
		return err
	}
	if _, err := ParseColor(s.Bg); err != nil {
		return err
	}
	_, err := NormalizeModifier(s.Modifier)
	return err
}

func (c ColorCfg) Validate() error {
	for name, s := range map[string]Style{
		"normal": c.Normal, "highlight": c.Highlight, "tabs": c.Tabs,
		"titles": c.Titles, "text": c.Text,
	} {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%w: app_colors.%s: %v", ErrInvalid, name, err)
		}
	}
	return nil
}
