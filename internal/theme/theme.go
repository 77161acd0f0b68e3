package theme

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultName is the built-in theme used when no override is provided.
const DefaultName = "dsview-dark"

// Token represents a semantic color slot within the CLI.
type Token string

const (
	ColorTextPrimary Token = "text.primary"
	ColorTextMuted   Token = "text.muted"
	ColorBorder      Token = "border"
	ColorPrimary     Token = "primary"
	ColorPrimaryText Token = "primary.text"
	ColorAccent      Token = "accent"
	ColorSuccess     Token = "success"
	ColorWarning     Token = "warning"
	ColorDanger      Token = "danger"
	ColorDangerText  Token = "danger.text"
	ColorHighlight   Token = "highlight"
)

// Color stores light and dark variants for adaptive rendering.
type Color struct {
	Light string
	Dark  string
}

// Adaptive converts the color into a lipgloss adaptive color.
func (c Color) Adaptive() lipgloss.AdaptiveColor {
	light, dark := strings.TrimSpace(c.Light), strings.TrimSpace(c.Dark)
	switch {
	case light == "" && dark == "":
		return lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	case light == "":
		light = dark
	case dark == "":
		dark = light
	}
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Palette is a concrete theme. MarkdownStyle names the glamour style used for
// row cards and CodeStyle the chroma style used for exported code blocks.
type Palette struct {
	Name          string
	DisplayName   string
	MarkdownStyle string
	CodeStyle     string
	Colors        map[Token]Color
}

// Color returns a color for the provided token, falling back to the default palette.
func (p Palette) Color(token Token) Color {
	if c, ok := p.Colors[token]; ok {
		return c
	}
	return fallbackColor(token)
}

func (p Palette) Adaptive(token Token) lipgloss.AdaptiveColor {
	return p.Color(token).Adaptive()
}

// ForegroundStyle returns a lipgloss style with the foreground set to the requested token.
func (p Palette) ForegroundStyle(token Token) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Adaptive(token))
}

// BadgeStyle renders text on a token colored background.
func (p Palette) BadgeStyle(background, foreground Token) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(p.Adaptive(background)).
		Foreground(p.Adaptive(foreground)).
		Padding(0, 1)
}

type contextKey struct{}

var (
	registryOnce sync.Once
	registryMu   sync.RWMutex
	palettes     map[string]Palette
	current      Palette
	defaultPal   Palette
	themeKey     contextKey
)

// ContextWithPalette stores the palette on the context.
func ContextWithPalette(ctx context.Context, p Palette) context.Context {
	return context.WithValue(ctx, themeKey, p)
}

// FromContext returns the palette stored on the context or the current palette.
func FromContext(ctx context.Context) Palette {
	if ctx == nil {
		return Current()
	}
	if p, ok := ctx.Value(themeKey).(Palette); ok {
		return p
	}
	return Current()
}

// Available returns the registered theme IDs, sorted.
func Available() []string {
	ensureRegistry()

	registryMu.RLock()
	defer registryMu.RUnlock()

	keys := make([]string, 0, len(palettes))
	for k := range palettes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func Exists(name string) bool {
	_, ok := Get(name)
	return ok
}

// Get returns the palette with the provided name.
func Get(name string) (Palette, bool) {
	ensureRegistry()

	registryMu.RLock()
	defer registryMu.RUnlock()

	p, ok := palettes[sanitizeName(name)]
	return p, ok
}

// SetCurrent sets the active palette. An empty name selects the default.
func SetCurrent(name string) error {
	ensureRegistry()

	name = sanitizeName(name)
	if name == "" {
		name = DefaultName
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	p, ok := palettes[name]
	if !ok {
		return fmt.Errorf("unknown color theme %q, must be one of %v", name, sortedNames())
	}
	current = p
	return nil
}

// Current returns the active palette.
func Current() Palette {
	ensureRegistry()

	registryMu.RLock()
	defer registryMu.RUnlock()

	return current
}

func ensureRegistry() {
	registryOnce.Do(func() {
		registryMu.Lock()
		defer registryMu.Unlock()

		palettes = make(map[string]Palette)
		for _, s := range builtinSeeds() {
			registerPalette(paletteFromSeed(s))
		}
		defaultPal = palettes[DefaultName]
		current = defaultPal
	})
}

func sortedNames() []string {
	keys := make([]string, 0, len(palettes))
	for k := range palettes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func registerPalette(p Palette) {
	if p.Name == "" {
		return
	}
	if p.DisplayName == "" {
		p.DisplayName = p.Name
	}
	p.Name = sanitizeName(p.Name)
	palettes[p.Name] = p
}

func fallbackColor(token Token) Color {
	if c, ok := defaultPal.Colors[token]; ok {
		return c
	}
	return Color{Light: "#000000", Dark: "#FFFFFF"}
}

func sanitizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

// seed is the handful of base colors a palette is derived from.
type seed struct {
	name, display       string
	dark                bool
	fg, bg, accent      string
	success, warn, fail string
}

func builtinSeeds() []seed {
	return []seed{
		{
			name: "dsview-dark", display: "dsview Dark", dark: true,
			fg: "#E6EDF3", bg: "#0D1117", accent: "#58A6FF",
			success: "#3FB950", warn: "#D29922", fail: "#F85149",
		},
		{
			name: "dsview-light", display: "dsview Light",
			fg: "#1F2328", bg: "#FFFFFF", accent: "#0969DA",
			success: "#1A7F37", warn: "#9A6700", fail: "#CF222E",
		},
		{
			name: "nord", display: "Nord", dark: true,
			fg: "#D8DEE9", bg: "#2E3440", accent: "#88C0D0",
			success: "#A3BE8C", warn: "#EBCB8B", fail: "#BF616A",
		},
		{
			name: "solarized-light", display: "Solarized Light",
			fg: "#586E75", bg: "#FDF6E3", accent: "#268BD2",
			success: "#859900", warn: "#B58900", fail: "#DC322F",
		},
	}
}

func paletteFromSeed(s seed) Palette {
	fg := normalizeHex(s.fg)
	bg := normalizeHex(s.bg)

	muted := blendHex(fg, bg, 0.45)
	border := blendHex(fg, bg, 0.75)
	highlight := blendHex(s.accent, bg, 0.8)

	markdownStyle, codeStyle := "light", "github"
	if s.dark {
		markdownStyle, codeStyle = "dark", "monokai"
	}

	return Palette{
		Name:          s.name,
		DisplayName:   s.display,
		MarkdownStyle: markdownStyle,
		CodeStyle:     codeStyle,
		Colors: map[Token]Color{
			ColorTextPrimary: singleColor(fg),
			ColorTextMuted:   singleColor(muted),
			ColorBorder:      singleColor(border),
			ColorPrimary:     singleColor(s.accent),
			ColorPrimaryText: singleColor(contrastColor(s.accent)),
			ColorAccent:      singleColor(lightenOrDarken(s.accent, s.dark)),
			ColorSuccess:     singleColor(s.success),
			ColorWarning:     singleColor(s.warn),
			ColorDanger:      singleColor(s.fail),
			ColorDangerText:  singleColor(contrastColor(s.fail)),
			ColorHighlight:   singleColor(highlight),
		},
	}
}

func singleColor(hex string) Color {
	h := normalizeHex(hex)
	return Color{Light: h, Dark: h}
}

func normalizeHex(hex string) string {
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
	switch len(trimmed) {
	case 0:
		return ""
	case 3:
		var b strings.Builder
		b.WriteString("#")
		for _, r := range trimmed {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		return strings.ToUpper(b.String())
	default:
		if len(trimmed) > 6 {
			trimmed = trimmed[:6]
		}
		return "#" + strings.ToUpper(trimmed)
	}
}

// contrastColor picks near-black or near-white text for a background.
func contrastColor(hex string) string {
	c, err := colorful.Hex(normalizeHex(hex))
	if err != nil {
		return "#121418"
	}
	if relativeLuminance(c) > 0.55 {
		return "#121418"
	}
	return "#F8F8F8"
}

// blendHex mixes a toward b in Lab space; amount 0 is a, 1 is b.
func blendHex(a, b string, amount float64) string {
	ca, err := colorful.Hex(normalizeHex(a))
	if err != nil {
		return normalizeHex(a)
	}
	cb, err := colorful.Hex(normalizeHex(b))
	if err != nil {
		return normalizeHex(a)
	}
	return strings.ToUpper(ca.BlendLab(cb, clampFloat(amount, 0, 1)).Clamped().Hex())
}

func lightenOrDarken(hex string, lighten bool) string {
	target := "#000000"
	if lighten {
		target = "#FFFFFF"
	}
	return blendHex(hex, target, 0.3)
}

func clampFloat(val, minVal, maxVal float64) float64 {
	return max(minVal, min(val, maxVal))
}

func relativeLuminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
