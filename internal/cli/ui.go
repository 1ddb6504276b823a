package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette (ANSI 256).
var (
	colorAccent  = lipgloss.Color("36")
	colorOK      = lipgloss.Color("35")
	colorWarn    = lipgloss.Color("220")
	colorCommand = lipgloss.Color("75")
	colorValue   = lipgloss.Color("255")
	colorMuted   = lipgloss.Color("245")
	colorFaint   = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue     = lipgloss.NewStyle().Foreground(colorValue)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)

	styleOK      = lipgloss.NewStyle().Foreground(colorOK)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleCommand = lipgloss.NewStyle().Foreground(colorCommand)
	styleKey     = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
)

// uiOut receives status lines. It is stderr so that layout JSON, previews
// and generated completions can be piped from stdout.
var uiOut io.Writer = os.Stderr

func status(icon lipgloss.Style, glyph, msg string) {
	fmt.Fprintln(uiOut, icon.Render(glyph)+" "+msg)
}

func printSuccess(format string, args ...any) {
	status(styleOK, "✓", fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(StyleWarning, "!", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(styleMuted, "›", fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile announces a file that was written.
func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(uiOut, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats summarizes a drawn tree: occupied slots, edges, and whether the
// result was served from the cache. Zero counts are omitted.
func printStats(nodes, edges int, cached bool) {
	var parts []string
	if nodes > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d nodes", nodes)))
	}
	if edges > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d edges", edges)))
	}
	if cached {
		parts = append(parts, styleOK.Render("cached"))
	} else {
		parts = append(parts, styleMuted.Render("fresh"))
	}
	fmt.Fprintln(uiOut, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(uiOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
