package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Brand colors
var (
	Brand  = color.New(color.FgHiBlue, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

const Net = "\u25CE" // ◎

// SetColor turns colored output on or off. NO_COLOR still wins.
func SetColor(enabled bool) {
	if !enabled {
		color.NoColor = true
	}
}

// Banner prints the semnet banner.
func Banner(subtitle string) {
	fmt.Printf("%s %s — %s\n\n", Net, Brand.Sprint("semnet"), subtitle)
}

// KV prints one aligned "label  value" line.
func KV(label string, value any) {
	fmt.Printf("  %s  %v\n", Brand.Sprintf("%-20s", label), value)
}

// Table prints a simple aligned table.
func Table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	headerLine := "  "
	sepLine := "  "
	for i, h := range headers {
		headerLine += fmt.Sprintf("%-*s  ", widths[i], h)
		sepLine += strings.Repeat("─", widths[i]) + "  "
	}
	Subtle.Println(headerLine)
	Subtle.Println(sepLine)

	for _, row := range rows {
		line := "  "
		for i, cell := range row {
			if i < len(widths) {
				line += fmt.Sprintf("%-*s  ", widths[i], cell)
			}
		}
		fmt.Println(line)
	}
}

// Bar renders pct (0-100) as a block bar of the given width.
func Bar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(pct/100*float64(width) + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return Good.Sprint(strings.Repeat("█", filled)) + Subtle.Sprint(strings.Repeat("░", width-filled))
}

// StatusIcon returns a status icon string.
func StatusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}

// WarnIcon returns a warning icon.
func WarnIcon() string {
	return Warn.Sprint("⚠")
}
