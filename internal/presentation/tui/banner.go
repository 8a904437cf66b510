package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the montage ASCII art banner.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	lines := []struct{ text, color string }{
		{"                        _                        ", "#818cf8"},
		{"  _ __ ___   ___  _ __ | |_ __ _  __ _  ___      ", "#a78bfa"},
		{" | '_ ` _ \\ / _ \\| '_ \\| __/ _` |/ _` |/ _ \\", "#c084fc"},
		{" | | | | | | (_) | | | | || (_| | (_| |  __/     ", "#e879f9"},
		{" |_| |_| |_|\\___/|_| |_|\\__\\__,_|\\__, |\\___|", "#f472b6"},
		{"                                 |___/           ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
