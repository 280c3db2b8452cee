package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the richtext banner with the version underneath.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	lines := []struct {
		text  string
		color string
	}{
		{"       _      _     _            _   ", "#818cf8"},
		{"  _ __(_) ___| |__ | |_ _____  _| |_ ", "#a78bfa"},
		{" | '__| |/ __| '_ \\| __/ _ \\ \\/ / __|", "#c084fc"},
		{" | |  | | (__| | | | ||  __/>  <| |_ ", "#e879f9"},
		{" |_|  |_|\\___|_| |_|\\__\\___/_/\\_\\\\__|", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
