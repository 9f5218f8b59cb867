package render

import (
	"os"

	"golang.org/x/term"
)

// DefaultTerminalWidth is used when stdout is not a terminal
const DefaultTerminalWidth = 80

// TerminalWidth returns override when positive, else the width of stdout
func TerminalWidth(override int) int {
	if override > 0 {
		return override
	}
	return probeWidth(int(os.Stdout.Fd()))
}

func probeWidth(fd int) int {
	if !term.IsTerminal(fd) {
		return DefaultTerminalWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return width
}
