package display

import (
	"os"
	"strings"

	"github.com/backmassage/mediaconv/internal/term"
)

var banner = strings.Join([]string{
	"                     _ _",
	" _ __ ___   ___  __| (_) __ _  ___ ___  _ __ __   __",
	"| '_ ` _ \\ / _ \\/ _` | |/ _` |/ __/ _ \\| '_ \\\\ \\ / /",
	"| | | | | |  __/ (_| | | (_| | (_| (_) | | | |\\ V /",
	"|_| |_| |_|\\___|\\__,_|_|\\__,_|\\___\\___/|_| |_| \\_/",
}, "\n")

// PrintBanner prints the ASCII art banner in magenta when colors are enabled.
func PrintBanner() {
	_, _ = term.Magenta.Fprintln(os.Stdout, banner)
}
