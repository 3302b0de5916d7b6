package display

import (
	"fmt"
	"io"

	"github.com/backmassage/mtsmux/internal/term"
)

// PrintBanner prints the ASCII art banner in the accent color.
func PrintBanner(w io.Writer, version string) {
	fmt.Fprint(w, term.Color(term.RoleAccent))
	fmt.Fprint(w, `           _
 _ __ ___ | |_ ___ _ __ ___  _   ___  __
| '_ ` + "`" + ` _ \| __/ __| '_ ` + "`" + ` _ \| | | \ \/ /
| | | | | | |_\__ \ | | | | | |_| |>  <
|_| |_| |_|\__|___/_| |_| |_|\__,_/_/\_\
`)
	fmt.Fprint(w, term.Reset())
	if version != "" {
		fmt.Fprintf(w, "MTS/AVCHD to MP4 %s\n", version)
	}
	fmt.Fprintln(w)
}
