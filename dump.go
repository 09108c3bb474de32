package rope

import (
	"fmt"
	"io"
	"os"
	"strings"

	fcolor "github.com/fatih/color"
	"golang.org/x/term"
)

// Dump writes an indented listing of a rope's tree to w, one node per line.
// If w is a terminal, red branches are printed in red and leaves in blue.
func Dump(r *Rope, w io.Writer) error {
	redNode := fcolor.New(fcolor.FgRed, fcolor.Bold)
	blackNode := fcolor.New(fcolor.Bold)
	leafNode := fcolor.New(fcolor.FgBlue)
	f, ok := w.(*os.File)
	colored := ok && term.IsTerminal(int(f.Fd()))
	for _, c := range []*fcolor.Color{redNode, blackNode, leafNode} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r.each(func(n *node, pos uint64, depth int) error {
		indent := strings.Repeat("  ", depth)
		var err error
		switch {
		case n.isLeaf():
			_, err = fmt.Fprintf(w, "%s%s @%d %q\n", indent,
				leafNode.Sprintf("leaf(%d)", n.length), pos, strstart(n))
		case n.isRed():
			_, err = fmt.Fprintf(w, "%s%s\n", indent, redNode.Sprintf("R(%d)", n.length))
		default:
			_, err = fmt.Fprintf(w, "%s%s\n", indent, blackNode.Sprintf("B(%d)", n.length))
		}
		return err
	})
}
