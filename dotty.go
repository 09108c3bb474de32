package rope

import (
	"fmt"
	"io"
	"strings"
)

type nodeids struct {
	idTable map[*node]int
	max     int
}

func newtable() nodeids {
	return nodeids{
		idTable: make(map[*node]int),
		max:     1,
	}
}

func (ids nodeids) find(n *node) int {
	return ids.idTable[n]
}

func (ids *nodeids) alloc(n *node) int {
	if id := ids.find(n); id > 0 {
		return id
	}
	ids.idTable[n] = ids.max
	ids.max++
	return ids.max - 1
}

// Rope2Dot outputs the internal structure of a rope in Graphviz DOT format
// (for debugging purposes).
func Rope2Dot(text *Rope, w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	ids := newtable()
	var nodelist, edgelist strings.Builder
	err := text.each(func(n *node, pos uint64, depth int) error {
		ID := ids.alloc(n)
		styles := nodeDotStyles(n)
		if n.isLeaf() {
			label := fmt.Sprintf("%d @%d\\n“%s”", n.length, pos, strstart(n))
			fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\" %s];\n", ID, label, styles)
			return nil
		}
		fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", ID, ids.alloc(n.left))
		fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", ID, ids.alloc(n.right))
		fmt.Fprintf(&nodelist, "\"%d\" [label=%d %s];\n", ID, n.length, styles)
		return nil
	})
	if err != nil {
		tracer().Errorf("rope DOT: %s", err.Error())
	}
	io.WriteString(w, nodelist.String())
	io.WriteString(w, edgelist.String())
	io.WriteString(w, "}\n")
}

func nodeDotStyles(n *node) string {
	s := ",style=filled"
	if n.isLeaf() {
		s += ",shape=box,fillcolor=\"#a3d7e4\""
	} else if n.isRed() {
		s += ",shape=circle,fontcolor=white,color=\"#cc2222\",fillcolor=\"#ee4444\""
	} else {
		s += ",shape=circle,fontcolor=white,color=black,fillcolor=\"#333333\""
	}
	return s
}

// strstart returns a short, DOT-safe prefix of a leaf's text.
func strstart(n *node) string {
	text := n.bytes()
	if len(text) > 10 {
		text = text[:10]
	}
	s := strings.ReplaceAll(string(text), "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\\\n")
	return s
}
