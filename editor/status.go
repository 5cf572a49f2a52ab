package editor

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Title is the window title: program, file name and an unsaved marker.
func (st *State) Title() string {
	t := "tuna - " + filepath.Base(st.Filepath)
	if st.current.Unsaved {
		t += "*"
	}
	return t
}

// Status summarises the document for the status line.
func (st *State) Status() string {
	s := st.current
	img := s.Image()

	var b strings.Builder
	fmt.Fprintf(&b, "%d/%d %dX%d %s", s.ImageIndex+1, s.NumImages(), img.Width(), img.Height(), st.Tool)
	if len(s.Palettes) > 1 {
		fmt.Fprintf(&b, " PAL %d", s.PaletteIndex)
	}
	if g, ok := s.Glyph(); ok {
		fmt.Fprintf(&b, " %q L%d R%d", g.Char, g.LeftEdge, g.RightEdge)
	}
	if img.Tag != "" {
		fmt.Fprintf(&b, " [%s]", img.Tag)
	}
	return b.String()
}
