/*
Package editor holds the document model and interactive controller of the
tuna pixel editor: snapshots with shared image handles, undo and redo, the
mutation API every edit flows through, the drawing tools, and the modal
prompts.

The package is single-threaded. Callers deliver events one at a time and use
the boolean results to decide whether to redraw.
*/
package editor

import (
	"log/slog"

	"github.com/ha1tch/tuna/ahi"
)

const (
	MaxUndos                = 100
	MarqueeAnimationModulus = 8
	DefaultImageSize        = 32
	DefaultPath             = "out.ahi"
	DefaultTestSentence     = "The quick brown fox jumps over the lazy dog."
)

// State is the live editor: the current snapshot, its history, and
// everything about the session that is not part of the document.
type State struct {
	Mode     Mode
	Color    ahi.Color
	Filepath string
	Tool     Tool
	PrevTool Tool

	current   *Snapshot
	undo      []*Snapshot
	redo      []*Snapshot
	clipboard *Floater

	// strokeOpen is set while a persistent mutation can absorb further
	// writes into the snapshot it pushed.
	strokeOpen bool

	palettes []ahi.Palette
	logger   *slog.Logger
}

// NewState returns an editor with a single blank image. New documents use
// palettes, or the default palette when palettes is empty.
func NewState(logger *slog.Logger, palettes []ahi.Palette) *State {
	if logger == nil {
		logger = slog.Default()
	}
	if len(palettes) == 0 {
		palettes = ahi.DefaultPalettes()
	}
	return &State{
		Color:    ahi.C1,
		Filepath: DefaultPath,
		Tool:     ToolPencil,
		PrevTool: ToolPencil,
		current:  newSnapshot(nil, palettes),
		palettes: palettes,
		logger:   logger,
	}
}

// Current is the live snapshot. Read it freely; write only through a
// Mutation.
func (st *State) Current() *Snapshot { return st.current }

func (st *State) UndoDepth() int { return len(st.undo) }
func (st *State) RedoDepth() int { return len(st.redo) }

func (st *State) Clipboard() *Floater { return st.clipboard }

// SetTool switches tools, remembering the previous one for the eyedropper.
func (st *State) SetTool(t Tool) bool {
	if t == st.Tool {
		return false
	}
	st.PrevTool, st.Tool = st.Tool, t
	return true
}

func (st *State) SetColor(c ahi.Color) bool {
	c &= 0x0f
	if c == st.Color {
		return false
	}
	st.Color = c
	return true
}

// pushChange saves a copy of the current snapshot for undo and drops the
// redo history.
func (st *State) pushChange() {
	st.undo = append(st.undo, st.current.clone())
	if len(st.undo) > MaxUndos {
		n := copy(st.undo, st.undo[len(st.undo)-MaxUndos:])
		clear(st.undo[n:])
		st.undo = st.undo[:n]
	}
	clear(st.redo)
	st.redo = st.redo[:0]
}

// Undo swaps the most recent undo snapshot with the current one.
func (st *State) Undo() bool {
	if len(st.undo) == 0 {
		return false
	}
	st.strokeOpen = false
	last := len(st.undo) - 1
	st.redo = append(st.redo, st.current)
	st.current = st.undo[last]
	st.undo[last] = nil
	st.undo = st.undo[:last]
	return true
}

func (st *State) Redo() bool {
	if len(st.redo) == 0 {
		return false
	}
	st.strokeOpen = false
	last := len(st.redo) - 1
	st.undo = append(st.undo, st.current)
	st.current = st.redo[last]
	st.redo[last] = nil
	st.redo = st.redo[:last]
	return true
}

// Mutation starts a transactional edit: everything done through the
// returned value is a single undo step.
func (st *State) Mutation() *Mutation {
	st.strokeOpen = false
	st.pushChange()
	st.current.Unsaved = true
	return &Mutation{st: st}
}

// PersistentMutation continues the open stroke, or opens one.
func (st *State) PersistentMutation() *Mutation {
	if !st.strokeOpen {
		return st.ResetPersistentMutation()
	}
	return &Mutation{st: st}
}

// ResetPersistentMutation starts a new stroke. Writes through this and
// later persistent mutations are undone together.
func (st *State) ResetPersistentMutation() *Mutation {
	st.pushChange()
	st.current.Unsaved = true
	st.strokeOpen = true
	return &Mutation{st: st}
}

// CopySelection puts the floater, or the whole current image at the origin,
// on the clipboard.
func (st *State) CopySelection() bool {
	s := st.current
	if f := s.Selection; f != nil {
		st.clipboard = &Floater{Image: f.Image, TopLeft: f.TopLeft}
	} else {
		st.clipboard = &Floater{Image: s.Image().Clone()}
	}
	return true
}

// Unselect commits the floater, if any, as its own undo step.
func (st *State) Unselect() bool {
	if st.current.Selection == nil {
		return false
	}
	_, ok := st.Mutation().Unselect()
	return ok
}

// SelectImage makes image i current, committing the floater first.
func (st *State) SelectImage(i int) bool {
	s := st.current
	if i < 0 || i >= s.NumImages() || i == s.ImageIndex {
		return false
	}
	st.Unselect()
	s = st.current
	s.ImageIndex = i
	s.syncPalette()
	return true
}

func (st *State) PrevImage() bool { return st.SelectImage(st.current.ImageIndex - 1) }
func (st *State) NextImage() bool { return st.SelectImage(st.current.ImageIndex + 1) }

// IsFont reports whether the document is an AHF font.
func (st *State) IsFont() bool { return st.current.Font != nil }
