package editor

import "github.com/ha1tch/tuna/ahi"

// HandleKey applies a key press: a binding in edit mode, or prompt
// editing while a prompt is open. It reports whether a redraw is needed.
func (st *State) HandleKey(ev KeyDown) bool {
	if st.Mode.Kind != ModeEdit {
		return st.promptKey(ev)
	}

	switch {
	case ev.Mods.Has(ModCommand | ModShift):
		return st.commandShiftKey(ev.Key)
	case ev.Mods.Has(ModCommand):
		return st.commandKey(ev.Key)
	}

	switch ev.Key {
	case KeyArrowUp:
		return st.PrevImage()
	case KeyArrowDown:
		return st.NextImage()
	case KeyEscape:
		return st.Unselect()
	case '[':
		return st.cyclePalette(-1)
	case ']':
		return st.cyclePalette(1)
	}
	if c, ok := colorForKey(ev.Key); ok {
		return st.SetColor(c)
	}
	if t, ok := toolForKey(rune(ev.Key)); ok {
		return st.SetTool(t)
	}
	return false
}

// HandleText feeds typed text to the open prompt. Text typed in edit mode
// is ignored; single keys arrive as KeyDown.
func (st *State) HandleText(ev TextInput) bool {
	if st.Mode.Kind == ModeEdit {
		return false
	}
	return st.promptText(ev.Text)
}

func colorForKey(k Key) (ahi.Color, bool) {
	switch {
	case k >= '0' && k <= '9':
		return ahi.Color(k - '0'), true
	case k >= 'a' && k <= 'f':
		return ahi.Color(k-'a') + ahi.Ca, true
	}
	return 0, false
}

func (st *State) commandKey(k Key) bool {
	s := st.current
	switch k {
	case 'n':
		if s.Font != nil {
			return st.BeginPrompt(ModeNewGlyph)
		}
		return st.Mutation().AddNewImage()
	case KeyBackspace:
		if s.NumImages() <= 1 {
			return false
		}
		return st.Mutation().DeleteImage()
	case 'o':
		return st.BeginPrompt(ModeLoadFile)
	case 's':
		return st.Save() == nil
	case 'r':
		return st.BeginPrompt(ModeResize)
	case 'z':
		return st.Undo()
	case 'a':
		return st.Mutation().SelectAll()
	case 'x':
		if s.Selection == nil {
			return false
		}
		return st.Mutation().CutSelection()
	case 'c':
		return st.CopySelection()
	case 'v':
		if st.clipboard == nil {
			return false
		}
		return st.Mutation().PasteSelection()
	case 'g':
		return st.BeginPrompt(ModeGoto)
	case 't':
		return st.BeginPrompt(ModeSetTag)
	case 'm':
		return st.BeginPrompt(ModeSetMetadata)
	case 'e':
		return st.BeginPrompt(ModeSetEdges)
	}
	return false
}

func (st *State) commandShiftKey(k Key) bool {
	switch k {
	case 's':
		return st.BeginPrompt(ModeSaveAs)
	case 'z':
		return st.Redo()
	case 'h':
		return st.Mutation().FlipSelectionHorz()
	case 'v':
		return st.Mutation().FlipSelectionVert()
	case 'l':
		if !st.canRotate() {
			return false
		}
		return st.Mutation().RotateSelectionCCW()
	case 'r':
		if !st.canRotate() {
			return false
		}
		return st.Mutation().RotateSelectionCW()
	case '2':
		return st.Mutation().ScaleSelection2x()
	case 'b':
		return st.BeginPrompt(ModeSetMetrics)
	case 't':
		return st.BeginPrompt(ModeTestSentence)
	}
	return false
}

// canRotate is false for a whole non-square glyph, whose height is fixed
// by the line height.
func (st *State) canRotate() bool {
	s := st.current
	if s.Selection != nil || s.Font == nil {
		return true
	}
	return s.Image().Width() == s.Image().Height()
}

func (st *State) cyclePalette(delta int) bool {
	if len(st.current.Palettes) <= 1 {
		return false
	}
	return st.Mutation().CyclePalette(delta)
}
