package editor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ha1tch/tuna/ahi"
)

type ModeKind int

const (
	ModeEdit ModeKind = iota
	ModeLoadFile
	ModeSaveAs
	ModeResize
	ModeGoto
	ModeNewGlyph
	ModeSetTag
	ModeSetMetadata
	ModeSetMetrics
	ModeSetEdges
	ModeTestSentence
)

var modePrompts = []string{"", "Load file:", "Save as:", "Resize:", "Goto:", "New glyph:", "Tag:", "Metadata:", "Metrics:", "Edges:", "Test sentence:"}

// Prompt is the label shown in front of the text buffer.
func (k ModeKind) Prompt() string {
	if int(k) >= 0 && int(k) < len(modePrompts) {
		return modePrompts[k]
	}
	return ""
}

// IsPath reports whether the prompt takes a file path and so supports tab
// completion.
func (k ModeKind) IsPath() bool {
	return k == ModeLoadFile || k == ModeSaveAs
}

// Mode is Edit, or one of the modal prompts with its text buffer. The test
// sentence prompt edits the document's sentence directly and leaves Text
// empty.
type Mode struct {
	Kind ModeKind
	Text string
}

var (
	errBadSize    = errors.New("expected <width>x<height>")
	errBadPair    = errors.New("expected two comma separated integers")
	errNotFont    = errors.New("document is not a font")
	errBadGlyph   = errors.New("expected a single character")
	errNoChange   = errors.New("nothing changed")
	errOutOfRange = errors.New("out of range")
)

// BeginPrompt opens a prompt, filling the buffer with the value being
// edited. Prompts can only be opened from edit mode.
func (st *State) BeginPrompt(k ModeKind) bool {
	if st.Mode.Kind != ModeEdit || k == ModeEdit {
		return false
	}
	s := st.current
	text := ""
	switch k {
	case ModeLoadFile:
		if dir := filepath.Dir(st.Filepath); dir != "." {
			text = dir + string(filepath.Separator)
		}
	case ModeSaveAs:
		text = st.Filepath
	case ModeResize:
		text = fmt.Sprintf("%dx%d", s.Image().Width(), s.Image().Height())
	case ModeSetTag:
		text = s.Image().Tag
	case ModeSetMetadata:
		text = s.Image().Metadata.String()
	case ModeSetMetrics:
		if s.Font == nil {
			return false
		}
		text = fmt.Sprintf("%d,%d", s.Font.Baseline, s.Font.LineHeight)
	case ModeSetEdges:
		g, ok := s.Glyph()
		if !ok {
			return false
		}
		text = fmt.Sprintf("%d,%d", g.LeftEdge, g.RightEdge)
	case ModeNewGlyph, ModeTestSentence:
		if s.Font == nil {
			return false
		}
	}
	st.Mode = Mode{Kind: k, Text: text}
	return true
}

// promptKey handles a key press while a prompt is open. Unbound keys are
// swallowed.
func (st *State) promptKey(ev KeyDown) bool {
	switch ev.Key {
	case KeyEscape:
		st.Mode = Mode{}
		return true
	case KeyReturn:
		if st.Mode.Kind == ModeTestSentence {
			st.Mode = Mode{}
			return true
		}
		if err := st.perform(); err != nil {
			st.logger.Debug("prompt rejected", "prompt", st.Mode.Kind.Prompt(), "text", st.Mode.Text, "error", err)
			return false
		}
		st.Mode = Mode{}
		return true
	case KeyBackspace:
		if st.Mode.Kind == ModeTestSentence {
			s := st.current
			s.TestSentence = trimLastRune(s.TestSentence)
			return true
		}
		st.Mode.Text = trimLastRune(st.Mode.Text)
		return true
	case KeyTab:
		if !st.Mode.Kind.IsPath() {
			return false
		}
		text, ok := Complete(st.Mode.Text)
		if !ok || text == st.Mode.Text {
			return false
		}
		st.Mode.Text = text
		return true
	}
	return false
}

// promptText appends typed text to the open prompt.
func (st *State) promptText(text string) bool {
	text = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, text)
	if text == "" {
		return false
	}
	if st.Mode.Kind == ModeTestSentence {
		st.current.TestSentence += text
	} else {
		st.Mode.Text += text
	}
	return true
}

func trimLastRune(s string) string {
	_, n := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-n]
}

// perform runs the action of the open prompt. On error nothing has
// changed.
func (st *State) perform() error {
	text := st.Mode.Text
	s := st.current

	switch st.Mode.Kind {
	case ModeLoadFile:
		return st.Load(text)

	case ModeSaveAs:
		old := st.Filepath
		st.Filepath = text
		if err := st.Save(); err != nil {
			st.Filepath = old
			return err
		}
		return nil

	case ModeResize:
		w, h, err := ParseSize(text)
		if err != nil {
			return err
		}
		if s.Font != nil && h != s.Font.LineHeight {
			return fmt.Errorf("glyph height must be %d: %w", s.Font.LineHeight, errOutOfRange)
		}
		if s.Selection == nil && st.sizedAll(w, h) {
			return nil
		}
		st.Mutation().Resize(w, h)
		return nil

	case ModeGoto:
		i, err := st.parseGoto(text)
		if err != nil {
			return err
		}
		st.SelectImage(i)
		return nil

	case ModeNewGlyph:
		if s.Font == nil {
			return errNotFont
		}
		ch, err := parseGlyph(text)
		if err != nil {
			return err
		}
		if _, found := s.Font.Index(ch); found {
			return fmt.Errorf("glyph %q already exists", ch)
		}
		if !st.Mutation().InsertGlyph(ch) {
			return errNoChange
		}
		return nil

	case ModeSetTag:
		if text == s.Image().Tag {
			return nil
		}
		st.Mutation().SetTag(text)
		return nil

	case ModeSetMetadata:
		md, err := ahi.ParseMetadata(text)
		if err != nil {
			return err
		}
		if md.Equal(s.Image().Metadata) {
			return nil
		}
		st.Mutation().SetMetadata(md)
		return nil

	case ModeSetMetrics:
		if s.Font == nil {
			return errNotFont
		}
		baseline, lineHeight, err := ParsePair(text)
		if err != nil {
			return err
		}
		if lineHeight < 1 || lineHeight > ahi.MaxDimension || baseline < 0 || baseline > lineHeight {
			return fmt.Errorf("metrics %d,%d: %w", baseline, lineHeight, errOutOfRange)
		}
		if baseline == s.Font.Baseline && lineHeight == s.Font.LineHeight {
			return nil
		}
		st.Mutation().SetMetrics(baseline, lineHeight)
		return nil

	case ModeSetEdges:
		if s.Font == nil {
			return errNotFont
		}
		left, right, err := ParsePair(text)
		if err != nil {
			return err
		}
		if left < -0x8000 || left > 0x7fff || right < -0x8000 || right > 0x7fff {
			return errOutOfRange
		}
		if g, _ := s.Glyph(); g.LeftEdge == left && g.RightEdge == right {
			return nil
		}
		st.Mutation().SetEdges(left, right)
		return nil
	}
	return nil
}

// sizedAll reports whether a resize to w by h would change nothing.
func (st *State) sizedAll(w, h int) bool {
	s := st.current
	if s.Font != nil {
		return s.Image().Width() == w && s.Image().Height() == h
	}
	for _, img := range s.Images() {
		if img.Width() != w || img.Height() != h {
			return false
		}
	}
	return true
}

// ParseSize parses "<width>x<height>" with both sides in 1..1024.
func ParseSize(text string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(text)), "x")
	if !ok {
		return 0, 0, errBadSize
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return 0, 0, errBadSize
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, errBadSize
	}
	if w < 1 || h < 1 || w > ahi.MaxDimension || h > ahi.MaxDimension {
		return 0, 0, fmt.Errorf("size %dx%d: %w", w, h, errOutOfRange)
	}
	return w, h, nil
}

// ParsePair parses "<a>,<b>".
func ParsePair(text string) (int, int, error) {
	as, bs, ok := strings.Cut(text, ",")
	if !ok {
		return 0, 0, errBadPair
	}
	a, err := strconv.Atoi(strings.TrimSpace(as))
	if err != nil {
		return 0, 0, errBadPair
	}
	b, err := strconv.Atoi(strings.TrimSpace(bs))
	if err != nil {
		return 0, 0, errBadPair
	}
	return a, b, nil
}

func parseGlyph(text string) (rune, error) {
	if utf8.RuneCountInString(text) != 1 {
		return 0, errBadGlyph
	}
	ch, _ := utf8.DecodeRuneInString(text)
	if ch == utf8.RuneError {
		return 0, errBadGlyph
	}
	return ch, nil
}

// parseGoto resolves the goto buffer to an image index: a glyph character
// in fonts, otherwise a 0-based number.
func (st *State) parseGoto(text string) (int, error) {
	s := st.current
	if s.Font != nil && utf8.RuneCountInString(text) == 1 {
		ch, _ := utf8.DecodeRuneInString(text)
		if i, found := s.Font.Index(ch); found {
			return i, nil
		}
		if ch < '0' || ch > '9' {
			return 0, fmt.Errorf("no glyph %q", ch)
		}
	}
	i, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= s.NumImages() {
		return 0, fmt.Errorf("image %d: %w", i, errOutOfRange)
	}
	return i, nil
}

// Complete extends the path in text to the longest prefix shared by the
// matching directory entries. A single matching directory gets a trailing
// separator. Dot files only match a prefix starting with a dot.
func Complete(text string) (string, bool) {
	dir, prefix := filepath.Split(text)
	list := dir
	if list == "" {
		list = "."
	}
	entries, err := os.ReadDir(list)
	if err != nil {
		return text, false
	}

	var matches []os.DirEntry
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(prefix, ".") {
			continue
		}
		matches = append(matches, e)
	}
	if len(matches) == 0 {
		return text, false
	}

	common := matches[0].Name()
	for _, e := range matches[1:] {
		common = commonPrefix(common, e.Name())
	}
	out := dir + common
	if len(matches) == 1 && matches[0].IsDir() {
		out += string(filepath.Separator)
	}
	return out, true
}

func commonPrefix(a, b string) string {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	// do not split a multi-byte rune
	for n > 0 && n < len(a) && !utf8.RuneStart(a[n]) {
		n--
	}
	return a[:n]
}
