package editor

// Tool types
type Tool int

const (
	ToolPencil Tool = iota
	ToolPaintBucket
	ToolEyedropper
	ToolLine
	ToolRectangle
	ToolOval
	ToolCheckerboard
	ToolPaletteSwap
	ToolPaletteReplace
	ToolSelect

	NumTools = int(ToolSelect) + 1
)

var toolNames = []string{"PENCIL", "BUCKET", "PICKER", "LINE", "RECT", "OVAL", "CHECKER", "SWAP", "REPLACE", "SELECT"}

// toolKeys are the single-letter bindings, in tool order.
var toolKeys = []rune{'p', 'k', 'y', 'l', 'r', 'o', 'h', 'w', 'q', 's'}

func (t Tool) String() string {
	if int(t) >= 0 && int(t) < len(toolNames) {
		return toolNames[t]
	}
	return "UNKNOWN"
}

// Key returns the letter that selects t in edit mode.
func (t Tool) Key() rune {
	if int(t) >= 0 && int(t) < len(toolKeys) {
		return toolKeys[t]
	}
	return 0
}

func toolForKey(r rune) (Tool, bool) {
	for i, k := range toolKeys {
		if k == r {
			return Tool(i), true
		}
	}
	return 0, false
}
