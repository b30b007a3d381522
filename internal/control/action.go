package control

type Action int

const (
	ActionNone Action = iota
	ActionToggleRun
	ActionZoomOut
	ActionZoomIn
	ActionZoomReset
	ActionRecenter
	ActionAddRandom
	ActionBilinear
	ActionPrecise
	ActionBarnesHut
	ActionReverse
	ActionFlip
	ActionDelete
	ActionCopy
	ActionPaste
	ActionCut
	ActionTogglePaths
	ActionQuit
)

var keyActions = map[string]Action{
	" ":      ActionToggleRun,
	"space":  ActionToggleRun,
	"-":      ActionZoomOut,
	"=":      ActionZoomIn,
	"+":      ActionZoomIn,
	"0":      ActionZoomReset,
	"9":      ActionRecenter,
	"m":      ActionAddRandom,
	"b":      ActionBilinear,
	"g":      ActionPrecise,
	"h":      ActionBarnesHut,
	"r":      ActionReverse,
	"f":      ActionFlip,
	"delete": ActionDelete,
	"c":      ActionCopy,
	"v":      ActionPaste,
	"x":      ActionCut,
	"p":      ActionTogglePaths,
	"q":      ActionQuit,
	"esc":    ActionQuit,
	"ctrl+c": ActionQuit,
}

// KeyAction returns the action bound to a key name.
func KeyAction(key string) (Action, bool) {
	a, ok := keyActions[key]
	return a, ok
}

var actionNames = map[Action]string{
	ActionToggleRun:   "pause",
	ActionZoomOut:     "zoom out",
	ActionZoomIn:      "zoom in",
	ActionZoomReset:   "zoom reset",
	ActionRecenter:    "recenter",
	ActionAddRandom:   "add particle",
	ActionBilinear:    "bilinear field",
	ActionPrecise:     "precise field",
	ActionBarnesHut:   "barnes-hut field",
	ActionReverse:     "reverse",
	ActionFlip:        "flip",
	ActionDelete:      "delete",
	ActionCopy:        "copy",
	ActionPaste:       "paste",
	ActionCut:         "cut",
	ActionTogglePaths: "paths",
	ActionQuit:        "quit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}
