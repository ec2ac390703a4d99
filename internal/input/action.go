// internal/input/action.go
package input

// Action represents an operation the viewer performs in response to a key.
type Action int

// Define the set of possible viewer actions.
const (
	// --- Meta Actions ---
	ActionUnknown   Action = iota // Default/invalid action
	ActionQuit                    // Refuses while a document has unsaved changes
	ActionForceQuit               // Quit without checking modified status
	ActionSave
	ActionReloadConfig

	// --- Caret Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome // Beginning of line
	ActionMoveEnd  // End of line
	ActionMoveFileStart
	ActionMoveFileEnd

	// --- Documents ---
	ActionNextDocument
	ActionPrevDocument

	// --- Trailing Spaces ---
	ActionDeleteTrailing
	ActionDeleteModified
	ActionHighlight
)

var actionNames = map[Action]string{
	ActionQuit:           "quit",
	ActionForceQuit:      "force-quit",
	ActionSave:           "save",
	ActionReloadConfig:   "reload-config",
	ActionMoveUp:         "up",
	ActionMoveDown:       "down",
	ActionMoveLeft:       "left",
	ActionMoveRight:      "right",
	ActionMovePageUp:     "page-up",
	ActionMovePageDown:   "page-down",
	ActionMoveHome:       "home",
	ActionMoveEnd:        "end",
	ActionMoveFileStart:  "file-start",
	ActionMoveFileEnd:    "file-end",
	ActionNextDocument:   "next-document",
	ActionPrevDocument:   "prev-document",
	ActionDeleteTrailing: "delete",
	ActionDeleteModified: "delete-modified",
	ActionHighlight:      "highlight",
}

// String returns the action's name, used in debug logs.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}
