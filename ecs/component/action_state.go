package component

// ActionState is the script-owned state code of an entity (idle, run, jump
// and so on are meaningful only to scripts and renderers).
type ActionState struct {
	State uint8
}

var ActionStateComponent = NewComponent[ActionState]()

// AnimationSet maps action-state codes to sprite sheet names. Frame
// advancement belongs to the renderer; the core only carries the table.
type AnimationSet struct {
	Sheets map[uint8]string
}

// Sheet returns the sheet for the given state, if any.
func (a AnimationSet) Sheet(state uint8) (string, bool) {
	name, ok := a.Sheets[state]
	return name, ok
}

var AnimationSetComponent = NewComponent[AnimationSet]()
