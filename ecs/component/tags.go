package component

// PlayerTag marks the body created with is_pc set. Viewers follow it.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()
