package component

const (
	WallNone  = 0
	WallLeft  = 1
	WallRight = 2
)

// ContactState is derived each frame from the resolved contacts of an
// entity's physics colliders.
type ContactState struct {
	Grounded bool
	Ceiling  bool
	// Wall: 0 = none, 1 = left, 2 = right
	Wall int
	// Touching counts resolved contacts seen this frame.
	Touching int
	// Sensed counts sensor overlaps seen this frame.
	Sensed int
}

func (c *ContactState) Reset() {
	*c = ContactState{}
}

var ContactStateComponent = NewComponent[ContactState]()
