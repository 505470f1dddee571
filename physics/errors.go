package physics

import (
	"errors"
	"fmt"

	"github.com/milk9111/physics2d/ecs"
)

var (
	ErrEntityNotFound = errors.New("physics: entity not found")
	ErrAreaNotFound   = errors.New("physics: area not found")
	ErrInvalidEntity  = errors.New("physics: invalid entity")
)

// NotFoundError is returned by every lookup on an entity or area the world
// does not own. It unwraps to ErrEntityNotFound or ErrAreaNotFound.
type NotFoundError struct {
	Entity ecs.Entity
	What   string
	Err    error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("physics: %s of entity %s not found", e.What, e.Entity)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

func bodyNotFound(e ecs.Entity) error {
	return &NotFoundError{Entity: e, What: "body", Err: ErrEntityNotFound}
}

func areaNotFound(e ecs.Entity) error {
	return &NotFoundError{Entity: e, What: "area", Err: ErrAreaNotFound}
}
