package component

// CollisionLayer is the world-level layer group of one entity: the
// OR of the masks and the OR of the layers of its active areas.
type CollisionLayer struct {
	// Mask is a bitmask of categories this group reacts to.
	Mask uint8 `yaml:"mask"`
	// Layer is a bitmask of categories this group belongs to.
	Layer uint8 `yaml:"layer"`
}

// Overlaps is the group pre-check run before any per-area test.
func (c CollisionLayer) Overlaps(other CollisionLayer) bool {
	return c.Mask&other.Layer != 0
}

// BitsToMask packs eight flags into a bitset, entry i setting bit i.
func BitsToMask(bits [8]bool) uint8 {
	var out uint8
	for i, on := range bits {
		if on {
			out |= 1 << uint(i)
		}
	}
	return out
}
