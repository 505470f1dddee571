package component

// Health is the hit-point pool given to scripted bodies.
type Health struct {
	Total   uint16
	Current uint16
}

// Damage subtracts amount, saturating at zero, and reports whether the pool
// is now empty.
func (h *Health) Damage(amount uint16) bool {
	if amount >= h.Current {
		h.Current = 0
	} else {
		h.Current -= amount
	}
	return h.Current == 0
}

var HealthComponent = NewComponent[Health]()
