package component

// Health of an enemy or tower.
type Health struct {
	Value int
	Max   int
}

func NewHealth(max int) *Health { return &Health{Value: max, Max: max} }

func (h *Health) Alive() bool { return h.Value > 0 }

// Damage lowers health, never below zero, and reports whether it died.
func (h *Health) Damage(n int) bool {
	h.Value -= n
	if h.Value < 0 {
		h.Value = 0
	}
	return h.Value == 0
}

// Heal raises health up to Max.
func (h *Health) Heal(n int) {
	h.Value += n
	if h.Value > h.Max {
		h.Value = h.Max
	}
}
