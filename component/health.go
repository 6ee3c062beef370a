package component

// Health is a reusable health pool for anything that can take damage.
type Health struct {
	Max     float64
	Current float64
	Dead    bool

	OnDamage func(h *Health, amount float64)
	OnDeath  func(h *Health)
}

// NewHealth creates a Health with max/current initialized.
func NewHealth(max float64) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the pool is above zero.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// ApplyDamage subtracts amount, flooring at zero. Returns true if damage was
// applied.
func (h *Health) ApplyDamage(amount float64) bool {
	if h == nil || h.Dead || amount <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.OnDamage != nil {
		h.OnDamage(h, amount)
	}
	if h.Current <= 0 {
		h.Dead = true
		if h.OnDeath != nil {
			h.OnDeath(h)
		}
	}
	return true
}
