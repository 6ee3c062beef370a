package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDamage(t *testing.T) {
	tests := []struct {
		name     string
		hits     []float64
		want     float64
		wantDead bool
	}{
		{"single", []float64{10}, 90, false},
		{"floors_at_zero", []float64{60, 60}, 0, true},
		{"ignores_non_positive", []float64{0, -5}, 100, false},
		{"exact_kill", []float64{100}, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHealth(100)
			for _, a := range tc.hits {
				h.ApplyDamage(a)
			}
			assert.Equal(t, tc.want, h.Current)
			assert.Equal(t, tc.wantDead, h.Dead)
			assert.Equal(t, !tc.wantDead, h.IsAlive())
		})
	}
}

func TestHealthCallbacks(t *testing.T) {
	h := NewHealth(20)
	damaged, died := 0, 0
	h.OnDamage = func(*Health, float64) { damaged++ }
	h.OnDeath = func(*Health) { died++ }

	assert.True(t, h.ApplyDamage(15))
	assert.True(t, h.ApplyDamage(15))
	assert.False(t, h.ApplyDamage(15), "dead pools take no damage")
	assert.Equal(t, 2, damaged)
	assert.Equal(t, 1, died)
}

func TestHealthDefaults(t *testing.T) {
	var nilHealth *Health
	assert.False(t, nilHealth.ApplyDamage(1))
	assert.False(t, nilHealth.IsAlive())
	assert.Equal(t, 1.0, NewHealth(0).Max)
}
