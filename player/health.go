package player

import (
	"go.uber.org/zap"

	"github.com/milk9111/mutantfps/component"
	"github.com/milk9111/mutantfps/ecs"
)

// HealthDisplay shows the player's health in percent.
type HealthDisplay interface {
	SetHealth(h float64)
}

type PlayerHealth struct {
	ecs.Base
	health *component.Health
	ui     HealthDisplay
}

func NewPlayerHealth(max float64) *PlayerHealth {
	return &PlayerHealth{health: component.NewHealth(max)}
}

func (h *PlayerHealth) Kind() ecs.ComponentKind { return ecs.KindPlayerHealth }

func (h *PlayerHealth) Initialize() error {
	ui, err := h.FindEntity("UIManager")
	if err != nil {
		return err
	}
	if h.ui, err = ecs.Get[HealthDisplay](ui, ecs.KindUIManager); err != nil {
		return err
	}
	h.health.OnDamage = func(hp *component.Health, _ float64) {
		h.ui.SetHealth(hp.Current)
	}
	h.health.OnDeath = func(*component.Health) {
		h.Parent().Logger().Info("player died", zap.Float64("max", h.health.Max))
	}
	h.Parent().RegisterEventHandler(ecs.TopicHit, h.takeHit)
	h.ui.SetHealth(h.health.Current)
	return nil
}

func (h *PlayerHealth) takeHit(ev ecs.Event) {
	hit, ok := ev.(ecs.HitEvent)
	if !ok {
		return
	}
	h.health.ApplyDamage(hit.Amount)
}

func (h *PlayerHealth) Health() float64 {
	return h.health.Current
}

func (h *PlayerHealth) Dead() bool {
	return !h.health.IsAlive()
}
