package ecs

import "github.com/go-gl/mathgl/mgl64"

type Topic string

const (
	TopicHit        Topic = "hit"
	TopicAmmoPickup Topic = "AmmoPickup"
	TopicNavEnd     Topic = "nav.end"
	TopicShot       Topic = "ak47_shot"
)

// Event is the closed set of messages entities exchange. Events are built at
// the call site and dispatched synchronously.
type Event interface {
	Topic() Topic
	event()
}

type Handler func(ev Event)

// HitResult is the ray-hit geometry carried by a HitEvent. Object is the
// physics collision object that was struck.
type HitResult struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
	Object any
}

type HitEvent struct {
	From   *Entity
	Amount float64
	Result HitResult
}

type AmmoPickupEvent struct{}

type NavEndEvent struct {
	Agent *Entity
}

type ShotEvent struct{}

func (HitEvent) Topic() Topic        { return TopicHit }
func (AmmoPickupEvent) Topic() Topic { return TopicAmmoPickup }
func (NavEndEvent) Topic() Topic     { return TopicNavEnd }
func (ShotEvent) Topic() Topic       { return TopicShot }

func (HitEvent) event()        {}
func (AmmoPickupEvent) event() {}
func (NavEndEvent) event()     {}
func (ShotEvent) event()       {}
