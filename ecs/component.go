package ecs

import "fmt"

// Component is a unit of behavior attached to exactly one Entity.
type Component interface {
	Kind() ComponentKind
	SetParent(e *Entity)
	Parent() *Entity
}

// Initializer runs once from EntityManager.EndSetup, after every entity has
// been registered. Cross-entity lookups belong here.
type Initializer interface {
	Initialize() error
}

type Updater interface {
	Update(dt float64)
}

// PhysicsUpdater runs once per frame after every entity has been updated.
type PhysicsUpdater interface {
	PhysicsUpdate()
}

// Base carries the parent back-reference. Embed it to satisfy the parent half
// of Component.
type Base struct {
	parent *Entity
}

func (b *Base) SetParent(e *Entity) {
	if b.parent != nil && b.parent != e {
		panic(fmt.Sprintf("ecs: component already attached to %q", b.parent.Name()))
	}
	b.parent = e
}

func (b *Base) Parent() *Entity {
	return b.parent
}

// Broadcast sends ev to the parent entity's handlers.
func (b *Base) Broadcast(ev Event) {
	if b.parent == nil {
		return
	}
	b.parent.Broadcast(ev)
}

func (b *Base) FindEntity(name string) (*Entity, error) {
	if b.parent == nil {
		return nil, ErrDetached
	}
	return b.parent.FindEntity(name)
}
