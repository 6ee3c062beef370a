package ecs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Entity is a named container of components with a world pose and a
// per-topic handler table. Components run in the order their kinds were
// first added.
type Entity struct {
	id       int
	name     string
	position mgl64.Vec3
	rotation mgl64.Quat

	components map[ComponentKind]Component
	order      []ComponentKind
	handlers   map[Topic][]Handler

	manager *EntityManager
	logger  *zap.Logger
}

func NewEntity() *Entity {
	return &Entity{
		id:         -1,
		rotation:   mgl64.QuatIdent(),
		components: make(map[ComponentKind]Component),
		handlers:   make(map[Topic][]Handler),
	}
}

// NewNamedEntity is shorthand for NewEntity followed by SetName.
func NewNamedEntity(name string) *Entity {
	e := NewEntity()
	e.name = name
	return e
}

// ID is -1 until the entity is registered with a manager.
func (e *Entity) ID() int {
	return e.id
}

func (e *Entity) Name() string {
	return e.name
}

func (e *Entity) SetName(name string) {
	e.name = name
}

func (e *Entity) Position() mgl64.Vec3 {
	return e.position
}

func (e *Entity) SetPosition(p mgl64.Vec3) {
	e.position = p
}

func (e *Entity) Rotation() mgl64.Quat {
	return e.rotation
}

func (e *Entity) SetRotation(q mgl64.Quat) {
	e.rotation = q
}

// Logger returns the manager's logger tagged with this entity, or a no-op
// logger for an unregistered entity.
func (e *Entity) Logger() *zap.Logger {
	if e.logger != nil {
		return e.logger
	}
	return zap.NewNop()
}

// AddComponent attaches c and sets its parent. A second component of the same
// kind replaces the first but keeps its original position in the run order.
func (e *Entity) AddComponent(c Component) error {
	if c == nil {
		return ErrNilComponent
	}
	kind := c.Kind()
	if !kind.Valid() {
		return errors.Wrapf(ErrInvalidKind, "add to %q", e.name)
	}
	c.SetParent(e)
	if _, ok := e.components[kind]; !ok {
		e.order = append(e.order, kind)
	}
	e.components[kind] = c
	return nil
}

func (e *Entity) GetComponent(kind ComponentKind) (Component, error) {
	c, ok := e.components[kind]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "component %s on %q", kind, e.name)
	}
	return c, nil
}

// Components returns the attached components in run order.
func (e *Entity) Components() []Component {
	out := make([]Component, 0, len(e.order))
	for _, kind := range e.order {
		out = append(out, e.components[kind])
	}
	return out
}

// Get looks up the component of the given kind and asserts its concrete type.
func Get[T any](e *Entity, kind ComponentKind) (T, error) {
	var zero T
	c, err := e.GetComponent(kind)
	if err != nil {
		return zero, err
	}
	out, ok := c.(T)
	if !ok {
		return zero, errors.Wrapf(ErrWrongType, "component %s on %q", kind, e.name)
	}
	return out, nil
}

// FindEntity resolves another entity through the owning manager.
func (e *Entity) FindEntity(name string) (*Entity, error) {
	if e.manager == nil {
		return nil, errors.Wrapf(ErrNotRegistered, "find %q from %q", name, e.name)
	}
	return e.manager.Get(name)
}

// RegisterEventHandler appends h to the handlers for topic. Handlers are never removed.
func (e *Entity) RegisterEventHandler(topic Topic, h Handler) {
	e.handlers[topic] = append(e.handlers[topic], h)
}

// Broadcast calls every handler registered for the event's topic, in
// registration order, before returning.
func (e *Entity) Broadcast(ev Event) {
	handlers := e.handlers[ev.Topic()]
	for _, h := range handlers {
		h(ev)
	}
}

func (e *Entity) initialize() error {
	for _, kind := range e.order {
		init, ok := e.components[kind].(Initializer)
		if !ok {
			continue
		}
		if err := init.Initialize(); err != nil {
			return errors.Wrapf(err, "initialize %s on %q", kind, e.name)
		}
	}
	return nil
}

func (e *Entity) Update(dt float64) {
	for _, kind := range e.order {
		if u, ok := e.components[kind].(Updater); ok {
			u.Update(dt)
		}
	}
}

func (e *Entity) PhysicsUpdate() {
	for _, kind := range e.order {
		if u, ok := e.components[kind].(PhysicsUpdater); ok {
			u.PhysicsUpdate()
		}
	}
}
