package ecs

import (
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// EntityManager owns the registered entities and drives their lifecycle.
// Entities are iterated in registration order and never removed.
type EntityManager struct {
	ids      int
	entities []*Entity
	logger   *zap.Logger
}

func NewEntityManager(logger *zap.Logger) *EntityManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntityManager{logger: logger}
}

func (m *EntityManager) Logger() *zap.Logger {
	return m.logger
}

func (m *EntityManager) genID() int {
	id := m.ids
	m.ids++
	return id
}

// Add registers e, assigning the next id. An unnamed entity is named after its id.
func (m *EntityManager) Add(e *Entity) {
	e.id = m.genID()
	if e.name == "" {
		e.name = strconv.Itoa(e.id)
	}
	e.manager = m
	e.logger = m.logger.With(zap.String("entity", e.name), zap.Int("id", e.id))
	m.entities = append(m.entities, e)
}

// Get returns the first registered entity named name.
func (m *EntityManager) Get(name string) (*Entity, error) {
	for _, e := range m.entities {
		if e.name == name {
			return e, nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "entity %q", name)
}

func (m *EntityManager) Entities() []*Entity {
	return m.entities
}

// EndSetup initializes every component. The first failure aborts setup.
func (m *EntityManager) EndSetup() error {
	for _, e := range m.entities {
		if err := e.initialize(); err != nil {
			return err
		}
	}
	m.logger.Debug("entity setup complete", zap.Int("entities", len(m.entities)))
	return nil
}

func (m *EntityManager) Update(dt float64) {
	for _, e := range m.entities {
		e.Update(dt)
	}
}

func (m *EntityManager) PhysicsUpdate() {
	for _, e := range m.entities {
		e.PhysicsUpdate()
	}
}
