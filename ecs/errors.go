package ecs

import "github.com/pkg/errors"

var (
	ErrNotFound      = errors.New("ecs: not found")
	ErrNilComponent  = errors.New("ecs: component is nil")
	ErrInvalidKind   = errors.New("ecs: invalid component kind")
	ErrWrongType     = errors.New("ecs: component has unexpected type")
	ErrDetached      = errors.New("ecs: component has no parent")
	ErrNotRegistered = errors.New("ecs: entity not registered with a manager")
)
