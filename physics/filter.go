package physics

import "github.com/jakecoffman/cp"

// FilterGroup is a collision category bitmask. Ray casts select objects whose
// group intersects the query mask.
type FilterGroup int

const (
	DefaultFilter   FilterGroup = 1
	StaticFilter    FilterGroup = 2
	KinematicFilter FilterGroup = 4
	DebrisFilter    FilterGroup = 8
	SensorTrigger   FilterGroup = 16
	CharacterFilter FilterGroup = 32
	AllFilter       FilterGroup = -1
)

// Without returns g with the bits of other cleared.
func (g FilterGroup) Without(other FilterGroup) FilterGroup {
	return g &^ other
}

func (g FilterGroup) bits() uint {
	return uint(g)
}

func shapeFilter(group FilterGroup) cp.ShapeFilter {
	return cp.ShapeFilter{Group: cp.NO_GROUP, Categories: group.bits(), Mask: cp.ALL_CATEGORIES}
}

func queryFilter(mask FilterGroup) cp.ShapeFilter {
	return cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: mask.bits()}
}

const (
	collisionStatic cp.CollisionType = iota + 1
	collisionKinematic
	collisionDynamic
	collisionTrigger
)
