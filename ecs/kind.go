package ecs

// ComponentKind names every component type the game knows about. An entity
// holds at most one component per kind.
type ComponentKind int

const (
	KindInvalid ComponentKind = iota
	KindLevelSetup
	KindNavmesh
	KindBulletDecals
	KindPlayerPhysics
	KindPlayerControls
	KindWeapon
	KindPlayerHealth
	KindUIManager
	KindShotAudio
	KindCharacterController
	KindCharacterCollision
	KindAttackTrigger
	KindDirectionDebug
	KindAmmoBox
	kindCount
)

var kindNames = [...]string{
	KindInvalid:             "Invalid",
	KindLevelSetup:          "LevelSetup",
	KindNavmesh:             "Navmesh",
	KindBulletDecals:        "BulletDecals",
	KindPlayerPhysics:       "PlayerPhysics",
	KindPlayerControls:      "PlayerControls",
	KindWeapon:              "Weapon",
	KindPlayerHealth:        "PlayerHealth",
	KindUIManager:           "UIManager",
	KindShotAudio:           "ShotAudio",
	KindCharacterController: "CharacterController",
	KindCharacterCollision:  "CharacterCollision",
	KindAttackTrigger:       "AttackTrigger",
	KindDirectionDebug:      "DirectionDebug",
	KindAmmoBox:             "AmmoBox",
}

func (k ComponentKind) String() string {
	if k < 0 || k >= kindCount {
		return "Unknown"
	}
	return kindNames[k]
}

func (k ComponentKind) Valid() bool {
	return k > KindInvalid && k < kindCount
}
