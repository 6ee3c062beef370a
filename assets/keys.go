package assets

// Key names an asset in the Inventory.
type Key string

const (
	Level       Key = "level"
	NavMesh     Key = "navmesh"
	Mutant      Key = "mutant"
	IdleAnim    Key = "idleAnim"
	WalkAnim    Key = "walkAnim"
	RunAnim     Key = "runAnim"
	AttackAnim  Key = "attackAnim"
	DieAnim     Key = "dieAnim"
	Ak47        Key = "ak47"
	Ak47Idle    Key = "ak47Idle"
	Ak47Shoot   Key = "ak47Shoot"
	Ak47Reload  Key = "ak47Reload"
	MuzzleFlash Key = "muzzleFlash"
	Ak47Shot    Key = "ak47Shot"
	Ammobox     Key = "ammobox"
)
