package prefabs

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, errors.Wrapf(err, "prefabs: load %s", filename)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, errors.Wrapf(err, "prefabs: unmarshal %s", filename)
	}

	return spec, nil
}

// Vec3 is a YAML [x, y, z] triple.
type Vec3 [3]float64

func (v Vec3) Vec() mgl64.Vec3 {
	return mgl64.Vec3(v)
}

type RangeSpec struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type NPCSpec struct {
	Health          float64           `yaml:"health"`
	ViewDistance    float64           `yaml:"view_distance"`
	ViewAngleDeg    float64           `yaml:"view_angle_deg"`
	ChestHeight     float64           `yaml:"chest_height"`
	AttackDistance  float64           `yaml:"attack_distance"`
	AttackDamage    float64           `yaml:"attack_damage"`
	AttackEvent     float64           `yaml:"attack_event"`
	PatrolRadius    float64           `yaml:"patrol_radius"`
	IdleWait        RangeSpec         `yaml:"idle_wait"`
	RepathInterval  float64           `yaml:"repath_interval"`
	SwitchDelay     float64           `yaml:"switch_delay"`
	ChaseTargetY    float64           `yaml:"chase_target_y"`
	TurnRate        float64           `yaml:"turn_rate"`
	FaceRate        float64           `yaml:"face_rate"`
	WaypointRadius  float64           `yaml:"waypoint_radius"`
	RootMotionScale float64           `yaml:"root_motion_scale"`
	RootBone        RootBoneSpec      `yaml:"root_bone"`
	Clips           map[string]string `yaml:"clips"`
	Collision       CylinderSpec      `yaml:"collision"`
	AttackTrigger   SphereSpec        `yaml:"attack_trigger"`
}

type RootBoneSpec struct {
	Name   string `yaml:"name"`
	RefPos Vec3   `yaml:"ref_pos"`
}

type CylinderSpec struct {
	Radius float64 `yaml:"radius"`
	Height float64 `yaml:"height"`
}

type SphereSpec struct {
	Radius float64 `yaml:"radius"`
	Offset Vec3    `yaml:"offset"`
}

type WeaponSpec struct {
	FireRate     float64           `yaml:"fire_rate"`
	MagCapacity  int               `yaml:"mag_capacity"`
	Reserve      int               `yaml:"reserve"`
	Damage       float64           `yaml:"damage"`
	PickupAmount int               `yaml:"pickup_amount"`
	Range        float64           `yaml:"range"`
	FlashScale   RangeSpec         `yaml:"flash_scale"`
	ShootSpeed   float64           `yaml:"shoot_time_scale"`
	Clips        map[string]string `yaml:"clips"`
}

type PlayerSpec struct {
	Spawn         Vec3    `yaml:"spawn"`
	YawDeg        float64 `yaml:"yaw_deg"`
	Radius        float64 `yaml:"radius"`
	Height        float64 `yaml:"height"`
	Mass          float64 `yaml:"mass"`
	MaxSpeed      float64 `yaml:"max_speed"`
	TimeZeroToMax float64 `yaml:"time_zero_to_max"`
	Deceleration  float64 `yaml:"deceleration"`
	MouseSpeed    float64 `yaml:"mouse_speed"`
	JumpVelocity  float64 `yaml:"jump_velocity"`
	YOffset       float64 `yaml:"y_offset"`
	Health        float64 `yaml:"health"`
	Near          float64 `yaml:"near"`
}

type LevelSpec struct {
	Bounds    BoundsSpec  `yaml:"bounds"`
	Nav       NavSpec     `yaml:"nav"`
	Walls     []BoxSpec   `yaml:"walls"`
	Crates    []HullSpec  `yaml:"crates"`
	NPCs      []SpawnSpec `yaml:"npcs"`
	AmmoBoxes []SpawnSpec `yaml:"ammo_boxes"`
	AmmoBox   HullSpec    `yaml:"ammo_box"`
	Decals    DecalSpec   `yaml:"decals"`
	Script    string      `yaml:"script"`
}

type BoundsSpec struct {
	Min [2]float64 `yaml:"min"`
	Max [2]float64 `yaml:"max"`
}

type NavSpec struct {
	CellSize float64 `yaml:"cell_size"`
	Padding  float64 `yaml:"padding"`
	Height   float64 `yaml:"height"`
}

type BoxSpec struct {
	Center      Vec3    `yaml:"center"`
	HalfExtents Vec3    `yaml:"half_extents"`
	YawDeg      float64 `yaml:"yaw_deg"`
}

type HullSpec struct {
	Points []Vec3 `yaml:"points"`
}

type SpawnSpec struct {
	Name     string `yaml:"name"`
	Position Vec3   `yaml:"position"`
}

type DecalSpec struct {
	Max  int       `yaml:"max"`
	Size RangeSpec `yaml:"size"`
}

func LoadNPCSpec() (NPCSpec, error)       { return LoadSpec[NPCSpec]("npc.yaml") }
func LoadWeaponSpec() (WeaponSpec, error) { return LoadSpec[WeaponSpec]("weapon.yaml") }
func LoadPlayerSpec() (PlayerSpec, error) { return LoadSpec[PlayerSpec]("player.yaml") }
func LoadLevelSpec() (LevelSpec, error)   { return LoadSpec[LevelSpec]("level.yaml") }
