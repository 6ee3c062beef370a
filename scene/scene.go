// Package scene assembles a playable level: the physics world, the entity
// manager and every entity built from the prefab specs.
package scene

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/milk9111/mutantfps/anim"
	"github.com/milk9111/mutantfps/assets"
	"github.com/milk9111/mutantfps/ecs"
	"github.com/milk9111/mutantfps/hud"
	"github.com/milk9111/mutantfps/input"
	"github.com/milk9111/mutantfps/level"
	"github.com/milk9111/mutantfps/npc"
	"github.com/milk9111/mutantfps/physics"
	"github.com/milk9111/mutantfps/pickup"
	"github.com/milk9111/mutantfps/player"
	"github.com/milk9111/mutantfps/prefabs"
	"github.com/milk9111/mutantfps/sfx"
)

// MaxStep caps a single frame's delta.
const MaxStep = 1.0 / 30.0

const maxSubSteps = 10

type Specs struct {
	NPC    prefabs.NPCSpec
	Weapon prefabs.WeaponSpec
	Player prefabs.PlayerSpec
	Level  prefabs.LevelSpec
}

// LoadSpecs reads every prefab spec, preferring disk copies over the
// embedded ones.
func LoadSpecs() (Specs, error) {
	var (
		s   Specs
		err error
	)
	if s.NPC, err = prefabs.LoadNPCSpec(); err != nil {
		return Specs{}, err
	}
	if s.Weapon, err = prefabs.LoadWeaponSpec(); err != nil {
		return Specs{}, err
	}
	if s.Player, err = prefabs.LoadPlayerSpec(); err != nil {
		return Specs{}, err
	}
	if s.Level, err = prefabs.LoadLevelSpec(); err != nil {
		return Specs{}, err
	}
	return s, nil
}

type Options struct {
	Logger     *zap.Logger
	Input      *input.State
	Difficulty int
	Seed       int64
	// ShotVoice may be nil, in which case shots are silent.
	ShotVoice  sfx.Voice
}

type Scene struct {
	world   *physics.World
	manager *ecs.EntityManager
	camera  *player.Camera
	logger  *zap.Logger

	level    *ecs.Entity
	player   *ecs.Entity
	ui       *hud.UIManager
	health   *player.PlayerHealth
	weapon   *player.Weapon
	controls *player.PlayerControls
	decals   *level.BulletDecals
	navmesh  *level.Navmesh

	npcs      []*npc.CharacterController
	debug     []*npc.DirectionDebug
	ammoBoxes []*pickup.AmmoBox
	elapsed   float64
}

func clipKeys(names map[string]string) map[string]assets.Key {
	keys := make(map[string]assets.Key, len(names))
	for name, key := range names {
		keys[name] = assets.Key(key)
	}
	return keys
}

// New builds every entity and runs EndSetup. Any missing asset or failed
// component initialization aborts the whole scene.
func New(specs Specs, inv *assets.Inventory, opts Options) (*Scene, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Input == nil {
		opts.Input = input.NewState()
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	layout, err := level.BuildLayout(specs.Level, opts.Difficulty)
	if err != nil {
		return nil, err
	}
	npcClips, err := inv.ClipSet(clipKeys(specs.NPC.Clips))
	if err != nil {
		return nil, errors.Wrap(err, "scene: npc clips")
	}
	weaponClips, err := inv.ClipSet(clipKeys(specs.Weapon.Clips))
	if err != nil {
		return nil, errors.Wrap(err, "scene: weapon clips")
	}

	s := &Scene{
		world:   physics.NewWorld(physics.DefaultConfig()),
		manager: ecs.NewEntityManager(opts.Logger),
		camera:  player.NewCamera(specs.Player.Near, specs.Weapon.Range),
		logger:  opts.Logger,
	}

	if err := s.addLevel(specs.Level, rng); err != nil {
		return nil, err
	}
	if err := s.addPlayer(specs, weaponClips, opts, rng); err != nil {
		return nil, err
	}
	for _, spawn := range layout.NPCs {
		if err := s.addNPC(specs.NPC, npcClips, spawn, rng); err != nil {
			return nil, err
		}
	}

	ui := ecs.NewNamedEntity("UIManager")
	s.ui = hud.NewUIManager()
	if err := ui.AddComponent(s.ui); err != nil {
		return nil, err
	}
	s.manager.Add(ui)

	for _, spawn := range layout.AmmoBoxes {
		if err := s.addAmmoBox(specs.Level.AmmoBox, spawn); err != nil {
			return nil, err
		}
	}

	if err := s.manager.EndSetup(); err != nil {
		return nil, err
	}
	s.logger.Info("scene ready",
		zap.Int("npcs", len(s.npcs)),
		zap.Int("ammo_boxes", len(s.ammoBoxes)),
		zap.Int("difficulty", opts.Difficulty),
	)
	return s, nil
}

func (s *Scene) addLevel(spec prefabs.LevelSpec, rng *rand.Rand) error {
	s.level = ecs.NewNamedEntity("Level")
	s.navmesh = level.NewNavmesh(spec, rng)
	s.decals = level.NewBulletDecals(spec.Decals, rng)
	for _, c := range []ecs.Component{level.NewLevelSetup(s.world, spec), s.navmesh, s.decals} {
		if err := s.level.AddComponent(c); err != nil {
			return err
		}
	}
	s.manager.Add(s.level)
	return nil
}

func (s *Scene) addPlayer(specs Specs, clips map[string]*anim.Clip, opts Options, rng *rand.Rand) error {
	s.player = ecs.NewNamedEntity("Player")
	s.player.SetPosition(specs.Player.Spawn.Vec())
	s.player.SetRotation(mgl64.QuatRotate(mgl64.DegToRad(specs.Player.YawDeg), mgl64.Vec3{0, 1, 0}))

	s.controls = player.NewPlayerControls(opts.Input, s.camera, specs.Player)
	s.weapon = player.NewWeapon(s.world, specs.Weapon, clips, s.camera, opts.Input, rng)
	s.health = player.NewPlayerHealth(specs.Player.Health)
	components := []ecs.Component{
		player.NewPlayerPhysics(s.world, specs.Player),
		s.controls,
		s.weapon,
		s.health,
		sfx.NewShotAudio(opts.ShotVoice),
	}
	for _, c := range components {
		if err := s.player.AddComponent(c); err != nil {
			return err
		}
	}
	s.manager.Add(s.player)
	return nil
}

func (s *Scene) addNPC(spec prefabs.NPCSpec, clips map[string]*anim.Clip, spawn prefabs.SpawnSpec, rng *rand.Rand) error {
	e := ecs.NewNamedEntity(spawn.Name)
	e.SetPosition(spawn.Position.Vec())
	ctrl := npc.NewCharacterController(s.world, spec, clips, rng)
	dbg := npc.NewDirectionDebug()
	components := []ecs.Component{
		ctrl,
		npc.NewAttackTrigger(s.world, spec.AttackTrigger),
		npc.NewCharacterCollision(s.world, spec.Collision),
		dbg,
	}
	for _, c := range components {
		if err := e.AddComponent(c); err != nil {
			return errors.Wrapf(err, "scene: npc %s", spawn.Name)
		}
	}
	s.manager.Add(e)
	s.npcs = append(s.npcs, ctrl)
	s.debug = append(s.debug, dbg)
	return nil
}

func (s *Scene) addAmmoBox(hull prefabs.HullSpec, spawn prefabs.SpawnSpec) error {
	e := ecs.NewNamedEntity(spawn.Name)
	e.SetPosition(spawn.Position.Vec())
	box := pickup.NewAmmoBox(s.world, pickup.HullFromSpec(hull))
	if err := e.AddComponent(box); err != nil {
		return errors.Wrapf(err, "scene: ammo box %s", spawn.Name)
	}
	s.manager.Add(e)
	s.ammoBoxes = append(s.ammoBoxes, box)
	return nil
}

// Step advances one frame: physics first, then component updates, then the
// post-physics pass.
func (s *Scene) Step(delta float64) {
	dt := min(MaxStep, delta)
	if dt <= 0 {
		return
	}
	s.elapsed += dt
	s.world.Step(dt, maxSubSteps)
	s.manager.Update(dt)
	s.manager.PhysicsUpdate()
}

func (s *Scene) World() *physics.World            { return s.world }
func (s *Scene) Manager() *ecs.EntityManager      { return s.manager }
func (s *Scene) Camera() *player.Camera           { return s.camera }
func (s *Scene) Player() *ecs.Entity              { return s.player }
func (s *Scene) Controls() *player.PlayerControls { return s.controls }
func (s *Scene) Weapon() *player.Weapon           { return s.weapon }
func (s *Scene) UI() *hud.UIManager               { return s.ui }
func (s *Scene) NPCs() []*npc.CharacterController { return s.npcs }
func (s *Scene) Arrows() []*npc.DirectionDebug    { return s.debug }
func (s *Scene) AmmoBoxes() []*pickup.AmmoBox     { return s.ammoBoxes }
func (s *Scene) Decals() []level.Decal            { return s.decals.Decals() }
func (s *Scene) Navmesh() *level.Navmesh          { return s.navmesh }
func (s *Scene) Elapsed() float64                 { return s.elapsed }

// GameOver reports whether the player has died.
func (s *Scene) GameOver() bool {
	return s.health.Dead()
}

// Alive counts NPCs that are not dead.
func (s *Scene) Alive() int {
	n := 0
	for _, c := range s.npcs {
		if c.State() != "dead" {
			n++
		}
	}
	return n
}

// Report is a plain text dump of the scene state.
func (s *Scene) Report() string {
	var b strings.Builder
	mag, reserve := s.weapon.Ammo()
	pos := s.player.Position()
	pitch, yaw := s.controls.Angles()
	fmt.Fprintf(&b, "time %.2fs\n", s.elapsed)
	speed := s.controls.Speed()
	fmt.Fprintf(&b, "player pos (%.2f, %.2f, %.2f) pitch %.3f yaw %.3f speed %.2f health %.0f\n",
		pos.X(), pos.Y(), pos.Z(), pitch, yaw, speed.Len(), s.health.Health())
	fmt.Fprintf(&b, "weapon %s ammo %d / %d reloading %v\n", s.weapon.State(), mag, reserve, s.weapon.Reloading())
	for _, e := range s.manager.Entities() {
		c, err := ecs.Get[*npc.CharacterController](e, ecs.KindCharacterController)
		if err != nil {
			continue
		}
		p := e.Position()
		fmt.Fprintf(&b, "%s state %s health %.0f pos (%.2f, %.2f, %.2f) path %d\n",
			e.Name(), c.State(), c.Health(), p.X(), p.Y(), p.Z(), len(c.Path()))
	}
	active := 0
	for _, a := range s.ammoBoxes {
		if a.Active() {
			active++
		}
	}
	fmt.Fprintf(&b, "ammo boxes %d/%d decals %d\n", active, len(s.ammoBoxes), len(s.Decals()))
	return b.String()
}
