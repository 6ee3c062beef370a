// Package npc holds the components of a mutant: its AI controller and state
// machine, the melee hitbox, its collision body and a facing debug arrow.
package npc

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/milk9111/mutantfps/anim"
	"github.com/milk9111/mutantfps/common"
	"github.com/milk9111/mutantfps/component"
	"github.com/milk9111/mutantfps/ecs"
	"github.com/milk9111/mutantfps/fsm"
	"github.com/milk9111/mutantfps/physics"
	"github.com/milk9111/mutantfps/prefabs"
)

var ErrMissingClip = errors.New("npc: missing animation clip")

// clipNames are the clip set entries the state machine plays.
var clipNames = []string{"idle", "walk", "run", "attack", "die"}

// Navigator is the path service of the level entity.
type Navigator interface {
	GetRandomNode(p mgl64.Vec3, radius float64) mgl64.Vec3
	FindPath(a, b mgl64.Vec3) []mgl64.Vec3
}

// BodyProvider exposes the physics body of another entity's component.
type BodyProvider interface {
	Body() *physics.Body
}

// CharacterController drives one NPC: perception, path following, root
// motion and the combat state machine.
type CharacterController struct {
	ecs.Base
	world *physics.World
	spec  prefabs.NPCSpec
	clips map[string]*anim.Clip
	rng   *rand.Rand

	machine    *fsm.Machine
	navmesh    Navigator
	hitbox     *AttackTrigger
	collision  *CharacterCollision
	player     *ecs.Entity
	playerBody BodyProvider
	health     *component.Health

	mixer      *anim.Mixer
	rootBone   *anim.Bone
	lastPos    mgl64.Vec3
	animations map[string]anim.Animation

	position mgl64.Vec3
	rotation mgl64.Quat
	dir      mgl64.Vec3
	path     []mgl64.Vec3

	viewAngle       float64
	maxViewDistance float64
	attackDistance  float64

	canMove bool
}

func NewCharacterController(world *physics.World, spec prefabs.NPCSpec, clips map[string]*anim.Clip, rng *rand.Rand) *CharacterController {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &CharacterController{
		world:           world,
		spec:            spec,
		clips:           clips,
		rng:             rng,
		rotation:        mgl64.QuatIdent(),
		dir:             common.Forward,
		viewAngle:       math.Cos(mgl64.DegToRad(spec.ViewAngleDeg)),
		maxViewDistance: spec.ViewDistance * spec.ViewDistance,
		attackDistance:  spec.AttackDistance,
		canMove:         true,
		health:          component.NewHealth(spec.Health),
	}
}

func (c *CharacterController) Kind() ecs.ComponentKind { return ecs.KindCharacterController }

func (c *CharacterController) Initialize() error {
	for _, name := range clipNames {
		if c.clips[name] == nil {
			return errors.Wrapf(ErrMissingClip, "%q", name)
		}
	}
	machine, err := newCharacterFSM(c)
	if err != nil {
		return err
	}
	c.machine = machine

	level, err := c.FindEntity("Level")
	if err != nil {
		return err
	}
	if c.navmesh, err = ecs.Get[Navigator](level, ecs.KindNavmesh); err != nil {
		return err
	}
	if c.hitbox, err = ecs.Get[*AttackTrigger](c.Parent(), ecs.KindAttackTrigger); err != nil {
		return err
	}
	if c.collision, err = ecs.Get[*CharacterCollision](c.Parent(), ecs.KindCharacterCollision); err != nil {
		return err
	}
	if c.player, err = c.FindEntity("Player"); err != nil {
		return err
	}
	if c.playerBody, err = ecs.Get[BodyProvider](c.player, ecs.KindPlayerPhysics); err != nil {
		return err
	}

	c.Parent().RegisterEventHandler(ecs.TopicHit, c.takeHit)

	c.position = c.Parent().Position()
	c.rotation = c.Parent().Rotation()

	ref := c.spec.RootBone.RefPos.Vec()
	c.rootBone = &anim.Bone{Name: c.spec.RootBone.Name, Position: ref, RefPos: ref}
	c.lastPos = c.rootBone.Position
	c.mixer = anim.NewMixer(c.rootBone)
	c.animations = anim.Bind(c.mixer, c.clips)

	c.setState("idle")
	return nil
}

func (c *CharacterController) setState(name string) {
	prev := c.machine.CurrentName()
	if err := c.machine.SetState(name); err != nil {
		c.Parent().Logger().Error("state transition failed", zap.String("to", name), zap.Error(err))
		return
	}
	if prev != name {
		c.Parent().Logger().Debug("state", zap.String("from", prev), zap.String("to", name))
	}
}

func (c *CharacterController) animation(name string) anim.Animation {
	return c.animations[name]
}

func (c *CharacterController) updateDirection() {
	c.dir = c.rotation.Rotate(common.Forward)
}

// CanSeeThePlayer reports whether the player is within view distance, inside
// the view cone and not hidden behind level geometry.
func (c *CharacterController) CanSeeThePlayer() bool {
	playerPos := c.player.Position()
	eye := c.position.Add(mgl64.Vec3{0, c.spec.ChestHeight, 0})
	toPlayer := playerPos.Sub(eye)

	if toPlayer.LenSqr() > c.maxViewDistance {
		return false
	}
	if toPlayer.LenSqr() == 0 {
		return true
	}
	if toPlayer.Normalize().Dot(c.dir) < c.viewAngle {
		return false
	}

	var hit physics.RayResult
	mask := physics.AllFilter.Without(physics.SensorTrigger)
	if !c.world.CastRay(eye, playerPos, mask, &hit) {
		return false
	}
	body, ok := hit.Object.(*physics.Body)
	return ok && body == c.playerBody.Body()
}

func (c *CharacterController) NavigateToRandomPoint() {
	node := c.navmesh.GetRandomNode(c.position, c.spec.PatrolRadius)
	c.path = c.navmesh.FindPath(c.position, node)
}

func (c *CharacterController) NavigateToPlayer() {
	target := c.player.Position()
	target[1] = c.spec.ChaseTargetY
	c.path = c.navmesh.FindPath(c.position, target)
}

// FacePlayer turns towards the player by at most rate*dt radians.
func (c *CharacterController) FacePlayer(dt, rate float64) {
	to := common.Flat(c.player.Position().Sub(c.position))
	if to.LenSqr() == 0 {
		return
	}
	target := common.FromUnitVectors(common.Forward, to.Normalize())
	c.rotation = common.RotateTowards(c.rotation, target, rate*dt)
}

func (c *CharacterController) IsCloseToPlayer() bool {
	d := c.player.Position().Sub(c.position)
	return d.LenSqr() <= c.attackDistance*c.attackDistance
}

func (c *CharacterController) IsPlayerInHitbox() bool {
	return c.hitbox != nil && c.hitbox.Overlapping()
}

func (c *CharacterController) HitPlayer() {
	c.player.Broadcast(ecs.HitEvent{From: c.Parent(), Amount: c.spec.AttackDamage})
}

func (c *CharacterController) takeHit(ev ecs.Event) {
	hit, ok := ev.(ecs.HitEvent)
	if !ok || !c.health.IsAlive() {
		return
	}
	c.health.ApplyDamage(hit.Amount)

	if !c.health.IsAlive() {
		c.Parent().Logger().Info("npc killed")
		c.setState("dead")
		return
	}
	switch c.machine.CurrentName() {
	case "idle", "patrol":
		c.setState("chase")
	}
}

func (c *CharacterController) moveAlongPath(dt float64) {
	if len(c.path) == 0 {
		return
	}

	target := common.Flat(c.path[0].Sub(c.position))
	r := c.spec.WaypointRadius
	if target.LenSqr() > r*r {
		want := common.FromUnitVectors(common.Forward, target.Normalize())
		c.rotation = common.Slerp(c.rotation, want, c.spec.TurnRate*dt)
		return
	}

	c.path = c.path[1:]
	if len(c.path) == 0 {
		c.Broadcast(ecs.NavEndEvent{Agent: c.Parent()})
	}
}

func (c *CharacterController) ClearPath() {
	c.path = c.path[:0]
}

// applyRootMotion moves the model by the root bone's horizontal travel since
// the last frame, then pins the bone back to its bind position.
func (c *CharacterController) applyRootMotion() {
	if c.canMove {
		vel := c.rootBone.Position.Sub(c.lastPos).Mul(c.spec.RootMotionScale)
		vel[1] = 0
		vel = c.rotation.Rotate(vel)
		if vel.LenSqr() < 0.1*0.1 {
			c.position = c.position.Add(vel)
		}
	}

	c.lastPos = c.rootBone.Position
	c.rootBone.Position[0] = c.rootBone.RefPos.X()
	c.rootBone.Position[2] = c.rootBone.RefPos.Z()
}

func (c *CharacterController) Update(dt float64) {
	c.mixer.Update(dt)
	c.applyRootMotion()

	c.updateDirection()
	c.moveAlongPath(dt)
	c.machine.Update(dt)

	c.Parent().SetRotation(c.rotation)
	c.Parent().SetPosition(c.position)
}

// State is the name of the current AI state, empty before Initialize.
func (c *CharacterController) State() string {
	if c.machine == nil {
		return ""
	}
	return c.machine.CurrentName()
}

func (c *CharacterController) Path() []mgl64.Vec3    { return c.path }
func (c *CharacterController) Health() float64       { return c.health.Current }
func (c *CharacterController) CanMove() bool         { return c.canMove }
func (c *CharacterController) Direction() mgl64.Vec3 { return c.dir }
func (c *CharacterController) Mixer() *anim.Mixer    { return c.mixer }
