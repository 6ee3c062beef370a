package npc

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/mutantfps/anim"
	"github.com/milk9111/mutantfps/ecs"
	"github.com/milk9111/mutantfps/physics"
	"github.com/milk9111/mutantfps/prefabs"
)

type fakeNav struct {
	ecs.Base
	node  mgl64.Vec3
	path  []mgl64.Vec3
	calls int
}

func (n *fakeNav) Kind() ecs.ComponentKind { return ecs.KindNavmesh }

func (n *fakeNav) GetRandomNode(p mgl64.Vec3, radius float64) mgl64.Vec3 {
	return n.node
}

func (n *fakeNav) FindPath(a, b mgl64.Vec3) []mgl64.Vec3 {
	n.calls++
	return append([]mgl64.Vec3(nil), n.path...)
}

type fakePlayerPhysics struct {
	ecs.Base
	body *physics.Body
}

func (p *fakePlayerPhysics) Kind() ecs.ComponentKind { return ecs.KindPlayerPhysics }
func (p *fakePlayerPhysics) Body() *physics.Body     { return p.body }

func testSpec() prefabs.NPCSpec {
	return prefabs.NPCSpec{
		Health:          100,
		ViewDistance:    20,
		ViewAngleDeg:    45,
		ChestHeight:     1.35,
		AttackDistance:  2.2,
		AttackDamage:    10,
		AttackEvent:     0.85,
		PatrolRadius:    50,
		IdleWait:        prefabs.RangeSpec{Min: 1, Max: 5},
		RepathInterval:  0.5,
		SwitchDelay:     0.2,
		ChaseTargetY:    0.5,
		TurnRate:        4,
		FaceRate:        3,
		WaypointRadius:  0.1,
		RootMotionScale: 0.01,
		RootBone:        prefabs.RootBoneSpec{Name: "MutantHips", RefPos: prefabs.Vec3{0, 95, 0}},
		Collision:       prefabs.CylinderSpec{Radius: 0.45, Height: 1.8},
		AttackTrigger:   prefabs.SphereSpec{Radius: 0.4, Offset: prefabs.Vec3{0, 1, 1}},
	}
}

func testClips() map[string]*anim.Clip {
	return map[string]*anim.Clip{
		"idle":   {Name: "idle", Duration: 2},
		"walk":   {Name: "walk", Duration: 1.2, RootMotion: mgl64.Vec3{0, 0, 150}},
		"run":    {Name: "run", Duration: 0.8, RootMotion: mgl64.Vec3{0, 0, 250}},
		"attack": {Name: "attack", Duration: 1},
		"die":    {Name: "die", Duration: 2},
	}
}

type scene struct {
	world   *physics.World
	manager *ecs.EntityManager
	nav     *fakeNav
	player  *ecs.Entity
	body    *physics.Body
	npc     *ecs.Entity
	ctrl    *CharacterController
	hits    []ecs.HitEvent
}

// newScene places the NPC at the origin facing +Z and the player standing at
// playerFeet.
func newScene(t *testing.T, spec prefabs.NPCSpec, clips map[string]*anim.Clip, playerFeet mgl64.Vec3) *scene {
	t.Helper()
	s := &scene{
		world:   physics.NewWorld(physics.DefaultConfig()),
		manager: ecs.NewEntityManager(nil),
		nav:     &fakeNav{},
	}

	level := ecs.NewNamedEntity("Level")
	require.NoError(t, level.AddComponent(s.nav))
	s.manager.Add(level)

	s.body = s.world.AddDynamicBody(physics.CylinderShape{Radius: 0.3, Height: 1.9}, 5, playerFeet.Add(mgl64.Vec3{0, 0.95, 0}), physics.DefaultFilter)
	s.player = ecs.NewNamedEntity("Player")
	s.player.SetPosition(playerFeet.Add(mgl64.Vec3{0, 1.45, 0}))
	require.NoError(t, s.player.AddComponent(&fakePlayerPhysics{body: s.body}))
	s.player.RegisterEventHandler(ecs.TopicHit, func(ev ecs.Event) {
		s.hits = append(s.hits, ev.(ecs.HitEvent))
	})
	s.manager.Add(s.player)

	s.npc = ecs.NewNamedEntity("Mutant0")
	s.ctrl = NewCharacterController(s.world, spec, clips, rand.New(rand.NewSource(7)))
	require.NoError(t, s.npc.AddComponent(s.ctrl))
	require.NoError(t, s.npc.AddComponent(NewAttackTrigger(s.world, spec.AttackTrigger)))
	require.NoError(t, s.npc.AddComponent(NewCharacterCollision(s.world, spec.Collision)))
	s.manager.Add(s.npc)
	return s
}

func (s *scene) setup(t *testing.T) {
	t.Helper()
	require.NoError(t, s.manager.EndSetup())
}

func (s *scene) frames(n int, dt float64) {
	for i := 0; i < n; i++ {
		s.world.Step(dt, 10)
		s.manager.Update(dt)
		s.manager.PhysicsUpdate()
	}
}

func TestInitializeEntersIdle(t *testing.T) {
	s := newScene(t, testSpec(), testClips(), mgl64.Vec3{0, 0, -5})
	assert.Equal(t, "", s.ctrl.State())
	s.setup(t)

	assert.Equal(t, "idle", s.ctrl.State())
	assert.False(t, s.ctrl.CanMove())
	assert.True(t, s.ctrl.animation("idle").Action.Running())
}

func TestInitializeFailures(t *testing.T) {
	t.Run("missing clip", func(t *testing.T) {
		clips := testClips()
		delete(clips, "die")
		s := newScene(t, testSpec(), clips, mgl64.Vec3{0, 0, -5})
		assert.ErrorIs(t, s.manager.EndSetup(), ErrMissingClip)
	})

	t.Run("no level", func(t *testing.T) {
		m := ecs.NewEntityManager(nil)
		npc := ecs.NewNamedEntity("Mutant0")
		require.NoError(t, npc.AddComponent(NewCharacterController(physics.NewWorld(physics.DefaultConfig()), testSpec(), testClips(), nil)))
		m.Add(npc)
		assert.ErrorIs(t, m.EndSetup(), ecs.ErrNotFound)
	})
}

func TestCanSeeThePlayer(t *testing.T) {
	tests := []struct {
		name   string
		player mgl64.Vec3
		wall   bool
		want   bool
	}{
		{name: "ahead", player: mgl64.Vec3{0, 0, 5}, want: true},
		{name: "behind", player: mgl64.Vec3{0, 0, -5}, want: false},
		{name: "outside cone", player: mgl64.Vec3{5, 0, 1}, want: false},
		{name: "too far", player: mgl64.Vec3{0, 0, 25}, want: false},
		{name: "behind wall", player: mgl64.Vec3{0, 0, 5}, wall: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScene(t, testSpec(), testClips(), tt.player)
			if tt.wall {
				s.world.AddStaticBody(physics.BoxShape{HalfExtents: mgl64.Vec3{2, 1.5, 0.2}}, mgl64.Vec3{0, 1.5, 2.5}, mgl64.QuatIdent(), physics.StaticFilter)
			}
			s.setup(t)
			assert.Equal(t, tt.want, s.ctrl.CanSeeThePlayer())
		})
	}
}

func TestIdleSpotsPlayer(t *testing.T) {
	s := newScene(t, testSpec(), testClips(), mgl64.Vec3{0, 0, 5})
	s.nav.path = []mgl64.Vec3{{0, 0.5, 5}}
	s.setup(t)

	s.frames(1, 1.0/60)
	assert.Equal(t, "chase", s.ctrl.State())
	assert.True(t, s.ctrl.CanMove())
	assert.Equal(t, 1.5, s.ctrl.animation("run").Action.TimeScale())
	assert.Zero(t, s.nav.calls)

	s.frames(1, 1.0/60)
	assert.Equal(t, 1, s.nav.calls)
	assert.Len(t, s.ctrl.Path(), 1)
}

func TestPatrolEndsAtLastWaypoint(t *testing.T) {
	spec := testSpec()
	spec.IdleWait = prefabs.RangeSpec{}
	s := newScene(t, spec, testClips(), mgl64.Vec3{0, 0, -8})
	s.nav.path = []mgl64.Vec3{{0, 0.5, 0}}

	var navEnds int
	s.npc.RegisterEventHandler(ecs.TopicNavEnd, func(ev ecs.Event) {
		navEnds++
		assert.Same(t, s.npc, ev.(ecs.NavEndEvent).Agent)
	})
	s.setup(t)

	s.frames(1, 1.0/60)
	assert.Equal(t, "patrol", s.ctrl.State())
	assert.Len(t, s.ctrl.Path(), 1)

	s.frames(1, 1.0/60)
	assert.Equal(t, 1, navEnds)
	assert.Equal(t, "idle", s.ctrl.State())
}

func TestPatrolFollowsWaypointsInOrder(t *testing.T) {
	spec := testSpec()
	spec.IdleWait = prefabs.RangeSpec{}
	s := newScene(t, spec, testClips(), mgl64.Vec3{0, 0, -8})
	waypoints := []mgl64.Vec3{{0, 0.5, 0.5}, {0, 0.5, 1}, {0, 0.5, 1.5}}
	s.nav.path = waypoints

	var navEnds int
	var endPos mgl64.Vec3
	s.npc.RegisterEventHandler(ecs.TopicNavEnd, func(ev ecs.Event) {
		navEnds++
		endPos = s.ctrl.position
	})
	s.setup(t)

	s.frames(1, 1.0/60)
	require.Equal(t, "patrol", s.ctrl.State())
	require.Len(t, s.ctrl.Path(), 3)
	s.nav.path = nil

	var heads []mgl64.Vec3
	for i := 0; i < 600 && navEnds == 0; i++ {
		if p := s.ctrl.Path(); len(p) > 0 && (len(heads) == 0 || heads[len(heads)-1] != p[0]) {
			heads = append(heads, p[0])
		}
		s.frames(1, 1.0/60)
	}

	assert.Equal(t, waypoints, heads)
	assert.Equal(t, 1, navEnds)
	assert.InDelta(t, 1.5, endPos.Z(), spec.WaypointRadius)
	assert.Empty(t, s.ctrl.Path())
	assert.Equal(t, "idle", s.ctrl.State())

	s.frames(30, 1.0/60)
	assert.Equal(t, 1, navEnds)
}

func TestRootMotionMovesAlongFacing(t *testing.T) {
	spec := testSpec()
	spec.IdleWait = prefabs.RangeSpec{}
	s := newScene(t, spec, testClips(), mgl64.Vec3{0, 0, -8})
	s.nav.path = []mgl64.Vec3{{0, 0.5, 30}}
	s.setup(t)

	s.frames(60, 1.0/60)
	require.Equal(t, "patrol", s.ctrl.State())

	pos := s.npc.Position()
	assert.Greater(t, pos.Z(), 0.3)
	assert.InDelta(t, 0, pos.X(), 1e-6)
	assert.InDelta(t, 95, s.ctrl.rootBone.Position.Y(), 1e-9)
}

func TestChaseSwitchesToAttackAfterDelay(t *testing.T) {
	s := newScene(t, testSpec(), testClips(), mgl64.Vec3{0, 0, 1.2})
	s.setup(t)
	s.ctrl.setState("chase")

	s.frames(1, 0.1)
	assert.Equal(t, "chase", s.ctrl.State())
	assert.Empty(t, s.ctrl.Path())

	s.frames(4, 0.1)
	assert.Equal(t, "attack", s.ctrl.State())
	assert.False(t, s.ctrl.CanMove())
}

func TestAttackHitsOncePerCycle(t *testing.T) {
	s := newScene(t, testSpec(), testClips(), mgl64.Vec3{0, 0, 1.2})
	s.setup(t)
	s.ctrl.setState("attack")

	s.frames(30, 1.0/60)
	require.Len(t, s.hits, 1)
	assert.Same(t, s.npc, s.hits[0].From)
	assert.Equal(t, 10.0, s.hits[0].Amount)

	s.frames(30, 1.0/60)
	assert.Len(t, s.hits, 1)

	s.frames(30, 1.0/60)
	assert.Len(t, s.hits, 2)
}

func TestAttackHitTimingFollowsClipLength(t *testing.T) {
	clips := testClips()
	clips["attack"] = &anim.Clip{Name: "attack", Duration: 2}
	s := newScene(t, testSpec(), clips, mgl64.Vec3{0, 0, 1.2})
	s.setup(t)
	s.ctrl.setState("attack")

	var hitFrames []int
	for i := 0; i < 500; i++ {
		s.frames(1, 0.01)
		if len(s.hits) > len(hitFrames) {
			hitFrames = append(hitFrames, i)
		}
	}

	require.Len(t, hitFrames, 3)
	assert.InDelta(t, 30, hitFrames[0], 1)
	assert.Equal(t, 200, hitFrames[1]-hitFrames[0])
	assert.Equal(t, 200, hitFrames[2]-hitFrames[1])
}

func TestAttackReturnsToChase(t *testing.T) {
	s := newScene(t, testSpec(), testClips(), mgl64.Vec3{0, 0, 1.2})
	s.setup(t)
	s.ctrl.setState("attack")

	s.player.SetPosition(mgl64.Vec3{0, 1.45, 10})
	s.frames(30, 1.0/60)
	assert.Equal(t, "attack", s.ctrl.State())

	s.frames(40, 1.0/60)
	assert.Equal(t, "chase", s.ctrl.State())
}

func TestTakeHit(t *testing.T) {
	s := newScene(t, testSpec(), testClips(), mgl64.Vec3{0, 0, -5})
	s.setup(t)

	s.npc.Broadcast(ecs.HitEvent{Amount: 30})
	assert.Equal(t, "chase", s.ctrl.State())
	assert.Equal(t, 70.0, s.ctrl.Health())

	s.npc.Broadcast(ecs.HitEvent{Amount: 100})
	assert.Equal(t, "dead", s.ctrl.State())
	assert.Equal(t, 0.0, s.ctrl.Health())
	assert.False(t, s.ctrl.CanMove())
	assert.Empty(t, s.ctrl.Path())

	die := s.ctrl.animation("die").Action
	s.frames(150, 1.0/60)
	assert.Equal(t, "dead", s.ctrl.State())
	assert.Equal(t, 2.0, die.Time())
	assert.True(t, die.Enabled())

	s.npc.Broadcast(ecs.HitEvent{Amount: 5})
	assert.Equal(t, "dead", s.ctrl.State())
}

func TestDeathReleasesBodyAndClips(t *testing.T) {
	s := newScene(t, testSpec(), testClips(), mgl64.Vec3{0, 0, -5})
	s.setup(t)
	mask := physics.AllFilter.Without(physics.SensorTrigger)
	from, to := mgl64.Vec3{0, 1, 5}, mgl64.Vec3{0, 1, -3}

	s.frames(30, 1.0/60)
	s.npc.Broadcast(ecs.HitEvent{Amount: 30})
	require.Equal(t, "chase", s.ctrl.State())
	s.frames(15, 1.0/60)
	idle := s.ctrl.animation("idle").Action
	require.Greater(t, idle.Time(), 0.0)
	require.Zero(t, idle.EffectiveWeight())
	run := s.ctrl.animation("run").Action
	var hit physics.RayResult
	require.True(t, s.world.CastRay(from, to, mask, &hit))
	require.Same(t, s.npc, hit.Object.Owner())

	s.npc.Broadcast(ecs.HitEvent{Amount: 100})
	require.Equal(t, "dead", s.ctrl.State())
	assert.Zero(t, idle.Time(), "faded out clip stopped")
	assert.Greater(t, run.EffectiveWeight(), 0.0, "previous clip still fading")

	collision, err := ecs.Get[*CharacterCollision](s.npc, ecs.KindCharacterCollision)
	require.NoError(t, err)
	assert.False(t, collision.Active())
	assert.False(t, s.world.CastRay(from, to, mask, nil))

	s.frames(10, 1.0/60)
	assert.NotContains(t, s.world.Bodies(), collision.Body())
}

func TestAttackTriggerFollowsPose(t *testing.T) {
	s := newScene(t, testSpec(), testClips(), mgl64.Vec3{0, 0, 1.2})
	s.setup(t)

	s.frames(1, 1.0/60)
	trigger, err := ecs.Get[*AttackTrigger](s.npc, ecs.KindAttackTrigger)
	require.NoError(t, err)
	assert.True(t, trigger.Overlapping())
	assert.InDelta(t, 1, trigger.Trigger().Position().Z(), 1e-9)

	s.npc.SetRotation(mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 1, 0}))
	trigger.Update(0)
	assert.InDelta(t, 1, trigger.Trigger().Position().X(), 1e-9)
	assert.InDelta(t, 0, trigger.Trigger().Position().Z(), 1e-9)
}

func TestCollisionOwnsRays(t *testing.T) {
	s := newScene(t, testSpec(), testClips(), mgl64.Vec3{0, 0, -5})
	s.setup(t)

	var hit physics.RayResult
	require.True(t, s.world.CastRay(mgl64.Vec3{0, 1, 5}, mgl64.Vec3{0, 1, 0}, physics.AllFilter.Without(physics.SensorTrigger), &hit))
	assert.Same(t, s.npc, hit.Object.Owner())
	assert.InDelta(t, 0.45, hit.Point.Z(), 1e-6)
}

func TestDirectionDebug(t *testing.T) {
	e := ecs.NewEntity()
	d := NewDirectionDebug()
	require.NoError(t, e.AddComponent(d))
	e.SetPosition(mgl64.Vec3{1, 0, 2})
	e.SetRotation(mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 1, 0}))

	d.Update(0)
	a := d.Arrow()
	assert.Equal(t, mgl64.Vec3{1, 1, 2}, a.From)
	assert.InDelta(t, 1, a.Dir.X(), 1e-9)
	assert.Equal(t, 1.0, a.Length)
}
