package player

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/milk9111/mutantfps/anim"
	"github.com/milk9111/mutantfps/ecs"
	"github.com/milk9111/mutantfps/fsm"
	"github.com/milk9111/mutantfps/input"
	"github.com/milk9111/mutantfps/physics"
	"github.com/milk9111/mutantfps/prefabs"
)

var ErrMissingClip = errors.New("player: missing weapon clip")

var weaponClips = []string{"idle", "shoot", "reload"}

// AmmoDisplay shows the magazine and reserve counts.
type AmmoDisplay interface {
	SetAmmo(mag, rest int)
}

// MuzzleFlash is the flash sprite state. Opacity fades from 1 to 0 over one
// fire interval after each shot.
type MuzzleFlash struct {
	Life    float64
	Roll    float64
	Scale   float64
	Opacity float64
}

// Weapon is the hitscan rifle held by the player.
type Weapon struct {
	ecs.Base
	world  *physics.World
	spec   prefabs.WeaponSpec
	clips  map[string]*anim.Clip
	camera *Camera
	input  *input.State
	rng    *rand.Rand

	mixer      *anim.Mixer
	animations map[string]anim.Animation
	machine    *fsm.Machine
	ui         AmmoDisplay

	shoot      bool
	shootTimer float64
	reloading  bool
	magAmmo    int
	ammoPerMag int
	ammo       int

	flash     MuzzleFlash
	hitResult physics.RayResult
}

func NewWeapon(world *physics.World, spec prefabs.WeaponSpec, clips map[string]*anim.Clip, camera *Camera, in *input.State, rng *rand.Rand) *Weapon {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Weapon{
		world:      world,
		spec:       spec,
		clips:      clips,
		camera:     camera,
		input:      in,
		rng:        rng,
		magAmmo:    spec.MagCapacity,
		ammoPerMag: spec.MagCapacity,
		ammo:       spec.Reserve,
		flash:      MuzzleFlash{Scale: 1},
	}
}

func (w *Weapon) Kind() ecs.ComponentKind { return ecs.KindWeapon }

func (w *Weapon) Initialize() error {
	for _, name := range weaponClips {
		if w.clips[name] == nil {
			return errors.Wrapf(ErrMissingClip, "%q", name)
		}
	}
	w.mixer = anim.NewMixer(nil)
	w.animations = anim.Bind(w.mixer, w.clips)
	w.mixer.OnFinished(w.animationFinished)

	machine, err := newWeaponFSM(w)
	if err != nil {
		return err
	}
	w.machine = machine
	w.setState("idle")

	ui, err := w.FindEntity("UIManager")
	if err != nil {
		return err
	}
	if w.ui, err = ecs.Get[AmmoDisplay](ui, ecs.KindUIManager); err != nil {
		return err
	}
	w.ui.SetAmmo(w.magAmmo, w.ammo)

	w.Parent().RegisterEventHandler(ecs.TopicAmmoPickup, w.ammoPickup)
	return nil
}

func (w *Weapon) setState(name string) {
	if err := w.machine.SetState(name); err != nil {
		w.Parent().Logger().Error("weapon state transition failed", zap.String("to", name), zap.Error(err))
	}
}

func (w *Weapon) animation(name string) anim.Animation {
	return w.animations[name]
}

func (w *Weapon) ammoPickup(ecs.Event) {
	w.ammo += w.spec.PickupAmount
	w.ui.SetAmmo(w.magAmmo, w.ammo)
	w.Parent().Logger().Info("ammo picked up", zap.Int("reserve", w.ammo))
}

func (w *Weapon) animationFinished(a *anim.Action) {
	if a != w.animation("reload").Action || w.machine.CurrentName() != "reload" {
		return
	}
	w.ReloadDone()
	w.setState("idle")
}

func (w *Weapon) handleInput() {
	if w.input.MousePressed() && !w.reloading {
		w.shoot = true
		w.shootTimer = 0
	}
	if w.input.MouseReleased() {
		w.shoot = false
	}
	if w.input.Pressed(input.KeyR) {
		w.Reload()
	}
}

// Reload starts a reload unless one is running, the magazine is full or
// there is no reserve left.
func (w *Weapon) Reload() {
	if w.reloading || w.magAmmo == w.ammoPerMag || w.ammo == 0 {
		return
	}
	w.reloading = true
	w.setState("reload")
}

// ReloadDone moves as many rounds from the reserve into the magazine as fit.
func (w *Weapon) ReloadDone() {
	w.reloading = false
	needed := w.ammoPerMag - w.magAmmo
	w.magAmmo = min(w.ammo+w.magAmmo, w.ammoPerMag)
	w.ammo = max(0, w.ammo-needed)
	w.ui.SetAmmo(w.magAmmo, w.ammo)
}

func (w *Weapon) raycast() {
	near, far := w.camera.NearFar()
	mask := physics.AllFilter.Without(physics.SensorTrigger)
	if !w.world.CastRay(near, far, mask, &w.hitResult) {
		return
	}
	target, ok := w.hitResult.Object.Owner().(*ecs.Entity)
	if !ok || target == nil {
		return
	}
	target.Broadcast(ecs.HitEvent{
		From:   w.Parent(),
		Amount: w.spec.Damage,
		Result: ecs.HitResult{
			Point:  w.hitResult.Point,
			Normal: w.hitResult.Normal,
			Object: w.hitResult.Object,
		},
	})
}

func (w *Weapon) fire(dt float64) {
	if !w.shoot || w.reloading {
		return
	}
	if w.magAmmo == 0 {
		w.Reload()
		return
	}

	if w.shootTimer <= 0 {
		w.flash.Life = w.spec.FireRate
		w.flash.Roll = math.Mod(w.flash.Roll+math.Pi*w.rng.Float64(), 2*math.Pi)
		s := w.spec.FlashScale
		w.flash.Scale = w.rng.Float64()*(s.Max-s.Min) + s.Min
		w.shootTimer = w.spec.FireRate
		w.magAmmo = max(0, w.magAmmo-1)
		w.ui.SetAmmo(w.magAmmo, w.ammo)

		w.raycast()
		w.Broadcast(ecs.ShotEvent{})
	}

	w.shootTimer = math.Max(0, w.shootTimer-dt)
}

func (w *Weapon) animateMuzzle(dt float64) {
	w.flash.Opacity = w.flash.Life / w.spec.FireRate
	w.flash.Life = math.Max(0, w.flash.Life-dt)
}

func (w *Weapon) Update(dt float64) {
	w.handleInput()
	w.mixer.Update(dt)
	w.machine.Update(dt)
	w.fire(dt)
	w.animateMuzzle(dt)
}

func (w *Weapon) State() string {
	if w.machine == nil {
		return ""
	}
	return w.machine.CurrentName()
}

func (w *Weapon) Ammo() (mag, reserve int) { return w.magAmmo, w.ammo }
func (w *Weapon) Reloading() bool           { return w.reloading }
func (w *Weapon) Triggered() bool           { return w.shoot }
func (w *Weapon) Flash() MuzzleFlash        { return w.flash }
