package player

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/mutantfps/ecs"
	"github.com/milk9111/mutantfps/input"
	"github.com/milk9111/mutantfps/physics"
)

// addTarget places a wall owned by a new entity five meters in front of the
// player.
func addTarget(t *testing.T, r *rig) *[]ecs.HitEvent {
	t.Helper()
	var hits []ecs.HitEvent
	target := ecs.NewNamedEntity("Target")
	target.RegisterEventHandler(ecs.TopicHit, func(ev ecs.Event) {
		hits = append(hits, ev.(ecs.HitEvent))
	})
	r.manager.Add(target)
	wall := r.world.AddStaticBody(physics.BoxShape{HalfExtents: mgl64.Vec3{1, 2, 0.2}}, mgl64.Vec3{0, 2, -5}, mgl64.QuatIdent(), physics.StaticFilter)
	wall.SetOwner(target)
	return &hits
}

func TestWeaponFires(t *testing.T) {
	r := newRig(t, 0)
	hits := addTarget(t, r)
	r.setup(t)
	assert.Equal(t, 30, r.ui.mag)
	assert.Equal(t, 100, r.ui.rest)

	r.in.SetMouseButton(true)
	r.frames(1, 0.05)
	assert.Equal(t, "shoot", r.weapon.State())
	assert.Equal(t, 1, r.shots)
	require.Len(t, *hits, 1)
	hit := (*hits)[0]
	assert.Same(t, r.player, hit.From)
	assert.Equal(t, 2.0, hit.Amount)
	assert.InDelta(t, -4.8, hit.Result.Point.Z(), 1e-6)
	assert.InDelta(t, 1, hit.Result.Normal.Z(), 1e-6)
	assert.Equal(t, 29, r.ui.mag)
	assert.Equal(t, 1.0, r.weapon.Flash().Opacity)

	r.frames(9, 0.05)
	assert.Equal(t, 5, r.shots)
	assert.Len(t, *hits, 5)
	mag, reserve := r.weapon.Ammo()
	assert.Equal(t, 25, mag)
	assert.Equal(t, 100, reserve)

	r.in.SetMouseButton(false)
	r.frames(1, 0.05)
	assert.Equal(t, "idle", r.weapon.State())
	assert.False(t, r.weapon.Triggered())
	assert.Equal(t, 5, r.shots)
}

func TestWeaponShotWithoutHit(t *testing.T) {
	r := newRig(t, 0)
	r.setup(t)

	r.in.SetMouseButton(true)
	r.frames(1, 0.05)
	assert.Equal(t, 1, r.shots)
}

func TestMuzzleFlashFades(t *testing.T) {
	r := newRig(t, 0)
	r.setup(t)

	r.in.SetMouseButton(true)
	r.frames(1, 0.05)
	f := r.weapon.Flash()
	assert.Equal(t, 1.0, f.Opacity)
	assert.GreaterOrEqual(t, f.Scale, 0.8)
	assert.Less(t, f.Scale, 1.5)

	r.in.SetMouseButton(false)
	r.frames(1, 0.05)
	assert.InDelta(t, 0.5, r.weapon.Flash().Opacity, 1e-9)
	r.frames(1, 0.05)
	assert.InDelta(t, 0, r.weapon.Flash().Opacity, 1e-9)
}

func TestReload(t *testing.T) {
	r := newRig(t, 0)
	r.setup(t)

	r.weapon.Reload()
	assert.Equal(t, "idle", r.weapon.State(), "full magazine")

	r.in.SetMouseButton(true)
	r.frames(1, 0.05)
	r.in.SetMouseButton(false)
	r.frames(1, 0.05)

	r.in.SetKey(input.KeyR, true)
	r.frames(1, 0.05)
	r.in.SetKey(input.KeyR, false)
	assert.Equal(t, "reload", r.weapon.State())
	assert.True(t, r.weapon.Reloading())

	r.in.SetMouseButton(true)
	r.frames(10, 0.05)
	assert.True(t, r.weapon.Reloading())
	assert.False(t, r.weapon.Triggered())
	assert.Equal(t, 1, r.shots)

	r.in.SetMouseButton(false)
	r.frames(15, 0.05)
	assert.False(t, r.weapon.Reloading())
	assert.Equal(t, "idle", r.weapon.State())
	mag, reserve := r.weapon.Ammo()
	assert.Equal(t, 30, mag)
	assert.Equal(t, 99, reserve)
	assert.Equal(t, 30, r.ui.mag)
	assert.Equal(t, 99, r.ui.rest)
}

func TestAutoReloadOnEmptyMagazine(t *testing.T) {
	r := newRig(t, 0)
	r.setup(t)
	r.weapon.magAmmo = 0

	r.in.SetMouseButton(true)
	r.frames(1, 0.05)
	assert.Equal(t, "reload", r.weapon.State())
	assert.Zero(t, r.shots)

	r.in.SetMouseButton(false)
	r.frames(25, 0.05)
	mag, reserve := r.weapon.Ammo()
	assert.Equal(t, 30, mag)
	assert.Equal(t, 70, reserve)
}

func TestReloadDone(t *testing.T) {
	tests := []struct {
		name        string
		mag, ammo   int
		wantMag     int
		wantReserve int
	}{
		{name: "top off", mag: 10, ammo: 100, wantMag: 30, wantReserve: 80},
		{name: "reserve covers the gap", mag: 10, ammo: 50, wantMag: 30, wantReserve: 30},
		{name: "short reserve", mag: 10, ammo: 5, wantMag: 15, wantReserve: 0},
		{name: "empty magazine", mag: 0, ammo: 30, wantMag: 30, wantReserve: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, 0)
			r.setup(t)
			r.weapon.magAmmo, r.weapon.ammo = tt.mag, tt.ammo
			r.weapon.reloading = true

			r.weapon.ReloadDone()
			mag, reserve := r.weapon.Ammo()
			assert.Equal(t, tt.wantMag, mag)
			assert.Equal(t, tt.wantReserve, reserve)
			assert.False(t, r.weapon.Reloading())
		})
	}
}

func TestReloadBlockedWithoutReserve(t *testing.T) {
	r := newRig(t, 0)
	r.setup(t)
	r.weapon.magAmmo, r.weapon.ammo = 10, 0

	r.weapon.Reload()
	assert.False(t, r.weapon.Reloading())
	assert.Equal(t, "idle", r.weapon.State())
}

func TestAmmoPickup(t *testing.T) {
	r := newRig(t, 0)
	r.setup(t)

	r.player.Broadcast(ecs.AmmoPickupEvent{})
	_, reserve := r.weapon.Ammo()
	assert.Equal(t, 130, reserve)
	assert.Equal(t, 130, r.ui.rest)
}

func TestWeaponRequiresClips(t *testing.T) {
	r := newRig(t, 0)
	delete(r.weapon.clips, "reload")
	assert.ErrorIs(t, r.manager.EndSetup(), ErrMissingClip)
}
