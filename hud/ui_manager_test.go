package hud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/mutantfps/ecs"
)

func TestUIManager(t *testing.T) {
	u := NewUIManager()
	assert.False(t, u.Visible())

	e := ecs.NewNamedEntity("UIManager")
	require.NoError(t, e.AddComponent(u))
	m := ecs.NewEntityManager(nil)
	m.Add(e)
	require.NoError(t, m.EndSetup())
	assert.True(t, u.Visible())

	u.SetAmmo(29, 100)
	u.SetHealth(90)
	mag, rest := u.Ammo()
	assert.Equal(t, 29, mag)
	assert.Equal(t, 100, rest)
	assert.Equal(t, "29 / 100", u.AmmoText())
	assert.Equal(t, 90.0, u.Health())
}
