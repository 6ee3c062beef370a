package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/mutantfps/prefabs"
)

func TestBuildLayoutEmbedded(t *testing.T) {
	spec, err := prefabs.LoadLevelSpec()
	require.NoError(t, err)

	cases := []struct {
		difficulty int
		npcs, ammo int
	}{
		{0, 1, 2},
		{1, 2, 2},
		{2, 3, 3},
		{9, 4, 3},
	}
	for _, c := range cases {
		l, err := BuildLayout(spec, c.difficulty)
		require.NoError(t, err)
		assert.Len(t, l.NPCs, c.npcs, "difficulty %d", c.difficulty)
		assert.Len(t, l.AmmoBoxes, c.ammo, "difficulty %d", c.difficulty)
		assert.Equal(t, "Mutant0", l.NPCs[0].Name)
		assert.Equal(t, "AmmoBox1", l.AmmoBoxes[1].Name)
	}
}

func TestBuildLayoutWithoutScript(t *testing.T) {
	spec := prefabs.LevelSpec{
		NPCs: []prefabs.SpawnSpec{{Name: "Boss"}, {}},
	}
	l, err := BuildLayout(spec, 3)
	require.NoError(t, err)
	require.Len(t, l.NPCs, 2)
	assert.Equal(t, "Boss", l.NPCs[0].Name)
	assert.Equal(t, "Mutant1", l.NPCs[1].Name)
	assert.Empty(t, l.AmmoBoxes)
}

func TestRunScript(t *testing.T) {
	src := []byte(`
spawn_npc(bounds.min_x, 0, bounds.max_z)
if difficulty > 0 { spawn_ammo(1, 2.5, 3) }
`)
	l, err := RunScript(src, Bounds{MinX: -4, MinZ: -4, MaxX: 4, MaxZ: 6}, 1)
	require.NoError(t, err)
	require.Len(t, l.NPCs, 1)
	assert.Equal(t, prefabs.Vec3{-4, 0, 6}, l.NPCs[0].Position)
	require.Len(t, l.AmmoBoxes, 1)
	assert.Equal(t, prefabs.Vec3{1, 2.5, 3}, l.AmmoBoxes[0].Position)
}

func TestRunScriptErrors(t *testing.T) {
	cases := map[string]string{
		"arity":  `spawn_npc(1, 2)`,
		"type":   `spawn_ammo("a", [], 0)`,
		"syntax": `spawn_npc(`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := RunScript([]byte(src), Bounds{}, 0)
			assert.Error(t, err)
		})
	}
}
