package level

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/pkg/errors"

	"github.com/milk9111/mutantfps/prefabs"
)

// Layout lists where NPCs and ammo boxes spawn.
type Layout struct {
	NPCs      []prefabs.SpawnSpec
	AmmoBoxes []prefabs.SpawnSpec
}

// BuildLayout merges the fixed spawns of spec with the ones added by its
// script, then names every unnamed spawn by kind and index.
func BuildLayout(spec prefabs.LevelSpec, difficulty int) (Layout, error) {
	l := Layout{
		NPCs:      append([]prefabs.SpawnSpec(nil), spec.NPCs...),
		AmmoBoxes: append([]prefabs.SpawnSpec(nil), spec.AmmoBoxes...),
	}
	if spec.Script != "" {
		src, err := prefabs.LoadScript(spec.Script)
		if err != nil {
			return Layout{}, errors.Wrapf(err, "level: load script %s", spec.Script)
		}
		extra, err := RunScript(src, BoundsOf(spec), difficulty)
		if err != nil {
			return Layout{}, errors.Wrapf(err, "level: run script %s", spec.Script)
		}
		l.NPCs = append(l.NPCs, extra.NPCs...)
		l.AmmoBoxes = append(l.AmmoBoxes, extra.AmmoBoxes...)
	}
	nameSpawns(l.NPCs, "Mutant")
	nameSpawns(l.AmmoBoxes, "AmmoBox")
	return l, nil
}

func nameSpawns(spawns []prefabs.SpawnSpec, prefix string) {
	for i := range spawns {
		if spawns[i].Name == "" {
			spawns[i].Name = fmt.Sprintf("%s%d", prefix, i)
		}
	}
}

// RunScript executes a level script. The script sees `bounds` and
// `difficulty` and calls spawn_npc / spawn_ammo with x, y, z.
func RunScript(src []byte, b Bounds, difficulty int) (Layout, error) {
	var npcs, ammo []any

	spawner := func(name string, into *[]any) *tengo.UserFunction {
		return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 3 {
				return nil, tengo.ErrWrongNumArguments
			}
			pos := make([]any, 3)
			for i, a := range args {
				v, ok := tengo.ToFloat64(a)
				if !ok {
					return nil, tengo.ErrInvalidArgumentType{
						Name:     fmt.Sprintf("arg %d", i),
						Expected: "float",
						Found:    a.TypeName(),
					}
				}
				pos[i] = v
			}
			*into = append(*into, map[string]any{"position": pos})
			return tengo.UndefinedValue, nil
		}}
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math", "rand"))
	vars := map[string]any{
		"bounds": map[string]any{
			"min_x": b.MinX,
			"min_z": b.MinZ,
			"max_x": b.MaxX,
			"max_z": b.MaxZ,
		},
		"difficulty": difficulty,
		"spawn_npc":  spawner("spawn_npc", &npcs),
		"spawn_ammo": spawner("spawn_ammo", &ammo),
	}
	for name, v := range vars {
		if err := script.Add(name, v); err != nil {
			return Layout{}, errors.Wrapf(err, "level: script var %s", name)
		}
	}
	if _, err := script.Run(); err != nil {
		return Layout{}, err
	}

	var l Layout
	var err error
	if l.NPCs, err = prefabs.DecodeSpec[[]prefabs.SpawnSpec](npcs); err != nil {
		return Layout{}, err
	}
	if l.AmmoBoxes, err = prefabs.DecodeSpec[[]prefabs.SpawnSpec](ammo); err != nil {
		return Layout{}, err
	}
	return l, nil
}
