package assets

import (
	stderrors "errors"
	"sort"

	"github.com/pkg/errors"

	"github.com/milk9111/mutantfps/anim"
)

var ErrMissing = stderrors.New("assets: missing asset")

// Inventory holds built assets by key. It is filled once at startup and read
// afterwards.
type Inventory struct {
	clips  map[Key]*anim.Clip
	sounds map[Key][]byte
}

func NewInventory() *Inventory {
	return &Inventory{
		clips:  make(map[Key]*anim.Clip),
		sounds: make(map[Key][]byte),
	}
}

func (inv *Inventory) AddClip(key Key, clip *anim.Clip) {
	if inv == nil || clip == nil {
		return
	}
	inv.clips[key] = clip
}

func (inv *Inventory) AddSound(key Key, pcm []byte) {
	if inv == nil {
		return
	}
	inv.sounds[key] = pcm
}

func (inv *Inventory) Clip(key Key) (*anim.Clip, error) {
	if inv == nil {
		return nil, errors.Wrapf(ErrMissing, "clip %q", key)
	}
	c, ok := inv.clips[key]
	if !ok {
		return nil, errors.Wrapf(ErrMissing, "clip %q", key)
	}
	return c, nil
}

// ClipSet resolves a name -> key table into a name -> clip set. The first
// missing key, in name order, fails the whole set.
func (inv *Inventory) ClipSet(keys map[string]Key) (map[string]*anim.Clip, error) {
	names := make([]string, 0, len(keys))
	for name := range keys {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]*anim.Clip, len(keys))
	for _, name := range names {
		c, err := inv.Clip(keys[name])
		if err != nil {
			return nil, errors.Wrapf(err, "clip set entry %q", name)
		}
		out[name] = c
	}
	return out, nil
}

func (inv *Inventory) Sound(key Key) ([]byte, error) {
	if inv == nil {
		return nil, errors.Wrapf(ErrMissing, "sound %q", key)
	}
	s, ok := inv.sounds[key]
	if !ok {
		return nil, errors.Wrapf(ErrMissing, "sound %q", key)
	}
	return s, nil
}
