package assets

import (
	"embed"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/mutantfps/anim"
)

// SampleRate is the rate of every PCM buffer the inventory holds.
const SampleRate = 44100

//go:embed *.yaml
var assetsFS embed.FS

type manifest struct {
	Clips  map[Key]clipSpec  `yaml:"clips"`
	Sounds map[Key]soundSpec `yaml:"sounds"`
}

type clipSpec struct {
	Name       string     `yaml:"name"`
	Duration   float64    `yaml:"duration"`
	RootMotion [3]float64 `yaml:"root_motion"`
}

type soundSpec struct {
	Duration float64 `yaml:"duration"`
	Seed     int64   `yaml:"seed"`
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// Load builds the inventory from the embedded manifest.
func Load() (*Inventory, error) {
	data, err := LoadFile("manifest.yaml")
	if err != nil {
		return nil, errors.Wrap(err, "assets: load manifest.yaml")
	}
	return Parse(data)
}

// Parse builds an inventory from manifest YAML.
func Parse(data []byte) (*Inventory, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "assets: unmarshal manifest")
	}

	inv := NewInventory()
	for key, c := range m.Clips {
		if c.Duration <= 0 {
			return nil, errors.Errorf("assets: clip %q: duration must be positive", key)
		}
		name := c.Name
		if name == "" {
			name = string(key)
		}
		inv.AddClip(key, &anim.Clip{
			Name:       name,
			Duration:   c.Duration,
			RootMotion: mgl64.Vec3(c.RootMotion),
		})
	}
	for key, s := range m.Sounds {
		if s.Duration <= 0 {
			return nil, errors.Errorf("assets: sound %q: duration must be positive", key)
		}
		inv.AddSound(key, SynthShot(SampleRate, s.Duration, s.Seed))
	}
	return inv, nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "assets/"); ok {
		return after
	}
	return s
}
