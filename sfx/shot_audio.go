// Package sfx plays sound effects in response to entity events.
package sfx

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"

	"github.com/milk9111/mutantfps/ecs"
)

// Voice is a single playable sound. *audio.Player satisfies it.
type Voice interface {
	Play()
	Pause()
	Rewind() error
	IsPlaying() bool
}

// NewVoice wraps 16-bit little-endian stereo PCM at the context's sample
// rate.
func NewVoice(ctx *audio.Context, pcm []byte) Voice {
	return ctx.NewPlayerFromBytes(pcm)
}

// ShotAudio restarts the shot sound on every shot of its entity's weapon.
// A nil voice keeps count without playing anything.
type ShotAudio struct {
	ecs.Base
	voice Voice
	shots int
}

func NewShotAudio(voice Voice) *ShotAudio {
	return &ShotAudio{voice: voice}
}

func (s *ShotAudio) Kind() ecs.ComponentKind { return ecs.KindShotAudio }

func (s *ShotAudio) Initialize() error {
	s.Parent().RegisterEventHandler(ecs.TopicShot, s.onShot)
	return nil
}

func (s *ShotAudio) onShot(ecs.Event) {
	s.shots++
	if s.voice == nil {
		return
	}
	if s.voice.IsPlaying() {
		s.voice.Pause()
	}
	if err := s.voice.Rewind(); err != nil {
		s.Parent().Logger().Warn("rewind shot sound", zap.Error(err))
		return
	}
	s.voice.Play()
}

// Shots is the number of shots heard since Initialize.
func (s *ShotAudio) Shots() int {
	return s.shots
}
