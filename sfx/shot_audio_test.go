package sfx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/mutantfps/ecs"
)

type fakeVoice struct {
	playing   bool
	plays     int
	rewinds   int
	pauses    int
	rewindErr error
}

func (v *fakeVoice) Play()           { v.playing = true; v.plays++ }
func (v *fakeVoice) Pause()          { v.playing = false; v.pauses++ }
func (v *fakeVoice) IsPlaying() bool { return v.playing }

func (v *fakeVoice) Rewind() error {
	v.rewinds++
	return v.rewindErr
}

func setup(t *testing.T, voice Voice) (*ecs.Entity, *ShotAudio) {
	t.Helper()
	m := ecs.NewEntityManager(nil)
	e := ecs.NewNamedEntity("Player")
	s := NewShotAudio(voice)
	require.NoError(t, e.AddComponent(s))
	m.Add(e)
	require.NoError(t, m.EndSetup())
	return e, s
}

func TestShotAudioRestartsVoice(t *testing.T) {
	v := &fakeVoice{}
	e, s := setup(t, v)

	e.Broadcast(ecs.ShotEvent{})
	assert.Equal(t, 1, v.plays)
	assert.Zero(t, v.pauses)

	e.Broadcast(ecs.ShotEvent{})
	assert.Equal(t, 2, v.plays)
	assert.Equal(t, 1, v.pauses)
	assert.Equal(t, 2, v.rewinds)
	assert.Equal(t, 2, s.Shots())
}

func TestShotAudioIgnoresOtherTopics(t *testing.T) {
	v := &fakeVoice{}
	e, s := setup(t, v)

	e.Broadcast(ecs.AmmoPickupEvent{})
	assert.Zero(t, v.plays)
	assert.Zero(t, s.Shots())
}

func TestShotAudioRewindFailure(t *testing.T) {
	v := &fakeVoice{rewindErr: errors.New("closed")}
	e, s := setup(t, v)

	e.Broadcast(ecs.ShotEvent{})
	assert.Zero(t, v.plays)
	assert.Equal(t, 1, s.Shots())
}

func TestShotAudioSilent(t *testing.T) {
	e, s := setup(t, nil)
	e.Broadcast(ecs.ShotEvent{})
	assert.Equal(t, 1, s.Shots())
}
