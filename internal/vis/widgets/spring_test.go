package widgets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpringSettlesOnTarget(t *testing.T) {
	s := NewSpring(0, 8, 1)
	assert.True(t, s.Settled())

	s.Target = 1
	s.Update(0.1)
	assert.Greater(t, s.Pos, 0.0)
	assert.Less(t, s.Pos, 1.0)
	assert.False(t, s.Settled())

	for i := 0; i < 180; i++ {
		s.Update(1.0 / 60)
	}
	assert.True(t, s.Settled())
	assert.Equal(t, 1.0, s.Pos)
}

func TestSpringAccumulatesShortFrames(t *testing.T) {
	s := NewSpring(0, 8, 1)
	s.Target = 1
	s.Update(0.005)
	assert.Equal(t, 0.0, s.Pos, "less than one physics step")
	s.Update(0.015)
	assert.Greater(t, s.Pos, 0.0)
}
