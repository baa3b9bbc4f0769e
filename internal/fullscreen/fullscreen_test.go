package fullscreen

import (
	"testing"

	"github.com/loannaflip/dynamd/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetState(t *testing.T) {
	assert.True(t, TargetState(OpAdd, false))
	assert.True(t, TargetState(OpAdd, true))
	assert.False(t, TargetState(OpRemove, true))
	assert.False(t, TargetState(OpRemove, false))
	assert.True(t, TargetState(OpToggle, false))
	assert.False(t, TargetState(OpToggle, true))
}

func TestSetIsNoopWhenAlreadyInTargetState(t *testing.T) {
	c := &model.Client{IsFullscreen: true}
	_, changed := Set(c, &model.Monitor{}, true)
	assert.False(t, changed)
}

func TestFullscreenToggleIsInvolution(t *testing.T) {
	mon := &model.Monitor{MX: 0, MY: 0, MW: 1920, MH: 1080}
	c := &model.Client{
		X: 100, Y: 50, W: 800, H: 600,
		BorderWidth: 2, IsFloating: false,
	}

	rect, changed := Set(c, mon, true)
	require.True(t, changed)
	assert.Equal(t, 1920, rect.W)
	assert.Equal(t, 1080, rect.H)
	assert.Equal(t, 0, c.BorderWidth)
	assert.True(t, c.IsFloating)
	assert.True(t, c.IsFullscreen)

	rect, changed = Set(c, mon, false)
	require.True(t, changed)
	assert.Equal(t, 100, rect.X)
	assert.Equal(t, 50, rect.Y)
	assert.Equal(t, 800, rect.W)
	assert.Equal(t, 600, rect.H)
	assert.Equal(t, 2, c.BorderWidth)
	assert.False(t, c.IsFloating)
	assert.False(t, c.IsFullscreen)
}

func TestToggleFlipsCurrentState(t *testing.T) {
	mon := &model.Monitor{MX: 0, MY: 0, MW: 1920, MH: 1080}
	c := &model.Client{X: 10, Y: 10, W: 200, H: 200}

	_, changed := Toggle(c, mon)
	require.True(t, changed)
	assert.True(t, c.IsFullscreen)

	_, changed = Toggle(c, mon)
	require.True(t, changed)
	assert.False(t, c.IsFullscreen)
}

func TestRefusedWhenFullscreen(t *testing.T) {
	assert.True(t, Refused(&model.Client{IsFullscreen: true}))
	assert.False(t, Refused(&model.Client{IsFullscreen: false}))
}
