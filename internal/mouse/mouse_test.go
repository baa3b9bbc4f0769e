package mouse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThrottleMotion(t *testing.T) {
	assert.False(t, ThrottleMotion(1000, 1005))
	assert.True(t, ThrottleMotion(1000, 1020))
}

func TestSnapMoveSnapsToEdges(t *testing.T) {
	x, y := SnapMove(5, 5, 100, 100, 0, 0, 1920, 1080, 32)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	x, y = SnapMove(1800, 960, 100, 100, 0, 0, 1920, 1080, 32)
	assert.Equal(t, 1920-100, x)
	assert.Equal(t, 1080-100, y)

	x, y = SnapMove(500, 500, 100, 100, 0, 0, 1920, 1080, 32)
	assert.Equal(t, 500, x)
	assert.Equal(t, 500, y)
}

func TestShouldFloat(t *testing.T) {
	assert.False(t, ShouldFloat(10, 10, 32))
	assert.True(t, ShouldFloat(33, 0, 32))
	assert.True(t, ShouldFloat(0, -40, 32))
}

func TestClampResizeFloors(t *testing.T) {
	w, h := ClampResize(-5, 0)
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
}

func TestCentroidMonitor(t *testing.T) {
	mons := []MonitorRect{
		{Index: 0, X: 0, Y: 0, W: 1920, H: 1080},
		{Index: 1, X: 1920, Y: 0, W: 1920, H: 1080},
	}
	assert.Equal(t, 0, CentroidMonitor(100, 100, 200, 200, mons))
	assert.Equal(t, 1, CentroidMonitor(2000, 100, 200, 200, mons))
	assert.Equal(t, -1, CentroidMonitor(-500, 100, 200, 200, mons))
}
