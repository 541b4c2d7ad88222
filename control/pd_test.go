package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPDControllerUpdate(t *testing.T) {
	c := NewPDController(DefaultConfig())

	// error 320 with no history: 0.0003*320 + 0.0005*320
	assert.InDelta(t, 0.256, c.Update(500), 1e-9)
	assert.InDelta(t, 320, c.LastError(), 1e-9)

	// same position again, derivative term drops out
	assert.InDelta(t, 0.096, c.Update(500), 1e-9)

	// face right of center steers right
	assert.Less(t, c.Update(1200), 0.0)
}

func TestPDControllerCentered(t *testing.T) {
	c := NewPDController(DefaultConfig())
	assert.Zero(t, c.Update(820))
	assert.Zero(t, c.LastError())
}

func TestPDControllerDeterministic(t *testing.T) {
	a := NewPDController(DefaultConfig())
	b := NewPDController(DefaultConfig())

	for _, position := range []int{100, 1500, 820, 400} {
		assert.Equal(t, a.Update(position), b.Update(position))
	}
}

func TestPDControllerReset(t *testing.T) {
	c := NewPDController(DefaultConfig())
	first := c.Update(300)
	c.Update(1000)

	c.Reset()
	assert.Zero(t, c.LastError())
	assert.Equal(t, first, c.Update(300))
}
