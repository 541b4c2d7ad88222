package controller

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"github.com/calvinmclean/chocorobo/control"
	"github.com/stretchr/testify/assert"
)

type failingView struct {
	recordingView
	err error
}

func (v *failingView) SetThrottle(left, right float64) error {
	_ = v.recordingView.SetThrottle(left, right)
	return v.err
}

func (v *failingView) Show() error {
	_ = v.recordingView.Show()
	return v.err
}

func TestMultiSinks(t *testing.T) {
	viewErr := errors.New("window closed")

	var out bytes.Buffer
	ok := &recordingView{}
	failing := &failingView{err: viewErr}

	motors := multiMotors{&consoleMotors{out: &out}, failing, ok}
	err := motors.SetThrottle(0.425, 0.5)
	assert.ErrorIs(t, err, viewErr)
	assert.Equal(t, []control.MotorCommand{{Left: 0.425, Right: 0.5}}, ok.commands)
	assert.Equal(t, ok.commands, failing.commands)

	green := color.RGBA{G: 0x10, A: 0xff}
	pixels := multiPixels{&consolePixels{out: &out}, failing, ok}
	pixels.SetPixel(0, green)
	err = pixels.Show()
	assert.ErrorIs(t, err, viewErr)
	assert.Equal(t, green, ok.shown[0])
	assert.Equal(t, green, failing.shown[0])

	assert.Equal(t, "motors: L=0.43 R=0.50\nindicator: [ . . . . # ]\n", out.String())

	assert.NoError(t, multiMotors{ok}.SetThrottle(0, 0))
	assert.NoError(t, multiPixels{}.Show())
}
