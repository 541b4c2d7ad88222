package controller

import (
	"errors"
	"image/color"

	"github.com/calvinmclean/chocorobo/control"
)

// View shows what the robot would do. The console output is always written and any added
// Views get the same motor and indicator updates
type View interface {
	control.Motors
	control.Pixels
}

// multiMotors fans out throttles to every sink and joins their errors
type multiMotors []control.Motors

func (mm multiMotors) SetThrottle(left, right float64) error {
	var errs []error
	for _, m := range mm {
		errs = append(errs, m.SetThrottle(left, right))
	}
	return errors.Join(errs...)
}

type multiPixels []control.Pixels

func (mp multiPixels) SetPixel(i int, c color.RGBA) {
	for _, p := range mp {
		p.SetPixel(i, c)
	}
}

func (mp multiPixels) Show() error {
	var errs []error
	for _, p := range mp {
		errs = append(errs, p.Show())
	}
	return errors.Join(errs...)
}
