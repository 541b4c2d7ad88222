package controller

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/calvinmclean/chocorobo/control"
)

// consoleMotors prints the throttles whenever they change at two decimal places
type consoleMotors struct {
	out  io.Writer
	last control.MotorCommand
	set  bool
}

func (m *consoleMotors) SetThrottle(left, right float64) error {
	cmd := control.MotorCommand{Left: round2(left), Right: round2(right)}
	if m.set && cmd == m.last {
		return nil
	}
	m.last = cmd
	m.set = true

	_, err := fmt.Fprintf(m.out, "motors: %s\n", cmd)
	return err
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// consolePixels prints the indicator whenever it changes. The leftmost zone has the
// highest index, so zones are drawn from the top index down
type consolePixels struct {
	out  io.Writer
	buf  [control.NumZones]color.RGBA
	last string
}

func (p *consolePixels) SetPixel(i int, c color.RGBA) {
	if i < 0 || i >= len(p.buf) {
		return
	}
	p.buf[i] = c
}

func (p *consolePixels) Show() error {
	s := p.String()
	if s == p.last {
		return nil
	}
	p.last = s

	_, err := fmt.Fprintf(p.out, "indicator: %s\n", s)
	return err
}

func (p *consolePixels) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := len(p.buf) - 1; i >= 0; i-- {
		if p.buf[i] == (color.RGBA{}) {
			sb.WriteString(" .")
		} else {
			sb.WriteString(" #")
		}
	}
	sb.WriteString(" ]")
	return sb.String()
}
