//go:build tinygo

package device

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"machine"
	"math"
	"time"

	"github.com/calvinmclean/chocorobo/control"

	"tinygo.org/x/drivers/l9110x"
	"tinygo.org/x/drivers/ws2812"
)

// Device is the robot: two DC motors on an L9110 H-bridge, a WS2812 strip for the direction
// indicator and a UART connected to the vision sensor
type Device struct {
	left  l9110x.PWMDevice
	right l9110x.PWMDevice

	strip      ws2812.Device
	pixels     []color.RGBA
	out        []color.RGBA
	brightness float64

	uart        *machine.UART
	readTimeout time.Duration

	startTime time.Time
	paused    bool
	verbose   bool

	// last is the most recent loop iteration, kept for Debug
	last control.Iteration
}

// New intializes the motors, strip and UART with the provided configs
func New(leftCfg, rightCfg MotorConfig, pixelCfg PixelConfig, uartCfg UARTConfig) (Device, error) {
	left, err := newMotor(leftCfg)
	if err != nil {
		return Device{}, errors.New("error creating left motor: " + err.Error())
	}

	right, err := newMotor(rightCfg)
	if err != nil {
		return Device{}, errors.New("error creating right motor: " + err.Error())
	}

	if pixelCfg.Count < control.NumZones {
		return Device{}, errors.New("error creating pixels: need at least 5 pixels")
	}
	pixelCfg.Pin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	err = uartCfg.UART.Configure(machine.UARTConfig{
		BaudRate: uartCfg.BaudRate,
		TX:       uartCfg.TX,
		RX:       uartCfg.RX,
	})
	if err != nil {
		return Device{}, errors.New("error configuring uart: " + err.Error())
	}

	return Device{
		left:        left,
		right:       right,
		strip:       ws2812.NewWS2812(pixelCfg.Pin),
		pixels:      make([]color.RGBA, pixelCfg.Count),
		out:         make([]color.RGBA, pixelCfg.Count),
		brightness:  pixelCfg.Brightness,
		uart:        uartCfg.UART,
		readTimeout: uartCfg.ReadTimeout,
		startTime:   time.Now(),
	}, nil
}

func newMotor(cfg MotorConfig) (l9110x.PWMDevice, error) {
	err := cfg.PWM.Configure(machine.PWMConfig{Period: uint64(motorPWMPeriod.Nanoseconds())})
	if err != nil {
		return l9110x.PWMDevice{}, err
	}

	ca, err := cfg.PWM.Channel(cfg.PinA)
	if err != nil {
		return l9110x.PWMDevice{}, err
	}
	cb, err := cfg.PWM.Channel(cfg.PinB)
	if err != nil {
		return l9110x.PWMDevice{}, err
	}

	m := l9110x.NewWithSpeed(ca, cb, cfg.PWM)
	err = m.Configure()
	if err != nil {
		return l9110x.PWMDevice{}, err
	}
	return m, nil
}

// SetThrottle drives both motors. Throttles are percentages of full speed in [-1, 1]. While
// paused the motors are held stopped
func (d *Device) SetThrottle(left, right float64) error {
	if d.paused {
		left, right = 0, 0
	}
	setMotor(&d.left, left)
	setMotor(&d.right, right)
	return nil
}

func setMotor(m *l9110x.PWMDevice, throttle float64) {
	speed := uint32(math.Round(math.Min(math.Abs(throttle), 1) * 100))
	switch {
	case speed == 0:
		m.Stop()
	case throttle > 0:
		m.Forward(speed)
	default:
		m.Backward(speed)
	}
}

// SetPixel changes one pixel in the buffer. It is written on the next Show
func (d *Device) SetPixel(i int, c color.RGBA) {
	if i < 0 || i >= len(d.pixels) {
		return
	}
	d.pixels[i] = c
}

// Show writes the whole buffer to the strip, scaled by brightness
func (d *Device) Show() error {
	for i, c := range d.pixels {
		d.out[i] = color.RGBA{
			R: scale(c.R, d.brightness),
			G: scale(c.G, d.brightness),
			B: scale(c.B, d.brightness),
		}
	}
	return d.strip.WriteColors(d.out)
}

func scale(v uint8, brightness float64) uint8 {
	return uint8(math.Round(float64(v) * brightness))
}

// Telemetry returns a reader for the vision sensor's UART. Each Read waits up to the
// configured timeout for data and returns 0 bytes if nothing arrives
func (d *Device) Telemetry() io.Reader {
	return uartReader{uart: d.uart, timeout: d.readTimeout}
}

type uartReader struct {
	uart    *machine.UART
	timeout time.Duration
}

func (r uartReader) Read(p []byte) (int, error) {
	deadline := time.Now().Add(r.timeout)
	for r.uart.Buffered() == 0 {
		if !time.Now().Before(deadline) {
			return 0, nil
		}
		time.Sleep(time.Millisecond)
	}
	return r.uart.Read(p)
}

// Record keeps the latest iteration for Debug and prints it in verbose mode
func (d *Device) Record(it control.Iteration) {
	if d.verbose && it.State != d.last.State {
		println(d.ts(), it.String())
	}
	d.last = it
}

// Pause holds the motors stopped while the loop keeps running
func (d *Device) Pause() {
	d.paused = true
	d.left.Stop()
	d.right.Stop()
	println(d.ts(), "Paused")
}

// Resume lets the loop drive the motors again
func (d *Device) Resume() {
	d.paused = false
	println(d.ts(), "Resumed")
}

// TestIndicator lights each zone in turn and then clears the strip. The loop relights its zone
// on the next iteration
func (d *Device) TestIndicator() {
	for zone := 0; zone < control.NumZones; zone++ {
		for i := range d.pixels {
			d.pixels[i] = color.RGBA{}
		}
		d.pixels[zone] = color.RGBA{R: 0xff, G: 0xff, B: 0xff}
		err := d.Show()
		if err != nil {
			println(d.ts(), "error showing pixels:", err.Error())
			return
		}
		time.Sleep(300 * time.Millisecond)
	}

	for i := range d.pixels {
		d.pixels[i] = color.RGBA{}
	}
	err := d.Show()
	if err != nil {
		println(d.ts(), "error showing pixels:", err.Error())
	}
}

// TestMotors runs forward, backward and both rotations briefly. It ignores Pause
func (d *Device) TestMotors() {
	steps := [][2]float64{
		{0.5, 0.5},
		{-0.5, -0.5},
		{0.5, -0.5},
		{-0.5, 0.5},
	}
	for _, s := range steps {
		if d.verbose {
			println(d.ts(), "TestMotors", int(s[0]*100), int(s[1]*100))
		}
		setMotor(&d.left, s[0])
		setMotor(&d.right, s[1])
		time.Sleep(300 * time.Millisecond)
	}
	d.left.Stop()
	d.right.Stop()
}

// Debug prints out details of the Device's state
func (d *Device) Debug() {
	s := d.ts() + " " + d.last.String()
	if d.paused {
		s += " paused"
	}
	println(s)
}

// Verbose toggles verbose mode, which prints every state change
func (d *Device) Verbose() {
	d.verbose = !d.verbose
	if d.verbose {
		println(d.ts(), "Set Verbose Mode")
	} else {
		println(d.ts(), "Unset Verbose Mode")
	}
}

// Logf prints a formatted message with the uptime prefix. It is used as the control loop's logger
func (d *Device) Logf(format string, v ...any) {
	println(d.ts(), fmt.Sprintf(format, v...))
}

// ts returns the duration timestamp for logging
func (d *Device) ts() string {
	if d.startTime.IsZero() {
		return "[-]"
	}
	return "[" + time.Since(d.startTime).String() + "]"
}

// Buffered returns how many bytes are waiting on the USB console
func (d *Device) Buffered() int {
	return machine.Serial.Buffered()
}

func (d *Device) ReadByte() (byte, error) {
	return machine.Serial.ReadByte()
}
