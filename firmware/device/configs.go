//go:build tinygo

package device

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/l9110x"
)

// MotorConfig wires one L9110 channel. PinA and PinB must both be outputs of PWM
type MotorConfig struct {
	PWM  l9110x.PWM
	PinA machine.Pin
	PinB machine.Pin
}

// PixelConfig has device-level values for the WS2812 strip
type PixelConfig struct {
	Pin        machine.Pin
	Count      int
	Brightness float64 // 0 to 1, applied to every color before it is written
}

// UARTConfig is the serial link to the vision sensor
type UARTConfig struct {
	UART     *machine.UART
	TX       machine.Pin
	RX       machine.Pin
	BaudRate uint32
	// ReadTimeout is how long a read waits for the first byte before returning nothing
	ReadTimeout time.Duration
}

// motorPWMPeriod is 20kHz, above what people can hear from the motors
const motorPWMPeriod = 50 * time.Microsecond
