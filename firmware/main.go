//go:build tinygo

package main

import (
	"context"
	"machine"

	"github.com/calvinmclean/chocorobo/control"
	"github.com/calvinmclean/chocorobo/firmware/commands"
	"github.com/calvinmclean/chocorobo/firmware/device"
	"github.com/calvinmclean/chocorobo/telemetry"
)

func main() {
	cfg := control.DefaultConfig()

	leftCfg := device.MotorConfig{
		PWM:  machine.PWM5,
		PinA: machine.GP10,
		PinB: machine.GP11,
	}
	rightCfg := device.MotorConfig{
		PWM:  machine.PWM6,
		PinA: machine.GP12,
		PinB: machine.GP13,
	}

	pixelCfg := device.PixelConfig{
		Pin:        machine.GP22,
		Count:      10,
		Brightness: 0.2,
	}

	uartCfg := device.UARTConfig{
		UART:        machine.UART0,
		TX:          machine.GP0,
		RX:          machine.GP1,
		BaudRate:    115200,
		ReadTimeout: cfg.ReadTimeout,
	}

	d, err := device.New(leftCfg, rightCfg, pixelCfg, uartCfg)
	if err != nil {
		panic(err)
	}

	control.SetLogger(d.Logf)

	loop, err := control.NewLoop(cfg, control.SystemClock{}, telemetry.NewReader(d.Telemetry()), &d, &d)
	if err != nil {
		panic(err)
	}

	loop.OnStep = func(it control.Iteration) {
		d.Record(it)
		commands.Poll(&d)
	}

	err = loop.Run(context.Background())
	if err != nil {
		panic(err)
	}
}
