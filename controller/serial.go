package controller

import (
	"errors"
	"fmt"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// ErrNoUSBSerial is returned when no USB serial port is attached
var ErrNoUSBSerial = errors.New("no USB serial ports found")

// PortMode returns the 8N1 serial settings used by the sensor
func (c Config) PortMode() *serial.Mode {
	baud := c.BaudRate
	if baud <= 0 {
		baud = DefaultBaudRate
	}

	return &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// OpenPort opens the configured serial port, or the first USB serial port when none is set,
// and applies the read timeout
func OpenPort(cfg Config) (serial.Port, error) {
	name := cfg.SerialPort
	if name == "" {
		ports, err := GetSerialPorts()
		if err != nil {
			return nil, err
		}
		name = ports[0].Name
	}

	port, err := serial.Open(name, cfg.PortMode())
	if err != nil {
		return nil, fmt.Errorf("error opening serial port %q: %w", name, err)
	}

	timeout := cfg.ReadTimeout
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}
	err = port.SetReadTimeout(timeout)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("error setting read timeout: %w", err)
	}

	return port, nil
}

// GetSerialPorts lists the USB serial ports
func GetSerialPorts() ([]*enumerator.PortDetails, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("error listing serial ports: %w", err)
	}

	usb := []*enumerator.PortDetails{}
	for _, port := range ports {
		if port.IsUSB {
			usb = append(usb, port)
		}
	}

	if len(usb) == 0 {
		return nil, ErrNoUSBSerial
	}
	return usb, nil
}

// PortString formats a port for listing
func PortString(p *enumerator.PortDetails) string {
	s := p.Name
	if p.IsUSB {
		s += fmt.Sprintf(" [%s:%s]", p.VID, p.PID)
	}
	if p.Product != "" {
		s += " " + p.Product
	}
	if p.SerialNumber != "" {
		s += " (" + p.SerialNumber + ")"
	}
	return s
}
