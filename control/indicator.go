package control

import "image/color"

// NumZones is how many pixels the indicator uses to point at the face
const NumZones = 5

var pixelOff = color.RGBA{}

// Pixels is a strip of addressable LEDs. SetPixel only changes the buffer and Show writes it out
type Pixels interface {
	SetPixel(i int, c color.RGBA)
	Show() error
}

// Zone maps a face position to an indicator pixel. The sensor is split into NumZones equal
// bands with the upper bound of each band inclusive. Pixel 0 is on the robot's right, so the
// leftmost band lights the highest index. Positions off the sensor saturate to the edge zones
func Zone(position, sensorWidth int) int {
	band := sensorWidth / NumZones
	if band <= 0 {
		return NumZones / 2
	}

	bucket := (position - 1) / band
	switch {
	case bucket < 0:
		bucket = 0
	case bucket > NumZones-1:
		bucket = NumZones - 1
	}

	return NumZones - 1 - bucket
}

// Indicator lights the pixel pointing toward the face. At most one zone is lit at a time
type Indicator struct {
	pixels      Pixels
	color       color.RGBA
	sensorWidth int
	zone        int
}

// NewIndicator creates an Indicator. Call Init before Show
func NewIndicator(pixels Pixels, cfg Config) *Indicator {
	return &Indicator{
		pixels:      pixels,
		color:       cfg.IndicatorColor,
		sensorWidth: cfg.SensorWidth,
		zone:        NumZones / 2,
	}
}

// Init clears every zone and lights the zone for position
func (ind *Indicator) Init(position int) (int, error) {
	for i := 0; i < NumZones; i++ {
		ind.pixels.SetPixel(i, pixelOff)
	}
	ind.zone = Zone(position, ind.sensorWidth)
	ind.pixels.SetPixel(ind.zone, ind.color)
	return ind.zone, ind.pixels.Show()
}

// Show moves the lit zone to the one for position and commits once
func (ind *Indicator) Show(position int) (int, error) {
	ind.pixels.SetPixel(ind.zone, pixelOff)
	ind.zone = Zone(position, ind.sensorWidth)
	ind.pixels.SetPixel(ind.zone, ind.color)
	return ind.zone, ind.pixels.Show()
}

// ActiveZone returns the zone that is currently lit
func (ind *Indicator) ActiveZone() int {
	return ind.zone
}
